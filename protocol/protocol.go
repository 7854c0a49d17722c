// Package protocol is the public orchestration surface: it
// ties the GA/FS/HP/SA/SH layers together into setup, key management,
// mask/remask, shuffle-and-remask, and reveal-token operations for a game
// of mental poker. It holds no package-level state and performs no I/O; it
// is the only package in this module permitted to log (via log.Debugw),
// following the teacher's practice of keeping crypto/* silent.
package protocol

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/ecc/curves"
	"github.com/barnettsmart/mentalpoker/crypto/elgamal"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/pedersen"
	"github.com/barnettsmart/mentalpoker/crypto/shuffle"
	"github.com/barnettsmart/mentalpoker/crypto/sigma/chaumpedersen"
	"github.com/barnettsmart/mentalpoker/crypto/sigma/schnorr"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
	"github.com/barnettsmart/mentalpoker/crypto/wire"
	"github.com/barnettsmart/mentalpoker/log"
)

// PP is the group parameter set: deck
// shape m*n, a Pedersen commit key sized to the full deck N=m*n (every SA
// sub-argument in this module only ever consumes as many of the key's bases
// as its input vector's length, so one oversized key serves zero-argument,
// Hadamard, SVP, product and multi-exponentiation calls alike), and the
// ElGamal generator. Created once by Setup and broadcast read-only.
type PP struct {
	M, N      int
	CommitKey pedersen.CommitKey
	ElGamal   elgamal.Parameters
	CurveType string
}

func (pp PP) curve() ecc.Point { return curves.New(pp.CurveType) }

// DeckSize is the number of cards PP's shape holds, m*n.
func (pp PP) DeckSize() int { return pp.M * pp.N }

// Marshal returns the canonical encoding of the parameter set: M and N as
// u32s, the curve type as a u32-length-prefixed string, the commit key, and
// the ElGamal generator.
func (pp PP) Marshal() []byte {
	buf := wire.PutUint32(nil, pp.M)
	buf = wire.PutUint32(buf, pp.N)
	buf = wire.PutUint32(buf, len(pp.CurveType))
	buf = append(buf, []byte(pp.CurveType)...)
	buf = append(buf, pp.CommitKey.Marshal()...)
	return wire.PutPoint(buf, pp.ElGamal.Generator)
}

// UnmarshalPP decodes a PP from buf.
func UnmarshalPP(buf []byte) (PP, error) {
	m, rest, err := wire.GetUint32(buf)
	if err != nil {
		return PP{}, err
	}
	n, rest, err := wire.GetUint32(rest)
	if err != nil {
		return PP{}, err
	}
	nameLen, rest, err := wire.GetUint32(rest)
	if err != nil {
		return PP{}, err
	}
	if len(rest) < nameLen {
		return PP{}, errs.ErrSerialization
	}
	curveType := string(rest[:nameLen])
	rest = rest[nameLen:]
	if !curves.IsValid(curveType) {
		return PP{}, errs.ErrSerialization
	}

	newPoint := func() ecc.Point { return curves.New(curveType) }
	ck, rest, err := pedersen.UnmarshalCommitKey(rest, newPoint)
	if err != nil {
		return PP{}, err
	}
	gen, _, err := wire.GetPoint(rest, newPoint)
	if err != nil {
		return PP{}, err
	}
	return PP{M: m, N: n, CommitKey: ck, ElGamal: elgamal.Parameters{Generator: gen}, CurveType: curveType}, nil
}

// Setup creates PP for a deck of m*n cards over the named curve (e.g.
// "bn254", per crypto/ecc/curves).
func Setup(curveType string, m, n int) (PP, error) {
	if m <= 0 || n <= 0 {
		return PP{}, errs.ErrInvalidLength
	}
	curve := curves.New(curveType)
	ck, err := pedersen.Setup(curve, m*n)
	if err != nil {
		return PP{}, fmt.Errorf("protocol: setup: %w", err)
	}
	pp := elgamal.Setup(curve)
	return PP{M: m, N: n, CommitKey: ck, ElGamal: pp, CurveType: curveType}, nil
}

// PlayerKeyGen samples a fresh ElGamal key pair for one player.
func PlayerKeyGen(pp PP) (pk ecc.Point, sk *big.Int, err error) {
	return elgamal.KeyGen(pp.ElGamal)
}

// KeyOwnershipProof is a Schnorr identification proof binding pk to label.
type KeyOwnershipProof = schnorr.Proof

// ProveKeyOwnership proves knowledge of sk behind pk, bound to label (a
// player's byte identifier).
func ProveKeyOwnership(pp PP, pk ecc.Point, sk *big.Int, label string) (KeyOwnershipProof, error) {
	ts := transcript.New([]byte("key-ownership:" + label))
	return schnorr.Prove(ts, pp.ElGamal.Generator, pk, sk, label)
}

// VerifyKeyOwnership checks a key-ownership proof.
func VerifyKeyOwnership(pp PP, pk ecc.Point, label string, proof KeyOwnershipProof) error {
	ts := transcript.New([]byte("key-ownership:" + label))
	return schnorr.Verify(ts, pp.ElGamal.Generator, pk, proof, label)
}

// KeyContribution is one player's published key material: a public key, its
// ownership proof, and the label the proof is bound to.
type KeyContribution struct {
	PK    ecc.Point
	Proof KeyOwnershipProof
	Label string
}

// ComputeAggregateKey verifies every contribution's key-ownership proof and,
// if all succeed, returns PK = Σ pk_i. It aborts on the first bad proof and
// returns that proof's error unchanged.
func ComputeAggregateKey(pp PP, contributions []KeyContribution) (ecc.Point, error) {
	log.Debugw("computing aggregate key", "players", len(contributions))

	pk := pp.curve().New()
	pk.SetZero()
	for _, c := range contributions {
		if err := VerifyKeyOwnership(pp, c.PK, c.Label, c.Proof); err != nil {
			return nil, err
		}
		pk.Add(pk, c.PK)
	}
	return pk, nil
}

// MaskProof certifies that a masked card's ciphertext encrypts the claimed
// plaintext with the claimed randomness, via Chaum-Pedersen DL-equality
// between (v-C, u) under bases (PK, G).
type MaskProof = chaumpedersen.Proof

func maskStatement(pp PP, pk ecc.Point, m elgamal.Ciphertext, card ecc.Point) (x, y ecc.Point) {
	x = pk.New()
	x.Add(m.V, pk.New().Neg(card))
	y = m.U
	return x, y
}

func maskTranscript(m elgamal.Ciphertext) *transcript.Transcript {
	return transcript.New(append([]byte("mask:"), m.Marshal()...))
}

// Mask encrypts card under PK with randomness r, returning the ciphertext
// and a proof that it is a valid encryption of card.
func Mask(pp PP, pk ecc.Point, card ecc.Point, r *big.Int) (elgamal.Ciphertext, MaskProof, error) {
	m := elgamal.Encrypt(pp.ElGamal, pk, card, r)
	x, y := maskStatement(pp, pk, m, card)
	proof, err := chaumpedersen.Prove(maskTranscript(m), pk, pp.ElGamal.Generator, x, y, r)
	if err != nil {
		return elgamal.Ciphertext{}, MaskProof{}, err
	}
	return m, proof, nil
}

// VerifyMask checks a masking proof against the claimed plaintext and
// ciphertext.
func VerifyMask(pp PP, pk ecc.Point, card ecc.Point, m elgamal.Ciphertext, proof MaskProof) error {
	x, y := maskStatement(pp, pk, m, card)
	return chaumpedersen.Verify(maskTranscript(m), pk, pp.ElGamal.Generator, x, y, proof)
}

// RemaskProof certifies that m' is a rerandomization of m under the same
// plaintext.
type RemaskProof = chaumpedersen.Proof

func remaskTranscript(m, mPrime elgamal.Ciphertext) *transcript.Transcript {
	seed := append([]byte("remask:"), m.Marshal()...)
	seed = append(seed, mPrime.Marshal()...)
	return transcript.New(seed)
}

// Remask rerandomizes m by adding an encryption of zero under randomness r,
// returning the new ciphertext and a proof it is a valid remasking of m.
func Remask(pp PP, pk ecc.Point, m elgamal.Ciphertext, r *big.Int) (elgamal.Ciphertext, RemaskProof, error) {
	zeroCt := elgamal.EncryptZero(pp.ElGamal, pk, r)
	mPrime := elgamal.Add(m, zeroCt)

	x, y := remaskStatement(pk, mPrime, m)
	proof, err := chaumpedersen.Prove(remaskTranscript(m, mPrime), pk, pp.ElGamal.Generator, x, y, r)
	if err != nil {
		return elgamal.Ciphertext{}, RemaskProof{}, err
	}
	return mPrime, proof, nil
}

func remaskStatement(pk ecc.Point, mPrime, m elgamal.Ciphertext) (x, y ecc.Point) {
	x = pk.New()
	x.Add(mPrime.V, pk.New().Neg(m.V))
	y = pk.New()
	y.Add(mPrime.U, pk.New().Neg(m.U))
	return x, y
}

// VerifyRemask checks a remasking proof tying m' back to m.
func VerifyRemask(pp PP, pk ecc.Point, m, mPrime elgamal.Ciphertext, proof RemaskProof) error {
	x, y := remaskStatement(pk, mPrime, m)
	return chaumpedersen.Verify(remaskTranscript(m, mPrime), pk, pp.ElGamal.Generator, x, y, proof)
}

// ShuffleProof wraps the Bayer-Groth shuffle argument proving deck' is a
// shuffle-and-remask of deck.
type ShuffleProof = shuffle.Proof

// ShuffleAndRemask applies permutation perm (perm[j] is the 0-indexed
// original position landing at shuffled position j) and randomizers rho to
// deck, returning the new deck and a shuffle proof.
func ShuffleAndRemask(pp PP, pk ecc.Point, deck []elgamal.Ciphertext, rho []*big.Int, perm []int) ([]elgamal.Ciphertext, ShuffleProof, error) {
	log.Debugw("shuffling deck", "size", len(deck))

	n := pp.DeckSize()
	if len(deck) != n || len(rho) != n || len(perm) != n {
		return nil, ShuffleProof{}, errs.ErrInvalidLength
	}

	deckOut := make([]elgamal.Ciphertext, n)
	for j, p := range perm {
		remasked := elgamal.Add(deck[p], elgamal.EncryptZero(pp.ElGamal, pk, rho[j]))
		deckOut[j] = remasked
	}

	ts := transcript.New([]byte("shuffle-and-remask"))
	proof, err := shuffle.Prove(ts, pp.CommitKey, pp.ElGamal, pk, pp.curve(),
		shuffle.Statement{C: deck, CPrime: deckOut},
		shuffle.Witness{Perm: perm, Rho: rho})
	if err != nil {
		return nil, ShuffleProof{}, err
	}
	return deckOut, proof, nil
}

// VerifyShuffle checks a shuffle proof tying deckOut to deckIn.
func VerifyShuffle(pp PP, pk ecc.Point, deckIn, deckOut []elgamal.Ciphertext, proof ShuffleProof) error {
	ts := transcript.New([]byte("shuffle-and-remask"))
	return shuffle.Verify(ts, pp.CommitKey, pp.ElGamal, pk, pp.curve(),
		shuffle.Statement{C: deckIn, CPrime: deckOut}, proof)
}

// RevealToken is one player's contribution T_i = sk_i*u toward opening a
// masked card.
type RevealToken struct {
	T ecc.Point
}

// RevealProof certifies T was computed honestly from sk_i behind pk_i, via
// Chaum-Pedersen DL-equality between (pk_i, T) under bases (G, u).
type RevealProof = chaumpedersen.Proof

func revealLabel(m elgamal.Ciphertext) []byte {
	return append([]byte("reveal-token:"), m.Marshal()...)
}

// ComputeRevealToken computes player i's reveal token for masked card m and
// a proof it was derived correctly from their secret key.
func ComputeRevealToken(pp PP, skI *big.Int, pkI ecc.Point, m elgamal.Ciphertext) (RevealToken, RevealProof, error) {
	t := m.U.New()
	t.ScalarMult(m.U, skI)

	ts := transcript.New(revealLabel(m))
	proof, err := chaumpedersen.Prove(ts, pp.ElGamal.Generator, m.U, pkI, t, skI)
	if err != nil {
		return RevealToken{}, RevealProof{}, err
	}
	return RevealToken{T: t}, proof, nil
}

// VerifyReveal checks a reveal-token proof against the card it was computed
// for and the player's public key.
func VerifyReveal(pp PP, pkI ecc.Point, m elgamal.Ciphertext, token RevealToken, proof RevealProof) error {
	ts := transcript.New(revealLabel(m))
	return chaumpedersen.Verify(ts, pp.ElGamal.Generator, m.U, pkI, token.T, proof)
}

// RevealContribution bundles one player's reveal token, its proof, and their
// public key, as consumed by Unmask.
type RevealContribution struct {
	Token RevealToken
	Proof RevealProof
	PK    ecc.Point
}

// Unmask verifies every reveal-token proof in contributions against m, then
// recovers the plaintext card as v - Σ T_i. It aborts on the first invalid
// token, returning that token's error unchanged. It does not check the number
// of contributions against the number of players: it sums whatever
// contributions it is given.
func Unmask(pp PP, m elgamal.Ciphertext, contributions []RevealContribution) (ecc.Point, error) {
	sum := m.V.New()
	sum.SetZero()
	for _, c := range contributions {
		if err := VerifyReveal(pp, c.PK, m, c.Token, c.Proof); err != nil {
			return nil, err
		}
		sum.Add(sum, c.Token.T)
	}

	card := m.V.New()
	card.Add(m.V, sum.New().Neg(sum))
	return card, nil
}

// DealChunks slices deck into consecutive chunks of chunkSize cards each, an
// application-policy helper with no proof obligation of its own: chunked
// hand-out is policy, not a core guarantee.
func DealChunks(deck []elgamal.Ciphertext, chunkSize int) ([][]elgamal.Ciphertext, error) {
	if chunkSize <= 0 || len(deck)%chunkSize != 0 {
		return nil, errs.ErrInvalidLength
	}
	chunks := make([][]elgamal.Ciphertext, 0, len(deck)/chunkSize)
	for i := 0; i < len(deck); i += chunkSize {
		chunks = append(chunks, deck[i:i+chunkSize])
	}
	return chunks, nil
}

// SampleRandomScalar samples a uniform field element for use as mask/remask/
// shuffle randomness, the curve's order taken from PP.
func SampleRandomScalar(pp PP) (*big.Int, error) {
	return rand.Int(rand.Reader, pp.curve().Order())
}
