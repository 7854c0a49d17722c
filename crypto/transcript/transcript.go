// Package transcript implements the Fiat-Shamir transcript (FS) used to turn
// every Sigma-style sub-argument in this module into a non-interactive
// argument. It is grounded on proof-essentials' FiatShamirRng
// (original_source/proof-essentials/src/utils/rand.rs): a rolling digest that
// reseeds a ChaCha20 stream cipher after every absorb, so two transcripts fed
// identical labeled values in identical order yield bitwise-identical
// challenges.
package transcript

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/chacha20"

	"github.com/zeebo/blake3"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
)

// Encodable is any value with a canonical byte encoding, the contract every
// sub-argument's public inputs and first-round messages satisfy.
type Encodable interface {
	Marshal() []byte
}

// Transcript is a deterministic PRNG keyed by a rolling digest. It carries no
// global state: callers own an instance per proof, per spec.md §5 ("every
// proof-producing function receives an explicit RNG and an explicit
// transcript").
type Transcript struct {
	digest [32]byte
	stream *chacha20.Cipher
}

var zeroNonce = make([]byte, chacha20.NonceSize)

// New initializes a transcript from a seed label, e.g. the argument's name.
func New(seed []byte) *Transcript {
	t := &Transcript{}
	t.digest = blake3.Sum256(seed)
	t.reseed()
	return t
}

func (t *Transcript) reseed() {
	stream, err := chacha20.NewUnauthenticatedCipher(t.digest[:], zeroNonce)
	if err != nil {
		// t.digest is always exactly 32 bytes; chacha20.NewUnauthenticatedCipher
		// only rejects malformed key/nonce lengths.
		panic("transcript: unreachable chacha20 init failure: " + err.Error())
	}
	t.stream = stream
}

// absorb mixes label and the canonical bytes of the value into the digest,
// then reseeds the stream. Concatenation order is: value bytes, label,
// current digest, matching proof-essentials' `H(new_seed || self.seed)`.
func (t *Transcript) absorb(label string, data []byte) {
	h := blake3.New()
	h.Write(data)
	h.Write([]byte(label))
	h.Write(t.digest[:])
	copy(t.digest[:], h.Sum(nil))
	t.reseed()
}

// Absorb absorbs any Encodable value under a label.
func (t *Transcript) Absorb(label string, v Encodable) {
	t.absorb(label, v.Marshal())
}

// AbsorbPoints absorbs a sequence of points under a single label, used by
// sub-arguments that bind whole vectors of points in one step (e.g. a commit
// key's generator vector).
func (t *Transcript) AbsorbPoints(label string, pts ...ecc.Point) {
	var buf []byte
	for _, p := range pts {
		buf = append(buf, p.Marshal()...)
	}
	t.absorb(label, buf)
}

// AbsorbScalar absorbs a field element under a label.
func (t *Transcript) AbsorbScalar(label string, s *big.Int) {
	t.absorb(label, s.Bytes())
}

// AbsorbUint32 absorbs a shape parameter (e.g. m, n) under a label.
func (t *Transcript) AbsorbUint32(label string, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	t.absorb(label, buf[:])
}

// AbsorbLabel absorbs a free-standing domain-separation byte string (e.g. a
// player's identity label) with no additional value payload.
func (t *Transcript) AbsorbLabel(label string) {
	t.absorb(label, nil)
}

// SqueezeScalar draws a uniformly random field element in [0, order) by
// rejection sampling over the stream.
func (t *Transcript) SqueezeScalar(order *big.Int) *big.Int {
	byteLen := (order.BitLen() + 7) / 8
	zero := make([]byte, byteLen)
	buf := make([]byte, byteLen)
	for {
		// XORing the keystream against an all-zero buffer yields the raw
		// keystream bytes; the stream's position advances either way, so a
		// rejected draw is independent of the next one.
		t.stream.XORKeyStream(buf, zero)
		c := new(big.Int).SetBytes(buf)
		if c.Cmp(order) < 0 {
			return c
		}
	}
}

// SqueezeGroup draws a pseudo-random group element by squeezing a scalar and
// multiplying the curve's generator by it.
func (t *Transcript) SqueezeGroup(curve ecc.Point) ecc.Point {
	s := t.SqueezeScalar(curve.Order())
	out := curve.New()
	out.ScalarBaseMult(s)
	return out
}
