// Package multiexp implements the multi-exponentiation argument.
//
// Given a shared reference deck of n ElGamal ciphertexts C_1..C_n and m
// committed exponent columns B_1..B_m (each length n), it proves that m
// public output ciphertexts EOut_1..EOut_m each equal the re-randomized
// multi-exponentiation of C under their own column:
//
//	EOut_k = (sum_i B_k[i] * C_i) + Enc(0; rho_k)
//
// The shuffle argument (crypto/shuffle) uses this to tie a committed
// permutation-derived exponent matrix to the claim that a shuffled-and-
// remasked deck is a valid re-encryption of the original one.
//
// Construction. MultiExp(C, ·) and Enc(0;·) are both linear in the exponent
// they're applied to, so for any challenge x and any b_0:
//
//	MultiExp(C, b_0 + sum_k x^k*b_k) + Enc(0; rho_0 + sum_k x^k*rho_k)
//	  == E_0 + sum_k x^k*EOut_k
//
// where E_0 := MultiExp(C,b_0) + Enc(0;rho_0). The prover picks b_0, rho_0
// uniformly at random, commits to b_0 and publishes E_0 before the challenge
// is drawn; the revealed blinded opening (b_0 + sum_k x^k*b_k) is then a
// one-time pad of the witness columns and leaks nothing beyond the relation
// itself — unlike revealing sum_k x^k*b_k directly, which for a single
// committed column (m=1, as crypto/shuffle uses this argument) would hand
// the verifier x*b_1 outright and, since x is public, the witness itself.
package multiexp

import (
	"crypto/rand"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/elgamal"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/pedersen"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
	"github.com/barnettsmart/mentalpoker/crypto/wire"
	"github.com/barnettsmart/mentalpoker/internal/vectorutil"
)

// Statement is the public input.
type Statement struct {
	C             []elgamal.Ciphertext  // length n, shared reference deck
	CommitmentToB []pedersen.Commitment // length m
	EOut          []elgamal.Ciphertext  // length m
}

// Witness is the prover's private input.
type Witness struct {
	B   []*big.Int // flattened m*n, column-major
	R   []*big.Int // length m, randomness behind CommitmentToB
	Rho []*big.Int // length m, re-randomization exponent behind EOut_k
}

// Proof bundles the round-1 blinding commitment/ciphertext and the
// challenge-blinded openings of B, its commitment randomness, and the
// re-randomization exponents.
type Proof struct {
	CommitmentToB0 pedersen.Commitment
	E0             elgamal.Ciphertext

	BBlinded   []*big.Int // length n
	RBlinded   *big.Int
	RhoBlinded *big.Int
}

// Marshal returns the canonical encoding of the proof.
func (p Proof) Marshal(order *big.Int) []byte {
	ss := wire.ScalarSize(order)
	buf := wire.PutPoint(nil, p.CommitmentToB0.Point)
	buf = append(buf, p.E0.Marshal()...)
	buf = wire.PutScalarVector(buf, ss, p.BBlinded)
	buf = wire.PutScalar(buf, ss, p.RBlinded)
	return wire.PutScalar(buf, ss, p.RhoBlinded)
}

// Unmarshal decodes a Proof off the front of buf, returning the undecoded
// remainder so callers composing this proof into a larger one (e.g.
// crypto/shuffle) can continue decoding from where it left off.
func Unmarshal(buf []byte, order *big.Int, newPoint func() ecc.Point) (Proof, []byte, error) {
	ss := wire.ScalarSize(order)
	b0, rest, err := wire.GetPoint(buf, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	ctSize := newPoint().SerializedSize() * 2
	if len(rest) < ctSize {
		return Proof{}, nil, errs.ErrSerialization
	}
	e0, err := elgamal.Unmarshal(rest[:ctSize], newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	rest = rest[ctSize:]
	b, rest, err := wire.GetScalarVector(rest, ss)
	if err != nil {
		return Proof{}, nil, err
	}
	r, rest, err := wire.GetScalar(rest, ss)
	if err != nil {
		return Proof{}, nil, err
	}
	rho, rest, err := wire.GetScalar(rest, ss)
	if err != nil {
		return Proof{}, nil, err
	}
	return Proof{
		CommitmentToB0: pedersen.Commitment{Point: b0},
		E0:             e0,
		BBlinded:       b,
		RBlinded:       r,
		RhoBlinded:     rho,
	}, rest, nil
}

func multiExpCiphertexts(c []elgamal.Ciphertext, b []*big.Int) elgamal.Ciphertext {
	out := elgamal.ScalarMult(c[0], b[0])
	for i := 1; i < len(c); i++ {
		out = elgamal.Add(out, elgamal.ScalarMult(c[i], b[i]))
	}
	return out
}

// Prove builds a multi-exponentiation argument tying EOut to C under B.
func Prove(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	pp elgamal.Parameters,
	pk ecc.Point,
	curve ecc.Point,
	m, n int,
	statement Statement,
	witness Witness,
) (Proof, error) {
	order := curve.Order()
	col := func(v []*big.Int, k int) []*big.Int { return v[k*n : (k+1)*n] }

	b0, err := vectorutil.SampleVector(order, n)
	if err != nil {
		return Proof{}, err
	}
	r0, err := rand.Int(rand.Reader, order)
	if err != nil {
		return Proof{}, err
	}
	rho0, err := rand.Int(rand.Reader, order)
	if err != nil {
		return Proof{}, err
	}
	commitB0, err := ck.Commit(b0, r0)
	if err != nil {
		return Proof{}, err
	}
	e0 := elgamal.Add(multiExpCiphertexts(statement.C, b0), elgamal.EncryptZero(pp, pk, rho0))

	absorbPublic(ts, ck, pk, m, n, statement, commitB0, e0)
	x := ts.SqueezeScalar(order)
	xPow := vectorutil.ScalarPowers(x, m, order) // x^0..x^m

	bBlinded := make([]*big.Int, n)
	copy(bBlinded, b0)
	rBlinded := new(big.Int).Set(r0)
	rhoBlinded := new(big.Int).Set(rho0)
	for k := 1; k <= m; k++ {
		bk := col(witness.B, k-1)
		for i := range bBlinded {
			term := new(big.Int).Mul(xPow[k], bk[i])
			bBlinded[i].Add(bBlinded[i], term)
			bBlinded[i].Mod(bBlinded[i], order)
		}
		rBlinded.Add(rBlinded, new(big.Int).Mul(xPow[k], witness.R[k-1]))
		rBlinded.Mod(rBlinded, order)
		rhoBlinded.Add(rhoBlinded, new(big.Int).Mul(xPow[k], witness.Rho[k-1]))
		rhoBlinded.Mod(rhoBlinded, order)
	}

	return Proof{
		CommitmentToB0: commitB0,
		E0:             e0,
		BBlinded:       bBlinded,
		RBlinded:       rBlinded,
		RhoBlinded:     rhoBlinded,
	}, nil
}

// Verify checks a multi-exponentiation proof against its statement.
func Verify(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	pp elgamal.Parameters,
	pk ecc.Point,
	curve ecc.Point,
	m, n int,
	statement Statement,
	proof Proof,
) error {
	order := curve.Order()
	if len(proof.BBlinded) != n {
		return errs.NewProofVerificationError(errs.ArgMultiExp)
	}

	absorbPublic(ts, ck, pk, m, n, statement, proof.CommitmentToB0, proof.E0)
	x := ts.SqueezeScalar(order)
	xPow := vectorutil.ScalarPowers(x, m, order)

	leftCommit, err := ck.Commit(proof.BBlinded, proof.RBlinded)
	if err != nil {
		return err
	}
	rightCommit := proof.CommitmentToB0
	for k := 1; k <= m; k++ {
		rightCommit = pedersen.Add(rightCommit, pedersen.ScalarMult(statement.CommitmentToB[k-1], xPow[k]))
	}
	if !leftCommit.Equal(rightCommit) {
		return errs.NewProofVerificationError(errs.ArgMultiExp)
	}

	left := proof.E0
	for k := 1; k <= m; k++ {
		left = elgamal.Add(left, elgamal.ScalarMult(statement.EOut[k-1], xPow[k]))
	}

	right := elgamal.Add(multiExpCiphertexts(statement.C, proof.BBlinded), elgamal.EncryptZero(pp, pk, proof.RhoBlinded))

	if left.U.Equal(right.U) && left.V.Equal(right.V) {
		return nil
	}
	return errs.NewProofVerificationError(errs.ArgMultiExp)
}

func absorbPublic(ts *transcript.Transcript, ck pedersen.CommitKey, pk ecc.Point, m, n int, statement Statement, commitB0 pedersen.Commitment, e0 elgamal.Ciphertext) {
	ts.AbsorbLabel("multi-exponentiation")
	ts.AbsorbPoints("multiexp-ck-g", ck.G...)
	ts.AbsorbPoints("multiexp-ck-h", ck.H)
	ts.AbsorbPoints("multiexp-pk", pk)
	ts.AbsorbUint32("multiexp-m", uint32(m))
	ts.AbsorbUint32("multiexp-n", uint32(n))
	for _, c := range statement.C {
		ts.AbsorbPoints("multiexp-c", c.U, c.V)
	}
	for _, c := range statement.CommitmentToB {
		ts.AbsorbPoints("multiexp-b", c.Point)
	}
	for _, c := range statement.EOut {
		ts.AbsorbPoints("multiexp-eout", c.U, c.V)
	}
	ts.AbsorbPoints("multiexp-b0", commitB0.Point)
	ts.AbsorbPoints("multiexp-e0", e0.U, e0.V)
}
