// Package svp implements the single-value product argument.
//
// Given a commitment to a vector a of length n, it proves that the product
// of a's entries equals a public value b, without revealing a.
//
// Construction. Let d be the running partial-products vector, d_i =
// a_1*...*a_i (so d_n = b by construction), and let dShifted be d prefixed
// with the public constant 1 and shortened by one: dShifted = (1,
// d_1,...,d_{n-1}). Then d = a ∘ dShifted entrywise — a Hadamard product
// claim over committed a, dShifted and d, which also folds in the boundary
// case d_1 = a_1 automatically (dShifted's leading 1 forces it). The
// remaining boundary condition, d_n = b, is proved by a separate opening
// argument: since b is already public, the verifier only needs to confirm
// that the committed d's trailing coordinate is what the commitment scheme
// binds it to, which reduces to proving knowledge of a representation of
// commitD - b*g_n using only the first n-1 generators and h — a
// generalized Schnorr proof (the same "commit to a random mask before the
// challenge, reveal a one-time-padded response after it" pattern used
// throughout this package's sibling arguments for every value that must
// stay hidden).
package svp

import (
	"crypto/rand"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/argument/hadamard"
	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/pedersen"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
	"github.com/barnettsmart/mentalpoker/crypto/wire"
)

// Statement is the public input: a commitment to a, and the claimed product.
type Statement struct {
	CommitmentToA pedersen.Commitment
	B             *big.Int
}

// Witness is the prover's private input.
type Witness struct {
	A []*big.Int
	R *big.Int // randomness used in statement.CommitmentToA
}

// Proof bundles the running-product commitment, the shifted copy used to
// fold it into a Hadamard product claim, the Hadamard sub-proof itself, and
// the opening argument binding the running product's last coordinate to b.
type Proof struct {
	CommitmentToD        pedersen.Commitment
	CommitmentToDShifted pedersen.Commitment
	HadamardProof        hadamard.Proof

	BoundaryR    ecc.Point
	BoundaryZ    []*big.Int // length n-1
	BoundaryZTau *big.Int
}

// Marshal returns the canonical encoding of the proof.
func (p Proof) Marshal(order *big.Int) []byte {
	ss := wire.ScalarSize(order)
	buf := wire.PutPoint(nil, p.CommitmentToD.Point)
	buf = wire.PutPoint(buf, p.CommitmentToDShifted.Point)
	buf = append(buf, p.HadamardProof.Marshal(order)...)
	buf = wire.PutPoint(buf, p.BoundaryR)
	buf = wire.PutScalarVector(buf, ss, p.BoundaryZ)
	return wire.PutScalar(buf, ss, p.BoundaryZTau)
}

// Unmarshal decodes a Proof off the front of buf, returning the undecoded
// remainder so callers composing this proof into a larger one (e.g.
// crypto/argument/product) can continue decoding from where it left off.
func Unmarshal(buf []byte, order *big.Int, newPoint func() ecc.Point) (Proof, []byte, error) {
	ss := wire.ScalarSize(order)
	d, rest, err := wire.GetPoint(buf, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	dShifted, rest, err := wire.GetPoint(rest, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	hp, rest, err := hadamard.Unmarshal(rest, order, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	br, rest, err := wire.GetPoint(rest, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	bz, rest, err := wire.GetScalarVector(rest, ss)
	if err != nil {
		return Proof{}, nil, err
	}
	bzTau, rest, err := wire.GetScalar(rest, ss)
	if err != nil {
		return Proof{}, nil, err
	}
	return Proof{
		CommitmentToD:        pedersen.Commitment{Point: d},
		CommitmentToDShifted: pedersen.Commitment{Point: dShifted},
		HadamardProof:        hp,
		BoundaryR:            br,
		BoundaryZ:            bz,
		BoundaryZTau:         bzTau,
	}, rest, nil
}

// commitDPrime returns commitD - b*g_n, the point whose representation
// under (g_1..g_{n-1},h) is exactly (d_1,...,d_{n-1},s) iff d_n == b. n is
// the length of the committed vector, which may be smaller than ck's
// capacity.
func commitDPrime(ck pedersen.CommitKey, commitD pedersen.Commitment, b *big.Int, order *big.Int, n int) ecc.Point {
	negB := new(big.Int).Mod(new(big.Int).Neg(b), order)
	negBG := ck.G[n-1].New()
	negBG.ScalarMult(ck.G[n-1], negB)
	out := commitD.Point.New()
	out.Add(commitD.Point, negBG)
	return out
}

// Prove builds a single-value product argument that prod(a) == b.
func Prove(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	curve ecc.Point,
	statement Statement,
	witness Witness,
) (Proof, error) {
	order := curve.Order()
	n := len(witness.A)

	d := make([]*big.Int, n)
	running := big.NewInt(1)
	for i, ai := range witness.A {
		running = new(big.Int).Mul(running, ai)
		running.Mod(running, order)
		d[i] = new(big.Int).Set(running)
	}

	s, err := rand.Int(rand.Reader, order)
	if err != nil {
		return Proof{}, err
	}
	commitD, err := ck.Commit(d, s)
	if err != nil {
		return Proof{}, err
	}

	dShifted := make([]*big.Int, n)
	dShifted[0] = big.NewInt(1)
	copy(dShifted[1:], d[:n-1])
	sPrime, err := rand.Int(rand.Reader, order)
	if err != nil {
		return Proof{}, err
	}
	commitDShifted, err := ck.Commit(dShifted, sPrime)
	if err != nil {
		return Proof{}, err
	}

	absorbPublic(ts, ck, statement, commitD, commitDShifted)

	hadWitnessA := make([]*big.Int, 2*n)
	copy(hadWitnessA[:n], witness.A)
	copy(hadWitnessA[n:], dShifted)
	hadamardProof, err := hadamard.Prove(ts, ck, curve, 2, n,
		hadamard.Statement{
			CommitmentToA: []pedersen.Commitment{statement.CommitmentToA, commitDShifted},
			CommitmentToB: commitD,
		},
		hadamard.Witness{A: hadWitnessA, R: []*big.Int{witness.R, sPrime}, S: s})
	if err != nil {
		return Proof{}, err
	}

	omega := make([]*big.Int, n-1)
	for i := range omega {
		v, err := rand.Int(rand.Reader, order)
		if err != nil {
			return Proof{}, err
		}
		omega[i] = v
	}
	tau, err := rand.Int(rand.Reader, order)
	if err != nil {
		return Proof{}, err
	}
	boundaryCommitR, err := ck.Commit(omega, tau)
	if err != nil {
		return Proof{}, err
	}
	ts.AbsorbPoints("svp-boundary-r", boundaryCommitR.Point)
	c2 := ts.SqueezeScalar(order)

	z := make([]*big.Int, n-1)
	for i := range z {
		term := new(big.Int).Mul(c2, d[i])
		z[i] = new(big.Int).Mod(new(big.Int).Add(omega[i], term), order)
	}
	zTau := new(big.Int).Mod(new(big.Int).Add(tau, new(big.Int).Mul(c2, s)), order)

	return Proof{
		CommitmentToD:        commitD,
		CommitmentToDShifted: commitDShifted,
		HadamardProof:        hadamardProof,
		BoundaryR:            boundaryCommitR.Point,
		BoundaryZ:            z,
		BoundaryZTau:         zTau,
	}, nil
}

// Verify checks a single-value product proof against its statement.
func Verify(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	curve ecc.Point,
	statement Statement,
	proof Proof,
) error {
	order := curve.Order()
	n := len(proof.BoundaryZ) + 1
	if n < 1 || n > len(ck.G) {
		return errs.NewProofVerificationError(errs.ArgSingleValueProd)
	}
	if proof.CommitmentToDShifted.Point == nil {
		return errs.NewProofVerificationError(errs.ArgSingleValueProd)
	}

	absorbPublic(ts, ck, statement, proof.CommitmentToD, proof.CommitmentToDShifted)

	err := hadamard.Verify(ts, ck, curve, 2, n,
		hadamard.Statement{
			CommitmentToA: []pedersen.Commitment{statement.CommitmentToA, proof.CommitmentToDShifted},
			CommitmentToB: proof.CommitmentToD,
		},
		proof.HadamardProof)
	if err != nil {
		return errs.WrapProofVerificationError(errs.ArgSingleValueProd, err)
	}

	ts.AbsorbPoints("svp-boundary-r", proof.BoundaryR)
	c2 := ts.SqueezeScalar(order)

	left, err := ck.Commit(proof.BoundaryZ, proof.BoundaryZTau)
	if err != nil {
		return err
	}
	cdPrime := commitDPrime(ck, proof.CommitmentToD, statement.B, order, n)
	scaled := proof.BoundaryR.New()
	scaled.ScalarMult(cdPrime, c2)
	rhs := proof.BoundaryR.New()
	rhs.Add(proof.BoundaryR, scaled)
	right := pedersen.Commitment{Point: rhs}
	if !left.Equal(right) {
		return errs.NewProofVerificationError(errs.ArgSingleValueProd)
	}

	return nil
}

func absorbPublic(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	statement Statement,
	commitD pedersen.Commitment,
	commitDShifted pedersen.Commitment,
) {
	ts.AbsorbLabel("single-value-product")
	ts.AbsorbPoints("svp-ck-g", ck.G...)
	ts.AbsorbPoints("svp-ck-h", ck.H)
	ts.AbsorbPoints("svp-a", statement.CommitmentToA.Point)
	ts.AbsorbScalar("svp-b", statement.B)
	ts.AbsorbPoints("svp-d", commitD.Point)
	ts.AbsorbPoints("svp-d-shifted", commitDShifted.Point)
}
