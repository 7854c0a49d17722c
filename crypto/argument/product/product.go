// Package product implements the product argument.
//
// Given commitments to m columns a_1..a_m (each length n) and a public value
// b, it proves that the product of all m*n entries equals b. It composes
// the Hadamard product argument (fold the m columns into one length-n
// vector c = a_1∘...∘a_m) with the single-value product argument (prove
// prod(c) == b).
package product

import (
	"crypto/rand"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/argument/hadamard"
	"github.com/barnettsmart/mentalpoker/crypto/argument/svp"
	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/pedersen"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
	"github.com/barnettsmart/mentalpoker/crypto/wire"
	"github.com/barnettsmart/mentalpoker/internal/vectorutil"
)

// Statement is the public input: per-column commitments to a_1..a_m and the
// claimed total product b.
type Statement struct {
	CommitmentToA []pedersen.Commitment // length m
	B             *big.Int
}

// Witness is the prover's private input.
type Witness struct {
	A []*big.Int // flattened m*n, column-major
	R []*big.Int // length m, randomness behind CommitmentToA
}

// Proof bundles the intermediate commitment to c, the Hadamard sub-proof
// tying c to the columns, and the single-value-product sub-proof tying c's
// own product to b.
type Proof struct {
	CommitmentToC pedersen.Commitment
	HadamardProof hadamard.Proof
	SVPProof      svp.Proof
}

// Marshal returns the canonical encoding of the proof. m must
// match the m the proof was produced under: the Hadamard sub-proof is
// present (and encoded) only when m>1, mirroring Prove's own edge case.
func (p Proof) Marshal(order *big.Int, m int) []byte {
	buf := wire.PutPoint(nil, p.CommitmentToC.Point)
	if m > 1 {
		buf = append(buf, p.HadamardProof.Marshal(order)...)
	}
	return append(buf, p.SVPProof.Marshal(order)...)
}

// Unmarshal decodes a Proof off the front of buf, returning the undecoded
// remainder so callers composing this proof into a larger one (e.g.
// crypto/shuffle) can continue decoding from where it left off.
func Unmarshal(buf []byte, order *big.Int, m int, newPoint func() ecc.Point) (Proof, []byte, error) {
	c, rest, err := wire.GetPoint(buf, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	var hp hadamard.Proof
	if m > 1 {
		hp, rest, err = hadamard.Unmarshal(rest, order, newPoint)
		if err != nil {
			return Proof{}, nil, err
		}
	}
	sp, rest, err := svp.Unmarshal(rest, order, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	return Proof{CommitmentToC: pedersen.Commitment{Point: c}, HadamardProof: hp, SVPProof: sp}, rest, nil
}

// Prove builds a product argument that prod(a_1,...,a_m) entrywise-then-
// fully-reduced equals b.
func Prove(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	curve ecc.Point,
	m, n int,
	statement Statement,
	witness Witness,
) (Proof, error) {
	order := curve.Order()
	if m < 1 {
		return Proof{}, errs.ErrInvalidLength
	}
	col := func(v []*big.Int, k int) []*big.Int { return v[k*n : (k+1)*n] }

	c := col(witness.A, 0)
	for k := 1; k < m; k++ {
		next, err := vectorutil.HadamardProduct(c, col(witness.A, k), order)
		if err != nil {
			return Proof{}, err
		}
		c = next
	}

	sC, err := rand.Int(rand.Reader, order)
	if err != nil {
		return Proof{}, err
	}
	commitC, err := ck.Commit(c, sC)
	if err != nil {
		return Proof{}, err
	}

	absorbPublic(ts, ck, statement)

	var hadamardProof hadamard.Proof
	if m == 1 {
		// A single column is trivially its own Hadamard product; no
		// sub-argument is needed, and CommitmentToC duplicates
		// CommitmentToA[0].
		commitC = statement.CommitmentToA[0]
		sC = witness.R[0]
	} else {
		hadamardProof, err = hadamard.Prove(ts, ck, curve, m, n,
			hadamard.Statement{CommitmentToA: statement.CommitmentToA, CommitmentToB: commitC},
			hadamard.Witness{A: witness.A, R: witness.R, S: sC})
		if err != nil {
			return Proof{}, err
		}
	}

	svpProof, err := svp.Prove(ts, ck, curve,
		svp.Statement{CommitmentToA: commitC, B: statement.B},
		svp.Witness{A: c, R: sC})
	if err != nil {
		return Proof{}, err
	}

	return Proof{CommitmentToC: commitC, HadamardProof: hadamardProof, SVPProof: svpProof}, nil
}

// Verify checks a product argument against its statement.
func Verify(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	curve ecc.Point,
	m, n int,
	statement Statement,
	proof Proof,
) error {
	if m < 1 {
		return errs.NewProofVerificationError(errs.ArgProductArgument)
	}

	absorbPublic(ts, ck, statement)

	if m > 1 {
		err := hadamard.Verify(ts, ck, curve, m, n,
			hadamard.Statement{CommitmentToA: statement.CommitmentToA, CommitmentToB: proof.CommitmentToC},
			proof.HadamardProof)
		if err != nil {
			return errs.WrapProofVerificationError(errs.ArgProductArgument, err)
		}
	} else if !proof.CommitmentToC.Equal(statement.CommitmentToA[0]) {
		return errs.NewProofVerificationError(errs.ArgProductArgument)
	}

	err := svp.Verify(ts, ck, curve,
		svp.Statement{CommitmentToA: proof.CommitmentToC, B: statement.B}, proof.SVPProof)
	if err != nil {
		return errs.WrapProofVerificationError(errs.ArgProductArgument, err)
	}

	return nil
}

func absorbPublic(ts *transcript.Transcript, ck pedersen.CommitKey, statement Statement) {
	ts.AbsorbLabel("product-argument")
	ts.AbsorbPoints("product-ck-g", ck.G...)
	ts.AbsorbPoints("product-ck-h", ck.H)
	for _, c := range statement.CommitmentToA {
		ts.AbsorbPoints("product-a", c.Point)
	}
	ts.AbsorbScalar("product-b", statement.B)
}
