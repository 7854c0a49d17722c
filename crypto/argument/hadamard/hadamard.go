// Package hadamard implements the Hadamard product argument.
//
// Given commitments to m column vectors a_1..a_m (each length n) and a
// commitment to a single vector b (length n), it proves that b is their
// entrywise (Hadamard) product: b = a_1 ∘ a_2 ∘ ... ∘ a_m.
//
// It reduces to a single zero-argument instance. The running products
// x_1=a_1, x_k=x_{k-1}∘a_k (k=2..m, x_m=b) turn the claim into m-1
// per-entry relations x_k[i] = a_k[i]*x_{k-1}[i]. The verifier draws two
// independent challenges: y batches the m-1 relations into one sum (each
// relation weighted by y^k, split into a "positive" a_k⊗x_{k-1} term and a
// "negative" 1⊗x_k term so the combined sum is the zero-argument's native
// sum-of-bilinear-pairings shape), and a per-entry vector z batches the n
// coordinates within each relation (folded into the bilinear map itself,
// since the zero-argument's own dot product only ever collapses one
// dimension). Schwartz-Zippel over (y,z) then forces every entry of every
// relation to hold.
package hadamard

import (
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/argument/zeroarg"
	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/pedersen"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
	"github.com/barnettsmart/mentalpoker/crypto/wire"
	"github.com/barnettsmart/mentalpoker/internal/vectorutil"
)

// Statement is the public input: per-column commitments to a_1..a_m and a
// single commitment to the claimed Hadamard product b.
type Statement struct {
	CommitmentToA []pedersen.Commitment // length m
	CommitmentToB pedersen.Commitment
}

// Witness is the prover's private input.
type Witness struct {
	A []*big.Int // flattened m*n, column-major
	R []*big.Int // length m, randomness behind CommitmentToA
	S *big.Int   // randomness behind CommitmentToB
}

// Proof bundles the m-2 strictly-intermediate running-product commitments
// plus the zero-argument that ties the whole chain together.
type Proof struct {
	CommitmentToX []pedersen.Commitment // length m-2
	ZeroProof     zeroarg.Proof
}

// Marshal returns the canonical encoding of the proof.
func (p Proof) Marshal(order *big.Int) []byte {
	points := make([]ecc.Point, len(p.CommitmentToX))
	for i, c := range p.CommitmentToX {
		points[i] = c.Point
	}
	buf := wire.PutPointVector(nil, points)
	return append(buf, p.ZeroProof.Marshal(order)...)
}

// Unmarshal decodes a Proof off the front of buf, returning the undecoded
// remainder so callers composing this proof into a larger one (e.g.
// crypto/argument/product) can continue decoding from where it left off.
func Unmarshal(buf []byte, order *big.Int, newPoint func() ecc.Point) (Proof, []byte, error) {
	points, rest, err := wire.GetPointVector(buf, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	commitX := make([]pedersen.Commitment, len(points))
	for i, p := range points {
		commitX[i] = pedersen.Commitment{Point: p}
	}
	zp, rest, err := zeroarg.Unmarshal(rest, order, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	return Proof{CommitmentToX: commitX, ZeroProof: zp}, rest, nil
}

func col(v []*big.Int, k, n int) []*big.Int { return v[k*n : (k+1)*n] }

func zWeightedDotProduct(z []*big.Int) zeroarg.BilinearMap {
	return func(a, b []*big.Int, order *big.Int) *big.Int {
		sum := big.NewInt(0)
		for i := range a {
			term := new(big.Int).Mul(a[i], b[i])
			term.Mul(term, z[i])
			sum.Add(sum, term)
			sum.Mod(sum, order)
		}
		return sum
	}
}

// Prove builds a Hadamard product argument that b == a_1∘...∘a_m.
func Prove(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	curve ecc.Point,
	m, n int,
	statement Statement,
	witness Witness,
) (Proof, error) {
	order := curve.Order()
	if m < 2 {
		return Proof{}, errs.ErrInvalidLength
	}

	x := make([][]*big.Int, m)
	x[0] = col(witness.A, 0, n)
	for k := 1; k < m; k++ {
		prod, err := vectorutil.HadamardProduct(x[k-1], col(witness.A, k, n), order)
		if err != nil {
			return Proof{}, err
		}
		x[k] = prod
	}

	rx := make([]*big.Int, m)
	rx[0] = witness.R[0]
	rx[m-1] = witness.S

	commitX := make([]pedersen.Commitment, m)
	commitX[0] = statement.CommitmentToA[0]
	commitX[m-1] = statement.CommitmentToB
	sentCommitments := make([]pedersen.Commitment, 0, m-2)
	for k := 1; k < m-1; k++ {
		r, err := vectorutil.SampleVector(order, 1)
		if err != nil {
			return Proof{}, err
		}
		rx[k] = r[0]
		c, err := ck.Commit(x[k], r[0])
		if err != nil {
			return Proof{}, err
		}
		commitX[k] = c
		sentCommitments = append(sentCommitments, c)
	}

	absorbPublic(ts, ck, statement, sentCommitments)
	y := ts.SqueezeScalar(order)
	z := make([]*big.Int, n)
	for i := range z {
		z[i] = ts.SqueezeScalar(order)
	}

	r := m - 1 // number of per-column relations x_k = a_k*x_{k-1}, k=1..m-1 (0-indexed)
	yPow := vectorutil.ScalarPowers(y, r, order)

	zm := 2 * r
	zeroA := make([]*big.Int, zm*n)
	zeroB := make([]*big.Int, zm*n)
	zeroCA := make([]pedersen.Commitment, zm)
	zeroCB := make([]pedersen.Commitment, zm)
	zeroR := make([]*big.Int, zm)
	zeroS := make([]*big.Int, zm)

	for k := 1; k <= r; k++ {
		idx := k - 1
		ak := col(witness.A, k, n)
		scaled := make([]*big.Int, n)
		for i := range scaled {
			scaled[i] = new(big.Int).Mod(new(big.Int).Mul(yPow[k], ak[i]), order)
		}
		copy(zeroA[idx*n:(idx+1)*n], scaled)
		copy(zeroB[idx*n:(idx+1)*n], x[k-1])
		zeroCA[idx] = pedersen.ScalarMult(statement.CommitmentToA[k], yPow[k])
		zeroCB[idx] = commitX[k-1]
		zeroR[idx] = new(big.Int).Mod(new(big.Int).Mul(yPow[k], witness.R[k]), order)
		zeroS[idx] = rx[k-1]

		negIdx := r + idx
		negY := new(big.Int).Mod(new(big.Int).Neg(yPow[k]), order)
		negOnes := make([]*big.Int, n)
		for i := range negOnes {
			negOnes[i] = negY
		}
		copy(zeroA[negIdx*n:(negIdx+1)*n], negOnes)
		copy(zeroB[negIdx*n:(negIdx+1)*n], x[k])
		negCommit, err := ck.Commit(negOnes, big.NewInt(0))
		if err != nil {
			return Proof{}, err
		}
		zeroCA[negIdx] = negCommit
		zeroCB[negIdx] = commitX[k]
		zeroR[negIdx] = big.NewInt(0)
		zeroS[negIdx] = rx[k]
	}

	zeroProof, err := zeroarg.Prove(ts, ck, curve, zm, n, zWeightedDotProduct(z),
		zeroarg.Statement{CommitmentToA: zeroCA, CommitmentToB: zeroCB},
		zeroarg.Witness{A: zeroA, B: zeroB, R: zeroR, S: zeroS, N: n})
	if err != nil {
		return Proof{}, err
	}

	return Proof{CommitmentToX: sentCommitments, ZeroProof: zeroProof}, nil
}

// Verify checks a Hadamard product argument against its statement.
func Verify(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	curve ecc.Point,
	m, n int,
	statement Statement,
	proof Proof,
) error {
	order := curve.Order()
	if m < 2 {
		return errs.NewProofVerificationError(errs.ArgHadamardProduct)
	}
	if len(proof.CommitmentToX) != m-2 {
		return errs.NewProofVerificationError(errs.ArgHadamardProduct)
	}

	commitX := make([]pedersen.Commitment, m)
	commitX[0] = statement.CommitmentToA[0]
	commitX[m-1] = statement.CommitmentToB
	for k := 1; k < m-1; k++ {
		commitX[k] = proof.CommitmentToX[k-1]
	}

	absorbPublic(ts, ck, statement, proof.CommitmentToX)
	y := ts.SqueezeScalar(order)
	z := make([]*big.Int, n)
	for i := range z {
		z[i] = ts.SqueezeScalar(order)
	}

	r := m - 1
	yPow := vectorutil.ScalarPowers(y, r, order)
	zm := 2 * r
	zeroCA := make([]pedersen.Commitment, zm)
	zeroCB := make([]pedersen.Commitment, zm)
	for k := 1; k <= r; k++ {
		idx := k - 1
		zeroCA[idx] = pedersen.ScalarMult(statement.CommitmentToA[k], yPow[k])
		zeroCB[idx] = commitX[k-1]

		negIdx := r + idx
		negY := new(big.Int).Mod(new(big.Int).Neg(yPow[k]), order)
		negOnes := make([]*big.Int, n)
		for i := range negOnes {
			negOnes[i] = negY
		}
		negCommit, err := ck.Commit(negOnes, big.NewInt(0))
		if err != nil {
			return err
		}
		zeroCA[negIdx] = negCommit
		zeroCB[negIdx] = commitX[k]
	}

	err := zeroarg.Verify(ts, ck, curve, zm, n, zWeightedDotProduct(z),
		zeroarg.Statement{CommitmentToA: zeroCA, CommitmentToB: zeroCB}, proof.ZeroProof)
	if err != nil {
		return errs.WrapProofVerificationError(errs.ArgHadamardProduct, err)
	}
	return nil
}

func absorbPublic(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	statement Statement,
	sentCommitments []pedersen.Commitment,
) {
	ts.AbsorbLabel("hadamard-product")
	ts.AbsorbPoints("hadamard-ck-g", ck.G...)
	ts.AbsorbPoints("hadamard-ck-h", ck.H)
	for _, c := range statement.CommitmentToA {
		ts.AbsorbPoints("hadamard-a", c.Point)
	}
	ts.AbsorbPoints("hadamard-b", statement.CommitmentToB.Point)
	for _, c := range sentCommitments {
		ts.AbsorbPoints("hadamard-x", c.Point)
	}
}
