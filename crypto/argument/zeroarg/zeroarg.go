// Package zeroarg implements the zero-argument over a bilinear map, grounded on
// original_source/proof-essentials/src/zkp/arguments/zero_value_bilinear_map.
//
// Given Pedersen commitments to column vectors a_1..a_m and b_1..b_m (each in
// F_q^n), it proves sum_k Star(a_k, b_k) = 0 for a caller-supplied bilinear
// map Star, without revealing any a_k or b_k.
//
// Construction. The prover pads the sequences with a random a_0 and a fixed
// b_{m+1}=0, forms the generating polynomials
//
//	A(x) = a_0 + sum_{k=1}^m x^k a_k
//	B(x) = b_{m+1} + sum_{k=1}^m x^{m-k+1} b_k
//
// and commits to each coefficient d_s of Star(A(x),B(x)) = sum_s x^s d_s for
// s=0..2m. Bilinearity of Star forces the coefficient at s=m+1 to be exactly
// sum_k Star(a_k,b_k) — the quantity the statement claims is zero — so the
// verifier can check that diagonal is literally the zero commitment without
// learning anything else about a_k, b_k.
package zeroarg

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/pedersen"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
	"github.com/barnettsmart/mentalpoker/crypto/wire"
	"github.com/barnettsmart/mentalpoker/internal/vectorutil"
)

// BilinearMap computes a scalar pairing of two length-n vectors.
type BilinearMap func(a, b []*big.Int, order *big.Int) *big.Int

// DotProduct is the canonical bilinear map: Star(a,b) = sum(a_i*b_i).
func DotProduct(a, b []*big.Int, order *big.Int) *big.Int {
	v, err := vectorutil.DotProductScalars(a, b, order)
	if err != nil {
		panic("zeroarg: DotProduct: " + err.Error())
	}
	return v
}

// Statement is the public input: commitments to the m columns of a and b.
type Statement struct {
	CommitmentToA []pedersen.Commitment
	CommitmentToB []pedersen.Commitment
}

// Witness is the prover's private input: the m columns of a and b, each of
// length n, plus the randomness used to commit each column (statement.
// CommitmentToA[k] and CommitmentToB[k] are openings of (column k, R[k]) and
// (column k, S[k]) respectively — required so the blinded openings the
// prover reveals can be checked against the real per-column commitments,
// not just the padding terms a0/b_{m+1}).
type Witness struct {
	A []*big.Int // flattened m*n, column-major: A[k*n:(k+1)*n] is column k
	B []*big.Int
	R []*big.Int // length m, randomness behind statement.CommitmentToA
	S []*big.Int // length m, randomness behind statement.CommitmentToB
	N int        // column length
}

func (w Witness) column(v []*big.Int, k int) []*big.Int {
	return v[k*w.N : (k+1)*w.N]
}

// Proof bundles the round-1 commitments and round-2 blinded openings.
type Proof struct {
	A0Commit  pedersen.Commitment
	BmCommit  pedersen.Commitment
	Diagonals []pedersen.Commitment // length 2m+1, indices 0..2m

	ABlinded []*big.Int // length n
	BBlinded []*big.Int
	RBlinded *big.Int
	SBlinded *big.Int
	TBlinded *big.Int
}

// Marshal returns the canonical encoding of the proof.
func (p Proof) Marshal(order *big.Int) []byte {
	ss := wire.ScalarSize(order)
	buf := wire.PutPoint(nil, p.A0Commit.Point)
	buf = wire.PutPoint(buf, p.BmCommit.Point)
	diag := make([]ecc.Point, len(p.Diagonals))
	for i, c := range p.Diagonals {
		diag[i] = c.Point
	}
	buf = wire.PutPointVector(buf, diag)
	buf = wire.PutScalarVector(buf, ss, p.ABlinded)
	buf = wire.PutScalarVector(buf, ss, p.BBlinded)
	buf = wire.PutScalar(buf, ss, p.RBlinded)
	buf = wire.PutScalar(buf, ss, p.SBlinded)
	return wire.PutScalar(buf, ss, p.TBlinded)
}

// Unmarshal decodes a Proof off the front of buf, returning the undecoded
// remainder so callers composing this proof into a larger one (e.g.
// crypto/argument/hadamard) can continue decoding from where it left off.
func Unmarshal(buf []byte, order *big.Int, newPoint func() ecc.Point) (Proof, []byte, error) {
	ss := wire.ScalarSize(order)
	a0, rest, err := wire.GetPoint(buf, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	bm, rest, err := wire.GetPoint(rest, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	diagPoints, rest, err := wire.GetPointVector(rest, newPoint)
	if err != nil {
		return Proof{}, nil, err
	}
	diag := make([]pedersen.Commitment, len(diagPoints))
	for i, p := range diagPoints {
		diag[i] = pedersen.Commitment{Point: p}
	}
	aBlinded, rest, err := wire.GetScalarVector(rest, ss)
	if err != nil {
		return Proof{}, nil, err
	}
	bBlinded, rest, err := wire.GetScalarVector(rest, ss)
	if err != nil {
		return Proof{}, nil, err
	}
	r, rest, err := wire.GetScalar(rest, ss)
	if err != nil {
		return Proof{}, nil, err
	}
	s, rest, err := wire.GetScalar(rest, ss)
	if err != nil {
		return Proof{}, nil, err
	}
	t, rest, err := wire.GetScalar(rest, ss)
	if err != nil {
		return Proof{}, nil, err
	}
	return Proof{
		A0Commit:  pedersen.Commitment{Point: a0},
		BmCommit:  pedersen.Commitment{Point: bm},
		Diagonals: diag,
		ABlinded:  aBlinded,
		BBlinded:  bBlinded,
		RBlinded:  r,
		SBlinded:  s,
		TBlinded:  t,
	}, rest, nil
}

// Prove builds a zero-argument that sum_k star(a_k,b_k) = 0.
func Prove(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	curve ecc.Point,
	m, n int,
	star BilinearMap,
	statement Statement,
	witness Witness,
) (Proof, error) {
	order := curve.Order()

	a0, err := vectorutil.SampleVector(order, n)
	if err != nil {
		return Proof{}, err
	}
	r0, err := rand.Int(rand.Reader, order)
	if err != nil {
		return Proof{}, err
	}
	a0Commit, err := ck.Commit(a0, r0)
	if err != nil {
		return Proof{}, err
	}

	bm1 := make([]*big.Int, n)
	for i := range bm1 {
		bm1[i] = big.NewInt(0)
	}
	sm1 := big.NewInt(0)
	bmCommit, err := ck.Commit(bm1, sm1)
	if err != nil {
		return Proof{}, err
	}

	// Build the padded sequences A[0..m], B[0..m] (0-indexed) per the
	// package doc: A[0]=a0, A[i]=a_i; B[0]=b_{m+1}(=0), B[j]=b_{m-j+1}.
	aSeq := make([][]*big.Int, m+1)
	bSeq := make([][]*big.Int, m+1)
	aSeq[0] = a0
	bSeq[0] = bm1
	for k := 1; k <= m; k++ {
		aSeq[k] = witness.column(witness.A, k-1)
		bSeq[m-k+1] = witness.column(witness.B, k-1)
	}

	diagT := make([]*big.Int, 2*m+1)
	diagonals := make([]pedersen.Commitment, 2*m+1)
	for s := 0; s <= 2*m; s++ {
		if s == m+1 {
			diagT[s] = big.NewInt(0)
			c, err := ck.Commit([]*big.Int{big.NewInt(0)}, big.NewInt(0))
			if err != nil {
				return Proof{}, err
			}
			diagonals[s] = c
			continue
		}
		d := big.NewInt(0)
		for i := 0; i <= m; i++ {
			j := s - i
			if j < 0 || j > m {
				continue
			}
			d.Add(d, star(aSeq[i], bSeq[j], order))
			d.Mod(d, order)
		}
		t, err := rand.Int(rand.Reader, order)
		if err != nil {
			return Proof{}, err
		}
		c, err := ck.Commit([]*big.Int{d}, t)
		if err != nil {
			return Proof{}, err
		}
		diagT[s] = t
		diagonals[s] = c
	}

	absorbPublic(ts, ck, m, n, statement, a0Commit, bmCommit, diagonals)
	x := ts.SqueezeScalar(order)

	aBlinded := make([]*big.Int, n)
	copy(aBlinded, a0)
	rBlinded := new(big.Int).Set(r0)

	bBlinded := make([]*big.Int, n)
	copy(bBlinded, bm1)
	sBlinded := new(big.Int).Set(sm1)

	xPow := big.NewInt(1)
	xPowRev := vectorutil.ScalarPowers(x, m, order) // x^0..x^m, used reversed below
	for k := 1; k <= m; k++ {
		xPow.Mul(xPow, x)
		xPow.Mod(xPow, order)

		ak := witness.column(witness.A, k-1)
		for i := range aBlinded {
			term := new(big.Int).Mul(xPow, ak[i])
			aBlinded[i].Add(aBlinded[i], term)
			aBlinded[i].Mod(aBlinded[i], order)
		}
		rTerm := new(big.Int).Mul(xPow, witness.R[k-1])
		rBlinded.Add(rBlinded, rTerm)
		rBlinded.Mod(rBlinded, order)

		xRev := xPowRev[m-k+1]
		bk := witness.column(witness.B, k-1)
		for i := range bBlinded {
			term := new(big.Int).Mul(xRev, bk[i])
			bBlinded[i].Add(bBlinded[i], term)
			bBlinded[i].Mod(bBlinded[i], order)
		}
		sTerm := new(big.Int).Mul(xRev, witness.S[k-1])
		sBlinded.Add(sBlinded, sTerm)
		sBlinded.Mod(sBlinded, order)
	}

	tBlinded := big.NewInt(0)
	xPows := vectorutil.ScalarPowers(x, 2*m, order)
	for s := 0; s <= 2*m; s++ {
		term := new(big.Int).Mul(xPows[s], diagT[s])
		tBlinded.Add(tBlinded, term)
		tBlinded.Mod(tBlinded, order)
	}

	return Proof{
		A0Commit:  a0Commit,
		BmCommit:  bmCommit,
		Diagonals: diagonals,
		ABlinded:  aBlinded,
		BBlinded:  bBlinded,
		RBlinded:  rBlinded,
		SBlinded:  sBlinded,
		TBlinded:  tBlinded,
	}, nil
}

// Verify checks a zero-argument proof against its statement.
func Verify(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	curve ecc.Point,
	m, n int,
	star BilinearMap,
	statement Statement,
	proof Proof,
) error {
	order := curve.Order()

	zeroCommit, err := ck.Commit([]*big.Int{big.NewInt(0)}, big.NewInt(0))
	if err != nil {
		return err
	}
	if len(proof.Diagonals) != 2*m+1 {
		return errs.NewProofVerificationError(errs.ArgZeroArgument)
	}
	if !proof.Diagonals[m+1].Equal(zeroCommit) {
		return errs.NewProofVerificationError(errs.ArgZeroArgument)
	}

	absorbPublic(ts, ck, m, n, statement, proof.A0Commit, proof.BmCommit, proof.Diagonals)
	x := ts.SqueezeScalar(order)

	xPows := vectorutil.ScalarPowers(x, m, order) // 0..m

	// Check 1: A0Commit + sum_{k=1}^m x^k*CommitA[k] == Commit(ABlinded;RBlinded)
	leftA := proof.A0Commit
	for k := 1; k <= m; k++ {
		leftA = pedersen.Add(leftA, pedersen.ScalarMult(statement.CommitmentToA[k-1], xPows[k]))
	}
	rightA, err := ck.Commit(proof.ABlinded, proof.RBlinded)
	if err != nil {
		return err
	}
	if !leftA.Equal(rightA) {
		return errs.NewProofVerificationError(errs.ArgZeroArgument)
	}

	// Check 2: BmCommit + sum_{k=1}^m x^{m-k+1}*CommitB[k] == Commit(BBlinded;SBlinded)
	leftB := proof.BmCommit
	for k := 1; k <= m; k++ {
		leftB = pedersen.Add(leftB, pedersen.ScalarMult(statement.CommitmentToB[k-1], xPows[m-k+1]))
	}
	rightB, err := ck.Commit(proof.BBlinded, proof.SBlinded)
	if err != nil {
		return err
	}
	if !leftB.Equal(rightB) {
		return errs.NewProofVerificationError(errs.ArgZeroArgument)
	}

	// Check 3: sum_s x^s*Diagonals[s] == Commit([star(ABlinded,BBlinded)];TBlinded)
	xPows2m := vectorutil.ScalarPowers(x, 2*m, order)
	leftD, err := vectorutil.DotProductCommitments(xPows2m, proof.Diagonals)
	if err != nil {
		return fmt.Errorf("zeroarg: %w", err)
	}
	starVal := star(proof.ABlinded, proof.BBlinded, order)
	rightD, err := ck.Commit([]*big.Int{starVal}, proof.TBlinded)
	if err != nil {
		return err
	}
	if !leftD.Equal(rightD) {
		return errs.NewProofVerificationError(errs.ArgZeroArgument)
	}

	return nil
}

func absorbPublic(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	m, n int,
	statement Statement,
	a0Commit, bmCommit pedersen.Commitment,
	diagonals []pedersen.Commitment,
) {
	ts.AbsorbLabel("zero-argument")
	ts.AbsorbPoints("zeroarg-ck-g", ck.G...)
	ts.AbsorbPoints("zeroarg-ck-h", ck.H)
	ts.AbsorbUint32("zeroarg-m", uint32(m))
	ts.AbsorbUint32("zeroarg-n", uint32(n))
	ts.AbsorbPoints("zeroarg-a0", a0Commit.Point)
	ts.AbsorbPoints("zeroarg-bm", bmCommit.Point)
	for _, c := range statement.CommitmentToA {
		ts.AbsorbPoints("zeroarg-ca", c.Point)
	}
	for _, c := range statement.CommitmentToB {
		ts.AbsorbPoints("zeroarg-cb", c.Point)
	}
	for _, d := range diagonals {
		ts.AbsorbPoints("zeroarg-diag", d.Point)
	}
}
