package hadamard

import (
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/ecc/bn254"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/pedersen"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
	"github.com/barnettsmart/mentalpoker/internal/vectorutil"
)

func newCurve() *bn254.G1 {
	g := (&bn254.G1{}).New().(*bn254.G1)
	g.SetGenerator()
	return g
}

func buildWitness(c *qt.C, curve *bn254.G1, ck pedersen.CommitKey, m, n int) (Statement, Witness, []*big.Int) {
	order := curve.Order()
	a := make([]*big.Int, m*n)
	cols := make([][]*big.Int, m)
	for k := 0; k < m; k++ {
		cols[k] = make([]*big.Int, n)
		for i := 0; i < n; i++ {
			v, _ := rand.Int(rand.Reader, order)
			cols[k][i] = v
			a[k*n+i] = v
		}
	}

	b := cols[0]
	for k := 1; k < m; k++ {
		var err error
		b, err = vectorutil.HadamardProduct(b, cols[k], order)
		c.Assert(err, qt.IsNil)
	}

	r := make([]*big.Int, m)
	commitA := make([]pedersen.Commitment, m)
	for k := 0; k < m; k++ {
		rk, _ := rand.Int(rand.Reader, order)
		r[k] = rk
		ca, err := ck.Commit(cols[k], rk)
		c.Assert(err, qt.IsNil)
		commitA[k] = ca
	}
	s, _ := rand.Int(rand.Reader, order)
	commitB, err := ck.Commit(b, s)
	c.Assert(err, qt.IsNil)

	statement := Statement{CommitmentToA: commitA, CommitmentToB: commitB}
	witness := Witness{A: a, R: r, S: s}
	return statement, witness, b
}

func TestProveVerifyHonest(t *testing.T) {
	c := qt.New(t)
	const m, n = 4, 5
	curve := newCurve()
	ck, err := pedersen.Setup(curve, n)
	c.Assert(err, qt.IsNil)

	statement, witness, _ := buildWitness(c, curve, ck, m, n)

	proof, err := Prove(transcript.New([]byte("seed")), ck, curve, m, n, statement, witness)
	c.Assert(err, qt.IsNil)
	c.Assert(len(proof.CommitmentToX), qt.Equals, m-2)

	err = Verify(transcript.New([]byte("seed")), ck, curve, m, n, statement, proof)
	c.Assert(err, qt.IsNil)
}

func TestProveVerifyHonestThreeColumns(t *testing.T) {
	c := qt.New(t)
	const m, n = 3, 4
	curve := newCurve()
	ck, err := pedersen.Setup(curve, n)
	c.Assert(err, qt.IsNil)

	statement, witness, _ := buildWitness(c, curve, ck, m, n)

	proof, err := Prove(transcript.New([]byte("seed")), ck, curve, m, n, statement, witness)
	c.Assert(err, qt.IsNil)
	c.Assert(len(proof.CommitmentToX), qt.Equals, m-2)

	err = Verify(transcript.New([]byte("seed")), ck, curve, m, n, statement, proof)
	c.Assert(err, qt.IsNil)
}

func TestVerifyRejectsWrongProduct(t *testing.T) {
	c := qt.New(t)
	const m, n = 4, 5
	curve := newCurve()
	order := curve.Order()
	ck, err := pedersen.Setup(curve, n)
	c.Assert(err, qt.IsNil)

	statement, witness, b := buildWitness(c, curve, ck, m, n)

	wrongB := make([]*big.Int, n)
	for i := range wrongB {
		wrongB[i] = new(big.Int).Mod(new(big.Int).Add(b[i], big.NewInt(1)), order)
	}
	wrongS, _ := rand.Int(rand.Reader, order)
	wrongCommitB, err := ck.Commit(wrongB, wrongS)
	c.Assert(err, qt.IsNil)
	statement.CommitmentToB = wrongCommitB
	witness.S = wrongS

	proof, err := Prove(transcript.New([]byte("seed")), ck, curve, m, n, statement, witness)
	c.Assert(err, qt.IsNil)

	err = Verify(transcript.New([]byte("seed")), ck, curve, m, n, statement, proof)
	c.Assert(err, qt.Not(qt.IsNil))

	var verr *errs.ProofVerificationError
	c.Assert(errors.As(err, &verr), qt.IsTrue)
	c.Assert(verr.Name, qt.Equals, errs.ArgHadamardProduct)
}

func TestVerifyRejectsTamperedRunningProduct(t *testing.T) {
	c := qt.New(t)
	const m, n = 4, 5
	curve := newCurve()
	ck, err := pedersen.Setup(curve, n)
	c.Assert(err, qt.IsNil)

	statement, witness, _ := buildWitness(c, curve, ck, m, n)

	proof, err := Prove(transcript.New([]byte("seed")), ck, curve, m, n, statement, witness)
	c.Assert(err, qt.IsNil)
	c.Assert(len(proof.CommitmentToX) > 0, qt.IsTrue)

	proof.CommitmentToX[0] = pedersen.Add(proof.CommitmentToX[0], pedersen.Commitment{Point: ck.H})
	err = Verify(transcript.New([]byte("seed")), ck, curve, m, n, statement, proof)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestMarshalRoundTrip(t *testing.T) {
	c := qt.New(t)
	const m, n = 4, 5
	curve := newCurve()
	order := curve.Order()
	ck, err := pedersen.Setup(curve, n)
	c.Assert(err, qt.IsNil)

	statement, witness, _ := buildWitness(c, curve, ck, m, n)

	proof, err := Prove(transcript.New([]byte("seed")), ck, curve, m, n, statement, witness)
	c.Assert(err, qt.IsNil)

	buf := proof.Marshal(order)
	decoded, rest, err := Unmarshal(buf, order, func() ecc.Point { return newCurve() })
	c.Assert(err, qt.IsNil)
	c.Assert(rest, qt.HasLen, 0)
	c.Assert(len(decoded.CommitmentToX), qt.Equals, len(proof.CommitmentToX))
	for i := range proof.CommitmentToX {
		c.Assert(decoded.CommitmentToX[i].Equal(proof.CommitmentToX[i]), qt.IsTrue)
	}
	c.Assert(decoded.ZeroProof.A0Commit.Equal(proof.ZeroProof.A0Commit), qt.IsTrue)
}
