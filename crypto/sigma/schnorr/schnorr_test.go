package schnorr

import (
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/ecc/bn254"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
)

func newGenerator() *bn254.G1 {
	g := (&bn254.G1{}).New().(*bn254.G1)
	g.SetGenerator()
	return g
}

func TestProveVerifyHonest(t *testing.T) {
	c := qt.New(t)
	g := newGenerator()

	x, err := rand.Int(rand.Reader, g.Order())
	c.Assert(err, qt.IsNil)
	X := g.New()
	X.ScalarMult(g, x)

	proof, err := Prove(transcript.New([]byte("seed")), g, X, x, "alice")
	c.Assert(err, qt.IsNil)

	err = Verify(transcript.New([]byte("seed")), g, X, proof, "alice")
	c.Assert(err, qt.IsNil)
}

func TestVerifyRejectsWrongWitness(t *testing.T) {
	c := qt.New(t)
	g := newGenerator()

	x, _ := rand.Int(rand.Reader, g.Order())
	X := g.New()
	X.ScalarMult(g, x)

	wrongX, _ := rand.Int(rand.Reader, g.Order())
	proof, err := Prove(transcript.New([]byte("seed")), g, X, wrongX, "alice")
	c.Assert(err, qt.IsNil)

	err = Verify(transcript.New([]byte("seed")), g, X, proof, "alice")
	c.Assert(err, qt.Not(qt.IsNil))

	var verr *errs.ProofVerificationError
	c.Assert(errors.As(err, &verr), qt.IsTrue)
	c.Assert(verr.Name, qt.Equals, errs.ArgSchnorr)
}

func TestVerifyRejectsWrongLabel(t *testing.T) {
	c := qt.New(t)
	g := newGenerator()

	x, _ := rand.Int(rand.Reader, g.Order())
	X := g.New()
	X.ScalarMult(g, x)

	proof, err := Prove(transcript.New([]byte("seed")), g, X, x, "alice")
	c.Assert(err, qt.IsNil)

	err = Verify(transcript.New([]byte("seed")), g, X, proof, "bob")
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	c := qt.New(t)
	g := newGenerator()

	x, _ := rand.Int(rand.Reader, g.Order())
	X := g.New()
	X.ScalarMult(g, x)

	proof, err := Prove(transcript.New([]byte("seed")), g, X, x, "alice")
	c.Assert(err, qt.IsNil)

	proof.Z.Add(proof.Z, big.NewInt(1))
	err = Verify(transcript.New([]byte("seed")), g, X, proof, "alice")
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestMarshalRoundTrip(t *testing.T) {
	c := qt.New(t)
	g := newGenerator()

	x, _ := rand.Int(rand.Reader, g.Order())
	X := g.New()
	X.ScalarMult(g, x)

	proof, err := Prove(transcript.New([]byte("seed")), g, X, x, "alice")
	c.Assert(err, qt.IsNil)

	buf := proof.Marshal()
	c.Assert(len(buf), qt.Equals, proof.SerializedSize())

	decoded, err := Unmarshal(buf, func() ecc.Point { return newGenerator() })
	c.Assert(err, qt.IsNil)
	c.Assert(decoded.R.Equal(proof.R), qt.IsTrue)
	c.Assert(decoded.Z.Cmp(proof.Z), qt.Equals, 0)
}

