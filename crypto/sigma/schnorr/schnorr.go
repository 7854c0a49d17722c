// Package schnorr implements the Schnorr identification Sigma protocol
//, made non-interactive via Fiat-Shamir. Grounded on
// original_source/proof-essentials/src/zkp/proofs/schnorr_identification.
package schnorr

import (
	"crypto/rand"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
	"github.com/barnettsmart/mentalpoker/crypto/wire"
)

// Proof is (R, z): R = omega*g, z = omega - c*x.
type Proof struct {
	R ecc.Point
	Z *big.Int
}

// Marshal returns R's compressed encoding followed by z's fixed-width
// little-endian encoding.
func (p Proof) Marshal() []byte {
	buf := wire.PutPoint(nil, p.R)
	return wire.PutScalar(buf, wire.ScalarSize(p.R.Order()), p.Z)
}

// Unmarshal decodes a Proof from buf, using newPoint to allocate the point
// R is decoded into.
func Unmarshal(buf []byte, newPoint func() ecc.Point) (Proof, error) {
	r, rest, err := wire.GetPoint(buf, newPoint)
	if err != nil {
		return Proof{}, err
	}
	z, _, err := wire.GetScalar(rest, wire.ScalarSize(r.Order()))
	if err != nil {
		return Proof{}, err
	}
	return Proof{R: r, Z: z}, nil
}

// SerializedSize returns the byte length of Marshal's output.
func (p Proof) SerializedSize() int {
	return p.R.SerializedSize() + wire.ScalarSize(p.R.Order())
}

func absorbStatement(ts *transcript.Transcript, label string, g, x, r ecc.Point) {
	ts.AbsorbLabel("schnorr-identification")
	ts.AbsorbPoints("schnorr-g", g)
	ts.AbsorbLabel(label)
	ts.AbsorbPoints("schnorr-x", x)
	ts.AbsorbPoints("schnorr-r", r)
}

// Prove proves knowledge of x such that X = x*g, binding the proof to label
// (e.g. a player's byte identifier, per spec.md §4.4.1).
func Prove(ts *transcript.Transcript, g, x ecc.Point, witness *big.Int, label string) (Proof, error) {
	order := g.Order()
	omega, err := rand.Int(rand.Reader, order)
	if err != nil {
		return Proof{}, err
	}

	r := g.New()
	r.ScalarMult(g, omega)

	absorbStatement(ts, label, g, x, r)
	c := ts.SqueezeScalar(order)

	z := new(big.Int).Mul(c, witness)
	z.Sub(omega, z)
	z.Mod(z, order)

	return Proof{R: r, Z: z}, nil
}

// Verify checks that z*g + c*X == R, returning a *errs.ProofVerificationError
// named errs.ArgSchnorr on failure.
func Verify(ts *transcript.Transcript, g, x ecc.Point, proof Proof, label string) error {
	order := g.Order()
	absorbStatement(ts, label, g, x, proof.R)
	c := ts.SqueezeScalar(order)

	left := g.New()
	left.ScalarMult(g, proof.Z)

	cx := g.New()
	cx.ScalarMult(x, c)

	left.Add(left, cx)

	if !left.Equal(proof.R) {
		return errs.NewProofVerificationError(errs.ArgSchnorr)
	}
	return nil
}
