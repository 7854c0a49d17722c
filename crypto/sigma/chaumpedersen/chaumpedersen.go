// Package chaumpedersen implements the Chaum-Pedersen discrete-log equality
// Sigma protocol, made non-interactive via Fiat-Shamir.
// Grounded on
// original_source/proof-essentials/src/zkp/proofs/chaum_pedersen_dl_equality.
//
// It proves log_g(X) == log_h(Y) for a shared witness w, without revealing w.
// This module uses it three times: the masking/remasking proof (w is the
// ElGamal encryption randomness), and the reveal-token proof (w is a
// player's secret key).
package chaumpedersen

import (
	"crypto/rand"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
	"github.com/barnettsmart/mentalpoker/crypto/wire"
)

// Proof is (A, B, r): A = omega*g, B = omega*h, r = omega + c*w.
type Proof struct {
	A ecc.Point
	B ecc.Point
	R *big.Int
}

// Marshal returns A's encoding, then B's, then r's fixed-width little-endian
// encoding.
func (p Proof) Marshal() []byte {
	buf := wire.PutPoint(nil, p.A)
	buf = wire.PutPoint(buf, p.B)
	return wire.PutScalar(buf, wire.ScalarSize(p.A.Order()), p.R)
}

// Unmarshal decodes a Proof from buf, using newPoint to allocate the points
// A and B are decoded into.
func Unmarshal(buf []byte, newPoint func() ecc.Point) (Proof, error) {
	a, rest, err := wire.GetPoint(buf, newPoint)
	if err != nil {
		return Proof{}, err
	}
	b, rest, err := wire.GetPoint(rest, newPoint)
	if err != nil {
		return Proof{}, err
	}
	r, _, err := wire.GetScalar(rest, wire.ScalarSize(a.Order()))
	if err != nil {
		return Proof{}, err
	}
	return Proof{A: a, B: b, R: r}, nil
}

// SerializedSize returns the byte length of Marshal's output.
func (p Proof) SerializedSize() int {
	return p.A.SerializedSize() + p.B.SerializedSize() + wire.ScalarSize(p.A.Order())
}

func absorbStatement(ts *transcript.Transcript, g, h, x, y, a, b ecc.Point) {
	ts.AbsorbLabel("chaum-pedersen")
	ts.AbsorbPoints("cp-g", g)
	ts.AbsorbPoints("cp-h", h)
	ts.AbsorbPoints("cp-x", x)
	ts.AbsorbPoints("cp-y", y)
	ts.AbsorbPoints("cp-a", a)
	ts.AbsorbPoints("cp-b", b)
}

// Prove proves that X = w*g and Y = w*h share the discrete log w.
func Prove(ts *transcript.Transcript, g, h, x, y ecc.Point, w *big.Int) (Proof, error) {
	order := g.Order()
	omega, err := rand.Int(rand.Reader, order)
	if err != nil {
		return Proof{}, err
	}

	a := g.New()
	a.ScalarMult(g, omega)
	b := h.New()
	b.ScalarMult(h, omega)

	absorbStatement(ts, g, h, x, y, a, b)
	c := ts.SqueezeScalar(order)

	r := new(big.Int).Mul(c, w)
	r.Add(r, omega)
	r.Mod(r, order)

	return Proof{A: a, B: b, R: r}, nil
}

// Verify checks r*g == A + c*X and r*h == B + c*Y, returning a
// *errs.ProofVerificationError named errs.ArgChaumPedersen on failure.
func Verify(ts *transcript.Transcript, g, h, x, y ecc.Point, proof Proof) error {
	order := g.Order()
	absorbStatement(ts, g, h, x, y, proof.A, proof.B)
	c := ts.SqueezeScalar(order)

	left1 := g.New()
	left1.ScalarMult(g, proof.R)
	right1 := g.New()
	cx := g.New()
	cx.ScalarMult(x, c)
	right1.Add(proof.A, cx)
	if !left1.Equal(right1) {
		return errs.NewProofVerificationError(errs.ArgChaumPedersen)
	}

	left2 := h.New()
	left2.ScalarMult(h, proof.R)
	right2 := h.New()
	cy := h.New()
	cy.ScalarMult(y, c)
	right2.Add(proof.B, cy)
	if !left2.Equal(right2) {
		return errs.NewProofVerificationError(errs.ArgChaumPedersen)
	}

	return nil
}
