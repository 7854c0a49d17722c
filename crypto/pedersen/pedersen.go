// Package pedersen implements the HP layer's homomorphic vector commitment
//, grounded on
// original_source/proof-essentials/src/vector_commitment/pedersen/mod.rs.
package pedersen

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/wire"
)

// CommitKey is (g_1..g_n, h): n independent generators plus a blinding base.
type CommitKey struct {
	G []ecc.Point
	H ecc.Point
}

// Setup samples a fresh commit key of capacity n from curve's group, using
// crypto/rand as the source — the key is a public parameter, sampled
// once at protocol setup and then shared.
func Setup(curve ecc.Point, n int) (CommitKey, error) {
	g := make([]ecc.Point, n)
	for i := range g {
		p, err := randomPoint(curve)
		if err != nil {
			return CommitKey{}, fmt.Errorf("pedersen: setup: %w", err)
		}
		g[i] = p
	}
	h, err := randomPoint(curve)
	if err != nil {
		return CommitKey{}, fmt.Errorf("pedersen: setup: %w", err)
	}
	return CommitKey{G: g, H: h}, nil
}

// Marshal returns the canonical encoding of the commit key: g_1..g_n,
// u32-length-prefixed, followed by h.
func (ck CommitKey) Marshal() []byte {
	return wire.PutPoint(wire.PutPointVector(nil, ck.G), ck.H)
}

// UnmarshalCommitKey decodes a CommitKey off the front of buf, using
// newPoint to allocate the points it decodes into, and returns the
// undecoded remainder so callers composing it into a larger encoding (e.g.
// protocol.PP) can continue decoding from where it left off.
func UnmarshalCommitKey(buf []byte, newPoint func() ecc.Point) (CommitKey, []byte, error) {
	g, rest, err := wire.GetPointVector(buf, newPoint)
	if err != nil {
		return CommitKey{}, nil, err
	}
	h, rest, err := wire.GetPoint(rest, newPoint)
	if err != nil {
		return CommitKey{}, nil, err
	}
	return CommitKey{G: g, H: h}, rest, nil
}

func randomPoint(curve ecc.Point) (ecc.Point, error) {
	s, err := rand.Int(rand.Reader, curve.Order())
	if err != nil {
		return nil, err
	}
	p := curve.New()
	p.ScalarBaseMult(s)
	return p, nil
}

// Commitment is a single group element: commit(x,r) = r*h + sum(x_i*g_i).
type Commitment struct {
	Point ecc.Point
}

// Marshal returns the canonical encoding of the commitment.
func (c Commitment) Marshal() []byte { return c.Point.Marshal() }

// SerializedSize returns the byte length of Marshal's output.
func (c Commitment) SerializedSize() int { return c.Point.SerializedSize() }

// Unmarshal decodes a Commitment from buf, using newPoint to allocate the
// point it is decoded into.
func Unmarshal(buf []byte, newPoint func() ecc.Point) (Commitment, error) {
	p := newPoint()
	if err := p.Unmarshal(buf); err != nil {
		return Commitment{}, err
	}
	return Commitment{Point: p}, nil
}

// Add returns the homomorphic sum of two commitments: a commitment to the
// sum of plaintexts under the sum of randoms.
func Add(a, b Commitment) Commitment {
	out := a.Point.New()
	out.Add(a.Point, b.Point)
	return Commitment{Point: out}
}

// ScalarMult returns scalar*commitment, a commitment to scalar*x under
// scalar*r.
func ScalarMult(c Commitment, scalar *big.Int) Commitment {
	out := c.Point.New()
	out.ScalarMult(c.Point, scalar)
	return Commitment{Point: out}
}

// Equal reports whether two commitments encode the same group element.
func (c Commitment) Equal(o Commitment) bool {
	return c.Point.Equal(o.Point)
}

// Commit computes r*h + sum(x_i*g_i). It fails with a CommitmentLengthError
// if len(x) exceeds the commit key's capacity.
func (ck CommitKey) Commit(x []*big.Int, r *big.Int) (Commitment, error) {
	if len(x) > len(ck.G) {
		return Commitment{}, &errs.CommitmentLengthError{
			Scheme: errs.SchemePedersen,
			Got:    len(x),
			Cap:    len(ck.G),
		}
	}

	bases := make([]ecc.Point, 0, len(x)+1)
	scalars := make([]*big.Int, 0, len(x)+1)
	bases = append(bases, ck.H)
	scalars = append(scalars, r)
	bases = append(bases, ck.G[:len(x)]...)
	scalars = append(scalars, x...)

	out, err := ck.H.New().MultiScalarMult(bases, scalars)
	if err != nil {
		return Commitment{}, fmt.Errorf("pedersen: commit: %w", err)
	}
	return Commitment{Point: out}, nil
}
