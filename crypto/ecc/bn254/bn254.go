// Package bn254 implements the GA (group abstraction) interface over BN254's
// G1 group. It wraps gnark-crypto's affine arithmetic to conform to
// ecc.Point.
package bn254

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	curve "github.com/barnettsmart/mentalpoker/crypto/ecc"
)

// CurveType is the identifier for this GA realization.
const CurveType = "bn254"

// Generator is the base generator point for BN254's G1, in Jacobian form.
var Generator bn254.G1Jac

func init() {
	Generator.X.SetOne()
	Generator.Y.SetUint64(2)
	Generator.Z.SetOne()
}

// G1 is the affine representation of a G1 group element.
type G1 struct {
	inner *bn254.G1Affine
}

// New returns a fresh identity point on G1.
func (g *G1) New() curve.Point {
	return &G1{inner: new(bn254.G1Affine)}
}

// Order returns the order of the BN254 scalar field.
func (g *G1) Order() *big.Int {
	return fr.Modulus()
}

// Add sets the receiver to a+b.
func (g *G1) Add(a, b curve.Point) curve.Point {
	g.inner.Add(a.(*G1).inner, b.(*G1).inner)
	return g
}

// ScalarMult sets the receiver to scalar*a.
func (g *G1) ScalarMult(a curve.Point, scalar *big.Int) curve.Point {
	g.inner.ScalarMultiplication(a.(*G1).inner, scalar)
	return g
}

// ScalarBaseMult sets the receiver to scalar*G.
func (g *G1) ScalarBaseMult(scalar *big.Int) curve.Point {
	g.inner.ScalarMultiplicationBase(scalar)
	return g
}

// MultiScalarMult sets the receiver to sum(scalars[i]*points[i]). This is the
// mandatory MSM primitive the shuffle argument depends on for efficiency and
// for the homomorphic identities it exercises.
func (g *G1) MultiScalarMult(points []curve.Point, scalars []*big.Int) (curve.Point, error) {
	if len(points) != len(scalars) {
		return nil, fmt.Errorf("bn254: MultiScalarMult length mismatch: %d points, %d scalars", len(points), len(scalars))
	}
	bases := make([]bn254.G1Affine, len(points))
	frScalars := make([]fr.Element, len(scalars))
	for i, p := range points {
		bases[i] = *p.(*G1).inner
		frScalars[i].SetBigInt(scalars[i])
	}
	if _, err := g.inner.MultiExp(bases, frScalars, ecc.MultiExpConfig{}); err != nil {
		return nil, fmt.Errorf("bn254: multi-scalar multiplication failed: %w", err)
	}
	return g, nil
}

// Marshal serializes the point in gnark-crypto's compressed form.
func (g *G1) Marshal() []byte {
	buf := g.inner.Bytes()
	return buf[:]
}

// Unmarshal deserializes a point from a byte slice.
func (g *G1) Unmarshal(buf []byte) error {
	_, err := g.inner.SetBytes(buf)
	return err
}

// SerializedSize returns the byte length of Marshal's output.
func (g *G1) SerializedSize() int {
	return bn254.SizeOfG1AffineCompressed
}

// MarshalUncompressed serializes the point in gnark-crypto's uncompressed
// form: both affine coordinates, no sign bit.
func (g *G1) MarshalUncompressed() []byte {
	buf := g.inner.RawBytes()
	return buf[:]
}

// SerializedSizeUncompressed returns the byte length of
// MarshalUncompressed's output.
func (g *G1) SerializedSizeUncompressed() int {
	return bn254.SizeOfG1AffineUncompressed
}

// MarshalJSON serializes the point as its affine coordinates.
func (g *G1) MarshalJSON() ([]byte, error) {
	x := g.inner.X.BigInt(new(big.Int))
	y := g.inner.Y.BigInt(new(big.Int))
	return json.Marshal([2]*big.Int{x, y})
}

// UnmarshalJSON deserializes the point from its affine coordinates.
func (g *G1) UnmarshalJSON(buf []byte) error {
	if g.inner == nil {
		g.inner = new(bn254.G1Affine)
	}
	var coords [2]*big.Int
	if err := json.Unmarshal(buf, &coords); err != nil {
		return err
	}
	g.inner.X.SetBigInt(coords[0])
	g.inner.Y.SetBigInt(coords[1])
	return nil
}

// Equal reports whether the receiver and a represent the same element.
func (g *G1) Equal(a curve.Point) bool {
	return g.inner.Equal(a.(*G1).inner)
}

// Neg sets the receiver to -a.
func (g *G1) Neg(a curve.Point) curve.Point {
	g.inner.Neg(a.(*G1).inner)
	return g
}

// SetZero sets the receiver to the group identity.
func (g *G1) SetZero() curve.Point {
	g.inner.X.SetZero()
	g.inner.Y.SetZero()
	return g
}

// Set copies a into the receiver.
func (g *G1) Set(a curve.Point) curve.Point {
	g.inner.X.Set(&a.(*G1).inner.X)
	g.inner.Y.Set(&a.(*G1).inner.Y)
	return g
}

// SetGenerator sets the receiver to the curve's distinguished generator.
func (g *G1) SetGenerator() curve.Point {
	g.inner.FromJacobian(&Generator)
	return g
}

// String returns a hex string representation of the point.
func (g *G1) String() string {
	return fmt.Sprintf("%x", g.Marshal())
}

// Point returns the affine x and y coordinates of the point.
func (g *G1) Point() (*big.Int, *big.Int) {
	return g.inner.X.BigInt(new(big.Int)), g.inner.Y.BigInt(new(big.Int))
}

// SetPoint returns a new point with the given x and y coordinates; the
// receiver is left unchanged.
func (g *G1) SetPoint(x, y *big.Int) curve.Point {
	out := &G1{inner: new(bn254.G1Affine)}
	out.inner.X.SetBigInt(x)
	out.inner.Y.SetBigInt(y)
	return out
}

// Type returns the curve implementation identifier.
func (g *G1) Type() string {
	return CurveType
}
