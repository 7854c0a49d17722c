// Package ecc defines the generic prime-order group interface every other
// package in this module is built against. Concrete curves (crypto/ecc/bn254)
// implement it; everything above this layer treats Point as a black box.
package ecc

import "math/big"

// Point is a prime-order group element. Implementations are mutable value
// receivers: the receiver of every mutating method holds the result, mirroring
// the in-place arithmetic style used throughout the module (New returns a
// fresh zero value to mutate into, rather than allocating per operation).
type Point interface {
	// New returns a fresh identity-element point on the same curve.
	New() Point

	// Order returns the prime order of the scalar field.
	Order() *big.Int

	// Add sets the receiver to a+b.
	Add(a, b Point) Point

	// Neg sets the receiver to -a.
	Neg(a Point) Point

	// Set copies a into the receiver.
	Set(a Point) Point

	// SetZero sets the receiver to the group identity.
	SetZero() Point

	// SetGenerator sets the receiver to the curve's distinguished generator.
	SetGenerator() Point

	// ScalarMult sets the receiver to scalar*a.
	ScalarMult(a Point, scalar *big.Int) Point

	// ScalarBaseMult sets the receiver to scalar*G, where G is the generator.
	ScalarBaseMult(scalar *big.Int) Point

	// MultiScalarMult sets the receiver to the sum of scalars[i]*points[i].
	// len(points) must equal len(scalars); implementations return an error
	// otherwise rather than panicking, since callers build both slices from
	// independently-sized data.
	MultiScalarMult(points []Point, scalars []*big.Int) (Point, error)

	// Equal reports whether the receiver and a represent the same element.
	Equal(a Point) bool

	// Marshal returns the canonical compressed encoding of the point
	// (x-coordinate plus sign bit).
	Marshal() []byte

	// Unmarshal decodes a canonical compressed or uncompressed encoding
	// into the receiver.
	Unmarshal(buf []byte) error

	// SerializedSize returns the byte length of Marshal's output.
	SerializedSize() int

	// MarshalUncompressed returns the uncompressed encoding of the point
	// (both coordinates, no sign bit).
	MarshalUncompressed() []byte

	// SerializedSizeUncompressed returns the byte length of
	// MarshalUncompressed's output.
	SerializedSizeUncompressed() int

	// Type returns the curve implementation identifier (e.g. "bn254").
	Type() string
}
