// Package wire holds the shared canonical-encoding helpers every proof and
// commitment type in this module composes its Marshal/Unmarshal out of
//: a u32 length prefix for vectors, little-endian fixed-width
// scalars sized to the group's own order, and group elements via their own
// compressed Marshal/Unmarshal. Centralizing the container format here is
// what lets every sub-argument's proof type round-trip without restating
// the length-prefix/byte-order convention at each call site.
package wire

import (
	"encoding/binary"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
)

// ScalarSize returns the fixed byte width used to encode a scalar from the
// field of the given order.
func ScalarSize(order *big.Int) int {
	return (order.BitLen() + 7) / 8
}

// PutUint32 appends a big-endian u32 length prefix to dst.
func PutUint32(dst []byte, n int) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(n))
	return append(dst, b[:]...)
}

// GetUint32 reads a u32 length prefix off the front of buf.
func GetUint32(buf []byte) (int, []byte, error) {
	if len(buf) < 4 {
		return 0, nil, errs.ErrSerialization
	}
	return int(binary.BigEndian.Uint32(buf[:4])), buf[4:], nil
}

// PutScalar appends x as a little-endian fixed-width scalar of scalarSize
// bytes to dst. x must be non-negative and fit in scalarSize bytes, which
// holds for every scalar this module produces (all are reduced mod a group
// order of that byte width).
func PutScalar(dst []byte, scalarSize int, x *big.Int) []byte {
	be := x.Bytes()
	buf := make([]byte, scalarSize)
	for i := 0; i < len(be) && i < scalarSize; i++ {
		buf[i] = be[len(be)-1-i]
	}
	return append(dst, buf...)
}

// GetScalar reads a little-endian fixed-width scalar off the front of buf.
func GetScalar(buf []byte, scalarSize int) (*big.Int, []byte, error) {
	if len(buf) < scalarSize {
		return nil, nil, errs.ErrSerialization
	}
	le := buf[:scalarSize]
	be := make([]byte, scalarSize)
	for i, b := range le {
		be[scalarSize-1-i] = b
	}
	return new(big.Int).SetBytes(be), buf[scalarSize:], nil
}

// PutScalarVector appends a u32-length-prefixed vector of fixed-width
// scalars to dst.
func PutScalarVector(dst []byte, scalarSize int, xs []*big.Int) []byte {
	dst = PutUint32(dst, len(xs))
	for _, x := range xs {
		dst = PutScalar(dst, scalarSize, x)
	}
	return dst
}

// GetScalarVector reads a u32-length-prefixed vector of fixed-width scalars
// off the front of buf.
func GetScalarVector(buf []byte, scalarSize int) ([]*big.Int, []byte, error) {
	n, rest, err := GetUint32(buf)
	if err != nil {
		return nil, nil, err
	}
	out := make([]*big.Int, n)
	for i := range out {
		var x *big.Int
		x, rest, err = GetScalar(rest, scalarSize)
		if err != nil {
			return nil, nil, err
		}
		out[i] = x
	}
	return out, rest, nil
}

// PutPoint appends p's own compressed encoding to dst.
func PutPoint(dst []byte, p ecc.Point) []byte {
	return append(dst, p.Marshal()...)
}

// GetPoint decodes one point off the front of buf, using newPoint to
// allocate the fresh value Unmarshal decodes into.
func GetPoint(buf []byte, newPoint func() ecc.Point) (ecc.Point, []byte, error) {
	p := newPoint()
	size := p.SerializedSize()
	if len(buf) < size {
		return nil, nil, errs.ErrSerialization
	}
	if err := p.Unmarshal(buf[:size]); err != nil {
		return nil, nil, err
	}
	return p, buf[size:], nil
}

// PutPointVector appends a u32-length-prefixed vector of points to dst.
func PutPointVector(dst []byte, ps []ecc.Point) []byte {
	dst = PutUint32(dst, len(ps))
	for _, p := range ps {
		dst = PutPoint(dst, p)
	}
	return dst
}

// GetPointVector decodes a u32-length-prefixed vector of points off the
// front of buf.
func GetPointVector(buf []byte, newPoint func() ecc.Point) ([]ecc.Point, []byte, error) {
	n, rest, err := GetUint32(buf)
	if err != nil {
		return nil, nil, err
	}
	out := make([]ecc.Point, n)
	for i := range out {
		var p ecc.Point
		p, rest, err = GetPoint(rest, newPoint)
		if err != nil {
			return nil, nil, err
		}
		out[i] = p
	}
	return out, rest, nil
}
