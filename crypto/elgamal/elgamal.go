// Package elgamal implements exponential ElGamal over a generic prime-order
// group (the HP layer's item (i), spec.md §4.3). It is grounded on the
// teacher's crypto/elgamal package, generalized from scalar-message ballots
// (which recover plaintexts by baby-step/giant-step over a bounded range) to
// arbitrary group-element plaintexts, since mental-poker cards are opaque
// group elements with no bounded discrete log to search.
package elgamal

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
)

// Parameters fixes the ElGamal generator shared by every key and ciphertext.
type Parameters struct {
	Generator ecc.Point
}

// Setup derives ElGamal parameters from a curve instance's own generator.
func Setup(curve ecc.Point) Parameters {
	g := curve.New()
	g.SetGenerator()
	return Parameters{Generator: g}
}

// KeyGen samples a fresh secret scalar and derives the matching public key.
func KeyGen(pp Parameters) (pk ecc.Point, sk *big.Int, err error) {
	order := pp.Generator.Order()
	sk, err = rand.Int(rand.Reader, order)
	if err != nil {
		return nil, nil, fmt.Errorf("elgamal: keygen: %w", err)
	}
	pk = pp.Generator.New()
	pk.ScalarMult(pp.Generator, sk)
	return pk, sk, nil
}

// Ciphertext is an exponential-ElGamal ciphertext (U, V) = (r*G, M + r*PK).
type Ciphertext struct {
	U ecc.Point
	V ecc.Point
}

// Marshal returns the canonical encoding of the ciphertext: U's encoding
// followed by V's encoding, each fixed-length per the curve, with no length
// prefix.
func (c Ciphertext) Marshal() []byte {
	return append(append([]byte{}, c.U.Marshal()...), c.V.Marshal()...)
}

// SerializedSize returns the byte length of Marshal's output.
func (c Ciphertext) SerializedSize() int {
	return c.U.SerializedSize() + c.V.SerializedSize()
}

// Unmarshal decodes a Ciphertext from buf, using newPoint to allocate the
// points U and V are decoded into.
func Unmarshal(buf []byte, newPoint func() ecc.Point) (Ciphertext, error) {
	u := newPoint()
	size := u.SerializedSize()
	if len(buf) < 2*size {
		return Ciphertext{}, fmt.Errorf("elgamal: unmarshal: %w", errs.ErrSerialization)
	}
	if err := u.Unmarshal(buf[:size]); err != nil {
		return Ciphertext{}, err
	}
	v := newPoint()
	if err := v.Unmarshal(buf[size : 2*size]); err != nil {
		return Ciphertext{}, err
	}
	return Ciphertext{U: u, V: v}, nil
}

// MarshalJSON renders U and V via their own JSON encodings, for logging and
// snapshotting. This
// is a one-way convenience: the canonical round-trip contract
// is Marshal/Unmarshal, not JSON, since a JSON ciphertext can't be decoded
// back into an ecc.Point without already knowing its concrete curve type.
func (c Ciphertext) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		U, V ecc.Point
	}{U: c.U, V: c.V})
}

// Encrypt computes (U,V) = (r*G, M + r*PK) for plaintext point m under public
// key pk and randomness r.
func Encrypt(pp Parameters, pk ecc.Point, m ecc.Point, r *big.Int) Ciphertext {
	u := pp.Generator.New()
	u.ScalarMult(pp.Generator, r)

	s := pk.New()
	s.ScalarMult(pk, r)

	v := pk.New()
	v.Add(m, s)

	return Ciphertext{U: u, V: v}
}

// Decrypt recovers the plaintext point M = V - sk*U.
func Decrypt(sk *big.Int, c Ciphertext) ecc.Point {
	s := c.U.New()
	s.ScalarMult(c.U, sk)
	s.Neg(s)

	m := c.V.New()
	m.Add(c.V, s)
	return m
}

// Add sets the receiver to the componentwise sum of two ciphertexts,
// exploiting exponential ElGamal's additive homomorphism over the
// plaintext group. Used by remasking (adding an encryption of
// the identity) and by the shuffle argument's re-encryption identity.
func Add(a, b Ciphertext) Ciphertext {
	u := a.U.New()
	u.Add(a.U, b.U)
	v := a.V.New()
	v.Add(a.V, b.V)
	return Ciphertext{U: u, V: v}
}

// ScalarMult scales a ciphertext by a scalar, exploiting the
// scalar-multiplicative structure over the plaintext group: scalar*(U,V)
// encrypts scalar*M under the same key and scalar*r.
func ScalarMult(c Ciphertext, scalar *big.Int) Ciphertext {
	u := c.U.New()
	u.ScalarMult(c.U, scalar)
	v := c.V.New()
	v.ScalarMult(c.V, scalar)
	return Ciphertext{U: u, V: v}
}

// EncryptZero encrypts the group identity under pk with randomness r — the
// building block for remasking, which adds this to an existing ciphertext to
// rerandomize it without changing its plaintext.
func EncryptZero(pp Parameters, pk ecc.Point, r *big.Int) Ciphertext {
	zero := pp.Generator.New()
	zero.SetZero()
	return Encrypt(pp, pk, zero, r)
}
