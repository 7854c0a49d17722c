// Package curves is a small registry mapping a curve-type identifier to a GA
// (group abstraction) realization. Only one concrete curve is wired in —
// bn254 — but the registry keeps the GA interface pluggable, the same way
// the teacher's registry supports several curve backends.
package curves

import (
	"fmt"
	"slices"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/ecc/bn254"
)

// New creates a fresh identity-element Point for the named curve type. It
// panics if the type is not registered; callers that need a recoverable
// failure should check IsValid first.
func New(curveType string) ecc.Point {
	switch curveType {
	case bn254.CurveType:
		return (&bn254.G1{}).New()
	default:
		panic(fmt.Sprintf("curves: unsupported curve type %q", curveType))
	}
}

// Curves returns the list of registered curve type identifiers.
func Curves() []string {
	return []string{bn254.CurveType}
}

// IsValid reports whether curveType is registered.
func IsValid(curveType string) bool {
	return slices.Contains(Curves(), curveType)
}
