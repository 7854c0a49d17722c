// Package vectorutil collects the small scalar/vector helpers the SA and SH
// layers share: scalar-power ladders, dot products, and permutation
// utilities. Grounded on original_source/proof-essentials/src/utils and
// other_examples' cjpatton-shuffle Fisher-Yates permutation generator.
package vectorutil

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/pedersen"
)

// ScalarPowers returns [x^0, x^1, ..., x^n] mod order.
func ScalarPowers(x *big.Int, n int, order *big.Int) []*big.Int {
	powers := make([]*big.Int, n+1)
	powers[0] = big.NewInt(1)
	for i := 1; i <= n; i++ {
		powers[i] = new(big.Int).Mul(powers[i-1], x)
		powers[i].Mod(powers[i], order)
	}
	return powers
}

// DotProductScalars returns sum(a[i]*b[i]) mod order.
func DotProductScalars(a, b []*big.Int, order *big.Int) (*big.Int, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("vectorutil: dot product length mismatch: %d vs %d", len(a), len(b))
	}
	sum := new(big.Int)
	for i := range a {
		term := new(big.Int).Mul(a[i], b[i])
		sum.Add(sum, term)
		sum.Mod(sum, order)
	}
	return sum, nil
}

// DotProductCommitments returns sum(scalars[i]*commitments[i]) using the
// commitment group's homomorphism — used by the zero-argument to fold a
// vector of committed diagonals against a vector of challenge powers.
func DotProductCommitments(scalars []*big.Int, commitments []pedersen.Commitment) (pedersen.Commitment, error) {
	if len(scalars) != len(commitments) {
		return pedersen.Commitment{}, fmt.Errorf("vectorutil: dot product length mismatch: %d vs %d", len(scalars), len(commitments))
	}
	if len(commitments) == 0 {
		return pedersen.Commitment{}, fmt.Errorf("vectorutil: dot product over empty vectors")
	}
	out := pedersen.ScalarMult(commitments[0], scalars[0])
	for i := 1; i < len(commitments); i++ {
		out = pedersen.Add(out, pedersen.ScalarMult(commitments[i], scalars[i]))
	}
	return out, nil
}

// HadamardProduct returns the entrywise product c_i = a_i * b_i mod order.
func HadamardProduct(a, b []*big.Int, order *big.Int) ([]*big.Int, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("vectorutil: hadamard product length mismatch: %d vs %d", len(a), len(b))
	}
	out := make([]*big.Int, len(a))
	for i := range a {
		out[i] = new(big.Int).Mul(a[i], b[i])
		out[i].Mod(out[i], order)
	}
	return out, nil
}

// Product returns the product of all entries mod order.
func Product(a []*big.Int, order *big.Int) *big.Int {
	out := big.NewInt(1)
	for _, v := range a {
		out.Mul(out, v)
		out.Mod(out, order)
	}
	return out
}

// SampleVector samples a length-n vector of uniformly random field elements.
func SampleVector(order *big.Int, n int) ([]*big.Int, error) {
	out := make([]*big.Int, n)
	for i := range out {
		v, err := rand.Int(rand.Reader, order)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// RandomPermutation returns a uniformly random permutation of [0,n) using a
// Fisher-Yates shuffle.
func RandomPermutation(n int) ([]int, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, err
		}
		j := int(jBig.Int64())
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm, nil
}

// InversePermutation returns the inverse of perm, i.e. inv[perm[i]] = i.
func InversePermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}

// MSM is a convenience wrapper over ecc.Point.MultiScalarMult that allocates
// the accumulator from base.
func MSM(base ecc.Point, points []ecc.Point, scalars []*big.Int) (ecc.Point, error) {
	return base.New().MultiScalarMult(points, scalars)
}
