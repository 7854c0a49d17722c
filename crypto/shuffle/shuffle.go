// Package shuffle implements the Bayer-Groth shuffle argument, composed
// from the product and multi-exponentiation arguments.
//
// Given an original deck C_1..C_N and a claimed shuffled-and-remasked deck
// C'_1..C'_N, it proves existence of a permutation π and re-randomizers ρ
// such that C'_j is a valid re-encryption of C_π(j), without revealing π or
// ρ.
//
// Construction. The verifier's challenge x turns the secret permutation
// into an exponent vector indexed by *input* position: c_{π(j)} = x^{j+1},
// i.e. c_i = x^{π^-1(i)+1}. The prover commits to c (one vector commitment
// over the whole N-length deck) and proves two things against that single
// commitment, bound together by the shared Fiat-Shamir transcript:
//
//  1. prod(c) == prod(x^1,...,x^N) — a product argument; since a
//     permutation's image is exactly {1,...,N}, this holds iff c really is
//     some rearrangement of the powers x^1..x^N.
//  2. sum_j x^{j+1}*C'_j == sum_j c_j*C_j + Enc(0;ρ) — a multi-exponentiation
//     argument; combined with (1), this ties the rearrangement to a genuine
//     re-encryption of the original deck under that same permutation.
package shuffle

import (
	"crypto/rand"
	"math/big"

	"github.com/barnettsmart/mentalpoker/crypto/argument/multiexp"
	"github.com/barnettsmart/mentalpoker/crypto/argument/product"
	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/elgamal"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
	"github.com/barnettsmart/mentalpoker/crypto/pedersen"
	"github.com/barnettsmart/mentalpoker/crypto/transcript"
	"github.com/barnettsmart/mentalpoker/crypto/wire"
	"github.com/barnettsmart/mentalpoker/internal/vectorutil"
)

// Statement is the public input: the original and shuffled decks, each of
// length N.
type Statement struct {
	C      []elgamal.Ciphertext
	CPrime []elgamal.Ciphertext
}

// Witness is the prover's private input: the permutation (Perm[j] is the
// 0-indexed original position contributing to shuffled position j) and the
// re-randomization exponent used at each shuffled position.
type Witness struct {
	Perm []int
	Rho  []*big.Int
}

// Proof bundles the commitment to the permutation's exponent encoding and
// the two sub-arguments tying it to the deck.
type Proof struct {
	CommitmentToC pedersen.Commitment
	ProductProof  product.Proof
	MultiExpProof multiexp.Proof
}

// Marshal returns the canonical encoding of the proof.
// The product sub-argument is always run with m=1 here (one committed
// exponent column over the whole deck), so its Hadamard sub-proof is never
// present.
func (p Proof) Marshal(order *big.Int) []byte {
	buf := wire.PutPoint(nil, p.CommitmentToC.Point)
	buf = append(buf, p.ProductProof.Marshal(order, 1)...)
	return append(buf, p.MultiExpProof.Marshal(order)...)
}

// Unmarshal decodes a shuffle Proof from buf.
func Unmarshal(buf []byte, order *big.Int, newPoint func() ecc.Point) (Proof, error) {
	c, rest, err := wire.GetPoint(buf, newPoint)
	if err != nil {
		return Proof{}, err
	}
	pp, rest, err := product.Unmarshal(rest, order, 1, newPoint)
	if err != nil {
		return Proof{}, err
	}
	mp, _, err := multiexp.Unmarshal(rest, order, newPoint)
	if err != nil {
		return Proof{}, err
	}
	return Proof{CommitmentToC: pedersen.Commitment{Point: c}, ProductProof: pp, MultiExpProof: mp}, nil
}

// Prove builds a shuffle argument that CPrime is a valid shuffle-and-remask
// of C under the given permutation and randomizers.
func Prove(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	pp elgamal.Parameters,
	pk ecc.Point,
	curve ecc.Point,
	statement Statement,
	witness Witness,
) (Proof, error) {
	order := curve.Order()
	n := len(statement.C)
	if n != len(statement.CPrime) || n != len(witness.Perm) || n != len(witness.Rho) {
		return Proof{}, errs.ErrInvalidLength
	}

	ts.AbsorbLabel("shuffle")
	for _, c := range statement.C {
		ts.AbsorbPoints("shuffle-c", c.U, c.V)
	}
	for _, c := range statement.CPrime {
		ts.AbsorbPoints("shuffle-cprime", c.U, c.V)
	}
	x := ts.SqueezeScalar(order)
	xPow := vectorutil.ScalarPowers(x, n, order) // x^0..x^n

	// c must be indexed by input position: CPrime[j] = C[perm[j]] + noise, so
	// eout sums x^{j+1}*CPrime[j] = x^{j+1}*C[perm[j]] + ..., which only
	// matches Σ_i c[i]*C[i] if c[perm[j]] = x^{j+1} (scatter by perm, not
	// gather), i.e. c[i] = x^{invPerm(i)+1}.
	c := make([]*big.Int, n)
	for j, p := range witness.Perm {
		c[p] = new(big.Int).Set(xPow[j+1])
	}

	r, err := rand.Int(rand.Reader, order)
	if err != nil {
		return Proof{}, err
	}
	commitC, err := ck.Commit(c, r)
	if err != nil {
		return Proof{}, err
	}
	ts.AbsorbPoints("shuffle-commitc", commitC.Point)

	target := vectorutil.Product(xPow[1:], order)
	productProof, err := product.Prove(ts, ck, curve, 1, n,
		product.Statement{CommitmentToA: []pedersen.Commitment{commitC}, B: target},
		product.Witness{A: c, R: []*big.Int{r}})
	if err != nil {
		return Proof{}, err
	}

	eout := elgamal.ScalarMult(statement.CPrime[0], xPow[1])
	for j := 1; j < n; j++ {
		eout = elgamal.Add(eout, elgamal.ScalarMult(statement.CPrime[j], xPow[j+1]))
	}

	rhoCombined := big.NewInt(0)
	for j := range witness.Rho {
		term := new(big.Int).Mul(xPow[j+1], witness.Rho[j])
		rhoCombined.Add(rhoCombined, term)
		rhoCombined.Mod(rhoCombined, order)
	}

	multiExpProof, err := multiexp.Prove(ts, ck, pp, pk, curve, 1, n,
		multiexp.Statement{C: statement.C, CommitmentToB: []pedersen.Commitment{commitC}, EOut: []elgamal.Ciphertext{eout}},
		multiexp.Witness{B: c, R: []*big.Int{r}, Rho: []*big.Int{rhoCombined}})
	if err != nil {
		return Proof{}, err
	}

	return Proof{CommitmentToC: commitC, ProductProof: productProof, MultiExpProof: multiExpProof}, nil
}

// Verify checks a shuffle argument against its statement.
func Verify(
	ts *transcript.Transcript,
	ck pedersen.CommitKey,
	pp elgamal.Parameters,
	pk ecc.Point,
	curve ecc.Point,
	statement Statement,
	proof Proof,
) error {
	order := curve.Order()
	n := len(statement.C)
	if n != len(statement.CPrime) {
		return errs.ErrInvalidLength
	}

	ts.AbsorbLabel("shuffle")
	for _, c := range statement.C {
		ts.AbsorbPoints("shuffle-c", c.U, c.V)
	}
	for _, c := range statement.CPrime {
		ts.AbsorbPoints("shuffle-cprime", c.U, c.V)
	}
	x := ts.SqueezeScalar(order)
	xPow := vectorutil.ScalarPowers(x, n, order)
	ts.AbsorbPoints("shuffle-commitc", proof.CommitmentToC.Point)

	target := vectorutil.Product(xPow[1:], order)
	if err := product.Verify(ts, ck, curve, 1, n,
		product.Statement{CommitmentToA: []pedersen.Commitment{proof.CommitmentToC}, B: target},
		proof.ProductProof); err != nil {
		return err
	}

	eout := elgamal.ScalarMult(statement.CPrime[0], xPow[1])
	for j := 1; j < n; j++ {
		eout = elgamal.Add(eout, elgamal.ScalarMult(statement.CPrime[j], xPow[j+1]))
	}

	if err := multiexp.Verify(ts, ck, pp, pk, curve, 1, n,
		multiexp.Statement{C: statement.C, CommitmentToB: []pedersen.Commitment{proof.CommitmentToC}, EOut: []elgamal.Ciphertext{eout}},
		proof.MultiExpProof); err != nil {
		return err
	}

	return nil
}
