package protocol

import (
	"crypto/rand"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/barnettsmart/mentalpoker/crypto/elgamal"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
)

func TestSetup(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 4, 13)
	c.Assert(err, qt.IsNil)
	c.Assert(pp.DeckSize(), qt.Equals, 52)
}

func TestSetupRejectsBadShape(t *testing.T) {
	c := qt.New(t)
	_, err := Setup("bn254", 0, 13)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestKeyOwnershipRoundTrip(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)

	pk, sk, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)

	proof, err := ProveKeyOwnership(pp, pk, sk, "alice")
	c.Assert(err, qt.IsNil)

	err = VerifyKeyOwnership(pp, pk, "alice", proof)
	c.Assert(err, qt.IsNil)

	err = VerifyKeyOwnership(pp, pk, "bob", proof)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestComputeAggregateKey(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)

	var contributions []KeyContribution
	for _, label := range []string{"p0", "p1", "p2"} {
		pk, sk, err := PlayerKeyGen(pp)
		c.Assert(err, qt.IsNil)
		proof, err := ProveKeyOwnership(pp, pk, sk, label)
		c.Assert(err, qt.IsNil)
		contributions = append(contributions, KeyContribution{PK: pk, Proof: proof, Label: label})
	}

	aggPK, err := ComputeAggregateKey(pp, contributions)
	c.Assert(err, qt.IsNil)
	c.Assert(aggPK, qt.Not(qt.IsNil))
}

func TestComputeAggregateKeyAbortsOnBadProof(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)

	pk, sk, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)
	proof, err := ProveKeyOwnership(pp, pk, sk, "p0")
	c.Assert(err, qt.IsNil)

	otherPK, _, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)

	contributions := []KeyContribution{{PK: otherPK, Proof: proof, Label: "p0"}}
	_, err = ComputeAggregateKey(pp, contributions)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestMaskRemaskRoundTrip(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)
	pk, _, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)

	card := pp.curve().New()
	card.SetGenerator()

	r, err := SampleRandomScalar(pp)
	c.Assert(err, qt.IsNil)
	m, maskProof, err := Mask(pp, pk, card, r)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifyMask(pp, pk, card, m, maskProof), qt.IsNil)

	r2, err := SampleRandomScalar(pp)
	c.Assert(err, qt.IsNil)
	mPrime, remaskProof, err := Remask(pp, pk, m, r2)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifyRemask(pp, pk, m, mPrime, remaskProof), qt.IsNil)
}

func TestVerifyMaskRejectsWrongCard(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)
	pk, _, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)

	card := pp.curve().New()
	card.SetGenerator()
	otherCard := pp.curve().New()
	s, _ := rand.Int(rand.Reader, pp.curve().Order())
	otherCard.ScalarBaseMult(s)

	r, err := SampleRandomScalar(pp)
	c.Assert(err, qt.IsNil)
	m, maskProof, err := Mask(pp, pk, card, r)
	c.Assert(err, qt.IsNil)

	err = VerifyMask(pp, pk, otherCard, m, maskProof)
	c.Assert(err, qt.Not(qt.IsNil))

	var verr *errs.ProofVerificationError
	c.Assert(errors.As(err, &verr), qt.IsTrue)
}

func TestRevealUnmaskRoundTrip(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)

	pk1, sk1, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)
	pk2, sk2, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)

	aggPK := pk1.New()
	aggPK.Add(pk1, pk2)

	card := pp.curve().New()
	card.SetGenerator()

	r, err := SampleRandomScalar(pp)
	c.Assert(err, qt.IsNil)
	m, _, err := Mask(pp, aggPK, card, r)
	c.Assert(err, qt.IsNil)

	token1, proof1, err := ComputeRevealToken(pp, sk1, pk1, m)
	c.Assert(err, qt.IsNil)
	token2, proof2, err := ComputeRevealToken(pp, sk2, pk2, m)
	c.Assert(err, qt.IsNil)

	contributions := []RevealContribution{
		{Token: token1, Proof: proof1, PK: pk1},
		{Token: token2, Proof: proof2, PK: pk2},
	}
	recovered, err := Unmask(pp, m, contributions)
	c.Assert(err, qt.IsNil)
	c.Assert(recovered.Equal(card), qt.IsTrue)
}

func TestUnmaskAbortsOnBadToken(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)

	pk1, sk1, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)

	card := pp.curve().New()
	card.SetGenerator()
	r, err := SampleRandomScalar(pp)
	c.Assert(err, qt.IsNil)
	m, _, err := Mask(pp, pk1, card, r)
	c.Assert(err, qt.IsNil)

	token1, proof1, err := ComputeRevealToken(pp, sk1, pk1, m)
	c.Assert(err, qt.IsNil)

	otherPK, _, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)

	contributions := []RevealContribution{{Token: token1, Proof: proof1, PK: otherPK}}
	_, err = Unmask(pp, m, contributions)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestDealChunks(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)
	pk, _, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)

	deck := make([]elgamal.Ciphertext, pp.DeckSize())
	for i := range deck {
		card := pp.curve().New()
		s, _ := rand.Int(rand.Reader, pp.curve().Order())
		card.ScalarBaseMult(s)
		r, err := SampleRandomScalar(pp)
		c.Assert(err, qt.IsNil)
		m, _, err := Mask(pp, pk, card, r)
		c.Assert(err, qt.IsNil)
		deck[i] = m
	}

	chunks, err := DealChunks(deck, pp.DeckSize()/4)
	c.Assert(err, qt.IsNil)
	c.Assert(len(chunks), qt.Equals, 4)

	_, err = DealChunks(deck, 0)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestPPMarshalRoundTrip(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)

	buf := pp.Marshal()
	decoded, err := UnmarshalPP(buf)
	c.Assert(err, qt.IsNil)
	c.Assert(decoded.M, qt.Equals, pp.M)
	c.Assert(decoded.N, qt.Equals, pp.N)
	c.Assert(decoded.CurveType, qt.Equals, pp.CurveType)
	c.Assert(decoded.ElGamal.Generator.Equal(pp.ElGamal.Generator), qt.IsTrue)
	c.Assert(len(decoded.CommitKey.G), qt.Equals, len(pp.CommitKey.G))
	for i := range pp.CommitKey.G {
		c.Assert(decoded.CommitKey.G[i].Equal(pp.CommitKey.G[i]), qt.IsTrue)
	}
	c.Assert(decoded.CommitKey.H.Equal(pp.CommitKey.H), qt.IsTrue)
}

func TestUnmarshalPPRejectsUnknownCurve(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)

	buf := pp.Marshal()
	// Corrupt the first byte of the curve-type name, which follows the two
	// leading u32 fields (M, N) and the name's own u32 length prefix.
	buf[12] = 0xff
	_, err = UnmarshalPP(buf)
	c.Assert(err, qt.Not(qt.IsNil))
}
