package protocol

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/sync/errgroup"
)

func TestVerifyRevealTokensConcurrentlyAllGood(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)

	var cards []RevealCard
	for i := 0; i < 5; i++ {
		pk, sk, err := PlayerKeyGen(pp)
		c.Assert(err, qt.IsNil)

		card := pp.curve().New()
		card.SetGenerator()
		r, err := SampleRandomScalar(pp)
		c.Assert(err, qt.IsNil)
		m, _, err := Mask(pp, pk, card, r)
		c.Assert(err, qt.IsNil)

		token, proof, err := ComputeRevealToken(pp, sk, pk, m)
		c.Assert(err, qt.IsNil)

		cards = append(cards, RevealCard{
			M:             m,
			Contributions: []RevealContribution{{Token: token, Proof: proof, PK: pk}},
		})
	}

	var g errgroup.Group
	VerifyRevealTokensConcurrently(&g, pp, cards)
	c.Assert(g.Wait(), qt.IsNil)
}

func TestVerifyRevealTokensConcurrentlyDetectsBadCard(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 2, 4)
	c.Assert(err, qt.IsNil)

	pk, sk, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)
	card := pp.curve().New()
	card.SetGenerator()
	r, err := SampleRandomScalar(pp)
	c.Assert(err, qt.IsNil)
	m, _, err := Mask(pp, pk, card, r)
	c.Assert(err, qt.IsNil)
	token, proof, err := ComputeRevealToken(pp, sk, pk, m)
	c.Assert(err, qt.IsNil)

	otherPK, _, err := PlayerKeyGen(pp)
	c.Assert(err, qt.IsNil)

	cards := []RevealCard{
		{M: m, Contributions: []RevealContribution{{Token: token, Proof: proof, PK: otherPK}}},
	}

	var g errgroup.Group
	VerifyRevealTokensConcurrently(&g, pp, cards)
	c.Assert(g.Wait(), qt.Not(qt.IsNil))
}
