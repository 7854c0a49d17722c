package protocol

import (
	"crypto/rand"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/elgamal"
	"github.com/barnettsmart/mentalpoker/internal/vectorutil"
)

// TestSixPlayerGame runs the full mental-poker flow for six players over a
// 60-card deck (m=4, n=15), chunk size 10: key aggregation, a chain of
// shuffle-and-remask steps (one per player), chunked dealing, and a full
// reveal-token exchange recovering each player's hand against the original
// card dictionary.
func TestSixPlayerGame(t *testing.T) {
	c := qt.New(t)
	const m, n = 4, 15
	const chunkSize = 10
	players := []string{"Andrija", "Kobi", "Nico", "Tom", "Jay", "Bob"}

	pp, err := Setup("bn254", m, n)
	c.Assert(err, qt.IsNil)
	deckSize := pp.DeckSize()
	c.Assert(deckSize, qt.Equals, 60)

	pks := make([]ecc.Point, len(players))
	sks := make([]*big.Int, len(players))
	var contributions []KeyContribution
	for i, name := range players {
		pk, sk, err := PlayerKeyGen(pp)
		c.Assert(err, qt.IsNil)
		proof, err := ProveKeyOwnership(pp, pk, sk, name)
		c.Assert(err, qt.IsNil)
		pks[i] = pk
		sks[i] = sk
		contributions = append(contributions, KeyContribution{PK: pk, Proof: proof, Label: name})
	}
	aggPK, err := ComputeAggregateKey(pp, contributions)
	c.Assert(err, qt.IsNil)

	// Build the pre-shuffle encoding dictionary: a deterministic bijection
	// between deck positions and card labels.
	labels := make([]string, deckSize)
	cards := make([]ecc.Point, deckSize)
	for i := 0; i < deckSize; i++ {
		s, err := rand.Int(rand.Reader, pp.curve().Order())
		c.Assert(err, qt.IsNil)
		p := pp.curve().New()
		p.ScalarBaseMult(s)
		cards[i] = p
		labels[i] = cardLabel(i)
	}
	dict, err := NewCardDictionary(cards, labels)
	c.Assert(err, qt.IsNil)

	// Mask the entire deck under the aggregate key.
	deck := make([]elgamal.Ciphertext, deckSize)
	for i := range deck {
		r, err := SampleRandomScalar(pp)
		c.Assert(err, qt.IsNil)
		masked, _, err := Mask(pp, aggPK, cards[i], r)
		c.Assert(err, qt.IsNil)
		deck[i] = masked
	}

	// Six serial shuffle-and-remask steps, one per player.
	for range players {
		perm, err := vectorutil.RandomPermutation(deckSize)
		c.Assert(err, qt.IsNil)
		rho := make([]*big.Int, deckSize)
		for j := range rho {
			r, err := SampleRandomScalar(pp)
			c.Assert(err, qt.IsNil)
			rho[j] = r
		}
		shuffled, proof, err := ShuffleAndRemask(pp, aggPK, deck, rho, perm)
		c.Assert(err, qt.IsNil)
		c.Assert(VerifyShuffle(pp, aggPK, deck, shuffled, proof), qt.IsNil)
		deck = shuffled
	}

	chunks, err := DealChunks(deck, chunkSize)
	c.Assert(err, qt.IsNil)
	c.Assert(len(chunks), qt.Equals, len(players))

	seen := make(map[string]bool, deckSize)
	for pi, chunk := range chunks {
		for _, ct := range chunk {
			var contribs []RevealContribution
			for i := range players {
				token, proof, err := ComputeRevealToken(pp, sks[i], pks[i], ct)
				c.Assert(err, qt.IsNil)
				contribs = append(contribs, RevealContribution{Token: token, Proof: proof, PK: pks[i]})
			}
			card, err := Unmask(pp, ct, contribs)
			c.Assert(err, qt.IsNil)

			label, ok := dict.Label(card)
			c.Assert(ok, qt.IsTrue, qt.Commentf("player %s revealed a card outside the dictionary", players[pi]))
			c.Assert(seen[label], qt.IsFalse, qt.Commentf("card %s revealed twice", label))
			seen[label] = true
		}
	}
	c.Assert(len(seen), qt.Equals, deckSize)
}

func cardLabel(i int) string {
	suits := []string{"c", "d", "h", "s"}
	return suits[i%len(suits)] + string(rune('A'+i/len(suits)))
}
