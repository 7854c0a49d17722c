package protocol

import (
	"crypto/rand"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/barnettsmart/mentalpoker/crypto/ecc"
)

func TestCardDictionaryRoundTrip(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 1, 4)
	c.Assert(err, qt.IsNil)

	cards := make([]ecc.Point, 4)
	labels := []string{"2c", "2d", "2h", "2s"}
	for i := range cards {
		s, _ := rand.Int(rand.Reader, pp.curve().Order())
		p := pp.curve().New()
		p.ScalarBaseMult(s)
		cards[i] = p
	}

	dict, err := NewCardDictionary(cards, labels)
	c.Assert(err, qt.IsNil)

	label, ok := dict.Label(cards[2])
	c.Assert(ok, qt.IsTrue)
	c.Assert(label, qt.Equals, "2h")

	card, ok := dict.Card("2s")
	c.Assert(ok, qt.IsTrue)
	c.Assert(card.Equal(cards[3]), qt.IsTrue)

	_, ok = dict.Label(pp.curve().New())
	c.Assert(ok, qt.IsFalse)
}

func TestCardDictionaryRejectsLengthMismatch(t *testing.T) {
	c := qt.New(t)
	pp, err := Setup("bn254", 1, 4)
	c.Assert(err, qt.IsNil)

	cards := []ecc.Point{pp.curve().New()}
	_, err = NewCardDictionary(cards, []string{"a", "b"})
	c.Assert(err, qt.Not(qt.IsNil))
}
