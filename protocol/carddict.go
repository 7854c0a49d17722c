package protocol

import (
	"github.com/barnettsmart/mentalpoker/crypto/ecc"
	"github.com/barnettsmart/mentalpoker/crypto/errs"
)

// CardDictionary maps a card's canonical encoding to a human-meaningful
// label. It is never consulted by mask, remask,
// shuffle, or reveal — those operate on opaque group elements — and exists
// only so example scenarios (§8's six-player game) can name the cards a
// player's hand resolves to.
type CardDictionary struct {
	byEncoding map[string]string
	byLabel    map[string]ecc.Point
}

// NewCardDictionary builds a dictionary from an ordered list of labels,
// assigning cards one label each via card.Marshal() as the lookup key.
func NewCardDictionary(cards []ecc.Point, labels []string) (*CardDictionary, error) {
	if len(cards) != len(labels) {
		return nil, errs.ErrInvalidLength
	}
	d := &CardDictionary{
		byEncoding: make(map[string]string, len(cards)),
		byLabel:    make(map[string]ecc.Point, len(cards)),
	}
	for i, c := range cards {
		key := string(c.Marshal())
		d.byEncoding[key] = labels[i]
		d.byLabel[labels[i]] = c
	}
	return d, nil
}

// Label returns the human-meaningful name for card, and whether it was
// found.
func (d *CardDictionary) Label(card ecc.Point) (string, bool) {
	l, ok := d.byEncoding[string(card.Marshal())]
	return l, ok
}

// Card returns the group element registered under label, and whether it was
// found.
func (d *CardDictionary) Card(label string) (ecc.Point, bool) {
	c, ok := d.byLabel[label]
	return c, ok
}
