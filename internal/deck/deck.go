// Package deck provides the shuffled-deck primitive consumed by the table
// engine: Fill rebuilds and shuffles a full 52-card deck, Draw removes one
// card from the top.
package deck

import (
	"math/rand"
	"time"
)

// Deck represents a deck of playing cards
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates an empty deck using the given RNG for shuffling. A nil RNG
// falls back to a time-seeded source; tests pass a seeded one for
// deterministic deals.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
}

// Stacked creates a deck holding exactly the given cards in draw order.
// Fill on a stacked deck restores a full shuffled deck as usual.
func Stacked(cards ...Card) *Deck {
	d := New(nil)
	d.cards = append(d.cards, cards...)
	return d
}

// Fill restores the deck to a full 52-card deck and shuffles it.
func (d *Deck) Fill() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	d.shuffle()
}

func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card of the deck.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DrawN draws up to n cards from the top of the deck.
func (d *Deck) DrawN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := d.Draw()
		if !ok {
			break
		}
		cards = append(cards, card)
	}
	return cards
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
