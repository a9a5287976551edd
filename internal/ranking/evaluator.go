// Package ranking adapts the paulhankin/poker evaluator to the table
// engine's Ranker contract. Strength values form a total order over 5-7
// card sets; equal values are genuine ties and split the pot.
package ranking

import (
	ph "github.com/paulhankin/poker"

	"github.com/wkantaros/poker-ftb/internal/deck"
)

// Evaluator ranks hands using the paulhankin lookup evaluator.
type Evaluator struct{}

// New returns a ready evaluator. It carries no state.
func New() Evaluator { return Evaluator{} }

// Rank scores the given cards and names the best five-card hand they make.
// Unrankable input (wrong count, malformed card) scores zero with no
// description; valid strengths are always positive.
func (Evaluator) Rank(cards []deck.Card) (int, string) {
	converted := make([]ph.Card, len(cards))
	for i, c := range cards {
		card, err := convert(c)
		if err != nil {
			return 0, ""
		}
		converted[i] = card
	}

	var strength int16
	switch len(converted) {
	case 7:
		var hand [7]ph.Card
		copy(hand[:], converted)
		strength = ph.Eval7(&hand)
	case 6:
		strength = best6(converted)
	case 5:
		var hand [5]ph.Card
		copy(hand[:], converted)
		strength = ph.Eval5(&hand)
	default:
		return 0, ""
	}

	desc, err := ph.Describe(converted)
	if err != nil {
		desc = ""
	}
	return int(strength), desc
}

// best6 evaluates every five-card subset of six cards and keeps the best.
func best6(cards []ph.Card) int16 {
	var best int16
	var hand [5]ph.Card
	for skip := 0; skip < 6; skip++ {
		i := 0
		for j, c := range cards {
			if j == skip {
				continue
			}
			hand[i] = c
			i++
		}
		if s := ph.Eval5(&hand); s > best {
			best = s
		}
	}
	return best
}

// convert maps a deck card onto the evaluator's representation, which uses
// ace-low rank numbering.
func convert(c deck.Card) (ph.Card, error) {
	var suit ph.Suit
	switch c.Suit {
	case deck.Spades:
		suit = ph.Spade
	case deck.Hearts:
		suit = ph.Heart
	case deck.Diamonds:
		suit = ph.Diamond
	default:
		suit = ph.Club
	}

	rank := int(c.Rank)
	if c.Rank == deck.Ace {
		rank = 1
	}
	return ph.MakeCard(suit, ph.Rank(rank))
}
