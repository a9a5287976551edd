package table

import (
	"testing"

	"github.com/wkantaros/poker-ftb/internal/deck"
)

// stubRanker scores a hand by its first hole card so tests can fix the
// outcome of a showdown. Unknown cards score 1.
type stubRanker struct {
	byFirst map[deck.Card]int
	calls   int
}

func (r *stubRanker) Rank(cards []deck.Card) (int, string) {
	r.calls++
	if s, ok := r.byFirst[cards[0]]; ok {
		return s, "stub"
	}
	return 1, "stub"
}

// orderedDeck returns an unshuffled 52-card deck: spades 2..A, then hearts,
// diamonds, clubs. With it, seat 0 is dealt 2♠3♠, seat 1 4♠5♠, and so on.
func orderedDeck() *deck.Deck {
	cards := make([]deck.Card, 0, 52)
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			cards = append(cards, deck.NewCard(suit, rank))
		}
	}
	return deck.Stacked(cards...)
}

func card(suit deck.Suit, rank deck.Rank) deck.Card {
	return deck.NewCard(suit, rank)
}

func testConfig() Config {
	return Config{
		SmallBlind: 1,
		BigBlind:   2,
		MinPlayers: 2,
		MaxPlayers: 6,
		MinBuyIn:   1,
		MaxBuyIn:   10000,
	}
}

func newTestTable(t *testing.T, cfg Config, ranker Ranker, opts ...Option) *Table {
	t.Helper()
	tbl, err := New(cfg, ranker, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tbl
}

// totalChips sums every stack, outstanding bet and the pot. It must never
// change across actions within a hand.
func totalChips(t *Table) int {
	total := t.Pot()
	for _, s := range t.Seats() {
		if s.Occupied {
			total += s.Chips + s.Bet
		}
	}
	return total
}
