package table

import "github.com/wkantaros/poker-ftb/internal/deck"

// Round is one betting street. Rounds only ever advance; a hand never
// returns to an earlier street.
type Round int

const (
	Dealing Round = iota
	Flop
	Turn
	River
	Showdown
)

func (r Round) String() string {
	return [...]string{"deal", "flop", "turn", "river", "showdown"}[r]
}

// streetStep describes how to leave a street: cards to burn, cards to
// reveal, and the street that follows. Showdown is terminal and has no
// entry.
type streetStep struct {
	burn   int
	reveal int
	next   Round
}

var streetSteps = map[Round]streetStep{
	Dealing: {burn: 1, reveal: 3, next: Flop},
	Flop:    {burn: 1, reveal: 1, next: Turn},
	Turn:    {burn: 1, reveal: 1, next: River},
	River:   {next: Showdown},
}

// Hand is the mutable state of a single hand from deal to settlement.
type Hand struct {
	Pot   int
	Board []deck.Card
	Round Round

	// Contributions is the cumulative chips each seat has put into the pot
	// across the whole hand, keyed by seat index. It feeds the side-pot
	// tiers at settlement and nothing else; Player.Bet tracks the current
	// street.
	Contributions map[int]int

	deck *deck.Deck
}

func newHand(d *deck.Deck) *Hand {
	return &Hand{
		Round:         Dealing,
		Contributions: make(map[int]int),
		deck:          d,
	}
}

// contributed returns the total chips in the ledger, which equals the pot
// while no bets are outstanding.
func (h *Hand) contributed() int {
	total := 0
	for _, c := range h.Contributions {
		total += c
	}
	return total
}
