package table

import "github.com/wkantaros/poker-ftb/internal/deck"

// Player is one seated account. Seat is the stable index into the table's
// seat array; all per-hand bookkeeping is keyed on it.
type Player struct {
	Name       string
	Seat       int
	Chips      int // stack not committed to the current betting round
	Bet        int // chips committed this betting round, swept on round close
	Folded     bool
	AllIn      bool
	Acted      bool // has acted in the current betting round
	InHand     bool // dealt into the current/next hand vs. waiting to join
	Leaving    bool // pending removal, seat freed at the next round boundary
	Straddling bool
	HoleCards  []deck.Card
}

// applyBet moves up to amount chips from the stack into the player's current
// bet, going all-in when the stack is exhausted. Returns the chips actually
// moved, -1 for a negative amount.
func (p *Player) applyBet(amount int) int {
	if amount < 0 {
		return -1
	}
	if amount >= p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.Bet += amount
	p.Acted = true
	if p.Chips == 0 {
		p.AllIn = true
	}
	return amount
}

// resetForHand clears all per-hand state ahead of a new deal.
func (p *Player) resetForHand() {
	p.Bet = 0
	p.Folded = false
	p.AllIn = false
	p.Acted = false
	p.HoleCards = nil
}
