package table

import "github.com/wkantaros/poker-ftb/internal/deck"

// Read-only accessors. The notification channel carries bare event tags, so
// subscribers come back through these to learn what changed. None of them
// mutate table state.

// SeatInfo is a snapshot of one seat for broadcast. Hole cards are not
// included; HoleCards serves those per player.
type SeatInfo struct {
	Seat     int
	Occupied bool
	Name     string
	Chips    int
	Bet      int
	Folded   bool
	AllIn    bool
	InHand   bool
	Leaving  bool
}

// Config returns the table's fixed configuration.
func (t *Table) Config() Config { return t.cfg }

// HandActive reports whether a hand exists, live or settled. It is false
// when the last boundary found fewer than two eligible players.
func (t *Table) HandActive() bool { return t.hand != nil }

// HandLive reports whether a hand is in progress with action still pending.
func (t *Table) HandLive() bool {
	return t.hand != nil && t.hand.Round != Showdown
}

// RoundName names the current street, empty with no active hand.
func (t *Table) RoundName() string {
	if t.hand == nil {
		return ""
	}
	return t.hand.Round.String()
}

// CurrentActor returns the name of the player who must act, empty when no
// action is pending.
func (t *Table) CurrentActor() string {
	if p := t.actor(); p != nil {
		return p.Name
	}
	return ""
}

// ActionSeat returns the seat index of the player who must act, -1 when no
// action is pending.
func (t *Table) ActionSeat() int {
	if p := t.actor(); p != nil {
		return p.Seat
	}
	return -1
}

// DealerSeat returns the dealer button's seat index, -1 while nobody is
// seated in a hand.
func (t *Table) DealerSeat() int {
	if len(t.order) == 0 {
		return -1
	}
	return t.order[t.dealer%len(t.order)]
}

// MaxBet returns the highest outstanding bet this street.
func (t *Table) MaxBet() int {
	if t.hand == nil {
		return 0
	}
	return t.maxCurrentBet()
}

// Pot returns the chips swept into the pot from completed betting rounds.
// Outstanding street bets live on the seats until the round closes.
func (t *Table) Pot() int {
	if t.hand == nil {
		return 0
	}
	return t.hand.Pot
}

// Board returns a copy of the shared community cards.
func (t *Table) Board() []deck.Card {
	if t.hand == nil {
		return nil
	}
	board := make([]deck.Card, len(t.hand.Board))
	copy(board, t.hand.Board)
	return board
}

// HoleCards returns a copy of the named player's private cards, nil for an
// unknown player or one without a dealt hand.
func (t *Table) HoleCards(name string) []deck.Card {
	p := t.playerByName(name)
	if p == nil || len(p.HoleCards) == 0 {
		return nil
	}
	cards := make([]deck.Card, len(p.HoleCards))
	copy(cards, p.HoleCards)
	return cards
}

// Winners returns the winners of the most recently completed hand.
func (t *Table) Winners() []Result {
	return append([]Result(nil), t.winners...)
}

// Losers returns the players who went bankrupt in the most recently
// completed hand.
func (t *Table) Losers() []Result {
	return append([]Result(nil), t.losers...)
}

// Seats returns a snapshot of every seat slot in order.
func (t *Table) Seats() []SeatInfo {
	seats := make([]SeatInfo, len(t.seats))
	for i, p := range t.seats {
		seats[i].Seat = i
		if p == nil {
			continue
		}
		seats[i] = SeatInfo{
			Seat:     i,
			Occupied: true,
			Name:     p.Name,
			Chips:    p.Chips,
			Bet:      p.Bet,
			Folded:   p.Folded,
			AllIn:    p.AllIn,
			InHand:   p.InHand,
			Leaving:  p.Leaving,
		}
	}
	return seats
}
