// Package table implements the core poker table state machine: seating and
// dealer management, blind and straddle posting, betting-round turn order,
// street progression and tiered side-pot settlement.
//
// Each Table is a single-threaded cooperative state machine. One action is
// processed to completion, including any cascading street or settlement
// transitions, before the next is accepted; callers serialize concurrent
// access per table. The table performs no I/O and owns no timers.
package table

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/wkantaros/poker-ftb/internal/deck"
)

// Ranker scores a set of 5-7 cards. Strength is a total order: a higher
// value beats a lower one and equal values tie. The description is the
// human-readable hand name surfaced in results.
//
// Ranking is a supplied capability; the table never computes hand strength
// itself. A table that will reach showdown must be given a non-nil Ranker.
type Ranker interface {
	Rank(cards []deck.Card) (strength int, description string)
}

// Config carries the fixed per-table parameters, validated once by New.
type Config struct {
	SmallBlind int
	BigBlind   int
	MinPlayers int
	MaxPlayers int
	MinBuyIn   int
	MaxBuyIn   int

	// StraddleLimit: -1 allows unlimited straddles, 0 disables them, n
	// allows exactly n extra straddles (capped at active players minus 2).
	StraddleLimit int
}

// Result is one row of the last hand's outcome snapshot, used for both
// winners and bankrupted losers.
type Result struct {
	Name        string
	Seat        int
	Amount      int    // chips won; zero for losers
	Chips       int    // stack after settlement
	Description string // winning hand name; empty when everyone folded
}

// Table orchestrates hands for a fixed array of seats. It persists across
// hands; Hand state is recreated at each round boundary.
type Table struct {
	cfg Config

	// seats is the fixed slot array; index is the seat number, nil is an
	// empty seat. Leaving players stay in their slot until the next round
	// boundary so seat indexes never shift during live betting.
	seats []*Player

	// order is the ring of in-hand seats, ascending by seat index. It is
	// derived once per membership mutation and frozen for the duration of a
	// hand. dealer and current are positions in this ring; current is -1
	// whenever no action is pending.
	order   []int
	dealer  int
	current int

	hand    *Hand
	winners []Result
	losers  []Result

	rng      *rand.Rand
	nextDeck *deck.Deck
	ranker   Ranker
	notifier Notifier
	logger   *log.Logger
}

// Option configures a Table during construction.
type Option func(*Table)

// WithRand sets the RNG used to shuffle decks. Defaults to a time-seeded
// source.
func WithRand(rng *rand.Rand) Option {
	return func(t *Table) { t.rng = rng }
}

// WithDeck stacks a specific deck for the next hand dealt, in place of a
// fresh shuffle. Used by tests that need known cards.
func WithDeck(d *deck.Deck) Option {
	return func(t *Table) { t.nextDeck = d }
}

// WithNotifier injects the observer that receives table events.
func WithNotifier(n Notifier) Option {
	return func(t *Table) { t.notifier = n }
}

// WithLogger sets the logger for configuration warnings. The table logs
// nothing else; the default discards.
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) { t.logger = logger }
}

// New validates cfg and constructs an empty table. The ranker scores hands
// at showdown and must be non-nil for any table that plays to completion.
func New(cfg Config, ranker Ranker, opts ...Option) (*Table, error) {
	switch {
	case cfg.MinPlayers < 2:
		return nil, ErrMinPlayers
	case cfg.MaxPlayers > 10:
		return nil, ErrMaxPlayers
	case cfg.MinPlayers > cfg.MaxPlayers:
		return nil, ErrPlayerBounds
	}

	t := &Table{
		cfg:     cfg,
		seats:   make([]*Player, cfg.MaxPlayers),
		current: -1,
		ranker:  ranker,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// AddPlayer seats a new player, or reactivates a leaving seat held under the
// same name with a fresh stack. New players take the lowest free seat and
// must buy in within the table's bounds. Returns false, with no state
// change, when the name is taken, the stack is out of bounds, or no seat is
// free.
func (t *Table) AddPlayer(name string, chips int, straddling bool) bool {
	for _, p := range t.seats {
		if p == nil || p.Name != name {
			continue
		}
		if p.Leaving {
			p.Leaving = false
			p.Chips = chips
			p.Straddling = straddling
			return true
		}
		return false
	}

	seat := t.availableSeat()
	if seat == -1 || chips < t.cfg.MinBuyIn || chips > t.cfg.MaxBuyIn {
		return false
	}
	t.seats[seat] = &Player{
		Name:       name,
		Seat:       seat,
		Chips:      chips,
		Straddling: straddling,
	}
	return true
}

// availableSeat returns the lowest-index seat a new player may take. Seats
// held by leaving players are only reusable between hands; during a hand
// they stay reserved so the in-hand ring is never invalidated.
func (t *Table) availableSeat() int {
	for i, p := range t.seats {
		if p == nil {
			return i
		}
		if p.Leaving && t.hand == nil {
			return i
		}
	}
	return -1
}

// RemovePlayer marks the named seat as leaving. If a hand is active the
// player's cards are folded immediately and their committed chips stay in
// the pot; the seat itself is vacated at the next round boundary.
func (t *Table) RemovePlayer(name string) bool {
	p := t.playerByName(name)
	if p == nil {
		return false
	}
	p.Leaving = true
	if t.hand != nil && t.hand.Round != Showdown && p.InHand && !p.Folded {
		t.hand.Pot += p.Bet
		t.hand.Contributions[p.Seat] += p.Bet
		p.Bet = 0
		p.Folded = true
		p.Acted = true
		t.progress()
	}
	return true
}

// StartGame deals the first hand. It does nothing if a hand already exists;
// ending up with no hand means there were not enough eligible players.
func (t *Table) StartGame() {
	if t.hand != nil {
		return
	}
	t.newRound()
}

// InitNewRound is the boundary operation between hands: it reseats leaving
// and waiting players, advances the dealer one active seat, and deals the
// next hand. With fewer than two eligible players it clears the active hand
// and the table idles until enough players join.
func (t *Table) InitNewRound() {
	t.removeAndAddPlayers()
	if len(t.order) < 2 {
		t.hand = nil
		t.current = -1
		return
	}
	t.dealer = (t.dealer + 1) % len(t.order)
	t.newRound()
}

// newRound deals a hand: reseats pending players, resets per-hand state,
// deals hole cards and posts blinds and straddles.
func (t *Table) newRound() {
	t.removeAndAddPlayers()
	if len(t.order) < 2 {
		t.hand = nil
		t.current = -1
		return
	}

	t.winners = nil
	t.losers = nil
	t.hand = newHand(t.takeDeck())

	for _, seat := range t.order {
		p := t.seats[seat]
		p.resetForHand()
		p.HoleCards = t.hand.deck.DrawN(2)
		t.hand.Contributions[seat] = 0
	}

	t.postBlindsAndStraddles()
	t.notify(EventHandStarted)
	t.advance()
}

// takeDeck consumes a stacked test deck if one was injected, otherwise
// shuffles a fresh 52-card deck.
func (t *Table) takeDeck() *deck.Deck {
	if t.nextDeck != nil {
		d := t.nextDeck
		t.nextDeck = nil
		return d
	}
	d := deck.New(t.rng)
	d.Fill()
	return d
}

// removeAndAddPlayers runs only between hands: leaving seats are cleared,
// waiting seats join the ring, and the dealer position is corrected by the
// number of removed and added seats at or before it, reduced modulo the new
// ring size.
func (t *Table) removeAndAddPlayers() {
	removed := 0
	for pos, seat := range t.order {
		if t.seats[seat].Leaving && pos <= t.dealer {
			removed++
		}
	}

	var added []int
	for i, p := range t.seats {
		if p == nil {
			continue
		}
		if p.Leaving {
			t.seats[i] = nil
			continue
		}
		if !p.InHand {
			p.InHand = true
			added = append(added, i)
		}
	}
	t.dealer -= removed

	t.rebuildOrder()
	for _, seat := range added {
		if pos := t.ringPos(seat); pos != -1 && pos <= t.dealer {
			t.dealer++
		}
	}

	if n := len(t.order); n >= 2 {
		t.dealer = ((t.dealer % n) + n) % n
	} else {
		t.dealer = 0
	}
}

// rebuildOrder derives the in-hand ring from the seat array. Called only at
// membership mutation points, never per read.
func (t *Table) rebuildOrder() {
	t.order = t.order[:0]
	for seat, p := range t.seats {
		if p != nil && p.InHand {
			t.order = append(t.order, seat)
		}
	}
}

// ringPos returns the position of a seat in the in-hand ring, -1 if the
// seat is not part of it.
func (t *Table) ringPos(seat int) int {
	for pos, s := range t.order {
		if s == seat {
			return pos
		}
	}
	return -1
}

func (t *Table) playerByName(name string) *Player {
	for _, p := range t.seats {
		if p != nil && p.Name == name {
			return p
		}
	}
	return nil
}

// seatAt maps a ring position to its player.
func (t *Table) seatAt(pos int) *Player {
	return t.seats[t.order[pos]]
}

// actor returns the player whose turn it is, nil when no action is pending.
func (t *Table) actor() *Player {
	if t.hand == nil || t.current < 0 || t.current >= len(t.order) {
		return nil
	}
	return t.seatAt(t.current)
}

// maxCurrentBet is the highest bet on the table this street.
func (t *Table) maxCurrentBet() int {
	max := 0
	for _, seat := range t.order {
		if b := t.seats[seat].Bet; b > max {
			max = b
		}
	}
	return max
}

// bestOtherStack returns the largest stack-plus-bet among in-hand players
// other than the one at pos. It caps forced bets so a short stack is never
// forced beyond what any opponent could contest.
func (t *Table) bestOtherStack(pos int) int {
	best := 0
	for i, seat := range t.order {
		if i == pos {
			continue
		}
		p := t.seats[seat]
		if total := p.Bet + p.Chips; total > best {
			best = total
		}
	}
	return best
}
