package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/wkantaros/poker-ftb/internal/table"
)

var (
	// ErrSeatUnavailable is returned when a join is rejected: name taken,
	// buy-in out of bounds, or no free seat.
	ErrSeatUnavailable = errors.New("server: could not seat player")
	// ErrNotHost is returned when someone other than the host starts the game.
	ErrNotHost = errors.New("server: only the host can start the game")
	// ErrNotSeated is returned for operations on a player the table does
	// not know.
	ErrNotSeated = errors.New("server: player is not seated")
	// ErrActionRejected is returned when the table refuses an action,
	// usually because it is not the player's turn.
	ErrActionRejected = errors.New("server: action rejected")
)

// Session binds one table to its connected clients. The table itself is a
// single-threaded state machine; the session's mutex serializes everything
// that touches it, including timer expiries. Events raised by the table
// during a mutation are collected and flushed as broadcasts once the
// mutation completes.
type Session struct {
	ID   string
	Name string

	logger    *log.Logger
	clock     quartz.Clock
	turn      *TurnClock
	handDelay time.Duration

	mu      sync.Mutex
	tbl     *table.Table
	host    string
	conns   map[*Connection]struct{}
	pending []table.Event
}

// NewSession creates a session hosting one table. The action timeout bounds
// how long the current actor may stall before being folded; handDelay is
// the pause between settlement and the next deal.
func NewSession(id, name string, cfg table.Config, ranker table.Ranker, clock quartz.Clock, actionTimeout, handDelay time.Duration, logger *log.Logger) (*Session, error) {
	s := &Session{
		ID:        id,
		Name:      name,
		logger:    logger.WithPrefix("session").With("table", name),
		clock:     clock,
		turn:      NewTurnClock(clock, actionTimeout),
		handDelay: handDelay,
		conns:     make(map[*Connection]struct{}),
	}

	tbl, err := table.New(cfg, ranker,
		table.WithLogger(s.logger),
		table.WithNotifier(table.NotifierFunc(func(e table.Event) {
			s.pending = append(s.pending, e)
		})),
	)
	if err != nil {
		return nil, err
	}
	s.tbl = tbl
	return s, nil
}

// Attach subscribes a connection to this session's broadcasts and sends it
// the current state. Attaching does not seat a player; that takes a join.
func (s *Session) Attach(c *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c] = struct{}{}
	if msg, err := NewMessage(MessageTypeState, s.stateLocked()); err == nil {
		c.Send(msg)
	}
}

// Detach drops a connection. A seated player whose connection goes away is
// removed from the table, folding them if a hand is running.
func (s *Session) Detach(c *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)

	name := c.Name()
	if name == "" {
		return
	}
	s.logger.Info("player disconnected", "player", name)
	if s.tbl.RemovePlayer(name) {
		s.reassignHostLocked(name)
		s.flushLocked()
	}
}

// Join seats a player and marks the first one to arrive as host.
func (s *Session) Join(c *Connection, data JoinData) error {
	if data.Name == "" {
		return fmt.Errorf("server: join needs a player name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tbl.AddPlayer(data.Name, data.BuyIn, data.Straddling) {
		return ErrSeatUnavailable
	}
	if s.host == "" {
		s.host = data.Name
	}
	s.conns[c] = struct{}{}
	c.setName(data.Name)
	s.logger.Info("player joined", "player", data.Name, "buyIn", data.BuyIn)
	s.flushLocked()
	return nil
}

// Leave removes a seated player, folding them mid-hand.
func (s *Session) Leave(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tbl.RemovePlayer(name) {
		return ErrNotSeated
	}
	s.logger.Info("player left", "player", name)
	s.reassignHostLocked(name)
	s.flushLocked()
	return nil
}

// Start deals the first hand. Only the host may start.
func (s *Session) Start(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" || name != s.host {
		return ErrNotHost
	}
	s.tbl.StartGame()
	s.flushLocked()
	return nil
}

// Action applies a player decision to the table.
func (s *Session) Action(name string, data ActionData) error {
	if name == "" {
		return ErrNotSeated
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := false
	switch data.Action {
	case "bet", "raise":
		ok = s.tbl.Bet(name, data.Amount) >= 0
	case "call":
		ok = s.tbl.Call(name) >= 0
	case "check":
		ok = s.tbl.Check(name)
	case "fold":
		ok = s.tbl.Fold(name)
	case "all-in":
		ok = s.tbl.AllIn(name) >= 0
	default:
		return fmt.Errorf("server: unknown action %q", data.Action)
	}
	if !ok {
		return ErrActionRejected
	}
	s.flushLocked()
	return nil
}

// Summary reports this table for the lobby listing.
func (s *Session) Summary() TableSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.tbl.Config()
	seated := 0
	for _, seat := range s.tbl.Seats() {
		if seat.Occupied && !seat.Leaving {
			seated++
		}
	}
	return TableSummary{
		ID:         s.ID,
		Name:       s.Name,
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
		Seated:     seated,
		MaxPlayers: cfg.MaxPlayers,
		HandActive: s.tbl.HandActive(),
	}
}

// flushLocked turns collected table events into client traffic and manages
// the turn clock. Called with the mutex held after every table mutation.
func (s *Session) flushLocked() {
	events := s.pending
	s.pending = nil

	s.broadcastLocked(MessageTypeState, s.stateLocked())
	for _, e := range events {
		switch e {
		case table.EventHandStarted:
			s.sendHoleCardsLocked()
		case table.EventHandOver:
			s.broadcastLocked(MessageTypeHandResult, HandResultData{
				Winners: resultRows(s.tbl.Winners()),
				Losers:  resultRows(s.tbl.Losers()),
			})
			s.scheduleNextHandLocked()
		}
	}

	if s.tbl.HandLive() && s.tbl.CurrentActor() != "" {
		s.turn.Arm(s.onTurnExpired)
	} else {
		s.turn.Stop()
	}
}

// onTurnExpired folds the current actor when their clock runs out. Stale
// generations are ignored; the actor has already resolved their turn.
func (s *Session) onTurnExpired(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.turn.Valid(gen) {
		return
	}
	name := s.tbl.CurrentActor()
	if name == "" {
		return
	}
	s.logger.Info("action timeout, folding", "player", name)
	if s.tbl.Fold(name) {
		s.flushLocked()
	}
}

// scheduleNextHandLocked arms the inter-hand pause. When it fires, bankrupt
// players are removed and the next hand is dealt.
func (s *Session) scheduleNextHandLocked() {
	s.clock.AfterFunc(s.handDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.tbl.HandActive() || s.tbl.HandLive() {
			return
		}
		for _, l := range s.tbl.Losers() {
			s.logger.Info("removing bankrupt player", "player", l.Name)
			s.tbl.RemovePlayer(l.Name)
			s.reassignHostLocked(l.Name)
		}
		s.tbl.InitNewRound()
		s.flushLocked()
	})
}

// reassignHostLocked hands the host role to another seated player when the
// current host departs.
func (s *Session) reassignHostLocked(departed string) {
	if s.host != departed {
		return
	}
	s.host = ""
	for _, seat := range s.tbl.Seats() {
		if seat.Occupied && !seat.Leaving {
			s.host = seat.Name
			return
		}
	}
}

// stateLocked builds the public broadcast snapshot.
func (s *Session) stateLocked() StateData {
	seats := s.tbl.Seats()
	out := make([]SeatState, 0, len(seats))
	for _, seat := range seats {
		if !seat.Occupied {
			continue
		}
		out = append(out, SeatState{
			Seat:   seat.Seat,
			Name:   seat.Name,
			Chips:  seat.Chips,
			Bet:    seat.Bet,
			Folded: seat.Folded,
			AllIn:  seat.AllIn,
			InHand: seat.InHand,
		})
	}
	return StateData{
		TableID: s.ID,
		Name:    s.Name,
		Round:   s.tbl.RoundName(),
		Pot:     s.tbl.Pot(),
		MaxBet:  s.tbl.MaxBet(),
		Board:   cardStrings(s.tbl.Board()),
		Dealer:  s.tbl.DealerSeat(),
		Actor:   s.tbl.CurrentActor(),
		Host:    s.host,
		Seats:   out,
	}
}

// sendHoleCardsLocked delivers each seated player their private cards on
// their own connection only.
func (s *Session) sendHoleCardsLocked() {
	for c := range s.conns {
		name := c.Name()
		if name == "" {
			continue
		}
		cards := s.tbl.HoleCards(name)
		if len(cards) == 0 {
			continue
		}
		msg, err := NewMessage(MessageTypeHoleCards, HoleCardsData{Cards: cardStrings(cards)})
		if err != nil {
			continue
		}
		c.Send(msg)
	}
}

func (s *Session) broadcastLocked(messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		s.logger.Error("failed to encode broadcast", "type", messageType, "error", err)
		return
	}
	for c := range s.conns {
		c.Send(msg)
	}
}
