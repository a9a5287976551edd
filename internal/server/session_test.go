package server

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wkantaros/poker-ftb/internal/ranking"
	"github.com/wkantaros/poker-ftb/internal/table"
)

const (
	testActionTimeout = 30 * time.Second
	testHandDelay     = 5 * time.Second
)

func testTableConfig() table.Config {
	return table.Config{
		SmallBlind: 1,
		BigBlind:   2,
		MinPlayers: 2,
		MaxPlayers: 6,
		MinBuyIn:   1,
		MaxBuyIn:   10000,
	}
}

func newTestSession(t *testing.T, clock quartz.Clock) *Session {
	t.Helper()
	logger := log.New(io.Discard)
	s, err := NewSession("tbl-1", "main", testTableConfig(), ranking.New(),
		clock, testActionTimeout, testHandDelay, logger)
	require.NoError(t, err)
	return s
}

// newTestConn builds a connection without a socket; messages pile up in the
// send buffer and tests drain them directly.
func newTestConn(s *Session) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		send:    make(chan *Message, 64),
		session: s,
		logger:  log.New(io.Discard),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func drainMessages(c *Connection) []*Message {
	var out []*Message
	for {
		select {
		case m := <-c.send:
			out = append(out, m)
		default:
			return out
		}
	}
}

func messagesOfType(msgs []*Message, mt MessageType) []*Message {
	var out []*Message
	for _, m := range msgs {
		if m.Type == mt {
			out = append(out, m)
		}
	}
	return out
}

func joinPlayer(t *testing.T, s *Session, c *Connection, name string, buyIn int) {
	t.Helper()
	require.NoError(t, s.Join(c, JoinData{Name: name, BuyIn: buyIn}))
}

func TestJoinAssignsHost(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, quartz.NewMock(t))
	alice := newTestConn(s)
	bob := newTestConn(s)

	joinPlayer(t, s, alice, "alice", 100)
	joinPlayer(t, s, bob, "bob", 100)

	state := lastState(t, drainMessages(bob))
	assert.Equal(t, "alice", state.Host)
	assert.Len(t, state.Seats, 2)
}

func lastState(t *testing.T, msgs []*Message) StateData {
	t.Helper()
	states := messagesOfType(msgs, MessageTypeState)
	require.NotEmpty(t, states, "expected a state broadcast")
	var state StateData
	require.NoError(t, json.Unmarshal(states[len(states)-1].Data, &state))
	return state
}

func TestJoinRejectsBadBuyIn(t *testing.T) {
	t.Parallel()

	logger := log.New(io.Discard)
	cfg := testTableConfig()
	cfg.MinBuyIn = 100
	cfg.MaxBuyIn = 500
	s, err := NewSession("tbl-1", "main", cfg, ranking.New(),
		quartz.NewMock(t), testActionTimeout, testHandDelay, logger)
	require.NoError(t, err)

	c := newTestConn(s)
	assert.ErrorIs(t, s.Join(c, JoinData{Name: "alice", BuyIn: 50}), ErrSeatUnavailable)
	assert.Error(t, s.Join(c, JoinData{BuyIn: 200}), "empty name")
}

func TestOnlyHostStarts(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, quartz.NewMock(t))
	alice := newTestConn(s)
	bob := newTestConn(s)
	joinPlayer(t, s, alice, "alice", 100)
	joinPlayer(t, s, bob, "bob", 100)

	require.ErrorIs(t, s.Start("bob"), ErrNotHost)
	require.ErrorIs(t, s.Start(""), ErrNotHost)
	require.NoError(t, s.Start("alice"))

	state := lastState(t, drainMessages(alice))
	assert.Equal(t, "deal", state.Round)
	assert.NotEmpty(t, state.Actor)
}

func TestHostReassignedOnLeave(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, quartz.NewMock(t))
	alice := newTestConn(s)
	bob := newTestConn(s)
	joinPlayer(t, s, alice, "alice", 100)
	joinPlayer(t, s, bob, "bob", 100)

	require.NoError(t, s.Leave("alice"))
	require.ErrorIs(t, s.Leave("nobody"), ErrNotSeated)

	state := lastState(t, drainMessages(bob))
	assert.Equal(t, "bob", state.Host)
}

func TestHoleCardsStayPrivate(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, quartz.NewMock(t))
	alice := newTestConn(s)
	bob := newTestConn(s)
	watcher := newTestConn(s)
	joinPlayer(t, s, alice, "alice", 100)
	joinPlayer(t, s, bob, "bob", 100)
	s.Attach(watcher)

	drainMessages(alice)
	drainMessages(bob)
	drainMessages(watcher)
	require.NoError(t, s.Start("alice"))

	aliceCards := messagesOfType(drainMessages(alice), MessageTypeHoleCards)
	bobCards := messagesOfType(drainMessages(bob), MessageTypeHoleCards)
	watcherCards := messagesOfType(drainMessages(watcher), MessageTypeHoleCards)

	require.Len(t, aliceCards, 1)
	require.Len(t, bobCards, 1)
	assert.Empty(t, watcherCards, "observers never see hole cards")

	var a, b HoleCardsData
	require.NoError(t, json.Unmarshal(aliceCards[0].Data, &a))
	require.NoError(t, json.Unmarshal(bobCards[0].Data, &b))
	assert.Len(t, a.Cards, 2)
	assert.Len(t, b.Cards, 2)
	assert.NotEqual(t, a.Cards, b.Cards)
}

func TestActionDispatch(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, quartz.NewMock(t))
	alice := newTestConn(s)
	bob := newTestConn(s)
	joinPlayer(t, s, alice, "alice", 100)
	joinPlayer(t, s, bob, "bob", 100)
	require.NoError(t, s.Start("alice"))

	// Heads-up: bob posted the small blind and acts first.
	require.ErrorIs(t, s.Action("alice", ActionData{Action: "call"}), ErrActionRejected)
	require.Error(t, s.Action("bob", ActionData{Action: "levitate"}))
	require.ErrorIs(t, s.Action("", ActionData{Action: "call"}), ErrNotSeated)

	require.NoError(t, s.Action("bob", ActionData{Action: "call"}))
	require.NoError(t, s.Action("alice", ActionData{Action: "check"}))

	state := lastState(t, drainMessages(alice))
	assert.Equal(t, "flop", state.Round)
	assert.Equal(t, 4, state.Pot)
	assert.Len(t, state.Board, 3)
}

func TestFoldEndsHandAndBroadcastsResult(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, quartz.NewMock(t))
	alice := newTestConn(s)
	bob := newTestConn(s)
	joinPlayer(t, s, alice, "alice", 100)
	joinPlayer(t, s, bob, "bob", 100)
	require.NoError(t, s.Start("alice"))
	drainMessages(alice)

	require.NoError(t, s.Action("bob", ActionData{Action: "fold"}))

	msgs := drainMessages(alice)
	results := messagesOfType(msgs, MessageTypeHandResult)
	require.Len(t, results, 1)

	var result HandResultData
	require.NoError(t, json.Unmarshal(results[0].Data, &result))
	require.Len(t, result.Winners, 1)
	assert.Equal(t, "alice", result.Winners[0].Name)
	assert.Equal(t, 1, result.Winners[0].Amount, "bob's folded small blind")
}

func TestTurnTimeoutFoldsActor(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	s := newTestSession(t, clock)
	alice := newTestConn(s)
	bob := newTestConn(s)
	joinPlayer(t, s, alice, "alice", 100)
	joinPlayer(t, s, bob, "bob", 100)
	require.NoError(t, s.Start("alice"))
	drainMessages(alice)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(testActionTimeout).MustWait(ctx)

	// bob stalled out of his turn and was folded; alice takes the blinds.
	msgs := drainMessages(alice)
	results := messagesOfType(msgs, MessageTypeHandResult)
	require.Len(t, results, 1)

	var result HandResultData
	require.NoError(t, json.Unmarshal(results[0].Data, &result))
	require.Len(t, result.Winners, 1)
	assert.Equal(t, "alice", result.Winners[0].Name)
}

func TestTimeoutCancelledByAction(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	s := newTestSession(t, clock)
	alice := newTestConn(s)
	bob := newTestConn(s)
	joinPlayer(t, s, alice, "alice", 100)
	joinPlayer(t, s, bob, "bob", 100)
	require.NoError(t, s.Start("alice"))

	// bob acts inside the window, which re-arms the clock for alice.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(testActionTimeout / 2).MustWait(ctx)
	require.NoError(t, s.Action("bob", ActionData{Action: "call"}))
	drainMessages(alice)

	clock.Advance(testActionTimeout).MustWait(ctx)

	// alice timed out, which folds her and ends the hand in bob's favor.
	msgs := drainMessages(alice)
	results := messagesOfType(msgs, MessageTypeHandResult)
	require.Len(t, results, 1)
	var result HandResultData
	require.NoError(t, json.Unmarshal(results[0].Data, &result))
	require.Equal(t, "bob", result.Winners[0].Name)
}

func TestNextHandDealtAfterDelay(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	s := newTestSession(t, clock)
	alice := newTestConn(s)
	bob := newTestConn(s)
	joinPlayer(t, s, alice, "alice", 100)
	joinPlayer(t, s, bob, "bob", 100)
	require.NoError(t, s.Start("alice"))
	require.NoError(t, s.Action("bob", ActionData{Action: "fold"}))
	drainMessages(alice)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(testHandDelay).MustWait(ctx)

	state := lastState(t, drainMessages(alice))
	assert.Equal(t, "deal", state.Round)
	assert.Equal(t, 1, state.Dealer, "button moved to bob's seat")
}

func TestDetachRemovesSeatedPlayer(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, quartz.NewMock(t))
	alice := newTestConn(s)
	bob := newTestConn(s)
	joinPlayer(t, s, alice, "alice", 100)
	joinPlayer(t, s, bob, "bob", 100)
	require.NoError(t, s.Start("alice"))
	drainMessages(alice)

	// bob's socket drops mid-hand; he is folded and alice wins by default.
	s.Detach(bob)

	msgs := drainMessages(alice)
	results := messagesOfType(msgs, MessageTypeHandResult)
	require.Len(t, results, 1)
	var result HandResultData
	require.NoError(t, json.Unmarshal(results[0].Data, &result))
	assert.Equal(t, "alice", result.Winners[0].Name)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, quartz.NewMock(t))
	alice := newTestConn(s)
	joinPlayer(t, s, alice, "alice", 100)

	sum := s.Summary()
	assert.Equal(t, "tbl-1", sum.ID)
	assert.Equal(t, "main", sum.Name)
	assert.Equal(t, 1, sum.Seated)
	assert.Equal(t, 6, sum.MaxPlayers)
	assert.False(t, sum.HandActive)
}
