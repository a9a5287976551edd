package server

import (
	"encoding/json"
	"time"

	"github.com/wkantaros/poker-ftb/internal/deck"
	"github.com/wkantaros/poker-ftb/internal/table"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// Client → server.
	MessageTypeJoin   MessageType = "join"
	MessageTypeLeave  MessageType = "leave"
	MessageTypeStart  MessageType = "start"
	MessageTypeAction MessageType = "action"

	// Server → client.
	MessageTypeState      MessageType = "state"
	MessageTypeHoleCards  MessageType = "hole_cards"
	MessageTypeHandResult MessageType = "hand_result"
	MessageTypeError      MessageType = "error"
)

// Message is the WebSocket envelope. Payloads are kept raw so each side
// decodes only the types it handles.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps a payload in an envelope with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → server payloads.

type JoinData struct {
	Name       string `json:"name"`
	BuyIn      int    `json:"buyIn"`
	Straddling bool   `json:"straddling,omitempty"`
}

type ActionData struct {
	Action string `json:"action"` // bet, call, check, fold, all-in
	Amount int    `json:"amount,omitempty"`
}

// Server → client payloads.

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SeatState is the public view of one seat: everything except hole cards.
type SeatState struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Chips  int    `json:"chips"`
	Bet    int    `json:"bet"`
	Folded bool   `json:"folded,omitempty"`
	AllIn  bool   `json:"allIn,omitempty"`
	InHand bool   `json:"inHand,omitempty"`
}

// StateData is the full broadcast snapshot sent after every transition.
type StateData struct {
	TableID string      `json:"tableId"`
	Name    string      `json:"name"`
	Round   string      `json:"round,omitempty"`
	Pot     int         `json:"pot"`
	MaxBet  int         `json:"maxBet"`
	Board   []string    `json:"board,omitempty"`
	Dealer  int         `json:"dealer"`
	Actor   string      `json:"actor,omitempty"`
	Host    string      `json:"host,omitempty"`
	Seats   []SeatState `json:"seats"`
}

type HoleCardsData struct {
	Cards []string `json:"cards"`
}

type ResultRow struct {
	Name        string `json:"name"`
	Seat        int    `json:"seat"`
	Amount      int    `json:"amount,omitempty"`
	Chips       int    `json:"chips"`
	Description string `json:"description,omitempty"`
}

type HandResultData struct {
	Winners []ResultRow `json:"winners"`
	Losers  []ResultRow `json:"losers,omitempty"`
}

// TableSummary describes one table in the lobby listing.
type TableSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
	Seated     int    `json:"seated"`
	MaxPlayers int    `json:"maxPlayers"`
	HandActive bool   `json:"handActive"`
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func resultRows(results []table.Result) []ResultRow {
	rows := make([]ResultRow, len(results))
	for i, r := range results {
		rows[i] = ResultRow{
			Name:        r.Name,
			Seat:        r.Seat,
			Amount:      r.Amount,
			Chips:       r.Chips,
			Description: r.Description,
		}
	}
	return rows
}
