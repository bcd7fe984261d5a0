package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lox/euchred/internal/deck"
	"github.com/lox/euchred/internal/game"
)

// MessageType identifies the type of a websocket message
type MessageType string

const (
	// Client → Server
	TypeJoin          MessageType = "join"
	TypeStartHand     MessageType = "start_hand"
	TypeOrderUp       MessageType = "order_up"
	TypeCallTrump     MessageType = "call_trump"
	TypeDealerDiscard MessageType = "dealer_discard"
	TypeGoAlone       MessageType = "go_alone"
	TypePlayCard      MessageType = "play_card"
	TypeNewGame       MessageType = "new_game"
	TypeListTables    MessageType = "list_tables"

	// Server → Client
	TypeJoined    MessageType = "joined"
	TypeState     MessageType = "state"
	TypeNarration MessageType = "narration"
	TypeError     MessageType = "error"
	TypeTableList MessageType = "table_list"
)

// Message is the websocket envelope
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps a payload in an envelope with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}
	return &Message{Type: messageType, Data: raw, Timestamp: time.Now()}, nil
}

// Client → Server payloads

type JoinData struct {
	TableID    string `json:"tableId"`
	PlayerName string `json:"playerName"`
	Seat       string `json:"seat,omitempty"` // empty means first open seat
}

type OrderUpData struct {
	OrderUp bool `json:"orderUp"`
}

type CallTrumpData struct {
	Suit *string `json:"suit"` // nil means pass
}

type DealerDiscardData struct {
	Card deck.Card `json:"card"`
}

type GoAloneData struct {
	Alone bool `json:"alone"`
}

type PlayCardData struct {
	Card deck.Card `json:"card"`
}

// Server → Client payloads

type JoinedData struct {
	TableID     string `json:"tableId"`
	Seat        string `json:"seat"`
	Team        string `json:"team"`
	Reconnected bool   `json:"reconnected,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SeatView is what any player may know about a seat
type SeatView struct {
	Role       string `json:"role"`
	PlayerName string `json:"playerName,omitempty"`
	Connected  bool   `json:"connected"`
	CardCount  int    `json:"cardCount"`
	TricksWon  int    `json:"tricksWon"`
	SittingOut bool   `json:"sittingOut,omitempty"`
}

// PlayedCardView is one card on the table
type PlayedCardView struct {
	Player string    `json:"player"`
	Card   deck.Card `json:"card"`
}

// TrickView is a completed trick
type TrickView struct {
	Cards  []PlayedCardView `json:"cards"`
	Winner string           `json:"winner"`
	Team   string           `json:"team"`
}

// StateData is a per-seat redacted snapshot of the game. It carries the
// receiving seat's own hand; every other hand is a count in Seats, and the
// kitty is reported only by size.
type StateData struct {
	TableID       string           `json:"tableId"`
	Phase         string           `json:"phase"`
	Dealer        string           `json:"dealer"`
	CurrentPlayer string           `json:"currentPlayer"`
	TrickLeader   string           `json:"trickLeader,omitempty"`
	UpCard        *deck.Card       `json:"upCard,omitempty"`
	TrumpSuit     *string          `json:"trumpSuit,omitempty"`
	MakerTeam     string           `json:"makerTeam,omitempty"`
	TrumpCaller   string           `json:"trumpCaller,omitempty"`
	GoingAlone    bool             `json:"goingAlone"`
	SittingOut    string           `json:"sittingOut,omitempty"`
	YourSeat      string           `json:"yourSeat"`
	YourHand      []deck.Card      `json:"yourHand"`
	KittySize     int              `json:"kittySize"`
	CurrentTrick  []PlayedCardView `json:"currentTrick"`
	Tricks        []TrickView      `json:"tricks"`
	Seats         []SeatView       `json:"seats"`
	Scores        map[string]int   `json:"scores"`
	GamesPlayed   int              `json:"gamesPlayed"`
	TeamWins      map[string]int   `json:"teamWins"`
	GameOver      bool             `json:"gameOver"`
	WinningTeam   string           `json:"winningTeam,omitempty"`
}

// NarrationEntry is one relayed engine message
type NarrationEntry struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type NarrationData struct {
	TableID string           `json:"tableId"`
	Entries []NarrationEntry `json:"entries"`
}

type TableInfo struct {
	ID        string `json:"id"`
	Phase     string `json:"phase"`
	OpenSeats int    `json:"openSeats"`
}

type TableListData struct {
	Tables []TableInfo `json:"tables"`
}

// Engine error → protocol error code mapping

func errorCode(err error) string {
	var followErr *game.MustFollowSuitError
	switch {
	case errors.As(err, &followErr):
		return "must_follow_suit"
	case errors.Is(err, game.ErrOutOfTurn):
		return "out_of_turn"
	case errors.Is(err, game.ErrCardNotInHand):
		return "card_not_in_hand"
	case errors.Is(err, game.ErrIllegalTrumpCall):
		return "illegal_trump_call"
	case errors.Is(err, game.ErrInvalidGoAloneAttempt):
		return "invalid_go_alone"
	case errors.Is(err, game.ErrInsufficientCards):
		return "insufficient_cards"
	case errors.Is(err, game.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrTableFull):
		return "table_full"
	case errors.Is(err, ErrSeatTaken):
		return "seat_taken"
	case errors.Is(err, ErrUnknownSeat):
		return "unknown_seat"
	case errors.Is(err, ErrUnknownTable):
		return "unknown_table"
	case errors.Is(err, ErrNotSeated):
		return "not_seated"
	default:
		return "internal"
	}
}

// NewErrorMessage builds an error envelope from an engine error
func NewErrorMessage(err error) *Message {
	msg, _ := NewMessage(TypeError, ErrorData{Code: errorCode(err), Message: err.Error()})
	return msg
}
