package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/euchred/internal/deck"
	"github.com/lox/euchred/internal/game"
)

var (
	ErrTableFull    = errors.New("table is full")
	ErrSeatTaken    = errors.New("seat is taken")
	ErrUnknownSeat  = errors.New("unknown seat")
	ErrUnknownTable = errors.New("unknown table")
	ErrNotSeated    = errors.New("not seated at a table")
)

// client is the outbound half of a connection, narrowed so tests can fake it
type client interface {
	Send(msg *Message) error
}

// seat tracks who occupies a role at the table. A dropped player's seat
// stays reserved for their name until the grace timer fires.
type seat struct {
	conn       client
	playerName string
	reserved   bool
	graceTimer *quartz.Timer
}

// Table owns one game.Game and serializes every engine call through its
// mutex, which is the concurrency contract the engine requires: at most one
// in-flight call per game at any time.
type Table struct {
	ID string

	mu    sync.Mutex
	game  *game.Game
	seats map[game.Role]*seat

	logger *log.Logger
	clock  quartz.Clock
	grace  time.Duration
}

// NewTable creates a table with an empty seat for each role
func NewTable(id string, g *game.Game, logger *log.Logger, clock quartz.Clock, grace time.Duration) *Table {
	seats := make(map[game.Role]*seat, len(g.PlayerOrder))
	for _, r := range g.PlayerOrder {
		seats[r] = &seat{}
	}
	return &Table{
		ID:     id,
		game:   g,
		seats:  seats,
		logger: logger.WithPrefix("table." + id),
		clock:  clock,
		grace:  grace,
	}
}

// Join seats a player. An empty seatName takes the first open seat. A
// player whose seat is reserved after a disconnect reclaims it by name.
func (t *Table) Join(conn client, playerName, seatName string) (game.Role, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// reconnect: a reserved seat matching the name wins over everything
	for role, s := range t.seats {
		if s.reserved && s.playerName == playerName {
			if s.graceTimer != nil {
				s.graceTimer.Stop()
				s.graceTimer = nil
			}
			s.conn = conn
			s.reserved = false
			t.logger.Info("player reconnected", "player", playerName, "seat", role)
			return role, true, nil
		}
	}

	var role game.Role
	if seatName != "" {
		parsed, err := game.ParseRole(seatName)
		if err != nil {
			return "", false, ErrUnknownSeat
		}
		if s := t.seats[parsed]; s.conn != nil || s.reserved {
			return "", false, ErrSeatTaken
		}
		role = parsed
	} else {
		for _, r := range t.game.PlayerOrder {
			if s := t.seats[r]; s.conn == nil && !s.reserved {
				role = r
				break
			}
		}
		if role == "" {
			return "", false, ErrTableFull
		}
	}

	t.seats[role].conn = conn
	t.seats[role].playerName = playerName
	t.logger.Info("player joined", "player", playerName, "seat", role)
	return role, false, nil
}

// Drop handles a disconnect: the seat is reserved for the player's name for
// the grace period, then reopened.
func (t *Table) Drop(role game.Role) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.seats[role]
	if !ok || s.conn == nil {
		return
	}
	s.conn = nil

	if t.grace <= 0 {
		s.playerName = ""
		return
	}

	s.reserved = true
	name := s.playerName
	t.logger.Info("player dropped, reserving seat", "player", name, "seat", role, "grace", t.grace)
	s.graceTimer = t.clock.AfterFunc(t.grace, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if s.reserved && s.playerName == name {
			s.reserved = false
			s.playerName = ""
			s.graceTimer = nil
			t.logger.Info("seat reservation expired", "player", name, "seat", role)
		}
	})
}

// HandleAction applies one player action to the engine and, on success,
// broadcasts narration and fresh snapshots. Engine errors go back to the
// acting player only.
func (t *Table) HandleAction(role game.Role, msg *Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.applyAction(role, msg); err != nil {
		t.logger.Debug("action rejected", "seat", role, "type", msg.Type, "error", err)
		return err
	}

	t.broadcastLocked()
	return nil
}

// applyAction dispatches a wire message to the engine entry point it names.
// Called with the table lock held.
func (t *Table) applyAction(role game.Role, msg *Message) error {
	switch msg.Type {
	case TypeStartHand:
		// only between hands: a mid-hand redeal would throw the hand away
		if t.game.Phase != game.PhaseLobby && t.game.Phase != game.PhaseBetweenHands {
			return fmt.Errorf("%w: cannot start a hand in phase %s", game.ErrInvalidState, t.game.Phase)
		}
		if err := t.game.StartNewHand(); err != nil {
			return err
		}
		// dealing is mechanical: run it in the same turn
		return t.game.DealCards()

	case TypeOrderUp:
		var data OrderUpData
		if err := unmarshalData(msg, &data); err != nil {
			return err
		}
		return t.game.HandleOrderUpDecision(role, data.OrderUp)

	case TypeCallTrump:
		var data CallTrumpData
		if err := unmarshalData(msg, &data); err != nil {
			return err
		}
		var suit *deck.Suit
		if data.Suit != nil {
			parsed, err := deck.ParseSuit(*data.Suit)
			if err != nil {
				return fmt.Errorf("%w: %s", game.ErrInvalidState, err)
			}
			suit = &parsed
		}
		return t.game.HandleCallTrumpDecision(role, suit)

	case TypeDealerDiscard:
		var data DealerDiscardData
		if err := unmarshalData(msg, &data); err != nil {
			return err
		}
		return t.game.HandleDealerDiscard(role, data.Card)

	case TypeGoAlone:
		var data GoAloneData
		if err := unmarshalData(msg, &data); err != nil {
			return err
		}
		return t.game.HandleGoAloneDecision(role, data.Alone)

	case TypePlayCard:
		var data PlayCardData
		if err := unmarshalData(msg, &data); err != nil {
			return err
		}
		if err := t.game.HandlePlayCard(role, data.Card); err != nil {
			return err
		}
		// the fifth trick completes the hand; score it in the same turn
		if t.game.Phase == game.PhaseScoring {
			return t.game.ScoreCurrentHand()
		}
		return nil

	case TypeNewGame:
		t.game.ResetGame()
		return nil

	default:
		return fmt.Errorf("%w: unsupported action %q", game.ErrInvalidState, msg.Type)
	}
}

// broadcastLocked relays drained narration and a per-seat redacted snapshot
// to every connected seat. Called with the table lock held.
func (t *Table) broadcastLocked() {
	narration := t.game.DrainMessages()
	var narrationMsg *Message
	if len(narration) > 0 {
		entries := make([]NarrationEntry, len(narration))
		for i, m := range narration {
			entries[i] = NarrationEntry{Kind: string(m.MessageType()), Text: m.Text()}
		}
		narrationMsg, _ = NewMessage(TypeNarration, NarrationData{TableID: t.ID, Entries: entries})
	}

	for role, s := range t.seats {
		if s.conn == nil {
			continue
		}
		if narrationMsg != nil {
			_ = s.conn.Send(narrationMsg)
		}
		state, err := NewMessage(TypeState, t.snapshotLocked(role))
		if err != nil {
			t.logger.Error("failed to encode snapshot", "seat", role, "error", err)
			continue
		}
		_ = s.conn.Send(state)
	}
}

// Broadcast pushes fresh snapshots (and any pending narration) to every
// connected seat
func (t *Table) Broadcast() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.broadcastLocked()
}

// SendSnapshot sends the current state to a single seat
func (t *Table) SendSnapshot(role game.Role) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.seats[role]
	if s == nil || s.conn == nil {
		return
	}
	if state, err := NewMessage(TypeState, t.snapshotLocked(role)); err == nil {
		_ = s.conn.Send(state)
	}
}

// snapshotLocked builds the redacted view for one seat: their own hand in
// full, everyone else's as counts, the kitty as a size only.
func (t *Table) snapshotLocked(viewer game.Role) StateData {
	g := t.game

	var trump *string
	if g.TrumpSuit != nil {
		s := g.TrumpSuit.String()
		trump = &s
	}

	seats := make([]SeatView, 0, len(g.PlayerOrder))
	for _, r := range g.PlayerOrder {
		p := g.Players[r]
		view := SeatView{
			Role:       string(r),
			PlayerName: t.seats[r].playerName,
			Connected:  t.seats[r].conn != nil,
			SittingOut: g.GoingAlone && r == g.SittingOut,
		}
		if p != nil {
			view.CardCount = len(p.Hand)
			view.TricksWon = p.TricksWon
		}
		seats = append(seats, view)
	}

	trick := make([]PlayedCardView, len(g.CurrentTrick))
	for i, pc := range g.CurrentTrick {
		trick[i] = PlayedCardView{Player: string(pc.Player), Card: pc.Card}
	}

	tricks := make([]TrickView, len(g.Tricks))
	for i, tr := range g.Tricks {
		cards := make([]PlayedCardView, len(tr.Cards))
		for j, pc := range tr.Cards {
			cards[j] = PlayedCardView{Player: string(pc.Player), Card: pc.Card}
		}
		tricks[i] = TrickView{Cards: cards, Winner: string(tr.Winner), Team: string(tr.Team)}
	}

	var hand []deck.Card
	if p := g.Players[viewer]; p != nil {
		hand = append([]deck.Card(nil), p.Hand...)
	}

	scores := make(map[string]int, len(g.Scores))
	for team, score := range g.Scores {
		scores[string(team)] = score
	}
	wins := make(map[string]int, len(g.Stats.TeamWins))
	for team, n := range g.Stats.TeamWins {
		wins[string(team)] = n
	}

	return StateData{
		TableID:       t.ID,
		Phase:         string(g.Phase),
		Dealer:        string(g.Dealer),
		CurrentPlayer: string(g.CurrentPlayer),
		TrickLeader:   string(g.TrickLeader),
		UpCard:        g.UpCard,
		TrumpSuit:     trump,
		MakerTeam:     string(g.MakerTeam),
		TrumpCaller:   string(g.TrumpCaller),
		GoingAlone:    g.GoingAlone,
		SittingOut:    string(g.SittingOut),
		YourSeat:      string(viewer),
		YourHand:      hand,
		KittySize:     len(g.Kitty),
		CurrentTrick:  trick,
		Tricks:        tricks,
		Seats:         seats,
		Scores:        scores,
		GamesPlayed:   g.Stats.GamesPlayed,
		TeamWins:      wins,
		GameOver:      g.GameOver,
		WinningTeam:   string(g.WinningTeam),
	}
}

// Info returns lightweight table metadata for listings
func (t *Table) Info() TableInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	open := 0
	for _, s := range t.seats {
		if s.conn == nil && !s.reserved {
			open++
		}
	}
	return TableInfo{ID: t.ID, Phase: string(t.game.Phase), OpenSeats: open}
}

func unmarshalData(msg *Message, v interface{}) error {
	if len(msg.Data) == 0 {
		return fmt.Errorf("%w: missing payload for %q", game.ErrInvalidState, msg.Type)
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("%w: bad payload for %q: %s", game.ErrInvalidState, msg.Type, err)
	}
	return nil
}
