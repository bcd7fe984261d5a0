// Package bot implements an automated seat-filler that connects to a
// euchred server over websocket and plays random legal actions. It is used
// by the bot and spawn commands and by integration tests.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/euchred/internal/deck"
	"github.com/lox/euchred/internal/display"
	"github.com/lox/euchred/internal/game"
	"github.com/lox/euchred/internal/server"
)

// Config configures one bot
type Config struct {
	URL     string // websocket endpoint, e.g. ws://localhost:8080/ws
	Name    string
	TableID string
	Seat    string    // empty takes the first open seat
	Seed    int64
	Watch   io.Writer // when set, renders snapshots and narration here
}

// Bot plays one seat at one table
type Bot struct {
	cfg      Config
	logger   *log.Logger
	rng      *rand.Rand
	renderer *display.Renderer

	seat game.Role
	conn *websocket.Conn
}

// New creates a bot; Run does the playing
func New(cfg Config, logger *log.Logger, rng *rand.Rand) *Bot {
	b := &Bot{
		cfg:    cfg,
		logger: logger.WithPrefix("bot." + cfg.Name),
		rng:    rng,
	}
	if cfg.Watch != nil {
		b.renderer = display.NewRenderer(cfg.Watch)
	}
	return b
}

// Run connects, joins, and plays until the game ends or the context is
// cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, b.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", b.cfg.URL, err)
	}
	b.conn = conn
	defer func() { _ = conn.Close() }()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	if err := b.send(server.TypeJoin, server.JoinData{
		TableID:    b.cfg.TableID,
		PlayerName: b.cfg.Name,
		Seat:       b.cfg.Seat,
	}); err != nil {
		return err
	}

	for {
		var msg server.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		switch msg.Type {
		case server.TypeJoined:
			var joined server.JoinedData
			if err := json.Unmarshal(msg.Data, &joined); err != nil {
				return err
			}
			b.seat = game.Role(joined.Seat)
			b.logger.Info("seated", "seat", b.seat, "table", joined.TableID)

		case server.TypeState:
			var state server.StateData
			if err := json.Unmarshal(msg.Data, &state); err != nil {
				return err
			}
			if b.renderer != nil {
				b.renderer.RenderState(state)
			}
			if state.GameOver {
				b.logger.Info("game over", "winner", state.WinningTeam)
				return nil
			}
			if action := b.Decide(state); action != nil {
				if err := b.sendMessage(action); err != nil {
					return err
				}
			}

		case server.TypeNarration:
			var narration server.NarrationData
			if err := json.Unmarshal(msg.Data, &narration); err != nil {
				return err
			}
			if b.renderer != nil {
				b.renderer.RenderNarration(narration.Entries)
			}
			for _, entry := range narration.Entries {
				b.logger.Debug("narration", "kind", entry.Kind, "text", entry.Text)
			}

		case server.TypeError:
			var errData server.ErrorData
			_ = json.Unmarshal(msg.Data, &errData)
			// racing another seat's action is routine; anything else isn't
			b.logger.Debug("server rejected action", "code", errData.Code, "message", errData.Message)
		}
	}
}

// Decide picks the bot's next action for a snapshot, or nil when it isn't
// the bot's turn to do anything.
func (b *Bot) Decide(state server.StateData) *server.Message {
	me := string(b.seat)

	switch game.Phase(state.Phase) {
	case game.PhaseLobby, game.PhaseBetweenHands:
		// one deterministic actor per table: the dealer's seat starts hands
		if state.Dealer == me && allSeated(state) {
			return b.message(server.TypeStartHand, nil)
		}

	case game.PhaseOrderUpRound1:
		if state.CurrentPlayer == me {
			return b.message(server.TypeOrderUp, server.OrderUpData{OrderUp: b.rng.IntN(4) == 0})
		}

	case game.PhaseOrderUpRound2:
		if state.CurrentPlayer == me {
			var suit *string
			if state.UpCard != nil && b.rng.IntN(3) == 0 {
				s := state.UpCard.Suit.SameColorSuit().String()
				suit = &s
			}
			return b.message(server.TypeCallTrump, server.CallTrumpData{Suit: suit})
		}

	case game.PhaseAwaitingDealerDiscard:
		if state.CurrentPlayer == me && len(state.YourHand) > 0 {
			card := state.YourHand[b.rng.IntN(len(state.YourHand))]
			return b.message(server.TypeDealerDiscard, server.DealerDiscardData{Card: card})
		}

	case game.PhaseAwaitingGoAlone:
		if state.CurrentPlayer == me {
			return b.message(server.TypeGoAlone, server.GoAloneData{Alone: b.rng.IntN(5) == 0})
		}

	case game.PhasePlaying:
		if state.CurrentPlayer == me {
			if card, ok := b.chooseCard(state); ok {
				return b.message(server.TypePlayCard, server.PlayCardData{Card: card})
			}
		}
	}
	return nil
}

// chooseCard picks a random legal card from the bot's hand
func (b *Bot) chooseCard(state server.StateData) (deck.Card, bool) {
	if len(state.YourHand) == 0 {
		return deck.Card{}, false
	}
	legal := LegalPlays(state)
	if len(legal) == 0 {
		legal = state.YourHand
	}
	return legal[b.rng.IntN(len(legal))], true
}

// LegalPlays computes which of the snapshot's own cards follow suit, using
// the same bower-aware rule the engine enforces.
func LegalPlays(state server.StateData) []deck.Card {
	if len(state.CurrentTrick) == 0 || state.TrumpSuit == nil {
		return state.YourHand
	}
	trump, err := deck.ParseSuit(*state.TrumpSuit)
	if err != nil {
		return state.YourHand
	}
	led := game.EffectiveSuit(state.CurrentTrick[0].Card, trump)

	var following []deck.Card
	for _, c := range state.YourHand {
		if game.EffectiveSuit(c, trump) == led {
			following = append(following, c)
		}
	}
	if len(following) == 0 {
		return state.YourHand
	}
	return following
}

func allSeated(state server.StateData) bool {
	for _, s := range state.Seats {
		if !s.Connected {
			return false
		}
	}
	return len(state.Seats) > 0
}

func (b *Bot) message(messageType server.MessageType, data interface{}) *server.Message {
	msg, err := server.NewMessage(messageType, data)
	if err != nil {
		b.logger.Error("failed to encode message", "type", messageType, "error", err)
		return nil
	}
	return msg
}

func (b *Bot) send(messageType server.MessageType, data interface{}) error {
	msg := b.message(messageType, data)
	if msg == nil {
		return fmt.Errorf("failed to encode %s", messageType)
	}
	return b.sendMessage(msg)
}

func (b *Bot) sendMessage(msg *server.Message) error {
	return b.conn.WriteJSON(msg)
}
