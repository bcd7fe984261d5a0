package game

import (
	"fmt"

	"github.com/lox/euchred/internal/deck"
)

// MessageType tags a narration message variant
type MessageType string

const (
	MessageTypePlay         MessageType = "play"
	MessageTypeTrick        MessageType = "trick"
	MessageTypeScore        MessageType = "score"
	MessageTypeScoreSummary MessageType = "score_summary"
	MessageTypeGameOver     MessageType = "game_over"
	MessageTypeGame         MessageType = "game"
)

// Message is one entry in the game's narration log. The engine only appends
// these; relaying them to players is the caller's concern. Each variant
// carries the fields its case needs plus a rendered line for thin clients.
type Message interface {
	MessageType() MessageType
	Text() string
}

// PlayMessage narrates a single card play
type PlayMessage struct {
	Player Role
	Card   deck.Card
}

func (m PlayMessage) MessageType() MessageType { return MessageTypePlay }
func (m PlayMessage) Text() string {
	return fmt.Sprintf("%s plays %s", m.Player, m.Card)
}

// TrickMessage narrates a completed trick
type TrickMessage struct {
	Winner Role
	Team   Team
	Number int
}

func (m TrickMessage) MessageType() MessageType { return MessageTypeTrick }
func (m TrickMessage) Text() string {
	return fmt.Sprintf("%s takes trick %d for %s", m.Winner, m.Number, m.Team)
}

// ScoreMessage narrates points awarded at the end of a hand
type ScoreMessage struct {
	Team    Team
	Points  int
	Outcome string
}

func (m ScoreMessage) MessageType() MessageType { return MessageTypeScore }
func (m ScoreMessage) Text() string {
	return fmt.Sprintf("%s: %s score %d", m.Outcome, m.Team, m.Points)
}

// ScoreSummaryMessage carries the running totals after a hand is scored
type ScoreSummaryMessage struct {
	Scores map[Team]int
}

func (m ScoreSummaryMessage) MessageType() MessageType { return MessageTypeScoreSummary }
func (m ScoreSummaryMessage) Text() string {
	return fmt.Sprintf("%s %d, %s %d",
		TeamNorthSouth, m.Scores[TeamNorthSouth],
		TeamEastWest, m.Scores[TeamEastWest])
}

// GameOverMessage narrates the end of the game
type GameOverMessage struct {
	Winner Team
}

func (m GameOverMessage) MessageType() MessageType { return MessageTypeGameOver }
func (m GameOverMessage) Text() string {
	return fmt.Sprintf("game over, %s win", m.Winner)
}

// GameMessage is free-form game lifecycle narration
type GameMessage struct {
	Note string
}

func (m GameMessage) MessageType() MessageType { return MessageTypeGame }
func (m GameMessage) Text() string             { return m.Note }

// DrainMessages returns the narration appended since the last drain and
// clears the log. Callers relay the returned slice to players.
func (g *Game) DrainMessages() []Message {
	out := g.Messages
	g.Messages = nil
	return out
}
