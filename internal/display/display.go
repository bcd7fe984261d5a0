// Package display renders table snapshots and narration for terminal
// watchers such as `euchred bot --watch`.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/euchred/internal/deck"
	"github.com/lox/euchred/internal/server"
)

// Styles contains styling for table display
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	Narration lipgloss.Style
	Winner    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Score     lipgloss.Style
	Trump     lipgloss.Style
	Separator lipgloss.Style
	SeatName  lipgloss.Style
	SeatInfo  lipgloss.Style
}

// NewStyles creates a new set of display styles
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		SubHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Narration: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		Score: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Trump: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		SeatName: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		SeatInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Renderer writes formatted table views to an output stream.
type Renderer struct {
	styles *Styles
	out    io.Writer
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		styles: NewStyles(),
		out:    w,
	}
}

// FormatCard formats a single card with suit coloring
func (r *Renderer) FormatCard(card deck.Card) string {
	if card.Suit.IsRed() {
		return r.styles.CardRed.Render(card.String())
	}
	return r.styles.CardBlack.Render(card.String())
}

// FormatCards formats a hand like "[J♥ A♠ 10♦]"
func (r *Renderer) FormatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	var formatted []string
	for _, card := range cards {
		formatted = append(formatted, r.FormatCard(card))
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// RenderState prints a full view of a snapshot: phase, trump, scores,
// seats, the trick in progress and the watcher's own hand.
func (r *Renderer) RenderState(state server.StateData) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.Header.Render(fmt.Sprintf("*** %s ***", phaseTitle(state.Phase))))

	if state.TrumpSuit != nil {
		trump := fmt.Sprintf("Trump: %s", *state.TrumpSuit)
		if state.TrumpCaller != "" {
			trump += fmt.Sprintf(" (called by %s)", state.TrumpCaller)
		}
		if state.GoingAlone {
			trump += fmt.Sprintf(" - %s going alone", state.TrumpCaller)
		}
		fmt.Fprintln(r.out, r.styles.Trump.Render(trump))
	}
	if state.UpCard != nil {
		fmt.Fprintf(r.out, "Up-card: %s\n", r.FormatCard(*state.UpCard))
	}

	r.renderScores(state)
	r.renderSeats(state)

	if len(state.CurrentTrick) > 0 {
		var plays []string
		for _, play := range state.CurrentTrick {
			plays = append(plays, fmt.Sprintf("%s %s", play.Player, r.FormatCard(play.Card)))
		}
		fmt.Fprintf(r.out, "Trick: %s\n", strings.Join(plays, ", "))
	}

	if len(state.YourHand) > 0 {
		fmt.Fprintf(r.out, "Your hand: %s\n", r.FormatCards(state.YourHand))
	}
}

func (r *Renderer) renderScores(state server.StateData) {
	if len(state.Scores) == 0 {
		return
	}
	var parts []string
	for _, team := range []string{"north+south", "east+west"} {
		if score, ok := state.Scores[team]; ok {
			parts = append(parts, fmt.Sprintf("%s %d", team, score))
		}
	}
	fmt.Fprintf(r.out, "Score: %s\n", r.styles.Score.Render(strings.Join(parts, " / ")))
}

func (r *Renderer) renderSeats(state server.StateData) {
	for _, seat := range state.Seats {
		name := seat.PlayerName
		if name == "" {
			name = "(open)"
		}
		line := fmt.Sprintf("%s: %s", r.styles.SeatName.Render(seat.Role), name)
		if seat.Role == state.Dealer {
			line += " " + r.styles.SeatInfo.Render("(dealer)")
		}
		if seat.SittingOut {
			line += " " + r.styles.SeatInfo.Render("(sitting out)")
		}
		if seat.TricksWon > 0 {
			line += fmt.Sprintf(" - %d tricks", seat.TricksWon)
		}
		fmt.Fprintln(r.out, line)
	}
}

// RenderNarration prints the server's narration lines, highlighting
// hand results.
func (r *Renderer) RenderNarration(entries []server.NarrationEntry) {
	for _, entry := range entries {
		switch entry.Kind {
		case "score", "game_over":
			fmt.Fprintln(r.out, r.styles.Winner.Render(entry.Text))
		default:
			fmt.Fprintln(r.out, r.styles.Narration.Render(entry.Text))
		}
	}
}

func phaseTitle(phase string) string {
	return strings.ReplaceAll(phase, "_", " ")
}
