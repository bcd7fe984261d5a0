package game

import (
	"fmt"

	"github.com/lox/euchred/internal/deck"
)

// StartNewHand rotates the deal and prepares a fresh shuffled pack. The
// first call of a session records the pre-rotation dealer as the session's
// initial dealer; repeat calls never overwrite it.
func (g *Game) StartNewHand() error {
	if len(g.PlayerOrder) == 0 {
		return fmt.Errorf("%w: no seated players", ErrInvalidState)
	}
	for _, r := range g.PlayerOrder {
		if g.Players[r] == nil {
			return fmt.Errorf("%w: no player entry for %q", ErrInvalidState, r)
		}
	}
	nextDealer, err := g.roleAfter(g.Dealer)
	if err != nil {
		return err
	}

	if g.InitialDealer == "" {
		g.InitialDealer = g.Dealer
	}
	g.Dealer = nextDealer

	// left of the new dealer acts first once cards are out
	g.CurrentPlayer, _ = g.roleAfter(g.Dealer)

	g.Tricks = nil
	g.CurrentTrick = nil
	g.TrickLeader = ""
	g.TrumpSuit = nil
	g.MakerTeam = ""
	g.TrumpCaller = ""
	g.GoingAlone = false
	g.AlonePlayer = ""
	g.SittingOut = ""
	g.UpCard = nil
	g.Kitty = nil
	for _, p := range g.Players {
		p.Hand = nil
		p.TricksWon = 0
	}

	g.Deck = deck.New(g.rng)
	g.Phase = PhaseDealing
	return nil
}

// DealCards deals five cards to each seat as a contiguous block (seat i
// receives deck[5i..5i+4]), sets the kitty aside and turns the up-card,
// then opens round-1 bidding left of the dealer.
func (g *Game) DealCards() error {
	need := HandSize*len(g.PlayerOrder) + 1
	if len(g.Deck) < need {
		return fmt.Errorf("%w: have %d, need at least %d", ErrInsufficientCards, len(g.Deck), need)
	}
	leftOfDealer, err := g.roleAfter(g.Dealer)
	if err != nil {
		return err
	}

	for i, role := range g.PlayerOrder {
		hand := make([]deck.Card, HandSize)
		copy(hand, g.Deck[i*HandSize:(i+1)*HandSize])
		g.Players[role].Hand = hand
		g.Players[role].TricksWon = 0
	}

	rest := g.Deck[HandSize*len(g.PlayerOrder):]
	up := rest[len(rest)-1]
	g.Kitty = append([]deck.Card(nil), rest[:len(rest)-1]...)
	g.UpCard = &up
	g.Deck = nil

	g.Phase = PhaseOrderUpRound1
	g.CurrentPlayer = leftOfDealer
	return nil
}
