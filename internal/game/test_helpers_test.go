package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/euchred/internal/deck"
	"github.com/lox/euchred/internal/randutil"
)

// newTestGame returns a lobby game with a deterministic shuffle
func newTestGame(seed int64) *Game {
	return New(randutil.New(seed))
}

// newDealtGame drives a fresh game through StartNewHand and DealCards
func newDealtGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := newTestGame(seed)
	require.NoError(t, g.StartNewHand())
	require.NoError(t, g.DealCards())
	return g
}

// newPlayingGame builds a game mid-hand with fixed hands and trump, so play
// tests control exactly which cards are where.
func newPlayingGame(t *testing.T, trump deck.Suit, leader Role, hands map[Role][]deck.Card) *Game {
	t.Helper()
	g := newTestGame(1)
	g.Phase = PhasePlaying
	g.Dealer = West
	ts := trump
	g.TrumpSuit = &ts
	g.MakerTeam = leader.Team()
	g.TrumpCaller = leader
	g.TrickLeader = leader
	g.CurrentPlayer = leader
	for role, hand := range hands {
		require.Contains(t, g.Players, role)
		g.Players[role].Hand = append([]deck.Card(nil), hand...)
	}
	return g
}

// playAnyValid plays the first legal card for the current player
func playAnyValid(t *testing.T, g *Game) {
	t.Helper()
	player := g.CurrentPlayer
	hand := append([]deck.Card(nil), g.Players[player].Hand...)
	for _, c := range hand {
		if g.IsValidPlay(player, c) == nil {
			require.NoError(t, g.HandlePlayCard(player, c))
			return
		}
	}
	t.Fatalf("player %s has no valid play from %v", player, hand)
}

// cardsInPlay counts every card the state can see: undealt deck, kitty,
// up-card, all hands, the current trick and all completed tricks.
func cardsInPlay(g *Game) int {
	n := len(g.Deck) + len(g.Kitty) + len(g.CurrentTrick)
	if g.UpCard != nil {
		n++
	}
	for _, p := range g.Players {
		n += len(p.Hand)
	}
	for _, trick := range g.Tricks {
		n += len(trick.Cards)
	}
	return n
}

// requireConservation asserts the 24-card invariant holds
func requireConservation(t *testing.T, g *Game) {
	t.Helper()
	require.Equal(t, deck.Size, cardsInPlay(g), "card conservation violated in phase %s", g.Phase)
}

// passToRound2 has all four players pass on the up-card
func passToRound2(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < len(g.PlayerOrder); i++ {
		require.NoError(t, g.HandleOrderUpDecision(g.CurrentPlayer, false))
	}
	require.Equal(t, PhaseOrderUpRound2, g.Phase)
}

// orderUpAndDiscard has the given player order up, the dealer discard their
// first card, and the caller decline going alone, leaving the game PLAYING.
func orderUpAndDiscard(t *testing.T, g *Game, caller Role) {
	t.Helper()
	for g.CurrentPlayer != caller {
		require.NoError(t, g.HandleOrderUpDecision(g.CurrentPlayer, false))
	}
	require.NoError(t, g.HandleOrderUpDecision(caller, true))
	require.NoError(t, g.HandleDealerDiscard(g.Dealer, g.Players[g.Dealer].Hand[0]))
	require.NoError(t, g.HandleGoAloneDecision(caller, false))
	require.Equal(t, PhasePlaying, g.Phase)
}
