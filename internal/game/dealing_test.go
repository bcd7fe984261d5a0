package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/euchred/internal/deck"
)

func TestStartNewHandRotatesDealer(t *testing.T) {
	g := newTestGame(1)
	require.Equal(t, West, g.Dealer)

	require.NoError(t, g.StartNewHand())
	assert.Equal(t, North, g.Dealer)
	assert.Equal(t, East, g.CurrentPlayer)
	assert.Equal(t, PhaseDealing, g.Phase)
	assert.Len(t, g.Deck, deck.Size)

	require.NoError(t, g.StartNewHand())
	assert.Equal(t, East, g.Dealer)

	require.NoError(t, g.StartNewHand())
	assert.Equal(t, South, g.Dealer)
}

func TestStartNewHandSetsInitialDealerOnce(t *testing.T) {
	g := newTestGame(1)
	require.NoError(t, g.StartNewHand())
	assert.Equal(t, West, g.InitialDealer)

	require.NoError(t, g.StartNewHand())
	require.NoError(t, g.StartNewHand())
	assert.Equal(t, West, g.InitialDealer, "initial dealer must never be overwritten")
}

func TestStartNewHandClearsHandState(t *testing.T) {
	g := newDealtGame(t, 3)
	orderUpAndDiscard(t, g, East)
	for g.Phase == PhasePlaying {
		playAnyValid(t, g)
	}
	require.NoError(t, g.ScoreCurrentHand())

	require.NoError(t, g.StartNewHand())
	assert.Empty(t, g.Tricks)
	assert.Empty(t, g.CurrentTrick)
	assert.Nil(t, g.TrumpSuit)
	assert.Nil(t, g.UpCard)
	assert.Empty(t, g.Kitty)
	assert.Empty(t, g.MakerTeam)
	assert.False(t, g.GoingAlone)
	for _, p := range g.Players {
		assert.Empty(t, p.Hand)
		assert.Zero(t, p.TricksWon)
	}
}

func TestStartNewHandRejectsBrokenSeating(t *testing.T) {
	g := newTestGame(1)
	g.PlayerOrder = nil
	assert.ErrorIs(t, g.StartNewHand(), ErrInvalidState)

	g = newTestGame(1)
	delete(g.Players, South)
	assert.ErrorIs(t, g.StartNewHand(), ErrInvalidState)

	g = newTestGame(1)
	g.Dealer = Role("nobody")
	assert.ErrorIs(t, g.StartNewHand(), ErrInvalidState)
}

func TestDealCardsBlockDeal(t *testing.T) {
	g := newTestGame(5)
	require.NoError(t, g.StartNewHand())

	dealt := append([]deck.Card(nil), g.Deck...)
	require.NoError(t, g.DealCards())

	// seat i receives deck[5i..5i+4] as a contiguous block
	for i, role := range g.PlayerOrder {
		assert.Equal(t, dealt[i*5:i*5+5], g.Players[role].Hand, "hand for %s", role)
	}
	assert.Equal(t, dealt[20:23], g.Kitty)
	require.NotNil(t, g.UpCard)
	assert.Equal(t, dealt[23], *g.UpCard)
	assert.Empty(t, g.Deck)

	assert.Equal(t, PhaseOrderUpRound1, g.Phase)
	left, err := g.roleAfter(g.Dealer)
	require.NoError(t, err)
	assert.Equal(t, left, g.CurrentPlayer)

	requireConservation(t, g)
}

func TestDealCardsInsufficientDeck(t *testing.T) {
	g := newTestGame(1)
	require.NoError(t, g.StartNewHand())
	g.Deck = g.Deck[:20]

	err := g.DealCards()
	assert.ErrorIs(t, err, ErrInsufficientCards)
	// rejected action leaves state unchanged
	assert.Equal(t, PhaseDealing, g.Phase)
	assert.Empty(t, g.Players[North].Hand)
}
