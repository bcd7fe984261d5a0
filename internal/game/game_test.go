package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/euchred/internal/deck"
	"github.com/lox/euchred/internal/randutil"
)

func TestRoleTeams(t *testing.T) {
	assert.Equal(t, TeamNorthSouth, North.Team())
	assert.Equal(t, TeamNorthSouth, South.Team())
	assert.Equal(t, TeamEastWest, East.Team())
	assert.Equal(t, TeamEastWest, West.Team())
	assert.Equal(t, South, North.Partner())
	assert.Equal(t, East, West.Partner())
	assert.Equal(t, TeamEastWest, TeamNorthSouth.Opponent())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("west")
	require.NoError(t, err)
	assert.Equal(t, West, r)

	_, err = ParseRole("northwest")
	assert.Error(t, err)
}

// playFullGame drives one game to completion through the public entry
// points, making pseudo-random decisions, and checks card conservation
// after every accepted action.
func playFullGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := newTestGame(seed)
	rng := randutil.New(seed + 1)

	const maxActions = 10000
	for i := 0; i < maxActions; i++ {
		if g.GameOver {
			return g
		}
		switch g.Phase {
		case PhaseLobby, PhaseBetweenHands:
			require.NoError(t, g.StartNewHand())
		case PhaseDealing:
			require.NoError(t, g.DealCards())
			requireConservation(t, g)
		case PhaseOrderUpRound1:
			require.NoError(t, g.HandleOrderUpDecision(g.CurrentPlayer, rng.IntN(4) == 0))
			requireConservation(t, g)
		case PhaseOrderUpRound2:
			var suit *deck.Suit
			if rng.IntN(3) == 0 {
				s := g.UpCard.Suit.SameColorSuit()
				suit = &s
			}
			require.NoError(t, g.HandleCallTrumpDecision(g.CurrentPlayer, suit))
			requireConservation(t, g)
		case PhaseAwaitingDealerDiscard:
			hand := g.Players[g.Dealer].Hand
			require.NoError(t, g.HandleDealerDiscard(g.Dealer, hand[rng.IntN(len(hand))]))
			requireConservation(t, g)
		case PhaseAwaitingGoAlone:
			require.NoError(t, g.HandleGoAloneDecision(g.TrumpCaller, rng.IntN(5) == 0))
		case PhasePlaying:
			playAnyValid(t, g)
			requireConservation(t, g)
		case PhaseScoring:
			require.NoError(t, g.ScoreCurrentHand())
		default:
			t.Fatalf("unexpected phase %s", g.Phase)
		}
	}
	t.Fatalf("game did not finish within %d actions (phase %s)", maxActions, g.Phase)
	return nil
}

func TestFullGamePlaysToCompletion(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			g := playFullGame(t, seed)

			assert.Equal(t, PhaseGameOver, g.Phase)
			assert.GreaterOrEqual(t, g.Scores[g.WinningTeam], WinningScore)
			assert.Less(t, g.Scores[g.WinningTeam.Opponent()], WinningScore)
			assert.Equal(t, 1, g.Stats.GamesPlayed)
			assert.Equal(t, 1, g.Stats.TeamWins[g.WinningTeam])
		})
	}
}

func TestMatchStatsAccumulateAcrossGames(t *testing.T) {
	g := playFullGame(t, 3)
	firstWinner := g.WinningTeam

	g.ResetGame()
	assert.Equal(t, 1, g.Stats.GamesPlayed)
	assert.Equal(t, 1, g.Stats.TeamWins[firstWinner])

	// the reset game is playable again from the lobby
	require.NoError(t, g.StartNewHand())
	require.NoError(t, g.DealCards())
	requireConservation(t, g)
}

func TestNextActiveSkipsSittingOut(t *testing.T) {
	g := newTestGame(1)
	g.GoingAlone = true
	g.SittingOut = South

	next, err := g.nextActive(East)
	require.NoError(t, err)
	assert.Equal(t, West, next)

	next, err = g.nextActive(North)
	require.NoError(t, err)
	assert.Equal(t, East, next)
}
