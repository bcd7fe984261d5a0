package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScoringGame builds a hand that is ready to score with the given maker
// trick count attributed to north+south.
func newScoringGame(t *testing.T, makerTricks int, alone bool) *Game {
	t.Helper()
	require.LessOrEqual(t, makerTricks, TricksPerHand)

	g := newTestGame(9)
	g.Phase = PhaseScoring
	g.MakerTeam = TeamNorthSouth
	g.TrumpCaller = North
	g.GoingAlone = alone
	if alone {
		g.AlonePlayer = North
		g.SittingOut = South
	}
	g.Players[North].TricksWon = makerTricks
	g.Players[East].TricksWon = TricksPerHand - makerTricks
	return g
}

func TestScoringTable(t *testing.T) {
	tests := []struct {
		name        string
		makerTricks int
		alone       bool
		wantTeam    Team
		wantPoints  int
		wantOutcome string
	}{
		{"three tricks", 3, false, TeamNorthSouth, 1, OutcomeMade},
		{"four tricks", 4, false, TeamNorthSouth, 1, OutcomeMade},
		{"march", 5, false, TeamNorthSouth, 2, OutcomeMarch},
		{"lone march", 5, true, TeamNorthSouth, 4, OutcomeLoneMarch},
		{"euchred on two", 2, false, TeamEastWest, 2, OutcomeEuchred},
		{"euchred on zero", 0, false, TeamEastWest, 2, OutcomeEuchred},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newScoringGame(t, tt.makerTricks, tt.alone)
			require.NoError(t, g.ScoreCurrentHand())

			assert.Equal(t, tt.wantPoints, g.Scores[tt.wantTeam])
			assert.Equal(t, 0, g.Scores[tt.wantTeam.Opponent()])
			assert.Equal(t, PhaseBetweenHands, g.Phase)

			msgs := g.DrainMessages()
			require.NotEmpty(t, msgs)
			score, ok := msgs[0].(ScoreMessage)
			require.True(t, ok)
			assert.Equal(t, tt.wantTeam, score.Team)
			assert.Equal(t, tt.wantPoints, score.Points)
			assert.Equal(t, tt.wantOutcome, score.Outcome)
			assert.Equal(t, MessageTypeScoreSummary, msgs[1].MessageType())
		})
	}
}

func TestScoringWrongPhase(t *testing.T) {
	g := newTestGame(9)
	assert.ErrorIs(t, g.ScoreCurrentHand(), ErrInvalidState)
}

func TestScoringWithoutMaker(t *testing.T) {
	g := newTestGame(9)
	g.Phase = PhaseScoring
	assert.ErrorIs(t, g.ScoreCurrentHand(), ErrInvalidState)
}

func TestGameOverAtWinningScore(t *testing.T) {
	g := newScoringGame(t, 5, true) // lone march: 9 + 4 = 13
	g.Scores[TeamNorthSouth] = 9

	require.NoError(t, g.ScoreCurrentHand())

	assert.True(t, g.GameOver)
	assert.Equal(t, TeamNorthSouth, g.WinningTeam)
	assert.Equal(t, PhaseGameOver, g.Phase)
	assert.Equal(t, 13, g.Scores[TeamNorthSouth])
	assert.Equal(t, 1, g.Stats.GamesPlayed)
	assert.Equal(t, 1, g.Stats.TeamWins[TeamNorthSouth])
	assert.Equal(t, 0, g.Stats.TeamWins[TeamEastWest])

	msgs := g.DrainMessages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, MessageTypeGameOver, last.MessageType())
}

func TestNoGameOverBelowWinningScore(t *testing.T) {
	g := newScoringGame(t, 3, false)
	g.Scores[TeamNorthSouth] = 8 // 8 + 1 = 9, one short

	require.NoError(t, g.ScoreCurrentHand())

	assert.False(t, g.GameOver)
	assert.Equal(t, PhaseBetweenHands, g.Phase)
	assert.Zero(t, g.Stats.GamesPlayed)
}

func TestEuchreCanWinTheGame(t *testing.T) {
	g := newScoringGame(t, 1, false)
	g.Scores[TeamEastWest] = 9

	require.NoError(t, g.ScoreCurrentHand())
	assert.Equal(t, TeamEastWest, g.WinningTeam)
	assert.Equal(t, PhaseGameOver, g.Phase)
}

func TestResetGame(t *testing.T) {
	g := newScoringGame(t, 5, true)
	g.Scores[TeamNorthSouth] = 9
	require.NoError(t, g.ScoreCurrentHand())
	require.True(t, g.GameOver)
	statsBefore := g.Stats

	g.ResetGame()

	assert.Equal(t, map[Team]int{TeamNorthSouth: 0, TeamEastWest: 0}, g.Scores)
	assert.Equal(t, PhaseLobby, g.Phase)
	assert.False(t, g.GameOver)
	assert.Empty(t, g.WinningTeam)
	assert.Nil(t, g.TrumpSuit)
	assert.Empty(t, g.Tricks)
	assert.Equal(t, statsBefore, g.Stats, "match stats survive a reset")

	msgs := g.DrainMessages()
	last := msgs[len(msgs)-1]
	assert.Equal(t, MessageTypeGame, last.MessageType())
	assert.Equal(t, "new game started", last.Text())
}

func TestResetGameIdempotent(t *testing.T) {
	g := newScoringGame(t, 3, false)
	require.NoError(t, g.ScoreCurrentHand())

	g.ResetGame()
	g.ResetGame()

	assert.Equal(t, map[Team]int{TeamNorthSouth: 0, TeamEastWest: 0}, g.Scores)
	assert.Equal(t, PhaseLobby, g.Phase)
	assert.Zero(t, g.Stats.GamesPlayed)
}
