package game

import "fmt"

// Hand outcome names used in score narration
const (
	OutcomeMade      = "made it"
	OutcomeMarch     = "march"
	OutcomeLoneMarch = "lone march"
	OutcomeEuchred   = "euchred"
)

// ScoreCurrentHand awards points for the completed hand:
//
//	maker team takes 3 or 4 tricks          1 point
//	maker team takes all 5                  2 points
//	maker team takes all 5 going alone      4 points
//	maker team takes fewer than 3 (euchred) 2 points to the opponents
//
// It then checks for game over, either ending the game or moving to
// BETWEEN_HANDS for the next deal.
func (g *Game) ScoreCurrentHand() error {
	if g.Phase != PhaseScoring {
		return fmt.Errorf("%w: scoring in phase %s", ErrInvalidState, g.Phase)
	}
	if g.MakerTeam == "" {
		return fmt.Errorf("%w: no maker team", ErrInvalidState)
	}

	makerTricks := 0
	for _, p := range g.Players {
		if p.Role.Team() == g.MakerTeam {
			makerTricks += p.TricksWon
		}
	}

	var (
		team    Team
		points  int
		outcome string
	)
	switch {
	case makerTricks == TricksPerHand && g.GoingAlone:
		team, points, outcome = g.MakerTeam, 4, OutcomeLoneMarch
	case makerTricks == TricksPerHand:
		team, points, outcome = g.MakerTeam, 2, OutcomeMarch
	case makerTricks >= 3:
		team, points, outcome = g.MakerTeam, 1, OutcomeMade
	default:
		team, points, outcome = g.MakerTeam.Opponent(), 2, OutcomeEuchred
	}

	g.Scores[team] += points
	g.Messages = append(g.Messages, ScoreMessage{Team: team, Points: points, Outcome: outcome})
	g.Messages = append(g.Messages, ScoreSummaryMessage{Scores: copyScores(g.Scores)})

	g.checkGameOver()
	return nil
}

// checkGameOver ends the game if either team has reached the winning score
func (g *Game) checkGameOver() {
	var winner Team
	bestScore := WinningScore - 1
	for team, score := range g.Scores {
		if score > bestScore {
			bestScore = score
			winner = team
		}
	}

	if winner == "" {
		g.Phase = PhaseBetweenHands
		return
	}

	g.GameOver = true
	g.WinningTeam = winner
	g.Phase = PhaseGameOver
	g.Stats.GamesPlayed++
	g.Stats.TeamWins[winner]++
	g.Messages = append(g.Messages, GameOverMessage{Winner: winner})
}

// ResetGame returns the table to the lobby for a fresh game. Scores go back
// to zero and all hand-scoped state is cleared; match stats survive.
func (g *Game) ResetGame() {
	g.Scores = map[Team]int{TeamNorthSouth: 0, TeamEastWest: 0}
	g.Phase = PhaseLobby
	g.GameOver = false
	g.WinningTeam = ""

	g.Deck = nil
	g.Kitty = nil
	g.UpCard = nil
	g.TrumpSuit = nil
	g.MakerTeam = ""
	g.TrumpCaller = ""
	g.GoingAlone = false
	g.AlonePlayer = ""
	g.SittingOut = ""
	g.TrickLeader = ""
	g.CurrentTrick = nil
	g.Tricks = nil
	g.CurrentPlayer = ""

	for _, r := range g.PlayerOrder {
		g.Players[r] = &Player{Role: r}
	}

	g.Messages = append(g.Messages, GameMessage{Note: "new game started"})
}

func copyScores(scores map[Team]int) map[Team]int {
	out := make(map[Team]int, len(scores))
	for t, s := range scores {
		out[t] = s
	}
	return out
}
