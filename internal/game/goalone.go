package game

// HandleGoAloneDecision records whether the trump caller plays the hand
// without their partner. Only the trump caller may decide, and only while
// the game is awaiting it. Play then opens left of the dealer, skipping the
// sitting-out partner if the caller goes alone.
func (g *Game) HandleGoAloneDecision(player Role, alone bool) error {
	if g.Phase != PhaseAwaitingGoAlone || player != g.TrumpCaller {
		return ErrInvalidGoAloneAttempt
	}

	g.GoingAlone = alone
	if alone {
		g.AlonePlayer = player
		g.SittingOut = player.Partner()
	} else {
		g.AlonePlayer = ""
		g.SittingOut = ""
	}

	lead, err := g.nextActive(g.Dealer)
	if err != nil {
		// seating was validated when the hand started
		return err
	}

	g.Phase = PhasePlaying
	g.CurrentPlayer = lead
	g.TrickLeader = lead
	return nil
}
