package game

import (
	"fmt"

	"github.com/lox/euchred/internal/deck"
)

// HandleOrderUpDecision applies one round-1 bidding decision. Ordering up
// fixes trump to the up-card's suit, hands the up-card to the dealer, and
// moves to the dealer's discard. A pass advances the turn; once the dealer
// passes, bidding moves to round 2 starting left of the dealer.
func (g *Game) HandleOrderUpDecision(player Role, orderUp bool) error {
	if g.Phase != PhaseOrderUpRound1 {
		return fmt.Errorf("%w: order-up decision in phase %s", ErrInvalidState, g.Phase)
	}
	if player != g.CurrentPlayer {
		return ErrOutOfTurn
	}
	if g.UpCard == nil {
		return fmt.Errorf("%w: no up-card", ErrInvalidState)
	}
	leftOfDealer, err := g.roleAfter(g.Dealer)
	if err != nil {
		return err
	}

	if !orderUp {
		if player == g.Dealer {
			// all four passed on the up-card
			g.Phase = PhaseOrderUpRound2
			g.CurrentPlayer = leftOfDealer
			return nil
		}
		g.CurrentPlayer, err = g.roleAfter(player)
		return err
	}

	trump := g.UpCard.Suit
	g.TrumpSuit = &trump
	g.MakerTeam = player.Team()
	g.TrumpCaller = player

	// dealer picks the up-card up and will discard down to five
	g.Players[g.Dealer].Hand = append(g.Players[g.Dealer].Hand, *g.UpCard)
	g.UpCard = nil

	g.Phase = PhaseAwaitingDealerDiscard
	g.CurrentPlayer = g.Dealer
	return nil
}

// HandleDealerDiscard removes the named card from the dealer's hand and
// buries it in the kitty, then hands the turn to the trump caller for the
// go-alone decision.
func (g *Game) HandleDealerDiscard(player Role, card deck.Card) error {
	if g.Phase != PhaseAwaitingDealerDiscard {
		return fmt.Errorf("%w: dealer discard in phase %s", ErrInvalidState, g.Phase)
	}
	if player != g.Dealer {
		return ErrOutOfTurn
	}

	hand, ok := deck.Remove(g.Players[g.Dealer].Hand, card)
	if !ok {
		return ErrCardNotInHand
	}
	g.Players[g.Dealer].Hand = hand
	g.Kitty = append(g.Kitty, card)

	g.Phase = PhaseAwaitingGoAlone
	g.CurrentPlayer = g.TrumpCaller
	return nil
}

// HandleCallTrumpDecision applies one round-2 bidding decision. A nil suit
// is a pass. Calling the turned-down suit is illegal. If all four players
// pass, the hand is thrown in and the phase signals a redeal.
func (g *Game) HandleCallTrumpDecision(player Role, suit *deck.Suit) error {
	if g.Phase != PhaseOrderUpRound2 {
		return fmt.Errorf("%w: trump call in phase %s", ErrInvalidState, g.Phase)
	}
	if player != g.CurrentPlayer {
		return ErrOutOfTurn
	}

	if suit == nil {
		if player == g.Dealer {
			// eight passes: signal a redeal
			g.Phase = PhaseBetweenHands
			return nil
		}
		next, err := g.roleAfter(player)
		if err != nil {
			return err
		}
		g.CurrentPlayer = next
		return nil
	}

	if g.UpCard != nil && *suit == g.UpCard.Suit {
		return ErrIllegalTrumpCall
	}

	trump := *suit
	g.TrumpSuit = &trump
	g.MakerTeam = player.Team()
	g.TrumpCaller = player

	// the turned-down card is buried with the kitty
	if g.UpCard != nil {
		g.Kitty = append(g.Kitty, *g.UpCard)
		g.UpCard = nil
	}

	g.Phase = PhaseAwaitingGoAlone
	g.CurrentPlayer = player
	return nil
}
