package game

import (
	"fmt"

	"github.com/lox/euchred/internal/deck"
)

// Rank values for trick comparison. Bowers outrank everything, remaining
// trump outranks any led-suit card (led-suit cards rank by face value,
// 9..14), and off-suit cards can never win.
const (
	rightBowerRank = 100
	leftBowerRank  = 90
	malformedRank  = -1
)

var trumpScale = map[deck.Rank]int{
	deck.Nine:  30,
	deck.Ten:   40,
	deck.Jack:  50,
	deck.Queen: 60,
	deck.King:  70,
	deck.Ace:   80,
}

// IsRightBower reports whether card is the jack of trump
func IsRightBower(card deck.Card, trump deck.Suit) bool {
	return card.IsJack() && card.Suit == trump
}

// IsLeftBower reports whether card is the jack of the suit sharing trump's
// color
func IsLeftBower(card deck.Card, trump deck.Suit) bool {
	return card.IsJack() && card.Suit == trump.SameColorSuit()
}

// EffectiveSuit returns the suit a card follows as: its own suit, except the
// left bower, which counts as trump.
func EffectiveSuit(card deck.Card, trump deck.Suit) deck.Suit {
	if IsLeftBower(card, trump) {
		return trump
	}
	return card.Suit
}

// CardRank scores a card for trick comparison given the trump and led
// suits. Higher wins; ranks are unique among the cards of any one trick.
// A malformed card scores -1 and can never be a legal play.
func CardRank(card deck.Card, trump, led deck.Suit) int {
	if card.Rank < deck.Nine || card.Rank > deck.Ace ||
		card.Suit < deck.Hearts || card.Suit > deck.Spades {
		return malformedRank
	}
	switch {
	case IsRightBower(card, trump):
		return rightBowerRank
	case IsLeftBower(card, trump):
		return leftBowerRank
	case card.Suit == trump:
		return trumpScale[card.Rank]
	case card.Suit == led:
		return int(card.Rank)
	default:
		return 0
	}
}

// IsValidPlay checks a play without applying it. It enforces turn order,
// card ownership, and the follow-suit rule: if the player holds any card
// whose effective suit matches the led suit, the played card's effective
// suit must match it too.
func (g *Game) IsValidPlay(player Role, card deck.Card) error {
	if g.Phase != PhasePlaying {
		return fmt.Errorf("%w: play in phase %s", ErrInvalidState, g.Phase)
	}
	if g.TrumpSuit == nil {
		return fmt.Errorf("%w: no trump suit", ErrInvalidState)
	}
	if player != g.CurrentPlayer {
		return ErrOutOfTurn
	}
	p := g.Players[player]
	if p == nil {
		return fmt.Errorf("%w: no player entry for %q", ErrInvalidState, player)
	}
	if !deck.Contains(p.Hand, card) {
		return ErrCardNotInHand
	}

	if len(g.CurrentTrick) > 0 {
		trump := *g.TrumpSuit
		led := EffectiveSuit(g.CurrentTrick[0].Card, trump)
		if EffectiveSuit(card, trump) != led && handHasSuit(p.Hand, led, trump) {
			return &MustFollowSuitError{Suit: led}
		}
	}
	return nil
}

// handHasSuit reports whether any card in hand follows as suit, with the
// left bower counted as trump
func handHasSuit(hand []deck.Card, suit, trump deck.Suit) bool {
	for _, c := range hand {
		if EffectiveSuit(c, trump) == suit {
			return true
		}
	}
	return false
}

// HandlePlayCard validates and applies a card play. When the trick is full
// (four plays, or three on a lone hand) it is resolved: the highest-ranked
// card wins, the winner's team records the trick, and the winner leads the
// next one. After the fifth trick the hand moves to scoring.
func (g *Game) HandlePlayCard(player Role, card deck.Card) error {
	if err := g.IsValidPlay(player, card); err != nil {
		return err
	}

	p := g.Players[player]
	p.Hand, _ = deck.Remove(p.Hand, card)
	g.CurrentTrick = append(g.CurrentTrick, PlayedCard{Player: player, Card: card})
	g.Messages = append(g.Messages, PlayMessage{Player: player, Card: card})

	if len(g.CurrentTrick) < g.activePlayerCount() {
		next, err := g.nextActive(player)
		if err != nil {
			return err
		}
		g.CurrentPlayer = next
		return nil
	}

	g.resolveTrick()
	return nil
}

// resolveTrick determines the winner of the completed current trick and
// advances the hand
func (g *Game) resolveTrick() {
	trump := *g.TrumpSuit
	led := EffectiveSuit(g.CurrentTrick[0].Card, trump)

	winner := g.CurrentTrick[0].Player
	best := CardRank(g.CurrentTrick[0].Card, trump, led)
	for _, pc := range g.CurrentTrick[1:] {
		if r := CardRank(pc.Card, trump, led); r > best {
			best = r
			winner = pc.Player
		}
	}

	cards := make([]PlayedCard, len(g.CurrentTrick))
	copy(cards, g.CurrentTrick)
	g.Tricks = append(g.Tricks, Trick{Cards: cards, Winner: winner, Team: winner.Team()})
	g.Players[winner].TricksWon++
	g.CurrentTrick = nil

	g.TrickLeader = winner
	g.CurrentPlayer = winner
	g.Messages = append(g.Messages, TrickMessage{Winner: winner, Team: winner.Team(), Number: len(g.Tricks)})

	if len(g.Tricks) == TricksPerHand {
		g.Phase = PhaseScoring
	}
}
