package game

import (
	"errors"
	"fmt"

	"github.com/lox/euchred/internal/deck"
)

// The engine's error taxonomy is a closed set so callers can match with
// errors.Is / errors.As instead of inspecting message text. Every error is a
// validation failure raised before any mutation; none indicate engine faults.
var (
	// ErrInvalidState covers structural misuse: empty seating, missing
	// player entries, a dealer who isn't seated, or an action arriving in
	// the wrong phase.
	ErrInvalidState = errors.New("invalid game state")

	// ErrInsufficientCards is returned when the deck is too small to deal
	ErrInsufficientCards = errors.New("insufficient cards to deal")

	// ErrOutOfTurn is returned when a player acts out of turn
	ErrOutOfTurn = errors.New("not your turn")

	// ErrCardNotInHand is returned when a player names a card they don't hold
	ErrCardNotInHand = errors.New("card not in hand")

	// ErrIllegalTrumpCall is returned when a round-2 call names the
	// turned-down suit
	ErrIllegalTrumpCall = errors.New("cannot call the turned-down suit")

	// ErrInvalidGoAloneAttempt is returned when a go-alone decision comes
	// from the wrong player or in the wrong phase
	ErrInvalidGoAloneAttempt = errors.New("invalid go-alone attempt")
)

// MustFollowSuitError rejects a play that doesn't follow the led suit while
// the player still holds a card of it. The led suit is computed with the
// left bower counted as trump.
type MustFollowSuitError struct {
	Suit deck.Suit
}

func (e *MustFollowSuitError) Error() string {
	return fmt.Sprintf("must follow suit: %s", e.Suit)
}
