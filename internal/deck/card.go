package deck

import (
	"encoding/json"
	"fmt"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists all four suits in a fixed order, used for deck construction
// and for iterating callable trump suits.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return "?"
	}
}

// Symbol returns the single-rune suit glyph (e.g. "♥")
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// SameColor returns true if both suits share a color. The jack of the suit
// sharing trump's color is the left bower, so this drives bower detection.
func (s Suit) SameColor(other Suit) bool {
	return s.IsRed() == other.IsRed()
}

// SameColorSuit returns the other suit of the same color
// (hearts↔diamonds, clubs↔spades).
func (s Suit) SameColorSuit() Suit {
	switch s {
	case Hearts:
		return Diamonds
	case Diamonds:
		return Hearts
	case Clubs:
		return Spades
	default:
		return Clubs
	}
}

// ParseSuit converts a suit name to a Suit
func ParseSuit(name string) (Suit, error) {
	for _, s := range Suits {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// MarshalJSON encodes the suit as its lowercase name
func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a suit from its lowercase name
func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSuit(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Rank represents a card rank. Euchre uses the 24-card pack, nine through ace.
type Rank int

const (
	Nine Rank = iota + 9
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists the six euchre ranks low to high.
var Ranks = []Rank{Nine, Ten, Jack, Queen, King, Ace}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Nine:
		return "9"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// ParseRank converts a rank name to a Rank
func ParseRank(name string) (Rank, error) {
	for _, r := range Ranks {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", name)
}

// MarshalJSON encodes the rank as its display name
func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a rank from its display name
func (r *Rank) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseRank(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Card represents a playing card. Cards are immutable values; equality is
// structural (suit and rank).
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g. "J♥")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit.Symbol())
}

// IsJack returns true if the card is a jack
func (c Card) IsJack() bool {
	return c.Rank == Jack
}
