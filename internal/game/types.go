package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/euchred/internal/deck"
)

// Role is a fixed seat at the table. Partnerships are fixed by seat parity:
// north+south against east+west.
type Role string

const (
	North Role = "north"
	East  Role = "east"
	South Role = "south"
	West  Role = "west"
)

// DefaultPlayerOrder is the clockwise seating used for every table.
var DefaultPlayerOrder = []Role{North, East, South, West}

// Partner returns the role across the table
func (r Role) Partner() Role {
	switch r {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return ""
	}
}

// Team is the canonical "<role>+<partner-role>" partnership label.
type Team string

const (
	TeamNorthSouth Team = "north+south"
	TeamEastWest   Team = "east+west"
)

// Team returns the partnership the role belongs to
func (r Role) Team() Team {
	switch r {
	case North, South:
		return TeamNorthSouth
	case East, West:
		return TeamEastWest
	default:
		return ""
	}
}

// Opponent returns the other partnership
func (t Team) Opponent() Team {
	if t == TeamNorthSouth {
		return TeamEastWest
	}
	return TeamNorthSouth
}

// ParseRole converts a seat name to a Role
func ParseRole(name string) (Role, error) {
	switch Role(name) {
	case North, East, South, West:
		return Role(name), nil
	}
	return "", fmt.Errorf("unknown role %q", name)
}

// Phase identifies where a hand is in its lifecycle.
type Phase string

const (
	PhaseLobby                 Phase = "LOBBY"
	PhaseDealing               Phase = "DEALING"
	PhaseOrderUpRound1         Phase = "ORDER_UP_ROUND1"
	PhaseOrderUpRound2         Phase = "ORDER_UP_ROUND2"
	PhaseAwaitingDealerDiscard Phase = "AWAITING_DEALER_DISCARD"
	PhaseAwaitingGoAlone       Phase = "AWAITING_GO_ALONE"
	PhasePlaying               Phase = "PLAYING"
	PhaseScoring               Phase = "SCORING"
	PhaseBetweenHands          Phase = "BETWEEN_HANDS"
	PhaseGameOver              Phase = "GAME_OVER"
)

const (
	// WinningScore is the score a team must reach to win the game
	WinningScore = 10
	// HandSize is the number of cards dealt to each seat
	HandSize = 5
	// KittySize is the number of cards set aside after dealing, before the up-card
	KittySize = 3
	// TricksPerHand is the number of tricks in a complete hand
	TricksPerHand = 5
)

// Player holds the per-seat state for one hand
type Player struct {
	Role      Role
	Hand      []deck.Card
	TricksWon int
}

// PlayedCard is a card on the table along with who played it
type PlayedCard struct {
	Player Role
	Card   deck.Card
}

// Trick is a completed trick
type Trick struct {
	Cards  []PlayedCard
	Winner Role
	Team   Team
}

// MatchStats is session-level bookkeeping that survives game resets
type MatchStats struct {
	GamesPlayed int
	TeamWins    map[Team]int
}

// Game is the aggregate state for one running euchre game. All engine entry
// points are methods on it; every method validates its preconditions before
// the first mutation, so a returned error means the state is unchanged.
//
// Game is not safe for concurrent use. The caller owns exactly one Game per
// table and must serialize calls to it.
type Game struct {
	PlayerOrder   []Role
	Dealer        Role
	CurrentPlayer Role
	Phase         Phase

	Deck        []deck.Card
	Kitty       []deck.Card
	UpCard      *deck.Card
	TrumpSuit   *deck.Suit
	MakerTeam   Team
	TrumpCaller Role

	GoingAlone  bool
	AlonePlayer Role
	SittingOut  Role

	TrickLeader  Role
	CurrentTrick []PlayedCard
	Tricks       []Trick

	Players map[Role]*Player
	Scores  map[Team]int
	Stats   MatchStats

	// Messages is the append-only narration log for the caller to relay.
	Messages []Message

	// InitialDealer records the dealer at the start of the session. Set by
	// the first StartNewHand, never overwritten.
	InitialDealer Role

	GameOver    bool
	WinningTeam Team

	rng *rand.Rand
}

// New creates a game in the lobby with the four seats filled and the given
// RNG driving every shuffle. The first hand's dealer will be the first seat
// in the player order.
func New(rng *rand.Rand) *Game {
	players := make(map[Role]*Player, len(DefaultPlayerOrder))
	for _, r := range DefaultPlayerOrder {
		players[r] = &Player{Role: r}
	}

	order := make([]Role, len(DefaultPlayerOrder))
	copy(order, DefaultPlayerOrder)

	return &Game{
		PlayerOrder: order,
		Dealer:      order[len(order)-1],
		Phase:       PhaseLobby,
		Players:     players,
		Scores:      map[Team]int{TeamNorthSouth: 0, TeamEastWest: 0},
		Stats:       MatchStats{TeamWins: map[Team]int{TeamNorthSouth: 0, TeamEastWest: 0}},
		rng:         rng,
	}
}

// roleAfter returns the next seat clockwise from r.
func (g *Game) roleAfter(r Role) (Role, error) {
	for i, o := range g.PlayerOrder {
		if o == r {
			return g.PlayerOrder[(i+1)%len(g.PlayerOrder)], nil
		}
	}
	return "", fmt.Errorf("%w: role %q is not seated", ErrInvalidState, r)
}

// nextActive returns the next seat clockwise from r that is still in the
// hand, skipping the partner sitting out a lone hand.
func (g *Game) nextActive(r Role) (Role, error) {
	next, err := g.roleAfter(r)
	if err != nil {
		return "", err
	}
	if g.GoingAlone && next == g.SittingOut {
		return g.roleAfter(next)
	}
	return next, nil
}

// activePlayerCount is the number of seats playing the current hand
func (g *Game) activePlayerCount() int {
	if g.GoingAlone {
		return len(g.PlayerOrder) - 1
	}
	return len(g.PlayerOrder)
}
