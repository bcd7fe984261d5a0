package bot

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/euchred/internal/deck"
	"github.com/lox/euchred/internal/game"
	"github.com/lox/euchred/internal/randutil"
	"github.com/lox/euchred/internal/server"
)

func newTestBot(seat game.Role) *Bot {
	b := New(Config{Name: "tester"}, log.New(io.Discard), randutil.New(1))
	b.seat = seat
	return b
}

func suitName(s deck.Suit) *string {
	name := s.String()
	return &name
}

func TestDecideIgnoresOtherPlayersTurns(t *testing.T) {
	b := newTestBot(game.North)
	state := server.StateData{
		Phase:         string(game.PhaseOrderUpRound1),
		CurrentPlayer: "east",
	}
	assert.Nil(t, b.Decide(state))
}

func TestDecideOrderUpOnOwnTurn(t *testing.T) {
	b := newTestBot(game.North)
	state := server.StateData{
		Phase:         string(game.PhaseOrderUpRound1),
		CurrentPlayer: "north",
	}
	msg := b.Decide(state)
	require.NotNil(t, msg)
	assert.Equal(t, server.TypeOrderUp, msg.Type)
}

func TestDecideNeverCallsTurnedDownSuit(t *testing.T) {
	b := newTestBot(game.North)
	up := deck.NewCard(deck.Hearts, deck.Jack)
	state := server.StateData{
		Phase:         string(game.PhaseOrderUpRound2),
		CurrentPlayer: "north",
		UpCard:        &up,
	}

	// across many rolls, any called suit must differ from the up-card's
	for i := 0; i < 50; i++ {
		msg := b.Decide(state)
		require.NotNil(t, msg)
		require.Equal(t, server.TypeCallTrump, msg.Type)

		var data server.CallTrumpData
		require.NoError(t, json.Unmarshal(msg.Data, &data))
		if data.Suit != nil {
			assert.NotEqual(t, "hearts", *data.Suit)
		}
	}
}

func TestDecideOnlyDealerStartsHands(t *testing.T) {
	seats := []server.SeatView{
		{Role: "north", Connected: true},
		{Role: "east", Connected: true},
		{Role: "south", Connected: true},
		{Role: "west", Connected: true},
	}

	dealerBot := newTestBot(game.South)
	state := server.StateData{
		Phase:  string(game.PhaseBetweenHands),
		Dealer: "south",
		Seats:  seats,
	}
	msg := dealerBot.Decide(state)
	require.NotNil(t, msg)
	assert.Equal(t, server.TypeStartHand, msg.Type)

	otherBot := newTestBot(game.North)
	assert.Nil(t, otherBot.Decide(state))
}

func TestDecideWaitsForFullTable(t *testing.T) {
	b := newTestBot(game.South)
	state := server.StateData{
		Phase:  string(game.PhaseLobby),
		Dealer: "south",
		Seats: []server.SeatView{
			{Role: "north", Connected: true},
			{Role: "east", Connected: false},
		},
	}
	assert.Nil(t, b.Decide(state))
}

func TestLegalPlaysFollowsSuit(t *testing.T) {
	state := server.StateData{
		TrumpSuit: suitName(deck.Spades),
		CurrentTrick: []server.PlayedCardView{
			{Player: "north", Card: deck.NewCard(deck.Hearts, deck.Ace)},
		},
		YourHand: []deck.Card{
			deck.NewCard(deck.Hearts, deck.King),
			deck.NewCard(deck.Clubs, deck.King),
		},
	}
	assert.Equal(t, []deck.Card{deck.NewCard(deck.Hearts, deck.King)}, LegalPlays(state))
}

func TestLegalPlaysTreatsLeftBowerAsTrump(t *testing.T) {
	// trump hearts, hearts led: J♦ follows as trump
	state := server.StateData{
		TrumpSuit: suitName(deck.Hearts),
		CurrentTrick: []server.PlayedCardView{
			{Player: "north", Card: deck.NewCard(deck.Hearts, deck.Nine)},
		},
		YourHand: []deck.Card{
			deck.NewCard(deck.Diamonds, deck.Jack),
			deck.NewCard(deck.Clubs, deck.King),
		},
	}
	assert.Equal(t, []deck.Card{deck.NewCard(deck.Diamonds, deck.Jack)}, LegalPlays(state))
}

func TestLegalPlaysWhenVoid(t *testing.T) {
	hand := []deck.Card{
		deck.NewCard(deck.Clubs, deck.King),
		deck.NewCard(deck.Diamonds, deck.Nine),
	}
	state := server.StateData{
		TrumpSuit: suitName(deck.Spades),
		CurrentTrick: []server.PlayedCardView{
			{Player: "north", Card: deck.NewCard(deck.Hearts, deck.Ace)},
		},
		YourHand: hand,
	}
	assert.Equal(t, hand, LegalPlays(state))
}

func TestLegalPlaysOnLead(t *testing.T) {
	hand := []deck.Card{deck.NewCard(deck.Clubs, deck.King)}
	state := server.StateData{
		TrumpSuit: suitName(deck.Spades),
		YourHand:  hand,
	}
	assert.Equal(t, hand, LegalPlays(state))
}
