package deck

import rand "math/rand/v2"

// Size is the number of cards in a euchre pack (4 suits × 6 ranks).
const Size = 24

// New builds the 24-card euchre pack and shuffles it with the provided RNG.
// Callers own the RNG so deals stay reproducible under test seeds.
func New(rng *rand.Rand) []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	shuffle(cards, rng)
	return cards
}

// shuffle is an in-place Fisher-Yates shuffle
func shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Contains reports whether card appears in cards.
func Contains(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

// Remove returns cards with the first occurrence of card removed, and
// whether it was present. The input slice is not modified.
func Remove(cards []Card, card Card) ([]Card, bool) {
	for i, c := range cards {
		if c == card {
			out := make([]Card, 0, len(cards)-1)
			out = append(out, cards[:i]...)
			out = append(out, cards[i+1:]...)
			return out, true
		}
	}
	return cards, false
}
