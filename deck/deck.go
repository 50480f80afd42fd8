package deck

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInsufficientCards is returned when more cards are requested than remain
var ErrInsufficientCards = errors.New("not enough cards left in the deck")

// Size is the number of cards in a full deck
const Size = 32

// Deck represents a deck of cards
type Deck []Card

// New creates a full deck of cards, one of every rank in every suit
func New() Deck {
	cards := make(Deck, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Value: rank, Suit: suit})
		}
	}
	return cards
}

// Len returns the number of cards still in the deck
func (d Deck) Len() int {
	return len(d)
}

// Shuffle shuffles the deck of cards
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Draw shuffles the deck and cuts n cards off the end.
// The deck is left untouched if it holds fewer than n cards.
func (d *Deck) Draw(n int) ([]Card, error) {
	remaining := len(*d)
	if n < 0 {
		return nil, fmt.Errorf("cannot draw %d cards", n)
	}
	if n > remaining {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrInsufficientCards, n, remaining)
	}

	d.Shuffle()
	cards := *d
	startingIndex := remaining - n
	drawn := make([]Card, n)
	copy(drawn, cards[startingIndex:])
	*d = cards[:startingIndex]

	return drawn, nil
}
