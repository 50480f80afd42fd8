package deck

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownRank = errors.New("unknown rank")
	ErrUnknownSuit = errors.New("unknown suit")
)

// Rank represents a rank in a deck of cards
type Rank string

const (
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "jack"
	Queen Rank = "queen"
	King  Rank = "king"
	Ace   Rank = "ace"

	// TrumpMarker is the rank given to the synthetic card that carries a
	// finalized trump suit. It never appears in a dealt deck.
	TrumpMarker Rank = "2"
)

// Ranks lists the ranks of the deck in ascending order
var Ranks = []Rank{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var rankNames = map[Rank]string{
	Seven:       "Seven",
	Eight:       "Eight",
	Nine:        "Nine",
	Ten:         "Ten",
	Jack:        "Jack",
	Queen:       "Queen",
	King:        "King",
	Ace:         "Ace",
	TrumpMarker: "Two",
}

// Suit represents a suit in a deck of cards
type Suit string

const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
)

// Suits lists every suit, in dealing order
var Suits = []Suit{Clubs, Diamonds, Spades, Hearts}

var suitNames = map[Suit]string{
	Clubs:    "Clubs",
	Diamonds: "Diamonds",
	Spades:   "Spades",
	Hearts:   "Hearts",
}

// ParseRank converts a wire rank into a Rank of the deck
func ParseRank(s string) (Rank, error) {
	r := Rank(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Ranks {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRank, s)
}

// ParseSuit converts a wire suit into a Suit
func ParseSuit(s string) (Suit, error) {
	suit := Suit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := suitNames[suit]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSuit, s)
	}
	return suit, nil
}

func (s Suit) String() string {
	return suitNames[s]
}

// Card is an immutable playing card.
// It serialises as {"value": "<rank>", "cardSuite": "<suit>"}.
type Card struct {
	Value Rank `json:"value"`
	Suit  Suit `json:"cardSuite"`
}

// NewTrumpCard constructs the synthetic card announcing a finalized trump suit
func NewTrumpCard(suit Suit) Card {
	return Card{Value: TrumpMarker, Suit: suit}
}

// Validate reports whether the card belongs to the 32-card domain
func (c Card) Validate() error {
	if _, err := ParseRank(string(c.Value)); err != nil {
		return err
	}
	if _, err := ParseSuit(string(c.Suit)); err != nil {
		return err
	}
	return nil
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", rankNames[c.Value], suitNames[c.Suit])
}
