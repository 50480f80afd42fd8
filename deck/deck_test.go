package deck

import (
	"encoding/json"
	"errors"
	"testing"

	utils "github.com/minaorangina/clab/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeck(t *testing.T) {
	t.Run("new deck holds every card exactly once", func(t *testing.T) {
		d := New()
		utils.AssertEqual(t, d.Len(), Size)

		seen := map[Card]bool{}
		for _, c := range d {
			require.NoError(t, c.Validate())
			assert.False(t, seen[c], "duplicate card %s", c)
			seen[c] = true
		}
		utils.AssertEqual(t, len(seen), Size)
	})

	t.Run("shuffle keeps the same cards", func(t *testing.T) {
		d := New()
		d.Shuffle()
		assert.ElementsMatch(t, New(), d)
	})
}

func TestDeckDraw(t *testing.T) {
	t.Run("removes the drawn cards", func(t *testing.T) {
		d := New()
		drawn, err := d.Draw(6)
		require.NoError(t, err)

		utils.AssertEqual(t, len(drawn), 6)
		utils.AssertEqual(t, d.Len(), Size-6)
		for _, c := range drawn {
			assert.NotContains(t, d, c, "%s still in deck", c)
		}
	})

	t.Run("repeated draws partition the deck", func(t *testing.T) {
		d := New()
		all := []Card{}
		for _, n := range []int{1, 6, 4, 6, 4, 6, 4} {
			drawn, err := d.Draw(n)
			require.NoError(t, err)
			all = append(all, drawn...)
		}
		all = append(all, d...)
		assert.ElementsMatch(t, New(), all)
	})

	t.Run("can draw the whole deck", func(t *testing.T) {
		d := New()
		drawn, err := d.Draw(Size)
		require.NoError(t, err)
		utils.AssertEqual(t, d.Len(), 0)
		assert.ElementsMatch(t, New(), drawn)
	})

	t.Run("fails when too few cards remain", func(t *testing.T) {
		d := New()
		_, err := d.Draw(30)
		require.NoError(t, err)

		_, err = d.Draw(3)
		utils.AssertErrored(t, err)
		assert.True(t, errors.Is(err, ErrInsufficientCards))
		utils.AssertEqual(t, d.Len(), 2)
	})

	t.Run("rejects negative counts", func(t *testing.T) {
		d := New()
		_, err := d.Draw(-1)
		utils.AssertErrored(t, err)
		utils.AssertEqual(t, d.Len(), Size)
	})
}

func TestCard(t *testing.T) {
	cases := []struct {
		name     string
		card     Card
		expected string
	}{
		{"Lowest value card", Card{Seven, Clubs}, "Seven of Clubs"},
		{"Specific card", Card{Queen, Hearts}, "Queen of Hearts"},
		{"Highest value card", Card{Ace, Spades}, "Ace of Spades"},
		{"Trump marker", NewTrumpCard(Diamonds), "Two of Diamonds"},
	}

	for _, c := range cases {
		utils.AssertEqual(t, c.card.String(), c.expected)
	}

	t.Run("serialises with the wire field names", func(t *testing.T) {
		data, err := json.Marshal(Card{Ten, Hearts})
		require.NoError(t, err)
		assert.JSONEq(t, `{"value":"10","cardSuite":"hearts"}`, string(data))
	})

	t.Run("rejects cards outside the domain", func(t *testing.T) {
		err := Card{Value: "6", Suit: Hearts}.Validate()
		assert.True(t, errors.Is(err, ErrUnknownRank))

		err = Card{Value: Ace, Suit: "stars"}.Validate()
		assert.True(t, errors.Is(err, ErrUnknownSuit))

		assert.Error(t, NewTrumpCard(Hearts).Validate())
	})

	t.Run("parses wire values", func(t *testing.T) {
		rank, err := ParseRank("Jack")
		require.NoError(t, err)
		utils.AssertEqual(t, rank, Jack)

		suit, err := ParseSuit(" HEARTS ")
		require.NoError(t, err)
		utils.AssertEqual(t, suit, Hearts)
	})
}
