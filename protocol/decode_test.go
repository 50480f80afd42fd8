package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/minaorangina/clab/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Request
	}{
		{
			"create room",
			`{"command":"CREATE_ROOM","data":{"clientId":"c1"}}`,
			CreateRoomRequest{ClientID: "c1"},
		},
		{
			"connect to room",
			`{"command":"CONNECT_TO_THE_ROOM","data":{"clientId":"c1","roomId":"ABCDEF"}}`,
			ConnectToRoomRequest{ClientID: "c1", RoomID: "ABCDEF"},
		},
		{
			"get cards",
			`{"command":"GET_CARDS","data":{"clientId":"c1","roomId":"ABCDEF"}}`,
			GetCardsRequest{ClientID: "c1", RoomID: "ABCDEF"},
		},
		{
			"fold ignores the client's own fold count",
			`{"command":"FOLDED","data":{"clientId":"c1","roomId":"ABCDEF","numberOfFolds":"1"}}`,
			FoldRequest{ClientID: "c1", RoomID: "ABCDEF"},
		},
		{
			"make a turn",
			`{"command":"TRY_TO_MAKE_A_TURN","data":{"clientId":"c1","roomId":"ABCDEF","card":{"value":"Queen","cardSuite":"hearts"}}}`,
			MakeTurnRequest{ClientID: "c1", RoomID: "ABCDEF", Card: deck.Card{Value: deck.Queen, Suit: deck.Hearts}},
		},
		{
			"set trump",
			`{"command":"GET_PURCHASE_AND_SET_TRUMP","data":{"clientId":"c1","roomId":"ABCDEF","newTrumpSuite":"spades"}}`,
			SetTrumpRequest{ClientID: "c1", RoomID: "ABCDEF", Suit: deck.Spades},
		},
		{
			"connected to server needs no client id",
			`{"command":"CONNECTED_TO_SERVER","data":{}}`,
			ConnectedToServerRequest{},
		},
		{
			"connected to server without data",
			`{"command":"CONNECTED_TO_SERVER"}`,
			ConnectedToServerRequest{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Decode([]byte(c.raw))
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.want.Cmd(), got.Cmd())
		})
	}
}

func TestDecodeRejectsMalformedShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"not json", `{"command":`, ErrMalformedMessage},
		{"data is not an object", `{"command":"CREATE_ROOM","data":"c1"}`, ErrMalformedMessage},
		{"unknown command", `{"command":"SHUFFLE","data":{"clientId":"c1"}}`, ErrUnknownCommand},
		{"missing client id", `{"command":"CREATE_ROOM","data":{}}`, ErrMissingClientID},
		{"missing room id", `{"command":"GET_CARDS","data":{"clientId":"c1"}}`, ErrMissingField},
		{"missing card", `{"command":"TRY_TO_MAKE_A_TURN","data":{"clientId":"c1","roomId":"R"}}`, ErrMissingField},
		{"card outside the deck", `{"command":"TRY_TO_MAKE_A_TURN","data":{"clientId":"c1","roomId":"R","card":{"value":"2","cardSuite":"hearts"}}}`, ErrInvalidCard},
		{"unknown suit on card", `{"command":"TRY_TO_MAKE_A_TURN","data":{"clientId":"c1","roomId":"R","card":{"value":"7","cardSuite":"stars"}}}`, ErrInvalidCard},
		{"missing trump suit", `{"command":"GET_PURCHASE_AND_SET_TRUMP","data":{"clientId":"c1","roomId":"R"}}`, ErrMissingField},
		{"unknown trump suit", `{"command":"GET_PURCHASE_AND_SET_TRUMP","data":{"clientId":"c1","roomId":"R","newTrumpSuite":"stars"}}`, ErrInvalidSuit},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode([]byte(c.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.want), "got %v, want %v", err, c.want)
		})
	}
}

func TestNewInboundMessageRoundTrips(t *testing.T) {
	card := deck.Card{Value: deck.Ten, Suit: deck.Clubs}
	msg, err := NewInboundMessage(TryToMakeATurn, ClientData{ClientID: "c1", RoomID: "R", Card: &card})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, MakeTurnRequest{ClientID: "c1", RoomID: "R", Card: card}, got)
}

func TestOutboundMessageWireFormat(t *testing.T) {
	msg := OutboundMessage{
		Message: SendingYourCards,
		Data: CardsData{
			CardsInHand:    []deck.Card{{Value: deck.Ace, Suit: deck.Hearts}},
			TrumpCard:      deck.Card{Value: deck.Seven, Suit: deck.Clubs},
			IsActivePlayer: true,
		},
	}

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"message": "SENDING_YOUR_CARDS",
		"data": {
			"cardsInHand": [{"value": "ace", "cardSuite": "hearts"}],
			"trumpCard": {"value": "7", "cardSuite": "clubs"},
			"isAcivePlayer": true
		}
	}`, string(raw))
}
