package protocol

import (
	"encoding/json"

	"github.com/minaorangina/clab/deck"
)

// InboundMessage is a message from a client to the server
type InboundMessage struct {
	Command Cmd             `json:"command"`
	Data    json.RawMessage `json:"data"`
}

// ClientData holds every field a client may put in an InboundMessage.
// Which fields are required depends on the command.
type ClientData struct {
	ClientID      string     `json:"clientId,omitempty"`
	RoomID        string     `json:"roomId,omitempty"`
	Card          *deck.Card `json:"card,omitempty"`
	NewTrumpSuite string     `json:"newTrumpSuite,omitempty"`
}

// NewInboundMessage builds the envelope a client sends
func NewInboundMessage(cmd Cmd, data ClientData) (InboundMessage, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return InboundMessage{}, err
	}
	return InboundMessage{Command: cmd, Data: raw}, nil
}

// OutboundMessage is a message from the server to a client
type OutboundMessage struct {
	Message Msg         `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ConnectionData carries the id issued to a new connection
type ConnectionData struct {
	ID string `json:"id"`
}

// RoomData describes room membership
type RoomData struct {
	RoomID            string `json:"roomId"`
	PlayersInTheRoom  int    `json:"playersInTheRoom"`
	IsAllPlayersReady bool   `json:"isAllPlayersReady"`
}

// RoomRefData names a room a request referred to
type RoomRefData struct {
	RoomID string `json:"roomId"`
}

// CardsData is a freshly dealt hand
type CardsData struct {
	CardsInHand []deck.Card `json:"cardsInHand"`
	TrumpCard   deck.Card   `json:"trumpCard"`
	// the wire name is misspelt and clients depend on it
	IsActivePlayer bool `json:"isAcivePlayer"`
}

// TurnData is sent to the player who just played a card
type TurnData struct {
	CardsInHand     []deck.Card `json:"cardsInHand"`
	CardsOnTheTable []deck.Card `json:"cardsOnTheTable"`
}

// OpponentTurnData is sent to everyone else in the room after a card is played
type OpponentTurnData struct {
	CardsOnTheTable []deck.Card `json:"cardsOnTheTable"`
	IsActivePlayer  bool        `json:"isActivePlayer"`
}

// FoldData announces a fold
type FoldData struct {
	PrevPlayerNumberOfFolds int  `json:"prevPlayerNumberOfFolds"`
	IsNewActivePlayer       bool `json:"isNewActivePlayer"`
}

// PurchaseData announces the final trump and delivers the merged hand
type PurchaseData struct {
	NewTrumpCard        deck.Card   `json:"newTrumpCard"`
	SelectedTrumpPlayer bool        `json:"selectedTrumpPlayer"`
	CardsInHand         []deck.Card `json:"cardsInHand"`
}

// RejectionData explains why a request was refused
type RejectionData struct {
	Reason string `json:"reason"`
}
