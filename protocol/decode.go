package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minaorangina/clab/deck"
)

var (
	ErrMalformedMessage = errors.New("malformed message")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingClientID  = errors.New("missing clientId")
	ErrMissingField     = errors.New("missing field")
	ErrInvalidCard      = errors.New("invalid card")
	ErrInvalidSuit      = errors.New("invalid suit")
)

// Request is a decoded, validated client command
type Request interface {
	Cmd() Cmd
	// Sender is the clientId the request claims to come from
	Sender() string
}

type CreateRoomRequest struct {
	ClientID string
}

type ConnectToRoomRequest struct {
	ClientID string
	RoomID   string
}

type GetCardsRequest struct {
	ClientID string
	RoomID   string
}

// ConnectedToServerRequest is an acknowledgement; its clientId is optional
type ConnectedToServerRequest struct {
	ClientID string
}

type MakeTurnRequest struct {
	ClientID string
	RoomID   string
	Card     deck.Card
}

type FoldRequest struct {
	ClientID string
	RoomID   string
}

type SetTrumpRequest struct {
	ClientID string
	RoomID   string
	Suit     deck.Suit
}

func (r CreateRoomRequest) Cmd() Cmd        { return CreateRoom }
func (r ConnectToRoomRequest) Cmd() Cmd     { return ConnectToTheRoom }
func (r GetCardsRequest) Cmd() Cmd          { return GetCards }
func (r ConnectedToServerRequest) Cmd() Cmd { return ConnectedToServer }
func (r MakeTurnRequest) Cmd() Cmd          { return TryToMakeATurn }
func (r FoldRequest) Cmd() Cmd              { return Folded }
func (r SetTrumpRequest) Cmd() Cmd          { return GetPurchaseAndSetTrump }

func (r CreateRoomRequest) Sender() string        { return r.ClientID }
func (r ConnectToRoomRequest) Sender() string     { return r.ClientID }
func (r GetCardsRequest) Sender() string          { return r.ClientID }
func (r ConnectedToServerRequest) Sender() string { return r.ClientID }
func (r MakeTurnRequest) Sender() string          { return r.ClientID }
func (r FoldRequest) Sender() string              { return r.ClientID }
func (r SetTrumpRequest) Sender() string          { return r.ClientID }

// Decode parses a raw envelope into a typed Request, rejecting shapes that
// lack the fields their command needs.
func Decode(raw []byte) (Request, error) {
	var msg InboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	if !knownCmds[msg.Command] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, msg.Command)
	}

	var data ClientData
	if len(msg.Data) > 0 && string(msg.Data) != "null" {
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: data: %v", ErrMalformedMessage, err)
		}
	}

	if msg.Command == ConnectedToServer {
		return ConnectedToServerRequest{ClientID: data.ClientID}, nil
	}

	if data.ClientID == "" {
		return nil, ErrMissingClientID
	}

	if msg.Command == CreateRoom {
		return CreateRoomRequest{ClientID: data.ClientID}, nil
	}

	if data.RoomID == "" {
		return nil, fmt.Errorf("%w: roomId", ErrMissingField)
	}

	switch msg.Command {
	case ConnectToTheRoom:
		return ConnectToRoomRequest{ClientID: data.ClientID, RoomID: data.RoomID}, nil

	case GetCards:
		return GetCardsRequest{ClientID: data.ClientID, RoomID: data.RoomID}, nil

	case Folded:
		return FoldRequest{ClientID: data.ClientID, RoomID: data.RoomID}, nil

	case TryToMakeATurn:
		if data.Card == nil {
			return nil, fmt.Errorf("%w: card", ErrMissingField)
		}
		card, err := normaliseCard(*data.Card)
		if err != nil {
			return nil, err
		}
		return MakeTurnRequest{ClientID: data.ClientID, RoomID: data.RoomID, Card: card}, nil

	case GetPurchaseAndSetTrump:
		if data.NewTrumpSuite == "" {
			return nil, fmt.Errorf("%w: newTrumpSuite", ErrMissingField)
		}
		suit, err := deck.ParseSuit(data.NewTrumpSuite)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSuit, err)
		}
		return SetTrumpRequest{ClientID: data.ClientID, RoomID: data.RoomID, Suit: suit}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, msg.Command)
}

func normaliseCard(c deck.Card) (deck.Card, error) {
	rank, err := deck.ParseRank(string(c.Value))
	if err != nil {
		return deck.Card{}, fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	suit, err := deck.ParseSuit(string(c.Suit))
	if err != nil {
		return deck.Card{}, fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	return deck.Card{Value: rank, Suit: suit}, nil
}
