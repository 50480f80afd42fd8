package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/minaorangina/clab/deck"
	"github.com/minaorangina/clab/protocol"
)

var (
	errQuit         = errors.New("quit")
	errUnknownInput = errors.New("unknown command, try: create, join <room>, deal, fold, trump <suit>, accept, play <rank> <suit>, quit")
	errNotConnected = errors.New("not connected yet")
	errNoRoom       = errors.New("create or join a room first")
	errNoTrump      = errors.New("no trump card has been dealt")
)

// wireMessage is a server message before its data is decoded
type wireMessage struct {
	Message protocol.Msg    `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// session remembers what the server has told us so typed commands can be
// short
type session struct {
	mu       sync.Mutex
	clientID string
	roomID   string
	trump    *deck.Card
	hand     []deck.Card
}

// observe updates the session from a server message
func (s *session) observe(msg wireMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Message {
	case protocol.SuccessfulConnection:
		var data protocol.ConnectionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return err
		}
		s.clientID = data.ID

	case protocol.NewRoomCreated, protocol.YouConnectedToRoom:
		var data protocol.RoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return err
		}
		s.roomID = data.RoomID
		s.trump = nil
		s.hand = nil

	case protocol.SendingYourCards:
		var data protocol.CardsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return err
		}
		s.trump = &data.TrumpCard
		s.hand = data.CardsInHand

	case protocol.SendingPurchase:
		var data protocol.PurchaseData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return err
		}
		s.trump = &data.NewTrumpCard
		s.hand = data.CardsInHand

	case protocol.SuccessfulTurn:
		var data protocol.TurnData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return err
		}
		s.hand = data.CardsInHand

	case protocol.PlayerDisconnected:
		s.trump = nil
		s.hand = nil
	}

	return nil
}

// parse turns a typed line into the message to send
func (s *session) parse(line string) (protocol.InboundMessage, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return protocol.InboundMessage{}, errUnknownInput
	}
	if fields[0] == "quit" || fields[0] == "exit" {
		return protocol.InboundMessage{}, errQuit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clientID == "" {
		return protocol.InboundMessage{}, errNotConnected
	}
	data := protocol.ClientData{ClientID: s.clientID, RoomID: s.roomID}

	switch {
	case fields[0] == "create" && len(fields) == 1:
		data.RoomID = ""
		return protocol.NewInboundMessage(protocol.CreateRoom, data)

	case fields[0] == "join" && len(fields) == 2:
		data.RoomID = strings.ToUpper(fields[1])
		return protocol.NewInboundMessage(protocol.ConnectToTheRoom, data)
	}

	if s.roomID == "" {
		return protocol.InboundMessage{}, errNoRoom
	}

	switch {
	case fields[0] == "deal" && len(fields) == 1:
		return protocol.NewInboundMessage(protocol.GetCards, data)

	case fields[0] == "fold" && len(fields) == 1:
		return protocol.NewInboundMessage(protocol.Folded, data)

	case fields[0] == "accept" && len(fields) == 1:
		if s.trump == nil {
			return protocol.InboundMessage{}, errNoTrump
		}
		data.NewTrumpSuite = string(s.trump.Suit)
		return protocol.NewInboundMessage(protocol.GetPurchaseAndSetTrump, data)

	case fields[0] == "trump" && len(fields) == 2:
		suit, err := deck.ParseSuit(fields[1])
		if err != nil {
			return protocol.InboundMessage{}, err
		}
		data.NewTrumpSuite = string(suit)
		return protocol.NewInboundMessage(protocol.GetPurchaseAndSetTrump, data)

	case fields[0] == "play" && len(fields) == 3:
		rank, err := deck.ParseRank(fields[1])
		if err != nil {
			return protocol.InboundMessage{}, err
		}
		suit, err := deck.ParseSuit(fields[2])
		if err != nil {
			return protocol.InboundMessage{}, err
		}
		card := deck.Card{Value: rank, Suit: suit}
		data.Card = &card
		return protocol.NewInboundMessage(protocol.TryToMakeATurn, data)
	}

	return protocol.InboundMessage{}, errUnknownInput
}

func (s *session) prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roomID == "" {
		return "> "
	}
	return fmt.Sprintf("[%s] > ", s.roomID)
}
