package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/minaorangina/clab/deck"
	"github.com/minaorangina/clab/protocol"
	"github.com/pterm/pterm"
)

type tone int

const (
	toneInfo tone = iota
	toneSuccess
	toneWarning
	toneError
)

func cardsText(cards []deck.Card) string {
	if len(cards) == 0 {
		return "(none)"
	}
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}

func turnText(active bool) string {
	if active {
		return "It's your turn."
	}
	return "Waiting for your opponent."
}

// describe turns a server message into something a person can read
func describe(msg wireMessage) (tone, string) {
	switch msg.Message {
	case protocol.SuccessfulConnection:
		return toneSuccess, "Connected. Type create, or join <room>."

	case protocol.NewRoomCreated, protocol.YouConnectedToRoom, protocol.ToYourRoomConnected, protocol.PlayerDisconnected:
		var d protocol.RoomData
		if json.Unmarshal(msg.Data, &d) != nil {
			break
		}
		ready := "waiting for players"
		if d.IsAllPlayersReady {
			ready = "ready to deal"
		}
		lead := map[protocol.Msg]string{
			protocol.NewRoomCreated:      "Created room",
			protocol.YouConnectedToRoom:  "Joined room",
			protocol.ToYourRoomConnected: "Someone joined room",
			protocol.PlayerDisconnected:  "Someone left room",
		}[msg.Message]
		t := toneInfo
		if msg.Message == protocol.PlayerDisconnected {
			t = toneWarning
		}
		return t, fmt.Sprintf("%s %s: %d player(s), %s", lead, d.RoomID, d.PlayersInTheRoom, ready)

	case protocol.NoSuchRoom, protocol.AlreadyInTheRoom:
		var d protocol.RoomRefData
		if json.Unmarshal(msg.Data, &d) != nil {
			break
		}
		if msg.Message == protocol.NoSuchRoom {
			return toneError, fmt.Sprintf("There is no room %s", d.RoomID)
		}
		return toneWarning, fmt.Sprintf("You are already in room %s", d.RoomID)

	case protocol.SendingYourCards:
		var d protocol.CardsData
		if json.Unmarshal(msg.Data, &d) != nil {
			break
		}
		return toneInfo, fmt.Sprintf("Your cards: %s\nTrump: %s\n%s", cardsText(d.CardsInHand), d.TrumpCard.Suit, turnText(d.IsActivePlayer))

	case protocol.SuccessfulFold:
		var d protocol.FoldData
		if json.Unmarshal(msg.Data, &d) != nil {
			break
		}
		return toneInfo, fmt.Sprintf("A player folded (%d fold(s)). %s", d.PrevPlayerNumberOfFolds, turnText(d.IsNewActivePlayer))

	case protocol.SendingPurchase:
		var d protocol.PurchaseData
		if json.Unmarshal(msg.Data, &d) != nil {
			break
		}
		who := "Your opponent"
		if d.SelectedTrumpPlayer {
			who = "You"
		}
		return toneSuccess, fmt.Sprintf("%s chose %s as trump.\nYour cards: %s", who, d.NewTrumpCard.Suit, cardsText(d.CardsInHand))

	case protocol.SuccessfulTurn:
		var d protocol.TurnData
		if json.Unmarshal(msg.Data, &d) != nil {
			break
		}
		return toneSuccess, fmt.Sprintf("Table: %s\nYour cards: %s", cardsText(d.CardsOnTheTable), cardsText(d.CardsInHand))

	case protocol.OpponentMadeATurn:
		var d protocol.OpponentTurnData
		if json.Unmarshal(msg.Data, &d) != nil {
			break
		}
		return toneInfo, fmt.Sprintf("Table: %s\n%s", cardsText(d.CardsOnTheTable), turnText(d.IsActivePlayer))

	case protocol.UnsuccessfulTurn:
		var d protocol.RejectionData
		if json.Unmarshal(msg.Data, &d) != nil {
			break
		}
		return toneError, "Refused: " + d.Reason
	}

	return toneWarning, fmt.Sprintf("%s %s", msg.Message, msg.Data)
}

func show(t tone, text string) {
	switch t {
	case toneSuccess:
		pterm.Success.Println(text)
	case toneWarning:
		pterm.Warning.Println(text)
	case toneError:
		pterm.Error.Println(text)
	default:
		pterm.Info.Println(text)
	}
}
