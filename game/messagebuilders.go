package game

import "github.com/minaorangina/clab/protocol"

func (r *Room) buildRoomMessage(msg protocol.Msg) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		Message: msg,
		Data: protocol.RoomData{
			RoomID:            r.id,
			PlayersInTheRoom:  len(r.members),
			IsAllPlayersReady: r.isAllPlayersReady(),
		},
	}
}

func (r *Room) buildCardsMessage(playerID string) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		Message: protocol.SendingYourCards,
		Data: protocol.CardsData{
			CardsInHand:    copyCards(r.players[playerID].CardsInHand),
			TrumpCard:      *r.trumpCard,
			IsActivePlayer: playerID == r.activePlayerID,
		},
	}
}

func (r *Room) buildFoldMessage(folder *Player, recipientID string) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		Message: protocol.SuccessfulFold,
		Data: protocol.FoldData{
			PrevPlayerNumberOfFolds: folder.Folds,
			IsNewActivePlayer:       recipientID == r.activePlayerID,
		},
	}
}

func (r *Room) buildPurchaseMessage(playerID string) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		Message: protocol.SendingPurchase,
		Data: protocol.PurchaseData{
			NewTrumpCard:        *r.trumpCard,
			SelectedTrumpPlayer: playerID == r.selectedTrumpPlayer,
			CardsInHand:         copyCards(r.players[playerID].CardsInHand),
		},
	}
}

func (r *Room) buildTurnMessage(playerID string) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		Message: protocol.SuccessfulTurn,
		Data: protocol.TurnData{
			CardsInHand:     copyCards(r.players[playerID].CardsInHand),
			CardsOnTheTable: copyCards(r.cardsOnTable),
		},
	}
}

func (r *Room) buildOpponentTurnMessage(playerID string) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		Message: protocol.OpponentMadeATurn,
		Data: protocol.OpponentTurnData{
			CardsOnTheTable: copyCards(r.cardsOnTable),
			IsActivePlayer:  playerID == r.activePlayerID,
		},
	}
}

// BuildRejection tells a client why its request was refused
func BuildRejection(err error) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		Message: protocol.UnsuccessfulTurn,
		Data:    protocol.RejectionData{Reason: err.Error()},
	}
}

// BuildRoomRef answers a request about a particular room
func BuildRoomRef(msg protocol.Msg, roomID string) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		Message: msg,
		Data:    protocol.RoomRefData{RoomID: roomID},
	}
}
