package protocol

// Cmd is a command sent by a client
type Cmd string

const (
	CreateRoom             Cmd = "CREATE_ROOM"
	ConnectToTheRoom       Cmd = "CONNECT_TO_THE_ROOM"
	GetCards               Cmd = "GET_CARDS"
	ConnectedToServer      Cmd = "CONNECTED_TO_SERVER"
	TryToMakeATurn         Cmd = "TRY_TO_MAKE_A_TURN"
	Folded                 Cmd = "FOLDED"
	GetPurchaseAndSetTrump Cmd = "GET_PURCHASE_AND_SET_TRUMP"
)

var knownCmds = map[Cmd]bool{
	CreateRoom:             true,
	ConnectToTheRoom:       true,
	GetCards:               true,
	ConnectedToServer:      true,
	TryToMakeATurn:         true,
	Folded:                 true,
	GetPurchaseAndSetTrump: true,
}

func (c Cmd) String() string {
	return string(c)
}

// Msg is a message sent by the server.
// Some names carry spelling mistakes; clients match on them, so they stay.
type Msg string

const (
	SuccessfulConnection Msg = "SUCCESSFUL_CONNECTION"
	NewRoomCreated       Msg = "NEW_ROOM_CREATED"
	NoSuchRoom           Msg = "NO_SUCH_ROOM"
	AlreadyInTheRoom     Msg = "ALREADY_IN_THE_ROOM"
	YouConnectedToRoom   Msg = "YOU_CONECTED_TO_THE_ROOM"
	ToYourRoomConnected  Msg = "TO_TOUR_ROOM_CONNECTED"
	SendingYourCards     Msg = "SENDING_YOUR_CARDS"
	SuccessfulTurn       Msg = "SUCCESFUL_TURN"
	UnsuccessfulTurn     Msg = "UN_SUCCESFUL_TURN"
	OpponentMadeATurn    Msg = "OPPONENT_MADE_A_TURN"
	SuccessfulFold       Msg = "SUCCESFUL_FOLD"
	SendingPurchase      Msg = "SENDING_PURCHASE"
	PlayerDisconnected   Msg = "PLAYER_DISCONNECTED"
)

func (m Msg) String() string {
	return string(m)
}
