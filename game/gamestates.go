package game

// State represents the lifecycle stage of a room
// open -> one member, waiting for opponents
// ready -> enough members to deal
// dealing -> cards are being dealt
// firstBidRound -> active player folds or accepts the provisional trump
// secondBidRound -> a trump suit is chosen freely
// trickPlay -> cards are played onto the table
type State int

const (
	Open State = iota
	Ready
	Dealing
	FirstBidRound
	SecondBidRound
	TrickPlay
)

var stateNames = []string{
	"open",
	"ready",
	"dealing",
	"firstBidRound",
	"secondBidRound",
	"trickPlay",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText lets snapshots carry the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// InGame reports whether cards have been dealt
func (s State) InGame() bool {
	return s >= Dealing
}

// Bidding reports whether the trump is still being decided
func (s State) Bidding() bool {
	return s == FirstBidRound || s == SecondBidRound
}

const (
	minPlayers    = 2
	handSize      = 6
	purchaseSize  = 4
	trumpCardSize = 1
)

// cardsNeeded is the number of cards a deal consumes for n players
func cardsNeeded(n int) int {
	return trumpCardSize + n*(handSize+purchaseSize)
}
