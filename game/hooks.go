package game

import "github.com/minaorangina/clab/deck"

// TrickHook is told about every completed trick. No winner is decided here;
// scoring belongs in an implementation of this interface.
// It is called with the room unlocked, after the play has been applied.
type TrickHook interface {
	TrickCompleted(roomID string, trick []deck.Card, trump deck.Card)
}

// DisconnectHook is told when a member leaves a room because its connection
// dropped. state is the room's state at the moment of disconnection.
type DisconnectHook interface {
	PlayerDisconnected(roomID, clientID string, state State)
}

// NopHooks ignores every event
type NopHooks struct{}

func (NopHooks) TrickCompleted(string, []deck.Card, deck.Card) {}

func (NopHooks) PlayerDisconnected(string, string, State) {}

// Option configures a Room
type Option func(*Room)

// WithTrickHook installs h as the room's trick hook
func WithTrickHook(h TrickHook) Option {
	return func(r *Room) {
		if h != nil {
			r.trickHook = h
		}
	}
}
