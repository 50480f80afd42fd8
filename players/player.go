package players

import (
	"errors"

	"github.com/minaorangina/clab/protocol"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrConnClosed    = errors.New("connection closed")
	ErrSendQueueFull = errors.New("send queue full")
)

// NewID constructs a client ID
func NewID() string {
	return uuid.NewV4().String()
}

// Conn represents a connection to a player in the real world
type Conn interface {
	Send(msg protocol.OutboundMessage) error
}
