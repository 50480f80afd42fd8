package players

import (
	"sync"

	"github.com/minaorangina/clab/protocol"
)

// TestConn records everything sent to it
type TestConn struct {
	mu       sync.Mutex
	received []protocol.OutboundMessage
	Err      error
}

func NewTestConn() *TestConn {
	return &TestConn{}
}

func (tc *TestConn) Send(msg protocol.OutboundMessage) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.Err != nil {
		return tc.Err
	}
	tc.received = append(tc.received, msg)
	return nil
}

// Received returns a copy of every message sent so far
func (tc *TestConn) Received() []protocol.OutboundMessage {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return append([]protocol.OutboundMessage{}, tc.received...)
}

// Last returns the most recent message, if any
func (tc *TestConn) Last() (protocol.OutboundMessage, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if len(tc.received) == 0 {
		return protocol.OutboundMessage{}, false
	}
	return tc.received[len(tc.received)-1], true
}

// Reset forgets everything received so far
func (tc *TestConn) Reset() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.received = nil
}
