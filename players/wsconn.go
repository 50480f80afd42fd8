package players

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/clab/protocol"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	defaultWriteWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	defaultPongWait = 60 * time.Second

	// Maximum message size allowed from peer.
	defaultMaxMessageSize = 4096

	defaultQueueSize = 64
)

type WSConnOpts struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
	QueueSize      int
	Logger         *zap.Logger
}

func (o *WSConnOpts) withDefaults() {
	if o.WriteWait <= 0 {
		o.WriteWait = defaultWriteWait
	}
	if o.PongWait <= 0 {
		o.PongWait = defaultPongWait
	}
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = defaultMaxMessageSize
	}
	if o.QueueSize <= 0 {
		o.QueueSize = defaultQueueSize
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// WSConn is a Conn over a websocket. Writes are funnelled through a single
// goroutine (WritePump) so Send never blocks the caller.
type WSConn struct {
	ws   *websocket.Conn
	opts WSConnOpts
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func NewWSConn(ws *websocket.Conn, opts WSConnOpts) *WSConn {
	opts.withDefaults()
	return &WSConn{
		ws:   ws,
		opts: opts,
		send: make(chan []byte, opts.QueueSize),
		done: make(chan struct{}),
	}
}

// Send queues msg for delivery. A peer that stops reading fills its queue
// and gets ErrSendQueueFull rather than stalling everyone else.
func (c *WSConn) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		return ErrSendQueueFull
	}
}

// Close stops the write pump, which closes the socket
func (c *WSConn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *WSConn) pingPeriod() time.Duration {
	// Must be less than pongWait.
	return (c.opts.PongWait * 9) / 10
}

// WritePump delivers queued messages and keeps the connection alive with
// pings. It returns when the connection is closed or a write fails.
func (c *WSConn) WritePump() {
	ticker := time.NewTicker(c.pingPeriod())

	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.opts.Logger.Debug("write failed", zap.Error(err))
				c.Close()
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.opts.Logger.Debug("ping failed", zap.Error(err))
				c.Close()
				return
			}

		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteWait))
			c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// ReadPump hands every inbound text frame to onMessage, one at a time, until
// the peer goes away. The caller decides what to do once it returns.
func (c *WSConn) ReadPump(onMessage func([]byte)) {
	defer c.Close()

	c.ws.SetReadLimit(c.opts.MaxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.opts.PongWait))
	})

	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.opts.Logger.Info("connection dropped", zap.Error(err))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		onMessage(data)
	}
}
