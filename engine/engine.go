package engine

import (
	"errors"
	"sync"

	"github.com/minaorangina/clab/game"
	"github.com/minaorangina/clab/players"
	"github.com/minaorangina/clab/protocol"
	"github.com/minaorangina/clab/store"
	"go.uber.org/zap"
)

type Opts struct {
	Clients        *players.Registry
	Rooms          store.RoomStore
	Logger         *zap.Logger
	DisconnectHook game.DisconnectHook
}

// Engine routes client commands to rooms and delivers what the rooms have
// to say back. It owns no game state itself.
// A room's notifications are sent before its next command is applied, so
// every member sees the room's updates in the order they happened.
type Engine struct {
	clients        *players.Registry
	rooms          store.RoomStore
	log            *zap.Logger
	disconnectHook game.DisconnectHook

	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func New(opts Opts) *Engine {
	e := &Engine{
		clients:        opts.Clients,
		rooms:          opts.Rooms,
		log:            opts.Logger,
		disconnectHook: opts.DisconnectHook,
		roomLocks:      map[string]*sync.Mutex{},
	}
	if e.clients == nil {
		e.clients = players.NewRegistry()
	}
	if e.rooms == nil {
		e.rooms = store.NewInMemoryRoomStore()
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.disconnectHook == nil {
		e.disconnectHook = game.NopHooks{}
	}
	return e
}

func (e *Engine) Rooms() store.RoomStore {
	return e.rooms
}

// Connect registers a new connection and tells it its id
func (e *Engine) Connect(conn players.Conn) string {
	id := e.clients.Register(conn)
	e.log.Info("client connected", zap.String("clientId", id))

	e.send(id, conn, protocol.OutboundMessage{
		Message: protocol.SuccessfulConnection,
		Data:    protocol.ConnectionData{ID: id},
	})
	return id
}

// Receive handles one raw message from the connection registered as
// originID. Anything that can't be attributed to originID is dropped.
func (e *Engine) Receive(originID string, raw []byte) {
	req, err := protocol.Decode(raw)
	if err != nil {
		e.log.Warn("dropping undecodable message", zap.String("origin", originID), zap.Error(err))
		return
	}

	log := e.log.With(zap.Stringer("command", req.Cmd()), zap.String("clientId", req.Sender()))

	if req.Cmd() == protocol.ConnectedToServer {
		log.Info("client acknowledged connection")
		return
	}

	conn, err := e.clients.Resolve(req.Sender())
	if err != nil {
		log.Warn("dropping message from unknown client", zap.Error(err))
		return
	}
	if req.Sender() != originID {
		log.Warn("dropping message sent on another client's connection", zap.String("origin", originID))
		return
	}

	unlock := e.lockRoom(requestedRoom(req))
	msgs, prev, err := e.dispatch(req)
	if err == nil {
		e.deliver(msgs)
	}
	unlock()

	if err != nil {
		e.reject(log, conn, req, err)
		return
	}
	if prev != "" {
		e.leave(req.Sender(), prev)
	}
}

// Disconnect forgets a connection and takes it out of its room
func (e *Engine) Disconnect(clientID string) {
	roomID := e.clients.Unregister(clientID)
	e.log.Info("client disconnected", zap.String("clientId", clientID), zap.String("roomId", roomID))
	if roomID == "" {
		return
	}

	state, ok := e.leave(clientID, roomID)
	if ok {
		e.disconnectHook.PlayerDisconnected(roomID, clientID, state)
	}
}

// dispatch applies req to its room. prev is a room the sender has moved out
// of and still has to leave.
func (e *Engine) dispatch(req protocol.Request) (msgs []game.Notification, prev string, err error) {
	switch r := req.(type) {
	case protocol.CreateRoomRequest:
		room := e.rooms.Create()
		if msgs, err = room.Create(r.ClientID); err != nil {
			return nil, "", err
		}
		prev, err = e.seat(r.ClientID, room.ID())
		return msgs, prev, err

	case protocol.ConnectToRoomRequest:
		room, err := e.rooms.Get(r.RoomID)
		if err != nil {
			return nil, "", err
		}
		if msgs, err = room.Join(r.ClientID); err != nil {
			return nil, "", err
		}
		prev, err = e.seat(r.ClientID, room.ID())
		return msgs, prev, err

	case protocol.GetCardsRequest:
		room, err := e.rooms.Get(r.RoomID)
		if err != nil {
			return nil, "", err
		}
		msgs, err = room.Deal(r.ClientID)
		return msgs, "", err

	case protocol.FoldRequest:
		room, err := e.rooms.Get(r.RoomID)
		if err != nil {
			return nil, "", err
		}
		msgs, err = room.Fold(r.ClientID)
		return msgs, "", err

	case protocol.SetTrumpRequest:
		room, err := e.rooms.Get(r.RoomID)
		if err != nil {
			return nil, "", err
		}
		msgs, err = room.SetTrump(r.ClientID, r.Suit)
		return msgs, "", err

	case protocol.MakeTurnRequest:
		room, err := e.rooms.Get(r.RoomID)
		if err != nil {
			return nil, "", err
		}
		msgs, err = room.Play(r.ClientID, r.Card)
		return msgs, "", err
	}

	return nil, "", protocol.ErrUnknownCommand
}

// seat records clientID as sitting in roomID and returns the room it sat in
// before, if that was a different one
func (e *Engine) seat(clientID, roomID string) (string, error) {
	prev := e.clients.RoomOf(clientID)
	if err := e.clients.SetRoom(clientID, roomID); err != nil {
		return "", err
	}
	if prev == roomID {
		return "", nil
	}
	return prev, nil
}

// lockRoom holds roomID's delivery lock until the returned func is called.
// Rooms that don't exist have nothing to order.
func (e *Engine) lockRoom(roomID string) func() {
	if roomID == "" {
		return func() {}
	}
	if _, err := e.rooms.Get(roomID); err != nil {
		return func() {}
	}

	e.mu.Lock()
	l, ok := e.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		e.roomLocks[roomID] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (e *Engine) leave(clientID, roomID string) (game.State, bool) {
	room, err := e.rooms.Get(roomID)
	if err != nil {
		e.log.Warn("client's room has gone", zap.String("clientId", clientID), zap.String("roomId", roomID))
		return game.Open, false
	}

	unlock := e.lockRoom(roomID)
	defer unlock()

	msgs, state, err := room.Leave(clientID)
	if err != nil {
		e.log.Warn("could not leave room", zap.String("clientId", clientID), zap.String("roomId", roomID), zap.Error(err))
		return state, false
	}
	e.deliver(msgs)
	return state, true
}

func (e *Engine) reject(log *zap.Logger, conn players.Conn, req protocol.Request, err error) {
	roomID := requestedRoom(req)

	switch {
	case errors.Is(err, store.ErrNoSuchRoom):
		log.Info("no such room", zap.String("roomId", roomID))
		e.send(req.Sender(), conn, game.BuildRoomRef(protocol.NoSuchRoom, roomID))

	case errors.Is(err, game.ErrAlreadyInRoom):
		e.send(req.Sender(), conn, game.BuildRoomRef(protocol.AlreadyInTheRoom, roomID))

	case errors.Is(err, game.ErrRoomNotReady):
		log.Debug("ignoring deal in a room that isn't ready", zap.String("roomId", roomID))

	default:
		log.Info("request refused", zap.String("roomId", roomID), zap.Error(err))
		e.send(req.Sender(), conn, game.BuildRejection(err))
	}
}

func (e *Engine) deliver(msgs []game.Notification) {
	for _, n := range msgs {
		conn, err := e.clients.Resolve(n.To)
		if err != nil {
			e.log.Debug("recipient has gone", zap.String("clientId", n.To), zap.Stringer("message", n.Message.Message))
			continue
		}
		e.send(n.To, conn, n.Message)
	}
}

func (e *Engine) send(clientID string, conn players.Conn, msg protocol.OutboundMessage) {
	if err := conn.Send(msg); err != nil {
		e.log.Warn("could not send",
			zap.String("clientId", clientID),
			zap.Stringer("message", msg.Message),
			zap.Error(err),
		)
	}
}

func requestedRoom(req protocol.Request) string {
	switch r := req.(type) {
	case protocol.ConnectToRoomRequest:
		return r.RoomID
	case protocol.GetCardsRequest:
		return r.RoomID
	case protocol.FoldRequest:
		return r.RoomID
	case protocol.SetTrumpRequest:
		return r.RoomID
	case protocol.MakeTurnRequest:
		return r.RoomID
	}
	return ""
}
