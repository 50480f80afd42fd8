package players

import (
	"errors"
	"sync"
)

var ErrUnknownClient = errors.New("unknown client")

type client struct {
	conn   Conn
	roomID string
}

// Registry tracks every open connection and the room it is sitting in.
// A client is in at most one room at a time.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*client
}

func NewRegistry() *Registry {
	return &Registry{clients: map[string]*client{}}
}

// Register issues a fresh client id for conn
func (r *Registry) Register(conn Conn) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := NewID()
	for _, taken := r.clients[id]; taken; _, taken = r.clients[id] {
		id = NewID()
	}
	r.clients[id] = &client{conn: conn}
	return id
}

func (r *Registry) Resolve(id string) (Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, ErrUnknownClient
	}
	return c.conn, nil
}

// Unregister forgets a client and returns the room it was in, if any
func (r *Registry) Unregister(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return ""
	}
	delete(r.clients, id)
	return c.roomID
}

func (r *Registry) SetRoom(id, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return ErrUnknownClient
	}
	c.roomID = roomID
	return nil
}

func (r *Registry) RoomOf(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.clients[id]; ok {
		return c.roomID
	}
	return ""
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
