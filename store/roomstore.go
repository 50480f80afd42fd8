package store

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/minaorangina/clab/game"
)

var ErrNoSuchRoom = errors.New("no such room")

const roomIDLength = 6

var roomIDLetters = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

type RoomStore interface {
	Create() *game.Room
	Get(roomID string) (*game.Room, error)
	Snapshot(roomID string) (game.Snapshot, error)
	Len() int
}

// InMemoryRoomStore maps room id to room. Rooms live for the life of the
// process; an empty room is kept so its id can still be joined.
type InMemoryRoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*game.Room
	opts  []game.Option
}

// NewInMemoryRoomStore constructs an InMemoryRoomStore. opts are applied to
// every room it creates.
func NewInMemoryRoomStore(opts ...game.Option) *InMemoryRoomStore {
	return &InMemoryRoomStore{
		rooms: map[string]*game.Room{},
		opts:  opts,
	}
}

// Create registers a room under a fresh id
func (s *InMemoryRoomStore) Create() *game.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := NewRoomID()
	for _, taken := s.rooms[id]; taken; _, taken = s.rooms[id] {
		id = NewRoomID()
	}

	room := game.NewRoom(id, s.opts...)
	s.rooms[id] = room
	return room
}

func (s *InMemoryRoomStore) Get(roomID string) (*game.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrNoSuchRoom
	}
	return room, nil
}

func (s *InMemoryRoomStore) Snapshot(roomID string) (game.Snapshot, error) {
	room, err := s.Get(roomID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return room.Snapshot(), nil
}

func (s *InMemoryRoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// NewRoomID returns a six-letter code that's easy to read out to a friend
func NewRoomID() string {
	code := make([]byte, roomIDLength)
	for i := range code {
		code[i] = roomIDLetters[rand.Intn(len(roomIDLetters))]
	}
	return string(code)
}
