package players

import (
	"errors"
	"sync"
	"testing"

	utils "github.com/minaorangina/clab/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	utils.AssertNotEmptyString(t, a)
	assert.NotEqual(t, a, b)
}

func TestRegistry(t *testing.T) {
	t.Run("registered connections resolve", func(t *testing.T) {
		reg := NewRegistry()
		conn := NewTestConn()
		id := reg.Register(conn)

		got, err := reg.Resolve(id)
		require.NoError(t, err)
		assert.Same(t, conn, got)
		utils.AssertEqual(t, reg.Len(), 1)
	})

	t.Run("unknown ids don't resolve", func(t *testing.T) {
		reg := NewRegistry()
		_, err := reg.Resolve("nobody")
		assert.True(t, errors.Is(err, ErrUnknownClient))
		assert.True(t, errors.Is(reg.SetRoom("nobody", "ROOMID"), ErrUnknownClient))
		utils.AssertEqual(t, reg.RoomOf("nobody"), "")
	})

	t.Run("remembers the current room", func(t *testing.T) {
		reg := NewRegistry()
		id := reg.Register(NewTestConn())
		utils.AssertEqual(t, reg.RoomOf(id), "")

		require.NoError(t, reg.SetRoom(id, "ROOMID"))
		utils.AssertEqual(t, reg.RoomOf(id), "ROOMID")

		utils.AssertEqual(t, reg.Unregister(id), "ROOMID")
		_, err := reg.Resolve(id)
		assert.True(t, errors.Is(err, ErrUnknownClient))
		utils.AssertEqual(t, reg.Unregister(id), "")
	})

	t.Run("ids are unique under concurrent registration", func(t *testing.T) {
		reg := NewRegistry()
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			ids = map[string]bool{}
		)
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id := reg.Register(NewTestConn())
				mu.Lock()
				ids[id] = true
				mu.Unlock()
			}()
		}
		wg.Wait()
		utils.AssertEqual(t, len(ids), 100)
		utils.AssertEqual(t, reg.Len(), 100)
	})
}
