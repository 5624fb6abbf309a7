package hub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send():
		return msg
	case <-time.After(time.Second):
		t.Fatalf("client %s received nothing", c.ID)
		return nil
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send():
		t.Fatalf("client %s got unexpected %s", c.ID, msg)
	default:
	}
}

func TestBroadcastIsRoomScoped(t *testing.T) {
	h := New(time.Second)
	a, b, c := NewClient("a", 4), NewClient("b", 4), NewClient("c", 4)
	for _, cl := range []*Client{a, b, c} {
		h.Register(cl)
	}
	h.Join("ROOM01", "a")
	h.Join("ROOM01", "b")
	h.Join("ROOM02", "c")

	sent := h.Broadcast("ROOM01", []byte("hello"))

	assert.Equal(t, 2, sent)
	assert.Equal(t, "hello", string(receive(t, a)))
	assert.Equal(t, "hello", string(receive(t, b)))
	assertSilent(t, c)
	assert.Equal(t, 2, h.RoomSize("ROOM01"))
}

func TestBroadcastPersonalized(t *testing.T) {
	h := New(time.Second)
	a, b := NewClient("a", 4), NewClient("b", 4)
	h.Register(a)
	h.Register(b)
	h.Join("ROOM01", "a")
	h.Join("ROOM01", "b")

	h.BroadcastPersonalized("ROOM01", func(id string) []byte {
		if id == "b" {
			return nil
		}
		return []byte("for " + id)
	})

	assert.Equal(t, "for a", string(receive(t, a)))
	assertSilent(t, b)
}

func TestSendTo(t *testing.T) {
	h := New(time.Second)
	a := NewClient("a", 1)
	h.Register(a)

	assert.True(t, h.SendTo("a", []byte("hi")))
	assert.Equal(t, "hi", string(receive(t, a)))
	assert.False(t, h.SendTo("nobody", []byte("hi")))
}

func TestFullQueueTimesOut(t *testing.T) {
	h := New(20 * time.Millisecond)
	a := NewClient("a", 1)
	h.Register(a)
	h.Join("ROOM01", "a")

	require.True(t, h.SendTo("a", []byte("first")))
	start := time.Now()
	assert.False(t, h.SendTo("a", []byte("second")))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, 0, h.Broadcast("ROOM01", []byte("third")))
}

func TestUnregisterLeavesRoomsAndCloses(t *testing.T) {
	h := New(time.Second)
	a := NewClient("a", 1)
	h.Register(a)
	h.Join("ROOM01", "a")

	h.Unregister(a)

	assert.Zero(t, h.RoomSize("ROOM01"))
	assert.False(t, h.SendTo("a", []byte("gone")))
	select {
	case <-a.Done():
	default:
		t.Fatal("client not closed")
	}
	// closing twice is safe
	a.Close()
}

func TestLeave(t *testing.T) {
	h := New(time.Second)
	a := NewClient("a", 1)
	h.Register(a)
	h.Join("ROOM01", "a")
	h.Leave("ROOM01", "a")

	assert.Zero(t, h.RoomSize("ROOM01"))
	assert.Zero(t, h.Broadcast("ROOM01", []byte("x")))
	assert.True(t, h.SendTo("a", []byte("still connected")))
}

func TestRegisterReplacesConnection(t *testing.T) {
	h := New(time.Second)
	old, fresh := NewClient("a", 1), NewClient("a", 1)
	h.Register(old)
	h.Register(fresh)

	select {
	case <-old.Done():
	default:
		t.Fatal("replaced client not closed")
	}

	// unregistering the stale client must not drop the new one
	h.Unregister(old)
	assert.True(t, h.SendTo("a", []byte("hi")))
	assert.Equal(t, "hi", string(receive(t, fresh)))
}

func TestCloseAll(t *testing.T) {
	h := New(time.Second)
	a, b := NewClient("a", 4), NewClient("b", 4)
	h.Register(a)
	h.Register(b)

	assert.Equal(t, 2, h.CloseAll())
	for _, c := range []*Client{a, b} {
		select {
		case <-c.Done():
		default:
			t.Fatalf("client %s still open", c.ID)
		}
	}
}
