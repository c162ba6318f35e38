package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()

	id1, ch1 := hub.Register()
	id2, ch2 := hub.Register()
	require.NotEqual(t, id1, id2)

	hub.Broadcast([]byte("hello"))

	select {
	case msg := <-ch1:
		assert.Equal(t, "hello", string(msg))
	case <-time.After(time.Second):
		t.Fatal("first subscriber never received the broadcast")
	}
	select {
	case msg := <-ch2:
		assert.Equal(t, "hello", string(msg))
	case <-time.After(time.Second):
		t.Fatal("second subscriber never received the broadcast")
	}

	hub.Unregister(id1)
	_, open := <-ch1
	assert.False(t, open)

	// Unregistering twice is harmless.
	hub.Unregister(id1)

	hub.Broadcast([]byte("again"))
	select {
	case msg := <-ch2:
		assert.Equal(t, "again", string(msg))
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber never received the broadcast")
	}
}

func TestHub_SlowClientDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	_, ch := hub.Register()

	// Overfill the buffer; the extra messages are dropped.
	for i := 0; i < clientBuffer+5; i++ {
		hub.Broadcast([]byte("msg"))
	}

	received := 0
drain:
	for {
		select {
		case <-ch:
			received++
		default:
			break drain
		}
	}
	assert.Equal(t, clientBuffer, received)
}
