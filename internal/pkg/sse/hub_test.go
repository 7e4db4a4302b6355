package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishToSubscriber(t *testing.T) {
	h := NewHub(4)
	ch, cleanup := h.Subscribe("u1")
	defer cleanup()
	other, cleanupOther := h.Subscribe("u2")
	defer cleanupOther()

	h.Publish("u1", Event{UserID: "u1", Event: "notification", Data: "hello"})

	ev := <-ch
	assert.Equal(t, "hello", ev.Data)
	assert.Len(t, other, 0)
	assert.Equal(t, Stats{Users: 2, Subscribers: 2}, h.Stats())
}

func TestHub_DropsWhenFull(t *testing.T) {
	h := NewHub(1)
	_, cleanup := h.Subscribe("u1")
	defer cleanup()

	h.Publish("u1", Event{Event: "a"})
	h.Publish("u1", Event{Event: "b"})

	assert.Equal(t, int64(1), h.Stats().Dropped)
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	h := NewHub(1)
	ch, cleanup := h.Subscribe("u1")

	cleanup()
	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.Stats().Subscribers)

	// Publishing to a user without streams is a no-op.
	h.Publish("u1", Event{Event: "late"})
}
