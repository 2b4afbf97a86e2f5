package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monishaRema/zep-shift-server/internal/models"
)

func newTestSubscriber(trackingID string, hub *Hub) *Subscriber {
	return &Subscriber{
		TrackingID: trackingID,
		Send:       make(chan []byte, 8),
		Hub:        hub,
	}
}

func receiveEntry(t *testing.T, sub *Subscriber) models.TrackingEntry {
	t.Helper()
	select {
	case data := <-sub.Send:
		var entry models.TrackingEntry
		require.NoError(t, json.Unmarshal(data, &entry))
		return entry
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for entry")
		return models.TrackingEntry{}
	}
}

func TestHubRoutesEntriesByTrackingID(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	scoped := newTestSubscriber("TRK-1", hub)
	other := newTestSubscriber("TRK-2", hub)
	firehose := newTestSubscriber("", hub)

	hub.register <- scoped
	hub.register <- other
	hub.register <- firehose

	hub.PublishEntry(models.TrackingEntry{TrackingID: "TRK-1", Status: "picked_up"})

	got := receiveEntry(t, scoped)
	assert.Equal(t, "TRK-1", got.TrackingID)

	got = receiveEntry(t, firehose)
	assert.Equal(t, "picked_up", got.Status)

	select {
	case <-other.Send:
		t.Fatal("subscriber for TRK-2 should not receive TRK-1 entries")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sub := newTestSubscriber("TRK-1", hub)
	hub.register <- sub
	hub.unregister <- sub

	select {
	case _, ok := <-sub.Send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
