package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monishaRema/zep-shift-server/internal/models"
)

func TestCreateTrackingAppendsEntry(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	body := map[string]interface{}{
		"tracking_id": "TRK-1001",
		"parcel_id":   "17",
		"status":      "picked_up",
		"message":     "Parcel collected from sender",
		"updated_by":  adminEmail,
	}
	w := doRequest(t, r, http.MethodPost, "/tracking", "", body)
	require.Equal(t, 200, w.Code)

	var got struct {
		Success    bool `json:"success"`
		InsertedID uint `json:"insertedId"`
	}
	decodeBody(t, w, &got)
	assert.True(t, got.Success)
	assert.NotZero(t, got.InsertedID)

	var entry models.TrackingEntry
	require.NoError(t, db.First(&entry, got.InsertedID).Error)
	assert.Equal(t, uint(17), entry.ParcelID)
	assert.False(t, entry.Time.IsZero())
}

func TestCreateTrackingRejectsMalformedParcelID(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	body := map[string]interface{}{
		"tracking_id": "TRK-1001",
		"parcel_id":   "not-an-id",
		"status":      "picked_up",
		"message":     "x",
	}
	w := doRequest(t, r, http.MethodPost, "/tracking", "", body)
	assert.Equal(t, 400, w.Code)
}

func TestGetTrackingOrdersAscendingAndFilters(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	base := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	entries := []models.TrackingEntry{
		{TrackingID: "TRK-1", Status: "delivered", Message: "m3", Time: base.Add(2 * time.Hour)},
		{TrackingID: "TRK-1", Status: "picked_up", Message: "m1", Time: base},
		{TrackingID: "TRK-1", Status: "in_transit", Message: "m2", Time: base.Add(time.Hour)},
		{TrackingID: "TRK-2", Status: "picked_up", Message: "other", Time: base},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}

	w := doRequest(t, r, http.MethodGet, "/tracking?tracking_id=TRK-1", "", nil)
	require.Equal(t, 200, w.Code)

	var got []models.TrackingEntry
	decodeBody(t, w, &got)
	require.Len(t, got, 3)
	assert.Equal(t, "picked_up", got[0].Status)
	assert.Equal(t, "in_transit", got[1].Status)
	assert.Equal(t, "delivered", got[2].Status)

	// Empty filter returns everything.
	w = doRequest(t, r, http.MethodGet, "/tracking", "", nil)
	decodeBody(t, w, &got)
	assert.Len(t, got, 4)
}
