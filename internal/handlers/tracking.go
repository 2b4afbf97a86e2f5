package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/monishaRema/zep-shift-server/internal/models"
	"github.com/monishaRema/zep-shift-server/internal/services"
)

type trackingInput struct {
	TrackingID string `json:"tracking_id"`
	ParcelID   string `json:"parcel_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	UpdatedBy  string `json:"updated_by"`
}

// CreateTracking appends a status event and pushes it to any live
// subscribers. The parcel reference only has to be well-formed; whether
// the parcel exists is not checked.
func CreateTracking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input trackingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		var parcelID uint64
		if input.ParcelID != "" {
			var err error
			parcelID, err = strconv.ParseUint(input.ParcelID, 10, 32)
			if err != nil {
				c.JSON(400, gin.H{"message": "Invalid parcel id"})
				return
			}
		}

		entry := models.TrackingEntry{
			TrackingID: input.TrackingID,
			ParcelID:   uint(parcelID),
			Status:     input.Status,
			Message:    input.Message,
			Time:       time.Now(),
			UpdatedBy:  input.UpdatedBy,
		}

		if err := db.Create(&entry).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to log tracking entry"})
			return
		}

		if hub != nil {
			hub.PublishEntry(entry)
		}

		c.JSON(200, gin.H{"success": true, "insertedId": entry.ID})
	}
}

// GetTracking returns the log ordered oldest first, optionally filtered
// by tracking id or parcel id.
func GetTracking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.TrackingEntry{})

		if trackingID := c.Query("tracking_id"); trackingID != "" {
			query = query.Where("tracking_id = ?", trackingID)
		}
		if parcelID := c.Query("parcel_id"); parcelID != "" {
			id, err := strconv.ParseUint(parcelID, 10, 32)
			if err != nil {
				c.JSON(400, gin.H{"message": "Invalid parcel id"})
				return
			}
			query = query.Where("parcel_id = ?", id)
		}

		var entries []models.TrackingEntry
		if err := query.Order("time ASC").Find(&entries).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to get tracking entries"})
			return
		}

		c.JSON(200, entries)
	}
}

// TrackingFeed upgrades to a WebSocket that streams entries as they are
// appended, scoped to the tracking_id query when present.
func TrackingFeed(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		services.HandleWebSocket(hub, c.Writer, c.Request, c.Query("tracking_id"))
	}
}
