package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/monishaRema/zep-shift-server/internal/middleware"
	"github.com/monishaRema/zep-shift-server/internal/models"
	"github.com/monishaRema/zep-shift-server/internal/services"
)

var errRiderNotAssignable = errors.New("rider cannot move to in_delivery")

type riderInput struct {
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Email            string `json:"email"`
	Region           string `json:"region"`
	District         string `json:"district"`
	NID              string `json:"nid"`
	Contact          string `json:"contact"`
	BikeRegistration string `json:"bike_registration"`
	Warehouse        string `json:"warehouse"`
}

func (in riderInput) complete() bool {
	return in.Name != "" && in.Age > 0 && in.Email != "" && in.Region != "" &&
		in.District != "" && in.NID != "" && in.Contact != "" &&
		in.BikeRegistration != "" && in.Warehouse != ""
}

// RegisterRider creates a pending rider application. The applicant can
// only register themselves: the email in the body must match the
// verified caller.
func RegisterRider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input riderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": "All fields are required."})
			return
		}

		if !input.complete() {
			c.JSON(400, gin.H{"message": "All fields are required."})
			return
		}

		if middleware.CallerEmail(c) != input.Email {
			c.JSON(401, gin.H{"message": "Email mismatch."})
			return
		}

		var existing int64
		err := db.Model(&models.Rider{}).
			Where("email = ? OR nid = ?", input.Email, input.NID).
			Count(&existing).Error
		if err != nil {
			c.JSON(500, gin.H{"message": "Server error"})
			return
		}
		if existing > 0 {
			c.JSON(409, gin.H{"message": "Rider already exists with this email or NID."})
			return
		}

		rider := models.Rider{
			Name:             input.Name,
			Age:              input.Age,
			Email:            input.Email,
			Region:           input.Region,
			District:         input.District,
			NID:              input.NID,
			Contact:          input.Contact,
			BikeRegistration: input.BikeRegistration,
			Warehouse:        input.Warehouse,
			Status:           models.RiderStatusPending,
		}

		if err := db.Create(&rider).Error; err != nil {
			c.JSON(500, gin.H{"message": "Server error"})
			return
		}

		c.JSON(201, gin.H{"insertedId": rider.ID})
	}
}

// GetRiders lists every rider regardless of status.
func GetRiders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var riders []models.Rider
		if err := db.Find(&riders).Error; err != nil {
			c.JSON(500, gin.H{"message": "Server error"})
			return
		}
		c.JSON(200, riders)
	}
}

// GetRidersByStatus lists riders in one lifecycle state; it backs the
// pending/active/deactivated/rejected routes.
func GetRidersByStatus(db *gorm.DB, status models.RiderStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		var riders []models.Rider
		if err := db.Where("status = ?", status).Find(&riders).Error; err != nil {
			c.JSON(500, gin.H{"message": "Server error"})
			return
		}
		c.JSON(200, riders)
	}
}

// GetAvailableRiders returns active riders in a region, served from the
// Redis snapshot when one is fresh.
func GetAvailableRiders(db *gorm.DB, cache *services.RiderCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := c.Query("region")
		if region == "" {
			c.JSON(400, gin.H{"message": "Region is required"})
			return
		}

		ctx := c.Request.Context()
		if riders, ok := cache.GetAvailable(ctx, region); ok {
			c.JSON(200, riders)
			return
		}

		var riders []models.Rider
		err := db.Where("status = ? AND region = ?", models.RiderStatusActive, region).
			Find(&riders).Error
		if err != nil {
			c.JSON(500, gin.H{"message": "Server error"})
			return
		}

		cache.SetAvailable(ctx, region, riders)
		c.JSON(200, riders)
	}
}

type riderStatusInput struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

// UpdateRiderStatus moves a rider through the status table. Activating
// a rider also promotes their user record to the rider role; the two
// writes share a transaction.
func UpdateRiderStatus(db *gorm.DB, cache *services.RiderCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid rider id"})
			return
		}

		var input riderStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		newStatus, ok := models.ParseRiderStatus(input.Status)
		if !ok {
			c.JSON(400, gin.H{"message": "Unknown rider status"})
			return
		}

		var rider models.Rider
		if err := db.First(&rider, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(200, gin.H{"message": "Status updated", "modifiedCount": 0})
				return
			}
			c.JSON(500, gin.H{"message": "Server error"})
			return
		}

		if !rider.Status.CanTransitionTo(newStatus) {
			c.JSON(400, gin.H{"message": "Invalid status transition"})
			return
		}

		userEmail := input.Email
		if userEmail == "" {
			userEmail = rider.Email
		}

		var modified int64
		err = db.Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&models.Rider{}).Where("id = ?", id).
				Update("status", newStatus)
			if result.Error != nil {
				return result.Error
			}
			modified = result.RowsAffected

			if newStatus == models.RiderStatusActive && modified > 0 {
				err := tx.Model(&models.User{}).Where("email = ?", userEmail).
					Update("role", models.RoleRider).Error
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"message": "Server error"})
			return
		}

		cache.InvalidateRegion(c.Request.Context(), rider.Region)

		c.JSON(200, gin.H{"message": "Status updated", "modifiedCount": modified})
	}
}
