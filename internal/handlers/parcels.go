package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/monishaRema/zep-shift-server/internal/models"
	"github.com/monishaRema/zep-shift-server/internal/services"
	"github.com/monishaRema/zep-shift-server/pkg/utils"
)

// GetParcels lists parcels, newest first, optionally filtered by the
// creator's email and the two status fields.
func GetParcels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Parcel{})

		if email := c.Query("email"); email != "" {
			query = query.Where("created_by = ?", email)
		}
		if ps := c.Query("payment_status"); ps != "" {
			query = query.Where("payment_status = ?", ps)
		}
		if ds := c.Query("delivery_status"); ds != "" {
			query = query.Where("delivery_status = ?", ds)
		}

		var parcels []models.Parcel
		if err := query.Order("created_at DESC").Find(&parcels).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to get parcels"})
			return
		}

		c.JSON(200, parcels)
	}
}

// GetAllParcels returns the paginated parcel listing with page metadata.
func GetAllParcels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))

		var total int64
		if err := db.Model(&models.Parcel{}).Count(&total).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to get parcels"})
			return
		}

		var parcels []models.Parcel
		err := db.Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&parcels).Error
		if err != nil {
			c.JSON(500, gin.H{"message": "Failed to get parcels"})
			return
		}

		totalPages := int((total + int64(limit) - 1) / int64(limit))
		c.JSON(200, gin.H{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": totalPages,
			"parcels":    parcels,
		})
	}
}

// GetParcel returns a single parcel, or null when the id is unknown.
func GetParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid parcel id"})
			return
		}

		var parcel models.Parcel
		if err := db.First(&parcel, id).Error; err != nil {
			c.JSON(200, nil)
			return
		}

		c.JSON(200, parcel)
	}
}

// CreateParcel inserts a parcel as supplied by the caller.
func CreateParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var parcel models.Parcel
		if err := c.ShouldBindJSON(&parcel); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		if parcel.DeliveryStatus == "" {
			parcel.DeliveryStatus = models.DeliveryStatusPending
		}
		if parcel.PaymentStatus == "" {
			parcel.PaymentStatus = models.PaymentStatusUnpaid
		}

		if err := db.Create(&parcel).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to create parcel"})
			return
		}

		c.JSON(201, gin.H{"insertedId": parcel.ID})
	}
}

// DeleteParcel removes a parcel by id. Deleting an unknown id is a
// no-op reported as deletedCount 0.
func DeleteParcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid parcel id"})
			return
		}

		result := db.Delete(&models.Parcel{}, id)
		if result.Error != nil {
			c.JSON(500, gin.H{"message": "Failed to delete parcel"})
			return
		}

		c.JSON(200, gin.H{"deletedCount": result.RowsAffected})
	}
}

type assignInput struct {
	RiderID      string `json:"riderId" binding:"required"`
	RiderName    string `json:"riderName" binding:"required"`
	RiderEmail   string `json:"riderEmail" binding:"required"`
	RiderContact string `json:"riderContact" binding:"required"`
}

// AssignRider binds a rider to a parcel: the parcel gets the rider
// snapshot and delivery_status "rider-assigned", the rider moves to
// in_delivery with assigned_parcel set. Both writes run in one
// transaction so a failure leaves neither record touched.
func AssignRider(db *gorm.DB, cache *services.RiderCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		parcelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid parcel id"})
			return
		}

		var input assignInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		riderID, err := strconv.ParseUint(input.RiderID, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"message": "Invalid rider id"})
			return
		}

		var parcelModified, riderModified int64
		var riderRegion string

		err = db.Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&models.Parcel{}).Where("id = ?", parcelID).Updates(map[string]interface{}{
				"delivery_status": models.DeliveryStatusRiderAssigned,
				"rider_id":        input.RiderID,
				"rider_name":      input.RiderName,
				"rider_email":     input.RiderEmail,
				"rider_contact":   input.RiderContact,
			})
			if result.Error != nil {
				return result.Error
			}
			parcelModified = result.RowsAffected

			var rider models.Rider
			if err := tx.First(&rider, riderID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					// Unknown rider: the parcel side still counts as
					// modified, mirrored in the response.
					return nil
				}
				return err
			}

			if !rider.Status.CanTransitionTo(models.RiderStatusInDelivery) {
				return errRiderNotAssignable
			}

			riderRegion = rider.Region
			result = tx.Model(&models.Rider{}).Where("id = ?", riderID).Updates(map[string]interface{}{
				"status":          models.RiderStatusInDelivery,
				"assigned_parcel": strconv.FormatUint(parcelID, 10),
			})
			if result.Error != nil {
				return result.Error
			}
			riderModified = result.RowsAffected
			return nil
		})

		if err == errRiderNotAssignable {
			c.JSON(400, gin.H{"message": "Rider is not available for assignment"})
			return
		}
		if err != nil {
			c.JSON(500, gin.H{"message": "Failed to assign rider"})
			return
		}

		if riderModified > 0 {
			cache.InvalidateRegion(c.Request.Context(), riderRegion)
		}

		c.JSON(200, gin.H{
			"parcelModified": parcelModified,
			"riderModified":  riderModified,
		})
	}
}
