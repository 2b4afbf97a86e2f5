package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/monishaRema/zep-shift-server/internal/middleware"
	"github.com/monishaRema/zep-shift-server/internal/models"
	"github.com/monishaRema/zep-shift-server/internal/services"
)

type paymentIntentInput struct {
	AmountInCents int64 `json:"amountInCents" binding:"required"`
}

// CreatePaymentIntent asks the gateway for a new charge intent and
// returns its client secret.
func CreatePaymentIntent(gateway services.PaymentGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input paymentIntentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		clientSecret, err := gateway.CreateIntent(c.Request.Context(), input.AmountInCents)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, gin.H{"clientSecret": clientSecret})
	}
}

type paymentInput struct {
	Email         string  `json:"email"`
	ParcelID      string  `json:"parcelId"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
}

// CreatePayment appends a ledger entry. When the payment references a
// parcel, the parcel is marked paid in the same transaction. Callers
// may only record payments under their own email unless they are admin.
func CreatePayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input paymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"message": err.Error()})
			return
		}

		caller := middleware.CallerEmail(c)
		if input.Email != caller && !isAdmin(db, caller) {
			c.JSON(403, gin.H{"message": "Forbidden"})
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

		payment := models.Payment{
			Email:         input.Email,
			ParcelID:      input.ParcelID,
			TransactionID: input.TransactionID,
			Amount:        input.Amount,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}

			if input.ParcelID != "" {
				err := tx.Model(&models.Parcel{}).Where("id = ?", parcelID).
					Updates(map[string]interface{}{
						"payment_status": models.PaymentStatusPaid,
						"transaction_id": input.TransactionID,
					}).Error
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"message": "Failed to save payment"})
			return
		}

		c.JSON(201, payment)
	}
}

// GetPayments returns the caller's own payments when an email filter is
// given, or the full ledger for admins.
func GetPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := middleware.CallerEmail(c)

		if email := c.Query("email"); email != "" {
			if email != caller {
				c.JSON(403, gin.H{"message": "Forbidden"})
				return
			}

			var payments []models.Payment
			err := db.Where("email = ?", email).Order("created_at DESC").
				Find(&payments).Error
			if err != nil {
				c.JSON(500, gin.H{"message": "Failed to get payments"})
				return
			}
			c.JSON(200, payments)
			return
		}

		if !isAdmin(db, caller) {
			c.JSON(403, gin.H{"message": "Forbidden - Admins only."})
			return
		}

		var payments []models.Payment
		if err := db.Order("created_at DESC").Find(&payments).Error; err != nil {
			c.JSON(500, gin.H{"message": "Failed to get payments"})
			return
		}
		c.JSON(200, payments)
	}
}

// GetParcelPayments lists the payment history of one parcel.
func GetParcelPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		parcelID := c.Param("parcelId")

		var payments []models.Payment
		err := db.Where("parcel_id = ?", parcelID).Order("created_at DESC").
			Find(&payments).Error
		if err != nil {
			c.JSON(500, gin.H{"message": "Failed to get parcel payments"})
			return
		}

		c.JSON(200, payments)
	}
}

func isAdmin(db *gorm.DB, email string) bool {
	if email == "" {
		return false
	}
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return false
	}
	return user.Role == models.RoleAdmin
}
