package models

import "gorm.io/gorm"

// Payment is one row of the append-only payment ledger. ParcelID is the
// caller-supplied reference; a parcel may accumulate several payments.
type Payment struct {
	gorm.Model
	Email         string  `json:"email" gorm:"index;not null"`
	ParcelID      string  `json:"parcelId" gorm:"column:parcel_id;index"`
	TransactionID string  `json:"transactionId" gorm:"column:transaction_id"`
	Amount        float64 `json:"amount"`
}

func (Payment) TableName() string {
	return "payments"
}
