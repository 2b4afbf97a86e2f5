package models

import "gorm.io/gorm"

type DeliveryStatus string

const (
	DeliveryStatusPending       DeliveryStatus = "pending"
	DeliveryStatusRiderAssigned DeliveryStatus = "rider-assigned"
	DeliveryStatusInTransit     DeliveryStatus = "in_transit"
	DeliveryStatusDelivered     DeliveryStatus = "delivered"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Parcel struct {
	gorm.Model
	TrackingID      string         `json:"tracking_id" gorm:"column:tracking_id;index"`
	Type            string         `json:"type"`
	Title           string         `json:"title"`
	Weight          float64        `json:"weight"`
	Cost            float64        `json:"cost"`
	SenderName      string         `json:"sender_name"`
	SenderContact   string         `json:"sender_contact"`
	SenderRegion    string         `json:"sender_region"`
	SenderCenter    string         `json:"sender_center"`
	SenderAddress   string         `json:"sender_address"`
	ReceiverName    string         `json:"receiver_name"`
	ReceiverContact string         `json:"receiver_contact"`
	ReceiverRegion  string         `json:"receiver_region"`
	ReceiverCenter  string         `json:"receiver_center"`
	ReceiverAddress string         `json:"receiver_address"`
	CreatedBy       string         `json:"created_by" gorm:"column:created_by;index"`
	DeliveryStatus  DeliveryStatus `json:"delivery_status" gorm:"column:delivery_status;default:pending"`
	PaymentStatus   PaymentStatus  `json:"payment_status" gorm:"column:payment_status;default:unpaid"`
	TransactionID   string         `json:"transactionId" gorm:"column:transaction_id"`

	// Snapshot of the assigned rider, embedded when the assignment
	// workflow runs. Empty until then.
	RiderID      string `json:"riderId,omitempty" gorm:"column:rider_id"`
	RiderName    string `json:"riderName,omitempty" gorm:"column:rider_name"`
	RiderEmail   string `json:"riderEmail,omitempty" gorm:"column:rider_email"`
	RiderContact string `json:"riderContact,omitempty" gorm:"column:rider_contact"`
}

func (Parcel) TableName() string {
	return "parcels"
}
