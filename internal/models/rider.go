package models

import "gorm.io/gorm"

type RiderStatus string

const (
	RiderStatusPending     RiderStatus = "pending"
	RiderStatusActive      RiderStatus = "active"
	RiderStatusRejected    RiderStatus = "rejected"
	RiderStatusDeactivated RiderStatus = "deactivated"
	RiderStatusInDelivery  RiderStatus = "in_delivery"
)

// riderTransitions is the closed transition table for rider status.
// Registration always starts at pending; rejected is terminal.
var riderTransitions = map[RiderStatus][]RiderStatus{
	RiderStatusPending:     {RiderStatusActive, RiderStatusRejected},
	RiderStatusActive:      {RiderStatusDeactivated, RiderStatusInDelivery},
	RiderStatusInDelivery:  {RiderStatusActive},
	RiderStatusDeactivated: {RiderStatusActive},
	RiderStatusRejected:    {},
}

func ParseRiderStatus(s string) (RiderStatus, bool) {
	switch RiderStatus(s) {
	case RiderStatusPending, RiderStatusActive, RiderStatusRejected,
		RiderStatusDeactivated, RiderStatusInDelivery:
		return RiderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether the status change is allowed by the
// transition table.
func (s RiderStatus) CanTransitionTo(next RiderStatus) bool {
	for _, allowed := range riderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Rider struct {
	gorm.Model
	Name             string      `json:"name" gorm:"not null"`
	Age              int         `json:"age" gorm:"not null"`
	Email            string      `json:"email" gorm:"uniqueIndex;not null"`
	Region           string      `json:"region" gorm:"index;not null"`
	District         string      `json:"district" gorm:"not null"`
	NID              string      `json:"nid" gorm:"column:nid;uniqueIndex;not null"`
	Contact          string      `json:"contact" gorm:"not null"`
	BikeRegistration string      `json:"bike_registration" gorm:"column:bike_registration;not null"`
	Warehouse        string      `json:"warehouse" gorm:"not null"`
	Status           RiderStatus `json:"status" gorm:"default:pending"`
	AssignedParcel   string      `json:"assigned_parcel,omitempty" gorm:"column:assigned_parcel"`
}

func (Rider) TableName() string {
	return "riders"
}
