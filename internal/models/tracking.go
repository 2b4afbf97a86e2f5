package models

import "time"

// TrackingEntry is an append-only status event. Entries are never
// updated or deleted, so it does not embed gorm.Model.
type TrackingEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TrackingID string    `json:"tracking_id" gorm:"column:tracking_id;index"`
	ParcelID   uint      `json:"parcel_id,omitempty" gorm:"column:parcel_id;index"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Time       time.Time `json:"time" gorm:"index"`
	UpdatedBy  string    `json:"updated_by" gorm:"column:updated_by"`
}

func (TrackingEntry) TableName() string {
	return "tracking_entries"
}
