package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

// User records are upserted on every login. Role defaults to "user" and
// only changes through the admin role endpoint or rider activation.
type User struct {
	gorm.Model
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Role         Role      `json:"role" gorm:"default:user"`
	LastLoggedIn time.Time `json:"last_loggedIn" gorm:"column:last_logged_in"`
}

func (User) TableName() string {
	return "users"
}
