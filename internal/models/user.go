package models

import (
	"time"

	"gorm.io/datatypes"
)

// User represents an account that can own and modify products.
type User struct {
	ID        string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string                      `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	FullName  string                      `json:"fullName" gorm:"type:varchar(255);not null"`
	Password  string                      `json:"-" gorm:"type:varchar(255)"` // bcrypt hash
	IsActive  bool                        `json:"isActive" gorm:"not null;default:true"`
	Roles     datatypes.JSONSlice[string] `json:"roles"`
	CreatedAt time.Time                   `json:"-"`
	UpdatedAt time.Time                   `json:"-"`
}

// HasRole reports whether u carries role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
