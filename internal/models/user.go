// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an author account. The post core treats users as read-only
// ownership references; account management happens at the auth boundary.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:60;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}
