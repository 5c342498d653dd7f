package models

import "time"

const (
	RoleAdmin   = "Admin"
	RoleDoctor  = "Doctor"
	RolePatient = "Patient"
)

type User struct {
	ID string `gorm:"primaryKey;size:10" json:"id"`

	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Role         string `gorm:"size:20;not null" json:"role"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
