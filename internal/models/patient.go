package models

import "time"

type Patient struct {
	ID string `gorm:"primaryKey;size:10" json:"id"`

	UserID string `gorm:"size:10;index" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`

	BirthDate *time.Time `json:"birth_date"`
	Gender    string     `gorm:"size:1" json:"gender"`
	Address   string     `gorm:"size:200" json:"address"`
	Email     string     `gorm:"size:100;uniqueIndex" json:"email"`
	Phone     string     `gorm:"size:20" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
