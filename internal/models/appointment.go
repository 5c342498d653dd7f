package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:10" json:"id"`

	PatientID string  `gorm:"size:10;index" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Denormalized from the slot at booking time.
	DoctorID string `gorm:"size:10;index" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ScheduleID string    `gorm:"size:10;index" json:"schedule_id"`
	Schedule   *Schedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"schedule,omitempty"`

	Status string `gorm:"size:20;default:'Scheduled'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
