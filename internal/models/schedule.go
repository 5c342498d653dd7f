package models

import "time"

// Schedule is a single bookable time slot owned by one doctor.
// IsAvailable is false exactly while a non-Cancelled appointment holds it.
type Schedule struct {
	ID string `gorm:"primaryKey;size:10" json:"id"`

	DoctorID string `gorm:"size:10;index" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartTime   time.Time `gorm:"index" json:"start_time"`
	DurationMin int       `json:"duration_min"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Schedule) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMin) * time.Minute)
}
