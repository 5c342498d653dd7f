package models

import "time"

type MedicalRecord struct {
	ID string `gorm:"primaryKey;size:10" json:"id"`

	PatientID string  `gorm:"size:10;index;not null" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	AppointmentID *string      `gorm:"size:10;index" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	DepartmentID *string     `gorm:"size:10;index" json:"department_id"`
	Department   *Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Diagnosis    string `gorm:"type:text;not null" json:"diagnosis"`
	Prescription string `gorm:"type:text;not null" json:"prescription"`
	Notes        string `gorm:"type:text" json:"notes"`

	VisitDate time.Time `gorm:"not null" json:"visit_date"`

	CreatedAt time.Time `json:"date_created"`
	UpdatedAt time.Time `json:"updated_at"`
}
