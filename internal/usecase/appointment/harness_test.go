package appointment

import (
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/audit"
	"github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment/appointmenttest"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

type discardSink struct{}

func (discardSink) Log(actorID *string, action string, entity string, entityID *string, metadata any) error {
	return nil
}

func newHarness() (*appointmenttest.MemRepo, *audit.Dispatcher) {
	return appointmenttest.NewMemRepo(), audit.NewDispatcher(discardSink{})
}

// seedBooking plants a patient, a doctor and one free future slot.
func seedBooking(repo *appointmenttest.MemRepo) (patientID, doctorID, scheduleID string) {
	repo.AddPatient(models.Patient{ID: "P001", FirstName: "Ana"})
	repo.AddDoctor(models.Doctor{ID: "D001", FirstName: "Marta"})
	repo.AddSchedule(models.Schedule{
		ID:          "SC001",
		DoctorID:    "D001",
		StartTime:   time.Now().Add(48 * time.Hour),
		DurationMin: 60,
		IsAvailable: true,
	})
	return "P001", "D001", "SC001"
}
