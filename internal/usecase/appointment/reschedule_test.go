package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment/appointmenttest"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

func seedSecondSlot(repo *appointmenttest.MemRepo, doctorID string) string {
	repo.AddSchedule(models.Schedule{
		ID:          "SC002",
		DoctorID:    doctorID,
		StartTime:   time.Now().Add(72 * time.Hour),
		DurationMin: 60,
		IsAvailable: true,
	})
	return "SC002"
}

func TestRescheduleAppointment(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, doctorID, oldSlot := seedBooking(repo)
	newSlot := seedSecondSlot(repo, doctorID)

	book := NewBookAppointment(repo, dispatcher)
	reschedule := NewRescheduleAppointment(repo, dispatcher)

	ap, err := book.Execute(context.Background(), patientID, oldSlot)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	moved, err := reschedule.Execute(context.Background(), ap.ID, newSlot)
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.ScheduleID != newSlot {
		t.Fatalf("schedule id = %s, want %s", moved.ScheduleID, newSlot)
	}

	// Atomic swap: old slot freed, new slot claimed.
	old, _ := repo.Schedule(oldSlot)
	if !old.IsAvailable {
		t.Fatal("old slot not freed")
	}
	next, _ := repo.Schedule(newSlot)
	if next.IsAvailable {
		t.Fatal("new slot not claimed")
	}
}

func TestRescheduleToTakenSlot(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, doctorID, oldSlot := seedBooking(repo)
	newSlot := seedSecondSlot(repo, doctorID)
	repo.AddPatient(models.Patient{ID: "P002", FirstName: "Bea"})

	book := NewBookAppointment(repo, dispatcher)
	reschedule := NewRescheduleAppointment(repo, dispatcher)

	ap, _ := book.Execute(context.Background(), patientID, oldSlot)
	if _, err := book.Execute(context.Background(), "P002", newSlot); err != nil {
		t.Fatalf("rival booking: %v", err)
	}

	_, err := reschedule.Execute(context.Background(), ap.ID, newSlot)
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}

	// The failed move must leave both sides untouched.
	kept, _ := repo.Appointment(ap.ID)
	if kept.ScheduleID != oldSlot {
		t.Fatalf("appointment moved to %s on failure", kept.ScheduleID)
	}
	old, _ := repo.Schedule(oldSlot)
	if old.IsAvailable {
		t.Fatal("failed reschedule freed the old slot")
	}
}

func TestRescheduleSameSlot(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, oldSlot := seedBooking(repo)

	book := NewBookAppointment(repo, dispatcher)
	reschedule := NewRescheduleAppointment(repo, dispatcher)

	ap, _ := book.Execute(context.Background(), patientID, oldSlot)

	_, err := reschedule.Execute(context.Background(), ap.ID, oldSlot)
	if !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestRescheduleDoctorMismatch(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, oldSlot := seedBooking(repo)
	repo.AddDoctor(models.Doctor{ID: "D002", FirstName: "Rui"})
	repo.AddSchedule(models.Schedule{
		ID:          "SC002",
		DoctorID:    "D002",
		StartTime:   time.Now().Add(72 * time.Hour),
		DurationMin: 60,
		IsAvailable: true,
	})

	book := NewBookAppointment(repo, dispatcher)
	reschedule := NewRescheduleAppointment(repo, dispatcher)

	ap, _ := book.Execute(context.Background(), patientID, oldSlot)

	_, err := reschedule.Execute(context.Background(), ap.ID, "SC002")
	if !httperr.IsBusiness(err, "doctor_mismatch") {
		t.Fatalf("expected doctor_mismatch, got %v", err)
	}
}

func TestRescheduleTerminalAppointment(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, doctorID, oldSlot := seedBooking(repo)
	newSlot := seedSecondSlot(repo, doctorID)

	book := NewBookAppointment(repo, dispatcher)
	cancel := NewCancelAppointment(repo, dispatcher)
	reschedule := NewRescheduleAppointment(repo, dispatcher)

	ap, _ := book.Execute(context.Background(), patientID, oldSlot)
	if _, err := cancel.Execute(context.Background(), ap.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err := reschedule.Execute(context.Background(), ap.ID, newSlot)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestRescheduleTargetMissing(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, oldSlot := seedBooking(repo)

	book := NewBookAppointment(repo, dispatcher)
	reschedule := NewRescheduleAppointment(repo, dispatcher)

	ap, _ := book.Execute(context.Background(), patientID, oldSlot)

	_, err := reschedule.Execute(context.Background(), ap.ID, "SC999")
	if !httperr.IsBusiness(err, "schedule_not_found") {
		t.Fatalf("expected schedule_not_found, got %v", err)
	}
}

func TestRescheduleSurvivesDanglingOldSlot(t *testing.T) {
	repo, dispatcher := newHarness()
	_, doctorID, _ := seedBooking(repo)
	newSlot := seedSecondSlot(repo, doctorID)

	// Appointment whose original slot row no longer exists.
	repo.AddAppointment(models.Appointment{
		ID:         "A001",
		PatientID:  "P001",
		DoctorID:   doctorID,
		ScheduleID: "SC900",
		Status:     string(domain.StatusScheduled),
	})

	reschedule := NewRescheduleAppointment(repo, dispatcher)

	moved, err := reschedule.Execute(context.Background(), "A001", newSlot)
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.ScheduleID != newSlot {
		t.Fatalf("schedule id = %s, want %s", moved.ScheduleID, newSlot)
	}
}
