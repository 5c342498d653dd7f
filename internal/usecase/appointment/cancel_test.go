package appointment

import (
	"context"
	"testing"
	"time"

	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

func TestCancelAppointment(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, scheduleID := seedBooking(repo)

	book := NewBookAppointment(repo, dispatcher)
	cancel := NewCancelAppointment(repo, dispatcher)

	ap, err := book.Execute(context.Background(), patientID, scheduleID)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	cancelled, err := cancel.Execute(context.Background(), ap.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if cancelled.Status != string(domain.StatusCancelled) {
		t.Fatalf("status = %s, want Cancelled", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatal("CancelledAt not set")
	}

	sched, _ := repo.Schedule(scheduleID)
	if !sched.IsAvailable {
		t.Fatal("cancel must free the slot")
	}
}

func TestCancelAppointmentTwice(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, scheduleID := seedBooking(repo)

	book := NewBookAppointment(repo, dispatcher)
	cancel := NewCancelAppointment(repo, dispatcher)

	ap, _ := book.Execute(context.Background(), patientID, scheduleID)
	if _, err := cancel.Execute(context.Background(), ap.ID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	_, err := cancel.Execute(context.Background(), ap.ID)
	if !httperr.IsBusiness(err, "already_cancelled") {
		t.Fatalf("second cancel: expected already_cancelled, got %v", err)
	}
}

func TestCancelAppointmentTerminalStates(t *testing.T) {
	repo, dispatcher := newHarness()
	_, doctorID, scheduleID := seedBooking(repo)

	cancel := NewCancelAppointment(repo, dispatcher)

	for _, status := range []domain.Status{domain.StatusCompleted, domain.StatusNoShow} {
		repo.AddAppointment(models.Appointment{
			ID:         "A900",
			PatientID:  "P001",
			DoctorID:   doctorID,
			ScheduleID: scheduleID,
			Status:     string(status),
		})

		_, err := cancel.Execute(context.Background(), "A900")
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Fatalf("cancel from %s: expected invalid_state, got %v", status, err)
		}
	}
}

func TestCancelAppointmentElapsed(t *testing.T) {
	repo, dispatcher := newHarness()
	_, doctorID, _ := seedBooking(repo)

	repo.AddSchedule(models.Schedule{
		ID:          "SC002",
		DoctorID:    doctorID,
		StartTime:   time.Now().Add(-time.Hour),
		DurationMin: 60,
		IsAvailable: false,
	})
	repo.AddAppointment(models.Appointment{
		ID:         "A001",
		PatientID:  "P001",
		DoctorID:   doctorID,
		ScheduleID: "SC002",
		Status:     string(domain.StatusScheduled),
	})

	cancel := NewCancelAppointment(repo, dispatcher)

	_, err := cancel.Execute(context.Background(), "A001")
	if !httperr.IsBusiness(err, "appointment_elapsed") {
		t.Fatalf("expected appointment_elapsed, got %v", err)
	}

	ap, _ := repo.Appointment("A001")
	if ap.Status != string(domain.StatusScheduled) {
		t.Fatalf("rejected cancel changed status to %s", ap.Status)
	}
}

func TestCancelAppointmentNotFound(t *testing.T) {
	repo, dispatcher := newHarness()

	cancel := NewCancelAppointment(repo, dispatcher)

	_, err := cancel.Execute(context.Background(), "A999")
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}
