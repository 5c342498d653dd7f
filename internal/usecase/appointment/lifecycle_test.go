package appointment

import (
	"context"
	"testing"

	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

func TestDeleteAppointmentFreesSlot(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, scheduleID := seedBooking(repo)

	book := NewBookAppointment(repo, dispatcher)
	del := NewDeleteAppointment(repo, dispatcher)

	ap, err := book.Execute(context.Background(), patientID, scheduleID)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if err := del.Execute(context.Background(), ap.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, ok := repo.Appointment(ap.ID); ok {
		t.Fatal("appointment row still present")
	}
	sched, _ := repo.Schedule(scheduleID)
	if !sched.IsAvailable {
		t.Fatal("delete must free the slot")
	}
}

func TestDeleteAppointmentNotFound(t *testing.T) {
	repo, dispatcher := newHarness()

	del := NewDeleteAppointment(repo, dispatcher)

	err := del.Execute(context.Background(), "A999")
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestSetStatusCompleted(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, scheduleID := seedBooking(repo)

	book := NewBookAppointment(repo, dispatcher)
	setStatus := NewSetAppointmentStatus(repo, dispatcher)

	ap, _ := book.Execute(context.Background(), patientID, scheduleID)

	updated, err := setStatus.Execute(context.Background(), ap.ID, "Completed")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != string(domain.StatusCompleted) {
		t.Fatalf("status = %s, want Completed", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatal("CompletedAt not set")
	}

	// Status-only update: the slot stays claimed.
	sched, _ := repo.Schedule(scheduleID)
	if sched.IsAvailable {
		t.Fatal("status update must not touch slot availability")
	}
}

func TestSetStatusNoShow(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, scheduleID := seedBooking(repo)

	book := NewBookAppointment(repo, dispatcher)
	setStatus := NewSetAppointmentStatus(repo, dispatcher)

	ap, _ := book.Execute(context.Background(), patientID, scheduleID)

	updated, err := setStatus.Execute(context.Background(), ap.ID, "No-Show")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != string(domain.StatusNoShow) {
		t.Fatalf("status = %s, want No-Show", updated.Status)
	}
}

func TestSetStatusRejectsCancelled(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, scheduleID := seedBooking(repo)

	book := NewBookAppointment(repo, dispatcher)
	setStatus := NewSetAppointmentStatus(repo, dispatcher)

	ap, _ := book.Execute(context.Background(), patientID, scheduleID)

	_, err := setStatus.Execute(context.Background(), ap.ID, "Cancelled")
	if !httperr.IsBusiness(err, "use_cancel_operation") {
		t.Fatalf("expected use_cancel_operation, got %v", err)
	}
}

func TestSetStatusTerminalAppointment(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, scheduleID := seedBooking(repo)

	book := NewBookAppointment(repo, dispatcher)
	cancel := NewCancelAppointment(repo, dispatcher)
	setStatus := NewSetAppointmentStatus(repo, dispatcher)

	ap, _ := book.Execute(context.Background(), patientID, scheduleID)
	if _, err := cancel.Execute(context.Background(), ap.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err := setStatus.Execute(context.Background(), ap.ID, "Completed")
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("set status on cancelled: expected invalid_state, got %v", err)
	}

	done, _ := setStatus.Execute(context.Background(), ap.ID, "No-Show")
	if done != nil {
		t.Fatal("terminal appointment must not be updatable")
	}
}

func TestSetStatusKeepsSlotExclusive(t *testing.T) {
	repo, dispatcher := newHarness()
	patientID, _, scheduleID := seedBooking(repo)
	repo.AddPatient(models.Patient{ID: "P002", FirstName: "Bea"})

	book := NewBookAppointment(repo, dispatcher)
	cancel := NewCancelAppointment(repo, dispatcher)
	setStatus := NewSetAppointmentStatus(repo, dispatcher)

	// First booking is cancelled, the freed slot is rebooked by someone
	// else, then an admin tries to mark the old appointment Completed.
	first, _ := book.Execute(context.Background(), patientID, scheduleID)
	if _, err := cancel.Execute(context.Background(), first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	second, err := book.Execute(context.Background(), "P002", scheduleID)
	if err != nil {
		t.Fatalf("rebook: %v", err)
	}

	_, err = setStatus.Execute(context.Background(), first.ID, "Completed")
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	// At most one non-Cancelled appointment may reference the slot.
	var live int
	for _, id := range []string{first.ID, second.ID} {
		if ap, ok := repo.Appointment(id); ok && ap.ScheduleID == scheduleID &&
			ap.Status != string(domain.StatusCancelled) {
			live++
		}
	}
	if live != 1 {
		t.Fatalf("%d non-Cancelled appointments reference slot %s, want 1", live, scheduleID)
	}
}

func TestSetStatusInvalid(t *testing.T) {
	repo, dispatcher := newHarness()

	setStatus := NewSetAppointmentStatus(repo, dispatcher)

	_, err := setStatus.Execute(context.Background(), "A001", "Done")
	if !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}
}
