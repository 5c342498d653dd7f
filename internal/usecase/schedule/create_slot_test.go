package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

func TestCreateSlot(t *testing.T) {
	repo, dispatcher := newHarness()
	repo.AddDoctor(models.Doctor{ID: "D001", FirstName: "Marta"})

	uc := NewCreateSlot(repo, dispatcher)

	start := time.Now().Add(24 * time.Hour)
	sched, err := uc.Execute(context.Background(), "D001", start, 30)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if sched.ID != "SC001" {
		t.Fatalf("id = %s, want SC001", sched.ID)
	}
	if !sched.IsAvailable {
		t.Fatal("new slot must be available")
	}
	if sched.DurationMin != 30 {
		t.Fatalf("duration = %d, want 30", sched.DurationMin)
	}

	stored, ok := repo.Schedule(sched.ID)
	if !ok {
		t.Fatal("slot not persisted")
	}
	if !stored.StartTime.Equal(start) {
		t.Fatalf("start = %v, want %v", stored.StartTime, start)
	}
}

func TestCreateSlotInvalidDuration(t *testing.T) {
	repo, dispatcher := newHarness()
	repo.AddDoctor(models.Doctor{ID: "D001", FirstName: "Marta"})

	uc := NewCreateSlot(repo, dispatcher)

	for _, d := range []int{0, -15} {
		_, err := uc.Execute(context.Background(), "D001", time.Now().Add(time.Hour), d)
		if !httperr.IsBusiness(err, "invalid_duration") {
			t.Fatalf("duration %d: expected invalid_duration, got %v", d, err)
		}
	}
}

func TestCreateSlotDoctorNotFound(t *testing.T) {
	repo, dispatcher := newHarness()

	uc := NewCreateSlot(repo, dispatcher)

	_, err := uc.Execute(context.Background(), "D999", time.Now().Add(time.Hour), 60)
	if !httperr.IsBusiness(err, "doctor_not_found") {
		t.Fatalf("expected doctor_not_found, got %v", err)
	}
}
