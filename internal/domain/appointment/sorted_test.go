package appointment

import (
	"testing"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

func slotAt(start time.Time) *models.Schedule {
	return &models.Schedule{StartTime: start, DurationMin: 60}
}

func TestPartition(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	appointments := []models.Appointment{
		{ID: "A001", Schedule: slotAt(now.Add(48 * time.Hour))},
		{ID: "A002", Schedule: slotAt(now.Add(-24 * time.Hour))},
		{ID: "A003", Schedule: slotAt(now.Add(2 * time.Hour))},
		{ID: "A004", Schedule: slotAt(now.Add(-72 * time.Hour))},
		{ID: "A005", Schedule: nil}, // dangling slot reference
	}

	view := Partition(appointments, now)

	wantUpcoming := []string{"A003", "A001"}
	if len(view.Upcoming) != len(wantUpcoming) {
		t.Fatalf("upcoming: got %d entries, want %d", len(view.Upcoming), len(wantUpcoming))
	}
	for i, id := range wantUpcoming {
		if view.Upcoming[i].ID != id {
			t.Fatalf("upcoming[%d] = %s, want %s", i, view.Upcoming[i].ID, id)
		}
	}

	wantHistory := []string{"A002", "A004"}
	if len(view.History) != len(wantHistory) {
		t.Fatalf("history: got %d entries, want %d", len(view.History), len(wantHistory))
	}
	for i, id := range wantHistory {
		if view.History[i].ID != id {
			t.Fatalf("history[%d] = %s, want %s", i, view.History[i].ID, id)
		}
	}
}

func TestPartitionBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// A slot starting exactly now belongs to history, not upcoming.
	view := Partition([]models.Appointment{{ID: "A001", Schedule: slotAt(now)}}, now)

	if len(view.Upcoming) != 0 || len(view.History) != 1 {
		t.Fatalf("slot at now: upcoming=%d history=%d", len(view.Upcoming), len(view.History))
	}
}

func TestPartitionEmpty(t *testing.T) {
	view := Partition(nil, time.Now())
	if view.Upcoming == nil || view.History == nil {
		t.Fatal("empty input must yield empty slices, not nil")
	}
}
