package appointment

import (
	"testing"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
)

func TestParse(t *testing.T) {
	for _, valid := range []string{"Scheduled", "Completed", "Cancelled", "No-Show"} {
		got, err := Parse(valid)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", valid, err)
		}
		if string(got) != valid {
			t.Fatalf("Parse(%q) = %q", valid, got)
		}
	}

	for _, invalid := range []string{"", "scheduled", "Done", "NoShow"} {
		if _, err := Parse(invalid); !httperr.IsBusiness(err, "invalid_status") {
			t.Fatalf("Parse(%q): expected invalid_status, got %v", invalid, err)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if StatusScheduled.IsTerminal() {
		t.Fatal("Scheduled must not be terminal")
	}
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		if !s.IsTerminal() {
			t.Fatalf("%s must be terminal", s)
		}
	}
}

func TestCanCancel(t *testing.T) {
	if err := CanCancel(StatusScheduled); err != nil {
		t.Fatalf("cancel from Scheduled: %v", err)
	}
	if err := CanCancel(StatusCancelled); !httperr.IsBusiness(err, "already_cancelled") {
		t.Fatalf("cancel from Cancelled: expected already_cancelled, got %v", err)
	}
	for _, s := range []Status{StatusCompleted, StatusNoShow} {
		if err := CanCancel(s); !httperr.IsBusiness(err, "invalid_state") {
			t.Fatalf("cancel from %s: expected invalid_state, got %v", s, err)
		}
	}
}

func TestCanSetStatus(t *testing.T) {
	if err := CanSetStatus(StatusScheduled); err != nil {
		t.Fatalf("set status from Scheduled: %v", err)
	}
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		if err := CanSetStatus(s); !httperr.IsBusiness(err, "invalid_state") {
			t.Fatalf("set status from %s: expected invalid_state, got %v", s, err)
		}
	}
}

func TestCanReschedule(t *testing.T) {
	if err := CanReschedule(StatusScheduled); err != nil {
		t.Fatalf("reschedule from Scheduled: %v", err)
	}
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		if err := CanReschedule(s); !httperr.IsBusiness(err, "invalid_state") {
			t.Fatalf("reschedule from %s: expected invalid_state, got %v", s, err)
		}
	}
}
