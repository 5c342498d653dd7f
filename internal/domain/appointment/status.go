package appointment

import "github.com/CareMeshHealth/hospital-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusNoShow    Status = "No-Show"
)

// Parse validates a status string coming in over the wire.
func Parse(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	}
	return "", httperr.Validation("invalid_status")
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// ===============================
// Transitions
// ===============================

// Only Scheduled appointments may move; Completed, Cancelled and No-Show
// are terminal.

func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.Conflict("already_cancelled")
	}
	if current != StatusScheduled {
		return httperr.Conflict("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if current != StatusScheduled {
		return httperr.Conflict("invalid_state")
	}
	return nil
}

// CanSetStatus guards the administrative status update. A terminal
// appointment must stay terminal: reviving a Cancelled one whose freed slot
// was rebooked would put two live appointments on the same slot.
func CanSetStatus(current Status) error {
	if current != StatusScheduled {
		return httperr.Conflict("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
