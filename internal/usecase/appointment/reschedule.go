package appointment

import (
	"context"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/audit"
	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute moves a Scheduled appointment to a different free slot of the same
// doctor. Both slot rows are locked in ascending id order so two reschedules
// swapping a pair of slots cannot deadlock. Old-slot release, new-slot claim
// and the appointment update commit as one unit.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	appointmentID string,
	newScheduleID string,
) (*models.Appointment, error) {

	var moved *models.Appointment

	err := uc.repo.WithTx(ctx, func(r domain.Repository) error {

		ap, err := r.GetAppointment(ctx, appointmentID)
		if err != nil {
			return httperr.NotFoundErr("appointment_not_found")
		}

		if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
			return err
		}

		if newScheduleID == ap.ScheduleID {
			return httperr.Conflict("slot_unavailable")
		}

		oldSched, newSched, err := lockSlotPair(ctx, r, ap.ScheduleID, newScheduleID)
		if err != nil {
			return err
		}

		if !newSched.IsAvailable {
			return httperr.Conflict("slot_unavailable")
		}
		if newSched.StartTime.Before(time.Now()) {
			return httperr.Validation("slot_in_past")
		}
		if newSched.DoctorID != ap.DoctorID {
			return httperr.Validation("doctor_mismatch")
		}

		if oldSched != nil {
			if err := r.SetScheduleAvailability(ctx, oldSched.ID, true); err != nil {
				return err
			}
		}
		if err := r.SetScheduleAvailability(ctx, newSched.ID, false); err != nil {
			return err
		}

		ap.ScheduleID = newSched.ID
		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		moved = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &moved.PatientID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &moved.ID,
		Metadata: map[string]any{"new_schedule_id": moved.ScheduleID},
	})

	return moved, nil
}

// lockSlotPair locks the current and the target slot in canonical (id
// ascending) order. A dangling current slot is tolerated: the appointment
// can still move to a valid one. The target must exist.
func lockSlotPair(
	ctx context.Context,
	r domain.Repository,
	oldID string,
	newID string,
) (*models.Schedule, *models.Schedule, error) {

	firstID, secondID := oldID, newID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	locked := make(map[string]*models.Schedule, 2)
	for _, id := range []string{firstID, secondID} {
		sched, err := r.GetScheduleForUpdate(ctx, id)
		if err != nil {
			if id == newID {
				return nil, nil, httperr.NotFoundErr("schedule_not_found")
			}
			continue
		}
		locked[id] = sched
	}

	if locked[newID] == nil {
		return nil, nil, httperr.NotFoundErr("schedule_not_found")
	}

	return locked[oldID], locked[newID], nil
}
