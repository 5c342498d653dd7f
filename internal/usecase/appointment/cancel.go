package appointment

import (
	"context"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/audit"
	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels a Scheduled appointment and frees its slot in the same
// transaction. Elapsed appointments cannot be cancelled.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	var cancelled *models.Appointment

	err := uc.repo.WithTx(ctx, func(r domain.Repository) error {

		ap, err := r.GetAppointment(ctx, appointmentID)
		if err != nil {
			return httperr.NotFoundErr("appointment_not_found")
		}

		if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
			return err
		}

		sched, err := r.GetScheduleForUpdate(ctx, ap.ScheduleID)
		if err != nil {
			return httperr.NotFoundErr("schedule_not_found")
		}

		now := time.Now()
		if sched.StartTime.Before(now) {
			return httperr.Validation("appointment_elapsed")
		}

		ap.Status = string(domain.StatusCancelled)
		ap.CancelledAt = &now

		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		if err := r.SetScheduleAvailability(ctx, sched.ID, true); err != nil {
			return err
		}

		cancelled = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &cancelled.PatientID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &cancelled.ID,
	})

	return cancelled, nil
}
