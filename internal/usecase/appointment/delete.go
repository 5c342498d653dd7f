package appointment

import (
	"context"

	"github.com/CareMeshHealth/hospital-scheduler/internal/audit"
	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute hard-deletes an appointment. The referenced slot is freed
// unconditionally first, whatever the appointment status.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID string,
) error {

	err := uc.repo.WithTx(ctx, func(r domain.Repository) error {

		ap, err := r.GetAppointment(ctx, appointmentID)
		if err != nil {
			return httperr.NotFoundErr("appointment_not_found")
		}

		if sched, err := r.GetScheduleForUpdate(ctx, ap.ScheduleID); err == nil {
			if err := r.SetScheduleAvailability(ctx, sched.ID, true); err != nil {
				return err
			}
		}

		return r.DeleteAppointment(ctx, ap.ID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
