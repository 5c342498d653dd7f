package appointment

import (
	"context"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/audit"
	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

type SetAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetAppointmentStatus {
	return &SetAppointmentStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute is the administrative status-only update used for retroactive
// Completed / No-Show marking. It never touches slot availability, so
// setting Cancelled this way is refused: only the cancel operation may
// release a slot. Only a Scheduled appointment may be updated; terminal
// ones stay terminal.
func (uc *SetAppointmentStatus) Execute(
	ctx context.Context,
	appointmentID string,
	status string,
) (*models.Appointment, error) {

	target, err := domain.Parse(status)
	if err != nil {
		return nil, err
	}
	if target == domain.StatusCancelled {
		return nil, httperr.Validation("use_cancel_operation")
	}

	var updated *models.Appointment

	err = uc.repo.WithTx(ctx, func(r domain.Repository) error {

		ap, err := r.GetAppointment(ctx, appointmentID)
		if err != nil {
			return httperr.NotFoundErr("appointment_not_found")
		}

		if err := domain.CanSetStatus(domain.Status(ap.Status)); err != nil {
			return err
		}

		ap.Status = string(target)
		if target == domain.StatusCompleted && ap.CompletedAt == nil {
			now := time.Now()
			ap.CompletedAt = &now
		}

		if err := r.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		updated = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_status_set",
		Entity:   "appointment",
		EntityID: &updated.ID,
		Metadata: map[string]any{"status": updated.Status},
	})

	return updated, nil
}
