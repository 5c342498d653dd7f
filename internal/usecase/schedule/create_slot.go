package schedule

import (
	"context"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/audit"
	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	"github.com/CareMeshHealth/hospital-scheduler/internal/sequence"
)

type CreateSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateSlot {
	return &CreateSlot{
		repo:  repo,
		audit: audit,
	}
}

// Execute creates one ad-hoc slot for a doctor. No overlap check against
// neighbouring slots is performed.
func (uc *CreateSlot) Execute(
	ctx context.Context,
	doctorID string,
	startTime time.Time,
	durationMin int,
) (*models.Schedule, error) {

	if durationMin <= 0 {
		return nil, httperr.Validation("invalid_duration")
	}

	var created *models.Schedule

	err := uc.repo.WithTx(ctx, func(r domain.Repository) error {

		if _, err := r.GetDoctor(ctx, doctorID); err != nil {
			return httperr.NotFoundErr("doctor_not_found")
		}

		id, err := r.NextCode(ctx, sequence.Schedules)
		if err != nil {
			return err
		}

		sched := &models.Schedule{
			ID:          id,
			DoctorID:    doctorID,
			StartTime:   startTime,
			DurationMin: durationMin,
			IsAvailable: true,
		}
		if err := r.CreateSchedule(ctx, sched); err != nil {
			return err
		}

		created = sched
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "schedule_created",
		Entity:   "schedule",
		EntityID: &created.ID,
	})

	return created, nil
}
