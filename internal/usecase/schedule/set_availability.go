package schedule

import (
	"context"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/audit"
	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/domain/availability"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	"github.com/CareMeshHealth/hospital-scheduler/internal/sequence"
)

// ======================================================
// USE CASE — set weekly availability, regenerate slots
// ======================================================

type SetAvailability struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetAvailability(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetAvailability {
	return &SetAvailability{
		repo:  repo,
		audit: audit,
	}
}

type SetAvailabilityResult struct {
	Created   int `json:"created"`
	Preserved int `json:"preserved"`
	Removed   int `json:"removed"`
}

// Execute stores the doctor's weekly template and regenerates the 30-day
// slot horizon in one transaction. Future slots holding a non-Cancelled
// appointment are never deleted; a generated slot colliding with one of
// them is skipped. Only free future slots are replaced, past slots are
// untouched history.
func (uc *SetAvailability) Execute(
	ctx context.Context,
	doctorID string,
	template models.WeeklyTemplate,
) (*SetAvailabilityResult, error) {

	slots, err := availability.Generate(template, time.Now())
	if err != nil {
		return nil, err
	}

	from := midnight(time.Now())
	var result SetAvailabilityResult

	err = uc.repo.WithTx(ctx, func(r domain.Repository) error {

		doctor, err := r.GetDoctor(ctx, doctorID)
		if err != nil {
			return httperr.NotFoundErr("doctor_not_found")
		}

		existing, err := r.ListFutureSchedulesForUpdate(ctx, doctorID, from)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(existing))
		for _, s := range existing {
			ids = append(ids, s.ID)
		}

		booked, err := r.BookedScheduleIDs(ctx, ids)
		if err != nil {
			return err
		}

		var toDelete []string
		// Keyed on Unix seconds: rows come back from the database in a
		// different location than freshly generated times.
		preservedStarts := make(map[int64]bool)
		for _, s := range existing {
			if booked[s.ID] {
				preservedStarts[s.StartTime.Unix()] = true
				continue
			}
			toDelete = append(toDelete, s.ID)
		}

		if err := r.DeleteSchedules(ctx, toDelete); err != nil {
			return err
		}

		for _, slot := range slots {
			if preservedStarts[slot.StartTime.Unix()] {
				continue
			}

			id, err := r.NextCode(ctx, sequence.Schedules)
			if err != nil {
				return err
			}

			sched := &models.Schedule{
				ID:          id,
				DoctorID:    doctorID,
				StartTime:   slot.StartTime,
				DurationMin: slot.DurationMin,
				IsAvailable: true,
			}
			if err := r.CreateSchedule(ctx, sched); err != nil {
				return err
			}
			result.Created++
		}

		doctor.Availability = template
		if err := r.SaveDoctor(ctx, doctor); err != nil {
			return err
		}

		result.Preserved = len(preservedStarts)
		result.Removed = len(toDelete)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "availability_regenerated",
		Entity:   "doctor",
		EntityID: &doctorID,
		Metadata: result,
	})

	return &result, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
