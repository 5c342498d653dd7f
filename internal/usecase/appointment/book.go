package appointment

import (
	"context"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/audit"
	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	"github.com/CareMeshHealth/hospital-scheduler/internal/sequence"
)

// ======================================================
// USE CASE — book a slot
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute claims a free slot for a patient. The slot row is re-read under a
// write lock inside the transaction, so two bookers racing for the same slot
// serialize: the second sees is_available == false and gets a conflict.
// Either both the availability flip and the appointment row commit, or
// neither does.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	patientID string,
	scheduleID string,
) (*models.Appointment, error) {

	var created *models.Appointment

	err := uc.repo.WithTx(ctx, func(r domain.Repository) error {

		if _, err := r.GetPatient(ctx, patientID); err != nil {
			return httperr.NotFoundErr("patient_not_found")
		}

		sched, err := r.GetScheduleForUpdate(ctx, scheduleID)
		if err != nil {
			return httperr.NotFoundErr("schedule_not_found")
		}

		if !sched.IsAvailable {
			return httperr.Conflict("slot_unavailable")
		}

		if sched.StartTime.Before(time.Now()) {
			return httperr.Validation("slot_in_past")
		}

		id, err := r.NextCode(ctx, sequence.Appointments)
		if err != nil {
			return err
		}

		if err := r.SetScheduleAvailability(ctx, sched.ID, false); err != nil {
			return err
		}

		ap := &models.Appointment{
			ID:         id,
			PatientID:  patientID,
			DoctorID:   sched.DoctorID,
			ScheduleID: sched.ID,
			Status:     string(domain.InitialStatus()),
		}

		if err := r.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &created.PatientID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &created.ID,
		Metadata: map[string]any{"schedule_id": created.ScheduleID},
	})

	return created, nil
}
