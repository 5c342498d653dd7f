package appointment

import (
	"context"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

type Repository interface {
	// WithTx runs fn against a repository bound to one transaction. fn
	// returning an error rolls everything back; otherwise the transaction
	// commits.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// -------- Patients / Doctors --------
	GetPatient(
		ctx context.Context,
		id string,
	) (*models.Patient, error)

	GetDoctor(
		ctx context.Context,
		id string,
	) (*models.Doctor, error)

	SaveDoctor(
		ctx context.Context,
		doctor *models.Doctor,
	) error

	// -------- Slots --------
	GetScheduleForUpdate(
		ctx context.Context,
		id string,
	) (*models.Schedule, error)

	SetScheduleAvailability(
		ctx context.Context,
		id string,
		available bool,
	) error

	CreateSchedule(
		ctx context.Context,
		sched *models.Schedule,
	) error

	// ListFutureSchedulesForUpdate locks every slot of a doctor starting
	// at or after from.
	ListFutureSchedulesForUpdate(
		ctx context.Context,
		doctorID string,
		from time.Time,
	) ([]models.Schedule, error)

	// BookedScheduleIDs reports which of the given slots are referenced by
	// a non-Cancelled appointment.
	BookedScheduleIDs(
		ctx context.Context,
		scheduleIDs []string,
	) (map[string]bool, error)

	DeleteSchedules(
		ctx context.Context,
		ids []string,
	) error

	// -------- Appointments --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id string,
	) error

	// -------- Display codes --------
	NextCode(
		ctx context.Context,
		entity string,
	) (string, error)
}
