package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	"github.com/CareMeshHealth/hospital-scheduler/internal/sequence"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *SchedulingGormRepository) WithTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Patients / Doctors
// --------------------------------------------------

func (r *SchedulingGormRepository) GetPatient(
	ctx context.Context,
	id string,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *SchedulingGormRepository) GetDoctor(
	ctx context.Context,
	id string,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *SchedulingGormRepository) SaveDoctor(
	ctx context.Context,
	doctor *models.Doctor,
) error {
	return r.db.WithContext(ctx).Save(doctor).Error
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *SchedulingGormRepository) GetScheduleForUpdate(
	ctx context.Context,
	id string,
) (*models.Schedule, error) {

	var sched models.Schedule
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sched, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

func (r *SchedulingGormRepository) SetScheduleAvailability(
	ctx context.Context,
	id string,
	available bool,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Schedule{}).
		Where("id = ?", id).
		Update("is_available", available).Error
}

func (r *SchedulingGormRepository) CreateSchedule(
	ctx context.Context,
	sched *models.Schedule,
) error {
	return r.db.WithContext(ctx).Create(sched).Error
}

func (r *SchedulingGormRepository) ListFutureSchedulesForUpdate(
	ctx context.Context,
	doctorID string,
	from time.Time,
) ([]models.Schedule, error) {

	var scheds []models.Schedule
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND start_time >= ?", doctorID, from).
		Order("id ASC").
		Find(&scheds).Error; err != nil {
		return nil, err
	}
	return scheds, nil
}

func (r *SchedulingGormRepository) BookedScheduleIDs(
	ctx context.Context,
	scheduleIDs []string,
) (map[string]bool, error) {

	booked := make(map[string]bool)
	if len(scheduleIDs) == 0 {
		return booked, nil
	}

	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("schedule_id IN ? AND status <> ?", scheduleIDs, string(domain.StatusCancelled)).
		Pluck("schedule_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		booked[id] = true
	}
	return booked, nil
}

func (r *SchedulingGormRepository) DeleteSchedules(
	ctx context.Context,
	ids []string,
) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Delete(&models.Schedule{}, "id IN ?", ids).Error
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *SchedulingGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Appointment{}, "id = ?", id).Error
}

// --------------------------------------------------
// Display codes
// --------------------------------------------------

func (r *SchedulingGormRepository) NextCode(
	ctx context.Context,
	entity string,
) (string, error) {
	return sequence.Next(r.db.WithContext(ctx), entity)
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
