// Package appointmenttest provides an in-memory scheduling repository for
// use-case tests. Transactions take a single lock for their whole duration
// and roll back to a snapshot on error, which models the serialization the
// row locks give the real repository.
package appointmenttest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	domain "github.com/CareMeshHealth/hospital-scheduler/internal/domain/appointment"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
	"github.com/CareMeshHealth/hospital-scheduler/internal/sequence"
)

var ErrNotFound = errors.New("record not found")

type state struct {
	patients     map[string]models.Patient
	doctors      map[string]models.Doctor
	schedules    map[string]models.Schedule
	appointments map[string]models.Appointment
	seq          map[string]int64
}

func newState() *state {
	return &state{
		patients:     map[string]models.Patient{},
		doctors:      map[string]models.Doctor{},
		schedules:    map[string]models.Schedule{},
		appointments: map[string]models.Appointment{},
		seq:          map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.patients {
		c.patients[k] = v
	}
	for k, v := range s.doctors {
		c.doctors[k] = v
	}
	for k, v := range s.schedules {
		c.schedules[k] = v
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	return c
}

// MemRepo implements the scheduling Repository against process memory.
type MemRepo struct {
	mu sync.Mutex
	st *state
}

var _ domain.Repository = (*MemRepo)(nil)

func NewMemRepo() *MemRepo {
	return &MemRepo{st: newState()}
}

// ===============================
// Seeding / inspection
// ===============================

func (m *MemRepo) AddPatient(p models.Patient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.patients[p.ID] = p
}

func (m *MemRepo) AddDoctor(d models.Doctor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.doctors[d.ID] = d
}

func (m *MemRepo) AddSchedule(s models.Schedule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.schedules[s.ID] = s
}

func (m *MemRepo) AddAppointment(a models.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.appointments[a.ID] = a
}

// Schedule returns a stored slot by id, or false.
func (m *MemRepo) Schedule(id string) (models.Schedule, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.st.schedules[id]
	return s, ok
}

// Appointment returns a stored appointment by id, or false.
func (m *MemRepo) Appointment(id string) (models.Appointment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.st.appointments[id]
	return a, ok
}

// Doctor returns a stored doctor by id, or false.
func (m *MemRepo) Doctor(id string) (models.Doctor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.st.doctors[id]
	return d, ok
}

// Schedules returns all stored slots.
func (m *MemRepo) Schedules() []models.Schedule {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Schedule, 0, len(m.st.schedules))
	for _, s := range m.st.schedules {
		out = append(out, s)
	}
	return out
}

// ===============================
// Repository
// ===============================

func (m *MemRepo) WithTx(ctx context.Context, fn func(domain.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.st.clone()
	if err := fn(&txRepo{st: m.st}); err != nil {
		m.st = snapshot
		return err
	}
	return nil
}

func (m *MemRepo) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).GetPatient(ctx, id)
}

func (m *MemRepo) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).GetDoctor(ctx, id)
}

func (m *MemRepo) SaveDoctor(ctx context.Context, d *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).SaveDoctor(ctx, d)
}

func (m *MemRepo) GetScheduleForUpdate(ctx context.Context, id string) (*models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).GetScheduleForUpdate(ctx, id)
}

func (m *MemRepo) SetScheduleAvailability(ctx context.Context, id string, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).SetScheduleAvailability(ctx, id, available)
}

func (m *MemRepo) CreateSchedule(ctx context.Context, s *models.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).CreateSchedule(ctx, s)
}

func (m *MemRepo) ListFutureSchedulesForUpdate(ctx context.Context, doctorID string, from time.Time) ([]models.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).ListFutureSchedulesForUpdate(ctx, doctorID, from)
}

func (m *MemRepo) BookedScheduleIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).BookedScheduleIDs(ctx, ids)
}

func (m *MemRepo) DeleteSchedules(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).DeleteSchedules(ctx, ids)
}

func (m *MemRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).GetAppointment(ctx, id)
}

func (m *MemRepo) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).CreateAppointment(ctx, a)
}

func (m *MemRepo) UpdateAppointment(ctx context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).UpdateAppointment(ctx, a)
}

func (m *MemRepo) DeleteAppointment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).DeleteAppointment(ctx, id)
}

func (m *MemRepo) NextCode(ctx context.Context, entity string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&txRepo{st: m.st}).NextCode(ctx, entity)
}

// txRepo is the view handed to WithTx callbacks. The surrounding MemRepo
// lock is already held, so it never locks.
type txRepo struct {
	st *state
}

var _ domain.Repository = (*txRepo)(nil)

func (t *txRepo) WithTx(ctx context.Context, fn func(domain.Repository) error) error {
	return fn(t)
}

func (t *txRepo) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	p, ok := t.st.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (t *txRepo) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	d, ok := t.st.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (t *txRepo) SaveDoctor(ctx context.Context, d *models.Doctor) error {
	t.st.doctors[d.ID] = *d
	return nil
}

func (t *txRepo) GetScheduleForUpdate(ctx context.Context, id string) (*models.Schedule, error) {
	s, ok := t.st.schedules[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (t *txRepo) SetScheduleAvailability(ctx context.Context, id string, available bool) error {
	s, ok := t.st.schedules[id]
	if !ok {
		return ErrNotFound
	}
	s.IsAvailable = available
	t.st.schedules[id] = s
	return nil
}

func (t *txRepo) CreateSchedule(ctx context.Context, s *models.Schedule) error {
	t.st.schedules[s.ID] = *s
	return nil
}

func (t *txRepo) ListFutureSchedulesForUpdate(ctx context.Context, doctorID string, from time.Time) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, s := range t.st.schedules {
		if s.DoctorID == doctorID && !s.StartTime.Before(from) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (t *txRepo) BookedScheduleIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	booked := map[string]bool{}
	for _, a := range t.st.appointments {
		if a.Status != string(domain.StatusCancelled) && want[a.ScheduleID] {
			booked[a.ScheduleID] = true
		}
	}
	return booked, nil
}

func (t *txRepo) DeleteSchedules(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(t.st.schedules, id)
	}
	return nil
}

func (t *txRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	a, ok := t.st.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (t *txRepo) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	t.st.appointments[a.ID] = *a
	return nil
}

func (t *txRepo) UpdateAppointment(ctx context.Context, a *models.Appointment) error {
	if _, ok := t.st.appointments[a.ID]; !ok {
		return ErrNotFound
	}
	t.st.appointments[a.ID] = *a
	return nil
}

func (t *txRepo) DeleteAppointment(ctx context.Context, id string) error {
	delete(t.st.appointments, id)
	return nil
}

func (t *txRepo) NextCode(ctx context.Context, entity string) (string, error) {
	prefix, ok := sequence.Prefix(entity)
	if !ok {
		return "", errors.New("unknown sequence entity")
	}
	t.st.seq[entity]++
	return sequence.Format(prefix, t.st.seq[entity]), nil
}
