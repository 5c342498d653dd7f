package sequence

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

// Entity names with their display-code prefixes.
const (
	Users          = "users"
	Patients       = "patients"
	Doctors        = "doctors"
	Departments    = "departments"
	Schedules      = "schedules"
	Appointments   = "appointments"
	MedicalRecords = "medical_records"
)

var prefixes = map[string]string{
	Users:          "U",
	Patients:       "P",
	Doctors:        "D",
	Departments:    "DEP",
	Schedules:      "SC",
	Appointments:   "A",
	MedicalRecords: "M",
}

// Next allocates the next display code for an entity. It must run inside the
// same transaction as the insert using the code: the counter row is locked
// FOR UPDATE, serializing concurrent allocators. Seeding goes through an
// ON CONFLICT DO NOTHING upsert, so two transactions racing on the very
// first allocation both land on the locked read instead of fighting over
// the insert.
func Next(tx *gorm.DB, entity string) (string, error) {
	prefix, ok := prefixes[entity]
	if !ok {
		return "", fmt.Errorf("unknown sequence entity %q", entity)
	}

	seed := models.Sequence{Name: entity, Value: 0}
	if err := tx.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error; err != nil {
		return "", err
	}

	var seq models.Sequence
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", entity).
		First(&seq).Error; err != nil {
		return "", err
	}

	seq.Value++
	if err := tx.Save(&seq).Error; err != nil {
		return "", err
	}

	return Format(prefix, seq.Value), nil
}

// Format renders a display code, zero-padded to three digits. Values past
// 999 simply grow wider.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// Prefix returns the display-code prefix for an entity.
func Prefix(entity string) (string, bool) {
	p, ok := prefixes[entity]
	return p, ok
}
