package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WeeklyTemplate maps weekday names to hour ranges, e.g.
// {"Monday": "9-17", "Tuesday": "9-12,14-17"}. Stored as a JSON column.
type WeeklyTemplate map[string]string

func (t WeeklyTemplate) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *WeeklyTemplate) Scan(value any) error {
	if value == nil {
		*t = WeeklyTemplate{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for WeeklyTemplate: %T", value)
	}

	return json.Unmarshal(data, t)
}

type Doctor struct {
	ID string `gorm:"primaryKey;size:10" json:"id"`

	UserID string `gorm:"size:10;index" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`

	DepartmentID string     `gorm:"size:10;index" json:"department_id"`
	Department   Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"department"`

	Availability WeeklyTemplate `gorm:"type:jsonb" json:"availability"`
	Phone        string         `gorm:"size:20" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
