package availability

import (
	"strconv"
	"strings"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
	"github.com/CareMeshHealth/hospital-scheduler/internal/models"
)

const (
	// HorizonDays is the rolling window materialized from a template.
	HorizonDays = 30
	// SlotMinutes is the fixed duration of every generated slot.
	SlotMinutes = 60
)

var weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// Block is a half-open hour range [Start, End) in 24h whole hours.
type Block struct {
	Start int
	End   int
}

// Slot is a generated slot, not yet persisted.
type Slot struct {
	StartTime   time.Time
	DurationMin int
}

// ParseTemplate validates a weekly template and resolves weekday names.
// Unknown weekday keys are rejected: a misspelled day silently producing no
// slots is worse than a 400.
func ParseTemplate(t models.WeeklyTemplate) (map[time.Weekday][]Block, error) {
	parsed := make(map[time.Weekday][]Block, len(t))

	for name, ranges := range t {
		day, ok := weekdays[name]
		if !ok {
			return nil, httperr.Validation("unknown_weekday")
		}

		for _, r := range strings.Split(ranges, ",") {
			block, err := parseBlock(strings.TrimSpace(r))
			if err != nil {
				return nil, err
			}
			parsed[day] = append(parsed[day], block)
		}
	}

	return parsed, nil
}

func parseBlock(r string) (Block, error) {
	parts := strings.Split(r, "-")
	if len(parts) != 2 {
		return Block{}, httperr.Validation("invalid_hour_range")
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Block{}, httperr.Validation("invalid_hour_range")
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Block{}, httperr.Validation("invalid_hour_range")
	}

	if start < 0 || end > 24 || start >= end {
		return Block{}, httperr.Validation("invalid_hour_range")
	}

	return Block{Start: start, End: end}, nil
}

// Generate expands a template into one slot per whole hour over
// [midnight(from), midnight(from)+HorizonDays).
func Generate(t models.WeeklyTemplate, from time.Time) ([]Slot, error) {
	parsed, err := ParseTemplate(t)
	if err != nil {
		return nil, err
	}

	anchor := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	var slots []Slot
	for d := 0; d < HorizonDays; d++ {
		day := anchor.AddDate(0, 0, d)
		for _, block := range parsed[day.Weekday()] {
			for h := block.Start; h < block.End; h++ {
				slots = append(slots, Slot{
					StartTime:   day.Add(time.Duration(h) * time.Hour),
					DurationMin: SlotMinutes,
				})
			}
		}
	}

	return slots, nil
}
