package validators

import (
	"regexp"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
)

var (
	phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
)

func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return httperr.Validation("invalid_phone")
	}
	return nil
}

func ValidateName(name string) error {
	if len(name) < 2 || !namePattern.MatchString(name) {
		return httperr.Validation("invalid_name")
	}
	return nil
}

func ValidateGender(gender string) error {
	if gender != "M" && gender != "F" {
		return httperr.Validation("invalid_gender")
	}
	return nil
}

// ValidateVisitDate parses an ISO date that must not lie in the future.
func ValidateVisitDate(dateStr string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date")
	}

	today := time.Now()
	endOfToday := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())
	if date.After(endOfToday) {
		return time.Time{}, httperr.Validation("visit_date_in_future")
	}

	return date, nil
}
