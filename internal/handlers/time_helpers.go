package handlers

import "time"

// Dates come in as ISO YYYY-MM-DD in the facility's local time.

func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, time.Local)
}

// dateRange turns inclusive [start_date, end_date] query bounds into the
// half-open [start, end+1d) window the slot queries use.
func dateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end.AddDate(0, 0, 1), nil
}
