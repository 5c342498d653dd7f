package validators

import (
	"testing"
	"time"

	"github.com/CareMeshHealth/hospital-scheduler/internal/httperr"
)

func TestValidatePhone(t *testing.T) {
	for _, ok := range []string{"+5511987654321", "11987654321", "123456789"} {
		if err := ValidatePhone(ok); err != nil {
			t.Fatalf("ValidatePhone(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "12345678", "phone", "+55 11 98765", "+551198765432101234"} {
		if err := ValidatePhone(bad); !httperr.IsBusiness(err, "invalid_phone") {
			t.Fatalf("ValidatePhone(%q): expected invalid_phone, got %v", bad, err)
		}
	}
}

func TestValidateName(t *testing.T) {
	for _, ok := range []string{"Ana", "Mary-Jane", "O'Brien", "Jean Paul"} {
		if err := ValidateName(ok); err != nil {
			t.Fatalf("ValidateName(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "A", "R2D2", "x;drop"} {
		if err := ValidateName(bad); !httperr.IsBusiness(err, "invalid_name") {
			t.Fatalf("ValidateName(%q): expected invalid_name, got %v", bad, err)
		}
	}
}

func TestValidateGender(t *testing.T) {
	for _, ok := range []string{"M", "F"} {
		if err := ValidateGender(ok); err != nil {
			t.Fatalf("ValidateGender(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "m", "male", "X"} {
		if err := ValidateGender(bad); !httperr.IsBusiness(err, "invalid_gender") {
			t.Fatalf("ValidateGender(%q): expected invalid_gender, got %v", bad, err)
		}
	}
}

func TestValidateVisitDate(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	if _, err := ValidateVisitDate(today); err != nil {
		t.Fatalf("today must be a valid visit date: %v", err)
	}

	past := time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	got, err := ValidateVisitDate(past)
	if err != nil {
		t.Fatalf("past date: %v", err)
	}
	if got.Format("2006-01-02") != past {
		t.Fatalf("parsed %v, want %s", got, past)
	}

	future := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	if _, err := ValidateVisitDate(future); !httperr.IsBusiness(err, "visit_date_in_future") {
		t.Fatalf("future date: expected visit_date_in_future, got %v", err)
	}

	for _, bad := range []string{"", "2026/01/01", "01-01-2026", "not-a-date"} {
		if _, err := ValidateVisitDate(bad); !httperr.IsBusiness(err, "invalid_date") {
			t.Fatalf("ValidateVisitDate(%q): expected invalid_date, got %v", bad, err)
		}
	}
}
