package sequence

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		prefix string
		n      int64
		want   string
	}{
		{"A", 1, "A001"},
		{"A", 42, "A042"},
		{"SC", 10, "SC010"},
		{"DEP", 3, "DEP003"},
		{"P", 999, "P999"},
		{"P", 1000, "P1000"},
	}

	for _, c := range cases {
		if got := Format(c.prefix, c.n); got != c.want {
			t.Errorf("Format(%q, %d) = %q, want %q", c.prefix, c.n, got, c.want)
		}
	}
}

func TestPrefix(t *testing.T) {
	for entity, want := range map[string]string{
		Users:          "U",
		Patients:       "P",
		Doctors:        "D",
		Departments:    "DEP",
		Schedules:      "SC",
		Appointments:   "A",
		MedicalRecords: "M",
	} {
		got, ok := Prefix(entity)
		if !ok || got != want {
			t.Errorf("Prefix(%q) = %q, %v; want %q", entity, got, ok, want)
		}
	}

	if _, ok := Prefix("widgets"); ok {
		t.Error("Prefix must reject unknown entities")
	}
}
