package correlate

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		period  string
		wantErr bool
	}{
		{"valid", "2025-05", false},
		{"valid december", "2024-12", false},
		{"bad month", "2025-13", true},
		{"missing month", "2025", true},
		{"full date", "2025-05-06", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePeriod(tt.period)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tt.period, err, tt.wantErr)
			}
		})
	}
}

func TestPeriodRange(t *testing.T) {
	start, end, err := PeriodRange("2025-02", time.UTC)
	if err != nil {
		t.Fatalf("PeriodRange() error = %v", err)
	}

	wantStart := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC).Unix()
	wantEnd := time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC).Unix()
	if start != wantStart {
		t.Errorf("start = %d, want %d", start, wantStart)
	}
	if end != wantEnd {
		t.Errorf("end = %d, want %d", end, wantEnd)
	}
}

func TestPeriodRangeLeapYear(t *testing.T) {
	start, end, err := PeriodRange("2024-02", time.UTC)
	if err != nil {
		t.Fatalf("PeriodRange() error = %v", err)
	}
	if days := (end - start + 1) / 86400; days != 29 {
		t.Errorf("february 2024 spans %d days, want 29", days)
	}
}

func TestPeriodRangeInvalid(t *testing.T) {
	if _, _, err := PeriodRange("not-a-period", time.UTC); err == nil {
		t.Error("PeriodRange() should fail on an invalid period")
	}
}
