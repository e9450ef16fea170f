package domain_test

import (
	"testing"

	"healthtrack/internal/domain"
)

func TestCoerceCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain integer", "5", 5},
		{"empty input", "", 0},
		{"non-numeric", "abc", 0},
		{"negative clamps", "-3", 0},
		{"fractional truncates", "7.5", 7},
		{"leading plus", "+4", 4},
		{"whitespace is not numeric", " 5", 0},
		{"large steps value", "10000", 10000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.CoerceCount(tc.in); got != tc.want {
				t.Errorf("CoerceCount(%q) = %d; want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestHasData(t *testing.T) {
	tests := []struct {
		name string
		rec  domain.DailyRecord
		want bool
	}{
		{"zero record", domain.DailyRecord{}, false},
		{"water only", domain.DailyRecord{Water: 1}, true},
		{"sleep only", domain.DailyRecord{Sleep: 8}, true},
		{"steps only", domain.DailyRecord{Steps: 1}, true},
		{"all set", domain.DailyRecord{Water: 2, Sleep: 7, Steps: 4000}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.HasData(); got != tc.want {
				t.Errorf("HasData() = %v; want %v", got, tc.want)
			}
		})
	}
}
