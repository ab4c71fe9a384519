package cleaner

import (
	"testing"
	"time"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"42", 42, true},
		{"-3.5", -3.5, true},
		{"  7 ", 7, true},
		{"1e3", 1000, true},
		{"$1,234.50", 1234.5, true},
		{"€99", 99, true},
		{"(100)", -100, true},
		{".5", 0.5, true},
		{"", 0, false},
		{"notanumber", 0, false},
		{"12abc", 0, false},
		{"--5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseNumeric(tt.input)
			if ok != tt.ok {
				t.Fatalf("parseNumeric(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseNumeric(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024/01/15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"01/15/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"Jan 15, 2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"20240115", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-15 09:30:00", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"15", time.Time{}, false},
		{"hello", time.Time{}, false},
		{"2024-13-40", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseDateTime(tt.input)
			if ok != tt.ok {
				t.Fatalf("parseDateTime(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseDateTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDateTime_TwoDigitYearPivot(t *testing.T) {
	// 99 resolves to 1999 under any plausible pivot
	got, ok := parseDateTime("1/1/99")
	if !ok {
		t.Fatal("parseDateTime(1/1/99) should parse")
	}
	if got.Year() != 1999 {
		t.Errorf("year = %d, want 1999", got.Year())
	}
}
