package parser

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	t.Run("empty input means no due date", func(t *testing.T) {
		due, err := ParseDueDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if due != nil {
			t.Errorf("expected nil, got %v", due)
		}
	})

	t.Run("absolute dates", func(t *testing.T) {
		due, err := ParseDueDate("15/12/2026")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if due.Day() != 15 || due.Month() != time.December || due.Year() != 2026 {
			t.Errorf("unexpected date: %v", due)
		}
		if due.Hour() != 23 || due.Minute() != 59 {
			t.Errorf("expected end of day, got %v", due)
		}
	})

	t.Run("keywords", func(t *testing.T) {
		now := time.Now()

		due, err := ParseDueDate("today")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if due.Day() != now.Day() {
			t.Errorf("expected today, got %v", due)
		}

		due, err = ParseDueDate("Tomorrow")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tomorrow := now.AddDate(0, 0, 1)
		if due.Day() != tomorrow.Day() {
			t.Errorf("expected tomorrow, got %v", due)
		}
	})

	t.Run("relative durations", func(t *testing.T) {
		tests := []struct {
			input   string
			minDays int
			maxDays int
		}{
			{"1 day", 1, 1},
			{"3 days", 3, 3},
			{"1 week", 7, 7},
			{"2 weeks", 14, 14},
			{"24 hours", 0, 1},
		}

		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				due, err := ParseDueDate(tt.input)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				days := int(time.Until(*due).Hours() / 24)
				if days < tt.minDays-1 || days > tt.maxDays+1 {
					t.Errorf("%q resolved to %v (%d days out)", tt.input, due, days)
				}
			})
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		inputs := []string{
			"yesterday",
			"31/02/2026", // rolled-over date
			"15/13/2026", // month out of range
			"15/12/1999", // year out of range
			"0 days",
			"400 days",
			"9000 hours",
			"60 weeks",
			"soon",
		}

		for _, input := range inputs {
			if _, err := ParseDueDate(input); err == nil {
				t.Errorf("expected error for %q", input)
			}
		}
	})
}

func TestFormatDueDate(t *testing.T) {
	t.Run("nil formats as empty", func(t *testing.T) {
		if got := FormatDueDate(nil); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("past dates are marked overdue", func(t *testing.T) {
		past := time.Now().AddDate(0, 0, -3)
		got := FormatDueDate(&past)
		if got == "" || got[:7] != "OVERDUE" {
			t.Errorf("expected OVERDUE prefix, got %q", got)
		}
	})
}
