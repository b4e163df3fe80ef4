package models

import "testing"

func TestTerminalStatuses(t *testing.T) {
	tests := []struct {
		status   string
		terminal bool
	}{
		{StatusBacklog, false},
		{StatusTodo, false},
		{StatusInProgress, false},
		{StatusInReview, false},
		{StatusDone, true},
		{StatusNotNeeded, true},
		{"archived", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsTerminalStatus(tt.status); got != tt.terminal {
				t.Errorf("IsTerminalStatus(%q) = %v, want %v", tt.status, got, tt.terminal)
			}
		})
	}
}

func TestIsKnownStatus(t *testing.T) {
	for _, status := range []string{StatusBacklog, StatusTodo, StatusInProgress, StatusInReview, StatusDone, StatusNotNeeded} {
		if !IsKnownStatus(status) {
			t.Errorf("expected %q to be known", status)
		}
	}
	for _, status := range []string{"", "archived", "DONE"} {
		if IsKnownStatus(status) {
			t.Errorf("expected %q to be unknown", status)
		}
	}
}

func TestEventTypeIsKnown(t *testing.T) {
	if !EventDependencyAdded.IsKnown() {
		t.Error("expected dependency_added to be known")
	}
	// Open string type: unknown values are representable, just not known
	if EventType("rebalanced").IsKnown() {
		t.Error("expected rebalanced to be unknown")
	}
}
