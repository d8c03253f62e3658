package model

import "testing"

func TestRecordActive(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{StatusActive, true},
		{StatusInactive, false},
		{"", false},
	}

	for _, tt := range tests {
		r := &Record{Status: tt.status}
		if got := r.Active(); got != tt.expected {
			t.Errorf("Record{Status: %q}.Active() = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		opts     []Option
		value    string
		expected string
	}{
		{Countries, "PER", "PE"},
		{Countries, "CL", "CL"},
		{AgentTypes, "BANCO BCP", "Banco BCP"},
		{Statuses, StatusInactive, "Inactivo"},
		// Unknown values are shown as they are.
		{Countries, "US", "US"},
		{nil, "x", "x"},
	}

	for _, tt := range tests {
		if got := Label(tt.opts, tt.value); got != tt.expected {
			t.Errorf("Label(%q) = %q, want %q", tt.value, got, tt.expected)
		}
	}
}
