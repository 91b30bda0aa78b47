package services

import (
	"testing"
	"time"
)

func TestComputeNextDue(t *testing.T) {
	last := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		interval int
		want     time.Time
	}{
		{"monthly", 30, time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)},
		{"quarterly", 90, time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)},
		{"single_day", 1, time.Date(2026, 1, 16, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeNextDue(last, tt.interval)
			if !got.Equal(tt.want) {
				t.Errorf("computeNextDue(%v, %d) = %v, want %v", last, tt.interval, got, tt.want)
			}
		})
	}
}
