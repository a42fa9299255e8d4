package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return parsed
}

func interval(t *testing.T, start, end string) Interval {
	t.Helper()
	return Interval{Start: mustTime(t, start), End: mustTime(t, end)}
}

func TestInterval_Intersects(t *testing.T) {
	base := interval(t, "2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z")

	tests := []struct {
		name     string
		other    Interval
		expected bool
	}{
		{
			name:     "identical intervals intersect",
			other:    interval(t, "2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z"),
			expected: true,
		},
		{
			name:     "partial overlap at start",
			other:    interval(t, "2026-09-01T09:30:00Z", "2026-09-01T10:30:00Z"),
			expected: true,
		},
		{
			name:     "partial overlap at end",
			other:    interval(t, "2026-09-01T10:30:00Z", "2026-09-01T11:30:00Z"),
			expected: true,
		},
		{
			name:     "contained interval",
			other:    interval(t, "2026-09-01T10:15:00Z", "2026-09-01T10:45:00Z"),
			expected: true,
		},
		{
			name:     "containing interval",
			other:    interval(t, "2026-09-01T09:00:00Z", "2026-09-01T12:00:00Z"),
			expected: true,
		},
		{
			name:     "touching at end does not intersect",
			other:    interval(t, "2026-09-01T11:00:00Z", "2026-09-01T12:00:00Z"),
			expected: false,
		},
		{
			name:     "touching at start does not intersect",
			other:    interval(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"),
			expected: false,
		},
		{
			name:     "disjoint before",
			other:    interval(t, "2026-09-01T07:00:00Z", "2026-09-01T08:00:00Z"),
			expected: false,
		},
		{
			name:     "disjoint after",
			other:    interval(t, "2026-09-01T13:00:00Z", "2026-09-01T14:00:00Z"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Intersects(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, tt.other.Intersects(base))
		})
	}
}

func TestInterval_IntersectsAny(t *testing.T) {
	candidate := interval(t, "2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z")

	busy := []Interval{
		interval(t, "2026-09-01T08:00:00Z", "2026-09-01T09:00:00Z"),
		interval(t, "2026-09-01T12:00:00Z", "2026-09-01T13:00:00Z"),
	}
	assert.False(t, candidate.IntersectsAny(busy))
	assert.False(t, candidate.IntersectsAny(nil))

	busy = append(busy, interval(t, "2026-09-01T10:30:00Z", "2026-09-01T10:45:00Z"))
	assert.True(t, candidate.IntersectsAny(busy))
}

func TestInterval_IsValid(t *testing.T) {
	assert.True(t, interval(t, "2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z").IsValid())
	assert.False(t, interval(t, "2026-09-01T11:00:00Z", "2026-09-01T11:00:00Z").IsValid())
	assert.False(t, interval(t, "2026-09-01T12:00:00Z", "2026-09-01T11:00:00Z").IsValid())
}
