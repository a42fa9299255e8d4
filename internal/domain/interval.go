package domain

import "time"

// Interval is a half-open UTC time interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Intersects reports whether two half-open intervals overlap.
// Intervals that merely touch at a boundary do not intersect:
// [10:00, 11:00) and [11:00, 12:00) are disjoint.
func (i Interval) Intersects(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// IsValid reports whether the interval has positive length.
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns the interval length.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IntersectsAny reports whether the interval overlaps any of the given busy intervals.
func (i Interval) IntersectsAny(busy []Interval) bool {
	for _, b := range busy {
		if i.Intersects(b) {
			return true
		}
	}
	return false
}
