package domain

import "time"

// OfflineBlock is an administrator-created interval marking a venue
// unavailable outside the normal booking flow. Always busy, no expiry.
type OfflineBlock struct {
	ID        int64
	VenueID   int64
	StartAt   time.Time // UTC
	EndAt     time.Time // UTC
	Reason    string
	CreatedAt time.Time
}

// Interval returns the blocked interval.
func (b *OfflineBlock) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}
