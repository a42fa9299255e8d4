package domain

import "time"

// HoldStatus represents the lifecycle state of a hold
type HoldStatus string

const (
	StatusHoldActive   HoldStatus = "active"
	StatusHoldConsumed HoldStatus = "consumed"
	StatusHoldExpired  HoldStatus = "expired"
)

// Hold is a short-lived provisional reservation of a venue interval.
// An active, unexpired hold occupies its interval exactly like a booking.
// A hold is never resurrected after expiry.
type Hold struct {
	ID             int64
	VenueID        int64
	CustomerID     int64
	StartAt        time.Time // UTC
	EndAt          time.Time // UTC
	Status         HoldStatus
	ExpiresAt      time.Time
	IdempotencyKey string // scoped to (venue, customer)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the held interval.
func (h *Hold) Interval() Interval {
	return Interval{Start: h.StartAt, End: h.EndAt}
}

// IsActive reports whether the hold occupies its interval at the given instant.
func (h *Hold) IsActive(now time.Time) bool {
	return h.Status == StatusHoldActive && h.ExpiresAt.After(now)
}

// CanBePromotedBy reports whether customerID may promote this hold at the
// given instant. Only the requester that created the hold may promote it.
func (h *Hold) CanBePromotedBy(customerID int64, now time.Time) bool {
	return h.CustomerID == customerID && h.IsActive(now)
}
