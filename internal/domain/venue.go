package domain

import (
	"time"

	"github.com/courtify/CourtBookingService/pkg/types"
)

// Venue represents a bookable resource (a court) with its weekly schedule.
// All booking intervals are stored in UTC; opening hours are local to Timezone.
type Venue struct {
	ID           int64
	Name         string
	Timezone     string // IANA name, e.g. "Europe/Madrid"
	OpeningHours []OpeningHoursEntry
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OpeningHoursEntry is one open window of a venue's weekly schedule.
// Entries for the same weekday are assumed not to overlap.
type OpeningHoursEntry struct {
	ID        int64
	VenueID   int64
	Weekday   int // 0 = Sunday ... 6 = Saturday, matching time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// Location resolves the venue's IANA timezone.
func (v *Venue) Location() (*time.Location, error) {
	return time.LoadLocation(v.Timezone)
}

// HoursForWeekday returns the opening-hours entries for the given weekday,
// preserving storage order (ordered by open time).
func (v *Venue) HoursForWeekday(weekday int) []OpeningHoursEntry {
	var entries []OpeningHoursEntry
	for _, e := range v.OpeningHours {
		if e.Weekday == weekday {
			entries = append(entries, e)
		}
	}
	return entries
}
