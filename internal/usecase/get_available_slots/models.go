package get_available_slots

import "time"

// Request входные параметры запроса доступных слотов
//
// From и To несут календарные даты (используются только год/месяц/день):
// диапазон трактуется как локальные дни площадки, To эксклюзивна
type Request struct {
	VenueID                int64
	From                   time.Time
	To                     time.Time
	ServiceDurationMinutes int
}

// Slot один свободный слот в UTC
type Slot struct {
	StartAtUtc time.Time
	EndAtUtc   time.Time
}

// Response результат запроса доступных слотов
type Response struct {
	VenueID                int64
	From                   time.Time
	To                     time.Time
	ServiceDurationMinutes int
	Slots                  []Slot
}
