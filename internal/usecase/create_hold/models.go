package create_hold

import "time"

// Request входные параметры создания hold
type Request struct {
	VenueID        int64
	CustomerID     int64
	StartAt        time.Time
	EndAt          time.Time
	IdempotencyKey string
}

// Response созданный (или ранее созданный с тем же ключом) hold
type Response struct {
	ID         int64
	VenueID    int64
	CustomerID int64
	StartAtUtc time.Time
	EndAtUtc   time.Time
	Status     string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}
