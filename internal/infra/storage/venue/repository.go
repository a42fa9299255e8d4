package venue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/courtify/CourtBookingService/internal/domain"
	"github.com/courtify/CourtBookingService/pkg/dbmetrics"
	"github.com/courtify/CourtBookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с площадками и их рабочими часами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку вместе с недельным расписанием рабочих часов
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var venue domain.Venue
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Timezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %w", ErrScanRow, err)
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	hours, err := r.getOpeningHours(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	venue.OpeningHours = hours

	return &venue, nil
}

// Create создает площадку вместе с расписанием рабочих часов
// Используется сидами и административным CRUD
func (r *Repository) Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venues").
		Columns("name", "timezone").
		Values(venue.Name, venue.Timezone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&venue.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	for i := range venue.OpeningHours {
		entry := &venue.OpeningHours[i]
		entry.VenueID = venue.ID

		query, args, err := psqlbuilder.Insert("venue_opening_hours").
			Columns("venue_id", "weekday", "open_time", "close_time").
			Values(entry.VenueID, entry.Weekday, entry.OpenTime, entry.CloseTime).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build hours insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - insert opening hours: %w", ErrExecQuery, err)
		}
	}

	return venue, nil
}

// getOpeningHours получает расписание площадки, упорядоченное по дню недели
// и времени открытия
func (r *Repository) getOpeningHours(ctx context.Context, executor DBExecutor, venueID int64) ([]domain.OpeningHoursEntry, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"venue_id",
		"weekday",
		"open_time",
		"close_time",
	).
		From("venue_opening_hours").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("weekday ASC, open_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOpeningHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getOpeningHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.OpeningHoursEntry, 0)
	for rows.Next() {
		var entry domain.OpeningHoursEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.VenueID,
			&entry.Weekday,
			&entry.OpenTime,
			&entry.CloseTime,
		); err != nil {
			return nil, fmt.Errorf("%w: getOpeningHours - scan row: %w", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getOpeningHours - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}
