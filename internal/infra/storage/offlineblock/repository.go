package offlineblock

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/courtify/CourtBookingService/internal/domain"
	"github.com/courtify/CourtBookingService/pkg/dbmetrics"
	"github.com/courtify/CourtBookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с административными блокировками площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку
// Проверка конфликтов с существующими бронированиями не выполняется:
// ответственность на стороне администратора
func (r *Repository) Create(ctx context.Context, block *domain.OfflineBlock) (*domain.OfflineBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("offline_blocks").
		Columns("venue_id", "start_at", "end_at", "reason").
		Values(block.VenueID, block.StartAt, block.EndAt, block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// ListIntersecting возвращает интервалы блокировок, пересекающих [start, end)
func (r *Repository) ListIntersecting(ctx context.Context, venueID int64, interval domain.Interval) ([]domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_at", "end_at").
		From("offline_blocks").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Lt{"start_at": interval.End}).
		Where(squirrel.Gt{"end_at": interval.Start}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.Interval, 0)
	for rows.Next() {
		var busy domain.Interval
		if err := rows.Scan(&busy.Start, &busy.End); err != nil {
			return nil, fmt.Errorf("%w: ListIntersecting - scan row: %w", ErrScanRow, err)
		}
		intervals = append(intervals, busy)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIntersecting - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}
