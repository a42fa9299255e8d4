package outbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/courtify/CourtBookingService/pkg/dbmetrics"
	"github.com/courtify/CourtBookingService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("outbox.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("outbox.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("outbox.repository: failed to scan row")
)

// DBExecutor интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий outbox-таблицы доменных событий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Add записывает событие в outbox
// Вызывается внутри транзакции изменения состояния: событие либо фиксируется
// вместе с изменением, либо откатывается вместе с ним
func (r *Repository) Add(ctx context.Context, event Event) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("outbox_events").
		Columns("aggregate_type", "aggregate_id", "event_type", "payload").
		Values(event.AggregateType, event.AggregateID, event.EventType, event.Payload).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Add - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// FetchUnpublished возвращает неопубликованные события, старые первыми
func (r *Repository) FetchUnpublished(ctx context.Context, limit int) ([]Record, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"aggregate_type",
		"aggregate_id",
		"event_type",
		"payload",
		"created_at",
	).
		From("outbox_events").
		Where(squirrel.Eq{"published_at": nil}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID,
			&rec.AggregateType,
			&rec.AggregateID,
			&rec.EventType,
			&rec.Payload,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: FetchUnpublished - scan row: %w", ErrScanRow, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - rows error: %w", ErrScanRow, err)
	}

	return records, nil
}

// MarkPublished помечает события опубликованными
func (r *Repository) MarkPublished(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("published_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPublished - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkPublished - execute update: %w", ErrExecQuery, err)
	}

	return nil
}
