package hold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/courtify/CourtBookingService/internal/domain"
	"github.com/courtify/CourtBookingService/pkg/dbmetrics"
	"github.com/courtify/CourtBookingService/pkg/psqlbuilder"
)

// pgUniqueViolation SQLSTATE код нарушения уникального ограничения
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с hold'ами (краткоживущими провизорными резервами)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория hold'ов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый hold со статусом active
// Уникальность (venue_id, customer_id, idempotency_key) обеспечивается
// ограничением в БД; нарушение транслируется в ErrDuplicateIdempotencyKey
func (r *Repository) Create(ctx context.Context, hold *domain.Hold) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holds").
		Columns(
			"venue_id",
			"customer_id",
			"start_at",
			"end_at",
			"status",
			"expires_at",
			"idempotency_key",
		).
		Values(
			hold.VenueID,
			hold.CustomerID,
			hold.StartAt,
			hold.EndAt,
			hold.Status,
			hold.ExpiresAt,
			hold.IdempotencyKey,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hold.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateIdempotencyKey
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	hold.CreatedAt = createdAt.Time
	hold.UpdatedAt = updatedAt.Time

	return hold, nil
}

// GetByID получает hold по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы promotion
// не гонялся с отменой или повторным promotion того же hold'а
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectHolds().
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	hold, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan hold: %w", ErrScanRow, err)
	}

	return hold, nil
}

// GetByIdempotencyKey получает hold по ключу идемпотентности
// Возвращает hold в любом статусе: повторный запрос клиента должен получить
// исходный hold, даже если тот уже истёк или сконвертирован в бронирование
func (r *Repository) GetByIdempotencyKey(ctx context.Context, venueID, customerID int64, key string) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectHolds().
		Where(squirrel.Eq{
			"venue_id":        venueID,
			"customer_id":     customerID,
			"idempotency_key": key,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	hold, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - scan hold: %w", ErrScanRow, err)
	}

	return hold, nil
}

// ListActiveIntersecting возвращает интервалы активных неистёкших hold'ов,
// пересекающих [start, end)
// excludeHoldID исключает собственный hold при проверке конфликтов промоутером
// (0 = не исключать ничего)
func (r *Repository) ListActiveIntersecting(ctx context.Context, venueID int64, interval domain.Interval, now time.Time, excludeHoldID int64) ([]domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("start_at", "end_at").
		From("holds").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Eq{"status": domain.StatusHoldActive}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(squirrel.Lt{"start_at": interval.End}).
		Where(squirrel.Gt{"end_at": interval.Start}).
		OrderBy("start_at ASC")

	if excludeHoldID > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeHoldID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveIntersecting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveIntersecting - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.Interval, 0)
	for rows.Next() {
		var busy domain.Interval
		if err := rows.Scan(&busy.Start, &busy.End); err != nil {
			return nil, fmt.Errorf("%w: ListActiveIntersecting - scan row: %w", ErrScanRow, err)
		}
		intervals = append(intervals, busy)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveIntersecting - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}

// UpdateStatus переводит hold в новый статус
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.HoldStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("holds").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

// SweepExpired переводит истёкшие активные hold'ы в статус expired
// Вызывается оппортунистически (в начале создания hold'а), не фоновым воркером;
// запросы к занятым интервалам в любом случае фильтруют по expires_at
func (r *Repository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("holds").
		Set("status", domain.StatusHoldExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusHoldActive}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SweepExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SweepExpired - execute update: %w", ErrExecQuery, err)
	}

	swept, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: SweepExpired - get rows affected: %w", ErrExecQuery, err)
	}

	return swept, nil
}

func selectHolds() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"venue_id",
		"customer_id",
		"start_at",
		"end_at",
		"status",
		"expires_at",
		"idempotency_key",
		"created_at",
		"updated_at",
	).From("holds")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanHold сканирует одну строку в hold
func scanHold(row rowScanner) (*domain.Hold, error) {
	var hold domain.Hold
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&hold.ID,
		&hold.VenueID,
		&hold.CustomerID,
		&hold.StartAt,
		&hold.EndAt,
		&hold.Status,
		&hold.ExpiresAt,
		&hold.IdempotencyKey,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	hold.CreatedAt = createdAt.Time
	hold.UpdatedAt = updatedAt.Time

	return &hold, nil
}
