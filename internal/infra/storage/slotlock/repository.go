package slotlock

import (
	"context"
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

// DBExecutor интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository хранилище slot lock'ов - эфемерных записей взаимного исключения
// на точный кортеж (venue_id, start_at, end_at)
//
// Lock не несёт бизнес-смысла: он лишь гарантирует, что два одновременных
// запроса на hold одного и того же интервала не пройдут проверку конфликтов
// параллельно. Уникальный индекс по кортежу превращает гонку в ошибку вставки.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр хранилища slot lock'ов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Acquire пытается захватить lock на точный интервал с временем жизни ttl
//
// Истёкшие lock'и на этот кортеж сначала удаляются (storage-level sweep,
// фонового воркера нет), затем выполняется вставка. Если вставка нарушает
// уникальный индекс - lock держит кто-то другой, возвращается ErrLockHeld.
//
// Lock намеренно не снимается при успешном создании hold'а: запись доживает
// до expires_at и даёт запас поверх собственного времени жизни hold'а
func (r *Repository) Acquire(ctx context.Context, venueID int64, interval domain.Interval, now time.Time, ttl time.Duration) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("slot_locks").
		Where(squirrel.Eq{"venue_id": venueID}).
		Where(squirrel.Eq{"start_at": interval.Start}).
		Where(squirrel.Eq{"end_at": interval.End}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Acquire - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: Acquire - sweep expired locks: %w", ErrExecQuery, err)
	}

	insertQuery, insertArgs, err := psqlbuilder.Insert("slot_locks").
		Columns("venue_id", "start_at", "end_at", "expires_at").
		Values(venueID, interval.Start, interval.End, now.Add(ttl)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Acquire - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return ErrLockHeld
		}
		return fmt.Errorf("%w: Acquire - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
