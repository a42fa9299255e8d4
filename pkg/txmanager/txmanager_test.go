package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtify/CourtBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) QueryContext(_ context.Context, _ string, _ ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) ExecContext(_ context.Context, _ string, _ ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeTxBeginner struct {
	txs        []*fakeTx
	commitErrs []error
}

func (d *fakeTxBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	if opts == nil || opts.Isolation != sql.LevelSerializable {
		return nil, errors.New("expected serializable isolation")
	}
	if len(d.commitErrs) > 0 {
		tx.commitErr = d.commitErrs[0]
		d.commitErrs = d.commitErrs[1:]
	}
	d.txs = append(d.txs, tx)
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_PutsTransactionInContext(t *testing.T) {
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	var inTx bool
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		inTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, inTx)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
}

func TestDoSerializable_RetriesWrappedSerializationFailure(t *testing.T) {
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	// Ошибка сериализации приходит завернутой репозиторием и usecase'ом;
	// цепочка %w должна доносить её до детектора ретраев
	errInternal := errors.New("usecase: internal error")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(_ context.Context) error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("%w: failed to create hold: %w", errInternal, serializationFailure())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	require.Len(t, db.txs, 3)
	assert.True(t, db.txs[0].rolledBack)
	assert.True(t, db.txs[1].rolledBack)
	assert.True(t, db.txs[2].committed)
}

func TestDoSerializable_NoRetryOnOtherErrors(t *testing.T) {
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	cause := errors.New("constraint violated")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(_ context.Context) error {
		attempts++
		return cause
	})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
}

func TestDoSerializable_GivesUpAfterMaxAttempts(t *testing.T) {
	db := &fakeTxBeginner{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(_ context.Context) error {
		attempts++
		return serializationFailure()
	})

	assert.ErrorIs(t, err, ErrTxFailed)
	assert.Equal(t, 3, attempts)
}

func TestDoSerializable_RetriesCommitTimeSerializationFailure(t *testing.T) {
	db := &fakeTxBeginner{commitErrs: []error{serializationFailure()}}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(_ context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	require.Len(t, db.txs, 2)
	assert.True(t, db.txs[1].committed)
}
