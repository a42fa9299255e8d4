package holds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtify/CourtBookingService/internal/domain"
	holdRepo "github.com/courtify/CourtBookingService/internal/infra/storage/hold"
)

type fakeHoldRepo struct {
	hold      *domain.Hold
	getErr    error
	setStatus []domain.HoldStatus
}

func (f *fakeHoldRepo) GetByID(_ context.Context, _ int64) (*domain.Hold, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.hold, nil
}

func (f *fakeHoldRepo) UpdateStatus(_ context.Context, _ int64, status domain.HoldStatus) error {
	f.setStatus = append(f.setStatus, status)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeHoldRepo, now time.Time) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: now})
}

func activeHold(now time.Time) *domain.Hold {
	return &domain.Hold{
		ID:         42,
		VenueID:    1,
		CustomerID: 7,
		StartAt:    now.Add(2 * time.Hour),
		EndAt:      now.Add(3 * time.Hour),
		Status:     domain.StatusHoldActive,
		ExpiresAt:  now.Add(3 * time.Minute),
	}
}

func TestCancel_ReleasesOwnActiveHold(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	repo := &fakeHoldRepo{hold: activeHold(now)}

	err := newService(repo, now).Cancel(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Equal(t, []domain.HoldStatus{domain.StatusHoldExpired}, repo.setStatus)
}

func TestCancel_HoldNotFound(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	repo := &fakeHoldRepo{getErr: holdRepo.ErrHoldNotFound}

	err := newService(repo, now).Cancel(context.Background(), 42, 7)
	assert.ErrorIs(t, err, ErrHoldNotFound)
	assert.Empty(t, repo.setStatus)
}

func TestCancel_ForeignHoldIsDenied(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	repo := &fakeHoldRepo{hold: activeHold(now)}

	err := newService(repo, now).Cancel(context.Background(), 42, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.setStatus)
}

func TestCancel_InactiveHold(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*domain.Hold)
	}{
		{"expired by ttl", func(h *domain.Hold) { h.ExpiresAt = now.Add(-time.Second) }},
		{"already consumed", func(h *domain.Hold) { h.Status = domain.StatusHoldConsumed }},
		{"already cancelled", func(h *domain.Hold) { h.Status = domain.StatusHoldExpired }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hold := activeHold(now)
			tt.mutate(hold)
			repo := &fakeHoldRepo{hold: hold}

			err := newService(repo, now).Cancel(context.Background(), 42, 7)
			assert.ErrorIs(t, err, ErrHoldNotActive)
			assert.Empty(t, repo.setStatus)
		})
	}
}

func TestCancel_RepositoryFailure(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	repo := &fakeHoldRepo{getErr: errors.New("db down")}

	err := newService(repo, now).Cancel(context.Background(), 42, 7)
	assert.ErrorIs(t, err, ErrInternal)
}
