package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtify/CourtBookingService/internal/domain"
)

type fakeBookingRepo struct {
	intervals []domain.Interval
	err       error
}

func (f *fakeBookingRepo) ListConfirmedIntersecting(_ context.Context, _ int64, _ domain.Interval) ([]domain.Interval, error) {
	return f.intervals, f.err
}

type fakeHoldRepo struct {
	intervals  []domain.Interval
	err        error
	gotExclude int64
	gotNow     time.Time
}

func (f *fakeHoldRepo) ListActiveIntersecting(_ context.Context, _ int64, _ domain.Interval, now time.Time, excludeHoldID int64) ([]domain.Interval, error) {
	f.gotNow = now
	f.gotExclude = excludeHoldID
	return f.intervals, f.err
}

type fakeBlockRepo struct {
	intervals []domain.Interval
	err       error
}

func (f *fakeBlockRepo) ListIntersecting(_ context.Context, _ int64, _ domain.Interval) ([]domain.Interval, error) {
	return f.intervals, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

func interval(startHour, endHour int) domain.Interval {
	return domain.Interval{
		Start: time.Date(2026, 9, 1, startHour, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 1, endHour, 0, 0, 0, time.UTC),
	}
}

func TestBusyIntervals_AggregatesAllSources(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{intervals: []domain.Interval{interval(10, 11)}}
	holds := &fakeHoldRepo{intervals: []domain.Interval{interval(12, 13), interval(14, 15)}}
	blocks := &fakeBlockRepo{intervals: []domain.Interval{interval(16, 17)}}

	svc := NewService(bookings, holds, blocks).WithTimeProvider(&fixedTimeProvider{now: now})

	busy, err := svc.BusyIntervals(context.Background(), 1, interval(9, 18))
	require.NoError(t, err)

	assert.Len(t, busy, 4)
	assert.ElementsMatch(t, []domain.Interval{
		interval(10, 11), interval(12, 13), interval(14, 15), interval(16, 17),
	}, busy)

	// Момент "сейчас" передается репозиторию hold'ов для отсечения истёкших
	assert.Equal(t, now, holds.gotNow)
	assert.Equal(t, int64(0), holds.gotExclude)
}

func TestBusyIntervals_EmptySources(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeBlockRepo{})

	busy, err := svc.BusyIntervals(context.Background(), 1, interval(9, 18))
	require.NoError(t, err)
	assert.Empty(t, busy)
}

func TestBusyIntervalsExcludingHold_PassesExcludedID(t *testing.T) {
	holds := &fakeHoldRepo{}
	svc := NewService(&fakeBookingRepo{}, holds, &fakeBlockRepo{})

	_, err := svc.BusyIntervalsExcludingHold(context.Background(), 1, interval(9, 18), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), holds.gotExclude)
}

func TestBusyIntervals_SourceFailure(t *testing.T) {
	cause := errors.New("db down")

	tests := []struct {
		name string
		svc  *Service
	}{
		{
			name: "bookings source fails",
			svc:  NewService(&fakeBookingRepo{err: cause}, &fakeHoldRepo{}, &fakeBlockRepo{}),
		},
		{
			name: "holds source fails",
			svc:  NewService(&fakeBookingRepo{}, &fakeHoldRepo{err: cause}, &fakeBlockRepo{}),
		},
		{
			name: "blocks source fails",
			svc:  NewService(&fakeBookingRepo{}, &fakeHoldRepo{}, &fakeBlockRepo{err: cause}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.BusyIntervals(context.Background(), 1, interval(9, 18))
			assert.ErrorIs(t, err, ErrInternal)
			// Первопричина остается в цепочке для ретраев на уровне транзакции
			assert.ErrorIs(t, err, cause)
		})
	}
}
