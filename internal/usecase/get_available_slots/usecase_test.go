package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtify/CourtBookingService/internal/domain"
	venueRepo "github.com/courtify/CourtBookingService/internal/infra/storage/venue"
	"github.com/courtify/CourtBookingService/pkg/types"
)

type fakeVenueRepo struct {
	venue *domain.Venue
	err   error
}

func (f *fakeVenueRepo) GetByID(_ context.Context, _ int64) (*domain.Venue, error) {
	return f.venue, f.err
}

type fakeAvailability struct {
	busy        []domain.Interval
	err         error
	gotInterval domain.Interval
	calls       int
}

func (f *fakeAvailability) BusyIntervals(_ context.Context, _ int64, interval domain.Interval) ([]domain.Interval, error) {
	f.calls++
	f.gotInterval = interval
	return f.busy, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// venueWithHours площадка с одинаковым окном каждый день недели
func venueWithHours(timezone string, open, close types.TimeString) *domain.Venue {
	venue := &domain.Venue{
		ID:       1,
		Name:     "Center Court",
		Timezone: timezone,
	}
	for weekday := 0; weekday < 7; weekday++ {
		venue.OpeningHours = append(venue.OpeningHours, domain.OpeningHoursEntry{
			VenueID:   1,
			Weekday:   weekday,
			OpenTime:  open,
			CloseTime: close,
		})
	}
	return venue
}

// testVenue площадка, открытая 09:00-17:00 каждый день
func testVenue(timezone string) *domain.Venue {
	return venueWithHours(timezone, "09:00", "17:00")
}

func singleDayRequest(duration int) *Request {
	return &Request{
		VenueID:                1,
		From:                   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		To:                     time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		ServiceDurationMinutes: duration,
	}
}

func TestExecute_GeneratesGridWithinOpeningHours(t *testing.T) {
	availability := &fakeAvailability{}
	uc := NewUseCase(&fakeVenueRepo{venue: testVenue("UTC")}, availability, nopLogger{})

	resp, err := uc.Execute(context.Background(), singleDayRequest(60))
	require.NoError(t, err)

	// Окно 09:00-17:00, шаг 15 минут, слот 60 минут: старты 09:00..16:00
	require.Len(t, resp.Slots, 29)

	first := resp.Slots[0]
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), first.StartAtUtc)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), first.EndAtUtc)

	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC), last.StartAtUtc)
	assert.Equal(t, time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC), last.EndAtUtc)

	// Занятые интервалы читаются одним запросом на весь диапазон
	assert.Equal(t, 1, availability.calls)
	assert.Equal(t, resp.From, availability.gotInterval.Start)
	assert.Equal(t, resp.To, availability.gotInterval.End)
}

func TestExecute_ExcludesSlotsIntersectingBusy(t *testing.T) {
	busy := []domain.Interval{{
		Start: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
	}}
	uc := NewUseCase(&fakeVenueRepo{venue: testVenue("UTC")}, &fakeAvailability{busy: busy}, nopLogger{})

	resp, err := uc.Execute(context.Background(), singleDayRequest(60))
	require.NoError(t, err)

	starts := make(map[time.Time]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		starts[slot.StartAtUtc] = true
	}

	// Слот, кончающийся ровно в начале занятого, остается
	assert.True(t, starts[time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)])
	// Слот, начинающийся ровно в конце занятого, остается
	assert.True(t, starts[time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)])
	// Любое настоящее пересечение исключается
	assert.False(t, starts[time.Date(2026, 9, 1, 9, 15, 0, 0, time.UTC)])
	assert.False(t, starts[time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)])
	assert.False(t, starts[time.Date(2026, 9, 1, 10, 45, 0, 0, time.UTC)])

	assert.Len(t, resp.Slots, 29-7)
}

func TestExecute_NoPartialTailSlot(t *testing.T) {
	venue := venueWithHours("UTC", "09:00", "10:30")
	uc := NewUseCase(&fakeVenueRepo{venue: venue}, &fakeAvailability{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), singleDayRequest(60))
	require.NoError(t, err)

	// Старты 09:00, 09:15, 09:30 - хвост окна, не вмещающий полный слот, отброшен
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC), resp.Slots[2].StartAtUtc)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), resp.Slots[2].EndAtUtc)
}

func TestExecute_DayWithoutHoursIsOpenFullDay(t *testing.T) {
	venue := &domain.Venue{ID: 1, Timezone: "UTC"}
	uc := NewUseCase(&fakeVenueRepo{venue: venue}, &fakeAvailability{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), singleDayRequest(60))
	require.NoError(t, err)

	// Окно 00:00-23:59: старты 00:00..22:45
	require.Len(t, resp.Slots, 92)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), resp.Slots[0].StartAtUtc)
	assert.Equal(t, time.Date(2026, 9, 1, 22, 45, 0, 0, time.UTC), resp.Slots[91].StartAtUtc)
}

func TestExecute_ConvertsVenueLocalHoursToUTC(t *testing.T) {
	// Летом Мадрид живет в UTC+2
	uc := NewUseCase(&fakeVenueRepo{venue: testVenue("Europe/Madrid")}, &fakeAvailability{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID:                1,
		From:                   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		To:                     time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		ServiceDurationMinutes: 60,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	// 09:00 локального времени = 07:00 UTC
	assert.Equal(t, time.Date(2026, 7, 1, 7, 0, 0, 0, time.UTC), resp.Slots[0].StartAtUtc)
	// Последний старт: 16:00 локального = 14:00 UTC
	assert.Equal(t, time.Date(2026, 7, 1, 14, 0, 0, 0, time.UTC), resp.Slots[len(resp.Slots)-1].StartAtUtc)
}

func TestExecute_RangeIsVenueLocalDays(t *testing.T) {
	// Сидней живет в UTC+10: локальный день площадки начинается накануне по UTC
	availability := &fakeAvailability{}
	uc := NewUseCase(&fakeVenueRepo{venue: testVenue("Australia/Sydney")}, availability, nopLogger{})

	resp, err := uc.Execute(context.Background(), singleDayRequest(60))
	require.NoError(t, err)
	require.Len(t, resp.Slots, 29)

	// 09:00 1 сентября по местному = 23:00 31 августа UTC
	assert.Equal(t, time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC), resp.Slots[0].StartAtUtc)
	// Последний старт 16:00 по местному = 06:00 UTC
	assert.Equal(t, time.Date(2026, 9, 1, 6, 0, 0, 0, time.UTC), resp.Slots[28].StartAtUtc)

	// Занятость читается по границам локального дня, а не календарного дня UTC
	assert.Equal(t, time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC), availability.gotInterval.Start)
	assert.Equal(t, time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC), availability.gotInterval.End)
}

func TestExecute_DSTTransitionInsideWindow(t *testing.T) {
	venue := venueWithHours("Europe/Madrid", "01:00", "05:00")

	tests := []struct {
		name      string
		day       time.Time
		wantSlots int
		wantFirst time.Time
		wantLast  time.Time
	}{
		{
			// 29.03.2026 стрелки 02:00 CET -> 03:00 CEST: окно короче на час
			name:      "spring forward shrinks the window",
			day:       time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
			wantSlots: 9,
			wantFirst: time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
			wantLast:  time.Date(2026, 3, 29, 2, 0, 0, 0, time.UTC),
		},
		{
			// 25.10.2026 стрелки 03:00 CEST -> 02:00 CET: окно длиннее на час
			name:      "fall back grows the window",
			day:       time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC),
			wantSlots: 17,
			wantFirst: time.Date(2026, 10, 24, 23, 0, 0, 0, time.UTC),
			wantLast:  time.Date(2026, 10, 25, 3, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeVenueRepo{venue: venue}, &fakeAvailability{}, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{
				VenueID:                1,
				From:                   tt.day,
				To:                     tt.day.AddDate(0, 0, 1),
				ServiceDurationMinutes: 60,
			})
			require.NoError(t, err)
			require.Len(t, resp.Slots, tt.wantSlots)
			assert.Equal(t, tt.wantFirst, resp.Slots[0].StartAtUtc)
			assert.Equal(t, tt.wantLast, resp.Slots[len(resp.Slots)-1].StartAtUtc)
		})
	}
}

func TestExecute_DurationNotMultipleOfStep(t *testing.T) {
	// Длительность 50 минут не кратна шагу: старты остаются на сетке,
	// непокрываемый хвост окна просто не предлагается
	venue := venueWithHours("UTC", "09:00", "10:30")
	uc := NewUseCase(&fakeVenueRepo{venue: venue}, &fakeAvailability{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), singleDayRequest(50))
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), resp.Slots[0].StartAtUtc)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 50, 0, 0, time.UTC), resp.Slots[0].EndAtUtc)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC), resp.Slots[2].StartAtUtc)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 20, 0, 0, time.UTC), resp.Slots[2].EndAtUtc)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(&fakeVenueRepo{venue: testVenue("UTC")}, &fakeAvailability{}, nopLogger{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "from after to",
			req:  &Request{VenueID: 1, From: from.AddDate(0, 0, 2), To: from, ServiceDurationMinutes: 60},
		},
		{
			name: "duration below minimum",
			req:  &Request{VenueID: 1, From: from, To: from.AddDate(0, 0, 1), ServiceDurationMinutes: 10},
		},
		{
			name: "duration above maximum",
			req:  &Request{VenueID: 1, From: from, To: from.AddDate(0, 0, 1), ServiceDurationMinutes: 495},
		},
		{
			name: "range exceeds cap",
			req:  &Request{VenueID: 1, From: from, To: from.AddDate(0, 0, 40), ServiceDurationMinutes: 60},
		},
		{
			name: "non-positive venue id",
			req:  &Request{VenueID: 0, From: from, To: from.AddDate(0, 0, 1), ServiceDurationMinutes: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := NewUseCase(&fakeVenueRepo{err: venueRepo.ErrVenueNotFound}, &fakeAvailability{}, nopLogger{})

	_, err := uc.Execute(context.Background(), singleDayRequest(60))
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_AvailabilityFailure(t *testing.T) {
	availability := &fakeAvailability{err: errors.New("db down")}
	uc := NewUseCase(&fakeVenueRepo{venue: testVenue("UTC")}, availability, nopLogger{})

	_, err := uc.Execute(context.Background(), singleDayRequest(60))
	assert.ErrorIs(t, err, ErrInternal)
}
