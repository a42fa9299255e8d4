package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtify/CourtBookingService/internal/domain"
	"github.com/courtify/CourtBookingService/internal/infra/outbox"
	holdRepo "github.com/courtify/CourtBookingService/internal/infra/storage/hold"
	"github.com/courtify/CourtBookingService/internal/integrations/notifyservice"
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

type fakeBookingRepo struct {
	created *domain.Booking
	code    string
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = 100
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) SetVerificationCode(_ context.Context, _ int64, code string) error {
	f.code = code
	return nil
}

type fakeAvailability struct {
	busy       []domain.Interval
	excludedID int64
}

func (f *fakeAvailability) BusyIntervalsExcludingHold(_ context.Context, _ int64, _ domain.Interval, excludeHoldID int64) ([]domain.Interval, error) {
	f.excludedID = excludeHoldID
	return f.busy, nil
}

type fakeOutbox struct {
	events []outbox.Event
}

func (f *fakeOutbox) Add(_ context.Context, event outbox.Event) error {
	f.events = append(f.events, event)
	return nil
}

type fakeNotifyClient struct {
	notifications []notifyservice.BookingConfirmedNotification
}

func (f *fakeNotifyClient) NotifyBookingConfirmedAsync(n notifyservice.BookingConfirmedNotification) {
	f.notifications = append(f.notifications, n)
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

type fixture struct {
	holds    *fakeHoldRepo
	bookings *fakeBookingRepo
	busy     *fakeAvailability
	outbox   *fakeOutbox
	notify   *fakeNotifyClient
	now      time.Time
	useCase  *UseCase
}

func newFixture() *fixture {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	f := &fixture{
		holds: &fakeHoldRepo{hold: &domain.Hold{
			ID:         42,
			VenueID:    1,
			CustomerID: 7,
			StartAt:    time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
			EndAt:      time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
			Status:     domain.StatusHoldActive,
			ExpiresAt:  now.Add(3 * time.Minute),
		}},
		bookings: &fakeBookingRepo{},
		busy:     &fakeAvailability{},
		outbox:   &fakeOutbox{},
		notify:   &fakeNotifyClient{},
		now:      now,
	}
	f.useCase = NewUseCase(f.holds, f.bookings, f.busy, f.outbox, f.notify, fakeTxManager{}, nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: now})
	return f
}

func TestExecute_PromotesHoldToBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase.Execute(context.Background(), &Request{HoldID: 42, CustomerID: 7, PaymentRef: "pay-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.StatusBookingConfirmed), resp.Status)
	assert.Equal(t, int64(42), resp.HoldID)
	assert.Equal(t, "pay-1", resp.PaymentRef)
	assert.Equal(t, f.holds.hold.StartAt, resp.StartAtUtc)

	// Hold гасится ровно один раз
	require.Equal(t, []domain.HoldStatus{domain.StatusHoldConsumed}, f.holds.setStatus)

	// Перепроверка занятости исключает собственный hold
	assert.Equal(t, int64(42), f.busy.excludedID)

	// Детерминированный код верификации сохранен и возвращен
	assert.Equal(t, verificationCode(100), resp.VerificationCode)
	assert.Equal(t, verificationCode(100), f.bookings.code)

	// Два события в outbox: погашенный hold и подтверждённое бронирование
	require.Len(t, f.outbox.events, 2)
	assert.Equal(t, outbox.EventHoldConsumed, f.outbox.events[0].EventType)
	assert.Equal(t, "42", f.outbox.events[0].AggregateID)
	assert.Equal(t, outbox.EventBookingConfirmed, f.outbox.events[1].EventType)
	assert.Equal(t, "100", f.outbox.events[1].AggregateID)

	// Уведомление уходит после коммита
	require.Len(t, f.notify.notifications, 1)
	assert.Equal(t, int64(100), f.notify.notifications[0].BookingID)
	assert.Equal(t, resp.VerificationCode, f.notify.notifications[0].VerificationCode)
}

func TestExecute_HoldNotFound(t *testing.T) {
	f := newFixture()
	f.holds.getErr = holdRepo.ErrHoldNotFound

	_, err := f.useCase.Execute(context.Background(), &Request{HoldID: 42, CustomerID: 7})
	assert.ErrorIs(t, err, ErrHoldNotFound)
	assert.Empty(t, f.notify.notifications)
}

func TestExecute_ForeignHoldIsDenied(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{HoldID: 42, CustomerID: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.holds.setStatus)
	assert.Nil(t, f.bookings.created)
}

func TestExecute_ExpiredHoldIsNotPromoted(t *testing.T) {
	f := newFixture()
	f.holds.hold.ExpiresAt = f.now.Add(-time.Second)

	_, err := f.useCase.Execute(context.Background(), &Request{HoldID: 42, CustomerID: 7})
	assert.ErrorIs(t, err, ErrHoldNotActive)
	assert.Empty(t, f.holds.setStatus)
}

func TestExecute_ConsumedHoldIsNotPromoted(t *testing.T) {
	f := newFixture()
	f.holds.hold.Status = domain.StatusHoldConsumed

	_, err := f.useCase.Execute(context.Background(), &Request{HoldID: 42, CustomerID: 7})
	assert.ErrorIs(t, err, ErrHoldNotActive)
}

func TestExecute_BusyRecheckConflict(t *testing.T) {
	f := newFixture()
	f.busy.busy = []domain.Interval{{
		Start: time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 1, 11, 30, 0, 0, time.UTC),
	}}

	_, err := f.useCase.Execute(context.Background(), &Request{HoldID: 42, CustomerID: 7})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, f.bookings.created)
	assert.Empty(t, f.outbox.events)
	assert.Empty(t, f.notify.notifications)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{HoldID: 0, CustomerID: 7})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.useCase.Execute(context.Background(), &Request{HoldID: 42, CustomerID: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVerificationCode_Deterministic(t *testing.T) {
	code := verificationCode(100)

	require.Len(t, code, 8)
	assert.Equal(t, code, verificationCode(100))
	assert.NotEqual(t, code, verificationCode(101))

	// Только верхний регистр hex
	for _, r := range code {
		inHex := (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')
		assert.True(t, inHex, "unexpected rune %q", r)
	}
}
