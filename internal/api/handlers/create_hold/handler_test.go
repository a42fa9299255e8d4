package create_hold

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createHold "github.com/courtify/CourtBookingService/internal/usecase/create_hold"
)

type fakeUseCase struct {
	resp   *createHold.Response
	err    error
	gotReq *createHold.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createHold.Request) (*createHold.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"venueId": 1,
	"customerId": 7,
	"startAtUtc": "2026-09-01T10:00:00Z",
	"endAtUtc": "2026-09-01T11:00:00Z",
	"idempotencyKey": "key-1"
}`

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/holds", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_CreatesHold(t *testing.T) {
	uc := &fakeUseCase{resp: &createHold.Response{
		ID:         42,
		VenueID:    1,
		CustomerID: 7,
		StartAtUtc: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndAtUtc:   time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
		Status:     "active",
		ExpiresAt:  time.Date(2026, 9, 1, 8, 5, 0, 0, time.UTC),
	}}

	rec := doRequest(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(1), uc.gotReq.VenueID)
	assert.Equal(t, "key-1", uc.gotReq.IdempotencyKey)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), uc.gotReq.StartAt)

	var resp HoldResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, time.Date(2026, 9, 1, 8, 5, 0, 0, time.UTC), resp.ExpiresAt)
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &fakeUseCase{}

	rec := doRequest(t, uc, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"venue not found", createHold.ErrVenueNotFound, http.StatusNotFound},
		{"slot conflict", createHold.ErrSlotConflict, http.StatusConflict},
		{"validation failed", createHold.ErrValidation, http.StatusBadRequest},
		{"internal error", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, validBody)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
