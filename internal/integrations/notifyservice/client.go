package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyBookingConfirmed отправляет уведомление о подтверждённом бронировании
func (c *Client) NotifyBookingConfirmed(ctx context.Context, notification BookingConfirmedNotification) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-confirmed", c.baseURL)

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}

// NotifyBookingConfirmedAsync отправляет уведомление в фоне (fire-and-forget)
// Диспетчер уведомлений - внешний коллаборатор: его недоступность не должна
// ни блокировать, ни откатывать подтверждение бронирования
func (c *Client) NotifyBookingConfirmedAsync(notification BookingConfirmedNotification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		if err := c.NotifyBookingConfirmed(ctx, notification); err != nil {
			c.log.Warn("Notification dispatch failed for booking_id=%d: %v", notification.BookingID, err)
			return
		}
		c.log.Info("Notification dispatched for booking_id=%d", notification.BookingID)
	}()
}
