package models

import (
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
)

// BookingResponse модель бронирования для внешних потребителей сервиса
type BookingResponse struct {
	ID               int64     `json:"id"`
	VenueID          int64     `json:"venueId"`
	CustomerID       int64     `json:"customerId"`
	StartAtUtc       time.Time `json:"startAtUtc"`
	EndAtUtc         time.Time `json:"endAtUtc"`
	Status           string    `json:"status"`
	HoldID           int64     `json:"holdId"`
	PaymentRef       string    `json:"paymentRef,omitempty"`
	VerificationCode string    `json:"verificationCode,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// GetVenueBookingsRequest запрос бронирований площадки за период
type GetVenueBookingsRequest struct {
	VenueID int64
	From    *time.Time
	To      *time.Time
	Status  *string
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *GetVenueBookingsRequest) ToDomainFilter() (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{
		VenueID: r.VenueID,
		From:    r.From,
		To:      r.To,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return domain.VenueBookingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusBookingConfirmed:
		return domain.StatusBookingConfirmed, nil
	case domain.StatusBookingCancelled:
		return domain.StatusBookingCancelled, nil
	default:
		return "", domain.ErrUnknownBookingStatus
	}
}

// FromDomainBooking конвертирует domain.Booking в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               b.ID,
		VenueID:          b.VenueID,
		CustomerID:       b.CustomerID,
		StartAtUtc:       b.StartAt,
		EndAtUtc:         b.EndAt,
		Status:           string(b.Status),
		HoldID:           b.HoldID,
		PaymentRef:       b.PaymentRef,
		VerificationCode: b.VerificationCode,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
