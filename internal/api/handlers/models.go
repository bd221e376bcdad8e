package handlers

import (
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/money"
)

// BookingResponse бронирование в HTTP ответе. Суммы передаются десятичной строкой.
type BookingResponse struct {
	ID                 string           `json:"id"`
	CustomerID         string           `json:"customerId"`
	Stylist            StylistResponse  `json:"stylist"`
	Service            ServiceResponse  `json:"service"`
	ScheduledStartTime time.Time        `json:"scheduledStartTime"`
	EstimatedEndTime   time.Time        `json:"estimatedEndTime"`
	Location           LocationResponse `json:"location"`
	TotalAmount        money.Amount     `json:"totalAmount"`
	PlatformFee        money.Amount     `json:"platformFee"`
	EscrowTxHash       *string          `json:"escrowTxHash,omitempty"`
	Status             string           `json:"status"`
	Cancellable        bool             `json:"cancellable"`
	Notes              *string          `json:"notes,omitempty"`
	CancellationReason *string          `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	CancelledAt        *time.Time       `json:"cancelledAt,omitempty"`
	CompletedAt        *time.Time       `json:"completedAt,omitempty"`
}

// StylistResponse мастер на момент бронирования
type StylistResponse struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
	Verified    bool    `json:"isVerified"`
}

// ServiceResponse услуга на момент бронирования
type ServiceResponse struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Price           money.Amount `json:"price"`
	DurationMinutes int          `json:"durationMinutes"`
}

// LocationResponse место оказания услуги
type LocationResponse struct {
	Type      string   `json:"type"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// FromDomainBooking конвертирует бронирование в HTTP модель.
// Признак cancellable считается на момент now.
func FromDomainBooking(b *domain.Booking, now time.Time) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		CustomerID: b.CustomerID,
		Stylist: StylistResponse{
			ID:          b.Stylist.ID,
			DisplayName: b.Stylist.DisplayName,
			AvatarURL:   b.Stylist.AvatarURL,
			Verified:    b.Stylist.Verified,
		},
		Service: ServiceResponse{
			ID:              b.Service.ID,
			Name:            b.Service.Name,
			Price:           money.Amount(b.Service.PriceMinor),
			DurationMinutes: b.Service.EstimatedDuration,
		},
		ScheduledStartTime: b.ScheduledStart,
		EstimatedEndTime:   b.EndsAt(),
		Location: LocationResponse{
			Type:      string(b.Location.Kind),
			Address:   b.Location.Address,
			Latitude:  b.Location.Latitude,
			Longitude: b.Location.Longitude,
		},
		TotalAmount:        money.Amount(b.TotalAmount),
		PlatformFee:        money.Amount(b.PlatformFee),
		EscrowTxHash:       b.SettlementRef,
		Status:             string(b.Status),
		Cancellable:        b.CanBeCancelled(now),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		CancelledAt:        b.CancelledAt,
		CompletedAt:        b.CompletedAt,
	}
}

// FromDomainBookings конвертирует список бронирований
func FromDomainBookings(bookings []*domain.Booking, now time.Time) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromDomainBooking(b, now))
	}
	return out
}
