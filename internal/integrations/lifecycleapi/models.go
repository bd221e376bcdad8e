package lifecycleapi

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/money"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/types"
)

const verificationVerified = "VERIFIED"

// StylistDTO снимок мастера в ответе сервиса
type StylistDTO struct {
	ID                 string  `json:"id"`
	DisplayName        string  `json:"displayName"`
	AvatarURL          *string `json:"avatarUrl,omitempty"`
	VerificationStatus string  `json:"verificationStatus"`
}

// ServiceDTO снимок услуги в ответе сервиса
type ServiceDTO struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	PriceAmount          money.Amount `json:"priceAmount"`
	EstimatedDurationMin int          `json:"estimatedDurationMin"`
}

// BookingDTO модель бронирования на проводе
type BookingDTO struct {
	ID                   string       `json:"id"`
	CustomerID           string       `json:"customerId"`
	StylistID            string       `json:"stylistId"`
	Stylist              *StylistDTO  `json:"stylist,omitempty"`
	ServiceID            string       `json:"serviceId"`
	Service              *ServiceDTO  `json:"service,omitempty"`
	ScheduledStartTime   time.Time    `json:"scheduledStartTime"`
	EstimatedDurationMin int          `json:"estimatedDurationMin"`
	LocationType         string       `json:"locationType"`
	LocationAddress      string       `json:"locationAddress"`
	LocationLat          *float64     `json:"locationLat,omitempty"`
	LocationLng          *float64     `json:"locationLng,omitempty"`
	TotalAmount          money.Amount `json:"totalAmount"`
	PlatformFee          money.Amount `json:"platformFee"`
	EscrowTxHash         *string      `json:"escrowTxHash,omitempty"`
	Status               string       `json:"status"`
	CustomerNotes        *string      `json:"customerNotes,omitempty"`
	CancellationReason   *string      `json:"cancellationReason,omitempty"`
	CreatedAt            time.Time    `json:"createdAt"`
	CancelledAt          *time.Time   `json:"cancelledAt,omitempty"`
	CompletedAt          *time.Time   `json:"completedAt,omitempty"`
}

// ToDomain конвертирует модель провода в доменную и проверяет инварианты
func (d *BookingDTO) ToDomain() (*domain.Booking, error) {
	status, err := domain.ParseStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s: %v", ErrInvalidResponse, d.ID, err)
	}

	b := &domain.Booking{
		ID:         d.ID,
		CustomerID: d.CustomerID,
		Stylist: domain.StylistSummary{
			ID: d.StylistID,
		},
		Service: domain.ServiceSnapshot{
			ID:                d.ServiceID,
			EstimatedDuration: d.EstimatedDurationMin,
		},
		ScheduledStart: d.ScheduledStartTime,
		Location: domain.Location{
			Kind:      domain.LocationKind(d.LocationType),
			Address:   d.LocationAddress,
			Latitude:  d.LocationLat,
			Longitude: d.LocationLng,
		},
		TotalAmount:        d.TotalAmount.Minor(),
		PlatformFee:        d.PlatformFee.Minor(),
		SettlementRef:      d.EscrowTxHash,
		Status:             status,
		Notes:              d.CustomerNotes,
		CancellationReason: d.CancellationReason,
		CreatedAt:          d.CreatedAt,
		CancelledAt:        d.CancelledAt,
		CompletedAt:        d.CompletedAt,
	}

	if d.Stylist != nil {
		b.Stylist.DisplayName = d.Stylist.DisplayName
		b.Stylist.AvatarURL = d.Stylist.AvatarURL
		b.Stylist.Verified = d.Stylist.VerificationStatus == verificationVerified
	}
	if d.Service != nil {
		b.Service.Name = d.Service.Name
		b.Service.PriceMinor = d.Service.PriceAmount.Minor()
		if b.Service.EstimatedDuration == 0 {
			b.Service.EstimatedDuration = d.Service.EstimatedDurationMin
		}
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return b, nil
}

// FromDomainBooking конвертирует доменную модель в модель провода
func FromDomainBooking(b *domain.Booking) *BookingDTO {
	verification := "UNVERIFIED"
	if b.Stylist.Verified {
		verification = verificationVerified
	}

	return &BookingDTO{
		ID:         b.ID,
		CustomerID: b.CustomerID,
		StylistID:  b.Stylist.ID,
		Stylist: &StylistDTO{
			ID:                 b.Stylist.ID,
			DisplayName:        b.Stylist.DisplayName,
			AvatarURL:          b.Stylist.AvatarURL,
			VerificationStatus: verification,
		},
		ServiceID: b.Service.ID,
		Service: &ServiceDTO{
			ID:                   b.Service.ID,
			Name:                 b.Service.Name,
			PriceAmount:          money.Amount(b.Service.PriceMinor),
			EstimatedDurationMin: b.Service.EstimatedDuration,
		},
		ScheduledStartTime:   b.ScheduledStart,
		EstimatedDurationMin: b.Service.EstimatedDuration,
		LocationType:         string(b.Location.Kind),
		LocationAddress:      b.Location.Address,
		LocationLat:          b.Location.Latitude,
		LocationLng:          b.Location.Longitude,
		TotalAmount:          money.Amount(b.TotalAmount),
		PlatformFee:          money.Amount(b.PlatformFee),
		EscrowTxHash:         b.SettlementRef,
		Status:               string(b.Status),
		CustomerNotes:        b.Notes,
		CancellationReason:   b.CancellationReason,
		CreatedAt:            b.CreatedAt,
		CancelledAt:          b.CancelledAt,
		CompletedAt:          b.CompletedAt,
	}
}

// CreateBookingRequest тело POST /bookings
type CreateBookingRequest struct {
	StylistID          string   `json:"stylistId"`
	ServiceID          string   `json:"serviceId"`
	ScheduledStartTime string   `json:"scheduledStartTime"`
	LocationType       string   `json:"locationType"`
	LocationAddress    string   `json:"locationAddress"`
	LocationLat        *float64 `json:"locationLat,omitempty"`
	LocationLng        *float64 `json:"locationLng,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

func newCreateBookingRequest(req domain.CreateBookingRequest) CreateBookingRequest {
	return CreateBookingRequest{
		StylistID:          req.StylistID,
		ServiceID:          req.ServiceID,
		ScheduledStartTime: req.ScheduledStart.UTC().Format(time.RFC3339),
		LocationType:       string(req.Location.Kind),
		LocationAddress:    req.Location.Address,
		LocationLat:        req.Location.Latitude,
		LocationLng:        req.Location.Longitude,
		Notes:              req.Notes,
	}
}

// ListBookingsResponse ответ GET /bookings
type ListBookingsResponse struct {
	Bookings []BookingDTO `json:"bookings"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
	HasMore  bool         `json:"hasMore"`
}

// UpdateStatusRequest тело PATCH /bookings/{id}/status
type UpdateStatusRequest struct {
	Status       string  `json:"status"`
	EscrowTxHash *string `json:"escrowTxHash,omitempty"`
}

// CancelBookingRequest тело POST /bookings/{id}/cancel
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ConfirmPaymentRequest тело POST /bookings/{id}/confirm-payment
type ConfirmPaymentRequest struct {
	EscrowTxHash            string `json:"escrowTxHash"`
	SkipOnChainVerification bool   `json:"skipOnChainVerification"`
}

// EscrowDTO данные эскроу, которые вернул сервис
type EscrowDTO struct {
	TxHash string       `json:"txHash"`
	Amount money.Amount `json:"amount"`
	Status string       `json:"status"`
}

// ConfirmPaymentResponse ответ POST /bookings/{id}/confirm-payment
type ConfirmPaymentResponse struct {
	Booking BookingDTO `json:"booking"`
	Message string     `json:"message"`
	Escrow  *EscrowDTO `json:"escrow,omitempty"`
}

// CustomerStatsDTO статистика пользователя как клиента
type CustomerStatsDTO struct {
	Total      int          `json:"total"`
	Pending    int          `json:"pending"`
	Confirmed  int          `json:"confirmed"`
	InProgress int          `json:"inProgress"`
	Completed  int          `json:"completed"`
	Cancelled  int          `json:"cancelled"`
	TotalSpent money.Amount `json:"totalSpent"`
}

// StylistStatsDTO статистика пользователя как мастера
type StylistStatsDTO struct {
	Total       int          `json:"total"`
	Pending     int          `json:"pending"`
	Confirmed   int          `json:"confirmed"`
	InProgress  int          `json:"inProgress"`
	Completed   int          `json:"completed"`
	Cancelled   int          `json:"cancelled"`
	TotalEarned money.Amount `json:"totalEarned"`
}

// StatsResponse ответ GET /bookings/stats
type StatsResponse struct {
	AsCustomer CustomerStatsDTO `json:"asCustomer"`
	AsStylist  StylistStatsDTO  `json:"asStylist"`
}

// ToDomain конвертирует статистику в доменную модель
func (r *StatsResponse) ToDomain() *domain.BookingStats {
	return &domain.BookingStats{
		AsCustomer: domain.RoleStats{
			Total:       r.AsCustomer.Total,
			Pending:     r.AsCustomer.Pending,
			Confirmed:   r.AsCustomer.Confirmed,
			InProgress:  r.AsCustomer.InProgress,
			Completed:   r.AsCustomer.Completed,
			Cancelled:   r.AsCustomer.Cancelled,
			AmountMinor: r.AsCustomer.TotalSpent.Minor(),
		},
		AsStylist: domain.RoleStats{
			Total:       r.AsStylist.Total,
			Pending:     r.AsStylist.Pending,
			Confirmed:   r.AsStylist.Confirmed,
			InProgress:  r.AsStylist.InProgress,
			Completed:   r.AsStylist.Completed,
			Cancelled:   r.AsStylist.Cancelled,
			AmountMinor: r.AsStylist.TotalEarned.Minor(),
		},
	}
}

// SlotDTO слот в ответе доступности
type SlotDTO struct {
	StartTime string `json:"startTime"`
	Available bool   `json:"available"`
}

// AvailabilityResponse ответ GET /stylists/{id}/availability
type AvailabilityResponse struct {
	Date  string    `json:"date"`
	Slots []SlotDTO `json:"slots"`
}

// ToDomain конвертирует слоты, проверяя формат времени
func (r *AvailabilityResponse) ToDomain() ([]domain.AvailabilitySlot, error) {
	slots := make([]domain.AvailabilitySlot, 0, len(r.Slots))
	for _, s := range r.Slots {
		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: slot start %q: %v", ErrInvalidResponse, s.StartTime, err)
		}
		slots = append(slots, domain.AvailabilitySlot{StartTime: start, Available: s.Available})
	}
	return slots, nil
}

// ErrorResponse модель ошибки от сервиса бронирований
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
