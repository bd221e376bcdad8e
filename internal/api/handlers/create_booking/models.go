package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StylistID          string          `json:"stylistId"`
	ServiceID          string          `json:"serviceId"`
	ScheduledStartTime string          `json:"scheduledStartTime"` // RFC3339, "2026-09-20T10:00:00Z"
	Location           LocationRequest `json:"location"`
	Notes              *string         `json:"notes,omitempty"`
}

// LocationRequest место оказания услуги
type LocationRequest struct {
	Type      string   `json:"type"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// ToDomainRequest конвертирует HTTP запрос в запрос хранилища
func (r *CreateBookingRequest) ToDomainRequest() (domain.CreateBookingRequest, error) {
	start, err := time.Parse(time.RFC3339, r.ScheduledStartTime)
	if err != nil {
		return domain.CreateBookingRequest{}, fmt.Errorf("%w: scheduledStartTime: %v", domain.ErrInvalidInput, err)
	}

	return domain.CreateBookingRequest{
		StylistID:      r.StylistID,
		ServiceID:      r.ServiceID,
		ScheduledStart: start,
		Location: domain.LocationRequest{
			Kind:      domain.LocationKind(r.Location.Type),
			Address:   r.Location.Address,
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
		},
		Notes: r.Notes,
	}, nil
}
