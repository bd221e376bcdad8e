package list_bookings

import (
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings"
)

// BookingsResponse HTTP response model
type BookingsResponse struct {
	Bookings []handlers.BookingResponse `json:"bookings"`
	Page     int                        `json:"page"`
	HasMore  bool                       `json:"hasMore"`
	Total    int                        `json:"total"`
	Status   *string                    `json:"status,omitempty"`
	Role     string                     `json:"role,omitempty"`
}

// ParseFilter собирает фильтр из query параметров status и role
func ParseFilter(status, role string) (domain.ListFilter, error) {
	var filter domain.ListFilter

	if status != "" {
		s, err := domain.ParseStatus(status)
		if err != nil {
			return filter, err
		}
		filter.Status = &s
	}

	switch domain.Role(role) {
	case domain.RoleAny, domain.RoleCustomer, domain.RoleStylist:
		filter.Role = domain.Role(role)
	default:
		return filter, domain.ErrInvalidInput
	}

	return filter, nil
}

// FromState конвертирует снимок хранилища в HTTP response
func FromState(state bookings.State, now time.Time) *BookingsResponse {
	resp := &BookingsResponse{
		Bookings: handlers.FromDomainBookings(state.Bookings, now),
		Page:     state.Page,
		HasMore:  state.HasMore,
		Total:    state.Total,
		Role:     string(state.Filter.Role),
	}
	if state.Filter.Status != nil {
		s := string(*state.Filter.Status)
		resp.Status = &s
	}
	return resp
}
