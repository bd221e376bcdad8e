package bookings

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// settlementRefPattern ссылка на расчет: 0x и 64 hex символа
var settlementRefPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// newValidator создает валидатор для запросов хранилища
func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validateCreateRequest валидирует запрос на создание бронирования и
// возвращает его с обрезанными пробелами в ID и адресе
func validateCreateRequest(v *validator.Validate, req domain.CreateBookingRequest, now time.Time) (domain.CreateBookingRequest, error) {
	req.StylistID = strings.TrimSpace(req.StylistID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.Location.Address = strings.TrimSpace(req.Location.Address)

	if err := v.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	// Проверяем, что время начала указано и не в прошлом
	if req.ScheduledStart.IsZero() {
		return req, fmt.Errorf("%w: scheduled start is required", domain.ErrInvalidInput)
	}
	if !req.ScheduledStart.After(now) {
		return req, fmt.Errorf("%w: scheduled start must be in the future", domain.ErrInvalidInput)
	}

	// Координаты передаются парой
	if (req.Location.Latitude == nil) != (req.Location.Longitude == nil) {
		return req, fmt.Errorf("%w: latitude and longitude must be set together", domain.ErrInvalidInput)
	}

	return req, nil
}

// validateSettlementRef проверяет формат ссылки на расчет
func validateSettlementRef(ref string) error {
	if !settlementRefPattern.MatchString(ref) {
		return fmt.Errorf("%w: settlement reference must be 0x followed by 64 hex characters", domain.ErrInvalidInput)
	}
	return nil
}

// validateReason проверяет длину причины отмены
func validateReason(reason string) error {
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", domain.ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}

// validateID проверяет, что ID бронирования не пустой
func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: booking id is required", domain.ErrInvalidInput)
	}
	return nil
}
