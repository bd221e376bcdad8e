package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.StylistID) == "" {
		return fmt.Errorf("%w: stylistID is required", domain.ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", domain.ErrInvalidInput)
	}

	return nil
}
