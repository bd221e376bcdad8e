package lifecycleapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("lifecycleapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("lifecycleapi client: invalid response")
)

// RemoteError ошибка, полученная от сервиса бронирований.
// Unwrap возвращает сентинел из domain, поэтому errors.Is(err, domain.ErrNotFound) работает.
type RemoteError struct {
	Status  int
	Code    string
	Message string
	Kind    error
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%v: %s (status=%d, code=%s)", e.Kind, e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%v: %s (status=%d)", e.Kind, e.Message, e.Status)
}

func (e *RemoteError) Unwrap() error {
	return e.Kind
}

// Коды ошибок сервиса бронирований
const (
	codeSlotUnavailable      = "SLOT_UNAVAILABLE"
	codeStylistUnavailable   = "STYLIST_UNAVAILABLE"
	codeProviderUnavailable  = "PROVIDER_UNAVAILABLE"
	codeServiceNotFound      = "SERVICE_NOT_FOUND"
	codeBookingNotFound      = "BOOKING_NOT_FOUND"
	codeNotFound             = "NOT_FOUND"
	codeCannotCancel         = "CANNOT_CANCEL"
	codeEscrowNotFound       = "ESCROW_NOT_FOUND"
	codeEscrowMismatch       = "ESCROW_MISMATCH"
	codeEscrowAmountMismatch = "ESCROW_AMOUNT_MISMATCH"
	codeInvalidTransition    = "INVALID_STATUS_TRANSITION"
	codeValidation           = "VALIDATION_ERROR"
	codeUnauthorized         = "UNAUTHORIZED"
)

var kindByCode = map[string]error{
	codeSlotUnavailable:      domain.ErrSlotUnavailable,
	codeStylistUnavailable:   domain.ErrProviderUnavailable,
	codeProviderUnavailable:  domain.ErrProviderUnavailable,
	codeServiceNotFound:      domain.ErrServiceNotFound,
	codeBookingNotFound:      domain.ErrNotFound,
	codeNotFound:             domain.ErrNotFound,
	codeCannotCancel:         domain.ErrCannotCancel,
	codeEscrowNotFound:       domain.ErrEscrowNotFound,
	codeEscrowMismatch:       domain.ErrEscrowMismatch,
	codeEscrowAmountMismatch: domain.ErrEscrowMismatch,
	codeInvalidTransition:    domain.ErrInvalidTransition,
	codeValidation:           domain.ErrInvalidInput,
	codeUnauthorized:         domain.ErrUnauthenticated,
}

// kindByStatus классифицирует ошибку без кода по HTTP статусу и операции
func kindByStatus(op string, status int) error {
	switch status {
	case http.StatusNotFound:
		if op == opCreate {
			return domain.ErrServiceNotFound
		}
		return domain.ErrNotFound
	case http.StatusConflict:
		switch op {
		case opCreate:
			return domain.ErrSlotUnavailable
		case opCancel:
			return domain.ErrCannotCancel
		case opUpdateStatus:
			return domain.ErrInvalidTransition
		}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthenticated
	}
	return domain.ErrRequestFailed
}
