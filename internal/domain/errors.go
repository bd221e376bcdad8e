package domain

import "errors"

var (
	// ErrSlotUnavailable возвращается, когда выбранное время уже занято
	ErrSlotUnavailable = errors.New("booking: slot unavailable")

	// ErrProviderUnavailable возвращается, когда мастер не принимает записи в это время
	ErrProviderUnavailable = errors.New("booking: stylist unavailable")

	// ErrServiceNotFound возвращается, когда услуга не найдена у мастера
	ErrServiceNotFound = errors.New("booking: service not found")

	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = errors.New("booking: not found")

	// ErrCannotCancel возвращается при попытке отменить неотменяемое бронирование
	ErrCannotCancel = errors.New("booking: cannot be cancelled")

	// ErrEscrowNotFound возвращается, когда подтверждение оплаты не найдено
	ErrEscrowNotFound = errors.New("booking: escrow not found")

	// ErrEscrowMismatch возвращается, когда сумма оплаты не совпадает с суммой бронирования
	ErrEscrowMismatch = errors.New("booking: escrow amount mismatch")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("booking: invalid status transition")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("booking: invalid status")

	// ErrInvalidBooking возвращается, когда запись нарушает инварианты
	ErrInvalidBooking = errors.New("booking: invalid booking record")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking: invalid input")

	// ErrUnauthenticated возвращается, когда в контексте нет текущего пользователя
	ErrUnauthenticated = errors.New("booking: no authenticated actor")

	// ErrOperationInProgress возвращается, когда такая же операция уже выполняется
	ErrOperationInProgress = errors.New("booking: operation already in progress")

	// ErrRequestFailed сетевые и серверные ошибки без более точной классификации
	ErrRequestFailed = errors.New("booking: request failed")
)

var kinds = []error{
	ErrSlotUnavailable,
	ErrProviderUnavailable,
	ErrServiceNotFound,
	ErrNotFound,
	ErrCannotCancel,
	ErrEscrowNotFound,
	ErrEscrowMismatch,
	ErrInvalidTransition,
	ErrInvalidStatus,
	ErrInvalidBooking,
	ErrInvalidInput,
	ErrUnauthenticated,
	ErrOperationInProgress,
	ErrRequestFailed,
}

// KindOf returns the taxonomy sentinel err belongs to, ErrRequestFailed for anything unknown
// and nil for a nil error
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrRequestFailed
}

// IsRetryable returns true if the same action may succeed when attempted again
// (possibly with a different time)
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case ErrSlotUnavailable, ErrProviderUnavailable, ErrRequestFailed, ErrOperationInProgress:
		return true
	default:
		return false
	}
}
