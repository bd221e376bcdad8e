package policy

import "errors"

var (
	// ErrInvalidAmount возвращается для отрицательных сумм и сумм больше MaxAmountMinor
	ErrInvalidAmount = errors.New("policy: invalid amount")

	// ErrInvalidPercentage возвращается для процента возврата вне политики
	ErrInvalidPercentage = errors.New("policy: refund percentage must be one of 0, 50, 75, 100")
)
