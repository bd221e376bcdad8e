package get_cancellation_quote

import (
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/money"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	BookingID             string       `json:"bookingId"`
	Cancellable           bool         `json:"cancellable"`
	HoursUntilAppointment float64      `json:"hoursUntilAppointment"`
	RefundPercentage      int          `json:"refundPercentage"`
	RefundAmount          money.Amount `json:"refundAmount"`
	StylistFee            money.Amount `json:"stylistFee"`
	Message               string       `json:"message"`
}

// FromQuote конвертирует условия отмены в HTTP response
func FromQuote(q *bookings.CancellationQuote) *QuoteResponse {
	return &QuoteResponse{
		BookingID:             q.BookingID,
		Cancellable:           q.Cancellable,
		HoursUntilAppointment: q.Policy.HoursUntilAppointment,
		RefundPercentage:      q.Policy.RefundPercentage,
		RefundAmount:          money.Amount(q.Refund.RefundAmount),
		StylistFee:            money.Amount(q.Refund.ProviderFee),
		Message:               q.Policy.Message,
	}
}
