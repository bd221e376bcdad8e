package policy

import (
	"fmt"
	"time"
)

// Refund tiers, hours until the appointment
const (
	fullRefundAfterHours    = 24
	partialRefundAfterHours = 12
	halfRefundAfterHours    = 2
)

// CancellationPolicy is the refund a customer gets when cancelling now
type CancellationPolicy struct {
	HoursUntilAppointment float64
	RefundPercentage      int
	Message               string
}

// EvaluateCancellation maps the time left before scheduledStart to a refund tier.
// Every bound is exclusive from below: exactly 24h falls into the 75% tier.
func EvaluateCancellation(scheduledStart, now time.Time) CancellationPolicy {
	hours := scheduledStart.Sub(now).Hours()

	switch {
	case hours > fullRefundAfterHours:
		return CancellationPolicy{
			HoursUntilAppointment: hours,
			RefundPercentage:      100,
			Message:               "Full refund: cancelled more than 24 hours before the appointment",
		}
	case hours > partialRefundAfterHours:
		return CancellationPolicy{
			HoursUntilAppointment: hours,
			RefundPercentage:      75,
			Message:               "75% refund: cancelled 12-24 hours before the appointment",
		}
	case hours > halfRefundAfterHours:
		return CancellationPolicy{
			HoursUntilAppointment: hours,
			RefundPercentage:      50,
			Message:               "50% refund: cancelled 2-12 hours before the appointment",
		}
	default:
		return CancellationPolicy{
			HoursUntilAppointment: hours,
			RefundPercentage:      0,
			Message:               "No refund: cancelled less than 2 hours before the appointment",
		}
	}
}

// RefundSplit divides a paid total between the customer refund and the stylist
type RefundSplit struct {
	RefundAmount int64
	ProviderFee  int64
}

// SplitRefund computes the refund for one of the policy percentages (0, 50, 75, 100)
func SplitRefund(totalMinor int64, refundPercentage int) (RefundSplit, error) {
	if totalMinor < 0 {
		return RefundSplit{}, fmt.Errorf("%w: negative total %d", ErrInvalidAmount, totalMinor)
	}
	if totalMinor > MaxAmountMinor {
		return RefundSplit{}, fmt.Errorf("%w: total %d exceeds %d", ErrInvalidAmount, totalMinor, MaxAmountMinor)
	}
	if !isPolicyPercentage(refundPercentage) {
		return RefundSplit{}, fmt.Errorf("%w: %d", ErrInvalidPercentage, refundPercentage)
	}

	refund := roundHalfUp(totalMinor*int64(refundPercentage), 100)

	return RefundSplit{
		RefundAmount: refund,
		ProviderFee:  totalMinor - refund,
	}, nil
}

func isPolicyPercentage(p int) bool {
	switch p {
	case 0, 50, 75, 100:
		return true
	default:
		return false
	}
}
