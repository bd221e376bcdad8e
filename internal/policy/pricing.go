// Package policy contains the pure money rules of a booking: price breakdown,
// cancellation tiers and refund split. All amounts are int64 minor units.
package policy

import "fmt"

const (
	// FlatTravelFee is charged when the stylist travels to the customer (15.00)
	FlatTravelFee int64 = 1500

	// PlatformFeeBasisPoints is the platform share of the service amount (10%)
	PlatformFeeBasisPoints int64 = 1000

	// MaxAmountMinor bounds every total the policy accepts, keeping fee and refund math inside int64
	MaxAmountMinor int64 = 1_000_000_000_000_000

	basisPoints int64 = 10000
)

// PriceBreakdown is the itemised price of a booking.
// PlatformFee is informational: it is already part of TotalAmount.
type PriceBreakdown struct {
	ServiceAmount int64
	TravelFee     int64
	PlatformFee   int64
	TotalAmount   int64
}

// CalculatePrice builds the price breakdown for a service price
func CalculatePrice(servicePriceMinor int64, hasTravelFee bool) (PriceBreakdown, error) {
	if servicePriceMinor < 0 {
		return PriceBreakdown{}, fmt.Errorf("%w: negative service price %d", ErrInvalidAmount, servicePriceMinor)
	}

	var travelFee int64
	if hasTravelFee {
		travelFee = FlatTravelFee
	}
	if servicePriceMinor > MaxAmountMinor-travelFee {
		return PriceBreakdown{}, fmt.Errorf("%w: service price %d exceeds %d", ErrInvalidAmount, servicePriceMinor, MaxAmountMinor-travelFee)
	}

	return PriceBreakdown{
		ServiceAmount: servicePriceMinor,
		TravelFee:     travelFee,
		PlatformFee:   roundHalfUp(servicePriceMinor*PlatformFeeBasisPoints, basisPoints),
		TotalAmount:   servicePriceMinor + travelFee,
	}, nil
}

// roundHalfUp returns round(numerator/denominator) for non-negative operands
func roundHalfUp(numerator, denominator int64) int64 {
	return (numerator + denominator/2) / denominator
}
