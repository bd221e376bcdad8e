package policy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePriceTotals(t *testing.T) {
	for _, price := range []int64{0, 1, 5, 999, 50000, 123457} {
		plain, err := CalculatePrice(price, false)
		require.NoError(t, err)
		assert.Equal(t, price, plain.TotalAmount)
		assert.Zero(t, plain.TravelFee)

		withTravel, err := CalculatePrice(price, true)
		require.NoError(t, err)
		assert.Equal(t, price+FlatTravelFee, withTravel.TotalAmount)
		assert.Equal(t, FlatTravelFee, withTravel.TravelFee)
		assert.Equal(t, plain.PlatformFee, withTravel.PlatformFee, "travel fee is not part of platform fee")
	}
}

func TestCalculatePricePlatformFeeRounding(t *testing.T) {
	tests := []struct {
		price int64
		fee   int64
	}{
		{50000, 5000},
		{5, 1},   // 0.5 rounds up
		{4, 0},   // 0.4 rounds down
		{15, 2},  // 1.5 rounds up
		{14, 1},  // 1.4 rounds down
		{999, 100},
	}
	for _, tt := range tests {
		got, err := CalculatePrice(tt.price, false)
		require.NoError(t, err)
		assert.Equal(t, tt.fee, got.PlatformFee, "price %d", tt.price)
	}
}

func TestCalculatePriceRejectsNegative(t *testing.T) {
	_, err := CalculatePrice(-1, false)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCalculatePriceRejectsOverflow(t *testing.T) {
	for _, price := range []int64{MaxAmountMinor + 1, 1 << 62, math.MaxInt64} {
		_, err := CalculatePrice(price, false)
		assert.ErrorIs(t, err, ErrInvalidAmount, "price %d", price)
	}

	// Сбор за выезд учитывается в верхней границе
	_, err := CalculatePrice(MaxAmountMinor, true)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	got, err := CalculatePrice(MaxAmountMinor-FlatTravelFee, true)
	require.NoError(t, err)
	assert.Equal(t, MaxAmountMinor, got.TotalAmount)
	assert.Positive(t, got.PlatformFee)
	assert.Less(t, got.PlatformFee, got.TotalAmount)

	split, err := SplitRefund(got.TotalAmount, 75)
	require.NoError(t, err)
	assert.Equal(t, got.TotalAmount, split.RefundAmount+split.ProviderFee)
	assert.Positive(t, split.ProviderFee)
}

func TestEvaluateCancellationBoundaries(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(hours float64) time.Time {
		return now.Add(time.Duration(hours * float64(time.Hour)))
	}

	tests := []struct {
		hours float64
		want  int
	}{
		{48, 100},
		{24.01, 100},
		{24, 75},
		{13, 75},
		{12, 50},
		{2.5, 50},
		{2, 0},
		{1.99, 0},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		got := EvaluateCancellation(at(tt.hours), now)
		assert.Equal(t, tt.want, got.RefundPercentage, "%.2f hours", tt.hours)
		assert.InDelta(t, tt.hours, got.HoursUntilAppointment, 1e-9)
		assert.NotEmpty(t, got.Message)
	}
}

func TestSplitRefundSumsToTotal(t *testing.T) {
	for _, total := range []int64{0, 1, 3, 99, 333, 50000, 123457} {
		for _, pct := range []int{0, 50, 75, 100} {
			split, err := SplitRefund(total, pct)
			require.NoError(t, err)
			assert.Equal(t, total, split.RefundAmount+split.ProviderFee, "total=%d pct=%d", total, pct)
			assert.GreaterOrEqual(t, split.RefundAmount, int64(0))
			assert.GreaterOrEqual(t, split.ProviderFee, int64(0))
			assert.LessOrEqual(t, split.RefundAmount, total)
		}
	}
}

func TestSplitRefundRounding(t *testing.T) {
	split, err := SplitRefund(333, 75) // 249.75
	require.NoError(t, err)
	assert.Equal(t, int64(250), split.RefundAmount)
	assert.Equal(t, int64(83), split.ProviderFee)

	split, err = SplitRefund(3, 50) // 1.5
	require.NoError(t, err)
	assert.Equal(t, int64(2), split.RefundAmount)
}

func TestSplitRefundRejects(t *testing.T) {
	_, err := SplitRefund(100, 30)
	assert.ErrorIs(t, err, ErrInvalidPercentage)

	_, err = SplitRefund(-100, 50)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = SplitRefund(math.MaxInt64, 100)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = SplitRefund(MaxAmountMinor+1, 50)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestEndToEndRefund(t *testing.T) {
	start := time.Date(2026, 6, 3, 10, 0, 0, 0, time.UTC)

	price, err := CalculatePrice(50000, false)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), price.TotalAmount)
	assert.Equal(t, int64(5000), price.PlatformFee)

	early := EvaluateCancellation(start, start.Add(-30*time.Hour))
	assert.Equal(t, 100, early.RefundPercentage)
	split, err := SplitRefund(price.TotalAmount, early.RefundPercentage)
	require.NoError(t, err)
	assert.Equal(t, RefundSplit{RefundAmount: 50000, ProviderFee: 0}, split)

	late := EvaluateCancellation(start, start.Add(-time.Hour))
	assert.Equal(t, 0, late.RefundPercentage)
	split, err = SplitRefund(price.TotalAmount, late.RefundPercentage)
	require.NoError(t, err)
	assert.Equal(t, RefundSplit{RefundAmount: 0, ProviderFee: 50000}, split)
}
