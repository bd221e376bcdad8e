package domain

import (
	"fmt"

	"github.com/m04kA/SMC-BookingLifecycle/pkg/types"
)

// OperatingWindow is the half-open interval [Open, Close) a stylist accepts appointments in
type OperatingWindow struct {
	Open  types.TimeString
	Close types.TimeString
}

// DefaultOperatingWindow is 08:00-18:00
var DefaultOperatingWindow = OperatingWindow{
	Open:  DefaultOpenTime,
	Close: DefaultCloseTime,
}

// Validate checks both bounds and their order
func (w OperatingWindow) Validate() error {
	if err := w.Open.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidInput, err)
	}
	if err := w.Close.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidInput, err)
	}
	if !w.Open.IsBefore(w.Close) {
		return fmt.Errorf("%w: open time %s is not before close time %s", ErrInvalidInput, w.Open, w.Close)
	}
	return nil
}

// Contains returns true if an appointment of durationMinutes starting at start fits the window
func (w OperatingWindow) Contains(start types.TimeString, durationMinutes int) bool {
	begin := start.Minutes()
	if begin < w.Open.Minutes() {
		return false
	}
	return begin+durationMinutes <= w.Close.Minutes()
}

// SlotConfig holds the parameters of slot generation
type SlotConfig struct {
	Window      OperatingWindow
	StepMinutes int
}

// DefaultSlotConfig 08:00-18:00 with a 30 minute step
var DefaultSlotConfig = SlotConfig{
	Window:      DefaultOperatingWindow,
	StepMinutes: DefaultSlotStepMinutes,
}
