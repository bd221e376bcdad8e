package domain

import "github.com/m04kA/SMC-BookingLifecycle/pkg/types"

// AvailabilitySlot is a candidate appointment start time.
// Slots have no identity and are recomputed on every request.
type AvailabilitySlot struct {
	StartTime types.TimeString
	Available bool
}

// SlotSource tells where a list of slots came from
type SlotSource string

const (
	SlotSourceRemote    SlotSource = "remote"
	SlotSourceGenerated SlotSource = "generated"
)
