package domain

// Default scheduling values
const (
	DefaultOpenTime        = "08:00"
	DefaultCloseTime       = "18:00"
	DefaultSlotStepMinutes = 30
	DefaultPageSize        = 20
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxPageSize                 = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses occupy the stylist's calendar
var ActiveStatuses = []Status{
	StatusPendingPayment,
	StatusConfirmed,
	StatusInProgress,
}
