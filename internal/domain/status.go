package domain

// Status is the lifecycle state of a booking
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusConfirmed      Status = "CONFIRMED"
	StatusInProgress     Status = "IN_PROGRESS"
	StatusCompleted      Status = "COMPLETED"
	StatusCancelled      Status = "CANCELLED"
	StatusDisputed       Status = "DISPUTED"
)

// AllStatuses in lifecycle order
var AllStatuses = []Status{
	StatusPendingPayment,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusDisputed,
}

// transitions lists the allowed targets for every non-terminal status.
// DISPUTED is reachable from every non-terminal status.
var transitions = map[Status][]Status{
	StatusPendingPayment: {StatusConfirmed, StatusCancelled, StatusDisputed},
	StatusConfirmed:      {StatusInProgress, StatusCancelled, StatusDisputed},
	StatusInProgress:     {StatusCompleted, StatusDisputed},
}

// ParseStatus converts a wire value to a Status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsValid returns true for a known status
func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no transition leaves this status
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusDisputed
}

// AllowedTransitions returns the statuses reachable from s in one step
func (s Status) AllowedTransitions() []Status {
	targets := transitions[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether from -> to is a legal lifecycle step
func CanTransition(from, to Status) bool {
	for _, target := range transitions[from] {
		if target == to {
			return true
		}
	}
	return false
}
