package domain

import (
	"fmt"
	"time"
)

// LocationKind where the appointment takes place
type LocationKind string

const (
	LocationProviderBase    LocationKind = "STYLIST_BASE"
	LocationCustomerAddress LocationKind = "CUSTOMER_HOME"
)

// IsValid returns true for a known location kind
func (k LocationKind) IsValid() bool {
	return k == LocationProviderBase || k == LocationCustomerAddress
}

// HasTravelFee returns true if the provider travels to the customer
func (k LocationKind) HasTravelFee() bool {
	return k == LocationCustomerAddress
}

// Location of the appointment
type Location struct {
	Kind      LocationKind
	Address   string
	Latitude  *float64
	Longitude *float64
}

// StylistSummary is a read-only snapshot of the provider taken at booking time
type StylistSummary struct {
	ID          string
	DisplayName string
	AvatarURL   *string
	Verified    bool
}

// ServiceSnapshot is the service as it was priced when the booking was created
type ServiceSnapshot struct {
	ID                string
	Name              string
	PriceMinor        int64
	EstimatedDuration int // minutes
}

// Booking represents a scheduled appointment between a customer and a stylist.
// Everything except status, settlement and lifecycle timestamps is frozen at creation.
type Booking struct {
	ID         string
	CustomerID string
	Stylist    StylistSummary
	Service    ServiceSnapshot

	// ScheduledStart is an absolute instant; compare it with time.Time values only
	ScheduledStart time.Time
	Location       Location

	TotalAmount int64 // minor units
	PlatformFee int64 // minor units, already included in TotalAmount

	SettlementRef *string
	Status        Status

	Notes              *string
	CancellationReason *string

	CreatedAt   time.Time
	CancelledAt *time.Time
	CompletedAt *time.Time
}

// Duration returns the appointment length derived from the service snapshot
func (b *Booking) Duration() time.Duration {
	return time.Duration(b.Service.EstimatedDuration) * time.Minute
}

// EndsAt returns the instant the appointment is expected to finish
func (b *Booking) EndsAt() time.Time {
	return b.ScheduledStart.Add(b.Duration())
}

// IsInPast returns true if the appointment start is not after now
func (b *Booking) IsInPast(now time.Time) bool {
	return !b.ScheduledStart.After(now)
}

// CanBeCancelled returns true if the booking status allows cancellation
// and the appointment has not started yet. Must be evaluated at call time.
func (b *Booking) CanBeCancelled(now time.Time) bool {
	if b.Status != StatusPendingPayment && b.Status != StatusConfirmed {
		return false
	}
	return !b.IsInPast(now)
}

// IsActive returns true if the booking still occupies the stylist's time
func (b *Booking) IsActive() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// Overlaps returns true if the two bookings share any time. Touching intervals do not overlap.
func (b *Booking) Overlaps(start time.Time, duration time.Duration) bool {
	return b.ScheduledStart.Before(start.Add(duration)) && b.EndsAt().After(start)
}

// Validate checks the money and identity invariants of a booking
func (b *Booking) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: booking id is empty", ErrInvalidBooking)
	}
	if !b.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidBooking, b.Status)
	}
	if b.PlatformFee < 0 {
		return fmt.Errorf("%w: negative platform fee %d", ErrInvalidBooking, b.PlatformFee)
	}
	if b.TotalAmount < b.PlatformFee {
		return fmt.Errorf("%w: total %d is less than platform fee %d", ErrInvalidBooking, b.TotalAmount, b.PlatformFee)
	}
	if b.ScheduledStart.IsZero() {
		return fmt.Errorf("%w: scheduled start is empty", ErrInvalidBooking)
	}
	return nil
}

// Clone returns a deep copy so cached bookings are never shared with callers
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	c.Stylist.AvatarURL = cloneString(b.Stylist.AvatarURL)
	c.Location.Latitude = cloneFloat(b.Location.Latitude)
	c.Location.Longitude = cloneFloat(b.Location.Longitude)
	c.SettlementRef = cloneString(b.SettlementRef)
	c.Notes = cloneString(b.Notes)
	c.CancellationReason = cloneString(b.CancellationReason)
	c.CancelledAt = cloneTime(b.CancelledAt)
	c.CompletedAt = cloneTime(b.CompletedAt)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
