package domain

import "time"

// Role of the actor in a booking
type Role string

const (
	RoleAny      Role = ""
	RoleCustomer Role = "customer"
	RoleStylist  Role = "stylist"
)

// CreateBookingRequest is what the customer submits
type CreateBookingRequest struct {
	StylistID      string    `validate:"required"`
	ServiceID      string    `validate:"required"`
	ScheduledStart time.Time `validate:"required"`
	Location       LocationRequest
	Notes          *string `validate:"omitempty,max=500"`
}

// LocationRequest coordinates are the only optional part
type LocationRequest struct {
	Kind      LocationKind `validate:"required,oneof=STYLIST_BASE CUSTOMER_HOME"`
	Address   string       `validate:"required"`
	Latitude  *float64     `validate:"omitempty,latitude"`
	Longitude *float64     `validate:"omitempty,longitude"`
}

// ListFilter narrows a booking listing
type ListFilter struct {
	Status *Status
	Role   Role
}

// Equal compares two filters by value
func (f ListFilter) Equal(other ListFilter) bool {
	if f.Role != other.Role {
		return false
	}
	if f.Status == nil || other.Status == nil {
		return f.Status == nil && other.Status == nil
	}
	return *f.Status == *other.Status
}

// Matches returns true if the booking passes the filter for the given actor
func (f ListFilter) Matches(b *Booking, actorID string) bool {
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	switch f.Role {
	case RoleCustomer:
		return b.CustomerID == actorID
	case RoleStylist:
		return b.Stylist.ID == actorID
	default:
		return b.CustomerID == actorID || b.Stylist.ID == actorID
	}
}

// BookingPage is one page of a listing
type BookingPage struct {
	Bookings []*Booking
	Total    int
	Page     int
	Limit    int
	HasMore  bool
}

// ConfirmPaymentOptions tune the settlement check
type ConfirmPaymentOptions struct {
	SkipOnChainVerification bool
}

// EscrowRecord is the settlement as reported by the remote side
type EscrowRecord struct {
	Reference   string
	AmountMinor int64
	Status      string
}

// PaymentConfirmation is the result of attaching a settlement reference
type PaymentConfirmation struct {
	Booking *Booking
	Message string
	Escrow  *EscrowRecord
}
