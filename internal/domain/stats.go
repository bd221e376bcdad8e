package domain

// RoleStats aggregates bookings for one side of the marketplace
type RoleStats struct {
	Total      int
	Pending    int
	Confirmed  int
	InProgress int
	Completed  int
	Cancelled  int
	// AmountMinor is spent money for the customer role and earned money for the stylist role
	AmountMinor int64
}

// Add counts a booking into the aggregate
func (s *RoleStats) Add(b *Booking) {
	s.Total++
	switch b.Status {
	case StatusPendingPayment:
		s.Pending++
	case StatusConfirmed:
		s.Confirmed++
	case StatusInProgress:
		s.InProgress++
	case StatusCompleted:
		s.Completed++
		s.AmountMinor += b.TotalAmount
	case StatusCancelled:
		s.Cancelled++
	}
}

// BookingStats split by the role the actor played
type BookingStats struct {
	AsCustomer RoleStats
	AsStylist  RoleStats
}
