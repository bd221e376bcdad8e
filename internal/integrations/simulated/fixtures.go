package simulated

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/policy"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/ptr"
)

// serviceCatalog услуги, из которых собираются каталоги мастеров
var serviceCatalog = []struct {
	name    string
	minutes int
}{
	{"Knotless braids", 240},
	{"Silk press", 120},
	{"Loc retwist", 150},
	{"Wash and style", 60},
	{"Cornrows", 90},
	{"Trim", 30},
	{"Twist out", 90},
	{"Colour", 120},
}

// newStylists генерирует каталог мастеров. Каждый пятый мастер не принимает записи.
func newStylists(f *gofakeit.Faker, cfg Config) []*Stylist {
	stylists := make([]*Stylist, 0, cfg.Stylists)

	for i := 0; i < cfg.Stylists; i++ {
		id := f.UUID()
		avatar := "https://i.pravatar.cc/150?u=" + id

		s := &Stylist{
			Summary: domain.StylistSummary{
				ID:          id,
				DisplayName: f.Name(),
				AvatarURL:   &avatar,
				Verified:    f.Bool(),
			},
			Address:   f.Street() + ", " + f.City(),
			Available: i%5 != 4,
		}

		first := f.Number(0, len(serviceCatalog)-1)
		for j := 0; j < cfg.ServicesPerStylist && j < len(serviceCatalog); j++ {
			item := serviceCatalog[(first+j)%len(serviceCatalog)]
			s.Services = append(s.Services, domain.ServiceSnapshot{
				ID:                f.UUID(),
				Name:              item.name,
				PriceMinor:        int64(f.Number(30, 400)) * 100,
				EstimatedDuration: item.minutes,
			})
		}

		stylists = append(stylists, s)
	}

	return stylists
}

// newBookings генерирует историю бронирований пользователя вокруг текущей даты.
// Каждое бронирование на отдельный день, поэтому они не пересекаются между собой.
func newBookings(f *gofakeit.Faker, stylists []*Stylist, customerID string, count int, now time.Time, loc *time.Location) []*domain.Booking {
	available := make([]*Stylist, 0, len(stylists))
	for _, s := range stylists {
		if s.Available && len(s.Services) > 0 {
			available = append(available, s)
		}
	}
	if len(available) == 0 {
		return nil
	}

	localNow := now.In(loc)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
	bookings := make([]*domain.Booking, 0, count)

	for i := 0; i < count; i++ {
		stylist := available[f.Number(0, len(available)-1)]
		service := stylist.Services[f.Number(0, len(stylist.Services)-1)]

		day := today.AddDate(0, 0, i-count/2)
		start := day.Add(time.Duration(8+f.Number(0, 5)) * time.Hour)

		location := domain.Location{Kind: domain.LocationProviderBase, Address: stylist.Address}
		if f.Bool() {
			lat, lng := f.Latitude(), f.Longitude()
			location = domain.Location{
				Kind:      domain.LocationCustomerAddress,
				Address:   f.Street() + ", " + f.City(),
				Latitude:  &lat,
				Longitude: &lng,
			}
		}

		price, err := policy.CalculatePrice(service.PriceMinor, location.Kind.HasTravelFee())
		if err != nil {
			continue
		}

		b := &domain.Booking{
			ID:             f.UUID(),
			CustomerID:     customerID,
			Stylist:        stylist.Summary,
			Service:        service,
			ScheduledStart: start.UTC(),
			Location:       location,
			TotalAmount:    price.TotalAmount,
			PlatformFee:    price.PlatformFee,
			CreatedAt:      start.Add(-72 * time.Hour).UTC(),
		}
		if b.CreatedAt.After(now) {
			b.CreatedAt = now.UTC()
		}
		b.Stylist.AvatarURL = cloneString(stylist.Summary.AvatarURL)

		switch {
		case !b.EndsAt().After(now):
			if f.Number(0, 3) == 0 {
				cancelled := start.Add(-48 * time.Hour).UTC()
				reason := "Schedule conflict"
				b.Status = domain.StatusCancelled
				b.CancelledAt = &cancelled
				b.CancellationReason = &reason
			} else {
				completed := b.EndsAt()
				b.Status = domain.StatusCompleted
				b.CompletedAt = &completed
				b.SettlementRef = ptr.Ptr(newReference(f))
			}
		case !b.ScheduledStart.After(now):
			b.Status = domain.StatusInProgress
			b.SettlementRef = ptr.Ptr(newReference(f))
		case f.Bool():
			b.Status = domain.StatusConfirmed
			b.SettlementRef = ptr.Ptr(newReference(f))
		default:
			b.Status = domain.StatusPendingPayment
		}

		bookings = append(bookings, b)
	}

	// Новые записи первыми, как отдает сервис бронирований
	slices.SortStableFunc(bookings, func(a, b *domain.Booking) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return bookings
}

// newReference генерирует ссылку на расчет в формате 0x + 64 hex из генератора f
func newReference(f *gofakeit.Faker) string {
	var b strings.Builder
	b.WriteString("0x")
	for range 4 {
		fmt.Fprintf(&b, "%016x", f.Uint64())
	}
	return b.String()
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
