package simulated

import (
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// Config параметры генерации демо-данных
type Config struct {
	Seed               uint64
	Stylists           int
	ServicesPerStylist int
	BookingsPerActor   int
	Latency            time.Duration
	Slots              domain.SlotConfig
	// Location часовой пояс, в котором мастера ведут расписание
	Location *time.Location
}

// Stylist мастер из демо-каталога
type Stylist struct {
	Summary   domain.StylistSummary
	Address   string
	Services  []domain.ServiceSnapshot
	Available bool
}

// findService ищет услугу в каталоге мастера
func (s *Stylist) findService(id string) (domain.ServiceSnapshot, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return domain.ServiceSnapshot{}, false
}
