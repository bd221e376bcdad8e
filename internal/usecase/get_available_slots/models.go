package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StylistID       string    // ID мастера
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Длительность услуги, 0 означает шаг сетки
}

// Response модель ответа со списком слотов
type Response struct {
	StylistID string                    // ID мастера
	Date      time.Time                 // Дата, на которую запрашивались слоты
	Source    domain.SlotSource         // remote или generated, если сервис недоступен
	Slots     []domain.AvailabilitySlot // Слоты по возрастанию времени начала
}
