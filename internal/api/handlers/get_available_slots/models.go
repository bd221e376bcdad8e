package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StylistID string          `json:"stylistId"`
	Date      string          `json:"date"`
	Source    string          `json:"source"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	Available bool   `json:"isAvailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		StylistID: resp.StylistID,
		Date:      resp.Date.Format(domain.DateFormat),
		Source:    string(resp.Source),
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(stylistID, dateStr, durationStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	duration := 0
	if durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		StylistID:       stylistID,
		Date:            date,
		DurationMinutes: duration,
	}, nil
}
