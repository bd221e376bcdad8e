package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/scheduling"
)

// UseCase use case для получения доступных слотов мастера
type UseCase struct {
	live         AvailabilitySource
	simulated    AvailabilitySource
	mode         ModeProvider
	slotConfig   domain.SlotConfig
	location     *time.Location
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	live AvailabilitySource,
	simulated AvailabilitySource,
	mode ModeProvider,
	slotConfig domain.SlotConfig,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		live:         live,
		simulated:    simulated,
		mode:         mode,
		slotConfig:   slotConfig,
		location:     location,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Если удаленный сервис недоступен, слоты генерируются локально как подсказка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: stylist=%s, date=%s, duration=%d",
		req.StylistID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	actor, err := domain.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Календарная дата относится к часовому поясу расписания, а не к поясу разбора
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)

	// 3. Выбираем источник по текущему режиму
	source, sourceName := uc.live, "live"
	if uc.mode.Simulated() {
		source, sourceName = uc.simulated, "simulated"
	}

	slots, err := source.Availability(ctx, actor, req.StylistID, date)
	if err == nil {
		uc.logger.Info("GetAvailableSlots: %d slots from %s source for stylist=%s", len(slots), sourceName, req.StylistID)
		return &Response{
			StylistID: req.StylistID,
			Date:      date,
			Source:    domain.SlotSourceRemote,
			Slots:     slots,
		}, nil
	}

	// 4. Сетевые и серверные ошибки не блокируют выбор времени
	if !errors.Is(domain.KindOf(err), domain.ErrRequestFailed) {
		uc.logger.Warn("GetAvailableSlots: %s source rejected request for stylist=%s: %v", sourceName, req.StylistID, err)
		return nil, err
	}

	uc.logger.Warn("GetAvailableSlots: %s source failed, generating slots locally: %v", sourceName, err)

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.slotConfig.StepMinutes
	}

	generated, genErr := scheduling.GenerateSlots(date, duration, uc.slotConfig, uc.timeProvider.Now())
	if genErr != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", genErr)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, genErr)
	}
	uc.metrics.ObserveSlotFallback()

	return &Response{
		StylistID: req.StylistID,
		Date:      date,
		Source:    domain.SlotSourceGenerated,
		Slots:     generated,
	}, nil
}
