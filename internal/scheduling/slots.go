// Package scheduling generates candidate appointment slots.
// It never consults other bookings: the remote service is authoritative for conflicts.
package scheduling

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/types"
)

// ErrInvalidDuration возвращается для неположительной длительности услуги или шага
var ErrInvalidDuration = errors.New("scheduling: duration and step must be positive")

// Candidates yields start times from cfg.Window.Open in cfg.StepMinutes increments.
// A candidate is dropped when it does not fit before the window closes, or, when date
// is today in the date's own location, when it starts at or before the current time of day.
// Dates before today yield nothing.
func Candidates(date time.Time, durationMinutes int, cfg domain.SlotConfig, now time.Time) (iter.Seq[domain.AvailabilitySlot], error) {
	if durationMinutes <= 0 || cfg.StepMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration=%d step=%d", ErrInvalidDuration, durationMinutes, cfg.StepMinutes)
	}
	if err := cfg.Window.Validate(); err != nil {
		return nil, err
	}

	// Сравниваем в часовом поясе записи, а не клиента
	localNow := now.In(date.Location())
	open := cfg.Window.Open.Minutes()
	closing := cfg.Window.Close.Minutes()

	if isDateInPast(date, localNow) {
		return func(func(domain.AvailabilitySlot) bool) {}, nil
	}

	today := isSameDay(date, localNow)
	nowSeconds := localNow.Hour()*3600 + localNow.Minute()*60 + localNow.Second()

	return func(yield func(domain.AvailabilitySlot) bool) {
		for start := open; start+durationMinutes <= closing; start += cfg.StepMinutes {
			if today && start*60 <= nowSeconds {
				continue
			}
			startTime, err := types.NewTimeStringFromMinutes(start)
			if err != nil {
				return
			}
			if !yield(domain.AvailabilitySlot{StartTime: startTime, Available: true}) {
				return
			}
		}
	}, nil
}

// GenerateSlots collects Candidates into a slice ordered by start time
func GenerateSlots(date time.Time, durationMinutes int, cfg domain.SlotConfig, now time.Time) ([]domain.AvailabilitySlot, error) {
	seq, err := Candidates(date, durationMinutes, cfg, now)
	if err != nil {
		return nil, err
	}
	slots := slices.Collect(seq)
	if slots == nil {
		slots = []domain.AvailabilitySlot{}
	}
	return slots, nil
}

// MarkBooked sets Available=false on every slot that overlaps one of the active bookings.
// date supplies the calendar day and location the slot times belong to.
func MarkBooked(slots []domain.AvailabilitySlot, date time.Time, durationMinutes int, bookings []*domain.Booking) []domain.AvailabilitySlot {
	duration := time.Duration(durationMinutes) * time.Minute
	out := make([]domain.AvailabilitySlot, len(slots))

	for i, slot := range slots {
		out[i] = slot
		start := slot.StartTime.On(date)
		for _, b := range bookings {
			if b.IsActive() && b.Overlaps(start, duration) {
				out[i].Available = false
				break
			}
		}
	}

	return out
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.Before(nowOnly)
}
