package get_available_slots

import (
	"fmt"
	"time"

	"github.com/courtify/CourtBookingService/internal/domain"
)

// resolveOpeningWindows разворачивает недельное расписание площадки в конкретные
// рабочие окна (UTC) для каждого локального дня диапазона [from, to), где from
// и to - локальные полуночи в таймзоне площадки. День без настроенных часов
// считается открытым целиком (00:00-23:59).
//
// Границы окна строятся из локального настенного времени через time.Date в
// таймзоне площадки, поэтому перевод часов учитывается автоматически: окно
// дня с переходом на летнее время короче или длиннее на час в UTC.
func resolveOpeningWindows(venue *domain.Venue, loc *time.Location, from, to time.Time) ([]domain.Interval, error) {
	var windows []domain.Interval
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		entries := venue.HoursForWeekday(int(day.Weekday()))
		if len(entries) == 0 {
			entries = []domain.OpeningHoursEntry{{
				Weekday:   int(day.Weekday()),
				OpenTime:  domain.FullDayOpen,
				CloseTime: domain.FullDayClose,
			}}
		}

		for _, entry := range entries {
			window, err := windowForDay(day, entry, loc)
			if err != nil {
				return nil, err
			}
			if window.IsValid() {
				windows = append(windows, window)
			}
		}
	}

	return windows, nil
}

// windowForDay строит UTC-интервал одного рабочего окна в конкретный день
func windowForDay(day time.Time, entry domain.OpeningHoursEntry, loc *time.Location) (domain.Interval, error) {
	openMinutes, err := entry.OpenTime.Minutes()
	if err != nil {
		return domain.Interval{}, fmt.Errorf("invalid open time %q: %v", entry.OpenTime, err)
	}
	closeMinutes, err := entry.CloseTime.Minutes()
	if err != nil {
		return domain.Interval{}, fmt.Errorf("invalid close time %q: %v", entry.CloseTime, err)
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), openMinutes/60, openMinutes%60, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), closeMinutes/60, closeMinutes%60, 0, 0, loc)

	return domain.Interval{Start: start.UTC(), End: end.UTC()}, nil
}

// generateCandidates строит кандидатов в слоты: внутри каждого окна стартовые
// времена идут с фиксированным шагом от начала окна, слот обязан целиком
// помещаться в окно. Хвост окна, не вмещающий полный слот, отбрасывается -
// в том числе когда длительность не кратна шагу.
func generateCandidates(windows []domain.Interval, durationMinutes int) []domain.Interval {
	duration := time.Duration(durationMinutes) * time.Minute
	step := domain.SlotStepMinutes * time.Minute

	var candidates []domain.Interval
	for _, window := range windows {
		for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(step) {
			candidates = append(candidates, domain.Interval{Start: start, End: start.Add(duration)})
		}
	}
	return candidates
}

// filterFree убирает кандидатов, пересекающих хотя бы один занятый интервал
func filterFree(candidates []domain.Interval, busy []domain.Interval) []Slot {
	slots := make([]Slot, 0, len(candidates))
	for _, c := range candidates {
		if c.IntersectsAny(busy) {
			continue
		}
		slots = append(slots, Slot{StartAtUtc: c.Start, EndAtUtc: c.End})
	}
	return slots
}
