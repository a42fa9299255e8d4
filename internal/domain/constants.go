package domain

import (
	"time"

	"github.com/courtify/CourtBookingService/pkg/types"
)

// Slot engine constants
const (
	// SlotStepMinutes фиксированный шаг сетки слотов
	SlotStepMinutes = 15

	// HoldTTL время жизни hold с момента создания
	HoldTTL = 5 * time.Minute

	// SlotLockTTL время жизни slot lock; чуть больше HoldTTL, чтобы после
	// истечения hold оставался запас, в течение которого никто не может
	// повторно захватить тот же интервал
	SlotLockTTL = 6 * time.Minute
)

// Business validation constants
const (
	MinServiceDurationMinutes = SlotStepMinutes
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxSlotRangeDays          = 31
	MaxReasonLength           = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// FullDayOpen/FullDayClose окно по умолчанию для дня недели без настроенных
// рабочих часов: площадка считается открытой весь день
var (
	FullDayOpen  = types.TimeString("00:00")
	FullDayClose = types.TimeString("23:59")
)
