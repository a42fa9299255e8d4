package outbox

import "time"

// Доменные события сервиса бронирования
// Имя топика Kafka совпадает с типом события
const (
	EventHoldCreated      = "booking.hold.created"
	EventHoldConsumed     = "booking.hold.consumed"
	EventBookingConfirmed = "booking.confirmed"
)

// Event конверт доменного события, записываемый в outbox-таблицу
// в той же транзакции, что и изменение состояния
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// Record строка outbox-таблицы
type Record struct {
	ID            int64
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}
