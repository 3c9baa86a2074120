package domain

import "time"

type EventType string

const (
	EventOrderPlaced         EventType = "order_placed"
	EventCartCleared         EventType = "cart_cleared"
	EventSupplierJobFinished EventType = "supplier_job_finished"
)

type EventStatus string

const (
	EventPending    EventStatus = "pending"
	EventProcessing EventStatus = "processing"
	EventProcessed  EventStatus = "processed"
)

// Event — событие витрины, которое через outbox уходит в Kafka.
type Event struct {
	ID          int64
	EventID     string
	EventType   EventType
	AggregateID string
	Payload     map[string]any
	Status      EventStatus
	Attempts    int
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewEvent(eventID string, eventType EventType, aggregateID string, payload map[string]any, now time.Time) *Event {
	return &Event{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      EventPending,
		CreatedAt:   now,
	}
}
