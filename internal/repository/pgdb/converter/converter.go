package converter

import (
	json "github.com/goccy/go-json"
	"github.com/profibuy/storefront/internal/domain"
)

// EventConverter преобразует события витрины между domain и моделью PostgreSQL.
// Payload хранится в jsonb.
type EventConverter struct{}

func (EventConverter) ToModel(entity *domain.Event) (*EventModel, error) {
	payload := entity.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &EventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		AggregateID: entity.AggregateID,
		Payload:     data,
		Status:      string(entity.Status),
		Attempts:    entity.Attempts,
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}, nil
}

func (EventConverter) ToEntity(model *EventModel) (*domain.Event, error) {
	var payload map[string]any
	if len(model.Payload) > 0 {
		if err := json.Unmarshal(model.Payload, &payload); err != nil {
			return nil, err
		}
	}

	return &domain.Event{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   domain.EventType(model.EventType),
		AggregateID: model.AggregateID,
		Payload:     payload,
		Status:      domain.EventStatus(model.Status),
		Attempts:    model.Attempts,
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}, nil
}

func (c EventConverter) ToArrEntity(models []*EventModel) ([]*domain.Event, error) {
	result := make([]*domain.Event, 0, len(models))
	for _, model := range models {
		entity, err := c.ToEntity(model)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, nil
}
