package usecase

import (
	"context"

	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

// TxManager выполняет функцию внутри транзакции БД.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventsUCImpl записывает события витрины в outbox. В Kafka их отправляет OutboxWorker.
type EventsUCImpl struct {
	repo   OutboxRepository
	tx     TxManager
	logger logger.Logger
}

func NewEventsUC(repo OutboxRepository, tx TxManager, logger logger.Logger) *EventsUCImpl {
	return &EventsUCImpl{
		repo:   repo,
		tx:     tx,
		logger: logger,
	}
}

// Record сохраняет события одной транзакцией: либо все, либо ни одного.
func (ev *EventsUCImpl) Record(ctx context.Context, events ...*domain.Event) error {
	const op = "EventsUC.Record"

	if len(events) == 0 {
		return nil
	}

	err := ev.tx.Do(ctx, func(ctx context.Context) error {
		for _, event := range events {
			if _, err := ev.repo.Create(ctx, event); err != nil {
				return e.Wrap(whereami.WhereAmI(), err)
			}
		}
		return nil
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	for _, event := range events {
		ev.logger.Debugf("event %s (%s) recorded for %s", event.EventID, event.EventType, event.AggregateID)
	}

	return nil
}
