package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/repository/pgdb/converter"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/tr"
)

type OutboxEventRepo struct {
	pool *pgxpool.Pool
	conv converter.EventConverter
}

func NewOutboxEventRepo(pool *pgxpool.Pool, conv converter.EventConverter) *OutboxEventRepo {
	return &OutboxEventRepo{
		pool: pool,
		conv: conv,
	}
}

// Create пишет событие в рамках транзакции из контекста и будит воркер через NOTIFY.
func (o *OutboxEventRepo) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := o.conv.ToModel(event)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO storefront_events (
			event_id,
			event_type,
			aggregate_id,
			payload,
			status,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.EventID,
		model.EventType,
		model.AggregateID,
		model.Payload,
		model.Status,
		model.CreatedAt,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: event with id %s already exists", whereami.WhereAmI(), event.EventID)
		}

		return nil, fmt.Errorf("%s: failed to insert event: %w", whereami.WhereAmI(), err)
	}

	_, err = tx.Exec(ctx, "NOTIFY storefront_events;")
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	event.ID = model.ID
	event.CreatedAt = model.CreatedAt
	return event, nil
}

// GetAndMarkAsProcessing забирает до limit pending-событий и помечает их processing.
// Событие, застрявшее в processing дольше 5 минут (воркер упал до отправки), выбирается повторно.
func (o *OutboxEventRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) (events []*domain.Event, err error) {
	tx, err := o.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", whereami.WhereAmI(), err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	query := `
		UPDATE storefront_events
        SET status = $1, processing_started_at = now()
        WHERE id IN (
            SELECT id FROM storefront_events
            WHERE status = $2
               OR (status = $1 AND processing_started_at < now() - interval '5 minutes')
            ORDER BY created_at
            LIMIT $3
            FOR UPDATE SKIP LOCKED
        )
        RETURNING id, event_id, event_type, aggregate_id, payload, status, attempts, created_at, processed_at
	`

	rows, err := tx.Query(ctx, query, domain.EventProcessing, domain.EventPending, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query pending events: %w", whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.EventModel
	for rows.Next() {
		var model converter.EventModel

		err = rows.Scan(
			&model.ID,
			&model.EventID,
			&model.EventType,
			&model.AggregateID,
			&model.Payload,
			&model.Status,
			&model.Attempts,
			&model.CreatedAt,
			&model.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan event: %w", whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iterator error: %w", whereami.WhereAmI(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", whereami.WhereAmI(), err)
	}

	events, err = o.conv.ToArrEntity(models)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return events, nil
}

func (o *OutboxEventRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	query := `
		UPDATE storefront_events
		SET status = $1, processed_at = NOW()
		WHERE id = $2 AND status = $3
	`

	// Событие уже могло быть обработано другим worker'ом, это не ошибка
	if _, err := o.pool.Exec(ctx, query, domain.EventProcessed, id, domain.EventProcessing); err != nil {
		return fmt.Errorf("%s: failed to mark event %d as processed: %w", whereami.WhereAmI(), id, err)
	}

	return nil
}

// ReleaseForRetry возвращает событие в pending и увеличивает счётчик попыток.
func (o *OutboxEventRepo) ReleaseForRetry(ctx context.Context, id int64) error {
	query := `
		UPDATE storefront_events
		SET status = $1, attempts = attempts + 1, processing_started_at = NULL
		WHERE id = $2 AND status = $3
	`

	if _, err := o.pool.Exec(ctx, query, domain.EventPending, id, domain.EventProcessing); err != nil {
		return fmt.Errorf("%s: failed to release event %d: %w", whereami.WhereAmI(), id, err)
	}

	return nil
}

// postgresDuplicate сообщает, нарушен ли unique-индекс (SQLSTATE 23505).
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
