package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/jitter"
	"github.com/profibuy/storefront/pkg/logger"
)

const (
	OutboxChannel = "storefront_events"

	batchSize    = 10
	maxAttempts  = 10
	drainPeriod  = 30 * time.Second
	retryBase    = time.Second
	retryMax     = 30 * time.Second
	waitNotifyTO = 30 * time.Second
)

// Listener открывает соединение, подписанное на канал NOTIFY.
type Listener interface {
	Listen(ctx context.Context, channel string) (*pgx.Conn, error)
}

// OutboxWorker переносит события из storefront_events в Kafka.
type OutboxWorker struct {
	repo     usecase.OutboxRepository
	logger   logger.Logger
	producer usecase.MessageProducer
	listener Listener
	stop     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
	drainMu  sync.Mutex
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	listener Listener,
) *OutboxWorker {
	return &OutboxWorker{
		repo:     repo,
		logger:   logger,
		producer: producer,
		listener: listener,
		stop:     make(chan struct{}),
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()

	// Запускаем слушатель уведомлений
	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

// Stop останавливает воркер и ждёт завершения горутин. Повторный вызов безопасен.
func (w *OutboxWorker) Stop() {
	w.once.Do(func() { close(w.stop) })
	w.wg.Wait()
}

// run разбирает остатки при старте, а затем периодически подстраховывает
// пропущенные уведомления (например, во время переподключения слушателя).
func (w *OutboxWorker) run(ctx context.Context) {
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	ticker := time.NewTicker(drainPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Worker stopped by context cancellation")
			return
		case <-w.stop:
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		var err error
		conn, err = w.listener.Listen(ctx, OutboxChannel)
		if err != nil {
			return err
		}
		w.logger.Infof("Subscribed to '%s' channel", OutboxChannel)
		return nil
	}

	backoff := jitter.NewBackoff(retryBase, retryMax)
	for {
		err := connect()
		if err == nil {
			break
		}
		w.logger.Warnf("LISTEN connect failed: %v", err)
		if !w.sleep(ctx, backoff.Next()) {
			return
		}
	}
	defer func() { _ = conn.Close(context.Background()) }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		waitCtx, cancel := context.WithTimeout(ctx, waitNotifyTO)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}
			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			_ = conn.Close(ctx)

			backoff.Reset()
			for {
				if !w.sleep(ctx, backoff.Next()) {
					return
				}
				if err := connect(); err == nil {
					break
				}
				w.logger.Warnf("Reconnect failed (attempt %d)", backoff.Attempt())
			}
			continue
		}

		if notif != nil && notif.Channel == OutboxChannel {
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.drain(ctx)
		}
	}
}

// drain обрабатывает батчи, пока в outbox есть pending-события. При ошибках
// отправки ждёт с экспоненциальной задержкой и пробует снова.
func (w *OutboxWorker) drain(ctx context.Context) {
	w.drainMu.Lock()
	defer w.drainMu.Unlock()

	backoff := jitter.NewBackoff(retryBase, retryMax)
	for {
		hasMore, failed, err := w.processBatch(ctx)
		if err != nil || failed > 0 {
			delay := backoff.Next()
			if err != nil {
				w.logger.Warnf("Batch processing failed: %v, retrying in %v", err, delay)
			} else {
				w.logger.Warnf("%d events not delivered, retrying in %v", failed, delay)
			}
			if !w.sleep(ctx, delay) {
				return
			}
			continue
		}

		if !hasMore {
			return
		}
		backoff.Reset()
	}
}

// processBatch возвращает признак того, что батч был непустым, и число неотправленных событий.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, int, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, batchSize)
	if err != nil {
		return false, 0, err
	}

	if len(events) == 0 {
		return false, 0, nil
	}

	failed := 0
	for _, event := range events {
		if err := w.producer.WriteEvent(ctx, event); err != nil {
			if w.giveUp(ctx, event, err) {
				continue
			}
			failed++
			if rErr := w.repo.ReleaseForRetry(ctx, event.ID); rErr != nil {
				w.logger.Warnf("release event %d failed: %v", event.ID, rErr)
			}
			continue
		}
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return true, failed, nil
}

// giveUp помечает событие обработанным, если ошибка постоянная и попытки исчерпаны.
func (w *OutboxWorker) giveUp(ctx context.Context, event *domain.Event, err error) bool {
	if isRetryableError(err) || event.Attempts+1 < maxAttempts {
		w.logger.Debugf("event %s (%s) not sent: %v", event.EventID, event.EventType, err)
		return false
	}

	w.logger.Errorf(err, "event %s (%s) dropped after %d attempts", event.EventID, event.EventType, event.Attempts+1)
	if mErr := w.repo.MarkAsProcessed(ctx, event.ID); mErr != nil {
		w.logger.Warnf("mark processed failed: %v", mErr)
	}
	return true
}

func (w *OutboxWorker) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-w.stop:
		return false
	}
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"leader not available",
		"connection reset",
		"broken pipe",
		"no such host",
		"context deadline exceeded",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
