// Package closer останавливает зависимости приложения в обратном порядке регистрации.
package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/profibuy/storefront/pkg/logger"
)

const defaultForcedTimeout = 2 * time.Second

// Func — функция остановки одной зависимости.
type Func func(ctx context.Context) error

type stage struct {
	name string
	fn   Func
}

// Closer потокобезопасен; Close выполняется один раз.
type Closer struct {
	logger        logger.Logger
	forcedTimeout time.Duration

	mu     sync.Mutex
	stages []stage
	once   sync.Once
	err    error
}

// NewCloser создаёт Closer. forcedTimeout — сколько ждать стадии, до которых
// не дошла очередь, когда контекст Close уже истёк. 0 — значение по умолчанию.
func NewCloser(logger logger.Logger, forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{
		logger:        logger,
		forcedTimeout: forcedTimeout,
	}
}

// Add регистрирует стадию остановки. Добавленная последней выполняется первой.
func (c *Closer) Add(name string, fn Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stages = append(c.stages, stage{name: name, fn: fn})
}

// Close выполняет стадии по одной (LIFO). Если ctx истекает посреди очереди,
// оставшиеся стадии запускаются параллельно с forcedTimeout.
func (c *Closer) Close(ctx context.Context) error {
	c.once.Do(func() {
		c.mu.Lock()
		stages := c.stages
		c.mu.Unlock()

		c.err = c.close(ctx, stages)
	})
	return c.err
}

func (c *Closer) close(ctx context.Context, stages []stage) error {
	var errs []error

	for i := len(stages) - 1; i >= 0; i-- {
		s := stages[i]
		done := make(chan error, 1)
		go func() { done <- s.fn(ctx) }()

		select {
		case err := <-done:
			if err != nil {
				c.logger.Warnf("%s: stop failed: %v", s.name, err)
				errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
				continue
			}
			c.logger.Debugf("%s stopped", s.name)
		case <-ctx.Done():
			c.logger.Warnf("%s did not stop in time, forcing %d remaining stage(s)", s.name, i+1)
			errs = append(errs, fmt.Errorf("%s: %w", s.name, ctx.Err()))
			errs = append(errs, c.force(stages[:i])...)
			return errors.Join(errs...)
		}
	}

	return errors.Join(errs...)
}

// force запускает стадии параллельно с собственным таймаутом.
func (c *Closer) force(stages []stage) []error {
	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, s := range stages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s (forced): %w", s.name, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return errs
}
