package usecase

import (
	"context"

	"github.com/profibuy/storefront/internal/domain"
)

// SessionRepository хранит сессии посетителей. Get возвращает e.ErrNotFound для отсутствующей сессии.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// CatalogCacheRepository — короткоживущий кэш ответов бэкенда (категории, фильтры, меню).
type CatalogCacheRepository interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Clear(ctx context.Context) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*domain.Event, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReleaseForRetry(ctx context.Context, id int64) error
}

type ObjectRepository interface {
	Upload(ctx context.Context, object *domain.MediaObject) (string, error)
	Delete(ctx context.Context, key string) error
}
