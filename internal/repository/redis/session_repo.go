package redis

import (
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/internal/repository/redis/converter"
	"github.com/profibuy/storefront/pkg/clients"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
	r "github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// SessionRepo хранит сессии посетителей в Redis. TTL продлевается при каждом чтении и записи.
type SessionRepo struct {
	client *clients.RedisClient
	conv   converter.SessionConverter
	ttl    time.Duration
	logger logger.Logger
}

func NewSessionRepo(client *clients.RedisClient, conv converter.SessionConverter, ttl time.Duration, logger logger.Logger) *SessionRepo {
	return &SessionRepo{
		client: client,
		conv:   conv,
		ttl:    ttl,
		logger: logger,
	}
}

// Get возвращает e.ErrNotFound, если сессии нет, она истекла или записана в старом формате.
func (s *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	key := sessionKey(id)

	val, err := s.client.Client.GetEx(ctx, key, s.ttl).Result()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := redisValueToBytes(val, key)
	if err != nil || data == nil {
		return nil, e.ErrNotFound
	}

	var model converter.SessionRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		s.logger.Warnf("Session %s is corrupted, dropping: %v", id, err)
		return nil, e.ErrNotFound
	}

	if model.Version != converter.SessionVersion || model.ID != id {
		return nil, e.ErrNotFound
	}

	return s.conv.ToDomain(&model), nil
}

// Save перезаписывает сессию целиком (last-write-wins).
func (s *SessionRepo) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(s.conv.ToRedisModel(session))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionRepo) Delete(ctx context.Context, id string) error {
	if err := s.client.Client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func sessionKey(id string) string {
	return sessionPrefix + id
}
