package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/domain"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

type SessionUCImpl struct {
	repo   SessionRepository
	logger logger.Logger
	now    func() time.Time
}

func NewSessionUC(repo SessionRepository, logger logger.Logger) *SessionUCImpl {
	return &SessionUCImpl{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Load возвращает сессию по id из cookie. Пустой, неизвестный или истёкший id даёт новую сессию;
// второй результат сообщает, что cookie нужно выставить заново.
func (s *SessionUCImpl) Load(ctx context.Context, id string) (*domain.Session, bool, error) {
	if id != "" {
		session, err := s.repo.Get(ctx, id)
		if err == nil {
			return session, false, nil
		}
		if !errors.Is(err, e.ErrNotFound) {
			return nil, false, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	session := domain.NewSession(uuid.NewString(), s.now())
	s.logger.Debugf("new session %s", session.ID)
	return session, true, nil
}

// Save сохраняет сессию целиком. Параллельные запросы одной сессии перезаписывают друг друга.
func (s *SessionUCImpl) Save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, session); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	session.MarkSaved()
	return nil
}

// Rotate переносит сессию под новый id и удаляет старую запись.
// Вызывается при смене пользователя, чтобы id из cookie до входа перестал действовать.
func (s *SessionUCImpl) Rotate(ctx context.Context, session *domain.Session) error {
	oldID := session.ID
	session.ID = uuid.NewString()

	if err := s.Save(ctx, session); err != nil {
		session.ID = oldID
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.repo.Delete(ctx, oldID); err != nil {
		s.logger.Warnf("old session %s not removed: %v", oldID, err)
	}
	return nil
}

func (s *SessionUCImpl) Destroy(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}
