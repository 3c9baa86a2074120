package domain

import "time"

// Session — серверное состояние посетителя: корзина, токен, черновик заказа.
type Session struct {
	ID        string         `json:"id"`
	Cart      Cart           `json:"cart"`
	Token     string         `json:"token,omitempty"`
	User      *User          `json:"user,omitempty"`
	Checkout  *CheckoutDraft `json:"checkout,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	saved bool
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// Logout сбрасывает токен и пользователя, корзина остаётся.
func (s *Session) Logout() {
	s.Token = ""
	s.User = nil
}

// MarkSaved отмечает, что сессия записана в хранилище в рамках текущего запроса.
func (s *Session) MarkSaved() {
	s.saved = true
}

func (s *Session) Saved() bool {
	return s != nil && s.saved
}
