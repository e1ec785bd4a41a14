package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session - изолированное состояние выбора одного пользователя
type Session struct {
	ID        uuid.UUID       `json:"id"`
	Policy    ProtectedPolicy `json:"policy"`
	AOI       AOISelection    `json:"aoi"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewSession создает сессию с политикой по умолчанию и без режима AOI
func NewSession(c Ceilings) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		Policy:    PolicyUnset,
		AOI:       NewAOISelection(AOIModeUnset, c),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch обновляет время изменения
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
