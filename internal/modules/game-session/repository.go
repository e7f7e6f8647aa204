package gamesession

import (
	"context"
	"sync"

	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session/domain"
)

// Repository persists game session aggregates. FindByID returns
// (nil, nil) when no session exists under the id - absence is the
// caller's business error, not the repository's.
type Repository interface {
	FindByID(ctx context.Context, id string) (*domain.GameSession, error)
	Save(ctx context.Context, session *domain.GameSession) error
}

// SessionService is the realtime fan-out half of the module. It
// tracks live connections and never inspects aggregate state - it
// only forwards events the command handlers hand it.
type SessionService interface {
	CreateSession(sessionID string)
	AddPlayerToSession(sessionID, userID string) error
	RemovePlayerFromSession(sessionID, userID string) error
	BroadcastToSession(sessionID string, event Event) error
	SendMessageToPlayer(userID string, event Event) error
}

// InMemoryRepository keeps sessions in a map, stored as DTOs so that
// reads reconstruct fresh aggregates instead of sharing entity state
// with writers. Used by the unit tests and as the fallback store when
// no database is configured.
type InMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]GameSessionDTO
}

var _ Repository = (*InMemoryRepository)(nil)

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{sessions: map[string]GameSessionDTO{}}
}

func (r *InMemoryRepository) FindByID(_ context.Context, id string) (*domain.GameSession, error) {
	r.mu.RLock()
	dto, found := r.sessions[id]
	r.mu.RUnlock()

	if !found {
		return nil, nil
	}

	session, err := ToGameSessionEntity(dto)
	if err != nil {
		return nil, domain.DatabaseError{Inner: err}
	}

	return session, nil
}

func (r *InMemoryRepository) Save(_ context.Context, session *domain.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID()] = ToGameSessionDTO(session)
	return nil
}
