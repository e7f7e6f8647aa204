package realtime

import (
	"encoding/json"
	"sync"

	gamesession "github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session"

	"go.uber.org/zap"
)

// Service tracks live connections and fans domain events out to
// session members. It holds two registries: userId -> connection
// (global, one entry per connected user, last write wins on
// reconnect) and sessionId -> (userId -> connection), a per-session
// view over the global one. It never looks at aggregate state - the
// command handlers decide what to send and to whom.
type Service struct {
	mu          sync.RWMutex
	connections map[string]Conn
	sessions    map[string]map[string]Conn

	logger *zap.Logger
}

var _ gamesession.SessionService = (*Service)(nil)

func NewService(logger *zap.Logger) *Service {
	return &Service{
		connections: map[string]Conn{},
		sessions:    map[string]map[string]Conn{},
		logger:      logger,
	}
}

// RegisterConnection upserts the user's connection. Session
// membership is untouched - a reconnecting user re-joins through the
// join use case.
func (s *Service) RegisterConnection(userID string, conn Conn) {
	s.mu.Lock()
	s.connections[userID] = conn
	s.mu.Unlock()
}

// UnregisterConnection drops the user's connection from the global
// registry and from every session map. Only the exact registered
// connection is dropped - a stale close racing a reconnect must not
// evict the new connection.
func (s *Service) UnregisterConnection(userID string, conn Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connections[userID] != conn {
		return
	}

	delete(s.connections, userID)
	for _, members := range s.sessions {
		if members[userID] == conn {
			delete(members, userID)
		}
	}
}

// CreateSession initializes an empty member registry for the
// session. Re-creating an existing session resets it - not an error.
func (s *Service) CreateSession(sessionID string) {
	s.mu.Lock()
	s.sessions[sessionID] = map[string]Conn{}
	s.mu.Unlock()
}

func (s *Service) AddPlayerToSession(sessionID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, found := s.sessions[sessionID]
	if !found {
		return JoinGameSessionError{SessionID: sessionID, Reason: "the session does not exist"}
	}

	conn, found := s.connections[userID]
	if !found {
		return JoinGameSessionError{SessionID: sessionID, Reason: "user connection not found"}
	}

	members[userID] = conn
	return nil
}

// RemovePlayerFromSession removes the user from the session's member
// registry. Removing an absent member is a no-op.
func (s *Service) RemovePlayerFromSession(sessionID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, found := s.sessions[sessionID]
	if !found {
		return LeaveGameSessionError{SessionID: sessionID, Reason: "the session does not exist"}
	}

	delete(members, userID)
	return nil
}

// BroadcastToSession sends the serialized event to every connection
// currently in the session's registry. Delivery is best-effort and
// every send is attempted: one failing connection does not stop the
// rest, and the failed userIds are reported in the returned error.
func (s *Service) BroadcastToSession(sessionID string, event gamesession.Event) error {
	message, err := json.Marshal(event)
	if err != nil {
		return BroadcastToGameSessionError{SessionID: sessionID, Reason: "error serializing event"}
	}

	s.mu.RLock()
	members, found := s.sessions[sessionID]
	if !found {
		s.mu.RUnlock()
		return BroadcastToGameSessionError{SessionID: sessionID, Reason: "the session does not exist"}
	}

	recipients := make(map[string]Conn, len(members))
	for userID, conn := range members {
		recipients[userID] = conn
	}
	s.mu.RUnlock()

	var failed []string
	for userID, conn := range recipients {
		if err := conn.Send(message); err != nil {
			s.logger.Warn(
				"event delivery failed",
				zap.String("session_id", sessionID),
				zap.String("user_id", userID),
				zap.String("event_type", event.Type),
				zap.Error(err),
			)
			failed = append(failed, userID)
		}
	}

	if len(failed) > 0 {
		return BroadcastToGameSessionError{SessionID: sessionID, Failed: failed}
	}

	return nil
}

func (s *Service) SendMessageToPlayer(userID string, event gamesession.Event) error {
	s.mu.RLock()
	conn, found := s.connections[userID]
	s.mu.RUnlock()

	if !found {
		return SendMessageToPlayerError{UserID: userID, Reason: "user connection not found"}
	}

	message, err := json.Marshal(event)
	if err != nil {
		return SendMessageToPlayerError{UserID: userID, Reason: "error serializing event"}
	}

	if err := conn.Send(message); err != nil {
		return SendMessageToPlayerError{UserID: userID, Reason: err.Error()}
	}

	return nil
}
