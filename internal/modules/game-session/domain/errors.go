package domain

import "fmt"

// DomainError is implemented by every error the aggregate and the
// realtime layer can return. Code is stable and ends up in HTTP
// error bodies and broadcast payloads, Error is for logs.
type DomainError interface {
	error
	Code() string
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Code() string { return "ValidationError" }

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type DatabaseError struct {
	Inner error
}

func (e DatabaseError) Code() string { return "DatabaseError" }

func (e DatabaseError) Error() string {
	return fmt.Sprintf("database error: %s", e.Inner)
}

func (e DatabaseError) Unwrap() error { return e.Inner }

type GameSessionNotFoundError struct {
	SessionID string
}

func (e GameSessionNotFoundError) Code() string { return "GameSessionNotFoundError" }

func (e GameSessionNotFoundError) Error() string {
	return fmt.Sprintf("game session '%s' was not found", e.SessionID)
}

type GameSessionNotInLobbyError struct {
	State GameSessionState
}

func (e GameSessionNotInLobbyError) Code() string { return "GameSessionNotInLobbyError" }

func (e GameSessionNotInLobbyError) Error() string {
	return fmt.Sprintf("game session is not in the lobby state - current state '%s'", e.State)
}

type TopicAlreadyInGameSessionError struct {
	TopicID string
}

func (e TopicAlreadyInGameSessionError) Code() string { return "TopicAlreadyInGameSessionError" }

func (e TopicAlreadyInGameSessionError) Error() string {
	return fmt.Sprintf("topic '%s' is already in the game session", e.TopicID)
}

type TopicNotFoundError struct {
	TopicID string
}

func (e TopicNotFoundError) Code() string { return "TopicNotFoundError" }

func (e TopicNotFoundError) Error() string {
	return fmt.Sprintf("topic '%s' was not found in the game session", e.TopicID)
}

type PlayerAlreadyInGameSessionError struct {
	UserID string
}

func (e PlayerAlreadyInGameSessionError) Code() string { return "PlayerAlreadyInGameSessionError" }

func (e PlayerAlreadyInGameSessionError) Error() string {
	return fmt.Sprintf("player with user id '%s' is already in the game session", e.UserID)
}

type PlayerNotInSessionError struct {
	UserID string
}

func (e PlayerNotInSessionError) Code() string { return "PlayerNotInSessionError" }

func (e PlayerNotInSessionError) Error() string {
	return fmt.Sprintf("player with user id '%s' is not in the game session", e.UserID)
}

type UserNotInGameSessionError struct {
	UserID string
}

func (e UserNotInGameSessionError) Code() string { return "UserNotInGameSessionError" }

func (e UserNotInGameSessionError) Error() string {
	return fmt.Sprintf("user '%s' is not a member of the game session", e.UserID)
}
