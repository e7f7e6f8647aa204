package gamesession

import (
	"errors"
	"net/http"

	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/core"
	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session/domain"
)

// ErrorResponse is the error body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteError maps the module's error taxonomy onto the HTTP contract:
// validation failures are client-correctable (400), business-rule and
// not-found failures are domain outcomes rather than transport errors
// (200 with an error body), everything infrastructural is opaque (500).
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var commandErr core.CommandError
	if errors.As(err, &commandErr) {
		core.WriteCommandError(w, r, commandErr)
		return
	}

	var validationErr domain.ValidationError
	if errors.As(err, &validationErr) {
		core.WriteBadRequest(w, r, ErrorResponse{Error: validationErr.Error(), Code: validationErr.Code()})
		return
	}

	if code, ok := domainErrorCode(err); ok {
		core.WriteOK(w, r, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	var domainErr domain.DomainError
	if errors.As(err, &domainErr) {
		core.WriteInternalServerError(w, r, ErrorResponse{Error: domainErr.Error(), Code: domainErr.Code()})
		return
	}

	core.WriteInternalServerError(w, r, ErrorResponse{Error: err.Error(), Code: "InternalError"})
}

// domainErrorCode reports whether err is one of the business-rule
// failures that surface as a 200 + error body.
func domainErrorCode(err error) (string, bool) {
	var (
		notFound         domain.GameSessionNotFoundError
		notInLobby       domain.GameSessionNotInLobbyError
		topicExists      domain.TopicAlreadyInGameSessionError
		topicNotFound    domain.TopicNotFoundError
		playerExists     domain.PlayerAlreadyInGameSessionError
		playerNotFound   domain.PlayerNotInSessionError
		userNotInSession domain.UserNotInGameSessionError
	)

	switch {
	case errors.As(err, &notFound):
		return notFound.Code(), true
	case errors.As(err, &notInLobby):
		return notInLobby.Code(), true
	case errors.As(err, &topicExists):
		return topicExists.Code(), true
	case errors.As(err, &topicNotFound):
		return topicNotFound.Code(), true
	case errors.As(err, &playerExists):
		return playerExists.Code(), true
	case errors.As(err, &playerNotFound):
		return playerNotFound.Code(), true
	case errors.As(err, &userNotInSession):
		return userNotInSession.Code(), true
	}

	return "", false
}
