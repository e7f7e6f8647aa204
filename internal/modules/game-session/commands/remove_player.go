package commands

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/core"
	gamesession "github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session"
	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session/domain"

	"github.com/go-chi/chi"
)

type RemovePlayerCommand struct {
	SessionID string
	UserID    string
}

func (c RemovePlayerCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.UserID == "" {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

func HandleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	command := RemovePlayerCommand{
		SessionID: chi.URLParam(r, "id"),
		UserID:    chi.URLParam(r, "userId"),
	}

	_, err := mediator.Send[RemovePlayerCommand, core.Unit](r.Context(), command)
	if err != nil {
		gamesession.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

type RemovePlayerCommandHandler struct {
	repository gamesession.Repository
	service    gamesession.SessionService
	locks      *core.KeyedMutex
}

func NewRemovePlayerCommandHandler(
	repository gamesession.Repository,
	service gamesession.SessionService,
	locks *core.KeyedMutex,
) *RemovePlayerCommandHandler {
	return &RemovePlayerCommandHandler{repository, service, locks}
}

func (h *RemovePlayerCommandHandler) Handle(
	ctx context.Context,
	request RemovePlayerCommand,
) (core.Unit, error) {
	unlock := h.locks.Lock(request.SessionID)
	defer unlock()

	session, err := h.repository.FindByID(ctx, request.SessionID)
	if err != nil {
		return core.Unit{}, err
	}

	if session == nil {
		return core.Unit{}, domain.GameSessionNotFoundError{SessionID: request.SessionID}
	}

	// Capture the record before it is gone - the departure event
	// still names the removed player.
	var removed *domain.Player
	for _, player := range session.Players() {
		if player.UserID() == request.UserID {
			p := player
			removed = &p
			break
		}
	}

	if err := session.RemovePlayer(request.UserID); err != nil {
		return core.Unit{}, err
	}

	if err := h.repository.Save(ctx, session); err != nil {
		return core.Unit{}, err
	}

	if err := h.service.RemovePlayerFromSession(session.ID(), request.UserID); err != nil {
		return core.Unit{}, err
	}

	event := gamesession.NewPlayerLeftEvent(
		gamesession.ToPlayerDTO(*removed),
		gamesession.ToGameSessionDTO(session),
	)
	if err := h.service.BroadcastToSession(session.ID(), event); err != nil {
		return core.Unit{}, err
	}

	return core.Unit{}, nil
}
