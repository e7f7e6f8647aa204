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

// Leaving disconnects the player rather than removing them - the
// record stays on the session so the same userId can rejoin later.
// Permanent removal is RemovePlayerCommand.
type LeaveSessionCommand struct {
	SessionID string `json:"-"`
	UserID    string `json:"userId"`
}

func (c LeaveSessionCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.UserID == "" {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

func HandleLeaveSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[LeaveSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.SessionID = chi.URLParam(r, "id")

	_, err = mediator.Send[LeaveSessionCommand, core.Unit](r.Context(), command)
	if err != nil {
		gamesession.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

type LeaveSessionCommandHandler struct {
	repository gamesession.Repository
	service    gamesession.SessionService
	locks      *core.KeyedMutex
}

func NewLeaveSessionCommandHandler(
	repository gamesession.Repository,
	service gamesession.SessionService,
	locks *core.KeyedMutex,
) *LeaveSessionCommandHandler {
	return &LeaveSessionCommandHandler{repository, service, locks}
}

func (h *LeaveSessionCommandHandler) Handle(
	ctx context.Context,
	request LeaveSessionCommand,
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

	player, err := session.DisconnectPlayer(request.UserID)
	if err != nil {
		return core.Unit{}, err
	}

	if err := h.repository.Save(ctx, session); err != nil {
		return core.Unit{}, err
	}

	if err := h.service.RemovePlayerFromSession(session.ID(), request.UserID); err != nil {
		return core.Unit{}, err
	}

	event := gamesession.NewPlayerLeftEvent(
		gamesession.ToPlayerDTO(player),
		gamesession.ToGameSessionDTO(session),
	)
	if err := h.service.BroadcastToSession(session.ID(), event); err != nil {
		return core.Unit{}, err
	}

	return core.Unit{}, nil
}
