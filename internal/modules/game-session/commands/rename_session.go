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

type RenameSessionCommand struct {
	SessionID string `json:"-"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
}

func (c RenameSessionCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.UserID == "" {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

func HandleRenameSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[RenameSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.SessionID = chi.URLParam(r, "id")

	response, err := mediator.Send[RenameSessionCommand, gamesession.GameSessionDTO](
		r.Context(),
		command,
	)
	if err != nil {
		gamesession.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type RenameSessionCommandHandler struct {
	repository gamesession.Repository
	service    gamesession.SessionService
	locks      *core.KeyedMutex
}

func NewRenameSessionCommandHandler(
	repository gamesession.Repository,
	service gamesession.SessionService,
	locks *core.KeyedMutex,
) *RenameSessionCommandHandler {
	return &RenameSessionCommandHandler{repository, service, locks}
}

func (h *RenameSessionCommandHandler) Handle(
	ctx context.Context,
	request RenameSessionCommand,
) (gamesession.GameSessionDTO, error) {
	unlock := h.locks.Lock(request.SessionID)
	defer unlock()

	session, err := h.repository.FindByID(ctx, request.SessionID)
	if err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	if session == nil {
		return gamesession.GameSessionDTO{}, domain.GameSessionNotFoundError{SessionID: request.SessionID}
	}

	if err := session.Rename(request.Name, request.UserID); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	if err := h.repository.Save(ctx, session); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	dto := gamesession.ToGameSessionDTO(session)

	if err := h.service.BroadcastToSession(session.ID(), gamesession.NewGameSessionRenamedEvent(dto)); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	return dto, nil
}
