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

type JoinSessionCommand struct {
	SessionID  string `json:"-"`
	UserID     string `json:"userId"`
	PlayerName string `json:"playerName"`
}

func (c JoinSessionCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.UserID == "" {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

func HandleJoinSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[JoinSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.SessionID = chi.URLParam(r, "id")

	response, err := mediator.Send[JoinSessionCommand, gamesession.GameSessionDTO](
		r.Context(),
		command,
	)
	if err != nil {
		gamesession.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type JoinSessionCommandHandler struct {
	repository gamesession.Repository
	service    gamesession.SessionService
	locks      *core.KeyedMutex
}

func NewJoinSessionCommandHandler(
	repository gamesession.Repository,
	service gamesession.SessionService,
	locks *core.KeyedMutex,
) *JoinSessionCommandHandler {
	return &JoinSessionCommandHandler{repository, service, locks}
}

func (h *JoinSessionCommandHandler) Handle(
	ctx context.Context,
	request JoinSessionCommand,
) (gamesession.GameSessionDTO, error) {
	player, err := domain.NewPlayer(domain.PlayerParams{
		UserID: request.UserID,
		Name:   request.PlayerName,
	})
	if err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	unlock := h.locks.Lock(request.SessionID)
	defer unlock()

	session, err := h.repository.FindByID(ctx, request.SessionID)
	if err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	if session == nil {
		return gamesession.GameSessionDTO{}, domain.GameSessionNotFoundError{SessionID: request.SessionID}
	}

	if err := session.AddPlayer(player); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	if err := h.repository.Save(ctx, session); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	if err := h.service.AddPlayerToSession(session.ID(), player.UserID()); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	dto := gamesession.ToGameSessionDTO(session)

	event := gamesession.NewPlayerJoinedEvent(gamesession.ToPlayerDTO(player), dto)
	if err := h.service.BroadcastToSession(session.ID(), event); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	return dto, nil
}
