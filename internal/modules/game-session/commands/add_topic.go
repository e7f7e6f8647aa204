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

type AddTopicCommand struct {
	SessionID string `json:"-"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
}

func (c AddTopicCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.UserID == "" {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

func HandleAddTopic(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[AddTopicCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.SessionID = chi.URLParam(r, "id")

	response, err := mediator.Send[AddTopicCommand, gamesession.GameSessionDTO](
		r.Context(),
		command,
	)
	if err != nil {
		gamesession.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type AddTopicCommandHandler struct {
	repository gamesession.Repository
	service    gamesession.SessionService
	locks      *core.KeyedMutex
}

func NewAddTopicCommandHandler(
	repository gamesession.Repository,
	service gamesession.SessionService,
	locks *core.KeyedMutex,
) *AddTopicCommandHandler {
	return &AddTopicCommandHandler{repository, service, locks}
}

func (h *AddTopicCommandHandler) Handle(
	ctx context.Context,
	request AddTopicCommand,
) (gamesession.GameSessionDTO, error) {
	topic, err := domain.NewGameTopic(domain.GameTopicParams{Name: request.Name})
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

	if err := session.AddTopic(topic, request.UserID); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	if err := h.repository.Save(ctx, session); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	dto := gamesession.ToGameSessionDTO(session)

	event := gamesession.NewTopicAddedEvent(gamesession.ToGameTopicDTO(topic), dto)
	if err := h.service.BroadcastToSession(session.ID(), event); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	return dto, nil
}
