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

type RenameTopicCommand struct {
	SessionID string `json:"-"`
	TopicID   string `json:"-"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
}

func (c RenameTopicCommand) Validate() error {
	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.TopicID == "" {
		return fmt.Errorf("invalid TopicID - '%s'", c.TopicID)
	}

	if c.UserID == "" {
		return fmt.Errorf("invalid UserID - '%s'", c.UserID)
	}

	return nil
}

func HandleRenameTopic(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[RenameTopicCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}
	command.SessionID = chi.URLParam(r, "id")
	command.TopicID = chi.URLParam(r, "topicId")

	response, err := mediator.Send[RenameTopicCommand, gamesession.GameSessionDTO](
		r.Context(),
		command,
	)
	if err != nil {
		gamesession.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type RenameTopicCommandHandler struct {
	repository gamesession.Repository
	service    gamesession.SessionService
	locks      *core.KeyedMutex
}

func NewRenameTopicCommandHandler(
	repository gamesession.Repository,
	service gamesession.SessionService,
	locks *core.KeyedMutex,
) *RenameTopicCommandHandler {
	return &RenameTopicCommandHandler{repository, service, locks}
}

func (h *RenameTopicCommandHandler) Handle(
	ctx context.Context,
	request RenameTopicCommand,
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

	renamed, err := session.RenameTopic(request.TopicID, request.Name, request.UserID)
	if err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	if err := h.repository.Save(ctx, session); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	dto := gamesession.ToGameSessionDTO(session)

	event := gamesession.NewTopicRenamedEvent(gamesession.ToGameTopicDTO(renamed), dto)
	if err := h.service.BroadcastToSession(session.ID(), event); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	return dto, nil
}
