package commands

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/core"
	gamesession "github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session"
	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session/domain"
)

type CreateSessionCommand struct {
	Name string `json:"name"`
}

func (c CreateSessionCommand) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("invalid Name - '%s'", c.Name)
	}

	return nil
}

func HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[CreateSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[CreateSessionCommand, gamesession.GameSessionDTO](
		r.Context(),
		command,
	)
	if err != nil {
		gamesession.WriteError(w, r, err)
		return
	}

	location := path.Join(r.Host, "game-sessions", response.ID)
	core.WriteCreated(w, r, response, location)
}

type CreateSessionCommandHandler struct {
	repository gamesession.Repository
	service    gamesession.SessionService
}

func NewCreateSessionCommandHandler(
	repository gamesession.Repository,
	service gamesession.SessionService,
) *CreateSessionCommandHandler {
	return &CreateSessionCommandHandler{repository, service}
}

func (h *CreateSessionCommandHandler) Handle(
	ctx context.Context,
	request CreateSessionCommand,
) (gamesession.GameSessionDTO, error) {
	session, err := domain.NewGameSession(domain.GameSessionParams{Name: request.Name})
	if err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	if err := h.repository.Save(ctx, session); err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	h.service.CreateSession(session.ID())

	return gamesession.ToGameSessionDTO(session), nil
}
