package queries

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

type GetSessionQuery struct {
	SessionID string
}

func (q GetSessionQuery) Validate() error {
	if q.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", q.SessionID)
	}

	return nil
}

func HandleGetSession(w http.ResponseWriter, r *http.Request) {
	query := GetSessionQuery{SessionID: chi.URLParam(r, "id")}

	response, err := mediator.Send[GetSessionQuery, gamesession.GameSessionDTO](
		r.Context(),
		query,
	)
	if err != nil {
		gamesession.WriteError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetSessionQueryHandler struct {
	repository gamesession.Repository
}

func NewGetSessionQueryHandler(repository gamesession.Repository) *GetSessionQueryHandler {
	return &GetSessionQueryHandler{repository}
}

func (h *GetSessionQueryHandler) Handle(
	ctx context.Context,
	request GetSessionQuery,
) (gamesession.GameSessionDTO, error) {
	session, err := h.repository.FindByID(ctx, request.SessionID)
	if err != nil {
		return gamesession.GameSessionDTO{}, err
	}

	if session == nil {
		return gamesession.GameSessionDTO{}, domain.GameSessionNotFoundError{SessionID: request.SessionID}
	}

	return gamesession.ToGameSessionDTO(session), nil
}
