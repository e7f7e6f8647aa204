package gamesession

import (
	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/core"
	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session/domain"
)

// DTOs are the projections that cross the module boundary - HTTP
// response bodies, broadcast payloads, and the persisted form.

type GameTopicDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PlayerDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	IsConnected bool   `json:"isConnected"`
}

type GameSessionDTO struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Topics  []GameTopicDTO `json:"topics"`
	Players []PlayerDTO    `json:"players"`
	State   string         `json:"state"`
}

func ToGameTopicDTO(topic domain.GameTopic) GameTopicDTO {
	return GameTopicDTO{ID: topic.ID(), Name: topic.Name()}
}

func ToPlayerDTO(player domain.Player) PlayerDTO {
	return PlayerDTO{
		ID:          player.ID(),
		UserID:      player.UserID(),
		Name:        player.Name(),
		IsConnected: player.IsConnected(),
	}
}

func ToGameSessionDTO(session *domain.GameSession) GameSessionDTO {
	return GameSessionDTO{
		ID:      session.ID(),
		Name:    session.Name(),
		Topics:  core.Map(session.Topics(), ToGameTopicDTO),
		Players: core.Map(session.Players(), ToPlayerDTO),
		State:   string(session.State()),
	}
}

// ToGameSessionEntity reconstructs the aggregate from its persisted
// projection, re-running entity validation on the way in.
func ToGameSessionEntity(dto GameSessionDTO) (*domain.GameSession, error) {
	topics := make([]domain.GameTopic, 0, len(dto.Topics))
	for _, t := range dto.Topics {
		topic, err := domain.NewGameTopic(domain.GameTopicParams{ID: t.ID, Name: t.Name})
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}

	players := make([]domain.Player, 0, len(dto.Players))
	for _, p := range dto.Players {
		isConnected := p.IsConnected
		player, err := domain.NewPlayer(domain.PlayerParams{
			ID:          p.ID,
			UserID:      p.UserID,
			Name:        p.Name,
			IsConnected: &isConnected,
		})
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}

	return domain.NewGameSession(domain.GameSessionParams{
		ID:      dto.ID,
		Name:    dto.Name,
		Topics:  topics,
		Players: players,
		State:   domain.GameSessionState(dto.State),
	})
}
