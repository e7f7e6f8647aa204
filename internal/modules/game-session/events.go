package gamesession

// Event is the envelope every realtime message is wrapped in before
// it goes out over a connection.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

const (
	EventGameSessionRenamed = "GAME_SESSION_RENAMED"
	EventPlayerJoined       = "PLAYER_JOINED"
	EventPlayerLeft         = "PLAYER_LEFT"
	EventTopicAdded         = "TOPIC_ADDED"
	EventTopicRemoved       = "TOPIC_REMOVED"
	EventTopicRenamed       = "TOPIC_RENAMED"
)

type GameSessionEventPayload struct {
	GameSession GameSessionDTO `json:"gameSession"`
}

type PlayerEventPayload struct {
	Player      PlayerDTO      `json:"player"`
	GameSession GameSessionDTO `json:"gameSession"`
}

type TopicEventPayload struct {
	Topic       GameTopicDTO   `json:"topic"`
	GameSession GameSessionDTO `json:"gameSession"`
}

func NewGameSessionRenamedEvent(session GameSessionDTO) Event {
	return Event{Type: EventGameSessionRenamed, Payload: GameSessionEventPayload{GameSession: session}}
}

func NewPlayerJoinedEvent(player PlayerDTO, session GameSessionDTO) Event {
	return Event{Type: EventPlayerJoined, Payload: PlayerEventPayload{Player: player, GameSession: session}}
}

func NewPlayerLeftEvent(player PlayerDTO, session GameSessionDTO) Event {
	return Event{Type: EventPlayerLeft, Payload: PlayerEventPayload{Player: player, GameSession: session}}
}

func NewTopicAddedEvent(topic GameTopicDTO, session GameSessionDTO) Event {
	return Event{Type: EventTopicAdded, Payload: TopicEventPayload{Topic: topic, GameSession: session}}
}

func NewTopicRemovedEvent(topic GameTopicDTO, session GameSessionDTO) Event {
	return Event{Type: EventTopicRemoved, Payload: TopicEventPayload{Topic: topic, GameSession: session}}
}

func NewTopicRenamedEvent(topic GameTopicDTO, session GameSessionDTO) Event {
	return Event{Type: EventTopicRenamed, Payload: TopicEventPayload{Topic: topic, GameSession: session}}
}
