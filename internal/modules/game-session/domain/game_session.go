package domain

import "unicode/utf8"

const (
	sessionNameMinLength = 2
	sessionNameMaxLength = 30
)

type GameSessionState string

const (
	StateLobby           GameSessionState = "lobby"
	StateMatchInProgress GameSessionState = "match-in-progress"
	StateMatchFinished   GameSessionState = "match-finished"
)

// GameSession is the aggregate root for one trivia session. All
// mutation goes through its methods - topic edits are gated on the
// lobby state, players are keyed by their external userId.
//
// Mutators never modify the topic and player slices in place. Every
// change allocates a fresh slice so that a caller holding an older
// snapshot (a concurrent reader, a broadcast in flight) never sees a
// half-applied update.
type GameSession struct {
	id      string
	name    string
	topics  []GameTopic
	players []Player
	state   GameSessionState
}

type GameSessionParams struct {
	ID      string
	Name    string
	Topics  []GameTopic
	Players []Player
	State   GameSessionState
}

func NewGameSession(params GameSessionParams) (*GameSession, error) {
	if err := validateSessionName(params.Name); err != nil {
		return nil, err
	}

	id := params.ID
	if id == "" {
		id = NewSlug()
	}

	state := params.State
	if state == "" {
		state = StateLobby
	}

	topics := make([]GameTopic, len(params.Topics))
	copy(topics, params.Topics)

	players := make([]Player, len(params.Players))
	copy(players, params.Players)

	return &GameSession{
		id:      id,
		name:    params.Name,
		topics:  topics,
		players: players,
		state:   state,
	}, nil
}

func (s *GameSession) ID() string { return s.id }

func (s *GameSession) Name() string { return s.name }

func (s *GameSession) State() GameSessionState { return s.state }

// Topics returns the topic list in insertion order.
func (s *GameSession) Topics() []GameTopic {
	topics := make([]GameTopic, len(s.topics))
	copy(topics, s.topics)
	return topics
}

func (s *GameSession) Players() []Player {
	players := make([]Player, len(s.players))
	copy(players, s.players)
	return players
}

// Rename replaces the session name. The acting user has to be a
// session member.
func (s *GameSession) Rename(newName string, userID string) error {
	if !s.isUserInSession(userID) {
		return UserNotInGameSessionError{UserID: userID}
	}

	if err := validateSessionName(newName); err != nil {
		return err
	}

	s.name = newName
	return nil
}

// AddTopic appends a topic to the session. Fails when the acting user
// is not a member, when the session has left the lobby, or when a
// topic with the same id is already present - checked in that order.
func (s *GameSession) AddTopic(topic GameTopic, userID string) error {
	if !s.isUserInSession(userID) {
		return UserNotInGameSessionError{UserID: userID}
	}

	if s.state != StateLobby {
		return GameSessionNotInLobbyError{State: s.state}
	}

	for _, existing := range s.topics {
		if existing.ID() == topic.ID() {
			return TopicAlreadyInGameSessionError{TopicID: topic.ID()}
		}
	}

	topics := make([]GameTopic, 0, len(s.topics)+1)
	topics = append(topics, s.topics...)
	s.topics = append(topics, topic)

	return nil
}

// RemoveTopic removes the topic with the given id and returns it.
func (s *GameSession) RemoveTopic(topicID string, userID string) (GameTopic, error) {
	if !s.isUserInSession(userID) {
		return GameTopic{}, UserNotInGameSessionError{UserID: userID}
	}

	if s.state != StateLobby {
		return GameTopic{}, GameSessionNotInLobbyError{State: s.state}
	}

	index := -1
	for i, topic := range s.topics {
		if topic.ID() == topicID {
			index = i
			break
		}
	}

	if index == -1 {
		return GameTopic{}, TopicNotFoundError{TopicID: topicID}
	}

	removed := s.topics[index]

	topics := make([]GameTopic, 0, len(s.topics)-1)
	topics = append(topics, s.topics[:index]...)
	s.topics = append(topics, s.topics[index+1:]...)

	return removed, nil
}

// RenameTopic renames the topic with the given id and returns the
// renamed topic. Name validation is the topic's own.
func (s *GameSession) RenameTopic(topicID string, newName string, userID string) (GameTopic, error) {
	if !s.isUserInSession(userID) {
		return GameTopic{}, UserNotInGameSessionError{UserID: userID}
	}

	if s.state != StateLobby {
		return GameTopic{}, GameSessionNotInLobbyError{State: s.state}
	}

	index := -1
	for i, topic := range s.topics {
		if topic.ID() == topicID {
			index = i
			break
		}
	}

	if index == -1 {
		return GameTopic{}, TopicNotFoundError{TopicID: topicID}
	}

	renamed := s.topics[index]
	if err := renamed.SetName(newName); err != nil {
		return GameTopic{}, err
	}

	topics := make([]GameTopic, len(s.topics))
	copy(topics, s.topics)
	topics[index] = renamed
	s.topics = topics

	return renamed, nil
}

// AddPlayer adds a new player, or reconnects an existing one. A
// player record is matched by userId: absent means join, present but
// disconnected means reconnect, present and connected is a conflict.
// Join and reconnect are legal in any session state.
func (s *GameSession) AddPlayer(newPlayer Player) error {
	index := s.playerIndex(newPlayer.UserID())
	if index == -1 {
		players := make([]Player, 0, len(s.players)+1)
		players = append(players, s.players...)
		s.players = append(players, newPlayer)
		return nil
	}

	if s.players[index].IsConnected() {
		return PlayerAlreadyInGameSessionError{UserID: newPlayer.UserID()}
	}

	players := make([]Player, len(s.players))
	copy(players, s.players)
	players[index].SetConnected(true)
	s.players = players

	return nil
}

// RemovePlayer removes the player record entirely - a permanent
// leave, with no rejoin-by-userId afterwards.
func (s *GameSession) RemovePlayer(userID string) error {
	index := s.playerIndex(userID)
	if index == -1 {
		return PlayerNotInSessionError{UserID: userID}
	}

	players := make([]Player, 0, len(s.players)-1)
	players = append(players, s.players[:index]...)
	s.players = append(players, s.players[index+1:]...)

	return nil
}

// DisconnectPlayer marks the player as disconnected and returns the
// player. The record is kept so the same userId can rejoin later.
func (s *GameSession) DisconnectPlayer(userID string) (Player, error) {
	index := s.playerIndex(userID)
	if index == -1 {
		return Player{}, PlayerNotInSessionError{UserID: userID}
	}

	players := make([]Player, len(s.players))
	copy(players, s.players)
	players[index].SetConnected(false)
	s.players = players

	return players[index], nil
}

// SetState moves the session into the given state. There is no
// transition table - any state is reachable from any other, and the
// host drives the transitions.
func (s *GameSession) SetState(newState GameSessionState) {
	s.state = newState
}

func (s *GameSession) isUserInSession(userID string) bool {
	return s.playerIndex(userID) != -1
}

func (s *GameSession) playerIndex(userID string) int {
	for i, player := range s.players {
		if player.UserID() == userID {
			return i
		}
	}
	return -1
}

func validateSessionName(name string) error {
	if name == "" {
		return ValidationError{Field: "name", Reason: "name is required and cannot be empty"}
	}

	if length := utf8.RuneCountInString(name); length < sessionNameMinLength || length > sessionNameMaxLength {
		return ValidationError{Field: "name", Reason: "name must be between 2 and 30 characters long"}
	}

	return nil
}
