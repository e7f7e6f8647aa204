package domain

import "unicode/utf8"

const (
	topicNameMinLength = 2
	topicNameMaxLength = 50
)

// GameTopic is a discussion topic attached to a single game session.
// It has no life of its own - it is created when added to a session
// and discarded when removed.
type GameTopic struct {
	id   string
	name string
}

type GameTopicParams struct {
	ID   string
	Name string
}

func NewGameTopic(params GameTopicParams) (GameTopic, error) {
	if err := validateTopicName(params.Name); err != nil {
		return GameTopic{}, err
	}

	id := params.ID
	if id == "" {
		id = NewID()
	}

	return GameTopic{id: id, name: params.Name}, nil
}

func (t GameTopic) ID() string { return t.id }

func (t GameTopic) Name() string { return t.name }

func (t *GameTopic) SetName(name string) error {
	if err := validateTopicName(name); err != nil {
		return err
	}

	t.name = name
	return nil
}

func validateTopicName(name string) error {
	if name == "" {
		return ValidationError{Field: "name", Reason: "name is required and cannot be empty"}
	}

	if length := utf8.RuneCountInString(name); length < topicNameMinLength || length > topicNameMaxLength {
		return ValidationError{Field: "name", Reason: "name must be between 2 and 50 characters long"}
	}

	return nil
}
