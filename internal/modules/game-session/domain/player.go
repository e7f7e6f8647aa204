package domain

import "unicode/utf8"

const (
	playerNameMinLength = 2
	playerNameMaxLength = 50
)

// Player models one person's participation in one game session. The
// id identifies the membership, the userId identifies the human - it
// is stable across reconnects and is how a rejoining user is matched
// to their existing player record.
type Player struct {
	id          string
	userID      string
	name        string
	isConnected bool
}

type PlayerParams struct {
	ID          string
	UserID      string
	Name        string
	IsConnected *bool
}

func NewPlayer(params PlayerParams) (Player, error) {
	if err := validatePlayerName(params.Name); err != nil {
		return Player{}, err
	}

	if params.UserID == "" {
		return Player{}, ValidationError{Field: "userId", Reason: "userId is required and cannot be empty"}
	}

	id := params.ID
	if id == "" {
		id = NewID()
	}

	isConnected := true
	if params.IsConnected != nil {
		isConnected = *params.IsConnected
	}

	return Player{
		id:          id,
		userID:      params.UserID,
		name:        params.Name,
		isConnected: isConnected,
	}, nil
}

func (p Player) ID() string { return p.id }

func (p Player) UserID() string { return p.userID }

func (p Player) Name() string { return p.name }

func (p Player) IsConnected() bool { return p.isConnected }

func (p *Player) SetName(name string) error {
	if err := validatePlayerName(name); err != nil {
		return err
	}

	p.name = name
	return nil
}

func (p *Player) SetConnected(isConnected bool) {
	p.isConnected = isConnected
}

func validatePlayerName(name string) error {
	if name == "" {
		return ValidationError{Field: "name", Reason: "name is required and cannot be empty"}
	}

	if length := utf8.RuneCountInString(name); length < playerNameMinLength || length > playerNameMaxLength {
		return ValidationError{Field: "name", Reason: "name must be between 2 and 50 characters long"}
	}

	return nil
}
