package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustSession(t *testing.T, name string) *GameSession {
	t.Helper()

	session, err := NewGameSession(GameSessionParams{Name: name})
	require.NoError(t, err)

	return session
}

func mustJoin(t *testing.T, session *GameSession, userID, name string) Player {
	t.Helper()

	player, err := NewPlayer(PlayerParams{UserID: userID, Name: name})
	require.NoError(t, err)
	require.NoError(t, session.AddPlayer(player))

	return player
}

func mustTopic(t *testing.T, name string) GameTopic {
	t.Helper()

	topic, err := NewGameTopic(GameTopicParams{Name: name})
	require.NoError(t, err)

	return topic
}

func Test_NewGameSession_Defaults_To_Empty_Lobby(t *testing.T) {
	// Act
	session, err := NewGameSession(GameSessionParams{Name: "Quiz Night"})

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, session.ID())
	require.Equal(t, "Quiz Night", session.Name())
	require.Equal(t, StateLobby, session.State())
	require.Empty(t, session.Topics())
	require.Empty(t, session.Players())
}

func Test_NewGameSession_Validates_Name_Bounds(t *testing.T) {
	valid := []string{"ab", "Quiz Night", strings.Repeat("x", 30)}
	for _, name := range valid {
		_, err := NewGameSession(GameSessionParams{Name: name})
		require.NoError(t, err, name)
	}

	invalid := []string{"", "a", strings.Repeat("x", 31)}
	for _, name := range invalid {
		_, err := NewGameSession(GameSessionParams{Name: name})

		var validationErr ValidationError
		require.ErrorAs(t, err, &validationErr, name)
	}
}

func Test_Rename_Requires_Membership(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")

	// Act
	err := session.Rename("Trivia Night", "stranger")

	// Assert
	var notInSession UserNotInGameSessionError
	require.ErrorAs(t, err, &notInSession)
	require.Equal(t, "Quiz Night", session.Name())
}

func Test_Rename_Replaces_Name(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	// Act
	err := session.Rename("Trivia Night", "user-1")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Trivia Night", session.Name())
}

func Test_Rename_Rejects_Invalid_Name(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	// Act
	err := session.Rename("x", "user-1")

	// Assert
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "Quiz Night", session.Name())
}

func Test_AddTopic_Appends_In_Insertion_Order(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	// Act
	require.NoError(t, session.AddTopic(mustTopic(t, "Science"), "user-1"))
	require.NoError(t, session.AddTopic(mustTopic(t, "History"), "user-1"))
	require.NoError(t, session.AddTopic(mustTopic(t, "Movies"), "user-1"))

	// Assert
	topics := session.Topics()
	require.Len(t, topics, 3)
	require.Equal(t, "Science", topics[0].Name())
	require.Equal(t, "History", topics[1].Name())
	require.Equal(t, "Movies", topics[2].Name())
}

func Test_AddTopic_Fails_Outside_Lobby(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")
	session.SetState(StateMatchInProgress)

	// Act
	err := session.AddTopic(mustTopic(t, "Science"), "user-1")

	// Assert
	var notInLobby GameSessionNotInLobbyError
	require.ErrorAs(t, err, &notInLobby)
	require.Empty(t, session.Topics())
}

func Test_AddTopic_Fails_On_Duplicate_Id(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	topic := mustTopic(t, "Science")
	require.NoError(t, session.AddTopic(topic, "user-1"))

	// Act
	err := session.AddTopic(topic, "user-1")

	// Assert
	var duplicate TopicAlreadyInGameSessionError
	require.ErrorAs(t, err, &duplicate)
	require.Len(t, session.Topics(), 1)
}

func Test_AddTopic_State_Gate_Is_Checked_Before_Duplicate_Gate(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	topic := mustTopic(t, "Science")
	require.NoError(t, session.AddTopic(topic, "user-1"))
	session.SetState(StateMatchFinished)

	// Act
	err := session.AddTopic(topic, "user-1")

	// Assert
	var notInLobby GameSessionNotInLobbyError
	require.ErrorAs(t, err, &notInLobby)
}

func Test_RemoveTopic_Returns_The_Removed_Topic(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	topic := mustTopic(t, "Science")
	require.NoError(t, session.AddTopic(topic, "user-1"))
	require.NoError(t, session.AddTopic(mustTopic(t, "History"), "user-1"))

	// Act
	removed, err := session.RemoveTopic(topic.ID(), "user-1")

	// Assert
	require.NoError(t, err)
	require.Equal(t, topic.ID(), removed.ID())
	require.Len(t, session.Topics(), 1)
	require.Equal(t, "History", session.Topics()[0].Name())
}

func Test_RemoveTopic_Fails_On_Unknown_Id(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")
	require.NoError(t, session.AddTopic(mustTopic(t, "Science"), "user-1"))

	// Act
	_, err := session.RemoveTopic("missing", "user-1")

	// Assert
	var notFound TopicNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Len(t, session.Topics(), 1)
}

func Test_RenameTopic_Renames_In_Place(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	topic := mustTopic(t, "Science")
	require.NoError(t, session.AddTopic(topic, "user-1"))

	// Act
	renamed, err := session.RenameTopic(topic.ID(), "Physics", "user-1")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "Physics", renamed.Name())
	require.Equal(t, "Physics", session.Topics()[0].Name())
}

func Test_RenameTopic_Surfaces_Topic_Validation(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	topic := mustTopic(t, "Science")
	require.NoError(t, session.AddTopic(topic, "user-1"))

	// Act
	_, err := session.RenameTopic(topic.ID(), "x", "user-1")

	// Assert
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "Science", session.Topics()[0].Name())
}

func Test_RenameTopic_Fails_On_Unknown_Id(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	// Act
	_, err := session.RenameTopic("missing", "Physics", "user-1")

	// Assert
	var notFound TopicNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func Test_AddPlayer_Rejects_Connected_Duplicate(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	duplicate, err := NewPlayer(PlayerParams{UserID: "user-1", Name: "Alice Again"})
	require.NoError(t, err)

	// Act
	err = session.AddPlayer(duplicate)

	// Assert
	var alreadyIn PlayerAlreadyInGameSessionError
	require.ErrorAs(t, err, &alreadyIn)
	require.Len(t, session.Players(), 1)
}

func Test_AddPlayer_Reconnects_Disconnected_Player(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	original := mustJoin(t, session, "user-1", "Alice")

	_, err := session.DisconnectPlayer("user-1")
	require.NoError(t, err)

	rejoining, err := NewPlayer(PlayerParams{UserID: "user-1", Name: "Alice"})
	require.NoError(t, err)

	// Act
	err = session.AddPlayer(rejoining)

	// Assert
	require.NoError(t, err)

	players := session.Players()
	require.Len(t, players, 1)
	require.True(t, players[0].IsConnected())
	// the original membership record survives the reconnect
	require.Equal(t, original.ID(), players[0].ID())
}

func Test_AddPlayer_Allows_Join_In_Any_State(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	session.SetState(StateMatchInProgress)

	// Act
	mustJoin(t, session, "late-user", "Bob")

	// Assert
	require.Len(t, session.Players(), 1)
}

func Test_RemovePlayer_Removes_The_Record(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")
	mustJoin(t, session, "user-2", "Bob")

	// Act
	err := session.RemovePlayer("user-1")

	// Assert
	require.NoError(t, err)

	players := session.Players()
	require.Len(t, players, 1)
	require.Equal(t, "user-2", players[0].UserID())
}

func Test_RemovePlayer_Fails_On_Unknown_User(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	// Act
	err := session.RemovePlayer("missingUser")

	// Assert
	var notInSession PlayerNotInSessionError
	require.ErrorAs(t, err, &notInSession)
	require.Len(t, session.Players(), 1)
}

func Test_DisconnectPlayer_Keeps_The_Record(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")

	// Act
	player, err := session.DisconnectPlayer("user-1")

	// Assert
	require.NoError(t, err)
	require.False(t, player.IsConnected())

	players := session.Players()
	require.Len(t, players, 1)
	require.False(t, players[0].IsConnected())
}

func Test_DisconnectPlayer_Fails_On_Unknown_User(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")

	// Act
	_, err := session.DisconnectPlayer("missingUser")

	// Assert
	var notInSession PlayerNotInSessionError
	require.ErrorAs(t, err, &notInSession)
}

func Test_SetState_Is_Unconditional(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")

	// Act
	session.SetState(StateMatchFinished)
	session.SetState(StateLobby)

	// Assert
	require.Equal(t, StateLobby, session.State())
}

func Test_Mutations_Do_Not_Alias_Earlier_Snapshots(t *testing.T) {
	// Arrange
	session := mustSession(t, "Quiz Night")
	mustJoin(t, session, "user-1", "Alice")
	require.NoError(t, session.AddTopic(mustTopic(t, "Science"), "user-1"))

	topicsBefore := session.Topics()
	playersBefore := session.Players()

	// Act
	topic := session.Topics()[0]
	_, err := session.RenameTopic(topic.ID(), "Physics", "user-1")
	require.NoError(t, err)
	_, err = session.DisconnectPlayer("user-1")
	require.NoError(t, err)

	// Assert - the snapshots taken before the mutations are intact
	require.Equal(t, "Science", topicsBefore[0].Name())
	require.True(t, playersBefore[0].IsConnected())
}
