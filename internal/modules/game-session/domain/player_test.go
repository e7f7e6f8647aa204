package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewPlayer_Defaults_To_Connected(t *testing.T) {
	// Act
	player, err := NewPlayer(PlayerParams{UserID: "user-1", Name: "Alice"})

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, player.ID())
	require.Equal(t, "user-1", player.UserID())
	require.True(t, player.IsConnected())
}

func Test_NewPlayer_Requires_UserID(t *testing.T) {
	// Act
	_, err := NewPlayer(PlayerParams{Name: "Alice"})

	// Assert
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func Test_NewPlayer_Validates_Name_Bounds(t *testing.T) {
	valid := []string{"ab", "Alice", strings.Repeat("x", 50)}
	for _, name := range valid {
		_, err := NewPlayer(PlayerParams{UserID: "user-1", Name: name})
		require.NoError(t, err, name)
	}

	invalid := []string{"", "a", strings.Repeat("x", 51)}
	for _, name := range invalid {
		_, err := NewPlayer(PlayerParams{UserID: "user-1", Name: name})

		var validationErr ValidationError
		require.ErrorAs(t, err, &validationErr, name)
	}
}

func Test_NewPlayer_Honors_Explicit_Connection_Flag(t *testing.T) {
	// Arrange
	disconnected := false

	// Act
	player, err := NewPlayer(PlayerParams{
		UserID:      "user-1",
		Name:        "Alice",
		IsConnected: &disconnected,
	})

	// Assert
	require.NoError(t, err)
	require.False(t, player.IsConnected())
}
