package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewSlug_Has_Expected_Length(t *testing.T) {
	require.Len(t, NewSlug(), slugLength)
}

func Test_NewID_Has_Expected_Length(t *testing.T) {
	require.Len(t, NewID(), idLength)
}

func Test_NewID_Does_Not_Repeat_Immediately(t *testing.T) {
	require.NotEqual(t, NewID(), NewID())
}
