package realtime

import (
	"fmt"
	"strings"
)

type JoinGameSessionError struct {
	SessionID string
	Reason    string
}

func (e JoinGameSessionError) Code() string { return "JoinGameSessionError" }

func (e JoinGameSessionError) Error() string {
	return fmt.Sprintf("failed to join session '%s': %s", e.SessionID, e.Reason)
}

type LeaveGameSessionError struct {
	SessionID string
	Reason    string
}

func (e LeaveGameSessionError) Code() string { return "LeaveGameSessionError" }

func (e LeaveGameSessionError) Error() string {
	return fmt.Sprintf("failed to leave session '%s': %s", e.SessionID, e.Reason)
}

// BroadcastToGameSessionError reports a failed fan-out. When Failed
// is non-empty the broadcast partially succeeded - every connection
// was attempted, and these userIds did not get the message.
type BroadcastToGameSessionError struct {
	SessionID string
	Reason    string
	Failed    []string
}

func (e BroadcastToGameSessionError) Code() string { return "BroadcastToGameSessionError" }

func (e BroadcastToGameSessionError) Error() string {
	if len(e.Failed) > 0 {
		return fmt.Sprintf(
			"failed to broadcast to session '%s': delivery failed for users [%s]",
			e.SessionID,
			strings.Join(e.Failed, ", "),
		)
	}

	return fmt.Sprintf("failed to broadcast to session '%s': %s", e.SessionID, e.Reason)
}

type SendMessageToPlayerError struct {
	UserID string
	Reason string
}

func (e SendMessageToPlayerError) Code() string { return "SendMessageToPlayerError" }

func (e SendMessageToPlayerError) Error() string {
	return fmt.Sprintf("failed to send message to user '%s': %s", e.UserID, e.Reason)
}
