package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is a live transport connection to one user. The production
// implementation wraps a websocket, tests substitute an in-memory
// fake.
type Conn interface {
	Send(message []byte) error
	Close() error
}

// wsConn serializes writes - gorilla/websocket allows at most one
// concurrent writer per connection.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWebSocketConn(conn *websocket.Conn) Conn {
	return &wsConn{conn: conn}
}

func (c *wsConn) Send(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}
