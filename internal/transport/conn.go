package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

// Conn is the minimal connection surface the transport needs. The production
// implementation wraps a gorilla websocket connection; tests substitute an
// in-memory pipe.
type Conn interface {
	// ReadMessage blocks until the next text message arrives.
	ReadMessage() ([]byte, error)

	// WriteMessage sends one text message. Callers must serialise writes;
	// the transport does so with its write lock.
	WriteMessage(data []byte) error

	// Close tears the connection down, unblocking any pending reads.
	Close() error
}

// Dialer opens a Conn to the push endpoint.
type Dialer interface {
	DialContext(ctx context.Context, url string) (Conn, error)
}

type gorillaConn struct {
	conn *websocket.Conn
}

func (c *gorillaConn) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

func (c *gorillaConn) WriteMessage(data []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *gorillaConn) Close() error {
	return c.conn.Close()
}

type gorillaDialer struct{}

func (gorillaDialer) DialContext(ctx context.Context, url string) (Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: handshake status %d", ErrAuthRejected, resp.StatusCode)
		}
		return nil, err
	}
	return &gorillaConn{conn: conn}, nil
}
