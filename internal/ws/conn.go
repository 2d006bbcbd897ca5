package ws

import "sync"

// JSONConn is the subset of *websocket.Conn the server writes through.
type JSONConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Conn serializes writes to a websocket. The underlying connection allows
// one writer at a time, while a match broadcasts from whichever player's
// goroutine made the move.
type Conn struct {
	mu   sync.Mutex
	conn JSONConn
}

func NewConn(conn JSONConn) *Conn {
	return &Conn{conn: conn}
}

func (c *Conn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// SendError writes an error message with text as its payload.
func (c *Conn) SendError(text string) error {
	return c.WriteJSON(ErrorMessage(text))
}
