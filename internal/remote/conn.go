package remote

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Time a new connection has to introduce itself
	helloWait = 10 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 16384
)

// conn serialises writes to a websocket. gorilla allows one concurrent
// writer, and WriteControl may run alongside it.
type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

func newConn(ws *websocket.Conn) *conn {
	ws.SetReadLimit(maxMessageSize)
	return &conn{ws: ws}
}

func (c *conn) send(m *Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(m)
}

func (c *conn) sendData(t MessageType, requestID string, data any) error {
	m, err := NewMessage(t, requestID, data)
	if err != nil {
		return err
	}
	return c.send(m)
}

func (c *conn) receive() (*Message, error) {
	var m Message
	if err := c.ws.ReadJSON(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *conn) ping() error {
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// close sends a close frame with code and reason, then drops the socket.
func (c *conn) close(code int, reason string) error {
	_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
	return c.ws.Close()
}
