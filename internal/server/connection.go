package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/euchred/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one websocket client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	service   *TableService
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu    sync.RWMutex
	table *Table
	role  game.Role
}

// NewConnection creates a connection wrapper around an upgraded websocket
func NewConnection(conn *websocket.Conn, logger *log.Logger, service *TableService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		service: service,
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// Send queues a message for the client. A full buffer closes the
// connection rather than blocking the table.
func (c *Connection) Send(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// send channel closed during shutdown
			c.logger.Debug("send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetSeat records which table and seat this connection occupies
func (c *Connection) SetSeat(table *Table, role game.Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = table
	c.role = role
}

// Seat returns the connection's table and seat, nil if not yet joined
func (c *Connection) Seat() (*Table, game.Role) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table, c.role
}

// readPump pulls messages off the socket and dispatches them
func (c *Connection) readPump() {
	defer func() {
		c.service.Disconnect(c)
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("unexpected close", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("malformed message", "error", err)
			_ = c.Send(NewErrorMessage(err))
			continue
		}

		c.service.Dispatch(c, &msg)
	}
}

// writePump pushes queued messages onto the socket and keeps the peer alive
// with pings
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("write failed", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}
