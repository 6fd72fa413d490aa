package websocket

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Hub maintains the set of active clients and broadcasts engine events to
// them.
type Hub struct {
	logger *slog.Logger

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

func newHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger.With("component", "ws_hub"),
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run - the hub's event loop; exits with the context.
func (that *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range that.clients {
				close(client.send)
				delete(that.clients, client)
			}
			return

		case client := <-that.register:
			that.clients[client] = true

		case client := <-that.unregister:
			if _, ok := that.clients[client]; ok {
				delete(that.clients, client)
				close(client.send)
			}

		case message := <-that.broadcast:
			for client := range that.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop the connection rather than block
					// the fan-out.
					delete(that.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Broadcast - queues a message for every connected client.
func (that *Hub) Broadcast(message []byte) {
	that.broadcast <- message
}

// Client is a single WebSocket connection.
type Client struct {
	hub    *Hub
	server *Server
	conn   *websocket.Conn
	send   chan []byte
}

// readPump - reads client messages and dispatches them to the server's
// handlers.
func (that *Client) readPump(ctx context.Context) {
	defer func() {
		that.hub.unregister <- that
		that.conn.Close()
	}()

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				that.hub.logger.Error("unexpected close", "error", err)
			}
			return
		}

		that.server.dispatch(ctx, that, data)
	}
}

// writePump - pushes queued messages and keepalive pings to the peer.
func (that *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		that.conn.Close()
	}()

	for {
		select {
		case message, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendMessage - queues a message for this client only.
func (that *Client) sendMessage(message []byte) {
	select {
	case that.send <- message:
	default:
	}
}
