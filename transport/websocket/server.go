package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/boardgame-backend/internal/entity"
	"github.com/rocketscienceinc/boardgame-backend/internal/game"
	"github.com/rocketscienceinc/boardgame-backend/internal/usecase"
)

type gameManager interface {
	NewGame(variant entity.Variant, specs []usecase.PlayerSpec) error
	RollDice() error
	AdvanceTurn() error

	ResolvePropertyPurchase(accept bool) error
	ResolveTaxChoice(usePercent bool) error
	ResolveJailChoice(payBail bool) error

	Save(ctx context.Context, slot string) error
	Load(ctx context.Context, slot string) error
	ListSaves(ctx context.Context) ([]string, error)

	State() *usecase.State
	Subscribe(observer game.Observer) int
}

type Server struct {
	logger      *slog.Logger
	gameManager gameManager
	hub         *Hub
	upgrader    websocket.Upgrader

	handlers map[string]func(ctx context.Context, client *Client, message *Message) error
}

func New(logger *slog.Logger, manager gameManager) *Server {
	server := &Server{
		logger:      logger.With("component", "ws_server"),
		gameManager: manager,
		hub:         newHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]func(context.Context, *Client, *Message) error),
	}

	server.handlers["game:new"] = server.handleNewGame
	server.handlers["game:roll"] = server.handleRoll
	server.handlers["game:advance"] = server.handleAdvance
	server.handlers["game:decision"] = server.handleDecision
	server.handlers["game:save"] = server.handleSave
	server.handlers["game:load"] = server.handleLoad
	server.handlers["game:saves"] = server.handleListSaves
	server.handlers["game:state"] = server.handleState

	// Every engine notification goes out to every connected client.
	manager.Subscribe(game.ObserverFunc(server.broadcastEvent))

	return server
}

// Start - starts the WebSocket server and the hub loop.
func (that *Server) Start(ctx context.Context, port string) error {
	go that.hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection and starts the client pumps.
func (that *Server) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := &Client{
		hub:    that.hub,
		server: that,
		conn:   conn,
		send:   make(chan []byte, 256),
	}

	that.hub.register <- client

	go client.writePump()
	go client.readPump(ctx)

	log.Info("WebSocket connection established")
}
