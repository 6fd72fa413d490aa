package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/boardgame-backend/internal/config"
	"github.com/rocketscienceinc/boardgame-backend/internal/repository"
	"github.com/rocketscienceinc/boardgame-backend/internal/repository/storage"
	"github.com/rocketscienceinc/boardgame-backend/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/boardgame-backend/internal/usecase"
	"github.com/rocketscienceinc/boardgame-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	store, closeStore, err := newSaveStore(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not set up save storage: %w", err)
	}

	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			log.Error("could not close save storage", "error", closeErr)
		}
	}()

	gameManager := usecase.NewGameManager(logger, store)

	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down")
		return nil
	case err = <-wsErrCh:
		return err
	}
}

// newSaveStore - picks the configured save-slot backend. The two encoded
// documents are identical regardless of the backend.
func newSaveStore(ctx context.Context, conf *config.Config) (repository.SaveStore, func() error, error) {
	noop := func() error { return nil }

	switch conf.Storage.Backend {
	case "redis":
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Storage.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisSaveStore(redisStorage.Connection), redisStorage.Close, nil

	case "sqlite":
		sqliteStorage, err := sqlite.New(conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteSaveStore(sqliteStorage.Connection), sqliteStorage.Close, nil

	case "file", "":
		fileStore, err := repository.NewFileSaveStore(conf.Storage.SavesDir)
		if err != nil {
			return nil, nil, fmt.Errorf("could not create file storage: %w", err)
		}

		return fileStore, noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", conf.Storage.Backend)
	}
}
