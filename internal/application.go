package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dekritpn/kawio/internal/config"
	"github.com/dekritpn/kawio/internal/repository"
	"github.com/dekritpn/kawio/internal/repository/storage"
	"github.com/dekritpn/kawio/internal/service"
	"github.com/dekritpn/kawio/internal/transport/rest"
	"github.com/dekritpn/kawio/internal/transport/websocket"
	"github.com/dekritpn/kawio/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

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

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	matchRepo := repository.NewMatchRepository(redisStorage.Connection)
	playerRepo := repository.NewPlayerRepository(redisStorage.Connection)
	statsRepo := repository.NewStatsRepository(sqliteStorage.Connection)

	authService := service.NewAuthService(conf.JWTSecretKey, conf.TokenTTL)
	ratingService := service.NewRatingService(statsRepo)
	botService := service.NewBotService(conf.Engine.Depth, conf.Engine.MoveBudget)

	hub := websocket.NewHub(logger)

	coordinator := usecase.NewCoordinator(
		logger,
		matchRepo,
		playerRepo,
		botService,
		ratingService,
		hub,
		conf.TurnTimeout,
	)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.NewServer(logger, coordinator, authService, statsRepo)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.WSPort)
		wsServer := websocket.NewServer(logger, hub, coordinator, authService)

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", wsServer.HandleWS)

		server := &http.Server{
			Addr:              ":" + conf.WSPort,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
				log.Error("WebSocket server shutdown error", "error", shutdownErr)
			}
		}()

		if wsErr := server.ListenAndServe(); wsErr != nil && !errors.Is(wsErr, http.ErrServerClosed) {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
