package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dekritpn/kawio/internal/entity"
	"github.com/dekritpn/kawio/internal/othello"
	"github.com/dekritpn/kawio/internal/service"
)

type coordinator interface {
	CreateMatch(ctx context.Context, playerID string, withBot bool) (*entity.Match, error)
	JoinMatch(ctx context.Context, matchID, playerID string) (*entity.Match, error)
	JoinMatchmaking(ctx context.Context, playerID string) (*entity.Match, error)
	SubmitMove(ctx context.Context, matchID, playerID, coord string) (*othello.Snapshot, error)
	SubmitPass(ctx context.Context, matchID, playerID string) (*othello.Snapshot, error)
	State(ctx context.Context, matchID string) (*othello.Snapshot, error)
	Match(ctx context.Context, matchID string) (*entity.Match, error)
}

type leaderboard interface {
	Leaderboard(ctx context.Context) ([]*entity.PlayerStats, error)
}

// Server is the HTTP face of the coordinator: login, match lifecycle, moves
// and the leaderboard.
type Server struct {
	logger      *slog.Logger
	coordinator coordinator
	auth        service.AuthService
	stats       leaderboard
}

func NewServer(logger *slog.Logger, coordinator coordinator, auth service.AuthService, stats leaderboard) *Server {
	return &Server{
		logger:      logger,
		coordinator: coordinator,
		auth:        auth,
		stats:       stats,
	}
}

// Router assembles all routes. Everything that acts on behalf of a player
// sits behind the bearer-token middleware.
func (that *Server) Router() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", that.handlePing)
	router.Post("/login", that.handleLogin)
	router.Get("/leaderboard", that.handleLeaderboard)

	router.Group(func(router chi.Router) {
		router.Use(that.withAuth)

		router.Post("/matches", that.handleNewMatch)
		router.Post("/matches/matchmaking", that.handleMatchmaking)
		router.Post("/matches/{id}/join", that.handleJoinMatch)
		router.Post("/matches/{id}/move", that.handleMove)
		router.Post("/matches/{id}/pass", that.handlePass)
		router.Get("/matches/{id}", that.handleState)
	})

	return router
}

// Start serves HTTP until the context is canceled, then drains in-flight
// requests.
func (that *Server) Start(ctx context.Context, port string) error {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}
