package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	NewGame(ctx context.Context, sessionID, first, second string) (*entity.Game, error)
	PlayTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, entity.Outcome, error)
	ResetGame(ctx context.Context, sessionID string) (*entity.Game, error)
	GetGame(ctx context.Context, sessionID string) (*entity.Game, error)
	EndGame(ctx context.Context, sessionID string) error
}

type Server struct {
	logger *slog.Logger
	games  gameManager
}

func New(logger *slog.Logger, games gameManager) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

// Router - builds the HTTP routes.
func (that *Server) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/game", that.handleNewGame).Methods(http.MethodPost)
	api.HandleFunc("/game", that.handleGetGame).Methods(http.MethodGet)
	api.HandleFunc("/game", that.handleEndGame).Methods(http.MethodDelete)
	api.HandleFunc("/game/turn", that.handleTurn).Methods(http.MethodPost)
	api.HandleFunc("/game/reset", that.handleReset).Methods(http.MethodPost)

	return router
}

// Start - serves HTTP on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
