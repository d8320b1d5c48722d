package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/session"
)

const (
	wsPath          = "/ws"
	shutdownTimeout = 5 * time.Second
	closeTimeout    = time.Second
)

type gameManager interface {
	NewGame(ctx context.Context, sessionID, first, second string) (*entity.Game, error)
	PlayTurn(ctx context.Context, sessionID string, cell int) (*entity.Game, entity.Outcome, error)
	ResetGame(ctx context.Context, sessionID string) (*entity.Game, error)
	GetGame(ctx context.Context, sessionID string) (*entity.Game, error)
	EndGame(ctx context.Context, sessionID string) error
}

type handlerFunc func(ctx context.Context, sessionID string, msg *Message, conn *websocket.Conn) error

type Server struct {
	logger   *slog.Logger
	games    gameManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReplay] = server.handleReplay
	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameLeave] = server.handleGameLeave

	return server
}

// Router - builds the WebSocket route.
func (that *Server) Router(ctx context.Context) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(wsPath, func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return router
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Router(ctx),
		ReadHeaderTimeout: 10 * time.Second,
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

// upgradeToWebSocket - upgrades the connection, issuing a session cookie when the client has none.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	sessionID, ok := session.FromRequest(req)

	header := http.Header{}
	if !ok {
		cookie := session.NewCookie(wsPath)
		sessionID = cookie.Value
		header.Add("Set-Cookie", cookie.String())
		log.Info("session cookie not found, new one created", "session", sessionID)
	}

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	// Shutdown does not reach hijacked connections, so each one watches ctx itself.
	done := make(chan struct{})
	defer close(done)

	go that.closeOnShutdown(ctx, conn, done)

	log.Info("WebSocket connection established", "session", sessionID)

	if err = that.handleMessages(ctx, sessionID, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// closeOnShutdown - sends a going-away close frame and closes conn once ctx is canceled.
func (that *Server) closeOnShutdown(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	select {
	case <-ctx.Done():
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeTimeout)); err != nil {
			that.logger.Warn("failed to send close frame", "error", err)
		}

		_ = conn.Close()
	case <-done:
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, sessionID string, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages", "session", sessionID)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if ctx.Err() != nil {
				log.Info("connection closed on shutdown")
				return nil
			}

			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("client disconnected")
				return nil
			}

			if isMalformed(err) {
				log.Warn("failed to unmarshal message", "error", err)
				if err = that.sendErrorResponse(conn, "", "malformed message"); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := that.sendErrorResponse(conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, sessionID, &message, conn); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func isMalformed(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
