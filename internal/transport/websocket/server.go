package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dekritpn/kawio/internal/entity"
	"github.com/dekritpn/kawio/internal/othello"
	"github.com/dekritpn/kawio/internal/service"
)

const (
	writeTimeout  = 10 * time.Second
	sendQueueSize = 16
)

type coordinator interface {
	SubmitMove(ctx context.Context, matchID, playerID, coord string) (*othello.Snapshot, error)
	SubmitPass(ctx context.Context, matchID, playerID string) (*othello.Snapshot, error)
	State(ctx context.Context, matchID string) (*othello.Snapshot, error)
	Match(ctx context.Context, matchID string) (*entity.Match, error)
}

// Server upgrades /ws requests and runs one read loop per connection. Each
// connection watches a single match; actions act on behalf of the token's
// player.
type Server struct {
	logger      *slog.Logger
	hub         *Hub
	coordinator coordinator
	auth        service.AuthService
	upgrader    websocket.Upgrader
}

func NewServer(logger *slog.Logger, hub *Hub, coordinator coordinator, auth service.AuthService) *Server {
	return &Server{
		logger:      logger,
		hub:         hub,
		coordinator: coordinator,
		auth:        auth,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// client is one live connection. The send queue decouples the hub from the
// socket; writeLoop is the only goroutine writing to the connection.
type client struct {
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

// close tears the client down: it stops the write loop and closes the
// underlying connection, which in turn ends the read loop.
func (that *client) close() {
	that.closeOnce.Do(func() {
		close(that.done)

		if that.conn != nil {
			_ = that.conn.Close()
		}
	})
}

// HandleWS authenticates the query-string token, subscribes the connection
// to its match and serves it until either side hangs up.
func (that *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "HandleWS")

	playerID, err := that.auth.ValidateToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	matchID := r.URL.Query().Get("match_id")
	if matchID == "" {
		http.Error(w, "match_id is required", http.StatusBadRequest)
		return
	}

	if _, err = that.coordinator.Match(r.Context(), matchID); err != nil {
		http.Error(w, "unknown match", http.StatusNotFound)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	subscriber := &client{
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}

	that.hub.subscribe(matchID, subscriber)

	log.Info("connection established", "playerID", playerID, "matchID", matchID)

	go that.writeLoop(subscriber)

	that.sendState(r.Context(), subscriber, matchID)
	that.readLoop(r.Context(), subscriber, matchID, playerID)

	that.hub.unsubscribe(matchID, subscriber)
	subscriber.close()
}

func (that *Server) readLoop(ctx context.Context, subscriber *client, matchID, playerID string) {
	log := that.logger.With("method", "readLoop", "matchID", matchID, "playerID", playerID)

	for {
		_, raw, err := subscriber.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("connection failed", "error", err)
			}

			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			that.sendError(subscriber, fmt.Errorf("malformed message: %w", err))
			continue
		}

		switch message.Action {
		case actionMove:
			var payload MovePayload
			if err = json.Unmarshal(message.Payload, &payload); err != nil {
				that.sendError(subscriber, fmt.Errorf("malformed move payload: %w", err))
				continue
			}

			if _, err = that.coordinator.SubmitMove(ctx, matchID, playerID, payload.Move); err != nil {
				that.sendError(subscriber, err)
			}
		case actionPass:
			if _, err = that.coordinator.SubmitPass(ctx, matchID, playerID); err != nil {
				that.sendError(subscriber, err)
			}
		case actionState:
			that.sendState(ctx, subscriber, matchID)
		default:
			that.sendError(subscriber, fmt.Errorf("unknown action %q", message.Action))
		}
	}
}

func (that *Server) writeLoop(subscriber *client) {
	log := that.logger.With("method", "writeLoop")

	for {
		select {
		case raw := <-subscriber.send:
			if err := subscriber.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				log.Debug("failed to set write deadline", "error", err)
				return
			}

			if err := subscriber.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				log.Debug("failed to write message", "error", err)
				return
			}
		case <-subscriber.done:
			return
		}
	}
}

// sendState pushes the current snapshot to one connection, outside of the
// hub broadcast.
func (that *Server) sendState(ctx context.Context, subscriber *client, matchID string) {
	snapshot, err := that.coordinator.State(ctx, matchID)
	if err != nil {
		that.sendError(subscriber, err)
		return
	}

	that.send(subscriber, actionState, StatePayload{MatchID: matchID, State: snapshot})
}

func (that *Server) sendError(subscriber *client, err error) {
	that.send(subscriber, actionError, ErrorPayload{Error: err.Error()})
}

func (that *Server) send(subscriber *client, action string, payload any) {
	log := that.logger.With("method", "send")

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal payload", "error", err)
		return
	}

	message, err := json.Marshal(Message{Action: action, Payload: raw})
	if err != nil {
		log.Error("failed to marshal message", "error", err)
		return
	}

	select {
	case subscriber.send <- message:
	case <-subscriber.done:
	}
}
