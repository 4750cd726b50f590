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

	"github.com/pdkokare1/operative-backend/internal/entity"
	"github.com/pdkokare1/operative-backend/internal/operative"
)

const sendBufferSize = 8

type roomService interface {
	CreateRoom(ctx context.Context, sessionID, name, deviceID string) (*entity.Game, error)
	JoinRoom(ctx context.Context, sessionID, roomCode, name, deviceID string) (*entity.Game, error)
	Reconnect(ctx context.Context, sessionID, deviceID string) (*entity.Game, error)
	LeaveRoom(ctx context.Context, sessionID string) (*entity.Game, error)

	SetTeam(ctx context.Context, sessionID, team string) (*entity.Game, error)
	SetRole(ctx context.Context, sessionID, role string) (*entity.Game, error)

	StartGame(ctx context.Context, sessionID string, opts operative.StartOptions) (*entity.Game, error)
	GiveClue(ctx context.Context, sessionID, word string, number int) (*entity.Game, error)
	RevealCard(ctx context.Context, sessionID, cardID string) (*entity.Game, error)
	EndTurn(ctx context.Context, sessionID string) (*entity.Game, error)
	Restart(ctx context.Context, sessionID string) (*entity.Game, error)
}

// client is one websocket connection. All writes go through send so the
// write pump is the connection's only writer.
type client struct {
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
	roomCode  string
}

type Server struct {
	logger *slog.Logger
	rooms  roomService

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client // session id -> connection

	handlers map[string]func(ctx context.Context, c *client, msg *Message) error
}

func New(logger *slog.Logger, rooms roomService) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		rooms:  rooms,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},

		clients: make(map[string]*client),

		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.handlers["connect"] = server.handleConnect
	server.handlers["game:create"] = server.handleCreateRoom
	server.handlers["game:join"] = server.handleJoinRoom
	server.handlers["game:leave"] = server.handleLeaveRoom
	server.handlers["game:team"] = server.handleSetTeam
	server.handlers["game:role"] = server.handleSetRole
	server.handlers["game:start"] = server.handleStartGame
	server.handlers["game:clue"] = server.handleGiveClue
	server.handlers["game:reveal"] = server.handleRevealCard
	server.handlers["game:end_turn"] = server.handleEndTurn
	server.handlers["game:restart"] = server.handleRestart

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  0, // connections are long-lived
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the connection and pumps messages until the
// client goes away.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	go c.writePump()

	log.Info("WebSocket connection established")

	that.readPump(ctx, c)
}

func (that *Server) readPump(ctx context.Context, c *client) {
	log := that.logger.With("method", "readPump")

	defer func() {
		that.unregister(c)
		close(c.send)
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			log.Info("connection closed", "session", c.sessionID, "room", c.roomCode, "error", err)
			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			that.sendErrorResponse(c, message.Action, "unknown action")
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for raw := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			return
		}
	}
}

// register makes the client reachable for room broadcasts.
func (that *Server) register(c *client, sessionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if c.sessionID != "" && c.sessionID != sessionID {
		delete(that.clients, c.sessionID)
	}

	c.sessionID = sessionID
	that.clients[sessionID] = c
}

// unregister drops the connection from the broadcast maps. The player
// record stays on the roster so the device can reconnect.
func (that *Server) unregister(c *client) {
	if c.sessionID == "" {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok := that.clients[c.sessionID]; ok && existing == c {
		delete(that.clients, c.sessionID)
	}
}

// broadcastGame pushes the new state to every connected member of the room.
func (that *Server) broadcastGame(action string, game *entity.Game) {
	raw, err := encodeMessage(action, Payload{Game: game})
	if err != nil {
		that.logger.Error("failed to marshal broadcast", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, player := range game.Players {
		member, ok := that.clients[player.ID]
		if !ok {
			continue
		}
		member.trySend(raw)
	}
}

func (that *Server) sendMessage(c *client, action string, payload Payload) error {
	raw, err := encodeMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	c.trySend(raw)

	return nil
}

func (that *Server) sendErrorResponse(c *client, action, errText string) error {
	return that.sendMessage(c, action, Payload{Error: errText})
}

// trySend drops the frame instead of blocking when the client's buffer is
// full; a stalled reader catches up on the next broadcast.
func (c *client) trySend(raw []byte) {
	select {
	case c.send <- raw:
	default:
	}
}

func encodeMessage(action string, payload Payload) ([]byte, error) {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return json.Marshal(Message{
		Action:  action,
		Payload: rawPayload,
	})
}
