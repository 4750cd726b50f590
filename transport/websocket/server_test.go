package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdkokare1/operative-backend/internal/apperror"
	"github.com/pdkokare1/operative-backend/internal/entity"
	"github.com/pdkokare1/operative-backend/internal/operative"
)

// stubRoomService answers every call with "not in a room"; connection
// handling is under test, not the room logic behind it.
type stubRoomService struct{}

func (stubRoomService) CreateRoom(context.Context, string, string, string) (*entity.Game, error) {
	return nil, apperror.ErrNotInRoom
}

func (stubRoomService) JoinRoom(context.Context, string, string, string, string) (*entity.Game, error) {
	return nil, apperror.ErrNotInRoom
}

func (stubRoomService) Reconnect(context.Context, string, string) (*entity.Game, error) {
	return nil, apperror.ErrDeviceNotInRoom
}

func (stubRoomService) LeaveRoom(context.Context, string) (*entity.Game, error) {
	return nil, apperror.ErrNotInRoom
}

func (stubRoomService) SetTeam(context.Context, string, string) (*entity.Game, error) {
	return nil, apperror.ErrNotInRoom
}

func (stubRoomService) SetRole(context.Context, string, string) (*entity.Game, error) {
	return nil, apperror.ErrNotInRoom
}

func (stubRoomService) StartGame(context.Context, string, operative.StartOptions) (*entity.Game, error) {
	return nil, apperror.ErrNotInRoom
}

func (stubRoomService) GiveClue(context.Context, string, string, int) (*entity.Game, error) {
	return nil, apperror.ErrNotInRoom
}

func (stubRoomService) RevealCard(context.Context, string, string) (*entity.Game, error) {
	return nil, apperror.ErrNotInRoom
}

func (stubRoomService) EndTurn(context.Context, string) (*entity.Game, error) {
	return nil, apperror.ErrNotInRoom
}

func (stubRoomService) Restart(context.Context, string) (*entity.Game, error) {
	return nil, apperror.ErrNotInRoom
}

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, stubRoomService{})
}

func newTestClient() *client {
	return &client{send: make(chan []byte, sendBufferSize)}
}

// receivePayload pops the next frame off the client's send buffer.
func receivePayload(t *testing.T, c *client, wantAction string) *Payload {
	t.Helper()

	select {
	case raw := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		require.Equal(t, wantAction, msg.Action)

		var payload Payload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		return &payload
	default:
		t.Fatal("no frame was sent to the client")
		return nil
	}
}

func connectMessage(t *testing.T, payload Payload) *Message {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	return &Message{Action: "connect", Payload: raw}
}

func TestHandleConnect_MintsSessionID(t *testing.T) {
	ctx := context.Background()

	t.Run("Connect without a session id gets one", func(t *testing.T) {
		// Given: a fresh connection
		server := newTestServer()
		c := newTestClient()

		// When: the client connects
		err := server.handleConnect(ctx, c, connectMessage(t, Payload{}))

		// Then: the reply carries a server-minted id and the client is registered
		require.NoError(t, err)
		payload := receivePayload(t, c, "connect")
		assert.NotEmpty(t, payload.SessionID)
		assert.Same(t, c, server.clients[payload.SessionID])
	})

	t.Run("Client-supplied session id is never honored", func(t *testing.T) {
		// Given: a connection claiming someone else's session id
		server := newTestServer()
		c := newTestClient()

		// When: the client connects with the claimed id
		err := server.handleConnect(ctx, c, connectMessage(t, Payload{SessionID: "stolen-session"}))

		// Then: a fresh id is minted and the claimed one is not registered
		require.NoError(t, err)
		payload := receivePayload(t, c, "connect")
		assert.NotEmpty(t, payload.SessionID)
		assert.NotEqual(t, "stolen-session", payload.SessionID)
		assert.NotContains(t, server.clients, "stolen-session")
	})

	t.Run("Claiming a live session cannot displace its holder", func(t *testing.T) {
		// Given: an established connection
		server := newTestServer()
		victim := newTestClient()
		require.NoError(t, server.handleConnect(ctx, victim, connectMessage(t, Payload{})))
		victimSession := receivePayload(t, victim, "connect").SessionID

		// When: a second connection connects claiming that id
		intruder := newTestClient()
		err := server.handleConnect(ctx, intruder, connectMessage(t, Payload{SessionID: victimSession}))

		// Then: the victim keeps its registration and the intruder gets its own
		require.NoError(t, err)
		intruderSession := receivePayload(t, intruder, "connect").SessionID
		assert.NotEqual(t, victimSession, intruderSession)
		assert.Same(t, victim, server.clients[victimSession])
		assert.Same(t, intruder, server.clients[intruderSession])
	})
}
