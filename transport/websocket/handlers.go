package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pdkokare1/operative-backend/internal/apperror"
	"github.com/pdkokare1/operative-backend/internal/entity"
	"github.com/pdkokare1/operative-backend/internal/operative"
	"github.com/pdkokare1/operative-backend/internal/pkg"
)

var errNotConnected = errors.New("session is not established, send connect first")

// handleConnect establishes the session identity. Session ids are always
// minted server-side; a client-supplied one would let the sender answer for
// another player. A returning device is dropped straight back into its room
// through the device binding and everyone gets the fresh state.
func (that *Server) handleConnect(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	sessionID := pkg.NewSessionID()

	that.register(c, sessionID)

	payloadResp := Payload{SessionID: sessionID}

	if payloadReq.DeviceID != "" {
		game, reconnectErr := that.rooms.Reconnect(ctx, sessionID, payloadReq.DeviceID)
		switch {
		case reconnectErr == nil:
			c.roomCode = game.RoomCode
			payloadResp.Game = game
			defer that.broadcastGame(msg.Action, game)
			log.Info("session reconnected to room", "session", sessionID, "room", game.RoomCode)
		case errors.Is(reconnectErr, apperror.ErrDeviceNotInRoom), errors.Is(reconnectErr, apperror.ErrRoomNotFound):
			// fresh device, nothing to restore
		default:
			log.Error("failed to reconnect device", "error", reconnectErr)
		}
	}

	if err = that.sendMessage(c, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected session", "session", sessionID)

	return nil
}

func (that *Server) handleCreateRoom(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if c.sessionID == "" {
		return that.sendErrorResponse(c, msg.Action, errNotConnected.Error())
	}

	game, err := that.rooms.CreateRoom(ctx, c.sessionID, payloadReq.Name, payloadReq.DeviceID)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	c.roomCode = game.RoomCode
	that.broadcastGame(msg.Action, game)

	return nil
}

func (that *Server) handleJoinRoom(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if c.sessionID == "" {
		return that.sendErrorResponse(c, msg.Action, errNotConnected.Error())
	}

	game, err := that.rooms.JoinRoom(ctx, c.sessionID, payloadReq.RoomCode, payloadReq.Name, payloadReq.DeviceID)
	if err != nil {
		if errors.Is(err, apperror.ErrRoomNotFound) {
			return that.sendErrorResponse(c, msg.Action, "Room not found")
		}
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	c.roomCode = game.RoomCode
	that.broadcastGame(msg.Action, game)

	return nil
}

// handleLeaveRoom removes the player on an intentional exit; a plain
// disconnect keeps the roster entry for reconnection.
func (that *Server) handleLeaveRoom(ctx context.Context, c *client, msg *Message) error {
	if c.sessionID == "" {
		return that.sendErrorResponse(c, msg.Action, errNotConnected.Error())
	}

	game, err := that.rooms.LeaveRoom(ctx, c.sessionID)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	c.roomCode = ""

	if len(game.Players) > 0 {
		that.broadcastGame(msg.Action, game)
	}

	return that.sendMessage(c, msg.Action, Payload{RoomCode: game.RoomCode})
}

func (that *Server) handleSetTeam(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	return that.applyAndBroadcast(c, msg, func() (*entity.Game, error) {
		return that.rooms.SetTeam(ctx, c.sessionID, payloadReq.Team)
	})
}

func (that *Server) handleSetRole(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	return that.applyAndBroadcast(c, msg, func() (*entity.Game, error) {
		return that.rooms.SetRole(ctx, c.sessionID, payloadReq.Role)
	})
}

func (that *Server) handleStartGame(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	opts := operative.StartOptions{
		Category:     payloadReq.Category,
		TimerSeconds: payloadReq.TimerSeconds,
	}

	return that.applyAndBroadcast(c, msg, func() (*entity.Game, error) {
		return that.rooms.StartGame(ctx, c.sessionID, opts)
	})
}

func (that *Server) handleGiveClue(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	return that.applyAndBroadcast(c, msg, func() (*entity.Game, error) {
		return that.rooms.GiveClue(ctx, c.sessionID, payloadReq.Word, payloadReq.Number)
	})
}

func (that *Server) handleRevealCard(ctx context.Context, c *client, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	return that.applyAndBroadcast(c, msg, func() (*entity.Game, error) {
		return that.rooms.RevealCard(ctx, c.sessionID, payloadReq.CardID)
	})
}

func (that *Server) handleEndTurn(ctx context.Context, c *client, msg *Message) error {
	return that.applyAndBroadcast(c, msg, func() (*entity.Game, error) {
		return that.rooms.EndTurn(ctx, c.sessionID)
	})
}

func (that *Server) handleRestart(ctx context.Context, c *client, msg *Message) error {
	return that.applyAndBroadcast(c, msg, func() (*entity.Game, error) {
		return that.rooms.Restart(ctx, c.sessionID)
	})
}

// applyAndBroadcast runs one game action and either fans the new state out
// to the room or reports the rejection back to the caller only.
func (that *Server) applyAndBroadcast(c *client, msg *Message, apply func() (*entity.Game, error)) error {
	if c.sessionID == "" {
		return that.sendErrorResponse(c, msg.Action, errNotConnected.Error())
	}

	game, err := apply()
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	that.broadcastGame(msg.Action, game)

	return nil
}

func decodePayload(msg *Message) (*Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}
