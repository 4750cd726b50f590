package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pdkokare1/operative-backend/internal/apperror"
)

// SessionRepository keeps the connection-identity mappings: which room a
// live session belongs to, and which room a persistent device last joined.
// Device bindings let a reconnecting client find its room after the
// session id changed.
type SessionRepository interface {
	Bind(ctx context.Context, sessionID, roomCode string) error
	RoomBySession(ctx context.Context, sessionID string) (string, error)
	Unbind(ctx context.Context, sessionID string) error

	BindDevice(ctx context.Context, deviceID, roomCode string) error
	RoomByDevice(ctx context.Context, deviceID string) (string, error)
}

type dbSession struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &dbSession{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbSession) Bind(ctx context.Context, sessionID, roomCode string) error {
	if err := that.client.Set(ctx, "session:"+sessionID, roomCode, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to bind session: %w", err)
	}

	return nil
}

func (that *dbSession) RoomBySession(ctx context.Context, sessionID string) (string, error) {
	roomCode, err := that.client.Get(ctx, "session:"+sessionID).Result()

	if errors.Is(err, redis.Nil) {
		return "", apperror.ErrNotInRoom
	}

	if err != nil {
		return "", fmt.Errorf("failed to get room by session: %w", err)
	}

	return roomCode, nil
}

func (that *dbSession) Unbind(ctx context.Context, sessionID string) error {
	if err := that.client.Del(ctx, "session:"+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to unbind session: %w", err)
	}

	return nil
}

func (that *dbSession) BindDevice(ctx context.Context, deviceID, roomCode string) error {
	if err := that.client.Set(ctx, "device:"+deviceID, roomCode, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to bind device: %w", err)
	}

	return nil
}

func (that *dbSession) RoomByDevice(ctx context.Context, deviceID string) (string, error) {
	roomCode, err := that.client.Get(ctx, "device:"+deviceID).Result()

	if errors.Is(err, redis.Nil) {
		return "", apperror.ErrDeviceNotInRoom
	}

	if err != nil {
		return "", fmt.Errorf("failed to get room by device: %w", err)
	}

	return roomCode, nil
}
