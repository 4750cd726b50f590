package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pdkokare1/operative-backend/internal/apperror"
	"github.com/pdkokare1/operative-backend/internal/entity"
	"github.com/pdkokare1/operative-backend/internal/operative"
	"github.com/pdkokare1/operative-backend/internal/pkg"
)

const roomCodeAttempts = 5

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByCode(ctx context.Context, roomCode string) (*entity.Game, error)
	DeleteByCode(ctx context.Context, roomCode string) error
}

type sessionRepo interface {
	Bind(ctx context.Context, sessionID, roomCode string) error
	RoomBySession(ctx context.Context, sessionID string) (string, error)
	Unbind(ctx context.Context, sessionID string) error

	BindDevice(ctx context.Context, deviceID, roomCode string) error
	RoomByDevice(ctx context.Context, deviceID string) (string, error)
}

// roomLocks serializes writers per room code. Storage reads hand back
// independent snapshots, so two unserialized load-mutate-save cycles on the
// same room would silently drop whichever save lands first.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until the caller is the room's only writer and returns the
// unlock func. Entries are tiny and bounded by the code space, so they are
// never evicted.
func (that *roomLocks) Lock(roomCode string) func() {
	that.mu.Lock()
	lock, ok := that.locks[roomCode]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[roomCode] = lock
	}
	that.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}

// RoomManager owns everything around the rule engine: loading a room's
// state, the authorization checks the engine contract leaves to the caller,
// persisting the result and keeping session/device bindings current. Every
// mutation holds the room's write lock for the whole load-mutate-save
// window, so concurrent actions on one room apply one at a time.
type RoomManager struct {
	logger   *slog.Logger
	games    gameRepo
	sessions sessionRepo
	locks    *roomLocks
}

func NewRoomManager(logger *slog.Logger, games gameRepo, sessions sessionRepo) *RoomManager {
	return &RoomManager{
		logger: logger.With("component", "room_manager"),

		games:    games,
		sessions: sessions,
		locks:    newRoomLocks(),
	}
}

// CreateRoom allocates an unused room code, builds a fresh game and seats
// the creating session as host. The candidate code is locked before the
// availability check so two creators cannot claim it at once.
func (that *RoomManager) CreateRoom(ctx context.Context, sessionID, name, deviceID string) (*entity.Game, error) {
	for i := 0; i < roomCodeAttempts; i++ {
		roomCode := pkg.NewRoomCode()
		if roomCode == "" {
			continue
		}

		unlock := that.locks.Lock(roomCode)

		_, err := that.games.GetByCode(ctx, roomCode)
		if err == nil {
			unlock()
			continue
		}
		if !errors.Is(err, apperror.ErrRoomNotFound) {
			unlock()
			return nil, fmt.Errorf("failed to check room code: %w", err)
		}

		game, err := operative.NewGame(roomCode, operative.DefaultCategory)
		if err != nil {
			unlock()
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		if name == "" {
			name = "Host"
		}
		game.AddPlayer(sessionID, name, deviceID)

		err = that.bindAndSave(ctx, game, sessionID, deviceID)
		unlock()
		if err != nil {
			return nil, err
		}

		that.logger.Info("room created", "room", roomCode, "host", sessionID)

		return game, nil
	}

	return nil, apperror.ErrNoFreeRoomCodes
}

// JoinRoom seats a session in an existing room. A deviceID already on the
// roster rebinds that player to the new session instead of duplicating it.
func (that *RoomManager) JoinRoom(ctx context.Context, sessionID, roomCode, name, deviceID string) (*entity.Game, error) {
	code := NormalizeRoomCode(roomCode)

	unlock := that.locks.Lock(code)
	defer unlock()

	game, err := that.games.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if player := game.PlayerByDeviceID(deviceID); player != nil {
		game.RebindSession(deviceID, sessionID)
		if name != "" {
			player.Name = name
		}
		that.logger.Info("device rejoined room", "room", code, "session", sessionID)
	} else {
		if name == "" {
			name = "Agent " + shortID(sessionID)
		}
		game.AddPlayer(sessionID, name, deviceID)
		that.logger.Info("player joined room", "room", code, "session", sessionID)
	}

	if err = that.bindAndSave(ctx, game, sessionID, deviceID); err != nil {
		return nil, err
	}

	return game, nil
}

// Reconnect restores a fresh session into the room its device last joined.
func (that *RoomManager) Reconnect(ctx context.Context, sessionID, deviceID string) (*entity.Game, error) {
	roomCode, err := that.sessions.RoomByDevice(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find room for device: %w", err)
	}

	unlock := that.locks.Lock(roomCode)
	defer unlock()

	game, err := that.games.GetByCode(ctx, roomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.RebindSession(deviceID, sessionID) == nil {
		return nil, apperror.ErrPlayerNotFound
	}

	if err = that.bindAndSave(ctx, game, sessionID, deviceID); err != nil {
		return nil, err
	}

	that.logger.Info("device reconnected", "room", roomCode, "session", sessionID)

	return game, nil
}

// LeaveRoom removes the session's player. The emptied room is deleted; the
// returned game reflects the post-removal roster either way.
func (that *RoomManager) LeaveRoom(ctx context.Context, sessionID string) (*entity.Game, error) {
	roomCode, err := that.sessions.RoomBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find room for session: %w", err)
	}

	unlock := that.locks.Lock(roomCode)
	defer unlock()

	game, err := that.games.GetByCode(ctx, roomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game.RemovePlayer(sessionID)

	if err = that.sessions.Unbind(ctx, sessionID); err != nil {
		that.logger.Error("failed to unbind session", "session", sessionID, "error", err)
	}

	if len(game.Players) == 0 {
		if err = that.games.DeleteByCode(ctx, game.RoomCode); err != nil {
			return nil, fmt.Errorf("failed to delete empty room: %w", err)
		}

		that.logger.Info("room emptied and deleted", "room", game.RoomCode)

		return game, nil
	}

	if err = that.games.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// SetTeam moves the calling player to a team. Switching sides always drops
// the player back to operative so a spymaster cannot carry board knowledge
// across.
func (that *RoomManager) SetTeam(ctx context.Context, sessionID, team string) (*entity.Game, error) {
	if team != entity.TeamRed && team != entity.TeamBlue {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownTeam, team)
	}

	return that.mutateSessionRoom(ctx, sessionID, func(game *entity.Game) error {
		if game.PlayerByID(sessionID) == nil {
			return apperror.ErrPlayerNotFound
		}

		game.UpdatePlayer(sessionID, entity.PlayerUpdate{Team: team, Role: entity.RoleOperative})

		return nil
	})
}

func (that *RoomManager) SetRole(ctx context.Context, sessionID, role string) (*entity.Game, error) {
	if role != entity.RoleOperative && role != entity.RoleSpymaster {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownRole, role)
	}

	return that.mutateSessionRoom(ctx, sessionID, func(game *entity.Game) error {
		if game.PlayerByID(sessionID) == nil {
			return apperror.ErrPlayerNotFound
		}

		game.UpdatePlayer(sessionID, entity.PlayerUpdate{Role: role})

		return nil
	})
}

// StartGame begins the mission; only the host may start.
func (that *RoomManager) StartGame(ctx context.Context, sessionID string, opts operative.StartOptions) (*entity.Game, error) {
	game, err := that.mutateSessionRoom(ctx, sessionID, func(game *entity.Game) error {
		if host := game.Host(); host == nil || host.ID != sessionID {
			return apperror.ErrNotHost
		}

		return operative.StartGame(game, opts)
	})
	if err != nil {
		return nil, err
	}

	that.logger.Info("game started", "room", game.RoomCode, "category", game.Category)

	return game, nil
}

// GiveClue records a hint after verifying the caller is the acting team's
// spymaster.
func (that *RoomManager) GiveClue(ctx context.Context, sessionID, word string, number int) (*entity.Game, error) {
	return that.mutateSessionRoom(ctx, sessionID, func(game *entity.Game) error {
		caller := game.PlayerByID(sessionID)
		switch {
		case caller == nil:
			return apperror.ErrPlayerNotFound
		case game.IsPlaying() && caller.Team != game.Turn:
			return apperror.ErrNotYourTurn
		case caller.Role != entity.RoleSpymaster:
			return apperror.ErrNotSpymaster
		}

		return operative.GiveClue(game, word, number)
	})
}

// RevealCard flips a card after verifying the caller is an operative on the
// acting team and a clue is on the table.
func (that *RoomManager) RevealCard(ctx context.Context, sessionID, cardID string) (*entity.Game, error) {
	return that.mutateSessionRoom(ctx, sessionID, func(game *entity.Game) error {
		caller := game.PlayerByID(sessionID)
		switch {
		case caller == nil:
			return apperror.ErrPlayerNotFound
		case game.IsPlaying() && caller.Team != game.Turn:
			return apperror.ErrNotYourTurn
		case caller.Role != entity.RoleOperative:
			return apperror.ErrNotOperative
		case game.IsPlaying() && game.CurrentClue == nil:
			return apperror.ErrNoActiveClue
		}

		return operative.RevealCard(game, cardID)
	})
}

// EndTurn passes play; only a member of the acting team may pass.
func (that *RoomManager) EndTurn(ctx context.Context, sessionID string) (*entity.Game, error) {
	return that.mutateSessionRoom(ctx, sessionID, func(game *entity.Game) error {
		caller := game.PlayerByID(sessionID)
		switch {
		case caller == nil:
			return apperror.ErrPlayerNotFound
		case game.IsPlaying() && caller.Team != game.Turn:
			return apperror.ErrNotYourTurn
		}

		return operative.EndTurn(game)
	})
}

// Restart returns the room to the lobby with a fresh board and the same
// roster; only the host may restart.
func (that *RoomManager) Restart(ctx context.Context, sessionID string) (*entity.Game, error) {
	game, err := that.mutateSessionRoom(ctx, sessionID, func(game *entity.Game) error {
		if host := game.Host(); host == nil || host.ID != sessionID {
			return apperror.ErrNotHost
		}

		return operative.Restart(game)
	})
	if err != nil {
		return nil, err
	}

	that.logger.Info("room restarted", "room", game.RoomCode)

	return game, nil
}

// mutateSessionRoom resolves the session's room and runs apply on its
// loaded state, holding the room's write lock across load, mutation and
// save. The saved state is only written when apply succeeds.
func (that *RoomManager) mutateSessionRoom(ctx context.Context, sessionID string, apply func(game *entity.Game) error) (*entity.Game, error) {
	roomCode, err := that.sessions.RoomBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find room for session: %w", err)
	}

	unlock := that.locks.Lock(roomCode)
	defer unlock()

	game, err := that.games.GetByCode(ctx, roomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if err = apply(game); err != nil {
		return nil, err
	}

	if err = that.games.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// currentGame resolves the session's room binding and loads its state.
func (that *RoomManager) currentGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	roomCode, err := that.sessions.RoomBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find room for session: %w", err)
	}

	game, err := that.games.GetByCode(ctx, roomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *RoomManager) bindAndSave(ctx context.Context, game *entity.Game, sessionID, deviceID string) error {
	if err := that.sessions.Bind(ctx, sessionID, game.RoomCode); err != nil {
		return fmt.Errorf("failed to bind session: %w", err)
	}

	if deviceID != "" {
		if err := that.sessions.BindDevice(ctx, deviceID, game.RoomCode); err != nil {
			return fmt.Errorf("failed to bind device: %w", err)
		}
	}

	if err := that.games.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// NormalizeRoomCode maps user input to the stored uppercase form.
func NormalizeRoomCode(roomCode string) string {
	return strings.ToUpper(strings.TrimSpace(roomCode))
}

func shortID(id string) string {
	if len(id) <= 3 {
		return id
	}
	return id[:3]
}
