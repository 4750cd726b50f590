package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdkokare1/operative-backend/internal/apperror"
	"github.com/pdkokare1/operative-backend/internal/entity"
	"github.com/pdkokare1/operative-backend/testing/suite"
)

const testTTL = time.Hour

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, testTTL)

	// Given: a lobby game
	game := &entity.Game{
		RoomCode: "AB12",
		Phase:    entity.PhaseLobby,
		Turn:     entity.TeamRed,
	}

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: the game is stored with a bounded retention window
	require.NoError(t, err)

	ttl, err := st.Storage.TTL(ctx, "room:AB12").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, testTTL)
}

func TestGameRepository_GetByCode(t *testing.T) {
	t.Run("GetByCode_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, testTTL)

		// Given: a stored game with board and roster
		game := &entity.Game{
			RoomCode: "AB12",
			Phase:    entity.PhasePlaying,
			Turn:     entity.TeamBlue,
			Board: []entity.Card{
				{ID: "card-0", Word: "EAGLE", Type: entity.CardRed, Revealed: true},
			},
			Players: []*entity.Player{
				{ID: "s1", Name: "Alice", Team: entity.TeamRed, Role: entity.RoleSpymaster},
			},
			Scores:      entity.Scores{Red: 8, Blue: 8},
			Logs:        []string{"Mission Started. Red Team's Turn."},
			CurrentClue: &entity.Clue{Word: "eagle", Number: 2},
		}

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByCode is called with the room code
		retrievedGame, err := gameRepo.GetByCode(ctx, game.RoomCode)

		// Then: the retrieved game round-trips the saved state
		require.NoError(t, err)
		require.Equal(t, game, retrievedGame)
	})

	t.Run("GetByCode_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage, testTTL)

		// When: GetByCode is called with a non-existent room code
		retrievedGame, err := gameRepo.GetByCode(ctx, "ZZZZ")

		// Then: an ErrRoomNotFound error should be returned
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
		assert.Nil(t, retrievedGame)
	})
}

func TestGameRepository_DeleteByCode(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage, testTTL)

	// Given: a stored game
	game := &entity.Game{
		RoomCode: "AB12",
		Phase:    entity.PhaseLobby,
	}

	err := gameRepo.CreateOrUpdate(ctx, game)
	require.NoError(t, err)

	// When: DeleteByCode is called
	err = gameRepo.DeleteByCode(ctx, game.RoomCode)

	// Then: the room is gone
	require.NoError(t, err)

	_, err = gameRepo.GetByCode(ctx, game.RoomCode)
	assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
}
