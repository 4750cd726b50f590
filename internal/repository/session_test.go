package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdkokare1/operative-backend/internal/apperror"
	"github.com/pdkokare1/operative-backend/testing/suite"
)

func TestSessionRepository_Bind(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, testTTL)

	// Given: a bound session
	err := sessionRepo.Bind(ctx, "s1", "AB12")
	require.NoError(t, err)

	// When: the session's room is looked up
	roomCode, err := sessionRepo.RoomBySession(ctx, "s1")

	// Then: the binding resolves
	require.NoError(t, err)
	assert.Equal(t, "AB12", roomCode)
}

func TestSessionRepository_Unbind(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, testTTL)

	err := sessionRepo.Bind(ctx, "s1", "AB12")
	require.NoError(t, err)

	// When: the session is unbound
	err = sessionRepo.Unbind(ctx, "s1")
	require.NoError(t, err)

	// Then: the lookup reports no room
	_, err = sessionRepo.RoomBySession(ctx, "s1")
	assert.ErrorIs(t, err, apperror.ErrNotInRoom)
}

func TestSessionRepository_UnknownSession(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage, testTTL)

	_, err := sessionRepo.RoomBySession(ctx, "ghost")

	assert.ErrorIs(t, err, apperror.ErrNotInRoom)
}

func TestSessionRepository_DeviceBinding(t *testing.T) {
	t.Run("Device binding survives session churn", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, testTTL)

		// Given: a device bound to a room and its session gone
		err := sessionRepo.BindDevice(ctx, "dev1", "AB12")
		require.NoError(t, err)
		err = sessionRepo.Bind(ctx, "s1", "AB12")
		require.NoError(t, err)
		err = sessionRepo.Unbind(ctx, "s1")
		require.NoError(t, err)

		// When: the device's room is looked up
		roomCode, err := sessionRepo.RoomByDevice(ctx, "dev1")

		// Then: the device still points at its room
		require.NoError(t, err)
		assert.Equal(t, "AB12", roomCode)
	})

	t.Run("Unknown device has no room", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage, testTTL)

		_, err := sessionRepo.RoomByDevice(ctx, "ghost")

		assert.ErrorIs(t, err, apperror.ErrDeviceNotInRoom)
	})
}
