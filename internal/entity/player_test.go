package entity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_AddPlayer(t *testing.T) {
	t.Run("First player goes to red", func(t *testing.T) {
		// Given: an empty roster
		game := &Game{}

		// When: a player joins
		player := game.AddPlayer("s1", "Alice", "")

		// Then: they are a red operative
		require.NotNil(t, player)
		assert.Equal(t, TeamRed, player.Team)
		assert.Equal(t, RoleOperative, player.Role)
	})

	t.Run("Teams never drift apart by more than one", func(t *testing.T) {
		// Given: an empty roster
		game := &Game{}

		// When: seven players join one after another
		for i := 0; i < 7; i++ {
			game.AddPlayer(fmt.Sprintf("s%d", i), fmt.Sprintf("Agent %d", i), "")

			// Then: the team sizes stay within one of each other
			diff := game.TeamSize(TeamRed) - game.TeamSize(TeamBlue)
			assert.LessOrEqual(t, diff, 1)
			assert.GreaterOrEqual(t, diff, 0)
		}
	})
}

func TestGame_RemovePlayer(t *testing.T) {
	t.Run("Host is positional and survives removals", func(t *testing.T) {
		// Given: three players, first joined is host
		game := &Game{}
		game.AddPlayer("s1", "First", "")
		game.AddPlayer("s2", "Second", "")
		game.AddPlayer("s3", "Third", "")
		require.Equal(t, "s1", game.Host().ID)

		// When: the host leaves
		game.RemovePlayer("s1")

		// Then: the next earliest joiner becomes host
		require.NotNil(t, game.Host())
		assert.Equal(t, "s2", game.Host().ID)
	})

	t.Run("Unknown id is ignored", func(t *testing.T) {
		game := &Game{}
		game.AddPlayer("s1", "Only", "")

		game.RemovePlayer("nope")

		assert.Len(t, game.Players, 1)
	})

	t.Run("Removing the last player empties the roster", func(t *testing.T) {
		game := &Game{}
		game.AddPlayer("s1", "Only", "")

		game.RemovePlayer("s1")

		assert.Empty(t, game.Players)
		assert.Nil(t, game.Host())
	})
}

func TestGame_UpdatePlayer(t *testing.T) {
	// Given: one red operative
	game := &Game{}
	game.AddPlayer("s1", "Alice", "")

	// When: the player switches team and role
	game.UpdatePlayer("s1", PlayerUpdate{Team: TeamBlue, Role: RoleSpymaster})

	// Then: both fields changed, nothing else
	player := game.PlayerByID("s1")
	require.NotNil(t, player)
	assert.Equal(t, TeamBlue, player.Team)
	assert.Equal(t, RoleSpymaster, player.Role)
	assert.Equal(t, "Alice", player.Name)

	// When: only the role is given
	game.UpdatePlayer("s1", PlayerUpdate{Role: RoleOperative})

	// Then: the team is untouched
	assert.Equal(t, TeamBlue, player.Team)
	assert.Equal(t, RoleOperative, player.Role)
}

func TestGame_RebindSession(t *testing.T) {
	t.Run("Points the device's player at the new session", func(t *testing.T) {
		// Given: a player who joined from a known device
		game := &Game{}
		game.AddPlayer("old-session", "Alice", "device-1")

		// When: the device comes back under a new session id
		player := game.RebindSession("device-1", "new-session")

		// Then: the same record answers to the new id, no duplicate appears
		require.NotNil(t, player)
		assert.Equal(t, "new-session", player.ID)
		assert.Len(t, game.Players, 1)
		assert.Nil(t, game.PlayerByID("old-session"))
	})

	t.Run("Unknown device rebinds nothing", func(t *testing.T) {
		game := &Game{}
		game.AddPlayer("s1", "Alice", "device-1")

		assert.Nil(t, game.RebindSession("device-2", "s2"))
	})
}

func TestGame_PlayerByDeviceID(t *testing.T) {
	game := &Game{}
	game.AddPlayer("s1", "Alice", "device-1")
	game.AddPlayer("s2", "Bob", "")

	// an empty device id must not match players without one
	assert.Nil(t, game.PlayerByDeviceID(""))

	player := game.PlayerByDeviceID("device-1")
	require.NotNil(t, player)
	assert.Equal(t, "s1", player.ID)
}
