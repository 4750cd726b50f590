package entity

const (
	RoleOperative = "operative"
	RoleSpymaster = "spymaster"
)

// Player is one roster entry. ID is the volatile transport session identity;
// DeviceID, when present, is the stable identity a reconnecting session is
// re-associated through.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Role     string `json:"role"`
	DeviceID string `json:"device_id,omitempty"`
}

// PlayerUpdate carries the optional fields UpdatePlayer merges into a record.
type PlayerUpdate struct {
	Team string
	Role string
}

// AddPlayer appends a new operative to the team with fewer members,
// ties going to red. Name validation is the caller's responsibility.
func (that *Game) AddPlayer(id, name, deviceID string) *Player {
	team := TeamRed
	if that.TeamSize(TeamRed) > that.TeamSize(TeamBlue) {
		team = TeamBlue
	}

	player := &Player{
		ID:       id,
		Name:     name,
		Team:     team,
		Role:     RoleOperative,
		DeviceID: deviceID,
	}
	that.Players = append(that.Players, player)

	return player
}

// RemovePlayer drops the first player whose id matches; unknown ids are
// ignored. Host status needs no bookkeeping since it is positional.
func (that *Game) RemovePlayer(id string) {
	for i, player := range that.Players {
		if player.ID == id {
			that.Players = append(that.Players[:i], that.Players[i+1:]...)
			return
		}
	}
}

// UpdatePlayer merges the non-empty fields of update into the matching
// player record; unknown ids are ignored.
func (that *Game) UpdatePlayer(id string, update PlayerUpdate) {
	player := that.PlayerByID(id)
	if player == nil {
		return
	}

	if update.Team != "" {
		player.Team = update.Team
	}
	if update.Role != "" {
		player.Role = update.Role
	}
}

// RebindSession points the player owning deviceID at a new session id,
// returning the rebound player or nil if the device is unknown.
func (that *Game) RebindSession(deviceID, sessionID string) *Player {
	player := that.PlayerByDeviceID(deviceID)
	if player == nil {
		return nil
	}

	player.ID = sessionID

	return player
}

func (that *Game) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}
	return nil
}

func (that *Game) PlayerByDeviceID(deviceID string) *Player {
	if deviceID == "" {
		return nil
	}

	for _, player := range that.Players {
		if player.DeviceID == deviceID {
			return player
		}
	}
	return nil
}

// Host is the first-joined player still on the roster, or nil for an
// empty room.
func (that *Game) Host() *Player {
	if len(that.Players) == 0 {
		return nil
	}
	return that.Players[0]
}

func (that *Game) TeamSize(team string) int {
	count := 0
	for _, player := range that.Players {
		if player.Team == team {
			count++
		}
	}
	return count
}
