package entity

const (
	PhaseLobby    = "lobby"
	PhasePlaying  = "playing"
	PhaseGameOver = "game_over"
)

const (
	TeamRed  = "red"
	TeamBlue = "blue"
)

const (
	CardRed      = "red"
	CardBlue     = "blue"
	CardCivilian = "civilian"
	CardAssassin = "assassin"
)

const (
	BoardSize = 25

	RedAgents  = 9
	BlueAgents = 8
	Civilians  = 7
	Assassins  = 1
)

// Card is a single board cell. A team card's Type equals the team name,
// so ownership checks compare Type against the acting team directly.
type Card struct {
	ID       string `json:"id"`
	Word     string `json:"word"`
	Type     string `json:"type"`
	Revealed bool   `json:"revealed"`
}

// Clue is the spymaster's current hint; present only while a team is guessing.
type Clue struct {
	Word   string `json:"word"`
	Number int    `json:"number"`
}

type Scores struct {
	Red  int `json:"red"`
	Blue int `json:"blue"`
}

// Get returns the number of unfound agents left for a team.
func (that *Scores) Get(team string) int {
	if team == TeamRed {
		return that.Red
	}
	return that.Blue
}

// Dec decrements a team's remaining agent count, never below zero.
func (that *Scores) Dec(team string) {
	switch {
	case team == TeamRed && that.Red > 0:
		that.Red--
	case team == TeamBlue && that.Blue > 0:
		that.Blue--
	}
}

// Game is the aggregate state of one room. Every transition mutates the
// loaded copy and the repository persists it; rooms never share a Game.
type Game struct {
	RoomCode     string    `json:"room_code"`
	Phase        string    `json:"phase"`
	Turn         string    `json:"turn"`
	Board        []Card    `json:"board"`
	Players      []*Player `json:"players"`
	Scores       Scores    `json:"scores"`
	Winner       string    `json:"winner,omitempty"`
	Logs         []string  `json:"logs"`
	CurrentClue  *Clue     `json:"current_clue,omitempty"`
	Category     string    `json:"category,omitempty"`
	TimerSeconds int       `json:"timer_seconds,omitempty"`
}

// Opponent returns the other team.
func Opponent(team string) string {
	if team == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

func (that *Game) IsLobby() bool {
	return that.Phase == PhaseLobby
}

func (that *Game) IsPlaying() bool {
	return that.Phase == PhasePlaying
}

func (that *Game) IsFinished() bool {
	return that.Phase == PhaseGameOver
}

// CardByID returns the card with the given id, or nil.
func (that *Game) CardByID(id string) *Card {
	for i := range that.Board {
		if that.Board[i].ID == id {
			return &that.Board[i]
		}
	}
	return nil
}

func (that *Game) AppendLog(line string) {
	that.Logs = append(that.Logs, line)
}
