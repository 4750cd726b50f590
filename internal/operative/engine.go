package operative

import (
	"fmt"
	"strings"

	"github.com/pdkokare1/operative-backend/internal/apperror"
	"github.com/pdkokare1/operative-backend/internal/entity"
)

// StartOptions is the lobby configuration sent with a start action.
// Category picks the word pool the board is rebuilt from; TimerSeconds is
// informational only, the engine keeps no clock.
type StartOptions struct {
	Category     string
	TimerSeconds int
}

// StartGame moves a lobby game into play. The board is regenerated so a
// category chosen in the lobby takes effect.
func StartGame(game *entity.Game, opts StartOptions) error {
	switch {
	case game.IsFinished():
		return apperror.ErrGameFinished
	case !game.IsLobby():
		return apperror.ErrGameStarted
	}

	category := opts.Category
	if category == "" {
		category = game.Category
	}

	board, err := newBoard(category)
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}

	game.Board = board
	game.Category = category
	game.TimerSeconds = opts.TimerSeconds
	game.Scores = entity.Scores{Red: entity.RedAgents, Blue: entity.BlueAgents}
	game.Phase = entity.PhasePlaying
	game.Turn = entity.TeamRed
	game.CurrentClue = nil
	game.AppendLog("Mission Started. Red Team's Turn.")

	return nil
}

// GiveClue records the acting team's hint. Role and turn checks belong to
// the caller; once invoked the transition is unconditional.
func GiveClue(game *entity.Game, word string, number int) error {
	if err := confirmPlaying(game); err != nil {
		return err
	}

	game.CurrentClue = &entity.Clue{Word: word, Number: number}
	game.AppendLog(fmt.Sprintf("%s Spymaster transmits: %s (%d).", teamLabel(game.Turn), strings.ToUpper(word), number))

	return nil
}

// RevealCard flips a card face up and applies exactly one outcome rule:
// assassin ends the game for the opponent, a civilian ends the turn, an own
// agent scores and may win, an enemy agent scores for the opponent and ends
// the turn.
func RevealCard(game *entity.Game, cardID string) error {
	if err := confirmPlaying(game); err != nil {
		return err
	}

	card := game.CardByID(cardID)
	if card == nil {
		return fmt.Errorf("%w: %s", apperror.ErrCardNotFound, cardID)
	}

	if card.Revealed {
		return apperror.ErrCardRevealed
	}

	card.Revealed = true

	team := game.Turn
	opponent := entity.Opponent(team)

	switch {
	case card.Type == entity.CardAssassin:
		game.Phase = entity.PhaseGameOver
		game.Winner = opponent
		game.AppendLog(fmt.Sprintf("FATAL ERROR: %s Hit the Assassin! %s Wins.", teamLabel(team), teamLabel(opponent)))

	case card.Type == entity.CardCivilian:
		game.Turn = opponent
		game.CurrentClue = nil
		game.AppendLog(fmt.Sprintf("%s hit a civilian. Turn over.", teamLabel(team)))

	case card.Type == team:
		game.Scores.Dec(team)
		game.AppendLog(fmt.Sprintf("%s found an Agent!", teamLabel(team)))

		if game.Scores.Get(team) == 0 {
			game.Phase = entity.PhaseGameOver
			game.Winner = team
			game.AppendLog(fmt.Sprintf("MISSION ACCOMPLISHED: %s Wins!", teamLabel(team)))
		}

	default:
		game.Scores.Dec(opponent)
		game.Turn = opponent
		game.CurrentClue = nil
		game.AppendLog(fmt.Sprintf("%s found an Enemy Spy! Turn over.", teamLabel(team)))

		if game.Scores.Get(opponent) == 0 {
			game.Phase = entity.PhaseGameOver
			game.Winner = opponent
			game.AppendLog(fmt.Sprintf("MISSION FAILED: %s Wins!", teamLabel(opponent)))
		}
	}

	return nil
}

// EndTurn passes play to the other team and clears the standing clue.
func EndTurn(game *entity.Game) error {
	if err := confirmPlaying(game); err != nil {
		return err
	}

	game.Turn = entity.Opponent(game.Turn)
	game.CurrentClue = nil
	game.AppendLog(fmt.Sprintf("%s passes. %s Team's Turn.", teamLabel(entity.Opponent(game.Turn)), teamLabel(game.Turn)))

	return nil
}

// Restart throws away the board, logs and scores and returns the room to
// the lobby with a fresh board; the roster survives untouched.
func Restart(game *entity.Game) error {
	board, err := newBoard(game.Category)
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}

	game.Board = board
	game.Phase = entity.PhaseLobby
	game.Turn = entity.TeamRed
	game.Scores = entity.Scores{Red: entity.RedAgents, Blue: entity.BlueAgents}
	game.Winner = ""
	game.CurrentClue = nil
	game.TimerSeconds = 0
	game.Logs = []string{"Mission Reset. Prepare for deployment."}

	return nil
}

// confirmPlaying rejects in-game actions outside the playing phase.
func confirmPlaying(game *entity.Game) error {
	switch {
	case game.IsLobby():
		return apperror.ErrGameNotStarted
	case game.IsFinished():
		return apperror.ErrGameFinished
	}
	return nil
}

func teamLabel(team string) string {
	return strings.ToUpper(team)
}
