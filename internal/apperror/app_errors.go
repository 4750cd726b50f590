package apperror

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrGameStarted     = errors.New("game is already started")
	ErrGameNotStarted  = errors.New("game is not started")
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrNotSpymaster    = errors.New("only the spymaster can give clues")
	ErrNotOperative    = errors.New("the spymaster cannot reveal cards")
	ErrNoActiveClue    = errors.New("no clue has been given yet")
	ErrNotHost         = errors.New("only the host can do that")
	ErrCardNotFound    = errors.New("card not found")
	ErrCardRevealed    = errors.New("card is already revealed")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrUnknownTeam     = errors.New("unknown team")
	ErrUnknownRole     = errors.New("unknown role")
	ErrPoolExhausted   = errors.New("word pool has fewer than 25 words")
	ErrUnknownCategory = errors.New("unknown word category")
	ErrNoFreeRoomCodes = errors.New("could not allocate a free room code")
	ErrNotInRoom       = errors.New("session is not in a room")
	ErrDeviceNotInRoom = errors.New("device is not known to any room")
)
