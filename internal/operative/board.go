package operative

import (
	"fmt"
	"math/rand"

	"github.com/pdkokare1/operative-backend/internal/apperror"
	"github.com/pdkokare1/operative-backend/internal/entity"
)

// NewGame builds a fresh lobby-phase game for a room: a 25-card board drawn
// from the category's word pool, red to move first, full scores, empty
// roster and a single seed log line.
func NewGame(roomCode, category string) (*entity.Game, error) {
	if category == "" {
		category = DefaultCategory
	}

	board, err := newBoard(category)
	if err != nil {
		return nil, err
	}

	return &entity.Game{
		RoomCode: roomCode,
		Phase:    entity.PhaseLobby,
		Turn:     entity.TeamRed,
		Board:    board,
		Players:  []*entity.Player{},
		Scores:   entity.Scores{Red: entity.RedAgents, Blue: entity.BlueAgents},
		Logs:     []string{"Operation " + roomCode + " is live. Awaiting agents."},
		Category: category,
	}, nil
}

// newBoard draws 25 distinct words and pairs them with a uniformly shuffled
// 9/8/7/1 color layout. Words and colors are permuted independently.
func newBoard(category string) ([]entity.Card, error) {
	pool, ok := wordPools[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownCategory, category)
	}

	if len(pool) < entity.BoardSize {
		return nil, fmt.Errorf("%w: category %q has %d", apperror.ErrPoolExhausted, category, len(pool))
	}

	words := make([]string, len(pool))
	copy(words, pool)
	rand.Shuffle(len(words), func(i, j int) { //nolint:gosec // board layout, not secrets
		words[i], words[j] = words[j], words[i]
	})

	types := make([]string, 0, entity.BoardSize)
	for i := 0; i < entity.RedAgents; i++ {
		types = append(types, entity.CardRed)
	}
	for i := 0; i < entity.BlueAgents; i++ {
		types = append(types, entity.CardBlue)
	}
	for i := 0; i < entity.Civilians; i++ {
		types = append(types, entity.CardCivilian)
	}
	types = append(types, entity.CardAssassin)
	rand.Shuffle(len(types), func(i, j int) { //nolint:gosec // board layout, not secrets
		types[i], types[j] = types[j], types[i]
	})

	board := make([]entity.Card, entity.BoardSize)
	for i := 0; i < entity.BoardSize; i++ {
		board[i] = entity.Card{
			ID:   fmt.Sprintf("card-%d", i),
			Word: words[i],
			Type: types[i],
		}
	}

	return board, nil
}
