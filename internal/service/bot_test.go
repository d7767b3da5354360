package service

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMistakeRate = 0.2
	testCenterRate  = 0.7
)

// stubRand - feeds scripted values to the bot. An exhausted script returns
// values that never trigger a probabilistic branch.
type stubRand struct {
	floats []float64
	ints   []int
}

func (that *stubRand) Float64() float64 {
	if len(that.floats) == 0 {
		return 1
	}

	value := that.floats[0]
	that.floats = that.floats[1:]

	return value
}

func (that *stubRand) Intn(n int) int {
	if len(that.ints) == 0 {
		return 0
	}

	value := that.ints[0]
	that.ints = that.ints[1:]

	return value % n
}

func newTestBot(rng *stubRand) BotService {
	return NewBotService(rng, testMistakeRate, testCenterRate)
}

func TestBotService_SelectMove(t *testing.T) {
	t.Run("Takes the winning cell when one exists", func(t *testing.T) {
		// Given: O holds 0 and 1 with cell 2 free, randomness never triggers
		game := &entity.Game{
			Board:  [9]string{entity.PlayerO, entity.PlayerO, "", entity.PlayerX, "", entity.PlayerX, "", "", ""},
			Status: entity.StatusOngoing,
		}
		bot := newTestBot(&stubRand{})

		// When: the bot picks a cell for O
		cell, err := bot.SelectMove(game, entity.PlayerO)
		require.NoError(t, err)

		// Then: it completes the top row
		assert.Equal(t, 2, cell)
	})

	t.Run("Blocks the opponent's winning cell when it cannot win itself", func(t *testing.T) {
		// Given: X threatens the top row, O has no immediate win
		game := &entity.Game{
			Board:  [9]string{entity.PlayerX, entity.PlayerX, "", "", entity.PlayerO, "", "", "", ""},
			Status: entity.StatusOngoing,
		}
		bot := newTestBot(&stubRand{})

		// When: the bot picks a cell for O
		cell, err := bot.SelectMove(game, entity.PlayerO)
		require.NoError(t, err)

		// Then: it blocks at cell 2
		assert.Equal(t, 2, cell)
	})

	t.Run("Prefers its own win over a block", func(t *testing.T) {
		// Given: both sides have two in a line
		game := &entity.Game{
			Board:  [9]string{entity.PlayerX, entity.PlayerX, "", entity.PlayerO, entity.PlayerO, "", "", "", ""},
			Status: entity.StatusOngoing,
		}
		bot := newTestBot(&stubRand{})

		// When: the bot picks a cell for O
		cell, err := bot.SelectMove(game, entity.PlayerO)
		require.NoError(t, err)

		// Then: it wins at 5 instead of blocking at 2
		assert.Equal(t, 5, cell)
	})

	t.Run("Mistake draw overrides a winning move", func(t *testing.T) {
		// Given: O could win at 2, but the mistake branch triggers
		game := &entity.Game{
			Board:  [9]string{entity.PlayerO, entity.PlayerO, "", entity.PlayerX, "", entity.PlayerX, "", "", ""},
			Status: entity.StatusOngoing,
		}
		// empty cells are [2 4 6 7 8]; pick index 1 of them
		bot := newTestBot(&stubRand{floats: []float64{0.1}, ints: []int{1}})

		// When: the bot picks a cell for O
		cell, err := bot.SelectMove(game, entity.PlayerO)
		require.NoError(t, err)

		// Then: it plays the random cell, not the winning one
		assert.Equal(t, 4, cell)
	})

	t.Run("Opening reply is random when exactly one mark is on the board", func(t *testing.T) {
		// Given: the human just opened at the center
		game := &entity.Game{
			Board:  [9]string{"", "", "", "", entity.PlayerX, "", "", "", ""},
			Status: entity.StatusOngoing,
		}
		// empty cells are [0 1 2 3 5 6 7 8]; pick index 3 of them
		bot := newTestBot(&stubRand{floats: []float64{1}, ints: []int{3}})

		// When: the bot picks a cell for O
		cell, err := bot.SelectMove(game, entity.PlayerO)
		require.NoError(t, err)

		// Then: it plays the scripted random cell
		assert.Equal(t, 3, cell)
	})

	t.Run("Opening rule does not fire once two or more marks are present", func(t *testing.T) {
		// Given: three marks on the board and X threatening the top row
		game := &entity.Game{
			Board:  [9]string{entity.PlayerX, entity.PlayerX, "", "", entity.PlayerO, "", "", "", ""},
			Status: entity.StatusOngoing,
		}
		// scripted random values that would pick a losing cell if consulted
		bot := newTestBot(&stubRand{floats: []float64{1}, ints: []int{5}})

		// When: the bot picks a cell for O
		cell, err := bot.SelectMove(game, entity.PlayerO)
		require.NoError(t, err)

		// Then: tactical play wins out and it blocks
		assert.Equal(t, 2, cell)
	})

	t.Run("Takes the center when the center draw triggers", func(t *testing.T) {
		// Given: no wins or blocks anywhere and a free center
		game := &entity.Game{
			Board:  [9]string{entity.PlayerX, "", "", "", "", "", "", "", entity.PlayerO},
			Status: entity.StatusOngoing,
		}
		bot := newTestBot(&stubRand{floats: []float64{1, 0.5}})

		// When: the bot picks a cell for O
		cell, err := bot.SelectMove(game, entity.PlayerO)
		require.NoError(t, err)

		// Then: it takes the center
		assert.Equal(t, entity.CenterCell, cell)
	})

	t.Run("Falls back to a random cell when the center draw does not trigger", func(t *testing.T) {
		// Given: no wins or blocks anywhere and a free center
		game := &entity.Game{
			Board:  [9]string{entity.PlayerX, "", "", "", "", "", "", "", entity.PlayerO},
			Status: entity.StatusOngoing,
		}
		// empty cells are [1 2 3 4 5 6 7]; pick index 0 of them
		bot := newTestBot(&stubRand{floats: []float64{1, 0.9}, ints: []int{0}})

		// When: the bot picks a cell for O
		cell, err := bot.SelectMove(game, entity.PlayerO)
		require.NoError(t, err)

		// Then: it plays the first empty cell the fallback chose
		assert.Equal(t, 1, cell)
	})

	t.Run("Error when no moves are available", func(t *testing.T) {
		// Given: a full board
		game := &entity.Game{
			Board:  [9]string{entity.PlayerO, entity.PlayerX, entity.PlayerO, entity.PlayerO, entity.PlayerX, entity.PlayerX, entity.PlayerX, entity.PlayerO, entity.PlayerO},
			Status: entity.StatusFinished,
		}
		bot := newTestBot(&stubRand{})

		// When: the bot is asked for a move anyway
		_, err := bot.SelectMove(game, entity.PlayerO)

		// Then: an ErrNoAvailableMoves error is returned
		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Applies the selected move to the game", func(t *testing.T) {
		// Given: O can win at 2
		game := &entity.Game{
			Board:  [9]string{entity.PlayerO, entity.PlayerO, "", entity.PlayerX, "", entity.PlayerX, "", "", ""},
			Turn:   entity.PlayerO,
			Status: entity.StatusOngoing,
		}
		bot := newTestBot(&stubRand{})

		// When: the bot makes its turn
		cell, err := bot.MakeTurn(game, entity.PlayerO)
		require.NoError(t, err)

		// Then: the winning cell is on the board and the game is finished
		assert.Equal(t, 2, cell)
		assert.Equal(t, entity.PlayerO, game.Board[2])
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerO, game.Winner)
	})

	t.Run("Error on a full board propagates", func(t *testing.T) {
		// Given: a full board
		game := &entity.Game{
			Board:  [9]string{entity.PlayerO, entity.PlayerX, entity.PlayerO, entity.PlayerO, entity.PlayerX, entity.PlayerX, entity.PlayerX, entity.PlayerO, entity.PlayerO},
			Status: entity.StatusFinished,
		}
		bot := newTestBot(&stubRand{})

		// When: the bot is asked to move anyway
		_, err := bot.MakeTurn(game, entity.PlayerO)

		// Then: an ErrNoAvailableMoves error is returned
		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}
