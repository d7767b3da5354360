package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/tictactoe"
)

// randSource - the subset of math/rand the bot consumes. Injected so tests
// can pin every probabilistic branch.
type randSource interface {
	Float64() float64
	Intn(n int) int
}

type BotService interface {
	SelectMove(game *entity.Game, mark string) (int, error)
	MakeTurn(game *entity.Game, mark string) (int, error)
}

type botService struct {
	rng randSource

	mistakeRate float64
	centerRate  float64
}

func NewBotService(rng randSource, mistakeRate, centerRate float64) BotService {
	return &botService{
		rng:         rng,
		mistakeRate: mistakeRate,
		centerRate:  centerRate,
	}
}

// SelectMove - picks the bot's cell. The rules run in a fixed order and the
// first applicable one wins; the random branches come before the tactical
// ones on purpose, that ordering is what keeps the bot beatable.
func (that *botService) SelectMove(game *entity.Game, mark string) (int, error) {
	available := game.EmptyCells()
	if len(available) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	// deliberate mistake: skip all strategy
	if that.rng.Float64() < that.mistakeRate {
		return available[that.rng.Intn(len(available))], nil
	}

	// first reply to the opening move is random so the opening is not learnable
	if game.MarksCount() == 1 {
		return available[that.rng.Intn(len(available))], nil
	}

	if cell, ok := winningCell(game, mark); ok {
		return cell, nil
	}

	if cell, ok := winningCell(game, tictactoe.OpposingMark(mark)); ok {
		return cell, nil
	}

	if game.Board[entity.CenterCell] == entity.EmptyCell && that.rng.Float64() < that.centerRate {
		return entity.CenterCell, nil
	}

	return available[that.rng.Intn(len(available))], nil
}

// MakeTurn - selects a cell and applies it to the game.
func (that *botService) MakeTurn(game *entity.Game, mark string) (int, error) {
	cell, err := that.SelectMove(game, mark)
	if err != nil {
		return 0, fmt.Errorf("bot failed to select move: %w", err)
	}

	if err = tictactoe.ApplyMove(game, mark, cell); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

// winningCell - first empty cell, in ascending order, that completes a
// triple for the given mark.
func winningCell(game *entity.Game, mark string) (int, bool) {
	for i, cell := range game.Board {
		if cell != entity.EmptyCell {
			continue
		}

		board := game.Board
		board[i] = mark
		if tictactoe.CheckWinner(board) == mark {
			return i, true
		}
	}

	return 0, false
}
