package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
)

var ErrInvalidCell = errors.New("invalid cell index")

// ApplyMove - validates and applies a move for the given mark. It is the
// only place that writes into the board. A finished game never accepts
// another move, and an occupied cell is never overwritten.
func ApplyMove(game *entity.Game, mark string, cell int) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(game.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if game.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	game.Board[cell] = mark
	updateGameStatus(game, mark)

	return nil
}

// IsOccupied - reports whether the cell already holds a mark.
// The index must be in [0,9); callers validate it beforehand.
func IsOccupied(game *entity.Game, cell int) bool {
	return game.Board[cell] != entity.EmptyCell
}

// CheckWinner - scans the 8 winning triples and returns the winning mark,
// PlayerTie on a full board without a triple, or an empty string while the
// game continues. Every winner check in the codebase goes through here.
func CheckWinner(board [9]string) string {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return ""
		}
	}

	return entity.PlayerTie
}

func IsBoardFull(game *entity.Game) bool {
	for _, cell := range game.Board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}

func IsDraw(game *entity.Game) bool {
	return CheckWinner(game.Board) == entity.PlayerTie
}

// OpposingMark - the other player's mark.
func OpposingMark(currentMark string) string {
	if currentMark == entity.PlayerX {
		return entity.PlayerO
	}
	return entity.PlayerX
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game, mark string) {
	switch winner := CheckWinner(game.Board); winner {
	case entity.PlayerX, entity.PlayerO:
		game.Winner = winner
		game.Status = entity.StatusFinished
		game.Turn = ""
	case entity.PlayerTie:
		game.Winner = entity.PlayerTie
		game.Status = entity.StatusFinished
		game.Turn = ""
	default:
		game.Turn = OpposingMark(mark)
	}
}
