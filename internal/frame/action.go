package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	KindMove    = "move"
	KindNewGame = "new"
	KindPickRow = "row"
	KindBoard   = "board"
)

var ErrMalformedAction = errors.New("malformed frame action")

// Action - a parsed button identifier. Move actions carry the prior state
// token and the target cell; row picks carry the token and the chosen row;
// new-game actions carry the chosen difficulty.
type Action struct {
	Kind       string
	Token      string
	Cell       int
	Row        int
	Difficulty string
}

// MoveAction - formats a move identifier. The token is base64url, so the
// colon delimiter stays unambiguous.
func MoveAction(stateToken string, cell int) string {
	return fmt.Sprintf("%s:%s:%d", KindMove, stateToken, cell)
}

func NewGameAction(difficulty string) string {
	return fmt.Sprintf("%s:%s", KindNewGame, difficulty)
}

// RowAction - formats a row-pick identifier for paging cell choices.
func RowAction(stateToken string, row int) string {
	return fmt.Sprintf("%s:%s:%d", KindPickRow, stateToken, row)
}

// BoardAction - formats the identifier that re-serves the row chooser.
func BoardAction(stateToken string) string {
	return fmt.Sprintf("%s:%s", KindBoard, stateToken)
}

// ParseAction - recovers the typed action from a button identifier.
func ParseAction(raw string) (*Action, error) {
	parts := strings.Split(raw, ":")

	switch parts[0] {
	case KindMove:
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: want 3 parts, got %d", ErrMalformedAction, len(parts))
		}

		cell, err := strconv.Atoi(parts[2])
		if err != nil || cell < 0 || cell > 8 {
			return nil, fmt.Errorf("%w: bad cell %q", ErrMalformedAction, parts[2])
		}

		return &Action{Kind: KindMove, Token: parts[1], Cell: cell}, nil
	case KindPickRow:
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: want 3 parts, got %d", ErrMalformedAction, len(parts))
		}

		row, err := strconv.Atoi(parts[2])
		if err != nil || row < 0 || row > 2 {
			return nil, fmt.Errorf("%w: bad row %q", ErrMalformedAction, parts[2])
		}

		return &Action{Kind: KindPickRow, Token: parts[1], Row: row}, nil
	case KindBoard:
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: want 2 parts, got %d", ErrMalformedAction, len(parts))
		}

		return &Action{Kind: KindBoard, Token: parts[1]}, nil
	case KindNewGame:
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: want 2 parts, got %d", ErrMalformedAction, len(parts))
		}

		return &Action{Kind: KindNewGame, Difficulty: parts[1]}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrMalformedAction, parts[0])
	}
}
