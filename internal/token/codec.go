package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
)

// ErrMalformedToken - the token is not one of ours. Callers recover by
// starting a fresh game, never by failing the interaction.
var ErrMalformedToken = errors.New("malformed state token")

// Encode - serializes a game position into an opaque transport-safe token.
// The token is the only durable representation of a game; the client echoes
// it back with the next move.
func Encode(game *entity.Game) (string, error) {
	raw, err := json.Marshal(game)
	if err != nil {
		return "", fmt.Errorf("could not marshal game state: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode - reverses Encode. Tokens from older protocol revisions may lack
// the difficulty field; those decode with the default difficulty instead
// of failing.
func Decode(encoded string) (*entity.Game, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: bad encoding", ErrMalformedToken)
	}

	var game entity.Game
	if err = json.Unmarshal(raw, &game); err != nil {
		return nil, fmt.Errorf("%w: bad payload", ErrMalformedToken)
	}

	if err = validate(&game); err != nil {
		return nil, err
	}

	if game.Difficulty == "" {
		game.Difficulty = entity.DifficultyMedium
	}

	return &game, nil
}

func validate(game *entity.Game) error {
	switch game.Status {
	case entity.StatusOngoing, entity.StatusFinished:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrMalformedToken, game.Status)
	}

	for i, cell := range game.Board {
		switch cell {
		case entity.EmptyCell, entity.PlayerX, entity.PlayerO:
		default:
			return fmt.Errorf("%w: unknown mark in cell %d", ErrMalformedToken, i)
		}
	}

	return nil
}
