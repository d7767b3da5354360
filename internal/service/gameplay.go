package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/token"
)

type GamePlayService interface {
	NewGame(ctx context.Context, fid, difficulty string) (*entity.Game, string, error)
	PlayMove(ctx context.Context, fid, stateToken string, cell int) (*entity.Game, string, error)
	View(ctx context.Context, stateToken string) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	botService   BotService
	statsService StatsService
}

func NewGamePlayService(logger *slog.Logger, botService BotService, statsService StatsService) GamePlayService {
	return &gamePlayService{
		logger:       logger,
		botService:   botService,
		statsService: statsService,
	}
}

// NewGame - starts a fresh game and encodes its first token. The human
// always plays X and moves first.
func (that *gamePlayService) NewGame(_ context.Context, _ string, difficulty string) (*entity.Game, string, error) {
	switch difficulty {
	case entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard:
	default:
		difficulty = entity.DifficultyMedium
	}

	game := entity.NewGame(difficulty)

	encoded, err := token.Encode(game)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode game state: %w", err)
	}

	return game, encoded, nil
}

// PlayMove - one full interaction: decode the prior token, apply the human
// move, let the bot reply unless the game just ended, re-encode. The whole
// position lives in the token; nothing is kept on the server.
func (that *gamePlayService) PlayMove(ctx context.Context, fid, stateToken string, cell int) (*entity.Game, string, error) {
	log := that.logger.With("method", "PlayMove", "fid", fid)

	// every decode failure wraps ErrMalformedToken
	game, err := token.Decode(stateToken)
	if err != nil {
		log.Warn("unreadable state token, starting a fresh game", "error", err)
		game = entity.NewGame(entity.DifficultyMedium)
	}

	if err = tictactoe.ApplyMove(game, entity.PlayerX, cell); err != nil {
		// the position is unchanged, the caller re-prompts with the same token
		return game, stateToken, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		that.recordResult(ctx, fid, game)

		return that.encode(game)
	}

	if _, err = that.botService.MakeTurn(game, entity.PlayerO); err != nil {
		return nil, "", fmt.Errorf("bot failed to make turn: %w", err)
	}

	if game.IsFinished() {
		that.recordResult(ctx, fid, game)
	}

	return that.encode(game)
}

// View - decodes a token back into its position without touching the board,
// for frames that only page through the cell choices.
func (that *gamePlayService) View(_ context.Context, stateToken string) (*entity.Game, error) {
	game, err := token.Decode(stateToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decode state token: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) encode(game *entity.Game) (*entity.Game, string, error) {
	encoded, err := token.Encode(game)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode game state: %w", err)
	}

	return game, encoded, nil
}

// recordResult - best effort; a stats outage must not break the interaction.
func (that *gamePlayService) recordResult(ctx context.Context, fid string, game *entity.Game) {
	if fid == "" {
		return
	}

	if err := that.statsService.RecordResult(ctx, fid, game.Winner); err != nil {
		that.logger.Error("failed to record game result", "fid", fid, "error", err)
	}
}
