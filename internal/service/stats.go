package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
)

const (
	fieldWins   = "wins"
	fieldLosses = "losses"
	fieldTies   = "ties"
)

type StatsService interface {
	RecordResult(ctx context.Context, fid, winner string) error
	GetStats(ctx context.Context, fid string) (*entity.Stats, error)
}

type statsRepo interface {
	IncrementField(ctx context.Context, fid, field string) error
	UpdateStreak(ctx context.Context, fid string, won bool) error
	GetByFID(ctx context.Context, fid string) (*entity.Stats, error)
}

type statsService struct {
	statsRepo statsRepo
}

func NewStatsService(statsRepo statsRepo) StatsService {
	return &statsService{
		statsRepo: statsRepo,
	}
}

// RecordResult - maps a finished game's winner mark to the user's counters.
// The human always plays X, so X means a win and O a loss.
func (that *statsService) RecordResult(ctx context.Context, fid, winner string) error {
	var field string
	switch winner {
	case entity.PlayerX:
		field = fieldWins
	case entity.PlayerO:
		field = fieldLosses
	case entity.PlayerTie:
		field = fieldTies
	default:
		return fmt.Errorf("unknown game result %q", winner)
	}

	if err := that.statsRepo.IncrementField(ctx, fid, field); err != nil {
		return fmt.Errorf("failed to increment %s: %w", field, err)
	}

	if err := that.statsRepo.UpdateStreak(ctx, fid, winner == entity.PlayerX); err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}

	return nil
}

func (that *statsService) GetStats(ctx context.Context, fid string) (*entity.Stats, error) {
	stats, err := that.statsRepo.GetByFID(ctx, fid)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}
