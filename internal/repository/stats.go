package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
)

const (
	statsKeyPrefix = "stats:"

	fieldCurrentStreak = "current_streak"
	fieldBestStreak    = "best_streak"

	maxStreakRetries = 5
)

var ErrStreakConflict = errors.New("streak update conflicted too many times")

type StatsRepository interface {
	IncrementField(ctx context.Context, fid, field string) error
	UpdateStreak(ctx context.Context, fid string, won bool) error
	GetByFID(ctx context.Context, fid string) (*entity.Stats, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

// IncrementField - a single atomic increment; concurrent games by the same
// user never lose updates.
func (that *dbStats) IncrementField(ctx context.Context, fid, field string) error {
	statsKey := statsKeyPrefix + fid

	if err := that.client.HIncrBy(ctx, statsKey, field, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment %s: %w", field, err)
	}

	return nil
}

// UpdateStreak - transactional read-modify-write on the streak counters.
// WATCH aborts the transaction when another interaction touched the key,
// in which case we retry from the fresh values.
func (that *dbStats) UpdateStreak(ctx context.Context, fid string, won bool) error {
	statsKey := statsKeyPrefix + fid

	update := func(tx *redis.Tx) error {
		current, err := hGetInt(ctx, tx, statsKey, fieldCurrentStreak)
		if err != nil {
			return err
		}

		best, err := hGetInt(ctx, tx, statsKey, fieldBestStreak)
		if err != nil {
			return err
		}

		if won {
			current++
		} else {
			current = 0
		}
		if current > best {
			best = current
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, statsKey, fieldCurrentStreak, current, fieldBestStreak, best)
			return nil
		})

		return err
	}

	for attempt := 0; attempt < maxStreakRetries; attempt++ {
		err := that.client.Watch(ctx, update, statsKey)
		if err == nil {
			return nil
		}

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		return fmt.Errorf("failed to update streak: %w", err)
	}

	return ErrStreakConflict
}

// GetByFID - a user with no recorded games reads as all-zero stats.
func (that *dbStats) GetByFID(ctx context.Context, fid string) (*entity.Stats, error) {
	statsKey := statsKeyPrefix + fid

	fields, err := that.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats by fid: %w", err)
	}

	stats := &entity.Stats{FID: fid}
	stats.Wins = atoiField(fields, "wins")
	stats.Losses = atoiField(fields, "losses")
	stats.Ties = atoiField(fields, "ties")
	stats.CurrentStreak = atoiField(fields, fieldCurrentStreak)
	stats.BestStreak = atoiField(fields, fieldBestStreak)

	return stats, nil
}

func hGetInt(ctx context.Context, tx *redis.Tx, key, field string) (int, error) {
	value, err := tx.HGet(ctx, key, field).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", field, err)
	}

	return value, nil
}

func atoiField(fields map[string]string, name string) int {
	value, err := strconv.Atoi(fields[name])
	if err != nil {
		return 0
	}

	return value
}
