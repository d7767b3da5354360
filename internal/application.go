package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/config"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/repository"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/service"
	"github.com/rocketscienceinc/tictactoe-frames-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	statsRepo := repository.NewStatsRepository(redisStorage.Connection)
	userRepo := repository.NewUserRepository(sqliteStorage.Connection)

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // game moves, not secrets

	botService := service.NewBotService(rng, conf.Bot.MistakeRate, conf.Bot.CenterRate)
	statsService := service.NewStatsService(statsRepo)
	gamePlayService := service.NewGamePlayService(logger, botService, statsService)
	authService := service.NewAuthService(conf.JWTSecretKey)
	identityService := service.NewIdentityService(conf.Identity.BaseURL)
	userService := service.NewUserService(userRepo, identityService)

	handlers := rest.NewHandlers(logger, gamePlayService, statsService, authService, userService, conf.Frame.ImageBaseURL, conf.Frame.PostURL)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, conf.HTTPPort, handlers); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
