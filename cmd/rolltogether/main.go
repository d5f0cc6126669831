package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/common/clock"
	"github.com/KirkDiggler/rolltogether/internal/common/uuid"
	"github.com/KirkDiggler/rolltogether/internal/config"
	"github.com/KirkDiggler/rolltogether/internal/dice"
	"github.com/KirkDiggler/rolltogether/internal/handlers/discord"
	httpHandler "github.com/KirkDiggler/rolltogether/internal/handlers/http"
	"github.com/KirkDiggler/rolltogether/internal/logger"
	macroRepo "github.com/KirkDiggler/rolltogether/internal/repositories/macro"
	playerRepo "github.com/KirkDiggler/rolltogether/internal/repositories/player"
	roomRepo "github.com/KirkDiggler/rolltogether/internal/repositories/room"
	"github.com/KirkDiggler/rolltogether/internal/roomsync"
	macroService "github.com/KirkDiggler/rolltogether/internal/services/macro"
	"github.com/KirkDiggler/rolltogether/internal/services/messaging"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No level yet, so use the default logger
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("shut down")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	redisClient, channel, cleanup, err := connectStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// Initialize repositories
	players, err := playerRepo.NewRedis(&playerRepo.Config{
		RedisClient: redisClient,
		NicknameTTL: cfg.NicknameTTL,
	})
	if err != nil {
		return err
	}

	macros, err := macroRepo.NewRedis(&macroRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return err
	}

	// Initialize services
	diceRoller := dice.New(&dice.Config{Seed: cfg.DiceSeed})
	clk := clock.New()
	uuidGenerator := uuid.New()

	rooms, err := roomService.New(&roomService.Config{
		Channel:       channel,
		PlayerRepo:    players,
		DiceRoller:    diceRoller,
		Clock:         clk,
		UUIDGenerator: uuidGenerator,
		WatchStorage:  cfg.UseRedis() && cfg.StoragePollInterval > 0,
		Logger:        log,
	})
	if err != nil {
		return err
	}
	defer rooms.Close()

	macroSvc, err := macroService.New(&macroService.Config{
		MacroRepo:     macros,
		RoomService:   rooms,
		Clock:         clk,
		UUIDGenerator: uuidGenerator,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Roller: diceRoller,
	})
	if err != nil {
		return err
	}

	// Start the Discord bot when a token is configured
	if cfg.DiscordEnabled() {
		bot, err := discord.New(&discord.Config{
			Token:            cfg.DiscordToken,
			ApplicationID:    cfg.ApplicationID,
			GuildID:          cfg.GuildID,
			RoomService:      rooms,
			MacroService:     macroSvc,
			MessagingService: messagingSvc,
			Logger:           log,
		})
		if err != nil {
			return err
		}

		if err := bot.Start(); err != nil {
			return err
		}
		defer func() {
			if err := bot.Stop(); err != nil {
				log.Warn().Err(err).Msg("error stopping bot")
			}
		}()
	}

	api, err := httpHandler.New(&httpHandler.Config{
		RoomService:      rooms,
		MacroService:     macroSvc,
		MessagingService: messagingSvc,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		Logger:           log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Bool("redis", cfg.UseRedis()).Bool("discord", cfg.DiscordEnabled()).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		return err
	}

	return nil
}

// connectStorage returns the Redis client for repositories and the room
// channel. Without REDIS_ADDR, repositories use an embedded Redis and rooms
// sync through an in-memory channel.
func connectStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, roomsync.Channel, func(), error) {
	if !cfg.UseRedis() {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, nil, err
		}
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		log.Info().Msg("REDIS_ADDR not set, running single-process with in-memory storage")

		return client, roomsync.NewMemoryChannel(), func() {
			client.Close()
			mr.Close()
		}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, nil, err
	}

	channel, err := roomRepo.NewRedis(&roomRepo.Config{
		RedisClient:  client,
		PollInterval: cfg.StoragePollInterval,
		Logger:       log,
	})
	if err != nil {
		client.Close()
		return nil, nil, nil, err
	}

	return client, channel, func() { client.Close() }, nil
}
