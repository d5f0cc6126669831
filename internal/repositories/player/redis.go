package player

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rolltogether/internal/models"
)

const (
	nicknameKeyPrefix = "nickname:"

	fieldNickname  = "nickname"
	fieldUpdatedAt = "updated_at"
)

var (
	// ErrPlayerNotFound is returned when no nickname is remembered for a player
	ErrPlayerNotFound = errors.New("player not found")

	ErrPlayerIDRequired = errors.New("player ID cannot be empty")
	ErrNicknameRequired = errors.New("nickname cannot be empty")
)

// Config holds configuration for the Redis player repository
type Config struct {
	RedisClient *redis.Client

	// NicknameTTL forgets a nickname that has not been set again for this
	// long. Zero keeps nicknames forever.
	NicknameTTL time.Duration
}

// redisRepository keeps one hash per player under nickname:<playerID>
type redisRepository struct {
	client      *redis.Client
	nicknameTTL time.Duration
}

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if cfg.NicknameTTL < 0 {
		return nil, errors.New("nickname TTL cannot be negative")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client:      cfg.RedisClient,
		nicknameTTL: cfg.NicknameTTL,
	}, nil
}

// SavePlayer remembers a player's nickname, refreshing its expiry
func (r *redisRepository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	player := input.Player
	if player.ID == "" {
		return ErrPlayerIDRequired
	}

	nickname := strings.TrimSpace(player.Nickname)
	if nickname == "" {
		return ErrNicknameRequired
	}

	key := nicknameKey(player.ID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldNickname, nickname,
			fieldUpdatedAt, player.UpdatedAt.UnixMilli(),
		)
		if r.nicknameTTL > 0 {
			pipe.Expire(ctx, key, r.nicknameTTL)
		} else {
			pipe.Persist(ctx, key)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save nickname for %s: %w", player.ID, err)
	}

	return nil
}

// GetPlayer returns the remembered nickname for a player
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrPlayerIDRequired
	}

	fields, err := r.client.HGetAll(ctx, nicknameKey(input.PlayerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get nickname for %s: %w", input.PlayerID, err)
	}

	// HGETALL on a missing key is an empty map, not redis.Nil
	nickname := fields[fieldNickname]
	if nickname == "" {
		return nil, ErrPlayerNotFound
	}

	player := &models.Player{
		ID:       input.PlayerID,
		Nickname: nickname,
	}
	if ms, err := strconv.ParseInt(fields[fieldUpdatedAt], 10, 64); err == nil {
		player.UpdatedAt = time.UnixMilli(ms).UTC()
	}

	return player, nil
}

func nicknameKey(playerID string) string {
	return nicknameKeyPrefix + playerID
}
