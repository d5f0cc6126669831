package macro

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rolltogether/internal/models"
)

const (
	// Key prefix for the per-player macro hash, field is the macro ID
	macrosKeyPrefix = "macros:"
)

// ErrMacroNotFound is returned when a macro is not found
var ErrMacroNotFound = errors.New("macro not found")

// Config holds configuration for the Redis macro repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed macro repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveMacro stores a macro in its owner's hash
func (r *redisRepository) SaveMacro(ctx context.Context, input *SaveMacroInput) error {
	if input == nil || input.Macro == nil {
		return errors.New("input and macro cannot be nil")
	}

	macro := input.Macro
	if macro.ID == "" {
		return errors.New("macro ID cannot be empty")
	}
	if macro.OwnerID == "" {
		return errors.New("macro owner ID cannot be empty")
	}

	macroJSON, err := json.Marshal(macro)
	if err != nil {
		return fmt.Errorf("failed to marshal macro: %w", err)
	}

	if err := r.client.HSet(ctx, macrosKey(macro.OwnerID), macro.ID, macroJSON).Err(); err != nil {
		return fmt.Errorf("failed to save macro: %w", err)
	}

	return nil
}

// GetMacro retrieves one of a player's macros
func (r *redisRepository) GetMacro(ctx context.Context, input *GetMacroInput) (*models.Macro, error) {
	if input == nil || input.OwnerID == "" || input.MacroID == "" {
		return nil, errors.New("input, owner ID and macro ID cannot be empty")
	}

	macroJSON, err := r.client.HGet(ctx, macrosKey(input.OwnerID), input.MacroID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMacroNotFound
		}
		return nil, fmt.Errorf("failed to get macro: %w", err)
	}

	var macro models.Macro
	if err := json.Unmarshal([]byte(macroJSON), &macro); err != nil {
		return nil, fmt.Errorf("failed to unmarshal macro: %w", err)
	}

	return &macro, nil
}

// ListMacros retrieves a player's macros ordered by name
func (r *redisRepository) ListMacros(ctx context.Context, input *ListMacrosInput) (*ListMacrosOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.New("input and owner ID cannot be empty")
	}

	entries, err := r.client.HGetAll(ctx, macrosKey(input.OwnerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list macros: %w", err)
	}

	macros := make([]*models.Macro, 0, len(entries))
	for macroID, macroJSON := range entries {
		var macro models.Macro
		if err := json.Unmarshal([]byte(macroJSON), &macro); err != nil {
			return nil, fmt.Errorf("failed to unmarshal macro %s: %w", macroID, err)
		}
		macros = append(macros, &macro)
	}

	slices.SortFunc(macros, func(a, b *models.Macro) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			cmp.Compare(a.ID, b.ID),
		)
	})

	return &ListMacrosOutput{
		Macros: macros,
	}, nil
}

// DeleteMacro removes one of a player's macros
func (r *redisRepository) DeleteMacro(ctx context.Context, input *DeleteMacroInput) error {
	if input == nil || input.OwnerID == "" || input.MacroID == "" {
		return errors.New("input, owner ID and macro ID cannot be empty")
	}

	removed, err := r.client.HDel(ctx, macrosKey(input.OwnerID), input.MacroID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete macro: %w", err)
	}
	if removed == 0 {
		return ErrMacroNotFound
	}

	return nil
}

func macrosKey(ownerID string) string {
	return fmt.Sprintf("%s%s", macrosKeyPrefix, ownerID)
}
