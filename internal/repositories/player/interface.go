package player

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/rolltogether/internal/repositories/player Repository

import (
	"context"

	"github.com/KirkDiggler/rolltogether/internal/models"
)

// Repository defines the interface for player data persistence
type Repository interface {
	// SavePlayer persists a player
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// GetPlayer retrieves a player by ID
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)
}
