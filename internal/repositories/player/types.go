package player

import "github.com/KirkDiggler/rolltogether/internal/models"

// SavePlayerInput contains parameters for saving a player
type SavePlayerInput struct {
	Player *models.Player
}

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	PlayerID string
}
