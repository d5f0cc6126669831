package models

import (
	"time"
)

// Player is someone rolling in one or more rooms
type Player struct {
	// ID is the Discord user ID or client ID of the player
	ID string `json:"id"`

	// Nickname is the name shown next to the player's rolls
	Nickname string `json:"nickname"`

	// UpdatedAt is when the nickname was last changed
	UpdatedAt time.Time `json:"updatedAt"`
}
