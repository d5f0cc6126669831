package room

import (
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/common/clock"
	"github.com/KirkDiggler/rolltogether/internal/common/uuid"
	"github.com/KirkDiggler/rolltogether/internal/dice"
	"github.com/KirkDiggler/rolltogether/internal/models"
	playerRepo "github.com/KirkDiggler/rolltogether/internal/repositories/player"
	"github.com/KirkDiggler/rolltogether/internal/roomsync"
	"github.com/KirkDiggler/rolltogether/internal/score"
)

const (
	// MinDiceCount is an untrained skill
	MinDiceCount = 0

	// MaxDiceCount is the highest skill rank
	MaxDiceCount = 9

	// MinCriticalThreshold and MaxCriticalThreshold bound the critical face
	MinCriticalThreshold = 1
	MaxCriticalThreshold = 10

	// DefaultCriticalThreshold is offered when a surface does not ask
	DefaultCriticalThreshold = 9

	// DefaultMaxGenericDice caps a single generic roll
	DefaultMaxGenericDice = 50

	// defaultNicknamePrefix prefixes generated nicknames
	defaultNicknamePrefix = "Player"
)

// Config holds configuration for the room service
type Config struct {
	// Channel is shared by every viewer of every room
	Channel roomsync.Channel

	// PlayerRepo remembers nicknames
	PlayerRepo playerRepo.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// MaxGenericDice caps a generic roll; zero means DefaultMaxGenericDice
	MaxGenericDice int

	// WatchStorage also follows storage changes, not only broadcasts
	WatchStorage bool

	Logger zerolog.Logger
}

// Roller identifies who is submitting a roll
type Roller struct {
	// PlayerID is the Discord user ID or client ID of the roller
	PlayerID string

	// Nickname overrides and replaces the remembered nickname when not blank
	Nickname string
}

// SubmitSkillRollInput contains parameters for a skill roll
type SubmitSkillRollInput struct {
	RoomID string
	Roller

	DiceCount         int
	Modifier          int
	CriticalThreshold int
	IsCombatRoll      bool
}

// SubmitSkillRollOutput contains the recorded skill roll
type SubmitSkillRollOutput struct {
	Roll  *models.SkillRoll
	Total score.SkillTotal

	// SyncErr is set when the roll was recorded locally but could not be
	// persisted or broadcast to other viewers
	SyncErr error
}

// SubmitGenericRollInput contains parameters for a generic roll
type SubmitGenericRollInput struct {
	RoomID string
	Roller

	SelectedDice []string
	Modifier     int
}

// SubmitGenericRollOutput contains the recorded generic roll
type SubmitGenericRollOutput struct {
	Roll  *models.GenericRoll
	Total score.GenericTotal

	// SyncErr is set when the roll was recorded locally but could not be
	// persisted or broadcast to other viewers
	SyncErr error
}

// GetRoomHistoryInput contains parameters for reading a room's history
type GetRoomHistoryInput struct {
	RoomID string
}

// GetRoomHistoryOutput contains a room's rolls, newest first
type GetRoomHistoryOutput struct {
	Rolls models.Rolls
}

// WatchRoomInput contains parameters for following a room
type WatchRoomInput struct {
	RoomID   string
	Listener roomsync.Listener
}

// WatchRoomOutput contains the current history and a way to stop watching
type WatchRoomOutput struct {
	Rolls       models.Rolls
	Unsubscribe func()
}

// ClearRoomHistoryInput contains parameters for clearing a room
type ClearRoomHistoryInput struct {
	RoomID string
}

// ClearRoomHistoryOutput reports whether the clear reached other viewers
type ClearRoomHistoryOutput struct {
	SyncErr error
}
