package macro

import (
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/common/clock"
	"github.com/KirkDiggler/rolltogether/internal/common/uuid"
	"github.com/KirkDiggler/rolltogether/internal/models"
	macroRepo "github.com/KirkDiggler/rolltogether/internal/repositories/macro"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
)

// MaxNameLength caps a macro name
const MaxNameLength = 64

// Config holds configuration for the macro service
type Config struct {
	// Repository dependencies
	MacroRepo macroRepo.Repository

	// RoomService runs executed macros
	RoomService roomService.Service

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	Logger zerolog.Logger
}

// SaveMacroInput contains parameters for saving a macro
type SaveMacroInput struct {
	OwnerID string

	// MacroID replaces an existing macro when set
	MacroID string

	Name      string
	MacroType models.MacroType
	Skill     *models.SkillMacro
	Generic   *models.GenericMacro
}

// SaveMacroOutput contains the saved macro
type SaveMacroOutput struct {
	Macro *models.Macro
}

// ListMacrosInput contains parameters for listing a player's macros
type ListMacrosInput struct {
	OwnerID string
}

// ListMacrosOutput contains a player's macros ordered by name
type ListMacrosOutput struct {
	Macros []*models.Macro
}

// DeleteMacroInput contains parameters for deleting a macro
type DeleteMacroInput struct {
	OwnerID string
	MacroID string
}

// ExecuteMacroInput contains parameters for running a macro in a room
type ExecuteMacroInput struct {
	OwnerID  string
	MacroID  string
	RoomID   string
	Nickname string
}

// ExecuteMacroOutput contains the roll the macro produced; exactly one of
// Skill or Generic is set
type ExecuteMacroOutput struct {
	Macro   *models.Macro
	Skill   *roomService.SubmitSkillRollOutput
	Generic *roomService.SubmitGenericRollOutput
}
