package macro

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rolltogether/internal/services/macro Service

import "context"

// Service defines the interface for macro operations
type Service interface {
	// SaveMacro creates a macro, or replaces one when an ID is given
	SaveMacro(ctx context.Context, input *SaveMacroInput) (*SaveMacroOutput, error)

	// ListMacros returns a player's macros ordered by name
	ListMacros(ctx context.Context, input *ListMacrosInput) (*ListMacrosOutput, error)

	// DeleteMacro removes a macro
	DeleteMacro(ctx context.Context, input *DeleteMacroInput) error

	// ExecuteMacro submits a macro's roll to a room
	ExecuteMacro(ctx context.Context, input *ExecuteMacroInput) (*ExecuteMacroOutput, error)
}
