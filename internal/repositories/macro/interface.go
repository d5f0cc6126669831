package macro

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/rolltogether/internal/repositories/macro Repository

import (
	"context"

	"github.com/KirkDiggler/rolltogether/internal/models"
)

// Repository defines the interface for macro persistence
type Repository interface {
	// SaveMacro creates or replaces a macro
	SaveMacro(ctx context.Context, input *SaveMacroInput) error

	// GetMacro retrieves one of a player's macros
	GetMacro(ctx context.Context, input *GetMacroInput) (*models.Macro, error)

	// ListMacros retrieves a player's macros ordered by name
	ListMacros(ctx context.Context, input *ListMacrosInput) (*ListMacrosOutput, error)

	// DeleteMacro removes one of a player's macros
	DeleteMacro(ctx context.Context, input *DeleteMacroInput) error
}
