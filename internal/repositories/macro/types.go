package macro

import "github.com/KirkDiggler/rolltogether/internal/models"

// SaveMacroInput contains parameters for saving a macro
type SaveMacroInput struct {
	Macro *models.Macro
}

// GetMacroInput contains parameters for retrieving a macro
type GetMacroInput struct {
	OwnerID string
	MacroID string
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
