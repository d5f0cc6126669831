package macro

// MacroError is a custom error type for macro-related errors
type MacroError string

// Error implements the error interface
func (e MacroError) Error() string {
	return string(e)
}

// Validation errors
const (
	ErrOwnerIDRequired  MacroError = "owner ID is required"
	ErrMacroIDRequired  MacroError = "macro ID is required"
	ErrNameRequired     MacroError = "macro name is required"
	ErrNameTooLong      MacroError = "macro name is too long"
	ErrInvalidMacroType MacroError = "macro type must be skill or generic"
	ErrMacroNotFound    MacroError = "macro not found"
)

// Construction errors
const (
	ErrNilConfig        MacroError = "config cannot be nil"
	ErrNilMacroRepo     MacroError = "macro repository cannot be nil"
	ErrNilRoomService   MacroError = "room service cannot be nil"
	ErrNilClock         MacroError = "clock cannot be nil"
	ErrNilUUIDGenerator MacroError = "UUID generator cannot be nil"
)
