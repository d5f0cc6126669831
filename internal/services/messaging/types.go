package messaging

import (
	"github.com/KirkDiggler/rolltogether/internal/dice"
	"github.com/KirkDiggler/rolltogether/internal/models"
)

// Headlines shown above a roll
const (
	HeadlineBotch        = "Botch!"
	HeadlineFailure      = "Failure"
	HeadlineCritical     = "Critical!"
	HeadlineTrueCritical = "TRUE CRITICAL!"
	HeadlineNormalAction = "Normal Action"
	HeadlineCombatAction = "Combat Action"
	HeadlineGenericRoll  = "Generic Roll"
	anonymousRollerName  = "Anonymous"
	genericErrorMessage  = "Something went wrong with that roll. Give it another shot."
	syncWarningMessage   = "Your roll counts here, but other tables may not see it until the next successful save."
	unknownMacroMessage  = "That macro doesn't exist. Check the list and try again."
	serviceClosedMessage = "The dice are being put away. Try again in a moment."
)

// GetRollResultMessageInput contains the input for GetRollResultMessage
type GetRollResultMessageInput struct {
	Roll models.Roll

	// Total is the derived score shown with the roll
	Total int
}

// GetRollResultMessageOutput contains the output for GetRollResultMessage
type GetRollResultMessageOutput struct {
	// Title is the outcome headline
	Title string

	// Message is a randomly chosen flavour line
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	Err error
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Roller picks flavour lines; a time-seeded roller is used when nil
	Roller dice.Roller
}
