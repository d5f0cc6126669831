package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/rolltogether/internal/dice"
	"github.com/KirkDiggler/rolltogether/internal/models"
	"github.com/KirkDiggler/rolltogether/internal/roomsync"
	macroService "github.com/KirkDiggler/rolltogether/internal/services/macro"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
)

// service implements the Service interface
type service struct {
	// Roller selects random messages
	roller dice.Roller
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var roller dice.Roller
	if config != nil {
		roller = config.Roller
	}
	if roller == nil {
		roller = dice.New(&dice.Config{})
	}

	return &service{
		roller: roller,
	}, nil
}

// GetRollResultMessage returns a headline and flavour line for a roll
func (s *service) GetRollResultMessage(ctx context.Context, input *GetRollResultMessageInput) (*GetRollResultMessageOutput, error) {
	if input == nil || input.Roll == nil {
		return nil, errors.New("input and roll cannot be nil")
	}

	name := input.Roll.Base().RollerNickname
	if name == "" {
		name = anonymousRollerName
	}

	var title string
	var messages []string

	switch roll := input.Roll.(type) {
	case *models.SkillRoll:
		title = Headline(roll)
		messages = skillMessages(roll, name, input.Total)
	case *models.GenericRoll:
		title = HeadlineGenericRoll
		messages = []string{
			fmt.Sprintf("%s tosses a handful of dice for %d.", name, input.Total),
			fmt.Sprintf("The dice settle. %s gets %d.", name, input.Total),
			fmt.Sprintf("%d for %s. Make of it what you will.", input.Total, name),
			fmt.Sprintf("%s rolls and the table counts %d.", name, input.Total),
		}
	default:
		return nil, fmt.Errorf("unsupported roll type %q", input.Roll.Type())
	}

	return &GetRollResultMessageOutput{
		Title:   title,
		Message: s.pick(messages),
	}, nil
}

// Headline is the outcome text shown above a skill roll
func Headline(roll *models.SkillRoll) string {
	switch roll.RollOutcomeState {
	case models.RollOutcomeBotch:
		return HeadlineBotch
	case models.RollOutcomeFailure:
		return HeadlineFailure
	case models.RollOutcomeCritical:
		return HeadlineCritical
	case models.RollOutcomeTrueCritical:
		return HeadlineTrueCritical
	}
	if roll.IsCombatRoll {
		return HeadlineCombatAction
	}
	return HeadlineNormalAction
}

func skillMessages(roll *models.SkillRoll, name string, total int) []string {
	switch roll.RollOutcomeState {
	case models.RollOutcomeBotch:
		return []string{
			fmt.Sprintf("%s botches it. The dice are not your friends today.", name),
			fmt.Sprintf("Ones everywhere. %s will be hearing about this one.", name),
			fmt.Sprintf("%s rolls a botch. Somebody write that down.", name),
			fmt.Sprintf("A spectacular botch from %s. At least it was memorable.", name),
		}
	case models.RollOutcomeFailure:
		return []string{
			fmt.Sprintf("%s's power die comes up a 1. Not a botch, but not great.", name),
			fmt.Sprintf("%s stumbles, %d and a bad feeling.", name, total),
			fmt.Sprintf("Close to disaster for %s. It's a failure, but a survivable one.", name),
		}
	case models.RollOutcomeCritical:
		return []string{
			fmt.Sprintf("%s lands a critical for %d!", name, total),
			fmt.Sprintf("Critical! %s makes it look easy with %d.", name, total),
			fmt.Sprintf("The power die shines for %s. %d and a crit.", name, total),
		}
	case models.RollOutcomeTrueCritical:
		return []string{
			fmt.Sprintf("A natural 10 on the power die! %s hits %d!", name, total),
			fmt.Sprintf("TRUE CRITICAL! The whole table stands up for %s's %d.", name, total),
			fmt.Sprintf("%s rolls the perfect power die. %d, and legends begin here.", name, total),
		}
	}
	if roll.IsCombatRoll {
		return []string{
			fmt.Sprintf("%s swings for %d.", name, total),
			fmt.Sprintf("Steel meets steel. %s rolls %d.", name, total),
			fmt.Sprintf("%s presses the attack with %d.", name, total),
		}
	}
	return []string{
		fmt.Sprintf("%s rolls %d.", name, total),
		fmt.Sprintf("A steady %d from %s.", total, name),
		fmt.Sprintf("%s gets %d. Solid work.", name, total),
		fmt.Sprintf("Nothing fancy, %s rolls %d.", name, total),
	}
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	return &GetErrorMessageOutput{
		Message: errorMessage(input.Err),
	}, nil
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, roomService.ErrRoomIDRequired):
		return "Pick a room before rolling."
	case errors.Is(err, roomService.ErrInvalidDiceCount):
		return fmt.Sprintf("Skill dice must be between %d and %d.", roomService.MinDiceCount, roomService.MaxDiceCount)
	case errors.Is(err, roomService.ErrInvalidCriticalThreshold):
		return fmt.Sprintf("The critical threshold must be between %d and %d.", roomService.MinCriticalThreshold, roomService.MaxCriticalThreshold)
	case errors.Is(err, roomService.ErrNoDiceSelected):
		return "Select at least one die to roll."
	case errors.Is(err, roomService.ErrTooManyDice):
		return fmt.Sprintf("That's a lot of dice. Keep it to %d or fewer.", roomService.DefaultMaxGenericDice)
	case errors.Is(err, roomService.ErrUnsupportedDieType):
		return "Only d4, d6, d8, d10, d12, d20 and d100 can be rolled."
	case errors.Is(err, roomService.ErrServiceClosed):
		return serviceClosedMessage
	case errors.Is(err, macroService.ErrMacroNotFound):
		return unknownMacroMessage
	case errors.Is(err, macroService.ErrNameRequired):
		return "Give the macro a name."
	case errors.Is(err, macroService.ErrNameTooLong):
		return fmt.Sprintf("Macro names can be at most %d characters.", macroService.MaxNameLength)
	case errors.Is(err, macroService.ErrInvalidMacroType):
		return "A macro must be a skill roll or a generic roll."
	case errors.Is(err, roomsync.ErrPersistFailed), errors.Is(err, roomsync.ErrBroadcastFailed):
		return syncWarningMessage
	default:
		return genericErrorMessage
	}
}

// pick selects a random message
func (s *service) pick(messages []string) string {
	return messages[s.roller.Roll(len(messages))-1]
}
