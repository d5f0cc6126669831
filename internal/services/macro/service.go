package macro

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/common/clock"
	"github.com/KirkDiggler/rolltogether/internal/common/uuid"
	"github.com/KirkDiggler/rolltogether/internal/dice"
	"github.com/KirkDiggler/rolltogether/internal/models"
	macroRepo "github.com/KirkDiggler/rolltogether/internal/repositories/macro"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
)

// service implements the Service interface
type service struct {
	macroRepo     macroRepo.Repository
	roomService   roomService.Service
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        zerolog.Logger
}

// New creates a new macro service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.MacroRepo == nil {
		return nil, ErrNilMacroRepo
	}

	if cfg.RoomService == nil {
		return nil, ErrNilRoomService
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		macroRepo:     cfg.MacroRepo,
		roomService:   cfg.RoomService,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger.With().Str("service", "macro").Logger(),
	}, nil
}

// SaveMacro creates a macro, or replaces one when an ID is given
func (s *service) SaveMacro(ctx context.Context, input *SaveMacroInput) (*SaveMacroOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.OwnerID == "" {
		return nil, ErrOwnerIDRequired
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}

	macro := &models.Macro{
		ID:        input.MacroID,
		OwnerID:   input.OwnerID,
		Name:      name,
		MacroType: input.MacroType,
		UpdatedAt: s.clock.Now(),
	}

	switch input.MacroType {
	case models.MacroTypeSkill:
		if input.Skill == nil {
			return nil, ErrInvalidMacroType
		}
		if err := validateSkill(input.Skill); err != nil {
			return nil, err
		}
		skill := *input.Skill
		macro.Skill = &skill
	case models.MacroTypeGeneric:
		if input.Generic == nil {
			return nil, ErrInvalidMacroType
		}
		selected, err := normalizeDice(input.Generic.SelectedDice)
		if err != nil {
			return nil, err
		}
		macro.Generic = &models.GenericMacro{
			SelectedDice: selected,
			Modifier:     input.Generic.Modifier,
		}
	default:
		return nil, ErrInvalidMacroType
	}

	if macro.ID == "" {
		macro.ID = s.uuidGenerator.NewUUID()
	}

	if err := s.macroRepo.SaveMacro(ctx, &macroRepo.SaveMacroInput{Macro: macro}); err != nil {
		return nil, fmt.Errorf("failed to save macro: %w", err)
	}

	s.logger.Info().
		Str("owner_id", macro.OwnerID).
		Str("macro_id", macro.ID).
		Str("macro_type", string(macro.MacroType)).
		Msg("macro saved")

	return &SaveMacroOutput{
		Macro: macro,
	}, nil
}

// ListMacros returns a player's macros ordered by name
func (s *service) ListMacros(ctx context.Context, input *ListMacrosInput) (*ListMacrosOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, ErrOwnerIDRequired
	}

	out, err := s.macroRepo.ListMacros(ctx, &macroRepo.ListMacrosInput{
		OwnerID: input.OwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list macros: %w", err)
	}

	return &ListMacrosOutput{
		Macros: out.Macros,
	}, nil
}

// DeleteMacro removes a macro
func (s *service) DeleteMacro(ctx context.Context, input *DeleteMacroInput) error {
	if input == nil || input.OwnerID == "" {
		return ErrOwnerIDRequired
	}

	if input.MacroID == "" {
		return ErrMacroIDRequired
	}

	err := s.macroRepo.DeleteMacro(ctx, &macroRepo.DeleteMacroInput{
		OwnerID: input.OwnerID,
		MacroID: input.MacroID,
	})
	if err != nil {
		if errors.Is(err, macroRepo.ErrMacroNotFound) {
			return ErrMacroNotFound
		}
		return fmt.Errorf("failed to delete macro: %w", err)
	}

	return nil
}

// ExecuteMacro submits a macro's roll to a room exactly like a manual roll
func (s *service) ExecuteMacro(ctx context.Context, input *ExecuteMacroInput) (*ExecuteMacroOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, ErrOwnerIDRequired
	}

	if input.MacroID == "" {
		return nil, ErrMacroIDRequired
	}

	if input.RoomID == "" {
		return nil, roomService.ErrRoomIDRequired
	}

	macro, err := s.macroRepo.GetMacro(ctx, &macroRepo.GetMacroInput{
		OwnerID: input.OwnerID,
		MacroID: input.MacroID,
	})
	if err != nil {
		if errors.Is(err, macroRepo.ErrMacroNotFound) {
			return nil, ErrMacroNotFound
		}
		return nil, fmt.Errorf("failed to get macro: %w", err)
	}

	roller := roomService.Roller{
		PlayerID: input.OwnerID,
		Nickname: input.Nickname,
	}

	switch {
	case macro.MacroType == models.MacroTypeSkill && macro.Skill != nil:
		out, err := s.roomService.SubmitSkillRoll(ctx, &roomService.SubmitSkillRollInput{
			RoomID:            input.RoomID,
			Roller:            roller,
			DiceCount:         macro.Skill.DiceCount,
			Modifier:          macro.Skill.Modifier,
			CriticalThreshold: macro.Skill.CriticalThreshold,
			IsCombatRoll:      macro.Skill.IsCombatRoll,
		})
		if err != nil {
			return nil, err
		}
		return &ExecuteMacroOutput{Macro: macro, Skill: out}, nil

	case macro.MacroType == models.MacroTypeGeneric && macro.Generic != nil:
		out, err := s.roomService.SubmitGenericRoll(ctx, &roomService.SubmitGenericRollInput{
			RoomID:       input.RoomID,
			Roller:       roller,
			SelectedDice: macro.Generic.SelectedDice,
			Modifier:     macro.Generic.Modifier,
		})
		if err != nil {
			return nil, err
		}
		return &ExecuteMacroOutput{Macro: macro, Generic: out}, nil

	default:
		return nil, ErrInvalidMacroType
	}
}

// validateSkill applies the same bounds as a manual skill roll
func validateSkill(skill *models.SkillMacro) error {
	if skill.DiceCount < roomService.MinDiceCount || skill.DiceCount > roomService.MaxDiceCount {
		return roomService.ErrInvalidDiceCount
	}

	if skill.CriticalThreshold < roomService.MinCriticalThreshold || skill.CriticalThreshold > roomService.MaxCriticalThreshold {
		return roomService.ErrInvalidCriticalThreshold
	}

	return nil
}

// normalizeDice applies the same rules as a manual generic roll
func normalizeDice(selectedDice []string) ([]string, error) {
	if len(selectedDice) == 0 {
		return nil, roomService.ErrNoDiceSelected
	}

	if len(selectedDice) > roomService.DefaultMaxGenericDice {
		return nil, roomService.ErrTooManyDice
	}

	selected := make([]string, len(selectedDice))
	for i, dieType := range selectedDice {
		normalized := strings.ToLower(strings.TrimSpace(dieType))
		if !dice.IsSupportedDieType(normalized) {
			return nil, roomService.ErrUnsupportedDieType
		}
		selected[i] = normalized
	}

	return selected, nil
}

// IsValidationError reports whether err rejects the caller's input
func IsValidationError(err error) bool {
	var macroErr MacroError
	if errors.As(err, &macroErr) {
		return macroErr != ErrMacroNotFound
	}
	return roomService.IsValidationError(err)
}
