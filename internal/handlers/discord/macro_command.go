package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/dice"
	"github.com/KirkDiggler/rolltogether/internal/models"
	macroService "github.com/KirkDiggler/rolltogether/internal/services/macro"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
)

// MacroCommand handles the /macro command. Macros belong to the Discord user
// and are addressed by name.
type MacroCommand struct {
	BaseCommand
	macroService macroService.Service
	rollCommand  *RollCommand
	logger       zerolog.Logger
}

// NewMacroCommand creates a new macro command handler. Executed macros are
// rendered like /roll results.
func NewMacroCommand(macroSvc macroService.Service, rollCommand *RollCommand, logger zerolog.Logger) *MacroCommand {
	nameOption := func(description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "name",
			Description: description,
			Required:    true,
			MaxLength:   macroService.MaxNameLength,
		}
	}
	minDice := float64(roomService.MinDiceCount)
	minThreshold := float64(roomService.MinCriticalThreshold)

	return &MacroCommand{
		BaseCommand: BaseCommand{
			Name:        "macro",
			Description: "Save and run roll presets",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "save-skill",
					Description: "Save a skill roll preset",
					Options: []*discordgo.ApplicationCommandOption{
						nameOption("Macro name; an existing macro with this name is replaced"),
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "dice",
							Description: "Skill rank (0-9)",
							Required:    true,
							MinValue:    &minDice,
							MaxValue:    roomService.MaxDiceCount,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "modifier",
							Description: "Added to the total",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "threshold",
							Description: "Lowest power die face that counts as a critical (default 9)",
							MinValue:    &minThreshold,
							MaxValue:    roomService.MaxCriticalThreshold,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "combat",
							Description: "Combat action",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "save-generic",
					Description: "Save a dice preset",
					Options: []*discordgo.ApplicationCommandOption{
						nameOption("Macro name; an existing macro with this name is replaced"),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "dice",
							Description: "Dice to roll, e.g. 2d6 d20",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "modifier",
							Description: "Added to the total",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List your macros",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "run",
					Description: "Roll one of your macros in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						nameOption("Macro name"),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "nickname",
							Description: "Name shown with the roll (defaults to your last one)",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete one of your macros",
					Options: []*discordgo.ApplicationCommandOption{
						nameOption("Macro name"),
					},
				},
			},
		},
		macroService: macroSvc,
		rollCommand:  rollCommand,
		logger:       logger,
	}
}

// Handle processes a Discord interaction for the macro command
func (c *MacroCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	inv := newInvocation(i)
	return s.InteractionRespond(i.Interaction, c.respond(context.Background(), inv))
}

func (c *MacroCommand) respond(ctx context.Context, inv *invocation) *discordgo.InteractionResponse {
	var handler responder
	switch inv.subcommand {
	case "save-skill":
		handler = c.handleSaveSkill
	case "save-generic":
		handler = c.handleSaveGeneric
	case "list":
		handler = c.handleList
	case "run":
		handler = c.handleRun
	case "delete":
		handler = c.handleDelete
	default:
		return errorResponse("Unknown subcommand.")
	}

	response, err := handler(ctx, inv)
	if err != nil {
		if !macroService.IsValidationError(err) && !errors.Is(err, macroService.ErrMacroNotFound) && !errors.Is(err, dice.ErrInvalidDieType) {
			c.logger.Error().Err(err).
				Str("player_id", inv.userID).
				Str("subcommand", inv.subcommand).
				Msg("macro command failed")
		}
		return errorResponse(c.rollCommand.errorText(ctx, err))
	}
	return response
}

func (c *MacroCommand) handleSaveSkill(ctx context.Context, inv *invocation) (*discordgo.InteractionResponse, error) {
	return c.save(ctx, inv, &macroService.SaveMacroInput{
		MacroType: models.MacroTypeSkill,
		Skill: &models.SkillMacro{
			DiceCount:         inv.intOption("dice", 0),
			Modifier:          inv.intOption("modifier", 0),
			CriticalThreshold: inv.intOption("threshold", roomService.DefaultCriticalThreshold),
			IsCombatRoll:      inv.boolOption("combat"),
		},
	})
}

func (c *MacroCommand) handleSaveGeneric(ctx context.Context, inv *invocation) (*discordgo.InteractionResponse, error) {
	selected, err := dice.ExpandDiceNotation(inv.stringOption("dice"))
	if err != nil {
		return nil, err
	}

	return c.save(ctx, inv, &macroService.SaveMacroInput{
		MacroType: models.MacroTypeGeneric,
		Generic: &models.GenericMacro{
			SelectedDice: selected,
			Modifier:     inv.intOption("modifier", 0),
		},
	})
}

// save creates the macro, or replaces the caller's macro with the same name
func (c *MacroCommand) save(ctx context.Context, inv *invocation, input *macroService.SaveMacroInput) (*discordgo.InteractionResponse, error) {
	input.OwnerID = inv.userID
	input.Name = inv.stringOption("name")

	existing, err := c.findByName(ctx, inv.userID, input.Name)
	switch {
	case err == nil:
		input.MacroID = existing.ID
	case !errors.Is(err, macroService.ErrMacroNotFound):
		return nil, err
	}

	output, err := c.macroService.SaveMacro(ctx, input)
	if err != nil {
		return nil, err
	}

	verb := "Saved"
	if input.MacroID != "" {
		verb = "Updated"
	}

	return ephemeralMessage(fmt.Sprintf("%s macro **%s**: %s", verb, output.Macro.Name, describeMacro(output.Macro))), nil
}

func (c *MacroCommand) handleList(ctx context.Context, inv *invocation) (*discordgo.InteractionResponse, error) {
	output, err := c.macroService.ListMacros(ctx, &macroService.ListMacrosInput{
		OwnerID: inv.userID,
	})
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{renderMacroList(output.Macros)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}, nil
}

func (c *MacroCommand) handleRun(ctx context.Context, inv *invocation) (*discordgo.InteractionResponse, error) {
	macro, err := c.findByName(ctx, inv.userID, inv.stringOption("name"))
	if err != nil {
		return nil, err
	}

	output, err := c.macroService.ExecuteMacro(ctx, &macroService.ExecuteMacroInput{
		OwnerID:  inv.userID,
		MacroID:  macro.ID,
		RoomID:   inv.roomID,
		Nickname: inv.nickname(),
	})
	if err != nil {
		return nil, err
	}

	var response *discordgo.InteractionResponse
	switch {
	case output.Skill != nil:
		roll := output.Skill.Roll
		response = c.rollCommand.rollResponse(ctx, roll, output.Skill.Total.Total, output.Skill.SyncErr, skillRollAgainID(&roomService.SubmitSkillRollInput{
			DiceCount:         roll.DiceCount,
			Modifier:          roll.Modifier,
			CriticalThreshold: roll.CriticalThreshold,
			IsCombatRoll:      roll.IsCombatRoll,
		}))
	case output.Generic != nil:
		roll := output.Generic.Roll
		response = c.rollCommand.rollResponse(ctx, roll, output.Generic.Total.Total, output.Generic.SyncErr, genericRollAgainID(roll.SelectedDice, roll.Modifier))
	default:
		return nil, errors.New("macro produced no roll")
	}

	response.Data.Content = fmt.Sprintf("Macro: **%s**", output.Macro.Name)
	return response, nil
}

func (c *MacroCommand) handleDelete(ctx context.Context, inv *invocation) (*discordgo.InteractionResponse, error) {
	macro, err := c.findByName(ctx, inv.userID, inv.stringOption("name"))
	if err != nil {
		return nil, err
	}

	err = c.macroService.DeleteMacro(ctx, &macroService.DeleteMacroInput{
		OwnerID: inv.userID,
		MacroID: macro.ID,
	})
	if err != nil {
		return nil, err
	}

	return ephemeralMessage(fmt.Sprintf("Deleted macro **%s**.", macro.Name)), nil
}

// findByName matches a caller's macro case-insensitively
func (c *MacroCommand) findByName(ctx context.Context, ownerID, name string) (*models.Macro, error) {
	output, err := c.macroService.ListMacros(ctx, &macroService.ListMacrosInput{
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	for _, macro := range output.Macros {
		if strings.EqualFold(macro.Name, name) {
			return macro, nil
		}
	}

	return nil, macroService.ErrMacroNotFound
}
