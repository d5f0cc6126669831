package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/dice"
	"github.com/KirkDiggler/rolltogether/internal/models"
	"github.com/KirkDiggler/rolltogether/internal/services/messaging"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
)

// ButtonRollAgain prefixes the custom ID of the repeat button under a roll.
// The rest of the ID carries the request, e.g. "roll_again|skill|3|2|9|0".
const ButtonRollAgain = "roll_again"

const customIDSeparator = "|"

var errBadCustomID = errors.New("malformed button")

// RollCommand handles the /roll command
type RollCommand struct {
	BaseCommand
	roomService      roomService.Service
	messagingService messaging.Service
	logger           zerolog.Logger
}

// NewRollCommand creates a new roll command handler
func NewRollCommand(roomSvc roomService.Service, messagingSvc messaging.Service, logger zerolog.Logger) *RollCommand {
	minDice := float64(roomService.MinDiceCount)
	minThreshold := float64(roomService.MinCriticalThreshold)

	nicknameOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "nickname",
		Description: "Name shown with the roll (defaults to your last one)",
	}

	return &RollCommand{
		BaseCommand: BaseCommand{
			Name:        "roll",
			Description: "Roll dice for everyone in this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "skill",
					Description: "Roll a skill pool",
					Options: []*discordgo.ApplicationCommandOption{
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
						nicknameOption,
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "generic",
					Description: "Roll any mix of dice",
					Options: []*discordgo.ApplicationCommandOption{
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
						nicknameOption,
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show the newest rolls in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "count",
							Description: "How many rolls to show (default 10)",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Clear this channel's roll history",
				},
			},
		},
		roomService:      roomSvc,
		messagingService: messagingSvc,
		logger:           logger,
	}
}

// Handle processes a Discord interaction for the roll command
func (c *RollCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	inv := newInvocation(i)
	response := c.respond(context.Background(), inv)
	return s.InteractionRespond(i.Interaction, response)
}

// HandleRollAgain repeats the request carried by a roll's button
func (c *RollCommand) HandleRollAgain(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	inv := newInvocation(i)

	request, err := parseRollAgainID(i.MessageComponentData().CustomID)
	if err != nil {
		return s.InteractionRespond(i.Interaction, errorResponse("That button no longer works. Use `/roll` instead."))
	}

	inv.subcommand = request.subcommand
	inv.options = request.options

	return s.InteractionRespond(i.Interaction, c.respond(context.Background(), inv))
}

func (c *RollCommand) respond(ctx context.Context, inv *invocation) *discordgo.InteractionResponse {
	var handler responder
	switch inv.subcommand {
	case "skill":
		handler = c.handleSkill
	case "generic":
		handler = c.handleGeneric
	case "history":
		handler = c.handleHistory
	case "clear":
		handler = c.handleClear
	default:
		return errorResponse("Unknown subcommand.")
	}

	response, err := handler(ctx, inv)
	if err != nil {
		return c.errorResponse(ctx, inv, err)
	}
	return response
}

func (c *RollCommand) handleSkill(ctx context.Context, inv *invocation) (*discordgo.InteractionResponse, error) {
	input := &roomService.SubmitSkillRollInput{
		RoomID: inv.roomID,
		Roller: roomService.Roller{
			PlayerID: inv.userID,
			Nickname: inv.nickname(),
		},
		DiceCount:         inv.intOption("dice", 0),
		Modifier:          inv.intOption("modifier", 0),
		CriticalThreshold: inv.intOption("threshold", roomService.DefaultCriticalThreshold),
		IsCombatRoll:      inv.boolOption("combat"),
	}

	output, err := c.roomService.SubmitSkillRoll(ctx, input)
	if err != nil {
		return nil, err
	}

	return c.rollResponse(ctx, output.Roll, output.Total.Total, output.SyncErr, skillRollAgainID(input)), nil
}

func (c *RollCommand) handleGeneric(ctx context.Context, inv *invocation) (*discordgo.InteractionResponse, error) {
	selected, err := dice.ExpandDiceNotation(inv.stringOption("dice"))
	if err != nil {
		return nil, err
	}

	input := &roomService.SubmitGenericRollInput{
		RoomID: inv.roomID,
		Roller: roomService.Roller{
			PlayerID: inv.userID,
			Nickname: inv.nickname(),
		},
		SelectedDice: selected,
		Modifier:     inv.intOption("modifier", 0),
	}

	output, err := c.roomService.SubmitGenericRoll(ctx, input)
	if err != nil {
		return nil, err
	}

	return c.rollResponse(ctx, output.Roll, output.Total.Total, output.SyncErr, genericRollAgainID(output.Roll.SelectedDice, input.Modifier)), nil
}

func (c *RollCommand) handleHistory(ctx context.Context, inv *invocation) (*discordgo.InteractionResponse, error) {
	output, err := c.roomService.GetRoomHistory(ctx, &roomService.GetRoomHistoryInput{
		RoomID: inv.roomID,
	})
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{renderHistoryEmbed(output.Rolls, inv.intOption("count", 10))},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}, nil
}

func (c *RollCommand) handleClear(ctx context.Context, inv *invocation) (*discordgo.InteractionResponse, error) {
	output, err := c.roomService.ClearRoomHistory(ctx, &roomService.ClearRoomHistoryInput{
		RoomID: inv.roomID,
	})
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("%s cleared the roll history.", inv.displayName)
	if output.SyncErr != nil {
		content += " " + c.errorText(ctx, output.SyncErr)
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	}, nil
}

// rollResponse posts the roll to the channel with a repeat button
func (c *RollCommand) rollResponse(ctx context.Context, roll models.Roll, total int, syncErr error, rollAgainID string) *discordgo.InteractionResponse {
	title, message := messaging.HeadlineGenericRoll, ""
	if skill, ok := roll.(*models.SkillRoll); ok {
		title = messaging.Headline(skill)
	}

	output, err := c.messagingService.GetRollResultMessage(ctx, &messaging.GetRollResultMessageInput{
		Roll:  roll,
		Total: total,
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to build roll message")
	} else {
		title, message = output.Title, output.Message
	}

	var syncWarning string
	if syncErr != nil {
		syncWarning = c.errorText(ctx, syncErr)
	}

	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{renderRollEmbed(roll, title, message, syncWarning)},
	}

	if len(rollAgainID) <= 100 {
		data.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Roll Again",
						Style:    discordgo.PrimaryButton,
						CustomID: rollAgainID,
						Emoji: &discordgo.ComponentEmoji{
							Name: "🎲",
						},
					},
				},
			},
		}
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

func (c *RollCommand) errorResponse(ctx context.Context, inv *invocation, err error) *discordgo.InteractionResponse {
	if !roomService.IsValidationError(err) && !errors.Is(err, dice.ErrInvalidDieType) {
		c.logger.Error().Err(err).
			Str("room_id", inv.roomID).
			Str("subcommand", inv.subcommand).
			Msg("roll command failed")
	}
	return errorResponse(c.errorText(ctx, err))
}

func (c *RollCommand) errorText(ctx context.Context, err error) string {
	if errors.Is(err, dice.ErrInvalidDieType) {
		return "Use dice like `2d6 d20`. Supported: " + strings.Join(dice.SupportedDieTypes, ", ") + "."
	}

	output, msgErr := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		return "Something went wrong."
	}
	return output.Message
}

func skillRollAgainID(input *roomService.SubmitSkillRollInput) string {
	combat := "0"
	if input.IsCombatRoll {
		combat = "1"
	}
	return strings.Join([]string{
		ButtonRollAgain,
		"skill",
		strconv.Itoa(input.DiceCount),
		strconv.Itoa(input.Modifier),
		strconv.Itoa(input.CriticalThreshold),
		combat,
	}, customIDSeparator)
}

func genericRollAgainID(selectedDice []string, modifier int) string {
	return strings.Join([]string{
		ButtonRollAgain,
		"generic",
		strconv.Itoa(modifier),
		diceNotation(selectedDice),
	}, customIDSeparator)
}

type rollAgainRequest struct {
	subcommand string
	options    map[string]*discordgo.ApplicationCommandInteractionDataOption
}

// parseRollAgainID rebuilds the slash command options a repeat button carries
func parseRollAgainID(customID string) (*rollAgainRequest, error) {
	parts := strings.Split(customID, customIDSeparator)
	if len(parts) < 2 || parts[0] != ButtonRollAgain {
		return nil, errBadCustomID
	}

	ints := func(values []string) ([]int, error) {
		out := make([]int, len(values))
		for i, v := range values {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, errBadCustomID
			}
			out[i] = n
		}
		return out, nil
	}

	switch parts[1] {
	case "skill":
		if len(parts) != 6 {
			return nil, errBadCustomID
		}
		values, err := ints(parts[2:6])
		if err != nil {
			return nil, err
		}
		return &rollAgainRequest{
			subcommand: "skill",
			options: map[string]*discordgo.ApplicationCommandInteractionDataOption{
				"dice":      intOption("dice", values[0]),
				"modifier":  intOption("modifier", values[1]),
				"threshold": intOption("threshold", values[2]),
				"combat":    boolOption("combat", values[3] == 1),
			},
		}, nil
	case "generic":
		if len(parts) != 4 {
			return nil, errBadCustomID
		}
		values, err := ints(parts[2:3])
		if err != nil {
			return nil, err
		}
		return &rollAgainRequest{
			subcommand: "generic",
			options: map[string]*discordgo.ApplicationCommandInteractionDataOption{
				"modifier": intOption("modifier", values[0]),
				"dice":     stringOption("dice", parts[3]),
			},
		}, nil
	}

	return nil, errBadCustomID
}

func intOption(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}

func boolOption(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionBoolean,
		Value: value,
	}
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}
