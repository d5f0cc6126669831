package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// invocation is the part of an interaction the commands act on
type invocation struct {
	// roomID is the Discord channel, which is the room
	roomID string

	userID      string
	displayName string

	subcommand string
	options    map[string]*discordgo.ApplicationCommandInteractionDataOption
}

// newInvocation reads the caller and the first subcommand's options
func newInvocation(i *discordgo.InteractionCreate) *invocation {
	inv := &invocation{
		roomID:  i.ChannelID,
		options: make(map[string]*discordgo.ApplicationCommandInteractionDataOption),
	}

	switch {
	case i.Member != nil && i.Member.User != nil:
		inv.userID = i.Member.User.ID
		inv.displayName = i.Member.User.Username
		if i.Member.User.GlobalName != "" {
			inv.displayName = i.Member.User.GlobalName
		}
		if i.Member.Nick != "" {
			inv.displayName = i.Member.Nick
		}
	case i.User != nil:
		inv.userID = i.User.ID
		inv.displayName = i.User.Username
		if i.User.GlobalName != "" {
			inv.displayName = i.User.GlobalName
		}
	}

	if i.Type != discordgo.InteractionApplicationCommand {
		return inv
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return inv
	}

	sub := data.Options[0]
	inv.subcommand = sub.Name
	for _, opt := range sub.Options {
		inv.options[opt.Name] = opt
	}

	return inv
}

func (inv *invocation) intOption(name string, fallback int) int {
	if opt, ok := inv.options[name]; ok {
		return int(opt.IntValue())
	}
	return fallback
}

func (inv *invocation) boolOption(name string) bool {
	if opt, ok := inv.options[name]; ok {
		return opt.BoolValue()
	}
	return false
}

func (inv *invocation) stringOption(name string) string {
	if opt, ok := inv.options[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// nickname is the nickname option, or the caller's Discord display name
func (inv *invocation) nickname() string {
	if nick := inv.stringOption("nickname"); nick != "" {
		return nick
	}
	return inv.displayName
}

// responder builds the reply for an invocation
type responder func(ctx context.Context, inv *invocation) (*discordgo.InteractionResponse, error)

// RespondWithError sends an ephemeral error response to an interaction
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, errorMessage string) error {
	return s.InteractionRespond(i.Interaction, errorResponse(errorMessage))
}

func ephemeralMessage(message string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

func errorResponse(message string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Error",
				Description: message,
				Color:       colorError,
			}},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}
