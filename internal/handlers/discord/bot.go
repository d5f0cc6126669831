package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	macroService "github.com/KirkDiggler/rolltogether/internal/services/macro"
	"github.com/KirkDiggler/rolltogether/internal/services/messaging"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
)

// Bot represents the Discord bot instance
type Bot struct {
	session     *discordgo.Session
	commands    map[string]CommandHandler
	commandIDs  map[string]string // Maps command name to command ID
	rollCommand *RollCommand
	config      *Config
	logger      zerolog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Services
	RoomService      roomService.Service
	MacroService     macroService.Service
	MessagingService messaging.Service

	Logger zerolog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.RoomService == nil {
		return nil, errors.New("room service cannot be nil")
	}

	if cfg.MacroService == nil {
		return nil, errors.New("macro service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	logger := cfg.Logger.With().Str("component", "discord").Logger()

	bot := &Bot{
		session:     session,
		commands:    make(map[string]CommandHandler),
		commandIDs:  make(map[string]string),
		rollCommand: NewRollCommand(cfg.RoomService, cfg.MessagingService, logger),
		config:      cfg,
		logger:      logger,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range []CommandHandler{
		b.rollCommand,
		NewMacroCommand(b.config.MacroService, b.rollCommand, b.logger),
	} {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	b.logger.Info().Msg("bot is now running")
	return nil
}

// Stop removes the registered commands and closes the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn().Err(err).Str("command", cmdName).Str("command_id", cmdID).Msg("failed to delete command")
		} else {
			b.logger.Info().Str("command", cmdName).Str("command_id", cmdID).Msg("deleted command")
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	scope := "global"
	if b.config.GuildID != "" {
		scope = b.config.GuildID
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info().
		Str("command", cmd.GetName()).
		Str("command_id", createdCmd.ID).
		Str("scope", scope).
		Msg("registered command")

	return nil
}

// appID falls back to the session user when no application ID is configured
func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error().Err(err).Str("command", name).Msg("failed to handle command")
			}
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		var err error
		switch {
		case strings.HasPrefix(customID, ButtonRollAgain+customIDSeparator):
			err = b.rollCommand.HandleRollAgain(s, i)
		default:
			err = RespondWithError(s, i, "Unknown button.")
		}
		if err != nil {
			b.logger.Error().Err(err).Str("custom_id", customID).Msg("failed to handle component interaction")
		}
	}
}
