package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rolltogether/internal/dice"
	"github.com/KirkDiggler/rolltogether/internal/models"
	"github.com/KirkDiggler/rolltogether/internal/roomsync"
	"github.com/KirkDiggler/rolltogether/internal/score"
	macroService "github.com/KirkDiggler/rolltogether/internal/services/macro"
	macroMocks "github.com/KirkDiggler/rolltogether/internal/services/macro/mocks"
	"github.com/KirkDiggler/rolltogether/internal/services/messaging"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
	roomMocks "github.com/KirkDiggler/rolltogether/internal/services/room/mocks"
)

type CommandsTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockRoomService  *roomMocks.MockService
	mockMacroService *macroMocks.MockService
	rollCommand      *RollCommand
	macroCommand     *MacroCommand
	ctx              context.Context

	// Test data
	testChannelID string
	testUserID    string
}

func (s *CommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoomService = roomMocks.NewMockService(s.mockCtrl)
	s.mockMacroService = macroMocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Roller: dice.New(&dice.Config{Seed: 1}),
	})
	s.Require().NoError(err)

	s.rollCommand = NewRollCommand(s.mockRoomService, messagingSvc, zerolog.Nop())
	s.macroCommand = NewMacroCommand(s.mockMacroService, s.rollCommand, zerolog.Nop())

	s.testChannelID = "channel-1"
	s.testUserID = "user-1"
}

func (s *CommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(CommandsTestSuite))
}

func (s *CommandsTestSuite) invocation(subcommand string, options ...*discordgo.ApplicationCommandInteractionDataOption) *invocation {
	inv := &invocation{
		roomID:      s.testChannelID,
		userID:      s.testUserID,
		displayName: "Ada",
		subcommand:  subcommand,
		options:     make(map[string]*discordgo.ApplicationCommandInteractionDataOption),
	}
	for _, opt := range options {
		inv.options[opt.Name] = opt
	}
	return inv
}

func (s *CommandsTestSuite) TestNewInvocationReadsMemberAndOptions() {
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			ChannelID: s.testChannelID,
			Member: &discordgo.Member{
				User: &discordgo.User{ID: s.testUserID, Username: "ada99"},
				Nick: "Ada",
			},
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "roll",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{
						Name: "skill",
						Type: discordgo.ApplicationCommandOptionSubCommand,
						Options: []*discordgo.ApplicationCommandInteractionDataOption{
							intOption("dice", 3),
							boolOption("combat", true),
						},
					},
				},
			},
		},
	}

	inv := newInvocation(i)

	s.Equal(s.testChannelID, inv.roomID)
	s.Equal(s.testUserID, inv.userID)
	s.Equal("Ada", inv.displayName)
	s.Equal("skill", inv.subcommand)
	s.Equal(3, inv.intOption("dice", 0))
	s.Equal(9, inv.intOption("threshold", 9))
	s.True(inv.boolOption("combat"))
	s.Equal("Ada", inv.nickname())
}

func (s *CommandsTestSuite) TestNewInvocationDirectMessage() {
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionMessageComponent,
			ChannelID: "dm-1",
			User:      &discordgo.User{ID: "user-2", Username: "grace", GlobalName: "Grace"},
			Data:      discordgo.MessageComponentInteractionData{CustomID: "roll_again|skill|1|0|9|0"},
		},
	}

	inv := newInvocation(i)

	s.Equal("user-2", inv.userID)
	s.Equal("Grace", inv.nickname())
	s.Empty(inv.subcommand)
}

func (s *CommandsTestSuite) TestRollSkill() {
	roll := testSkillRoll(models.RollOutcomeCritical)

	s.mockRoomService.EXPECT().
		SubmitSkillRoll(gomock.Any(), &roomService.SubmitSkillRollInput{
			RoomID:            s.testChannelID,
			Roller:            roomService.Roller{PlayerID: s.testUserID, Nickname: "Ada"},
			DiceCount:         3,
			Modifier:          2,
			CriticalThreshold: 9,
		}).
		Return(&roomService.SubmitSkillRollOutput{
			Roll:  roll,
			Total: score.CalculateSkillTotal(roll),
		}, nil)

	response := s.rollCommand.respond(s.ctx, s.invocation("skill", intOption("dice", 3), intOption("modifier", 2)))

	s.Equal(discordgo.InteractionResponseChannelMessageWithSource, response.Type)
	s.Zero(response.Data.Flags)
	s.Require().Len(response.Data.Embeds, 1)
	s.Equal("Critical!", response.Data.Embeds[0].Title)
	s.Contains(response.Data.Embeds[0].Description, "Ada")
	s.Equal("**[7]** 4 **9** + 2", response.Data.Embeds[0].Fields[1].Value)

	s.Require().Len(response.Data.Components, 1)
	row := response.Data.Components[0].(discordgo.ActionsRow)
	button := row.Components[0].(discordgo.Button)
	s.Equal("roll_again|skill|3|2|9|0", button.CustomID)
}

func (s *CommandsTestSuite) TestRollSkillValidationError() {
	s.mockRoomService.EXPECT().SubmitSkillRoll(gomock.Any(), gomock.Any()).
		Return(nil, roomService.ErrInvalidCriticalThreshold)

	response := s.rollCommand.respond(s.ctx, s.invocation("skill", intOption("dice", 3), intOption("threshold", 11)))

	s.Equal(discordgo.MessageFlagsEphemeral, response.Data.Flags)
	s.Equal("The critical threshold must be between 1 and 10.", response.Data.Embeds[0].Description)
}

func (s *CommandsTestSuite) TestRollGenericExpandsNotation() {
	roll := testGenericRoll()

	s.mockRoomService.EXPECT().
		SubmitGenericRoll(gomock.Any(), &roomService.SubmitGenericRollInput{
			RoomID:       s.testChannelID,
			Roller:       roomService.Roller{PlayerID: s.testUserID, Nickname: "Grace"},
			SelectedDice: []string{"d6", "d6", "d20"},
			Modifier:     -1,
		}).
		Return(&roomService.SubmitGenericRollOutput{
			Roll:    roll,
			Total:   score.CalculateGenericTotal(roll),
			SyncErr: roomsync.ErrPersistFailed,
		}, nil)

	response := s.rollCommand.respond(s.ctx, s.invocation("generic",
		stringOption("dice", "2d6, d20"),
		intOption("modifier", -1),
		stringOption("nickname", "Grace"),
	))

	embed := response.Data.Embeds[0]
	s.Equal("Generic Roll", embed.Title)
	s.Equal("25", embed.Fields[0].Value)
	s.Require().NotNil(embed.Footer)
	s.NotEmpty(embed.Footer.Text)
}

func (s *CommandsTestSuite) TestRollGenericBadNotation() {
	response := s.rollCommand.respond(s.ctx, s.invocation("generic", stringOption("dice", "two dice")))

	s.Equal(discordgo.MessageFlagsEphemeral, response.Data.Flags)
	s.Contains(response.Data.Embeds[0].Description, "2d6 d20")
}

func (s *CommandsTestSuite) TestRollHistory() {
	s.mockRoomService.EXPECT().
		GetRoomHistory(gomock.Any(), &roomService.GetRoomHistoryInput{RoomID: s.testChannelID}).
		Return(&roomService.GetRoomHistoryOutput{Rolls: models.Rolls{testSkillRoll(models.RollOutcomeNormal)}}, nil)

	response := s.rollCommand.respond(s.ctx, s.invocation("history"))

	s.Equal(discordgo.MessageFlagsEphemeral, response.Data.Flags)
	s.Equal("Ada · Normal Action · 18", response.Data.Embeds[0].Fields[0].Name)
}

func (s *CommandsTestSuite) TestRollClear() {
	s.mockRoomService.EXPECT().
		ClearRoomHistory(gomock.Any(), &roomService.ClearRoomHistoryInput{RoomID: s.testChannelID}).
		Return(&roomService.ClearRoomHistoryOutput{}, nil)

	response := s.rollCommand.respond(s.ctx, s.invocation("clear"))

	s.Equal("Ada cleared the roll history.", response.Data.Content)
}

func (s *CommandsTestSuite) TestRollUnexpectedError() {
	s.mockRoomService.EXPECT().GetRoomHistory(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis down"))

	response := s.rollCommand.respond(s.ctx, s.invocation("history"))

	s.Equal("Error", response.Data.Embeds[0].Title)
	s.NotContains(response.Data.Embeds[0].Description, "redis")
}

func (s *CommandsTestSuite) TestMacroSaveSkillCreates() {
	s.mockMacroService.EXPECT().
		ListMacros(gomock.Any(), &macroService.ListMacrosInput{OwnerID: s.testUserID}).
		Return(&macroService.ListMacrosOutput{}, nil)

	skill := &models.SkillMacro{DiceCount: 4, Modifier: 1, CriticalThreshold: 9}
	s.mockMacroService.EXPECT().
		SaveMacro(gomock.Any(), &macroService.SaveMacroInput{
			OwnerID:   s.testUserID,
			Name:      "Sword",
			MacroType: models.MacroTypeSkill,
			Skill:     skill,
		}).
		Return(&macroService.SaveMacroOutput{Macro: &models.Macro{
			ID:        "macro-1",
			OwnerID:   s.testUserID,
			Name:      "Sword",
			MacroType: models.MacroTypeSkill,
			Skill:     skill,
		}}, nil)

	response := s.macroCommand.respond(s.ctx, s.invocation("save-skill",
		stringOption("name", "Sword"),
		intOption("dice", 4),
		intOption("modifier", 1),
	))

	s.Equal("Saved macro **Sword**: 4 skill, crit on 9+ + 1", response.Data.Content)
}

func (s *CommandsTestSuite) TestMacroSaveGenericReplacesSameName() {
	s.mockMacroService.EXPECT().ListMacros(gomock.Any(), gomock.Any()).
		Return(&macroService.ListMacrosOutput{Macros: []*models.Macro{
			{ID: "macro-7", OwnerID: s.testUserID, Name: "fireball", MacroType: models.MacroTypeGeneric},
		}}, nil)

	generic := &models.GenericMacro{SelectedDice: []string{"d6", "d6", "d6"}}
	s.mockMacroService.EXPECT().
		SaveMacro(gomock.Any(), &macroService.SaveMacroInput{
			OwnerID:   s.testUserID,
			MacroID:   "macro-7",
			Name:      "Fireball",
			MacroType: models.MacroTypeGeneric,
			Generic:   generic,
		}).
		Return(&macroService.SaveMacroOutput{Macro: &models.Macro{
			ID:        "macro-7",
			Name:      "Fireball",
			MacroType: models.MacroTypeGeneric,
			Generic:   generic,
		}}, nil)

	response := s.macroCommand.respond(s.ctx, s.invocation("save-generic",
		stringOption("name", "Fireball"),
		stringOption("dice", "3d6"),
	))

	s.Equal("Updated macro **Fireball**: 3d6", response.Data.Content)
}

func (s *CommandsTestSuite) TestMacroRun() {
	roll := testSkillRoll(models.RollOutcomeNormal)
	macro := &models.Macro{ID: "macro-1", OwnerID: s.testUserID, Name: "Sword", MacroType: models.MacroTypeSkill}

	s.mockMacroService.EXPECT().ListMacros(gomock.Any(), gomock.Any()).
		Return(&macroService.ListMacrosOutput{Macros: []*models.Macro{macro}}, nil)
	s.mockMacroService.EXPECT().
		ExecuteMacro(gomock.Any(), &macroService.ExecuteMacroInput{
			OwnerID:  s.testUserID,
			MacroID:  "macro-1",
			RoomID:   s.testChannelID,
			Nickname: "Ada",
		}).
		Return(&macroService.ExecuteMacroOutput{
			Macro: macro,
			Skill: &roomService.SubmitSkillRollOutput{Roll: roll, Total: score.CalculateSkillTotal(roll)},
		}, nil)

	response := s.macroCommand.respond(s.ctx, s.invocation("run", stringOption("name", "sword")))

	s.Equal("Macro: **Sword**", response.Data.Content)
	s.Equal("Normal Action", response.Data.Embeds[0].Title)
	button := response.Data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	s.Equal("roll_again|skill|3|2|9|0", button.CustomID)
}

func (s *CommandsTestSuite) TestMacroRunUnknownName() {
	s.mockMacroService.EXPECT().ListMacros(gomock.Any(), gomock.Any()).
		Return(&macroService.ListMacrosOutput{}, nil)

	response := s.macroCommand.respond(s.ctx, s.invocation("run", stringOption("name", "Axe")))

	s.Equal(discordgo.MessageFlagsEphemeral, response.Data.Flags)
	s.Equal("That macro doesn't exist. Check the list and try again.", response.Data.Embeds[0].Description)
}

func (s *CommandsTestSuite) TestMacroDelete() {
	s.mockMacroService.EXPECT().ListMacros(gomock.Any(), gomock.Any()).
		Return(&macroService.ListMacrosOutput{Macros: []*models.Macro{{ID: "macro-1", Name: "Sword"}}}, nil)
	s.mockMacroService.EXPECT().
		DeleteMacro(gomock.Any(), &macroService.DeleteMacroInput{OwnerID: s.testUserID, MacroID: "macro-1"}).
		Return(nil)

	response := s.macroCommand.respond(s.ctx, s.invocation("delete", stringOption("name", "Sword")))

	s.Equal("Deleted macro **Sword**.", response.Data.Content)
}

func (s *CommandsTestSuite) TestMacroList() {
	s.mockMacroService.EXPECT().ListMacros(gomock.Any(), gomock.Any()).
		Return(&macroService.ListMacrosOutput{}, nil)

	response := s.macroCommand.respond(s.ctx, s.invocation("list"))

	s.Equal(discordgo.MessageFlagsEphemeral, response.Data.Flags)
	s.Equal("Your Macros", response.Data.Embeds[0].Title)
}

func (s *CommandsTestSuite) TestCommandDefinitions() {
	roll := s.rollCommand.GetCommand()
	s.Equal("roll", roll.Name)
	s.Len(roll.Options, 4)

	macro := s.macroCommand.GetCommand()
	s.Equal("macro", macro.Name)
	s.Len(macro.Options, 5)
}
