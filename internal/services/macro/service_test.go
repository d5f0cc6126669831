package macro

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/KirkDiggler/rolltogether/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/rolltogether/internal/common/uuid/mocks"
	"github.com/KirkDiggler/rolltogether/internal/models"
	macroRepo "github.com/KirkDiggler/rolltogether/internal/repositories/macro"
	macroMocks "github.com/KirkDiggler/rolltogether/internal/repositories/macro/mocks"
	roomService "github.com/KirkDiggler/rolltogether/internal/services/room"
	roomMocks "github.com/KirkDiggler/rolltogether/internal/services/room/mocks"
)

type MacroServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockMacroRepo   *macroMocks.MockRepository
	mockRoomService *roomMocks.MockService
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	macroService    Service
	ctx             context.Context

	// Test data
	testTime    time.Time
	testOwnerID string
	testMacroID string
	testRoomID  string
}

func (s *MacroServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockMacroRepo = macroMocks.NewMockRepository(s.mockCtrl)
	s.mockRoomService = roomMocks.NewMockService(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 5, 2, 20, 0, 0, 0, time.UTC)
	s.testOwnerID = "test-owner-id"
	s.testMacroID = "test-macro-id"
	s.testRoomID = "test-room-id"

	svc, err := New(&Config{
		MacroRepo:     s.mockMacroRepo,
		RoomService:   s.mockRoomService,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.macroService = svc

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
}

func (s *MacroServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMacroServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MacroServiceTestSuite))
}

func (s *MacroServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{RoomService: s.mockRoomService, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilMacroRepo)

	_, err = New(&Config{MacroRepo: s.mockMacroRepo, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilRoomService)
}

func (s *MacroServiceTestSuite) TestSaveSkillMacro() {
	expected := &models.Macro{
		ID:        s.testMacroID,
		OwnerID:   s.testOwnerID,
		Name:      "Stealth",
		MacroType: models.MacroTypeSkill,
		Skill: &models.SkillMacro{
			DiceCount:         3,
			Modifier:          2,
			CriticalThreshold: 9,
		},
		UpdatedAt: s.testTime,
	}

	s.mockUUID.EXPECT().NewUUID().Return(s.testMacroID)
	s.mockMacroRepo.EXPECT().
		SaveMacro(s.ctx, &macroRepo.SaveMacroInput{Macro: expected}).
		Return(nil)

	output, err := s.macroService.SaveMacro(s.ctx, &SaveMacroInput{
		OwnerID:   s.testOwnerID,
		Name:      " Stealth ",
		MacroType: models.MacroTypeSkill,
		Skill:     &models.SkillMacro{DiceCount: 3, Modifier: 2, CriticalThreshold: 9},
	})
	s.Require().NoError(err)
	s.Equal(expected, output.Macro)
}

func (s *MacroServiceTestSuite) TestSaveGenericMacroKeepsGivenID() {
	expected := &models.Macro{
		ID:        s.testMacroID,
		OwnerID:   s.testOwnerID,
		Name:      "Fireball",
		MacroType: models.MacroTypeGeneric,
		Generic: &models.GenericMacro{
			SelectedDice: []string{"d6", "d6", "d8"},
			Modifier:     1,
		},
		UpdatedAt: s.testTime,
	}

	s.mockMacroRepo.EXPECT().
		SaveMacro(s.ctx, &macroRepo.SaveMacroInput{Macro: expected}).
		Return(nil)

	output, err := s.macroService.SaveMacro(s.ctx, &SaveMacroInput{
		OwnerID:   s.testOwnerID,
		MacroID:   s.testMacroID,
		Name:      "Fireball",
		MacroType: models.MacroTypeGeneric,
		Generic:   &models.GenericMacro{SelectedDice: []string{"d6", "D6", " d8"}, Modifier: 1},
	})
	s.Require().NoError(err)
	s.Equal(expected, output.Macro)
}

func (s *MacroServiceTestSuite) TestSaveMacroValidation() {
	tests := []struct {
		name  string
		input *SaveMacroInput
		want  error
	}{
		{
			name:  "missing owner",
			input: &SaveMacroInput{Name: "x", MacroType: models.MacroTypeSkill, Skill: &models.SkillMacro{CriticalThreshold: 9}},
			want:  ErrOwnerIDRequired,
		},
		{
			name:  "blank name",
			input: &SaveMacroInput{OwnerID: s.testOwnerID, Name: "  ", MacroType: models.MacroTypeSkill, Skill: &models.SkillMacro{CriticalThreshold: 9}},
			want:  ErrNameRequired,
		},
		{
			name:  "unknown type",
			input: &SaveMacroInput{OwnerID: s.testOwnerID, Name: "x", MacroType: "tarot"},
			want:  ErrInvalidMacroType,
		},
		{
			name:  "skill without payload",
			input: &SaveMacroInput{OwnerID: s.testOwnerID, Name: "x", MacroType: models.MacroTypeSkill},
			want:  ErrInvalidMacroType,
		},
		{
			name:  "skill dice out of range",
			input: &SaveMacroInput{OwnerID: s.testOwnerID, Name: "x", MacroType: models.MacroTypeSkill, Skill: &models.SkillMacro{DiceCount: 12, CriticalThreshold: 9}},
			want:  roomService.ErrInvalidDiceCount,
		},
		{
			name:  "skill threshold out of range",
			input: &SaveMacroInput{OwnerID: s.testOwnerID, Name: "x", MacroType: models.MacroTypeSkill, Skill: &models.SkillMacro{DiceCount: 2}},
			want:  roomService.ErrInvalidCriticalThreshold,
		},
		{
			name:  "generic without dice",
			input: &SaveMacroInput{OwnerID: s.testOwnerID, Name: "x", MacroType: models.MacroTypeGeneric, Generic: &models.GenericMacro{}},
			want:  roomService.ErrNoDiceSelected,
		},
		{
			name:  "generic unsupported die",
			input: &SaveMacroInput{OwnerID: s.testOwnerID, Name: "x", MacroType: models.MacroTypeGeneric, Generic: &models.GenericMacro{SelectedDice: []string{"d3"}}},
			want:  roomService.ErrUnsupportedDieType,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			output, err := s.macroService.SaveMacro(s.ctx, tt.input)
			s.Nil(output)
			s.ErrorIs(err, tt.want)
			s.True(IsValidationError(err))
		})
	}
}

func (s *MacroServiceTestSuite) TestListMacros() {
	macros := []*models.Macro{{ID: "a", Name: "Athletics"}, {ID: "b", Name: "Stealth"}}
	s.mockMacroRepo.EXPECT().
		ListMacros(s.ctx, &macroRepo.ListMacrosInput{OwnerID: s.testOwnerID}).
		Return(&macroRepo.ListMacrosOutput{Macros: macros}, nil)

	output, err := s.macroService.ListMacros(s.ctx, &ListMacrosInput{OwnerID: s.testOwnerID})
	s.Require().NoError(err)
	s.Equal(macros, output.Macros)
}

func (s *MacroServiceTestSuite) TestDeleteMacro() {
	s.mockMacroRepo.EXPECT().
		DeleteMacro(s.ctx, &macroRepo.DeleteMacroInput{OwnerID: s.testOwnerID, MacroID: s.testMacroID}).
		Return(nil)

	s.NoError(s.macroService.DeleteMacro(s.ctx, &DeleteMacroInput{OwnerID: s.testOwnerID, MacroID: s.testMacroID}))
}

func (s *MacroServiceTestSuite) TestDeleteMissingMacro() {
	s.mockMacroRepo.EXPECT().
		DeleteMacro(s.ctx, gomock.Any()).
		Return(macroRepo.ErrMacroNotFound)

	err := s.macroService.DeleteMacro(s.ctx, &DeleteMacroInput{OwnerID: s.testOwnerID, MacroID: s.testMacroID})
	s.ErrorIs(err, ErrMacroNotFound)
	s.False(IsValidationError(err))
}

func (s *MacroServiceTestSuite) TestExecuteSkillMacro() {
	macro := &models.Macro{
		ID:        s.testMacroID,
		OwnerID:   s.testOwnerID,
		Name:      "Sword",
		MacroType: models.MacroTypeSkill,
		Skill:     &models.SkillMacro{DiceCount: 4, Modifier: 1, CriticalThreshold: 8, IsCombatRoll: true},
	}
	submitted := &roomService.SubmitSkillRollOutput{Roll: &models.SkillRoll{}}

	s.mockMacroRepo.EXPECT().
		GetMacro(s.ctx, &macroRepo.GetMacroInput{OwnerID: s.testOwnerID, MacroID: s.testMacroID}).
		Return(macro, nil)
	s.mockRoomService.EXPECT().
		SubmitSkillRoll(s.ctx, &roomService.SubmitSkillRollInput{
			RoomID:            s.testRoomID,
			Roller:            roomService.Roller{PlayerID: s.testOwnerID, Nickname: "Ada"},
			DiceCount:         4,
			Modifier:          1,
			CriticalThreshold: 8,
			IsCombatRoll:      true,
		}).
		Return(submitted, nil)

	output, err := s.macroService.ExecuteMacro(s.ctx, &ExecuteMacroInput{
		OwnerID:  s.testOwnerID,
		MacroID:  s.testMacroID,
		RoomID:   s.testRoomID,
		Nickname: "Ada",
	})
	s.Require().NoError(err)
	s.Equal(macro, output.Macro)
	s.Same(submitted, output.Skill)
	s.Nil(output.Generic)
}

func (s *MacroServiceTestSuite) TestExecuteGenericMacro() {
	macro := &models.Macro{
		ID:        s.testMacroID,
		OwnerID:   s.testOwnerID,
		Name:      "Fireball",
		MacroType: models.MacroTypeGeneric,
		Generic:   &models.GenericMacro{SelectedDice: []string{"d6", "d6"}, Modifier: 3},
	}
	submitted := &roomService.SubmitGenericRollOutput{Roll: &models.GenericRoll{}}

	s.mockMacroRepo.EXPECT().GetMacro(s.ctx, gomock.Any()).Return(macro, nil)
	s.mockRoomService.EXPECT().
		SubmitGenericRoll(s.ctx, &roomService.SubmitGenericRollInput{
			RoomID:       s.testRoomID,
			Roller:       roomService.Roller{PlayerID: s.testOwnerID},
			SelectedDice: []string{"d6", "d6"},
			Modifier:     3,
		}).
		Return(submitted, nil)

	output, err := s.macroService.ExecuteMacro(s.ctx, &ExecuteMacroInput{
		OwnerID: s.testOwnerID,
		MacroID: s.testMacroID,
		RoomID:  s.testRoomID,
	})
	s.Require().NoError(err)
	s.Same(submitted, output.Generic)
	s.Nil(output.Skill)
}

func (s *MacroServiceTestSuite) TestExecuteMissingMacro() {
	s.mockMacroRepo.EXPECT().GetMacro(s.ctx, gomock.Any()).Return(nil, macroRepo.ErrMacroNotFound)

	_, err := s.macroService.ExecuteMacro(s.ctx, &ExecuteMacroInput{
		OwnerID: s.testOwnerID,
		MacroID: s.testMacroID,
		RoomID:  s.testRoomID,
	})
	s.ErrorIs(err, ErrMacroNotFound)
}

func (s *MacroServiceTestSuite) TestExecuteRequiresRoom() {
	_, err := s.macroService.ExecuteMacro(s.ctx, &ExecuteMacroInput{
		OwnerID: s.testOwnerID,
		MacroID: s.testMacroID,
	})
	s.ErrorIs(err, roomService.ErrRoomIDRequired)
}

func (s *MacroServiceTestSuite) TestExecutePassesRoomErrorsThrough() {
	s.mockMacroRepo.EXPECT().GetMacro(s.ctx, gomock.Any()).Return(&models.Macro{
		MacroType: models.MacroTypeSkill,
		Skill:     &models.SkillMacro{DiceCount: 2, CriticalThreshold: 9},
	}, nil)
	s.mockRoomService.EXPECT().SubmitSkillRoll(s.ctx, gomock.Any()).Return(nil, errors.New("redis down"))

	_, err := s.macroService.ExecuteMacro(s.ctx, &ExecuteMacroInput{
		OwnerID: s.testOwnerID,
		MacroID: s.testMacroID,
		RoomID:  s.testRoomID,
	})
	s.EqualError(err, "redis down")
}
