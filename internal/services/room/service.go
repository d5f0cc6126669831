package room

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/common/clock"
	"github.com/KirkDiggler/rolltogether/internal/common/uuid"
	"github.com/KirkDiggler/rolltogether/internal/dice"
	"github.com/KirkDiggler/rolltogether/internal/models"
	playerRepo "github.com/KirkDiggler/rolltogether/internal/repositories/player"
	"github.com/KirkDiggler/rolltogether/internal/roomsync"
	"github.com/KirkDiggler/rolltogether/internal/score"
)

// service implements the Service interface
type service struct {
	channel        roomsync.Channel
	playerRepo     playerRepo.Repository
	diceRoller     dice.Roller
	clock          clock.Clock
	uuidGenerator  uuid.UUID
	maxGenericDice int
	watchStorage   bool
	logger         zerolog.Logger

	// ctx bounds every room subscription; cancelled by Close
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	rooms  map[string]*openRoom
	closed bool
}

// openRoom guards the first open of a room so other rooms are not held up
type openRoom struct {
	mu    sync.Mutex
	store *roomsync.Store
}

// New creates a new room service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Channel == nil {
		return nil, ErrNilChannel
	}

	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	maxGenericDice := cfg.MaxGenericDice
	if maxGenericDice <= 0 {
		maxGenericDice = DefaultMaxGenericDice
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &service{
		channel:        cfg.Channel,
		playerRepo:     cfg.PlayerRepo,
		diceRoller:     cfg.DiceRoller,
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		maxGenericDice: maxGenericDice,
		watchStorage:   cfg.WatchStorage,
		logger:         cfg.Logger.With().Str("service", "room").Logger(),
		ctx:            ctx,
		cancel:         cancel,
		rooms:          make(map[string]*openRoom),
	}, nil
}

// SubmitSkillRoll rolls a skill pool and adds it to the room's history
func (s *service) SubmitSkillRoll(ctx context.Context, input *SubmitSkillRollInput) (*SubmitSkillRollOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.RoomID == "" {
		return nil, ErrRoomIDRequired
	}

	if input.DiceCount < MinDiceCount || input.DiceCount > MaxDiceCount {
		return nil, ErrInvalidDiceCount
	}

	if input.CriticalThreshold < MinCriticalThreshold || input.CriticalThreshold > MaxCriticalThreshold {
		return nil, ErrInvalidCriticalThreshold
	}

	store, err := s.store(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	nickname := s.resolveNickname(ctx, input.Roller)

	results := dice.PerformSkillRoll(s.diceRoller, input.DiceCount)
	roll := &models.SkillRoll{
		RollBase: models.RollBase{
			ID:             s.uuidGenerator.NewUUID(),
			RoomID:         input.RoomID,
			RollerNickname: nickname,
			Timestamp:      s.clock.Now(),
			Modifier:       input.Modifier,
		},
		DiceCount:         input.DiceCount,
		Results:           results,
		TotalDiceRolled:   len(results),
		CriticalThreshold: input.CriticalThreshold,
		RollOutcomeState:  dice.DetermineRollOutcome(results, input.CriticalThreshold),
		IsCombatRoll:      input.IsCombatRoll,
	}

	syncErr, err := s.addRoll(ctx, store, roll)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("room_id", input.RoomID).
		Str("roll_id", roll.ID).
		Str("outcome", string(roll.RollOutcomeState)).
		Msg("skill roll submitted")

	return &SubmitSkillRollOutput{
		Roll:    roll,
		Total:   score.CalculateSkillTotal(roll),
		SyncErr: syncErr,
	}, nil
}

// SubmitGenericRoll rolls the selected dice and adds them to the room's history
func (s *service) SubmitGenericRoll(ctx context.Context, input *SubmitGenericRollInput) (*SubmitGenericRollOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.RoomID == "" {
		return nil, ErrRoomIDRequired
	}

	selected, err := s.normalizeSelection(input.SelectedDice)
	if err != nil {
		return nil, err
	}

	store, err := s.store(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	nickname := s.resolveNickname(ctx, input.Roller)

	results := dice.PerformGenericRoll(s.diceRoller, selected)
	roll := &models.GenericRoll{
		RollBase: models.RollBase{
			ID:             s.uuidGenerator.NewUUID(),
			RoomID:         input.RoomID,
			RollerNickname: nickname,
			Timestamp:      s.clock.Now(),
			Modifier:       input.Modifier,
		},
		SelectedDice:    selected,
		Results:         results,
		TotalDiceRolled: len(results),
	}

	syncErr, err := s.addRoll(ctx, store, roll)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("room_id", input.RoomID).
		Str("roll_id", roll.ID).
		Int("dice", roll.TotalDiceRolled).
		Msg("generic roll submitted")

	return &SubmitGenericRollOutput{
		Roll:    roll,
		Total:   score.CalculateGenericTotal(roll),
		SyncErr: syncErr,
	}, nil
}

// GetRoomHistory returns the room's rolls, newest first
func (s *service) GetRoomHistory(ctx context.Context, input *GetRoomHistoryInput) (*GetRoomHistoryOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrRoomIDRequired
	}

	store, err := s.store(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	return &GetRoomHistoryOutput{
		Rolls: store.Rolls(),
	}, nil
}

// WatchRoom calls the listener with the room's history on every change
func (s *service) WatchRoom(ctx context.Context, input *WatchRoomInput) (*WatchRoomOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrRoomIDRequired
	}

	if input.Listener == nil {
		return nil, errors.New("listener cannot be nil")
	}

	store, err := s.store(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	unsubscribe := store.Subscribe(input.Listener)

	return &WatchRoomOutput{
		Rolls:       store.Rolls(),
		Unsubscribe: unsubscribe,
	}, nil
}

// ClearRoomHistory empties the room's history for every viewer
func (s *service) ClearRoomHistory(ctx context.Context, input *ClearRoomHistoryInput) (*ClearRoomHistoryOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrRoomIDRequired
	}

	store, err := s.store(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	var syncErr error
	if err := store.ClearAll(ctx); err != nil {
		s.logger.Warn().Err(err).Str("room_id", input.RoomID).Msg("room cleared locally only")
		syncErr = err
	}

	return &ClearRoomHistoryOutput{
		SyncErr: syncErr,
	}, nil
}

// Close stops following every room
func (s *service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	var stores []*roomsync.Store
	for _, room := range s.rooms {
		if room.store != nil {
			stores = append(stores, room.store)
		}
	}
	s.rooms = make(map[string]*openRoom)
	s.mu.Unlock()

	s.cancel()

	var errs []error
	for _, store := range stores {
		if err := store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// store returns the loaded, subscribed store for a room, opening it on first use
func (s *service) store(ctx context.Context, roomID string) (*roomsync.Store, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrServiceClosed
	}
	room, ok := s.rooms[roomID]
	if !ok {
		room = &openRoom{}
		s.rooms[roomID] = room
	}
	s.mu.Unlock()

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.store != nil {
		return room.store, nil
	}

	store, err := roomsync.New(&roomsync.Config{
		RoomID:       roomID,
		Channel:      s.channel,
		WatchStorage: s.watchStorage,
		Logger:       s.logger,
	})
	if err != nil {
		return nil, err
	}

	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to open room %s: %w", roomID, err)
	}

	if err := store.Start(s.ctx); err != nil {
		return nil, fmt.Errorf("failed to follow room %s: %w", roomID, err)
	}

	// store is written under both locks so Close sees every opened room
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		_ = store.Close()
		return nil, ErrServiceClosed
	}
	room.store = store
	return store, nil
}

// addRoll records a roll. Sync failures are returned separately: the roll
// still stands for this process.
func (s *service) addRoll(ctx context.Context, store *roomsync.Store, roll models.Roll) (syncErr error, err error) {
	err = store.AddRoll(ctx, roll)
	if err == nil {
		return nil, nil
	}

	if errors.Is(err, roomsync.ErrPersistFailed) || errors.Is(err, roomsync.ErrBroadcastFailed) {
		s.logger.Warn().Err(err).Str("room_id", store.RoomID()).Msg("roll recorded locally only")
		return err, nil
	}

	return nil, err
}

// normalizeSelection lowercases die types and rejects anything unsupported
func (s *service) normalizeSelection(selectedDice []string) ([]string, error) {
	if len(selectedDice) == 0 {
		return nil, ErrNoDiceSelected
	}

	if len(selectedDice) > s.maxGenericDice {
		return nil, ErrTooManyDice
	}

	selected := make([]string, len(selectedDice))
	for i, dieType := range selectedDice {
		normalized := strings.ToLower(strings.TrimSpace(dieType))
		if !dice.IsSupportedDieType(normalized) {
			return nil, ErrUnsupportedDieType
		}
		selected[i] = normalized
	}

	return selected, nil
}

// resolveNickname picks the name shown next to a roll. A given nickname is
// remembered for the player; otherwise the remembered one is used, or a
// generated one is created and remembered.
func (s *service) resolveNickname(ctx context.Context, roller Roller) string {
	nickname := strings.TrimSpace(roller.Nickname)
	if nickname != "" {
		s.rememberNickname(ctx, roller.PlayerID, nickname)
		return nickname
	}

	if roller.PlayerID != "" {
		player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
			PlayerID: roller.PlayerID,
		})
		switch {
		case err == nil && player.Nickname != "":
			return player.Nickname
		case err != nil && !errors.Is(err, playerRepo.ErrPlayerNotFound):
			s.logger.Warn().Err(err).Str("player_id", roller.PlayerID).Msg("failed to look up nickname")
		}
	}

	generated := defaultNicknamePrefix + shortID(s.uuidGenerator.NewUUID())
	s.rememberNickname(ctx, roller.PlayerID, generated)
	return generated
}

func (s *service) rememberNickname(ctx context.Context, playerID, nickname string) {
	if playerID == "" {
		return
	}

	err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
		Player: &models.Player{
			ID:        playerID,
			Nickname:  nickname,
			UpdatedAt: s.clock.Now(),
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("player_id", playerID).Msg("failed to remember nickname")
	}
}

func shortID(id string) string {
	if len(id) > 4 {
		return id[:4]
	}
	return id
}
