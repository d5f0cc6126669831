// Package roomsync keeps one viewer's copy of a room's roll history in step
// with every other viewer of the same room.
//
// Each viewer holds the full history in memory. A local mutation persists the
// whole updated list and broadcasts it; inbound broadcasts and storage changes
// replace the local list wholesale. The last write wins; concurrent additions
// from different viewers can overwrite each other.
package roomsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/models"
)

// Error is a room synchronization error
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

const (
	ErrNilConfig        Error = "config cannot be nil"
	ErrNilChannel       Error = "channel cannot be nil"
	ErrRoomIDRequired   Error = "room ID cannot be empty"
	ErrNilRoll          Error = "roll cannot be nil"
	ErrPersistFailed    Error = "failed to persist room history"
	ErrBroadcastFailed  Error = "failed to broadcast room history"
	ErrMalformedPayload Error = "malformed room history payload"
	ErrNoInboundPath    Error = "neither broadcast nor storage watch is available"
)

// Listener is called with the full history after every change. Listeners
// run in change order and must not mutate the store.
type Listener func(rolls models.Rolls)

// Config holds configuration for a room store
type Config struct {
	// RoomID scopes the history, the storage key and the broadcast topic
	RoomID string

	// Channel is the shared storage and broadcast medium
	Channel Channel

	// ViewerID identifies this viewer's broadcasts; generated when empty
	ViewerID string

	// WatchStorage starts the storage-change path alongside broadcasts
	WatchStorage bool

	Logger zerolog.Logger
}

// Store is one viewer's copy of a room's history
type Store struct {
	roomID       string
	viewerID     string
	channel      Channel
	watchStorage bool
	logger       zerolog.Logger

	// writeMu serializes local mutations so persisted order matches memory
	writeMu sync.Mutex
	// swapMu keeps listener notifications in the same order as state changes
	swapMu sync.Mutex

	mu           sync.RWMutex
	loaded       bool
	rolls        models.Rolls
	lastWritten  []byte
	listeners    map[int]Listener
	nextListener int
	closers      []io.Closer
}

// New creates an uninitialized room store
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RoomID == "" {
		return nil, ErrRoomIDRequired
	}
	if cfg.Channel == nil {
		return nil, ErrNilChannel
	}

	viewerID := cfg.ViewerID
	if viewerID == "" {
		viewerID = uuid.New().String()
	}

	return &Store{
		roomID:       cfg.RoomID,
		viewerID:     viewerID,
		channel:      cfg.Channel,
		watchStorage: cfg.WatchStorage,
		logger:       cfg.Logger.With().Str("room_id", cfg.RoomID).Str("viewer_id", viewerID).Logger(),
		listeners:    make(map[int]Listener),
	}, nil
}

// RoomID returns the room this store tracks
func (s *Store) RoomID() string {
	return s.roomID
}

// ViewerID returns the identifier this store publishes under
func (s *Store) ViewerID() string {
	return s.viewerID
}

// Loaded reports whether the history has been read or received
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Load reads the persisted history once. A missing or malformed value loads
// as an empty history. A read failure leaves the store uninitialized.
func (s *Store) Load(ctx context.Context) error {
	if s.Loaded() {
		return nil
	}

	payload, err := s.channel.Read(ctx, s.roomID)
	if err != nil {
		return fmt.Errorf("failed to read room history: %w", err)
	}

	rolls := models.Rolls{}
	if payload != nil {
		decoded, err := decodeRolls(payload)
		if err != nil {
			s.logger.Warn().Err(err).Msg("discarding persisted room history")
		} else {
			rolls = decoded
		}
	}

	s.swapMu.Lock()
	defer s.swapMu.Unlock()

	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return nil
	}
	s.rolls = rolls
	s.loaded = true
	s.mu.Unlock()

	s.notify(rolls)
	return nil
}

// Start begins receiving other viewers' updates. When the broadcast
// subscription fails the store falls back to watching storage.
func (s *Store) Start(ctx context.Context) error {
	var closers []io.Closer
	watch := s.watchStorage

	sub, err := s.channel.Subscribe(ctx, s.roomID, s.HandleBroadcast)
	if err != nil {
		s.logger.Warn().Err(err).Msg("broadcast unavailable, falling back to storage watch")
		watch = true
	} else {
		closers = append(closers, sub)
	}

	if watch {
		watcher, werr := s.channel.Watch(ctx, s.roomID, s.HandleStorageChange)
		if werr != nil {
			if err != nil {
				return errors.Join(ErrNoInboundPath, err, werr)
			}
			s.logger.Warn().Err(werr).Msg("storage watch unavailable")
		} else {
			closers = append(closers, watcher)
		}
	}

	s.mu.Lock()
	s.closers = append(s.closers, closers...)
	s.mu.Unlock()
	return nil
}

// Close stops receiving updates
func (s *Store) Close() error {
	s.mu.Lock()
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Rolls returns the current history, newest first
func (s *Store) Rolls() models.Rolls {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(models.Rolls, len(s.rolls))
	copy(out, s.rolls)
	return out
}

// Subscribe registers a listener for history changes
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// AddRoll puts a roll at the head of the history, persists the whole list and
// broadcasts it. The roll stays in this viewer's history even when
// persisting or broadcasting fails; the returned error then wraps
// ErrPersistFailed and/or ErrBroadcastFailed.
func (s *Store) AddRoll(ctx context.Context, roll models.Roll) error {
	if roll == nil {
		return ErrNilRoll
	}
	if err := s.Load(ctx); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.swapMu.Lock()
	s.mu.Lock()
	updated := make(models.Rolls, 0, len(s.rolls)+1)
	updated = append(updated, roll)
	updated = append(updated, s.rolls...)
	s.rolls = updated
	s.mu.Unlock()
	s.notify(updated)
	s.swapMu.Unlock()

	return s.persistAndBroadcast(ctx, updated)
}

// ClearAll empties the history and propagates the empty list like AddRoll
func (s *Store) ClearAll(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	empty := models.Rolls{}

	s.replace(empty)
	return s.persistAndBroadcast(ctx, empty)
}

// HandleBroadcast replaces the history with one received from another viewer.
// Own broadcasts and malformed payloads are ignored.
func (s *Store) HandleBroadcast(msg Message) {
	if msg.Origin == s.viewerID {
		return
	}

	rolls, err := decodeRolls(msg.Payload)
	if err != nil {
		s.logger.Warn().Err(err).Str("origin", msg.Origin).Msg("discarding broadcast")
		return
	}
	s.replace(rolls)
}

// HandleStorageChange replaces the history with a value another viewer
// persisted. Changes to other keys, deletions, this viewer's own last write
// and malformed values are ignored.
func (s *Store) HandleStorageChange(key string, value []byte) {
	if key != StorageKey(s.roomID) || value == nil {
		return
	}

	s.mu.RLock()
	own := s.lastWritten != nil && bytes.Equal(value, s.lastWritten)
	s.mu.RUnlock()
	if own {
		return
	}

	rolls, err := decodeRolls(value)
	if err != nil {
		s.logger.Warn().Err(err).Msg("discarding storage change")
		return
	}
	s.replace(rolls)
}

func (s *Store) replace(rolls models.Rolls) {
	s.swapMu.Lock()
	defer s.swapMu.Unlock()

	s.mu.Lock()
	s.rolls = rolls
	s.loaded = true
	s.mu.Unlock()

	s.notify(rolls)
}

func (s *Store) persistAndBroadcast(ctx context.Context, rolls models.Rolls) error {
	payload, err := json.Marshal(rolls)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	s.mu.Lock()
	s.lastWritten = payload
	s.mu.Unlock()

	var errs []error
	if err := s.channel.Write(ctx, s.roomID, payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist room history")
		errs = append(errs, fmt.Errorf("%w: %w", ErrPersistFailed, err))
	}

	msg := Message{Origin: s.viewerID, Payload: payload}
	if err := s.channel.Publish(ctx, s.roomID, msg); err != nil {
		s.logger.Error().Err(err).Msg("failed to broadcast room history")
		errs = append(errs, fmt.Errorf("%w: %w", ErrBroadcastFailed, err))
	}

	return errors.Join(errs...)
}

func (s *Store) notify(rolls models.Rolls) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, id := range sortedKeys(s.listeners) {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		snapshot := make(models.Rolls, len(rolls))
		copy(snapshot, rolls)
		l(snapshot)
	}
}

func decodeRolls(payload []byte) (models.Rolls, error) {
	var rolls models.Rolls
	if err := json.Unmarshal(payload, &rolls); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if rolls == nil {
		rolls = models.Rolls{}
	}
	return rolls, nil
}
