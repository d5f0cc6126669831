package room

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rolltogether/internal/roomsync"
)

// ErrWatchDisabled is returned by Watch when polling is turned off
var ErrWatchDisabled = errors.New("storage watch is disabled")

// Config holds configuration for the Redis room channel
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// PollInterval is how often Watch re-reads a room's history; zero disables Watch
	PollInterval time.Duration

	Logger zerolog.Logger
}

// envelope is the wire format published on a room topic
type envelope struct {
	Origin string          `json:"origin"`
	Rolls  json.RawMessage `json:"rolls"`
}

// redisChannel implements roomsync.Channel on Redis strings and pub/sub
type redisChannel struct {
	client       *redis.Client
	pollInterval time.Duration
	logger       zerolog.Logger
}

// NewRedis creates a new Redis-backed room channel
func NewRedis(cfg *Config) (*redisChannel, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisChannel{
		client:       cfg.RedisClient,
		pollInterval: cfg.PollInterval,
		logger:       cfg.Logger.With().Str("component", "room_channel").Logger(),
	}, nil
}

// Read returns a room's persisted history, or nil if there is none
func (r *redisChannel) Read(ctx context.Context, roomID string) ([]byte, error) {
	if roomID == "" {
		return nil, errors.New("room ID cannot be empty")
	}

	value, err := r.client.Get(ctx, roomsync.StorageKey(roomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get room history: %w", err)
	}

	return value, nil
}

// Write replaces a room's persisted history
func (r *redisChannel) Write(ctx context.Context, roomID string, payload []byte) error {
	if roomID == "" {
		return errors.New("room ID cannot be empty")
	}

	// No expiration, history lives until cleared
	if err := r.client.Set(ctx, roomsync.StorageKey(roomID), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save room history: %w", err)
	}

	return nil
}

// Publish sends a room's history to every subscriber of its topic
func (r *redisChannel) Publish(ctx context.Context, roomID string, msg roomsync.Message) error {
	if roomID == "" {
		return errors.New("room ID cannot be empty")
	}

	data, err := json.Marshal(envelope{Origin: msg.Origin, Rolls: msg.Payload})
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast: %w", err)
	}

	if err := r.client.Publish(ctx, roomsync.Topic(roomID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish room history: %w", err)
	}

	return nil
}

// Subscribe delivers a room's broadcasts until ctx ends or the closer is closed
func (r *redisChannel) Subscribe(ctx context.Context, roomID string, handler func(roomsync.Message)) (io.Closer, error) {
	if roomID == "" {
		return nil, errors.New("room ID cannot be empty")
	}

	topic := roomsync.Topic(roomID)
	pubsub := r.client.Subscribe(ctx, topic)

	// Wait for the subscription to be confirmed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	closer := newCloser(ctx, pubsub.Close)
	messages := pubsub.Channel()

	go func() {
		for m := range messages {
			var env envelope
			if err := json.Unmarshal([]byte(m.Payload), &env); err != nil {
				r.logger.Warn().Err(err).Str("topic", topic).Msg("dropping malformed broadcast")
				continue
			}
			handler(roomsync.Message{Origin: env.Origin, Payload: env.Rolls})
		}
	}()

	return closer, nil
}

// Watch polls a room's persisted history and reports every change
func (r *redisChannel) Watch(ctx context.Context, roomID string, handler roomsync.StorageChangeFunc) (io.Closer, error) {
	if roomID == "" {
		return nil, errors.New("room ID cannot be empty")
	}
	if r.pollInterval <= 0 {
		return nil, ErrWatchDisabled
	}

	last, err := r.Read(ctx, roomID)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	closer := newCloser(ctx, func() error {
		close(done)
		return nil
	})
	key := roomsync.StorageKey(roomID)

	go func() {
		ticker := time.NewTicker(r.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
			}

			value, err := r.Read(ctx, roomID)
			if err != nil {
				r.logger.Warn().Err(err).Str("room_id", roomID).Msg("failed to poll room history")
				continue
			}
			if bytes.Equal(value, last) {
				continue
			}
			last = value
			handler(key, value)
		}
	}()

	return closer, nil
}

// closer runs stop once, on Close or when ctx ends
type closer struct {
	once sync.Once
	stop func() error
	err  error
	done chan struct{}
}

func newCloser(ctx context.Context, stop func() error) *closer {
	c := &closer{stop: stop, done: make(chan struct{})}

	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-c.done:
		}
	}()

	return c
}

func (c *closer) Close() error {
	c.once.Do(func() {
		close(c.done)
		c.err = c.stop()
	})
	return c.err
}
