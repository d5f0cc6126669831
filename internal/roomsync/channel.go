package roomsync

import (
	"context"
	"io"
)

const (
	storageKeyPrefix = "roll-together-room-"
	topicPrefix      = "room-"
)

// StorageKey is the durable key holding a room's persisted history
func StorageKey(roomID string) string {
	return storageKeyPrefix + roomID
}

// Topic is the broadcast topic carrying a room's history on every mutation
func Topic(roomID string) string {
	return topicPrefix + roomID
}

// Message is a broadcast of a room's full history
type Message struct {
	// Origin identifies the viewer that published the message
	Origin string

	// Payload is the JSON encoded history
	Payload []byte
}

// StorageChangeFunc receives the newly persisted value of a storage key
type StorageChangeFunc func(key string, value []byte)

// Channel is the durable storage and broadcast medium shared by the viewers of a room
type Channel interface {
	// Read returns the persisted history payload, or nil if the room has none
	Read(ctx context.Context, roomID string) ([]byte, error)

	// Write replaces the persisted history payload
	Write(ctx context.Context, roomID string, payload []byte) error

	// Publish broadcasts a message to the room's subscribers
	Publish(ctx context.Context, roomID string, msg Message) error

	// Subscribe delivers the room's broadcasts until ctx ends or the closer is closed
	Subscribe(ctx context.Context, roomID string, handler func(Message)) (io.Closer, error)

	// Watch delivers changes to the room's persisted value until ctx ends or the closer is closed
	Watch(ctx context.Context, roomID string, handler StorageChangeFunc) (io.Closer, error)
}
