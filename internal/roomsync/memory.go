package roomsync

import (
	"context"
	"io"
	"maps"
	"slices"
	"sync"
)

// memoryChannel is a process-local Channel. Delivery is synchronous and in
// registration order.
type memoryChannel struct {
	mu          sync.RWMutex
	values      map[string][]byte
	subscribers map[string]map[int]func(Message)
	watchers    map[string]map[int]StorageChangeFunc
	nextID      int
}

// NewMemoryChannel creates a Channel shared by every viewer in this process
func NewMemoryChannel() Channel {
	return &memoryChannel{
		values:      make(map[string][]byte),
		subscribers: make(map[string]map[int]func(Message)),
		watchers:    make(map[string]map[int]StorageChangeFunc),
	}
}

func (c *memoryChannel) Read(ctx context.Context, roomID string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.values[roomID]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (c *memoryChannel) Write(ctx context.Context, roomID string, payload []byte) error {
	c.mu.Lock()
	c.values[roomID] = append([]byte(nil), payload...)
	watchers := make([]StorageChangeFunc, 0, len(c.watchers[roomID]))
	for _, id := range sortedKeys(c.watchers[roomID]) {
		watchers = append(watchers, c.watchers[roomID][id])
	}
	c.mu.Unlock()

	key := StorageKey(roomID)
	for _, w := range watchers {
		w(key, append([]byte(nil), payload...))
	}
	return nil
}

func (c *memoryChannel) Publish(ctx context.Context, roomID string, msg Message) error {
	c.mu.RLock()
	handlers := make([]func(Message), 0, len(c.subscribers[roomID]))
	for _, id := range sortedKeys(c.subscribers[roomID]) {
		handlers = append(handlers, c.subscribers[roomID][id])
	}
	c.mu.RUnlock()

	for _, h := range handlers {
		h(Message{Origin: msg.Origin, Payload: append([]byte(nil), msg.Payload...)})
	}
	return nil
}

func (c *memoryChannel) Subscribe(ctx context.Context, roomID string, handler func(Message)) (io.Closer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	if c.subscribers[roomID] == nil {
		c.subscribers[roomID] = make(map[int]func(Message))
	}
	c.subscribers[roomID][id] = handler

	return c.closer(ctx, func() {
		delete(c.subscribers[roomID], id)
	}), nil
}

func (c *memoryChannel) Watch(ctx context.Context, roomID string, handler StorageChangeFunc) (io.Closer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	if c.watchers[roomID] == nil {
		c.watchers[roomID] = make(map[int]StorageChangeFunc)
	}
	c.watchers[roomID][id] = handler

	return c.closer(ctx, func() {
		delete(c.watchers[roomID], id)
	}), nil
}

// closer runs remove under the channel lock once, on Close or when ctx ends
func (c *memoryChannel) closer(ctx context.Context, remove func()) io.Closer {
	var once sync.Once
	done := make(chan struct{})
	stop := func() {
		once.Do(func() {
			close(done)
			c.mu.Lock()
			remove()
			c.mu.Unlock()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()

	return closerFunc(func() error {
		stop()
		return nil
	})
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func sortedKeys[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}
