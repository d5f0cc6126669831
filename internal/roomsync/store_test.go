package roomsync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rolltogether/internal/models"
)

// brokenChannel wraps a Channel and fails selected operations
type brokenChannel struct {
	Channel
	readErr      error
	writeErr     error
	publishErr   error
	subscribeErr error
	watchErr     error
}

func (c *brokenChannel) Read(ctx context.Context, roomID string) ([]byte, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	return c.Channel.Read(ctx, roomID)
}

func (c *brokenChannel) Write(ctx context.Context, roomID string, payload []byte) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	return c.Channel.Write(ctx, roomID, payload)
}

func (c *brokenChannel) Publish(ctx context.Context, roomID string, msg Message) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	return c.Channel.Publish(ctx, roomID, msg)
}

func (c *brokenChannel) Subscribe(ctx context.Context, roomID string, handler func(Message)) (io.Closer, error) {
	if c.subscribeErr != nil {
		return nil, c.subscribeErr
	}
	return c.Channel.Subscribe(ctx, roomID, handler)
}

func (c *brokenChannel) Watch(ctx context.Context, roomID string, handler StorageChangeFunc) (io.Closer, error) {
	if c.watchErr != nil {
		return nil, c.watchErr
	}
	return c.Channel.Watch(ctx, roomID, handler)
}

type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	cancel  context.CancelFunc
	channel Channel
	testNow time.Time
	roomID  string
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.channel = NewMemoryChannel()
	s.testNow = time.Date(2025, 5, 2, 20, 0, 0, 0, time.UTC)
	s.roomID = "test-room"
}

func (s *StoreTestSuite) TearDownTest() {
	s.cancel()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) newStore(channel Channel, viewerID string) *Store {
	store, err := New(&Config{
		RoomID:   s.roomID,
		Channel:  channel,
		ViewerID: viewerID,
	})
	s.Require().NoError(err)
	return store
}

func (s *StoreTestSuite) startedStore(viewerID string) *Store {
	store := s.newStore(s.channel, viewerID)
	s.Require().NoError(store.Load(s.ctx))
	s.Require().NoError(store.Start(s.ctx))
	s.T().Cleanup(func() { store.Close() })
	return store
}

func (s *StoreTestSuite) genericRoll(id string, value int) *models.GenericRoll {
	return &models.GenericRoll{
		RollBase: models.RollBase{
			ID:             id,
			RoomID:         s.roomID,
			RollerNickname: "tester",
			Timestamp:      s.testNow,
		},
		SelectedDice:    []string{"d6"},
		Results:         []models.GenericDieRoll{{DieType: "d6", Value: value}},
		TotalDiceRolled: 1,
	}
}

func rollIDs(rolls models.Rolls) []string {
	ids := make([]string, len(rolls))
	for i, r := range rolls {
		ids[i] = r.Base().ID
	}
	return ids
}

func (s *StoreTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Channel: s.channel})
	s.ErrorIs(err, ErrRoomIDRequired)

	_, err = New(&Config{RoomID: s.roomID})
	s.ErrorIs(err, ErrNilChannel)

	store, err := New(&Config{RoomID: s.roomID, Channel: s.channel})
	s.Require().NoError(err)
	s.NotEmpty(store.ViewerID())
	s.Equal(s.roomID, store.RoomID())
}

func (s *StoreTestSuite) TestLoadEmptyRoom() {
	store := s.newStore(s.channel, "viewer-a")
	s.False(store.Loaded())

	s.Require().NoError(store.Load(s.ctx))

	s.True(store.Loaded())
	s.Empty(store.Rolls())
}

func (s *StoreTestSuite) TestLoadReadsPersistedHistory() {
	payload, err := json.Marshal(models.Rolls{s.genericRoll("r2", 4), s.genericRoll("r1", 2)})
	s.Require().NoError(err)
	s.Require().NoError(s.channel.Write(s.ctx, s.roomID, payload))

	store := s.newStore(s.channel, "viewer-a")
	s.Require().NoError(store.Load(s.ctx))

	s.Equal([]string{"r2", "r1"}, rollIDs(store.Rolls()))
}

func (s *StoreTestSuite) TestLoadDiscardsMalformedHistory() {
	s.Require().NoError(s.channel.Write(s.ctx, s.roomID, []byte(`{broken`)))

	store := s.newStore(s.channel, "viewer-a")
	s.Require().NoError(store.Load(s.ctx))

	s.True(store.Loaded())
	s.Empty(store.Rolls())
}

func (s *StoreTestSuite) TestLoadReadFailureLeavesStoreUninitialized() {
	channel := &brokenChannel{Channel: s.channel, readErr: errors.New("disk gone")}
	store := s.newStore(channel, "viewer-a")

	err := store.Load(s.ctx)

	s.Require().Error(err)
	s.False(store.Loaded())
}

func (s *StoreTestSuite) TestAddRollPutsNewestFirstAndPersists() {
	store := s.startedStore("viewer-a")

	s.Require().NoError(store.AddRoll(s.ctx, s.genericRoll("r1", 3)))
	s.Require().NoError(store.AddRoll(s.ctx, s.genericRoll("r2", 5)))

	s.Equal([]string{"r2", "r1"}, rollIDs(store.Rolls()))

	persisted, err := s.channel.Read(s.ctx, s.roomID)
	s.Require().NoError(err)
	var decoded models.Rolls
	s.Require().NoError(json.Unmarshal(persisted, &decoded))
	s.Equal([]string{"r2", "r1"}, rollIDs(decoded))
}

func (s *StoreTestSuite) TestAddRollLoadsUninitializedStore() {
	payload, err := json.Marshal(models.Rolls{s.genericRoll("old", 1)})
	s.Require().NoError(err)
	s.Require().NoError(s.channel.Write(s.ctx, s.roomID, payload))

	store := s.newStore(s.channel, "viewer-a")
	s.Require().NoError(store.AddRoll(s.ctx, s.genericRoll("new", 6)))

	s.Equal([]string{"new", "old"}, rollIDs(store.Rolls()))
}

func (s *StoreTestSuite) TestAddRollRejectsNil() {
	store := s.startedStore("viewer-a")
	s.ErrorIs(store.AddRoll(s.ctx, nil), ErrNilRoll)
}

func (s *StoreTestSuite) TestClearAllEmptiesHistory() {
	store := s.startedStore("viewer-a")
	s.Require().NoError(store.AddRoll(s.ctx, s.genericRoll("r1", 3)))

	s.Require().NoError(store.ClearAll(s.ctx))

	s.Empty(store.Rolls())
	persisted, err := s.channel.Read(s.ctx, s.roomID)
	s.Require().NoError(err)
	s.JSONEq(`[]`, string(persisted))
}

func (s *StoreTestSuite) TestBroadcastReachesOtherViewers() {
	viewerA := s.startedStore("viewer-a")
	viewerB := s.startedStore("viewer-b")

	s.Require().NoError(viewerA.AddRoll(s.ctx, s.genericRoll("r1", 3)))

	s.Equal([]string{"r1"}, rollIDs(viewerB.Rolls()))

	s.Require().NoError(viewerB.ClearAll(s.ctx))

	s.Empty(viewerA.Rolls())
}

func (s *StoreTestSuite) TestRoomsAreIsolated() {
	viewerA := s.startedStore("viewer-a")

	other, err := New(&Config{RoomID: "other-room", Channel: s.channel, ViewerID: "viewer-b"})
	s.Require().NoError(err)
	s.Require().NoError(other.Load(s.ctx))
	s.Require().NoError(other.Start(s.ctx))
	defer other.Close()

	s.Require().NoError(viewerA.AddRoll(s.ctx, s.genericRoll("r1", 3)))

	s.Empty(other.Rolls())
}

func (s *StoreTestSuite) TestLastWriterWins() {
	viewerA := s.startedStore("viewer-a")
	viewerB := s.newStore(s.channel, "viewer-b")
	s.Require().NoError(viewerB.Load(s.ctx))

	// viewer B adds while not yet subscribed, so it never saw A's roll
	s.Require().NoError(viewerA.AddRoll(s.ctx, s.genericRoll("from-a", 1)))
	s.Require().NoError(viewerB.AddRoll(s.ctx, s.genericRoll("from-b", 2)))

	s.Equal([]string{"from-b"}, rollIDs(viewerA.Rolls()))
}

func (s *StoreTestSuite) TestOwnBroadcastIsIgnored() {
	store := s.startedStore("viewer-a")
	s.Require().NoError(store.AddRoll(s.ctx, s.genericRoll("r1", 3)))

	payload, err := json.Marshal(models.Rolls{})
	s.Require().NoError(err)
	store.HandleBroadcast(Message{Origin: "viewer-a", Payload: payload})

	s.Equal([]string{"r1"}, rollIDs(store.Rolls()))
}

func (s *StoreTestSuite) TestMalformedBroadcastKeepsLastKnownGood() {
	store := s.startedStore("viewer-a")
	s.Require().NoError(store.AddRoll(s.ctx, s.genericRoll("r1", 3)))

	store.HandleBroadcast(Message{Origin: "viewer-b", Payload: []byte(`[{"rollType":"tarot"}]`)})
	store.HandleBroadcast(Message{Origin: "viewer-b", Payload: []byte(`not json`)})

	s.Equal([]string{"r1"}, rollIDs(store.Rolls()))
}

func (s *StoreTestSuite) TestStorageChangeReplacesHistory() {
	store := s.newStore(s.channel, "viewer-a")
	s.Require().NoError(store.Load(s.ctx))

	payload, err := json.Marshal(models.Rolls{s.genericRoll("remote", 6)})
	s.Require().NoError(err)

	store.HandleStorageChange("unrelated-key", payload)
	s.Empty(store.Rolls())

	store.HandleStorageChange(StorageKey(s.roomID), nil)
	s.Empty(store.Rolls())

	store.HandleStorageChange(StorageKey(s.roomID), payload)
	s.Equal([]string{"remote"}, rollIDs(store.Rolls()))

	store.HandleStorageChange(StorageKey(s.roomID), []byte(`{broken`))
	s.Equal([]string{"remote"}, rollIDs(store.Rolls()))
}

func (s *StoreTestSuite) TestFallsBackToStorageWatchWhenBroadcastUnavailable() {
	broken := &brokenChannel{Channel: s.channel, subscribeErr: errors.New("no broadcast")}

	watcher := s.newStore(broken, "viewer-b")
	s.Require().NoError(watcher.Load(s.ctx))
	s.Require().NoError(watcher.Start(s.ctx))
	defer watcher.Close()

	writer := s.startedStore("viewer-a")
	s.Require().NoError(writer.AddRoll(s.ctx, s.genericRoll("r1", 3)))

	s.Equal([]string{"r1"}, rollIDs(watcher.Rolls()))
}

func (s *StoreTestSuite) TestStartFailsWithoutAnyInboundPath() {
	broken := &brokenChannel{
		Channel:      s.channel,
		subscribeErr: errors.New("no broadcast"),
		watchErr:     errors.New("no watch"),
	}
	store := s.newStore(broken, "viewer-a")

	s.ErrorIs(store.Start(s.ctx), ErrNoInboundPath)
}

func (s *StoreTestSuite) TestWriteFailureKeepsLocalState() {
	broken := &brokenChannel{
		Channel:    s.channel,
		writeErr:   errors.New("quota exceeded"),
		publishErr: errors.New("channel closed"),
	}
	store := s.newStore(broken, "viewer-a")
	s.Require().NoError(store.Load(s.ctx))

	err := store.AddRoll(s.ctx, s.genericRoll("r1", 3))

	s.Require().Error(err)
	s.ErrorIs(err, ErrPersistFailed)
	s.ErrorIs(err, ErrBroadcastFailed)
	s.Equal([]string{"r1"}, rollIDs(store.Rolls()))
}

func (s *StoreTestSuite) TestListenersSeeEveryChange() {
	viewerA := s.startedStore("viewer-a")
	viewerB := s.startedStore("viewer-b")

	var seen [][]string
	unsubscribe := viewerB.Subscribe(func(rolls models.Rolls) {
		seen = append(seen, rollIDs(rolls))
	})

	s.Require().NoError(viewerA.AddRoll(s.ctx, s.genericRoll("r1", 3)))
	s.Require().NoError(viewerB.AddRoll(s.ctx, s.genericRoll("r2", 4)))
	s.Require().NoError(viewerA.ClearAll(s.ctx))

	unsubscribe()
	s.Require().NoError(viewerA.AddRoll(s.ctx, s.genericRoll("r3", 5)))

	s.Equal([][]string{{"r1"}, {"r2", "r1"}, {}}, seen)
}

func (s *StoreTestSuite) TestConcurrentBroadcastsLeaveListenersInStep() {
	first, err := json.Marshal(models.Rolls{s.genericRoll("a1", 1)})
	s.Require().NoError(err)
	second, err := json.Marshal(models.Rolls{s.genericRoll("b1", 2), s.genericRoll("b2", 3)})
	s.Require().NoError(err)

	for i := 0; i < 500; i++ {
		store := s.newStore(s.channel, "viewer-c")

		var (
			mu   sync.Mutex
			last []string
		)
		store.Subscribe(func(rolls models.Rolls) {
			mu.Lock()
			last = rollIDs(rolls)
			mu.Unlock()
		})

		var wg sync.WaitGroup
		for _, payload := range [][]byte{first, second} {
			wg.Add(1)
			go func(payload []byte) {
				defer wg.Done()
				store.HandleBroadcast(Message{Origin: "viewer-a", Payload: payload})
			}(payload)
		}
		wg.Wait()

		mu.Lock()
		s.Require().Equal(rollIDs(store.Rolls()), last, "iteration %d", i)
		mu.Unlock()
	}
}

func (s *StoreTestSuite) TestCloseStopsUpdates() {
	viewerA := s.startedStore("viewer-a")
	viewerB := s.newStore(s.channel, "viewer-b")
	s.Require().NoError(viewerB.Load(s.ctx))
	s.Require().NoError(viewerB.Start(s.ctx))

	s.Require().NoError(viewerB.Close())
	s.Require().NoError(viewerA.AddRoll(s.ctx, s.genericRoll("r1", 3)))

	s.Empty(viewerB.Rolls())
}
