package syncer

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memQueue is an in-memory QueueStore
type memQueue struct {
	values map[string][]byte
}

func newMemQueue() *memQueue {
	return &memQueue{values: make(map[string][]byte)}
}

func (q *memQueue) Get(key string, out interface{}) bool {
	raw, ok := q.values[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (q *memQueue) Put(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	q.values[key] = raw
	return nil
}

func newTestBroadcaster() *Broadcaster {
	return NewBroadcaster(newMemQueue(), nil, zerolog.Nop())
}

func TestNotifyReachesEverySubscriber(t *testing.T) {
	b := newTestBroadcaster()

	var first, second []string
	b.Subscribe(func(msg Message) { first = append(first, msg.Type) })
	b.Subscribe(func(msg Message) { second = append(second, msg.Type) })

	b.Notify(TypeAssetsUpdated, nil)
	b.Notify(TypeStockUpdated, nil)

	assert.Equal(t, []string{TypeAssetsUpdated, TypeStockUpdated}, first)
	assert.Equal(t, []string{TypeAssetsUpdated, TypeStockUpdated}, second)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := newTestBroadcaster()

	var got []string
	unsubscribe := b.Subscribe(func(msg Message) { got = append(got, msg.Type) })
	b.Notify(TypeAssetsUpdated, nil)
	unsubscribe()
	b.Notify(TypeStockUpdated, nil)

	assert.Equal(t, []string{TypeAssetsUpdated}, got)
}

func TestOnlineChangesAreNotQueued(t *testing.T) {
	b := newTestBroadcaster()

	b.Notify(TypeAssetsUpdated, nil)
	assert.Zero(t, b.QueueCount())
	assert.True(t, b.Online())
}

func TestOfflineChangesQueueInOrder(t *testing.T) {
	b := newTestBroadcaster()
	b.SetOnline(false)

	b.Notify(TypeAssetsUpdated, map[string]string{"id": "AST-1"})
	b.Notify(TypeOrderCreated, nil)
	b.Notify(TypeStockUpdated, nil)

	require.Equal(t, 3, b.QueueCount())
	b.mu.Lock()
	entries := b.loadQueueLocked()
	b.mu.Unlock()
	assert.Equal(t, TypeAssetsUpdated, entries[0].Type)
	assert.Equal(t, TypeOrderCreated, entries[1].Type)
	assert.Equal(t, TypeStockUpdated, entries[2].Type)
	assert.False(t, b.Online())
}

func TestReconnectDrainsQueueAndAnnounces(t *testing.T) {
	b := newTestBroadcaster()

	var got []string
	b.Subscribe(func(msg Message) { got = append(got, msg.Type) })

	b.SetOnline(false)
	b.Notify(TypeAssetsUpdated, nil)
	b.Notify(TypeStockUpdated, nil)
	require.Equal(t, 2, b.QueueCount())

	b.SetOnline(true)

	assert.Zero(t, b.QueueCount())
	assert.True(t, b.Online())
	// queued entries are dropped, not replayed; only the drain is announced
	assert.Equal(t, []string{TypeAssetsUpdated, TypeStockUpdated, TypeQueueCleared}, got)
}

func TestReconnectWithEmptyQueueStaysQuiet(t *testing.T) {
	b := newTestBroadcaster()

	var got []string
	b.Subscribe(func(msg Message) { got = append(got, msg.Type) })

	b.SetOnline(false)
	b.SetOnline(true)

	assert.Empty(t, got)
}

func TestRepeatedOnlineSignalIsIdempotent(t *testing.T) {
	b := newTestBroadcaster()

	var got []string
	b.Subscribe(func(msg Message) { got = append(got, msg.Type) })

	b.SetOnline(true)
	b.SetOnline(true)

	assert.Empty(t, got)
	assert.True(t, b.Online())
}

func TestOfflineEnqueueConcurrent(t *testing.T) {
	b := newTestBroadcaster()
	b.SetOnline(false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Notify(TypeAssetsUpdated, nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, b.QueueCount())
}

func TestQueuePersistsAcrossBroadcasters(t *testing.T) {
	queue := newMemQueue()

	b := NewBroadcaster(queue, nil, zerolog.Nop())
	b.SetOnline(false)
	b.Notify(TypeAssetsUpdated, nil)

	// a fresh broadcaster over the same store sees the pending entries
	revived := NewBroadcaster(queue, nil, zerolog.Nop())
	assert.Equal(t, 1, revived.QueueCount())
}
