package syncer

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hospguardian/internal/monitoring"
)

// queueKey holds the offline queue, under the same namespace as the
// entity collections so a full wipe also clears it
const queueKey = "hospguardian_sync_queue"

// QueueEntry is a change buffered while connectivity is unavailable
type QueueEntry struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"` // unix milliseconds
}

// QueueStore is the slice of the key-value store the broadcaster needs
// for persisting the offline queue
type QueueStore interface {
	Get(key string, out interface{}) bool
	Put(key string, v interface{}) error
}

// Sender receives every broadcast message for delivery to remote views
// (the websocket hub). It may drop messages; delivery is advisory.
type Sender interface {
	Send(msg Message)
}

// Broadcaster delivers entity-change notifications to every subscribed
// view and buffers changes in a persisted queue while offline. The cloud
// push is a stand-in: it always succeeds when online and always queues
// when offline; on reconnect the queue is cleared, not replayed.
type Broadcaster struct {
	// mu guards the subscriber registry, the connectivity flag and every
	// queue read-modify-write; handlers run concurrently and an
	// unserialized load/append/put loses queued changes.
	mu      sync.Mutex
	subs    map[int]func(Message)
	nextSub int
	online  bool

	queue   QueueStore
	sender  Sender
	metrics *monitoring.Metrics
	log     zerolog.Logger
	nowMs   func() int64
}

// NewBroadcaster creates a broadcaster that starts online
func NewBroadcaster(queue QueueStore, metrics *monitoring.Metrics, log zerolog.Logger) *Broadcaster {
	b := &Broadcaster{
		subs:    make(map[int]func(Message)),
		online:  true,
		queue:   queue,
		metrics: metrics,
		log:     log,
		nowMs:   func() int64 { return time.Now().UnixMilli() },
	}
	metrics.SetQueueDepth(b.QueueCount())
	return b
}

// AttachSender wires the remote fan-out (websocket hub)
func (b *Broadcaster) AttachSender(s Sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sender = s
}

// Subscribe registers a listener for every broadcast message and returns
// its unsubscribe function. Every listener receives every message; there
// is no single-subscriber replacement semantics.
func (b *Broadcaster) Subscribe(fn func(Message)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Notify delivers a change to all subscribers and the remote sender, then
// pushes it to the cloud stand-in (queueing when offline)
func (b *Broadcaster) Notify(eventType string, data interface{}) {
	msg := Message{Type: eventType, Timestamp: b.nowMs(), Data: data}

	b.mu.Lock()
	listeners := make([]func(Message), 0, len(b.subs))
	for _, fn := range b.subs {
		listeners = append(listeners, fn)
	}
	sender := b.sender
	if !b.online {
		b.enqueueLocked(msg)
	}
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(msg)
	}
	if sender != nil {
		sender.Send(msg)
	}
}

// enqueueLocked appends to the persisted queue; callers hold b.mu
func (b *Broadcaster) enqueueLocked(msg Message) {
	entries := b.loadQueueLocked()
	entries = append(entries, QueueEntry{Type: msg.Type, Data: msg.Data, Timestamp: msg.Timestamp})
	if err := b.queue.Put(queueKey, entries); err != nil {
		b.log.Error().Err(err).Msg("failed to persist sync queue")
		return
	}
	b.metrics.SetQueueDepth(len(entries))
}

func (b *Broadcaster) loadQueueLocked() []QueueEntry {
	var entries []QueueEntry
	b.queue.Get(queueKey, &entries)
	return entries
}

// QueueCount returns how many changes are waiting for connectivity
func (b *Broadcaster) QueueCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.loadQueueLocked())
}

// Online reports the current connectivity flag
func (b *Broadcaster) Online() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.online
}

// SetOnline records a connectivity signal. An offline→online transition
// drains the queue unconditionally: entries are dropped (the simulated
// cloud accepts everything) and QUEUE_CLEARED is broadcast when any were
// pending.
func (b *Broadcaster) SetOnline(online bool) {
	b.mu.Lock()
	wasOnline := b.online
	b.online = online

	if !online || wasOnline {
		b.mu.Unlock()
		return
	}

	entries := b.loadQueueLocked()
	if len(entries) == 0 {
		b.mu.Unlock()
		return
	}
	if err := b.queue.Put(queueKey, []QueueEntry{}); err != nil {
		b.mu.Unlock()
		b.log.Error().Err(err).Msg("failed to clear sync queue")
		return
	}
	b.metrics.SetQueueDepth(0)
	b.mu.Unlock()

	b.log.Info().Int("pending", len(entries)).Msg("connectivity restored, sync queue drained")
	b.Notify(TypeQueueCleared, nil)
}
