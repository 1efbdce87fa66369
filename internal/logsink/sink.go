// Package logsink assigns ordered IDs to worker log records and fans them
// out to UI subscribers.
package logsink

import (
	"log"
	"sync"
	"time"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

// subscriber channel capacity. Slow subscribers drop records rather than
// block the producer.
const subBuffer = 256

// Sink serializes log record ID assignment and broadcasts records to all
// current subscribers. Delivery is best-effort: publishing never blocks
// and never fails the operation that produced the record.
type Sink struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string]chan models.LogRecord
}

// New creates an empty sink. The first record gets ID 1.
func New() *Sink {
	return &Sink{subs: make(map[string]chan models.LogRecord)}
}

// NextID returns the next record ID. IDs are strictly increasing with no
// gaps or repeats, across any interleaving of concurrent producers.
func (s *Sink) NextID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

// Emit builds a record for the given category and message, stamps it with
// the next ID and the current time, and publishes it.
func (s *Sink) Emit(category models.LogCategory, message string) models.LogRecord {
	rec := models.LogRecord{
		ID:        s.NextID(),
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Category:  category,
	}
	s.Publish(rec)
	return rec
}

// Publish delivers a record to all current subscribers. A subscriber that
// can't keep up has the record dropped; the drop goes to the stdlib log as
// a fallback so the audit trail is never silently lost.
func (s *Sink) Publish(rec models.LogRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ch := range s.subs {
		select {
		case ch <- rec:
		default:
			log.Printf("[logsink] subscriber %s not keeping up, dropped record %d (%s)", id, rec.ID, rec.Category)
		}
	}
}

// Subscribe creates a record subscription for the given subscriber ID.
func (s *Sink) Subscribe(id string) <-chan models.LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan models.LogRecord, subBuffer)
	s.subs[id] = ch
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Sink) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
}
