// Package queue holds the asynchronous audit-log writer. Audit entries are a
// fire-and-forget side effect: a slow or failing database write must never
// delay or fail the request that produced the entry.
package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/api/metrics"
	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

const defaultBuffer = 512

// AuditWriter drains a bounded queue of audit entries into the repository.
// Record never blocks: when the queue is full the entry is dropped and counted.
type AuditWriter struct {
	queue chan domain.AuditEntry
	repo  ports.AuditRepository
	log   zerolog.Logger
}

// NewAuditWriter creates an AuditWriter with the given queue capacity.
// If buffer <= 0, defaultBuffer is used.
func NewAuditWriter(buffer int, repo ports.AuditRepository, log zerolog.Logger) *AuditWriter {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &AuditWriter{
		queue: make(chan domain.AuditEntry, buffer),
		repo:  repo,
		log:   log,
	}
}

// Start launches the writer goroutine. It stops when ctx is cancelled.
func (w *AuditWriter) Start(ctx context.Context) {
	go w.run(ctx)
}

// Record enqueues an entry without blocking. Implements ports.AuditSink.
func (w *AuditWriter) Record(entry domain.AuditEntry) {
	select {
	case w.queue <- entry:
		metrics.AuditQueueDepth.Set(float64(len(w.queue)))
	default:
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		w.log.Warn().Str("action", entry.Action).Msg("audit queue full, entry dropped")
	}
}

func (w *AuditWriter) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case entry := <-w.queue:
			w.write(ctx, entry)
		}
	}
}

// drain flushes whatever is still queued at shutdown, with a detached context
// so cancellation does not abort the writes.
func (w *AuditWriter) drain() {
	for {
		select {
		case entry := <-w.queue:
			w.write(context.Background(), entry)
		default:
			return
		}
	}
}

func (w *AuditWriter) write(ctx context.Context, entry domain.AuditEntry) {
	metrics.AuditQueueDepth.Set(float64(len(w.queue)))
	if err := w.repo.Insert(ctx, &entry); err != nil {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		w.log.Error().Err(err).
			Str("action", entry.Action).
			Str("actor_id", entry.ActorID).
			Msg("audit write failed")
		return
	}
	metrics.AuditEventsTotal.WithLabelValues("written").Inc()
}

// NopSink discards every entry. Used in tests and tools that do not audit.
type NopSink struct{}

func (NopSink) Record(domain.AuditEntry) {}
