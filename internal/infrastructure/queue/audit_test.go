package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
)

type captureRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
	wrote   chan struct{}
}

func newCaptureRepo(err error) *captureRepo {
	return &captureRepo{err: err, wrote: make(chan struct{}, 64)}
}

func (r *captureRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() { r.wrote <- struct{}{} }()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *captureRepo) List(context.Context, ports.AuditFilter) ([]domain.AuditEntry, error) {
	return nil, nil
}

func (r *captureRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func waitWrites(t *testing.T, repo *captureRepo, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-repo.wrote:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for write %d of %d", i+1, n)
		}
	}
}

func TestAuditWriter_Writes(t *testing.T) {
	repo := newCaptureRepo(nil)
	w := NewAuditWriter(8, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	w.Record(domain.AuditEntry{Action: "login", ActorID: "u1"})
	w.Record(domain.AuditEntry{Action: "client_delete", ActorID: "u1"})

	waitWrites(t, repo, 2)
	if repo.count() != 2 {
		t.Fatalf("wrote %d entries, want 2", repo.count())
	}
}

func TestAuditWriter_RecordNeverBlocks(t *testing.T) {
	// Writer not started: the queue fills and overflow must be dropped, not
	// block the caller.
	w := NewAuditWriter(2, newCaptureRepo(nil), zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			w.Record(domain.AuditEntry{Action: fmt.Sprintf("a%d", i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}
}

func TestAuditWriter_RepoFailureSwallowed(t *testing.T) {
	repo := newCaptureRepo(errors.New("write failed"))
	w := NewAuditWriter(8, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	w.Record(domain.AuditEntry{Action: "login"})
	waitWrites(t, repo, 1)
	// No retry: a failed entry is gone.
	if repo.count() != 0 {
		t.Fatalf("failed write should not be stored, have %d", repo.count())
	}
}

func TestAuditWriter_DrainsOnShutdown(t *testing.T) {
	repo := newCaptureRepo(nil)
	w := NewAuditWriter(8, repo, zerolog.Nop())

	// Queue entries before the writer runs, then start it with a context
	// that cancels immediately. Everything queued must still land.
	for i := 0; i < 3; i++ {
		w.Record(domain.AuditEntry{Action: fmt.Sprintf("a%d", i)})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	waitWrites(t, repo, 3)
	if repo.count() != 3 {
		t.Fatalf("drained %d entries, want 3", repo.count())
	}
}
