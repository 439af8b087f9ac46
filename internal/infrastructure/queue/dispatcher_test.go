package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ballotportal/election-api/internal/core/domain"
)

type recordingAudit struct {
	mu      sync.Mutex
	records []domain.VoteAuditRecord
	done    chan struct{}
	want    int
	err     error
}

func newRecordingAudit(want int) *recordingAudit {
	return &recordingAudit{done: make(chan struct{}), want: want}
}

func (a *recordingAudit) Record(_ context.Context, r domain.VoteAuditRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, r)
	if len(a.records) == a.want {
		close(a.done)
	}
	return a.err
}

// blockingAudit never returns until release is closed.
type blockingAudit struct {
	release chan struct{}
}

func (a *blockingAudit) Record(ctx context.Context, _ domain.VoteAuditRecord) error {
	select {
	case <-a.release:
	case <-ctx.Done():
	}
	return nil
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, newRecordingAudit(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(4, newRecordingAudit(0), zerolog.Nop())
	first := d.shardIndex("period-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("period-42"); got != first {
			t.Fatalf("shard changed: %d != %d", got, first)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard out of range: %d", first)
	}
}

func TestDispatcher_PreservesPeriodOrder(t *testing.T) {
	audit := newRecordingAudit(20)
	d := NewDispatcher(4, audit, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 20; i++ {
		rec := domain.VoteAuditRecord{VoteID: string(rune('a' + i)), PeriodID: "p-1"}
		if !d.Enqueue(rec) {
			t.Fatalf("enqueue %d dropped", i)
		}
	}

	select {
	case <-audit.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for audit records")
	}

	audit.mu.Lock()
	defer audit.mu.Unlock()
	for i, r := range audit.records {
		if r.VoteID != string(rune('a'+i)) {
			t.Fatalf("position %d: expected %q, got %q", i, string(rune('a'+i)), r.VoteID)
		}
	}
}

func TestDispatcher_WorkerErrorDoesNotStop(t *testing.T) {
	audit := newRecordingAudit(2)
	audit.err = errors.New("boom")
	d := NewDispatcher(1, audit, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.VoteAuditRecord{VoteID: "v1", PeriodID: "p"})
	d.Enqueue(domain.VoteAuditRecord{VoteID: "v2", PeriodID: "p"})

	select {
	case <-audit.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker stopped after an error")
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	audit := &blockingAudit{release: make(chan struct{})}
	defer close(audit.release)
	d := NewDispatcher(1, audit, zerolog.Nop())

	// Workers are not started, so the channel fills up.
	for i := 0; i < channelBuffer; i++ {
		if !d.Enqueue(domain.VoteAuditRecord{VoteID: "v", PeriodID: "p"}) {
			t.Fatalf("record %d dropped before the buffer was full", i)
		}
	}
	if d.Enqueue(domain.VoteAuditRecord{VoteID: "overflow", PeriodID: "p"}) {
		t.Fatalf("expected overflow record to be dropped")
	}
}
