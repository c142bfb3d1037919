package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"

	"github.com/crmdesk/portal/internal/api/metrics"
	"github.com/crmdesk/portal/internal/core/domain"
)

type stubActivityRepo struct {
	mu        sync.Mutex
	inserted  []domain.ActivityEvent
	insertErr error
	done      chan struct{}
}

func newStubActivityRepo(expected int) *stubActivityRepo {
	r := &stubActivityRepo{
		inserted: make([]domain.ActivityEvent, 0, expected),
		done:     make(chan struct{}),
	}
	if expected == 0 {
		close(r.done)
	}
	return r
}

func (r *stubActivityRepo) Insert(_ context.Context, e *domain.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *e)
	if len(r.inserted) == cap(r.inserted) {
		select {
		case <-r.done:
		default:
			close(r.done)
		}
	}
	return nil
}

func (r *stubActivityRepo) ListByUser(context.Context, string, int) ([]domain.ActivityEvent, error) {
	return nil, nil
}

func (r *stubActivityRepo) snapshot() []domain.ActivityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityEvent, len(r.inserted))
	copy(out, r.inserted)
	return out
}

func TestDispatcher_PersistsInOrderPerUser(t *testing.T) {
	repo := newStubActivityRepo(3)
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, id := range []int64{1, 2, 3} {
		d.Record(domain.ActivityEvent{Username: "alice", Action: domain.ActionCreate, Resource: domain.ResourceDeal, ResourceID: id})
	}

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events, got %d", len(repo.snapshot()))
	}

	got := repo.snapshot()
	for i, e := range got {
		if e.ResourceID != int64(i+1) {
			t.Fatalf("events out of order: %+v", got)
		}
	}

	cancel()
	d.Wait()
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(8, newStubActivityRepo(0), zerolog.Nop())
	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice") != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, newStubActivityRepo(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_RecordDropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, newStubActivityRepo(0), zerolog.Nop())
	// Workers are not started, so the buffer fills up.
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.ActivityEvent{Username: "bob", Action: domain.ActionUpdate})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected buffer to hold %d events, got %d", channelBuffer, got)
	}
}

func TestDispatcher_InsertErrorDoesNotStopWorker(t *testing.T) {
	repo := newStubActivityRepo(0)
	repo.insertErr = errors.New("mongo down")
	d := NewDispatcher(1, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	d.Record(domain.ActivityEvent{Username: "carol", Action: domain.ActionDelete})
	d.Record(domain.ActivityEvent{Username: "carol", Action: domain.ActionDelete})

	deadline := time.Now().Add(2 * time.Second)
	for len(d.workers[0]) > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if len(d.workers[0]) != 0 {
		t.Fatalf("worker stopped draining after insert error")
	}
	cancel()
	d.Wait()
}

func TestDispatcher_DrainsOnShutdown(t *testing.T) {
	repo := newStubActivityRepo(3)
	d := NewDispatcher(1, repo, zerolog.Nop())
	for i := 0; i < 3; i++ {
		d.Record(domain.ActivityEvent{Username: "dave", Action: domain.ActionCreate})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := len(repo.snapshot()); got != 3 {
		t.Fatalf("expected buffered events to be flushed, got %d", got)
	}
}

func droppedAfterStop(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	if err := metrics.ActivityErrorsTotal.WithLabelValues("stopped").Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestDispatcher_RecordAfterShutdownIsCounted(t *testing.T) {
	repo := newStubActivityRepo(0)
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	d.Wait()

	before := droppedAfterStop(t)
	d.Record(domain.ActivityEvent{Username: "erin", Action: domain.ActionCreate})

	if got := droppedAfterStop(t) - before; got != 1 {
		t.Fatalf("expected one dropped event, got %v", got)
	}
	for i, ch := range d.workers {
		if len(ch) != 0 {
			t.Fatalf("worker %d buffered an event after shutdown", i)
		}
	}
	if len(repo.snapshot()) != 0 {
		t.Fatal("no event may be persisted after shutdown")
	}
}
