package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/crmdesk/portal/internal/api/metrics"
	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	drainTimeout   = 5 * time.Second
)

// Dispatcher persists activity events off the request path. Events are
// routed to a fixed set of workers by hashing the username, so each user's
// trail is written in the order it was recorded.
type Dispatcher struct {
	workers []chan domain.ActivityEvent
	repo    ports.ActivityRepository
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu orders Record against shutdown: once stopped is set no event
	// enters a channel that is being drained for the last time.
	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		repo:    repo,
		log:     log.With().Str("component", "activity_dispatcher").Logger(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// flushes what is already buffered, bounded by drainTimeout, and returns.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker started by Start has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues an event on the worker owning its username. It never
// blocks: when that worker's buffer is full, or the dispatcher has shut
// down, the event is dropped and counted.
func (d *Dispatcher) Record(e domain.ActivityEvent) {
	idx := d.shardIndex(e.Username)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		metrics.ActivityErrorsTotal.WithLabelValues("stopped").Inc()
		d.log.Warn().
			Str("username", e.Username).
			Str("action", string(e.Action)).
			Msg("activity dispatcher stopped, event dropped")
		return
	}
	select {
	case d.workers[idx] <- e:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("username", e.Username).
			Str("action", string(e.Action)).
			Int("worker_id", idx).
			Msg("activity queue full, event dropped")
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	defer d.wg.Done()
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			d.stop()
			d.drain(id, ch)
			return
		case event := <-ch:
			depth.Set(float64(len(ch)))
			d.insert(ctx, id, event)
		}
	}
}

func (d *Dispatcher) stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()
	})
}

func (d *Dispatcher) drain(id int, ch <-chan domain.ActivityEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case event := <-ch:
			d.insert(ctx, id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) insert(ctx context.Context, id int, event domain.ActivityEvent) {
	if err := d.repo.Insert(ctx, &event); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
		d.log.Error().Err(err).
			Str("username", event.Username).
			Str("action", string(event.Action)).
			Int("worker_id", id).
			Msg("activity insert failed")
	}
}
