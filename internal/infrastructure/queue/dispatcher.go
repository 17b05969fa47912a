package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/content-system/internal/core/domain"
	"github.com/inkwell/content-system/internal/core/ports"
	"github.com/inkwell/content-system/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Dispatcher routes content events to a fixed set of workers using consistent
// hashing on kind and slug, preserving per-item event ordering.
type Dispatcher struct {
	workers []chan domain.ContentEvent
	repo    ports.EventRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.EventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ContentEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ContentEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Stop has closed
// their channels and the backlog is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	// Inserts during drain must outlive the cancelled server context.
	ctx = context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event without blocking. When the worker's buffer is
// full, or the dispatcher is stopped, the event is dropped and counted.
func (d *Dispatcher) Record(event domain.ContentEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.ContentEventsErrorsTotal.Inc()
		return
	}

	idx := d.shardIndex(event.Kind, event.Slug)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ContentEventsErrorsTotal.Inc()
		d.log.Warn().
			Str("kind", string(event.Kind)).
			Str("slug", event.Slug).
			Int("worker_id", idx).
			Msg("event queue full, dropping content event")
	}
}

// Stop closes the worker channels and waits for queued events to be
// persisted or for ctx to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps an item deterministically to a worker index.
func (d *Dispatcher) shardIndex(kind domain.ContentKind, slug string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(kind))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(slug))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ContentEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for event := range ch {
		metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

		insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
		err := d.repo.InsertEvent(insertCtx, &event)
		cancel()

		if err != nil {
			metrics.ContentEventsErrorsTotal.Inc()
			d.log.Error().Err(err).
				Str("kind", string(event.Kind)).
				Str("slug", event.Slug).
				Str("action", string(event.Action)).
				Int("worker_id", id).
				Msg("content event persistence failed")
			continue
		}
		metrics.ContentEventsTotal.WithLabelValues(string(event.Kind), string(event.Action)).Inc()
	}
}
