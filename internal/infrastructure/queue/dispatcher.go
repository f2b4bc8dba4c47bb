package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/appointly/identity-service/internal/api/metrics"
	"github.com/appointly/identity-service/internal/core/domain"
	"github.com/appointly/identity-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes auth audit events to a fixed set of workers using
// consistent hashing on the username, guaranteeing per-identity event
// ordering in the audit trail. Enqueue never blocks the request path: when a
// worker's buffer is full the event is dropped and counted.
type Dispatcher struct {
	workers []chan domain.AuthEvent
	audit   ports.AuditService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, audit ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		audit:   audit,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its username.
func (d *Dispatcher) Enqueue(event domain.AuthEvent) {
	idx := d.shardIndex(event.Username)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("username", event.Username).Str("kind", string(event.Kind)).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			if err := d.audit.Record(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("username", event.Username).
					Str("kind", string(event.Kind)).
					Int("worker_id", id).
					Msg("audit event persistence failed")
				continue
			}
			metrics.AuditEventsTotal.WithLabelValues(string(event.Kind)).Inc()
		}
	}
}
