package ledger

import (
	"context"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/highwayhustle/backend/internal/model"
)

// Mirror is one category's submission target. Adapter is the real
// implementation; tests substitute recording fakes.
type Mirror interface {
	Record(ctx context.Context, event model.MirrorEvent) Result
	Init(ctx context.Context) error
	State() State
	Stats(ctx context.Context) (records, players *big.Int, err error)
}

// CategoryStatus is one category's entry in the status report
type CategoryStatus struct {
	State      string `json:"state"`
	QueueDepth int    `json:"queueDepth"`
	Records    string `json:"records,omitempty"`
	Players    string `json:"players,omitempty"`
	StatsError string `json:"statsError,omitempty"`
}

// Dispatcher fans mirror events out to per-category workers. Dispatch
// never blocks and never reports failure to the caller; each category
// has its own unbounded queue and a single worker draining it, so
// events within a category submit in arrival order while categories
// proceed independently.
type Dispatcher struct {
	logger        *slog.Logger
	mirrors       map[model.MirrorCategory]Mirror
	queues        map[model.MirrorCategory]*queue
	submitTimeout time.Duration
	wg            sync.WaitGroup
}

// NewDispatcher starts one worker per configured category
func NewDispatcher(mirrors map[model.MirrorCategory]Mirror, submitTimeout time.Duration, logger *slog.Logger) *Dispatcher {
	if submitTimeout == 0 {
		submitTimeout = 2 * time.Minute
	}

	d := &Dispatcher{
		logger:        logger,
		mirrors:       mirrors,
		queues:        make(map[model.MirrorCategory]*queue, len(mirrors)),
		submitTimeout: submitTimeout,
	}

	for category, mirror := range mirrors {
		q := newQueue()
		d.queues[category] = q
		d.wg.Add(1)
		go d.work(category, mirror, q)
	}

	return d
}

// Dispatch queues an event for background submission. Events for
// categories with no configured mirror are dropped with a log line.
func (d *Dispatcher) Dispatch(event model.MirrorEvent) {
	q, ok := d.queues[event.Category]
	if !ok {
		d.logger.Warn("dropping event for unconfigured ledger category",
			slog.String("category", string(event.Category)))
		return
	}
	q.push(event)
}

func (d *Dispatcher) work(category model.MirrorCategory, mirror Mirror, q *queue) {
	defer d.wg.Done()

	for {
		event, ok := q.pop()
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), d.submitTimeout)
		result := mirror.Record(ctx, event)
		cancel()

		if !result.Success {
			d.logger.Warn("ledger mirror submission unsuccessful",
				slog.String("category", string(category)),
				slog.String("identifier", event.Identifier),
				slog.String("error", result.Err))
		}
	}
}

// InitAll warms up every mirror's chain connection, logging a
// per-category outcome and a summary. Failures are not fatal: a
// category that fails warm-up retries on its first submission.
func (d *Dispatcher) InitAll(ctx context.Context) {
	succeeded, failed := 0, 0
	for category, mirror := range d.mirrors {
		if err := mirror.Init(ctx); err != nil {
			failed++
			d.logger.Error("ledger adapter init failed",
				slog.String("category", string(category)),
				slog.Any("error", err))
			continue
		}
		succeeded++
	}

	d.logger.Info("ledger initialization complete",
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed),
		slog.Int("total", len(d.mirrors)))
}

// Status reports per-category adapter state and queue depth. Contract
// stats are only read for categories that are already ready, so a
// status call never triggers a dial.
func (d *Dispatcher) Status(ctx context.Context) map[string]CategoryStatus {
	out := make(map[string]CategoryStatus, len(d.mirrors))
	for category, mirror := range d.mirrors {
		status := CategoryStatus{
			State:      mirror.State().String(),
			QueueDepth: d.queues[category].depth(),
		}

		if mirror.State() == StateReady {
			records, players, err := mirror.Stats(ctx)
			if err != nil {
				status.StatsError = err.Error()
			} else {
				status.Records = records.String()
				status.Players = players.String()
			}
		}

		out[string(category)] = status
	}
	return out
}

// Close stops accepting events and waits for queued submissions to
// drain
func (d *Dispatcher) Close() {
	for _, q := range d.queues {
		q.close()
	}
	d.wg.Wait()
}
