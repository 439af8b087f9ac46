package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ballotportal/election-api/internal/api/metrics"
	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes vote audit records to a fixed set of workers using
// consistent hashing on the period id, so records of one period are written
// in the order they were cast.
type Dispatcher struct {
	workers []chan domain.VoteAuditRecord
	service ports.AuditService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.VoteAuditRecord, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.VoteAuditRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a record to the worker responsible for its period. It never
// blocks: when that worker's channel is full the record is dropped and
// Enqueue returns false.
func (d *Dispatcher) Enqueue(record domain.VoteAuditRecord) bool {
	idx := d.shardIndex(record.PeriodID)
	select {
	case d.workers[idx] <- record:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		metrics.AuditDroppedTotal.Inc()
		d.log.Warn().
			Str("vote_id", record.VoteID).
			Str("period_id", record.PeriodID).
			Int("worker_id", idx).
			Msg("audit queue full")
		return false
	}
}

// shardIndex maps a period id deterministically to a worker index.
func (d *Dispatcher) shardIndex(periodID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(periodID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.VoteAuditRecord) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			err := d.service.Record(ctx, record)
			result := "ok"
			if err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("vote_id", record.VoteID).
					Str("period_id", record.PeriodID).
					Int("worker_id", id).
					Msg("audit write failed")
			}
			metrics.AuditWriteDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}
