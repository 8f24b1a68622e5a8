package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/hydrai/telemetry-system/internal/api/metrics"
	"github.com/hydrai/telemetry-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes measurements to a fixed set of workers using consistent
// hashing on the meter ID, guaranteeing per-meter ingestion ordering.
type Dispatcher struct {
	workers []chan ports.MeasurementInput
	service ports.MeterService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.MeterService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.MeasurementInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.MeasurementInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a measurement to the worker responsible for its meter.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(input ports.MeasurementInput) {
	d.workers[d.shardIndex(input.MeterID)] <- input
}

// shardIndex maps a meter ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(meterID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(meterID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.MeasurementInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Ingest(ctx, input); err != nil {
				metrics.MeasurementsErrorsTotal.WithLabelValues("ingest_failed").Inc()
				d.log.Error().Err(err).
					Str("meter_id", input.MeterID).
					Int("worker_id", id).
					Msg("measurement ingestion failed")
				continue
			}
			metrics.MeasurementsIngestedTotal.Inc()
		}
	}
}
