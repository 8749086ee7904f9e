package collector

import (
	"context"
	"time"

	"github.com/solwatch/solwatch/internal/infrastructure/logging"
	"github.com/solwatch/solwatch/internal/telemetry"
)

// Fetcher retrieves one flattened reading from the monitoring device.
// Implemented by inverter.Client.
type Fetcher interface {
	Fetch(ctx context.Context) (telemetry.Reading, error)
}

// Store appends readings to durable storage.
// Implemented by store.SampleRepository.
type Store interface {
	Append(ctx context.Context, reading telemetry.Reading) error
}

// LiveSink receives successfully stored readings for onward distribution.
// Sink failures are logged and never affect the acquisition loop.
type LiveSink interface {
	Name() string
	Publish(reading telemetry.Reading) error
}

// Collector runs the acquisition loop: poll the device on a fixed
// interval, persist each reading, and fan it out to live sinks.
type Collector struct {
	fetcher  Fetcher
	store    Store
	sinks    []LiveSink
	interval time.Duration
	logger   *logging.Logger
}

// New creates a collector.
//
// Parameters:
//   - fetcher: Device client to poll
//   - store: Durable sample store
//   - interval: Poll period (one tick per interval)
//   - logger: Structured logger
//
// Returns:
//   - *Collector: Ready to Run
func New(fetcher Fetcher, store Store, interval time.Duration, logger *logging.Logger) *Collector {
	return &Collector{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// AddSink registers a live sink. Must be called before Run.
func (c *Collector) AddSink(sink LiveSink) {
	c.sinks = append(c.sinks, sink)
}

// Run executes the acquisition loop until the context is cancelled.
//
// Each tick fetches one reading and appends it to the store. A failed
// fetch or append is logged and the tick is skipped; no partial data is
// written and the loop keeps going. Long-running outages therefore show
// up as timestamp gaps in the store, never as fabricated samples.
//
// The first poll fires immediately rather than one interval in.
//
// Parameters:
//   - ctx: Cancelled to stop the loop (typically by signal)
//
// Returns:
//   - error: Always nil today; the signature leaves room for fatal
//     store conditions
func (c *Collector) Run(ctx context.Context) error {
	c.logger.Info("collector started", "interval", c.interval.String(), "sinks", len(c.sinks))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("collector stopped")
			return nil
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

// tick performs one poll-persist-distribute cycle.
func (c *Collector) tick(ctx context.Context) {
	reading, err := c.fetcher.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("fetch failed, skipping tick", "error", err)
		return
	}

	if err := c.store.Append(ctx, reading); err != nil {
		if ctx.Err() != nil {
			return
		}
		c.logger.Error("append failed, reading dropped", "error", err)
		return
	}

	for _, sink := range c.sinks {
		if err := sink.Publish(reading); err != nil {
			c.logger.Warn("live sink publish failed", "sink", sink.Name(), "error", err)
		}
	}
}
