package collector

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/solwatch/solwatch/internal/infrastructure/config"
	"github.com/solwatch/solwatch/internal/infrastructure/logging"
	"github.com/solwatch/solwatch/internal/telemetry"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter(config.LoggingConfig{Level: "error", Format: "text"}, "test", io.Discard)
}

// fakeFetcher returns queued results in order, then blocks on the last one.
type fakeFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
}

type fetchResult struct {
	reading telemetry.Reading
	err     error
}

func (f *fakeFetcher) Fetch(_ context.Context) (telemetry.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	r := f.results[i]
	return r.reading, r.err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeStore records appended readings.
type fakeStore struct {
	mu       sync.Mutex
	readings []telemetry.Reading
	err      error
}

func (s *fakeStore) Append(_ context.Context, reading telemetry.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.readings = append(s.readings, reading)
	return nil
}

func (s *fakeStore) stored() []telemetry.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]telemetry.Reading, len(s.readings))
	copy(out, s.readings)
	return out
}

// fakeSink records published readings and optionally fails.
type fakeSink struct {
	mu       sync.Mutex
	name     string
	err      error
	received []telemetry.Reading
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) Publish(reading telemetry.Reading) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.received = append(s.received, reading)
	return nil
}

func (s *fakeSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.received)
}

func readingAt(sec int, power float64) telemetry.Reading {
	return telemetry.Reading{
		CapturedAt: time.Date(2026, 3, 1, 12, 0, sec, 0, time.UTC),
		Fields:     map[string]any{"P_AC": power},
	}
}

func TestTick_StoresReading(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{{reading: readingAt(0, 100.0)}}}
	store := &fakeStore{}
	c := New(fetcher, store, time.Second, testLogger())

	c.tick(context.Background())

	stored := store.stored()
	if len(stored) != 1 {
		t.Fatalf("stored %d readings, want 1", len(stored))
	}
	if stored[0].Fields["P_AC"] != 100.0 {
		t.Errorf("stored reading = %+v", stored[0])
	}
}

func TestTick_FetchFailureSkipsStore(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{{err: errors.New("device unreachable")}}}
	store := &fakeStore{}
	c := New(fetcher, store, time.Second, testLogger())

	c.tick(context.Background())

	if got := len(store.stored()); got != 0 {
		t.Errorf("stored %d readings after failed fetch, want 0", got)
	}
}

func TestTick_AppendFailureSkipsSinks(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{{reading: readingAt(0, 100.0)}}}
	store := &fakeStore{err: errors.New("disk full")}
	sink := &fakeSink{name: "mqtt"}
	c := New(fetcher, store, time.Second, testLogger())
	c.AddSink(sink)

	c.tick(context.Background())

	if sink.count() != 0 {
		t.Error("sink received a reading that was never persisted")
	}
}

func TestTick_SinkFailureDoesNotAffectOthers(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{{reading: readingAt(0, 100.0)}}}
	store := &fakeStore{}
	broken := &fakeSink{name: "mqtt", err: errors.New("broker down")}
	healthy := &fakeSink{name: "influxdb"}
	c := New(fetcher, store, time.Second, testLogger())
	c.AddSink(broken)
	c.AddSink(healthy)

	c.tick(context.Background())

	if len(store.stored()) != 1 {
		t.Error("sink failure affected persistence")
	}
	if healthy.count() != 1 {
		t.Error("healthy sink did not receive the reading")
	}
}

func TestRun_ContinuesAfterFailedTick(t *testing.T) {
	// Second tick fails, later ticks succeed again.
	fetcher := &fakeFetcher{results: []fetchResult{
		{reading: readingAt(0, 100.0)},
		{err: errors.New("timeout")},
		{reading: readingAt(2, 120.0)},
	}}
	store := &fakeStore{}
	c := New(fetcher, store, 5*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		//nolint:errcheck // Run only returns nil on cancellation
		c.Run(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for fetcher.callCount() < 4 {
		select {
		case <-deadline:
			t.Fatal("collector did not keep polling after a failed tick")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done

	stored := store.stored()
	if len(stored) < 2 {
		t.Fatalf("stored %d readings, want at least 2", len(stored))
	}
	// The failed tick left no trace.
	for _, r := range stored {
		if r.Fields["P_AC"] == nil {
			t.Errorf("stored malformed reading: %+v", r)
		}
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	fetcher := &fakeFetcher{results: []fetchResult{{reading: readingAt(0, 100.0)}}}
	c := New(fetcher, &fakeStore{}, 5*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}
