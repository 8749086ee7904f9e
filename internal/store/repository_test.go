package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/solwatch/solwatch/internal/infrastructure/database"
	"github.com/solwatch/solwatch/internal/telemetry"

	_ "github.com/solwatch/solwatch/migrations"
)

// openTestRepo opens a migrated database in a temporary directory.
func openTestRepo(t *testing.T) *SampleRepository {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return NewSampleRepository(db.DB)
}

func testReading(at time.Time, fields map[string]any) telemetry.Reading {
	return telemetry.Reading{CapturedAt: at, Fields: fields}
}

func TestAppendAndScanAll(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inputs := []telemetry.Reading{
		testReading(base, map[string]any{"P_AC": 120.5, "U_DC": 33.0}),
		testReading(base.Add(time.Second), map[string]any{"P_AC": 121.0}),
		testReading(base.Add(2*time.Second), map[string]any{"U_DC": 32.8, "ALARM_MES_ID": "none"}),
	}

	for _, r := range inputs {
		if err := repo.Append(ctx, r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	readings, err := repo.ScanAll(ctx)
	if err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}

	if len(readings) != len(inputs) {
		t.Fatalf("ScanAll() returned %d readings, want %d", len(readings), len(inputs))
	}

	for i, got := range readings {
		if !got.CapturedAt.Equal(inputs[i].CapturedAt) {
			t.Errorf("reading %d CapturedAt = %v, want %v", i, got.CapturedAt, inputs[i].CapturedAt)
		}
	}

	// Heterogeneous field sets survive the round trip.
	if got := readings[0].Fields["P_AC"]; got != 120.5 {
		t.Errorf("reading 0 P_AC = %v, want 120.5", got)
	}
	if _, present := readings[1].Fields["U_DC"]; present {
		t.Error("reading 1 unexpectedly contains U_DC")
	}
	if got := readings[2].Fields["ALARM_MES_ID"]; got != "none" {
		t.Errorf("reading 2 ALARM_MES_ID = %v, want \"none\"", got)
	}
}

func TestScanAll_TimestampOrder(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		r := testReading(base.Add(time.Duration(i)*time.Second), map[string]any{"Temp": float64(20 + i)})
		if err := repo.Append(ctx, r); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	readings, err := repo.ScanAll(ctx)
	if err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}

	for i := 1; i < len(readings); i++ {
		if readings[i].CapturedAt.Before(readings[i-1].CapturedAt) {
			t.Errorf("readings out of order at index %d: %v before %v",
				i, readings[i].CapturedAt, readings[i-1].CapturedAt)
		}
	}
}

func TestAppend_Validation(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	t.Run("zero timestamp", func(t *testing.T) {
		err := repo.Append(ctx, telemetry.Reading{Fields: map[string]any{"P_AC": 1.0}})
		if err == nil {
			t.Error("Append() expected error for zero timestamp")
		}
	})

	t.Run("no fields", func(t *testing.T) {
		err := repo.Append(ctx, telemetry.Reading{CapturedAt: time.Now()})
		if err == nil {
			t.Error("Append() expected error for empty fields")
		}
	})
}

func TestScanAll_EmptyStore(t *testing.T) {
	repo := openTestRepo(t)

	readings, err := repo.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}
	if len(readings) != 0 {
		t.Errorf("ScanAll() on empty store returned %d readings", len(readings))
	}
}

func TestScanAll_ConcurrentWithAppends(t *testing.T) {
	// The collector and a report run share one database file: a single
	// sequential writer, an independent read-only scanner. WAL mode must
	// let the scan proceed without blocking the writer, and every scan
	// must observe a clean prefix of the appended rows.
	path := filepath.Join(t.TempDir(), "shared.db")
	ctx := context.Background()

	writerDB, err := database.Open(database.Config{Path: path, WALMode: true, BusyTimeout: 5})
	if err != nil {
		t.Fatalf("Open() writer error = %v", err)
	}
	t.Cleanup(func() { writerDB.Close() }) //nolint:errcheck // Test cleanup

	if err := writerDB.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	readerDB, err := database.Open(database.Config{Path: path, WALMode: true, BusyTimeout: 5})
	if err != nil {
		t.Fatalf("Open() reader error = %v", err)
	}
	t.Cleanup(func() { readerDB.Close() }) //nolint:errcheck // Test cleanup

	writer := NewSampleRepository(writerDB.DB)
	reader := NewSampleRepository(readerDB.DB)

	const total = 50
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	done := make(chan error, 1)
	go func() {
		for i := 0; i < total; i++ {
			r := testReading(base.Add(time.Duration(i)*time.Second), map[string]any{"P_AC": float64(i)})
			if err := writer.Append(ctx, r); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	// Scan on the second handle while the writer runs. Each scan must
	// succeed and return rows in append order with intact field blobs -
	// a torn read would show up as a gap or a mangled value.
	checkPrefix := func(readings []telemetry.Reading) {
		t.Helper()
		if len(readings) > total {
			t.Fatalf("scan returned %d readings, more than the %d appended", len(readings), total)
		}
		for i, r := range readings {
			if got := r.Fields["P_AC"]; got != float64(i) {
				t.Fatalf("reading %d P_AC = %v, want %v (inconsistent prefix)", i, got, float64(i))
			}
			if !r.CapturedAt.Equal(base.Add(time.Duration(i) * time.Second)) {
				t.Fatalf("reading %d CapturedAt = %v (inconsistent prefix)", i, r.CapturedAt)
			}
		}
	}

	writing := true
	for writing {
		readings, err := reader.ScanAll(ctx)
		if err != nil {
			t.Fatalf("ScanAll() during concurrent appends error = %v", err)
		}
		checkPrefix(readings)

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("Append() error = %v", err)
			}
			writing = false
		default:
		}
	}

	readings, err := reader.ScanAll(ctx)
	if err != nil {
		t.Fatalf("ScanAll() after appends error = %v", err)
	}
	checkPrefix(readings)
	if len(readings) != total {
		t.Fatalf("final scan returned %d readings, want %d", len(readings), total)
	}
}

func TestCount(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	if err := repo.Append(ctx, testReading(time.Now().UTC(), map[string]any{"P_AC": 1.0})); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}
