package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/solwatch/solwatch/internal/telemetry"
)

// SampleRepository persists readings in the samples table.
//
// The table is an append-only log: rows are never updated or deleted by
// solwatch, and insertion order matches capture order because the collector
// is the sole, strictly sequential writer.
type SampleRepository struct {
	db *sql.DB
}

// NewSampleRepository creates a sample repository on an open connection.
//
// Parameters:
//   - db: Open SQLite connection used for queries
//
// Returns:
//   - *SampleRepository: Repository instance ready for use
func NewSampleRepository(db *sql.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

// Append inserts one reading. The insert is a single statement, so a failed
// append never leaves a partial row behind.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - reading: Snapshot to persist; must carry a timestamp and fields
//
// Returns:
//   - error: nil on success, otherwise ErrStore wrapped with detail
func (r *SampleRepository) Append(ctx context.Context, reading telemetry.Reading) error {
	if reading.CapturedAt.IsZero() {
		return fmt.Errorf("reading timestamp is required")
	}
	if len(reading.Fields) == 0 {
		return fmt.Errorf("reading has no fields")
	}

	fieldsJSON, err := json.Marshal(reading.Fields)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO samples (captured_at, fields) VALUES (?, ?)",
		reading.CapturedAt.UTC().Format(time.RFC3339Nano),
		string(fieldsJSON),
	)
	if err != nil {
		return fmt.Errorf("%w: inserting sample: %w", ErrStore, err)
	}

	return nil
}

// ScanAll returns every stored reading in capture order (ascending).
//
// Rows whose timestamp or field blob no longer parse are skipped rather
// than failing the whole scan; a historic log with one damaged row is still
// worth analysing.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//
// Returns:
//   - []telemetry.Reading: Readings ordered by insertion (capture) order
//   - error: nil on success, otherwise ErrStore wrapped with detail
func (r *SampleRepository) ScanAll(ctx context.Context) ([]telemetry.Reading, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT captured_at, fields FROM samples ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying samples: %w", ErrStore, err)
	}
	defer rows.Close()

	var readings []telemetry.Reading
	for rows.Next() {
		var capturedAt, fieldsJSON string
		if err := rows.Scan(&capturedAt, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("%w: scanning sample: %w", ErrStore, err)
		}

		timestamp, err := parseTimestamp(capturedAt)
		if err != nil {
			continue
		}

		var fields map[string]any
		if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
			continue
		}

		readings = append(readings, telemetry.Reading{
			CapturedAt: timestamp,
			Fields:     fields,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating samples: %w", ErrStore, err)
	}

	return readings, nil
}

// Count returns the number of stored readings.
func (r *SampleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM samples").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting samples: %w", ErrStore, err)
	}
	return count, nil
}

// parseTimestamp parses a captured_at value stored in SQLite.
func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("captured_at is empty")
	}

	timestamp, err := time.Parse(time.RFC3339Nano, value)
	if err == nil {
		return timestamp, nil
	}

	fallback, fallbackErr := time.Parse(time.RFC3339, value)
	if fallbackErr == nil {
		return fallback, nil
	}

	return time.Time{}, fmt.Errorf("parsing captured_at: %w", err)
}
