package analysis

import (
	"sort"

	"github.com/solwatch/solwatch/internal/telemetry"
)

// BuildSeries reshapes a time-ordered reading log into one series per field.
//
// Each reading contributes one point to the series of every field it
// contains; fields absent from a reading are simply skipped for that
// timestamp. The result is deterministic: identical input always yields
// identical output, and the map iteration order of an individual reading's
// fields cannot influence any series.
//
// Parameters:
//   - readings: Stored readings, normally already in capture order
//
// Returns:
//   - map[string]telemetry.Series: Per-field series, each sorted ascending
//     by timestamp (a stable sort preserves capture order between equal
//     timestamps)
func BuildSeries(readings []telemetry.Reading) map[string]telemetry.Series {
	series := make(map[string]telemetry.Series)

	for _, reading := range readings {
		for field, value := range reading.Fields {
			series[field] = append(series[field], telemetry.Point{
				At:    reading.CapturedAt,
				Value: value,
			})
		}
	}

	for field := range series {
		s := series[field]
		sort.SliceStable(s, func(i, j int) bool {
			return s[i].At.Before(s[j].At)
		})
	}

	return series
}
