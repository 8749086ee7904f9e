package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/solwatch/solwatch/internal/telemetry"
)

// FieldStats holds descriptive statistics for one dynamic numeric field.
// All values are full-precision; rounding happens only at rendering time.
type FieldStats struct {
	Field  string
	Count  int
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
}

// StaticCurve describes a field whose observed value never changed.
type StaticCurve struct {
	Field     string
	Value     any
	Count     int
	FirstSeen time.Time
}

// Presence describes a non-numeric field with more than one distinct value.
// Such fields carry no statistics; only their observation count is reported.
type Presence struct {
	Field string
	Count int
}

// Summary is the complete analysis result, each list sorted
// lexicographically by field name for reproducible output.
type Summary struct {
	Static     []StaticCurve
	Dynamic    []FieldStats
	NonNumeric []Presence
}

// Summarize partitions per-field series into static and dynamic fields and
// computes descriptive statistics for the dynamic numeric ones.
//
// Classification policy (see DESIGN.md):
//   - Values are coerced with telemetry.Float; a field is treated as numeric
//     when at least one observation coerces.
//   - A field is static when its numeric value set (or, for fully
//     non-numeric fields, its raw value set) has exactly one distinct value.
//   - Non-numeric fields with varying values are listed with a count only.
//   - Standard deviation is the sample variant (N−1), 0 by convention for a
//     single observation.
//
// Parameters:
//   - series: Per-field series from BuildSeries
//
// Returns:
//   - Summary: Partitioned result, sorted by field name
//   - error: ErrNoSamples for empty input; ErrNoNumericFields when no field
//     ever carried a numeric value
func Summarize(series map[string]telemetry.Series) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, ErrNoSamples
	}

	var summary Summary
	numericSeen := false

	for field, points := range series {
		if len(points) == 0 {
			continue
		}

		nums := numericValues(points)

		if len(nums) == 0 {
			// Fully non-numeric field: classify on raw values.
			if distinctRaw(points) == 1 {
				summary.Static = append(summary.Static, StaticCurve{
					Field:     field,
					Value:     points[0].Value,
					Count:     len(points),
					FirstSeen: points[0].At,
				})
			} else {
				summary.NonNumeric = append(summary.NonNumeric, Presence{
					Field: field,
					Count: len(points),
				})
			}
			continue
		}

		numericSeen = true

		if distinctFloats(nums) == 1 {
			summary.Static = append(summary.Static, StaticCurve{
				Field:     field,
				Value:     nums[0],
				Count:     len(points),
				FirstSeen: points[0].At,
			})
			continue
		}

		stats := describe(nums)
		stats.Field = field
		summary.Dynamic = append(summary.Dynamic, stats)
	}

	if !numericSeen && len(summary.Static) == 0 && len(summary.NonNumeric) == 0 {
		return Summary{}, ErrNoSamples
	}
	if !numericSeen {
		return Summary{}, ErrNoNumericFields
	}

	sort.Slice(summary.Static, func(i, j int) bool { return summary.Static[i].Field < summary.Static[j].Field })
	sort.Slice(summary.Dynamic, func(i, j int) bool { return summary.Dynamic[i].Field < summary.Dynamic[j].Field })
	sort.Slice(summary.NonNumeric, func(i, j int) bool { return summary.NonNumeric[i].Field < summary.NonNumeric[j].Field })

	return summary, nil
}

// numericValues extracts the coercible values of a series, in order.
func numericValues(points telemetry.Series) []float64 {
	nums := make([]float64, 0, len(points))
	for _, p := range points {
		if f, ok := telemetry.Float(p.Value); ok {
			nums = append(nums, f)
		}
	}
	return nums
}

// distinctFloats counts distinct values, bit-for-bit.
func distinctFloats(nums []float64) int {
	seen := make(map[float64]struct{}, len(nums))
	for _, n := range nums {
		seen[n] = struct{}{}
	}
	return len(seen)
}

// distinctRaw counts distinct raw values by their JSON-decoded identity.
func distinctRaw(points telemetry.Series) int {
	seen := make(map[any]struct{}, len(points))
	for _, p := range points {
		seen[p.Value] = struct{}{}
	}
	return len(seen)
}

// describe computes descriptive statistics over at least one value.
func describe(nums []float64) FieldStats {
	n := len(nums)

	var sum float64
	minVal := nums[0]
	maxVal := nums[0]
	for _, v := range nums {
		sum += v
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	mean := sum / float64(n)

	// Sample standard deviation; 0 by convention for a single observation.
	stdDev := 0.0
	if n > 1 {
		var sqSum float64
		for _, v := range nums {
			d := v - mean
			sqSum += d * d
		}
		stdDev = math.Sqrt(sqSum / float64(n-1))
	}

	return FieldStats{
		Count:  n,
		Mean:   mean,
		StdDev: stdDev,
		Median: median(nums),
		Min:    minVal,
		Max:    maxVal,
	}
}

// median returns the middle value of the sorted series, or the average of
// the two middle values when the count is even.
func median(nums []float64) float64 {
	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
