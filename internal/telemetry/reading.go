package telemetry

import (
	"strconv"
	"time"
)

// Reading is one timestamped snapshot of inverter field values.
//
// Fields is a flat mapping from field name (e.g. "P_AC", "U_DC",
// "YieldTotal", "ALARM_MES_ID") to a scalar value. The device's field set
// varies over time - AC-side fields disappear at night - so two Readings
// may carry different field sets. A Reading is immutable once stored.
type Reading struct {
	// CapturedAt is assigned by the acquisition loop at the moment of a
	// successful device response. Stored timestamps are monotonically
	// non-decreasing because ticks are strictly sequential.
	CapturedAt time.Time

	// Fields holds scalar values: float64 for numeric readings, string or
	// bool for the rare non-numeric ones (exactly the types produced by
	// JSON decoding).
	Fields map[string]any
}

// Point is one observation of a single field.
type Point struct {
	At    time.Time
	Value any
}

// Series is the ordered observation history of one field, ascending by
// timestamp. It contains exactly the points where the field was present in
// a source Reading - no interpolation, no forward-fill.
type Series []Point

// Float coerces a field value to float64.
//
// The AhoyDTU firmware reports values inconsistently: numbers arrive both as
// JSON numbers and as quoted strings ("229.9"). Both forms count as numeric
// observations; booleans and non-numeric strings do not.
func Float(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
