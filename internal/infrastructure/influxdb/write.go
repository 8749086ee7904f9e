package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/solwatch/solwatch/internal/telemetry"
)

// measurementInverter is the measurement name for mirrored readings.
const measurementInverter = "inverter"

// WriteReading mirrors one polled reading into InfluxDB.
//
// Each numeric field becomes its own point: measurement "inverter", tag
// "field" set to the field name, a single "value" float field, stamped
// with the reading's capture time. Non-numeric fields are skipped; they
// have no place in a time-series mirror.
//
// The write is non-blocking; data is batched and sent asynchronously.
// A disconnected client drops the reading silently.
//
// Parameters:
//   - reading: The flattened reading to mirror
func (c *Client) WriteReading(reading telemetry.Reading) {
	if !c.IsConnected() {
		return
	}

	for name, raw := range reading.Fields {
		value, ok := telemetry.Float(raw)
		if !ok {
			continue
		}

		point := write.NewPoint(
			measurementInverter,
			map[string]string{
				"field": name,
			},
			map[string]interface{}{
				"value": value,
			},
			reading.CapturedAt,
		)

		c.writeAPI.WritePoint(point)
	}
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Used for measurements outside the standard reading mirror; the collect
// binary records a per-tick "collector" self-metric through it.
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
