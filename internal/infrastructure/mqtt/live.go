package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/solwatch/solwatch/internal/telemetry"
)

// readingMessage is the wire shape of the full-reading topic.
type readingMessage struct {
	CapturedAt time.Time      `json:"captured_at"`
	Fields     map[string]any `json:"fields"`
}

// PublishReading pushes one polled reading onto the live feed.
//
// Two families of messages go out:
//   - solwatch/live/reading carries the whole reading as one JSON document,
//     retained so late subscribers see the latest snapshot immediately.
//   - solwatch/live/field/{name} carries each raw value on its own topic,
//     retained, for dashboards that bind a widget per field.
//
// Messages use the configured QoS. The per-field publishes stop at the
// first failure; by then the broker link is down and the remaining
// publishes would fail the same way.
//
// Parameters:
//   - reading: The flattened reading to publish
//
// Returns:
//   - error: First publish failure, or nil
func (c *Client) PublishReading(reading telemetry.Reading) error {
	qos := byte(c.cfg.QoS)

	msg, err := json.Marshal(readingMessage{
		CapturedAt: reading.CapturedAt,
		Fields:     reading.Fields,
	})
	if err != nil {
		return fmt.Errorf("%w: encode reading: %w", ErrPublishFailed, err)
	}

	topics := Topics{}
	if err := c.Publish(topics.LiveReading(), msg, qos, true); err != nil {
		return err
	}

	for name, value := range reading.Fields {
		payload, err := encodeFieldValue(value)
		if err != nil {
			continue
		}
		if err := c.Publish(topics.LiveField(name), payload, qos, true); err != nil {
			return err
		}
	}

	return nil
}

// encodeFieldValue renders a single field value as a bare payload.
// Numbers and booleans go out as their JSON form, strings unquoted.
func encodeFieldValue(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}
	return json.Marshal(value)
}
