// Package mqtt provides the optional live telemetry feed over MQTT.
//
// The collector publishes every polled reading as it lands: once as a
// complete JSON document on solwatch/live/reading, and once per field on
// solwatch/live/field/{name}. All live messages are retained so a
// dashboard connecting mid-day immediately shows the latest values.
//
// Connection management wraps paho.mqtt.golang with auto-reconnect,
// exponential backoff, and a Last Will and Testament on
// solwatch/system/status so subscribers can tell a crashed collector
// apart from a dark panel.
//
// The feed is fire-and-forget from the acquisition loop's point of view:
// a broker outage never blocks or fails a poll tick.
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	err = client.PublishReading(reading)
package mqtt
