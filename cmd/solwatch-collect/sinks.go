package main

import (
	"github.com/solwatch/solwatch/internal/infrastructure/influxdb"
	"github.com/solwatch/solwatch/internal/infrastructure/mqtt"
	"github.com/solwatch/solwatch/internal/telemetry"
)

// mqttSink adapts the MQTT client to the collector's LiveSink interface.
type mqttSink struct {
	client *mqtt.Client
}

func (s *mqttSink) Name() string { return "mqtt" }

func (s *mqttSink) Publish(reading telemetry.Reading) error {
	return s.client.PublishReading(reading)
}

// influxSink adapts the InfluxDB mirror to the collector's LiveSink
// interface. Writes are batched and async; errors surface through the
// client's error callback, not here.
type influxSink struct {
	client *influxdb.Client
}

func (s *influxSink) Name() string { return "influxdb" }

func (s *influxSink) Publish(reading telemetry.Reading) error {
	s.client.WriteReading(reading)

	// Collector self-metric alongside the mirrored data: one point per
	// stored tick with the reading's field count. Gaps in this series mean
	// missed ticks; a shrinking count means the device dropped fields
	// (AC side going dark at night).
	s.client.WritePointWithTime("collector",
		map[string]string{"source": "solwatch-collect"},
		map[string]interface{}{"fields_read": len(reading.Fields)},
		reading.CapturedAt,
	)
	return nil
}
