// Package collector runs the telemetry acquisition loop.
//
// The collector polls the inverter's live-data endpoint on a fixed
// interval, appends each reading to the sample store, and fans successful
// readings out to optional live sinks (MQTT feed, InfluxDB mirror).
//
// Failure policy: a tick that fails to fetch or persist is logged and
// skipped in its entirety. Sink failures are logged and ignored. The loop
// only stops when its context is cancelled.
package collector
