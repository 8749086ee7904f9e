// Package influxdb provides the optional time-series mirror for solwatch.
//
// It wraps the official influxdb-client-go v2 library with the patterns
// used across the infrastructure packages: Connect/Close lifecycle, health
// checks, and an async error callback.
//
// # Purpose
//
// SQLite remains the store of record for offline analysis. The mirror
// duplicates numeric inverter fields into InfluxDB so dashboarding tools
// can chart production history without querying the collector's database.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteReading(reading)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking; batch errors arrive via the callback
// registered with SetOnError. Connection and health check errors are
// returned directly.
package influxdb
