// Package logging provides structured logging for solwatch.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across both binaries.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("reading stored", "fields", 11)
//	logger.Warn("fetch failed, skipping tick", "error", err)
//
// Never log secrets: MQTT passwords and InfluxDB tokens stay out of
// log fields.
package logging
