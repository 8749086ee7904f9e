// Package inverter implements the reading fetcher for AhoyDTU solar
// micro-inverter monitoring devices.
//
// The AhoyDTU exposes current readings as a JSON document on its local
// network API (/api/record/live). This package performs exactly one
// request/response cycle per call and flattens the firmware's nested
// record list into a flat field map.
//
// Error Taxonomy:
//   - ErrUnreachable: connection refused, timeout, or non-2xx status
//   - ErrMalformedResponse: undecodable payload or empty inverter record
//
// Retries are deliberately absent: the acquisition loop owns the
// skip-and-continue policy, keeping this package a pure single-shot client.
package inverter
