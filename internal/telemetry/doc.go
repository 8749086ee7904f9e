// Package telemetry defines the core data model shared by the acquisition
// and analysis sides of solwatch: the Reading snapshot, the per-field Series
// derived from stored Readings, and numeric value coercion.
//
// The model deliberately avoids a fixed schema. The inverter's field set is
// firmware-dependent and changes with conditions (no AC fields at night), so
// a Reading is a sparse map rather than a fixed-width record.
package telemetry
