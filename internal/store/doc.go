// Package store implements the append-only sample store on SQLite.
//
// One table, samples, holds the whole history: a capture timestamp plus the
// reading's field map serialized as JSON. The acquisition loop is the only
// writer; the analysis side reads the full log back in capture order.
// Retention and pruning are deliberately out of scope - the log grows
// monotonically.
package store
