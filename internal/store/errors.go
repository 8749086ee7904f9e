package store

import "errors"

// ErrStore signals an unrecoverable persistence failure (disk full, locked
// beyond the busy timeout, corruption). The acquisition loop treats it as
// fatal to the current tick only; the one-shot report treats it as fatal.
var ErrStore = errors.New("store: persistence failure")
