package store

import "errors"

var (
	// ErrNoState indicates the database holds no ledger state yet.
	ErrNoState = errors.New("store: no ledger state")

	// ErrCorruptRecord indicates a stored record that fails to decode.
	ErrCorruptRecord = errors.New("store: corrupt record")
)
