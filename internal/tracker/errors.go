package tracker

import "errors"

var (
	// ErrFetchFailure means the upstream call failed, timed out or returned an
	// error payload. No state was changed.
	ErrFetchFailure = errors.New("player data fetch failed")

	// ErrPersistenceFailure means the snapshot could not be stored. The cache
	// and timestamps were left untouched.
	ErrPersistenceFailure = errors.New("player snapshot persistence failed")
)
