// ABOUTME: Store error taxonomy shared by the SQLite store and async queue.
// ABOUTME: Callers match failures with errors.Is against these sentinels.
package storage

import "errors"

var (
	// ErrWriteFailed wraps any driver failure while appending a record.
	ErrWriteFailed = errors.New("write failed")

	// ErrReadFailed wraps any driver failure while listing records.
	ErrReadFailed = errors.New("read failed")

	// ErrSchemaInitFailed means the table could not be created; the store is
	// unusable for the rest of the session.
	ErrSchemaInitFailed = errors.New("schema initialization failed")

	// ErrClosed is returned for requests submitted after Async.Close.
	ErrClosed = errors.New("store closed")

	// ErrInvalidComputation rejects a zero bmi.Computation.
	ErrInvalidComputation = errors.New("measurement was not produced by a computation")

	// ErrLegacyUnsupported is returned when the queued repository cannot
	// import legacy history.
	ErrLegacyUnsupported = errors.New("repository does not support legacy import")
)
