package delog

import "errors"

var (
	// ErrAtCapacity reports that the ring buffer has no room for the entry.
	// Nothing was written; the caller decides whether to drop the message.
	ErrAtCapacity = errors.New("delog: buffer at capacity")

	// ErrAlreadyInitialized is returned by every Init call after the first successful one.
	ErrAlreadyInitialized = errors.New("delog: logger already initialized")

	// ErrTruncated is returned by LineWriter when a write did not fit.
	ErrTruncated = errors.New("delog: rendered entry truncated")

	// ErrNoFlusher is returned by Builder.Build when no Flusher was supplied.
	ErrNoFlusher = errors.New("delog: no flusher configured")

	// ErrNestingTooDeep is returned when more nested log calls are in flight than
	// the logger has render buffers for.
	ErrNestingTooDeep = errors.New("delog: log call nesting too deep")

	// ErrInvalidConfig wraps configuration parsing and validation failures.
	ErrInvalidConfig = errors.New("delog: invalid configuration")
)
