package delog

import "sync/atomic"

type stats struct {
	attempts  atomic.Uint64
	successes atomic.Uint64
	flushes   atomic.Uint64
}

// Statistics is a point-in-time snapshot of a Logger's counters. Every field is
// monotonic and read atomically on its own; the snapshot as a whole is not consistent
// across fields. Flushing does not reset anything.
type Statistics struct {
	// Attempts counts log calls that passed the level gate.
	Attempts uint64
	// Successes counts log calls that were buffered or delivered immediately.
	Successes uint64
	// Flushes counts Flush calls.
	Flushes uint64
	// Read is the number of bytes drained so far.
	Read uint64
	// Written is the number of bytes published to the ring so far.
	Written uint64
}

// Dropped returns how many attempted log calls did not make it into the buffer.
// A snapshot taken while a call is in flight never reports a negative count.
func (s Statistics) Dropped() uint64 {
	if s.Successes > s.Attempts {
		return 0
	}
	return s.Attempts - s.Successes
}

// Pending returns how many published bytes had not been drained at snapshot time.
func (s Statistics) Pending() uint64 {
	if s.Read > s.Written {
		return 0
	}
	return s.Written - s.Read
}

// snapshot reads successes before attempts: a call counts its attempt first, so
// this order keeps Successes <= Attempts within one snapshot.
func (s *stats) snapshot() Statistics {
	successes := s.successes.Load()
	return Statistics{
		Attempts:  s.attempts.Load(),
		Successes: successes,
		Flushes:   s.flushes.Load(),
	}
}
