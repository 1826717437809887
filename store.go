package delog

import "sync/atomic"

// Store is the fixed-capacity circular byte buffer behind a deferred Logger.
//
// Three monotonically increasing cursors, counted in bytes and wrapping modulo 2^64,
// describe its state:
//
//	read    bytes drained so far
//	written bytes completely copied and safe to drain
//	claimed bytes reserved by some in-flight Enqueue
//
// read <= written <= claimed and claimed-read <= capacity hold at all times. The logical
// position p lives at physical offset p % capacity.
//
// Store holds state only; Enqueue and Drain implement the copying protocols.
//
// Producers must follow stack discipline: a call may be preempted by another Enqueue,
// but the preempting call has to complete before the preempted one resumes (nested
// interrupts, a single goroutine with reentrant callbacks). Independent goroutines
// writing concurrently can publish bytes that are still being copied. Serialize them
// before they reach the Logger if that is how the process is structured.
type Store struct {
	buf []byte

	read    atomic.Uint64
	written atomic.Uint64
	claimed atomic.Uint64

	// preempt runs at fixed points inside Enqueue when set. Tests use it to nest an
	// Enqueue inside another one the way an interrupt handler would.
	preempt func(stage)
}

// stage names the points in Enqueue where preempt fires.
type stage uint8

const (
	stageClaimed stage = iota + 1 // range reserved, nothing copied yet
	stageCopied                   // bytes copied, written not yet advanced
)

// Cursors is a point-in-time view of a Store's cursors. Each field is read atomically;
// the triple as a whole is not.
type Cursors struct {
	Read    uint64
	Written uint64
	Claimed uint64
}

// NewStore allocates a Store with the given capacity in bytes. The capacity never changes.
// A zero-capacity Store rejects every non-empty entry and always drains empty.
func NewStore(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{buf: make([]byte, capacity)}
}

// Capacity returns the size of the ring in bytes.
func (s *Store) Capacity() int { return len(s.buf) }

// Cursors returns the current cursor values, read in read, written, claimed order so that
// the snapshot never shows read ahead of written.
func (s *Store) Cursors() Cursors {
	r := s.read.Load()
	w := s.written.Load()
	c := s.claimed.Load()
	return Cursors{Read: r, Written: w, Claimed: c}
}

// Pending returns the number of published bytes waiting to be drained.
func (s *Store) Pending() uint64 {
	r := s.read.Load()
	return s.written.Load() - r
}

func (s *Store) interrupt(at stage) {
	if s.preempt != nil {
		s.preempt(at)
	}
}
