package delog

// Drain moves up to len(dst) published bytes out of s into dst, oldest first, advances
// the read cursor by the same amount and returns dst[:n]. It returns an empty slice when
// dst is empty, the store has no capacity, or nothing has been published since the last
// drain; in those cases no cursor moves.
//
// Drain may run while producers enqueue: it only reads bytes below written and only
// stores read. It must not run concurrently with another Drain on the same Store.
func Drain(s *Store, dst []byte) []byte {
	capacity := uint64(len(s.buf))
	if len(dst) == 0 || capacity == 0 {
		return dst[:0]
	}

	read := s.read.Load()
	written := s.written.Load()
	if written == read {
		return dst[:0]
	}

	available := min(uint64(len(dst)), written-read)
	off := read % capacity
	n := copy(dst[:available], s.buf[off:])
	if uint64(n) < available {
		copy(dst[n:available], s.buf)
	}

	s.read.Store(read + available)
	return dst[:available]
}
