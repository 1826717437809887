package delog

// Enqueue copies entry into s as one contiguous logical range, or returns ErrAtCapacity
// without touching any cursor when the free space is smaller than the entry.
//
// The protocol is claim, copy, publish:
//
//  1. claim: advance claimed by len(entry) with compare-and-swap, retrying when a nested
//     call claimed first. The range [previous, previous+len) now belongs to this call.
//  2. the caller that finds written == previous is the first outstanding writer.
//  3. copy into the ring, in two pieces when the range crosses the physical end.
//  4. the first writer advances written to the latest claimed value, which also publishes
//     every nested writer that claimed and finished while this one was copying.
//
// Non-first writers never move written. Under stack discipline they always finish before
// the first writer does, so the first writer's publish covers them. See Store.
//
// Enqueue never blocks and never allocates. The retry loop is bounded by nesting depth.
func Enqueue(s *Store, entry []byte) error {
	capacity := uint64(len(s.buf))
	size := uint64(len(entry))

	var start uint64
	for {
		read := s.read.Load()
		claimed := s.claimed.Load()

		// A drain between the two loads can make used appear larger than capacity;
		// treat that like a full buffer.
		used := claimed - read
		if used > capacity || size > capacity-used {
			return ErrAtCapacity
		}
		if s.claimed.CompareAndSwap(claimed, claimed+size) {
			start = claimed
			break
		}
	}

	first := s.written.Load() == start

	s.interrupt(stageClaimed)

	if size > 0 {
		off := start % capacity
		n := copy(s.buf[off:], entry)
		if n < len(entry) {
			copy(s.buf, entry[n:])
		}
	}

	s.interrupt(stageCopied)

	if first {
		for {
			claimed := s.claimed.Load()
			s.written.Store(claimed)
			if claimed == s.claimed.Load() {
				break
			}
		}
	}
	return nil
}
