package util

import "sync/atomic"

// Sequence hands out process-wide unique, strictly increasing
// identifiers starting at zero.
type Sequence struct {
	n atomic.Uint64
}

func (s *Sequence) Next() uint64 {
	return s.n.Add(1) - 1
}
