package exerciser

import (
	"fmt"
	"slices"
)

// Oracle accumulates the canonical ordered sequence of identifiers:
// the longest prefix agreed by every consumer reported so far. It only
// ever grows, and only through Merge.
type Oracle struct {
	observed []uint64
}

// Merge checks one consumer's log against the canonical sequence. The
// shared prefix must match exactly; if the consumer's log is longer,
// its suffix extends the canonical sequence. A mismatch means the
// system under test delivered messages in different orders to
// different consumers, which is the defect this tool exists to find.
func (o *Oracle) Merge(consumerID int, observed []uint64) error {
	shared := min(len(o.observed), len(observed))
	for i := 0; i < shared; i++ {
		if o.observed[i] != observed[i] {
			return fmt.Errorf(
				"order-prefix mismatch: consumer %d diverges at position %d: canonical prefix %v, consumer prefix %v",
				consumerID, i, o.observed[:shared], observed[:shared],
			)
		}
	}

	if len(observed) > len(o.observed) {
		o.observed = append(o.observed, observed[shared:]...)
	}
	return nil
}

func (o *Oracle) Len() int { return len(o.observed) }

// Observed returns a copy of the canonical sequence.
func (o *Oracle) Observed() []uint64 {
	return slices.Clone(o.observed)
}
