package sequence

import "sync/atomic"

// Sequencer provides monotonically increasing sequence numbers, starting at 1.
type Sequencer struct{ n atomic.Uint64 }

// Next returns the next sequence number.
func (s *Sequencer) Next() uint64 { return s.n.Add(1) }

// Last returns the most recently issued sequence number, 0 if none.
func (s *Sequencer) Last() uint64 { return s.n.Load() }

// Watermark tracks the highest completed sequence number.
type Watermark struct{ n atomic.Uint64 }

// Advance raises the watermark to seq and reports true, or reports false when
// an equal or later sequence has already completed.
func (w *Watermark) Advance(seq uint64) bool {
	for {
		cur := w.n.Load()
		if seq <= cur {
			return false
		}
		if w.n.CompareAndSwap(cur, seq) {
			return true
		}
	}
}

// Load returns the highest completed sequence number.
func (w *Watermark) Load() uint64 { return w.n.Load() }
