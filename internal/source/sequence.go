package source

import "sync/atomic"

// Sequencer numbers fetches so that a response arriving after a newer
// request was issued can be dropped.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a new sequence number, superseding all earlier ones.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

func (s *Sequencer) IsCurrent(seq uint64) bool {
	return seq != 0 && s.latest.Load() == seq
}

func (s *Sequencer) Latest() uint64 {
	return s.latest.Load()
}
