package vm

import "github.com/tapelang/tapec/instruction"

// Stats accumulates dispatch counters over one Execute call, for the
// timing/reporting CLI feature (cmd/tapec run --bench). Collecting stats is
// opt-in via WithStats; a nil *Stats on the VM skips all counting.
type Stats struct {
	Dispatched    [instruction.Stop + 1]uint64
	LoopIteration uint64
}

func (s *Stats) record(op instruction.Op) {
	if s == nil {
		return
	}
	s.Dispatched[op]++
}

func (s *Stats) recordLoopIteration() {
	if s == nil {
		return
	}
	s.LoopIteration++
}

// Total returns the number of instructions dispatched across every Op.
func (s *Stats) Total() uint64 {
	if s == nil {
		return 0
	}
	var total uint64
	for _, n := range s.Dispatched {
		total += n
	}
	return total
}
