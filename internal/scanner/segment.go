package scanner

import "github.com/zan8in/gologger"

// Segment is a contiguous sub-sequence of the resolved port sequence,
// owned by exactly one worker.
type Segment struct {
	Ports []uint16
}

// Partition splits ports into min(len(ports), workers) contiguous,
// non-overlapping segments whose sizes differ by at most one. The first
// len(ports) mod workers segments carry the extra port. Requesting more
// workers than ports clamps to one port per worker; there is no point
// spinning up idle workers for ports that don't exist.
func Partition(ports []uint16, workers int) []Segment {
	n := len(ports)
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	base := n / workers
	rem := n % workers

	segments := make([]Segment, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		segments = append(segments, Segment{Ports: ports[start : start+size]})
		start += size
	}

	gologger.Debug().Msgf("partitioned %d ports into %d segments (%d per worker, %d carry one extra)",
		n, workers, base, rem)

	return segments
}
