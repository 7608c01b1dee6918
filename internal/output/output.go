package output

import (
	"time"

	"github.com/voidrun/portsweep/internal/scanner"
)

// Stats holds aggregate scan statistics.
type Stats struct {
	Total    int
	Open     int
	Closed   int
	Filtered int
	Errors   int
	Duration time.Duration
}

// Count tallies one outcome into the stats.
func (s *Stats) Count(oc *scanner.ProbeOutcome) {
	switch oc.State {
	case scanner.StateOpen:
		s.Open++
	case scanner.StateClosed:
		s.Closed++
	case scanner.StateFiltered:
		s.Filtered++
	case scanner.StateError:
		s.Errors++
	}
}

// Writer is implemented by each output format.
type Writer interface {
	WriteHeader(host, ip string, totalPorts int) error
	WriteOutcome(oc *scanner.ProbeOutcome) error
	WriteFooter(stats Stats) error
	Close() error
}
