package scanner

import "time"

// PortState classifies the result of a single connect probe.
type PortState int

const (
	StateOpen PortState = iota
	StateClosed
	StateFiltered
	StateError
)

func (s PortState) String() string {
	return [...]string{"open", "closed", "filtered", "error"}[s]
}

// ProbeOutcome holds the result of one timed connection attempt against
// one port. Immutable once emitted by a worker.
type ProbeOutcome struct {
	Port    uint16
	State   PortState
	Reason  string // error detail for StateError, "timeout"/"connection refused" otherwise
	Banner  string // response excerpt when banner grabbing is enabled and the port is open
	Elapsed time.Duration
}
