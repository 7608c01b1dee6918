package scanner

import (
	"errors"
	"fmt"
	"sort"
)

// Collector defects. A duplicate or unexpected outcome means the
// partition invariant was violated somewhere upstream; it is surfaced,
// never silently absorbed.
var (
	ErrDuplicateOutcome  = errors.New("duplicate outcome")
	ErrUnexpectedOutcome = errors.New("outcome for unrequested port")
	ErrIncomplete        = errors.New("scan incomplete")
)

// Collector aggregates probe outcomes into the final per-port result
// set. It is the single owner of the accumulating map; callers feed it
// from exactly one goroutine.
type Collector struct {
	expected map[uint16]struct{}
	got      map[uint16]ProbeOutcome
}

// NewCollector creates a collector expecting exactly one outcome for
// each of the given ports.
func NewCollector(ports []uint16) *Collector {
	expected := make(map[uint16]struct{}, len(ports))
	for _, p := range ports {
		expected[p] = struct{}{}
	}
	return &Collector{
		expected: expected,
		got:      make(map[uint16]ProbeOutcome, len(ports)),
	}
}

// Record stores one outcome. It rejects outcomes for ports that were
// never requested and second outcomes for a port already recorded.
func (c *Collector) Record(oc ProbeOutcome) error {
	if _, ok := c.expected[oc.Port]; !ok {
		return fmt.Errorf("%w: %d", ErrUnexpectedOutcome, oc.Port)
	}
	if _, ok := c.got[oc.Port]; ok {
		return fmt.Errorf("%w: port %d reported twice", ErrDuplicateOutcome, oc.Port)
	}
	c.got[oc.Port] = oc
	return nil
}

// Done reports whether every expected port has exactly one outcome.
func (c *Collector) Done() bool {
	return len(c.got) == len(c.expected)
}

// Received returns how many distinct ports have reported so far.
func (c *Collector) Received() int {
	return len(c.got)
}

// Outcomes returns all recorded outcomes sorted by ascending port.
// It errors if any expected port is still missing.
func (c *Collector) Outcomes() ([]ProbeOutcome, error) {
	if !c.Done() {
		return nil, fmt.Errorf("%w: %d of %d ports reported", ErrIncomplete, len(c.got), len(c.expected))
	}
	out := make([]ProbeOutcome, 0, len(c.got))
	for _, oc := range c.got {
		out = append(out, oc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Port < out[j].Port })
	return out, nil
}
