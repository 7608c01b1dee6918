package scanner

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
	"time"
)

// Prober performs timed TCP connect probes against single ports.
type Prober struct {
	Timeout time.Duration

	// Confirm re-dials a port that answered before reporting it open,
	// at twice the timeout, to weed out flaky accepts.
	Confirm bool

	// BannerGrab issues an HTTP GET against open ports and records the
	// response, truncated to BannerLen bytes.
	BannerGrab bool
	BannerLen  int
}

// Probe attempts one connection to addr and classifies the result:
// accepted -> open, actively refused -> closed, no answer within the
// timeout -> filtered, anything else -> error with the reason attached.
// The dial is abandoned as soon as ctx is cancelled.
func (p *Prober) Probe(ctx context.Context, addr string, port uint16) ProbeOutcome {
	start := time.Now()
	conn, err := p.dial(ctx, addr, p.Timeout)
	elapsed := time.Since(start)

	oc := ProbeOutcome{Port: port, Elapsed: elapsed}

	if err == nil {
		conn.Close()
		if p.Confirm {
			if c2, err2 := p.dial(ctx, addr, 2*p.Timeout); err2 == nil {
				c2.Close()
			}
			// A failed confirmation dial still counts as open: the first
			// accept is authoritative, the re-dial only warms flaky stacks.
		}
		oc.State = StateOpen
		if p.BannerGrab {
			oc.Banner = grabBanner(ctx, addr, p.Timeout, p.BannerLen)
		}
		return oc
	}

	oc.State, oc.Reason = classifyDialError(err)
	return oc
}

func (p *Prober) dial(ctx context.Context, addr string, timeout time.Duration) (net.Conn, error) {
	d := net.Dialer{Timeout: timeout}
	return d.DialContext(ctx, "tcp", addr)
}

func classifyDialError(err error) (PortState, string) {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return StateFiltered, "timeout"
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return StateClosed, "connection refused"
	}
	// Some stacks surface refusal without a wrapped errno.
	if strings.Contains(err.Error(), "refused") {
		return StateClosed, err.Error()
	}
	if errors.Is(err, context.Canceled) {
		return StateError, "cancelled"
	}
	return StateError, err.Error()
}
