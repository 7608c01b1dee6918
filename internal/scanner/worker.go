package scanner

import (
	"context"
	"sync"

	"github.com/zan8in/gologger"
)

// PoolConfig holds options for the probe worker pool.
type PoolConfig struct {
	Prober Prober
	Pauser *Pauser // nil = no pause support
}

// RunPool launches one worker per segment and returns a channel of
// probe outcomes. Each worker iterates its segment in ascending port
// order and emits exactly one outcome per port; outcomes from different
// workers interleave arbitrarily. The channel is closed once every
// worker has finished, so a cancelled scan closes it without the full
// outcome count having been delivered.
func RunPool(ctx context.Context, addrOf func(uint16) string, segments []Segment, cfg PoolConfig) <-chan ProbeOutcome {
	outcomes := make(chan ProbeOutcome, len(segments)*2)

	var wg sync.WaitGroup
	for i, seg := range segments {
		wg.Add(1)
		go func(id int, seg Segment) {
			defer wg.Done()
			runSegment(ctx, id, addrOf, seg, cfg, outcomes)
		}(i, seg)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	return outcomes
}

func runSegment(ctx context.Context, id int, addrOf func(uint16) string, seg Segment, cfg PoolConfig, outcomes chan<- ProbeOutcome) {
	if len(seg.Ports) == 0 {
		return
	}
	gologger.Debug().Msgf("worker %d scanning ports %d-%d (%d total)",
		id, seg.Ports[0], seg.Ports[len(seg.Ports)-1], len(seg.Ports))

	for _, port := range seg.Ports {
		if cfg.Pauser != nil {
			cfg.Pauser.Wait()
		}
		if ctx.Err() != nil {
			return
		}

		oc := cfg.Prober.Probe(ctx, addrOf(port), port)

		select {
		case outcomes <- oc:
		case <-ctx.Done():
			return
		}
	}

	gologger.Debug().Msgf("worker %d finished", id)
}
