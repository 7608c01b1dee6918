package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zan8in/gologger"

	"github.com/voidrun/portsweep/internal/config"
	"github.com/voidrun/portsweep/internal/output"
	"github.com/voidrun/portsweep/internal/scanner"
	"github.com/voidrun/portsweep/internal/target"
)

// ErrScanAborted is returned when the scan is interrupted before every
// port has reported. Partial results are discarded.
var ErrScanAborted = errors.New("scan aborted")

// Run executes one scan synchronously: resolve the target, partition
// the port sequence across the worker pool, collect every outcome, then
// write the sorted report. It returns once all workers have finished or
// the context is cancelled.
func Run(ctx context.Context, opts *config.Options) error {
	tgt, err := target.Resolve(opts.Host, opts.Ports)
	if err != nil {
		return err
	}

	segments := scanner.Partition(tgt.Ports, opts.Threads)

	// Enter/Space pauses and resumes the scan when stdin is a terminal.
	pauser, cleanup := startStdinToggle(opts.Quiet)
	defer cleanup()

	writers, err := createWriters(opts)
	if err != nil {
		return err
	}
	defer func() {
		for _, w := range writers {
			w.Close()
		}
	}()
	for _, w := range writers {
		if err := w.WriteHeader(tgt.Host, tgt.IP, len(tgt.Ports)); err != nil {
			return err
		}
	}

	progress := output.NewProgress(len(tgt.Ports), opts.Quiet)
	progress.Start()
	start := time.Now()

	poolCfg := scanner.PoolConfig{
		Prober: scanner.Prober{
			Timeout:    opts.Timeout,
			Confirm:    true,
			BannerGrab: opts.BannerGrab,
			BannerLen:  opts.BannerLen,
		},
		Pauser: pauser,
	}
	outcomes := scanner.RunPool(ctx, tgt.Addr, segments, poolCfg)

	coll := scanner.NewCollector(tgt.Ports)
	for oc := range outcomes {
		progress.Increment()
		switch oc.State {
		case scanner.StateOpen:
			progress.IncrementOpen()
		case scanner.StateError:
			progress.IncrementErrors()
		}

		if err := coll.Record(oc); err != nil {
			progress.Stop()
			return err
		}
		if coll.Done() {
			break
		}
	}
	progress.Stop()

	if !coll.Done() {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: interrupted after %d of %d ports", ErrScanAborted, coll.Received(), len(tgt.Ports))
		}
		_, err := coll.Outcomes()
		return err
	}

	sorted, err := coll.Outcomes()
	if err != nil {
		return err
	}
	gologger.Debug().Msgf("all %d workers joined, %d outcomes collected", len(segments), len(sorted))

	duration := time.Since(start)
	if pauser != nil {
		duration -= pauser.PausedDuration()
	}

	stats := output.Stats{Total: len(tgt.Ports), Duration: duration}
	for i := range sorted {
		oc := &sorted[i]
		stats.Count(oc)
		if !reportable(oc, opts) {
			continue
		}
		for _, w := range writers {
			if err := w.WriteOutcome(oc); err != nil {
				return err
			}
		}
	}

	for _, w := range writers {
		if err := w.WriteFooter(stats); err != nil {
			return err
		}
	}
	return nil
}

// reportable decides whether an outcome appears in the listing. Open
// ports and probe errors always do; closed and filtered ports only when
// asked for.
func reportable(oc *scanner.ProbeOutcome, opts *config.Options) bool {
	switch oc.State {
	case scanner.StateOpen, scanner.StateError:
		return true
	default:
		return opts.ShowClosed || opts.Verbose
	}
}

// createWriters builds the output pipeline. Text goes to stdout unless
// the json format was selected; an output file additionally receives
// the JSON export.
func createWriters(opts *config.Options) ([]output.Writer, error) {
	if opts.OutputFormat == "json" {
		jw, err := output.NewJSONWriter(opts.OutputFile)
		if err != nil {
			return nil, err
		}
		return []output.Writer{jw}, nil
	}

	writers := []output.Writer{output.NewTextWriter(opts.Verbose, opts.NoColor, opts.Quiet)}
	if opts.OutputFile != "" {
		jw, err := output.NewJSONWriter(opts.OutputFile)
		if err != nil {
			return nil, err
		}
		writers = append(writers, jw)
	}
	return writers, nil
}
