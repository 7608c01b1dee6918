package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gookit/color"

	"github.com/voidrun/portsweep/internal/scanner"
	"github.com/voidrun/portsweep/internal/services"
)

// TextWriter prints one styled line per reported outcome.
type TextWriter struct {
	w       io.Writer
	verbose bool
	quiet   bool
}

// NewTextWriter creates a text writer on stdout. noColor disables ANSI
// styling for the whole process.
func NewTextWriter(verbose, noColor, quiet bool) *TextWriter {
	if noColor {
		color.Disable()
	}
	return &TextWriter{w: os.Stdout, verbose: verbose, quiet: quiet}
}

func (t *TextWriter) WriteHeader(host, ip string, totalPorts int) error {
	if t.quiet {
		return nil
	}
	target := host
	if ip != host {
		target = fmt.Sprintf("%s (%s)", host, ip)
	}
	_, err := fmt.Fprintf(t.w, "Scanning %s over %s ports\n\n",
		color.LightCyan.Render(target), color.LightCyan.Render(totalPorts))
	return err
}

func (t *TextWriter) WriteOutcome(oc *scanner.ProbeOutcome) error {
	label := color.LightYellow.Sprintf("%d/tcp", oc.Port)

	var state string
	switch oc.State {
	case scanner.StateOpen:
		state = color.LightGreen.Render("open")
	case scanner.StateClosed:
		state = color.LightRed.Render("closed")
	case scanner.StateFiltered:
		state = color.Yellow.Render("filtered")
	case scanner.StateError:
		state = color.Red.Render("error")
	}

	line := fmt.Sprintf("%s: %s", label, state)
	if name := services.Name(oc.Port); name != "" && oc.State == scanner.StateOpen {
		line += " - " + color.Cyan.Render(name)
	}
	if oc.State == scanner.StateError && oc.Reason != "" {
		line += " - " + oc.Reason
	}
	if t.verbose {
		line += fmt.Sprintf(" (%s)", oc.Elapsed.Round(time.Millisecond))
	}

	_, err := fmt.Fprintln(t.w, line)
	if err != nil {
		return err
	}

	if oc.Banner != "" {
		_, err = fmt.Fprintf(t.w, "  banner: %s\n", color.Cyan.Render(oc.Banner))
	}
	return err
}

func (t *TextWriter) WriteFooter(stats Stats) error {
	if t.quiet {
		return nil
	}
	_, err := fmt.Fprintf(t.w, "\n%s: %d ports scanned | %s open | %d closed | %d filtered | %d errors | %s\n",
		color.LightYellow.Render("OK"),
		stats.Total,
		color.LightGreen.Render(stats.Open),
		stats.Closed,
		stats.Filtered,
		stats.Errors,
		stats.Duration.Round(time.Millisecond),
	)
	return err
}

func (t *TextWriter) Close() error { return nil }
