package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zan8in/gologger"
	"github.com/zan8in/gologger/levels"

	"github.com/voidrun/portsweep/internal/config"
	"github.com/voidrun/portsweep/internal/runner"
	"github.com/voidrun/portsweep/pkg/version"
)

var opts config.Options

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"ports"}},
	{"PROBES", []string{"threads", "timeout", "banner-grab", "banner-len"}},
	{"OUTPUT", []string{"verbose", "show-closed", "output", "format", "quiet", "no-color", "debug"}},
}

var rootCmd = &cobra.Command{
	Use:     "portsweep <host> [flags]",
	Short:   "Concurrent TCP connect-scan tool",
	Version: version.Version,
	Long: `portsweep probes a host's TCP ports with a pool of concurrent
workers, classifying each port as open, closed, or filtered based on
whether the connection is accepted, refused, or times out.`,
	Example: `  portsweep 192.168.1.10
  portsweep scanme.example.com -p 1-1024
  portsweep 10.0.0.5 -p 22,80,443,8000-8100 -T 100 -t 500ms
  portsweep 10.0.0.5 -p 1-1024 --show-closed --verbose
  portsweep 10.0.0.5 -b --banner-len 128
  portsweep 10.0.0.5 -o results/ --format json`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		opts.Host = args[0]
		if opts.Debug {
			gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
		}
		return opts.Validate()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Target
	f.StringVarP(&opts.Ports, "ports", "p", "1-65535", "Ports to scan: 443, 22,80,443, 1-1024, or mixed")

	// Probes
	f.IntVarP(&opts.Threads, "threads", "T", 650, "Number of concurrent workers (clamped to port count)")
	f.DurationVarP(&opts.Timeout, "timeout", "t", 300*time.Millisecond, "Connect timeout per port")
	f.BoolVarP(&opts.BannerGrab, "banner-grab", "b", false, "Send a GET request to open ports and record the response")
	f.IntVar(&opts.BannerLen, "banner-len", 256, "Maximum banner length to record")

	// Output
	f.BoolVar(&opts.Verbose, "verbose", false, "Show per-port elapsed time and non-open ports")
	f.BoolVar(&opts.ShowClosed, "show-closed", false, "Include closed and filtered ports in the listing")
	f.StringVarP(&opts.OutputFile, "output", "o", "", "Export the scan report as JSON to this file or directory")
	f.StringVar(&opts.OutputFormat, "format", "text", "Output format: text, json")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Minimal output")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	f.BoolVar(&opts.Debug, "debug", false, "Show debug information")

	// Custom help: categorized flags.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprintf(w, "\nportsweep %s\n\n%s\n\nUsage:\n  %s\n", cmd.Version, cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if fl := cmd.Flags().Lookup(name); fl != nil {
					fmt.Fprintln(w, formatFlag(fl))
				}
			}
		}
		fmt.Fprintln(w)
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, runner.ErrScanAborted) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 32
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}
