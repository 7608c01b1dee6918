package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/voidrun/portsweep/internal/scanner"
)

func TestJSONWriterReportShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w, err := NewJSONWriter(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.WriteHeader("localhost", "127.0.0.1", 3); err != nil {
		t.Fatal(err)
	}
	outcomes := []scanner.ProbeOutcome{
		{Port: 22, State: scanner.StateClosed, Reason: "connection refused", Elapsed: time.Millisecond},
		{Port: 80, State: scanner.StateOpen, Banner: "Apache", Elapsed: 2 * time.Millisecond},
		{Port: 9000, State: scanner.StateFiltered, Reason: "timeout", Elapsed: 300 * time.Millisecond},
	}
	for i := range outcomes {
		if err := w.WriteOutcome(&outcomes[i]); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.WriteFooter(Stats{Total: 3, Duration: time.Second}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var report struct {
		Host     string   `json:"host"`
		IP       string   `json:"ip"`
		Protocol string   `json:"protocol"`
		Ports    []uint16 `json:"ports"`
		Outcomes []struct {
			Port    uint16 `json:"port"`
			State   string `json:"state"`
			Elapsed int64  `json:"elapsed_ms"`
		} `json:"outcomes"`
		Banners []struct {
			Port uint16 `json:"port"`
			Data string `json:"data"`
		} `json:"banners"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("parsing report: %v", err)
	}

	if report.Host != "localhost" || report.IP != "127.0.0.1" || report.Protocol != "tcp" {
		t.Errorf("header fields wrong: %+v", report)
	}
	if len(report.Ports) != 1 || report.Ports[0] != 80 {
		t.Errorf("open ports = %v, want [80]", report.Ports)
	}
	if len(report.Outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(report.Outcomes))
	}
	if report.Outcomes[2].State != "filtered" || report.Outcomes[2].Elapsed != 300 {
		t.Errorf("filtered outcome wrong: %+v", report.Outcomes[2])
	}
	if len(report.Banners) != 1 || report.Banners[0].Data != "Apache" {
		t.Errorf("banners = %+v, want one Apache entry", report.Banners)
	}
}

func TestJSONWriterDirectoryGetsTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewJSONWriter(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteHeader("h", "1.2.3.4", 0); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFooter(Stats{}); err != nil {
		t.Fatal(err)
	}
	w.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files in output dir, want 1", len(entries))
	}
	if name := entries[0].Name(); !strings.HasSuffix(name, "-output.json") {
		t.Errorf("file name %q missing -output.json suffix", name)
	}
}

func TestStatsCount(t *testing.T) {
	var s Stats
	for _, st := range []scanner.PortState{
		scanner.StateOpen, scanner.StateOpen,
		scanner.StateClosed,
		scanner.StateFiltered,
		scanner.StateError,
	} {
		s.Count(&scanner.ProbeOutcome{State: st})
	}
	if s.Open != 2 || s.Closed != 1 || s.Filtered != 1 || s.Errors != 1 {
		t.Errorf("stats = %+v", s)
	}
}
