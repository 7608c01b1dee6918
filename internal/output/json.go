package output

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/voidrun/portsweep/internal/scanner"
)

type jsonOutcome struct {
	Port    uint16 `json:"port"`
	State   string `json:"state"`
	Reason  string `json:"reason,omitempty"`
	Elapsed int64  `json:"elapsed_ms"`
}

type jsonBanner struct {
	Port uint16 `json:"port"`
	Data string `json:"data"`
}

type jsonReport struct {
	Host     string        `json:"host"`
	IP       string        `json:"ip"`
	Protocol string        `json:"protocol"`
	Ports    []uint16      `json:"ports"` // open ports only
	Outcomes []jsonOutcome `json:"outcomes"`
	Banners  []jsonBanner  `json:"banners,omitempty"`
	Elapsed  string        `json:"elapsed"`
}

// JSONWriter buffers outcomes and writes a single report object on
// WriteFooter.
type JSONWriter struct {
	w      io.Writer
	closer io.Closer
	report jsonReport
}

// NewJSONWriter creates a JSON report writer. An empty path means
// stdout. A path naming an existing directory gets a timestamped
// "<UTC>-output.json" file created inside it.
func NewJSONWriter(path string) (*JSONWriter, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer
	if path != "" {
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			name := time.Now().UTC().Format("20060102T150405") + "-output.json"
			path = filepath.Join(path, name)
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		w = f
		closer = f
	}
	return &JSONWriter{w: w, closer: closer}, nil
}

func (j *JSONWriter) WriteHeader(host, ip string, totalPorts int) error {
	j.report.Host = host
	j.report.IP = ip
	j.report.Protocol = "tcp"
	return nil
}

func (j *JSONWriter) WriteOutcome(oc *scanner.ProbeOutcome) error {
	j.report.Outcomes = append(j.report.Outcomes, jsonOutcome{
		Port:    oc.Port,
		State:   oc.State.String(),
		Reason:  oc.Reason,
		Elapsed: oc.Elapsed.Milliseconds(),
	})
	if oc.State == scanner.StateOpen {
		j.report.Ports = append(j.report.Ports, oc.Port)
	}
	if oc.Banner != "" {
		j.report.Banners = append(j.report.Banners, jsonBanner{Port: oc.Port, Data: oc.Banner})
	}
	return nil
}

func (j *JSONWriter) WriteFooter(stats Stats) error {
	j.report.Elapsed = stats.Duration.Round(time.Millisecond).String()
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.report)
}

func (j *JSONWriter) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
