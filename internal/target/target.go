package target

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/zan8in/gologger"
)

// Validation errors surfaced before any network probe is attempted.
var (
	ErrInvalidHost     = errors.New("invalid host")
	ErrInvalidPortSpec = errors.New("invalid port spec")
)

// Target is a resolved scan target: the address to dial plus the full,
// deduplicated, ascending port sequence. Immutable once scanning begins.
type Target struct {
	Host  string // host as given on the command line
	IP    string // resolved address the probes dial
	Ports []uint16
}

// Addr returns the dialable "ip:port" form for one port.
func (t *Target) Addr(port uint16) string {
	return net.JoinHostPort(t.IP, strconv.Itoa(int(port)))
}

// Resolve turns a host string and a port spec string into a Target.
// The host may be an IP literal (v4 or v6) or a hostname; hostnames
// resolve to the first A record, falling back to the first AAAA record.
func Resolve(host, portSpec string) (*Target, error) {
	ip, err := resolveHost(host)
	if err != nil {
		return nil, err
	}

	ports, err := ParsePortSpec(portSpec)
	if err != nil {
		return nil, err
	}

	gologger.Debug().Msgf("resolved %s -> %s, %d ports", host, ip, len(ports))

	return &Target{Host: host, IP: ip, Ports: ports}, nil
}

func resolveHost(host string) (string, error) {
	if host == "" {
		return "", fmt.Errorf("%w: empty host", ErrInvalidHost)
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String(), nil
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidHost, host, err)
	}
	var firstV6 net.IP
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
		if firstV6 == nil {
			firstV6 = ip
		}
	}
	if firstV6 != nil {
		return firstV6.String(), nil
	}
	return "", fmt.Errorf("%w: no addresses found for %q", ErrInvalidHost, host)
}

// ParsePortSpec parses a port specification string and returns a sorted,
// deduplicated slice of ports. Supported forms:
//   - single: "22"
//   - list: "22,80,443"
//   - range: "1-1024"
//   - mixed: "22,80,8000-8100"
func ParsePortSpec(spec string) ([]uint16, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("%w: empty spec", ErrInvalidPortSpec)
	}

	seen := make(map[int]struct{})
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("%w: empty token in %q", ErrInvalidPortSpec, spec)
		}
		if strings.Contains(tok, "-") {
			bounds := strings.SplitN(tok, "-", 2)
			lo, err := parsePort(bounds[0])
			if err != nil {
				return nil, err
			}
			hi, err := parsePort(bounds[1])
			if err != nil {
				return nil, err
			}
			if lo > hi {
				return nil, fmt.Errorf("%w: range start %d greater than end %d", ErrInvalidPortSpec, lo, hi)
			}
			for p := lo; p <= hi; p++ {
				seen[p] = struct{}{}
			}
		} else {
			p, err := parsePort(tok)
			if err != nil {
				return nil, err
			}
			seen[p] = struct{}{}
		}
	}

	sorted := make([]int, 0, len(seen))
	for p := range seen {
		sorted = append(sorted, p)
	}
	sort.Ints(sorted)

	ports := make([]uint16, len(sorted))
	for i, p := range sorted {
		ports[i] = uint16(p)
	}
	return ports, nil
}

func parsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPortSpec, s)
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("%w: port %d outside 1-65535", ErrInvalidPortSpec, p)
	}
	return p, nil
}
