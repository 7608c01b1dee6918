package scanner

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"
)

// testAddrOf maps every port onto the loopback address.
func testAddrOf(port uint16) string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(int(port)))
}

func TestRunPoolOneOutcomePerPort(t *testing.T) {
	// One live listener among a handful of refused ports.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	open, _ := strconv.Atoi(portStr)

	ports := []uint16{uint16(open)}
	// Neighboring ephemeral ports, almost certainly refused; state does
	// not matter for this test, only delivery.
	for i := 1; i <= 7; i++ {
		ports = append(ports, uint16(open-i))
	}

	segments := Partition(ports, 3)
	cfg := PoolConfig{Prober: Prober{Timeout: time.Second}}

	outcomes := RunPool(context.Background(), testAddrOf, segments, cfg)

	seen := make(map[uint16]int)
	states := make(map[uint16]PortState)
	for oc := range outcomes {
		seen[oc.Port]++
		states[oc.Port] = oc.State
	}

	if len(seen) != len(ports) {
		t.Fatalf("got outcomes for %d ports, want %d", len(seen), len(ports))
	}
	for _, p := range ports {
		if seen[p] != 1 {
			t.Errorf("port %d reported %d times, want exactly once", p, seen[p])
		}
	}
	if states[uint16(open)] != StateOpen {
		t.Errorf("listener port %d classified %s, want open", open, states[uint16(open)])
	}
}

func TestRunPoolSegmentOrderWithinWorker(t *testing.T) {
	// Single worker: outcomes arrive in ascending segment order.
	ports := []uint16{1, 2, 3, 4, 5}
	segments := Partition(ports, 1)
	cfg := PoolConfig{Prober: Prober{Timeout: 200 * time.Millisecond}}

	outcomes := RunPool(context.Background(), testAddrOf, segments, cfg)

	var got []uint16
	for oc := range outcomes {
		got = append(got, oc.Port)
	}
	if len(got) != len(ports) {
		t.Fatalf("got %d outcomes, want %d", len(got), len(ports))
	}
	for i, p := range ports {
		if got[i] != p {
			t.Errorf("outcome %d is port %d, want %d", i, got[i], p)
		}
	}
}

func TestRunPoolCancellation(t *testing.T) {
	ports := make([]uint16, 50)
	for i := range ports {
		ports[i] = uint16(40000 + i)
	}
	segments := Partition(ports, 2)
	cfg := PoolConfig{Prober: Prober{Timeout: 5 * time.Second}}

	ctx, cancel := context.WithCancel(context.Background())
	outcomes := RunPool(ctx, testAddrOf, segments, cfg)
	cancel()

	// The channel must close promptly without all outcomes delivered.
	deadline := time.After(3 * time.Second)
	count := 0
	for {
		select {
		case _, ok := <-outcomes:
			if !ok {
				if count == len(ports) {
					t.Log("scan finished before cancel took effect")
				}
				return
			}
			count++
		case <-deadline:
			t.Fatal("outcomes channel did not close after cancellation")
		}
	}
}

func TestRunPoolPauserGatesWorkers(t *testing.T) {
	pauser := NewPauser()
	pauser.Toggle() // start paused

	ports := []uint16{1, 2, 3}
	segments := Partition(ports, 1)
	cfg := PoolConfig{
		Prober: Prober{Timeout: 100 * time.Millisecond},
		Pauser: pauser,
	}

	outcomes := RunPool(context.Background(), testAddrOf, segments, cfg)

	select {
	case oc := <-outcomes:
		t.Fatalf("received outcome for port %d while paused", oc.Port)
	case <-time.After(300 * time.Millisecond):
	}

	pauser.Toggle() // resume

	count := 0
	for range outcomes {
		count++
	}
	if count != len(ports) {
		t.Fatalf("got %d outcomes after resume, want %d", count, len(ports))
	}
}

func ExamplePartition() {
	ports := []uint16{10, 11, 12, 13, 14}
	for i, seg := range Partition(ports, 2) {
		fmt.Println(i, seg.Ports)
	}
	// Output:
	// 0 [10 11 12]
	// 1 [13 14]
}
