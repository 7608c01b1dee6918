package scanner

import "testing"

func makePorts(n int) []uint16 {
	ports := make([]uint16, n)
	for i := range ports {
		ports[i] = uint16(i + 1)
	}
	return ports
}

func checkPartition(t *testing.T, ports []uint16, segments []Segment, workers int) {
	t.Helper()

	n := len(ports)
	wantCount := workers
	if wantCount > n {
		wantCount = n
	}
	if wantCount < 1 {
		wantCount = 1
	}
	if len(segments) != wantCount {
		t.Fatalf("N=%d W=%d: got %d segments, want %d", n, workers, len(segments), wantCount)
	}

	total := 0
	minSize, maxSize := n+1, 0
	idx := 0
	for si, seg := range segments {
		if len(seg.Ports) == 0 {
			t.Fatalf("N=%d W=%d: segment %d is empty", n, workers, si)
		}
		total += len(seg.Ports)
		if len(seg.Ports) < minSize {
			minSize = len(seg.Ports)
		}
		if len(seg.Ports) > maxSize {
			maxSize = len(seg.Ports)
		}
		// Segments must cover the input sequence contiguously, in order.
		for _, p := range seg.Ports {
			if p != ports[idx] {
				t.Fatalf("N=%d W=%d: segment %d has port %d at position %d, want %d", n, workers, si, p, idx, ports[idx])
			}
			idx++
		}
	}

	if total != n {
		t.Errorf("N=%d W=%d: segment sizes sum to %d, want %d", n, workers, total, n)
	}
	if maxSize-minSize > 1 {
		t.Errorf("N=%d W=%d: segment sizes range from %d to %d, spread > 1", n, workers, minSize, maxSize)
	}
}

func TestPartitionBalanced(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 10, 100, 1000, 1024, 65535} {
		for _, w := range []int{1, 2, 3, 5, 10, 100, 650, 1024, 70000} {
			ports := makePorts(n)
			checkPartition(t, ports, Partition(ports, w), w)
		}
	}
}

func TestPartitionScenario1024x650(t *testing.T) {
	// 1024 ports over 650 workers: exactly 650 segments, not the
	// rounded-up thread count the chunking arithmetic might suggest.
	ports := makePorts(1024)
	segments := Partition(ports, 650)
	if len(segments) != 650 {
		t.Fatalf("got %d segments, want 650", len(segments))
	}
	checkPartition(t, ports, segments, 650)
}

func TestPartitionMoreWorkersThanPorts(t *testing.T) {
	ports := makePorts(4)
	segments := Partition(ports, 100)
	if len(segments) != 4 {
		t.Fatalf("got %d segments, want 4 (one worker per port)", len(segments))
	}
	for i, seg := range segments {
		if len(seg.Ports) != 1 {
			t.Errorf("segment %d has %d ports, want 1", i, len(seg.Ports))
		}
	}
}

func TestPartitionZeroWorkers(t *testing.T) {
	ports := makePorts(5)
	segments := Partition(ports, 0)
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if len(segments[0].Ports) != 5 {
		t.Errorf("segment has %d ports, want 5", len(segments[0].Ports))
	}
}

func TestPartitionNoPorts(t *testing.T) {
	if segments := Partition(nil, 10); segments != nil {
		t.Errorf("got %d segments for empty input, want none", len(segments))
	}
}
