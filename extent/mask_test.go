package extent

import "testing"

// TestFaceAdjacency_S1 grounds scenario S1 from spec section 8: two touching
// 4x4x4 blocks share exactly one face, with overlap on the other two axes.
func TestFaceAdjacency_S1(t *testing.T) {
	a := New(0, 4, 0, 4, 0, 4)
	b := New(4, 8, 0, 4, 0, 4)

	adj := ComputeAdjacencyMask(a, b)
	if adj != 1<<uint(Right) {
		t.Fatalf("adjacency mask = %b, want only Right bit", adj)
	}

	overlap := ComputeOverlapMask(a, b)
	want := OverlapMask(1<<1 | 1<<2) // Y and Z axes
	if overlap != want {
		t.Fatalf("overlap mask = %b, want %b", overlap, want)
	}

	if got := Classify(a, adj, overlap); got != FaceAdjacent {
		t.Fatalf("Classify = %v, want FaceAdjacent", got)
	}
}

func TestCornerAdjacency(t *testing.T) {
	a := New(0, 4, 0, 4, 0, 4)
	b := New(4, 8, 4, 8, 4, 8)

	adj := ComputeAdjacencyMask(a, b)
	wantAdj := AdjacencyMask(1<<uint(Right) | 1<<uint(Back) | 1<<uint(Top))
	if adj != wantAdj {
		t.Fatalf("adjacency mask = %b, want %b", adj, wantAdj)
	}

	overlap := ComputeOverlapMask(a, b)
	if overlap != 0 {
		t.Fatalf("overlap mask = %b, want 0 for a corner touch", overlap)
	}

	if got := Classify(a, adj, overlap); got != CornerAdjacent {
		t.Fatalf("Classify = %v, want CornerAdjacent", got)
	}
}

func TestEdgeAdjacency(t *testing.T) {
	a := New(0, 4, 0, 4, 0, 4)
	// Touches along the edge where X and Y both abut, Z fully overlapping.
	b := New(4, 8, 4, 8, 0, 4)

	adj := ComputeAdjacencyMask(a, b)
	wantAdj := AdjacencyMask(1<<uint(Right) | 1<<uint(Back))
	if adj != wantAdj {
		t.Fatalf("adjacency mask = %b, want %b", adj, wantAdj)
	}

	overlap := ComputeOverlapMask(a, b)
	wantOverlap := OverlapMask(1 << 2) // Z axis only
	if overlap != wantOverlap {
		t.Fatalf("overlap mask = %b, want %b", overlap, wantOverlap)
	}

	if got := Classify(a, adj, overlap); got != EdgeAdjacent {
		t.Fatalf("Classify = %v, want EdgeAdjacent", got)
	}
}

func TestDisjointBlocksAreNotAdjacent(t *testing.T) {
	a := New(0, 4, 0, 4, 0, 4)
	b := New(10, 14, 10, 14, 10, 14)

	adj := ComputeAdjacencyMask(a, b)
	overlap := ComputeOverlapMask(a, b)
	if got := Classify(a, adj, overlap); got != NotAdjacent {
		t.Fatalf("Classify = %v, want NotAdjacent", got)
	}
}

// TestDegenerateAxisNeverAdjacent grounds the boundary case: a block with a
// degenerate axis can never carry an adjacency bit on that axis, because
// ComputeAdjacencyMask masks it off regardless of coincidental equality.
func TestDegenerateAxisNeverAdjacent(t *testing.T) {
	a := New(0, 4, 2, 2, 0, 4)
	b := New(4, 8, 2, 2, 0, 4)

	adj := ComputeAdjacencyMask(a, b)
	if adj.Has(Front) || adj.Has(Back) {
		t.Fatalf("degenerate Y axis must not carry an adjacency bit, got %b", adj)
	}
}
