package hidden

import (
	"testing"

	"github.com/notargets/ghostlayer/extent"
)

func TestPaintCells_PaintsOnlyGhostSlab(t *testing.T) {
	output := extent.New(-2, 4, 0, 4, 0, 4)
	peeled := extent.New(0, 4, 0, 4, 0, 4)

	nCells := 6 * 4 * 4
	cells := make([]byte, nCells)
	PaintCells(output, peeled, cells)

	painted := 0
	for _, c := range cells {
		if c&HiddenCell != 0 {
			painted++
		}
	}
	// Ghost slab is x in [-2,-1] (2 cells wide) times 4x4 interior.
	if want := 2 * 4 * 4; painted != want {
		t.Fatalf("painted = %d, want %d", painted, want)
	}
}

func TestPaintCells_Idempotent(t *testing.T) {
	output := extent.New(-2, 4, 0, 4, 0, 4)
	peeled := extent.New(0, 4, 0, 4, 0, 4)

	nCells := 6 * 4 * 4
	first := make([]byte, nCells)
	PaintCells(output, peeled, first)

	second := make([]byte, nCells)
	copy(second, first)
	PaintCells(output, peeled, second)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("byte %d differs after second paint: %d != %d", i, first[i], second[i])
		}
	}
}

func TestPaintCells_DegenerateAxisNeverPainted(t *testing.T) {
	output := extent.New(-2, 4, 0, 4, 0, 0)
	peeled := extent.New(0, 4, 0, 4, 0, 0)

	cells := make([]byte, 6*4)
	PaintCells(output, peeled, cells)

	painted := 0
	for _, c := range cells {
		if c&HiddenCell != 0 {
			painted++
		}
	}
	if want := 2 * 4; painted != want {
		t.Fatalf("painted = %d, want %d (z is degenerate, contributes no extra slabs)", painted, want)
	}
}

func TestPaintPoints_WiderThanCellSlab(t *testing.T) {
	output := extent.New(-2, 4, 0, 4, 0, 4)
	peeled := extent.New(0, 4, 0, 4, 0, 4)

	nx, ny, nz := 7, 5, 5
	points := make([]byte, nx*ny*nz)
	PaintPoints(output, peeled, points)

	painted := 0
	for _, p := range points {
		if p&HiddenPoint != 0 {
			painted++
		}
	}
	// Ghost point slab is x in [-2,-1] (2 points), full y (5) and z (5).
	if want := 2 * 5 * 5; painted != want {
		t.Fatalf("painted = %d, want %d", painted, want)
	}
}
