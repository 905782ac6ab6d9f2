package link

import (
	"testing"

	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/extent"
)

// TestBuild_S1 grounds scenario S1: A=[0,4,0,4,0,4], B=[4,8,0,4,0,4],
// outputGhostLevels=2; expect A.t=[0,2,0,0,0,0] and link set {B}.
func TestBuild_S1(t *testing.T) {
	info := &block.Information{GlobalID: 0, Peeled: extent.New(0, 4, 0, 4, 0, 4)}
	b := &block.Structure{GlobalID: 1, Extent: extent.New(4, 8, 0, 4, 0, 4)}

	linked := Builder{OutputGhostLevels: 2}.Build(info, []Candidate{{Remote: b, Shifted: b.Extent}})

	if len(linked) != 1 || linked[0] != 1 {
		t.Fatalf("linked = %v, want [1]", linked)
	}
	want := [6]int{0, 2, 0, 0, 0, 0}
	if info.GhostThickness != want {
		t.Fatalf("GhostThickness = %v, want %v", info.GhostThickness, want)
	}

	out := OutputExtent(info)
	if out != extent.New(0, 6, 0, 4, 0, 4) {
		t.Fatalf("OutputExtent = %v, want [0,6,0,4,0,4]", out)
	}
}

// TestBuild_S5 grounds scenario S5: three collinear blocks A-B-C with
// outputGhostLevels=1; B's link set is {A,C} and B.t=[1,1,0,0,0,0].
func TestBuild_S5(t *testing.T) {
	b := &block.Information{GlobalID: 1, Peeled: extent.New(4, 8, 0, 4, 0, 4)}
	a := &block.Structure{GlobalID: 0, Extent: extent.New(0, 4, 0, 4, 0, 4)}
	c := &block.Structure{GlobalID: 2, Extent: extent.New(8, 12, 0, 4, 0, 4)}

	linked := Builder{OutputGhostLevels: 1}.Build(b, []Candidate{
		{Remote: a, Shifted: a.Extent},
		{Remote: c, Shifted: c.Extent},
	})

	if len(linked) != 2 || linked[0] != 0 || linked[1] != 2 {
		t.Fatalf("linked = %v, want [0 2]", linked)
	}
	want := [6]int{1, 1, 0, 0, 0, 0}
	if b.GhostThickness != want {
		t.Fatalf("GhostThickness = %v, want %v", b.GhostThickness, want)
	}
}

func TestBuild_NonAdjacentNeverLinked(t *testing.T) {
	info := &block.Information{GlobalID: 0, Peeled: extent.New(0, 4, 0, 4, 0, 4)}
	far := &block.Structure{GlobalID: 1, Extent: extent.New(100, 104, 0, 4, 0, 4)}

	linked := Builder{OutputGhostLevels: 2}.Build(info, []Candidate{{Remote: far, Shifted: far.Extent}})
	if len(linked) != 0 {
		t.Fatalf("linked = %v, want empty", linked)
	}
}

// TestBuild_RectilinearSplicesGhostCoordIntoArena grounds spec 4.4 step 2:
// a rectilinear neighbor's bordering coordinate samples get appended into
// info's arena-owned ghost-coord buffer for the shared face.
func TestBuild_RectilinearSplicesGhostCoordIntoArena(t *testing.T) {
	info := &block.Information{
		GlobalID: 0,
		Peeled:   extent.New(0, 4, 0, 4, 0, 4),
		Family:   block.Rectilinear,
	}
	remoteCoord := &block.RectilinearGeometry{}
	remoteCoord.SetCoord(0, []float64{4, 4.5, 5, 5.5, 6})
	b := &block.Structure{
		GlobalID:    1,
		Extent:      extent.New(4, 8, 0, 4, 0, 4),
		Family:      block.Rectilinear,
		Rectilinear: remoteCoord,
	}

	Builder{OutputGhostLevels: 2}.Build(info, []Candidate{{Remote: b, Shifted: b.Extent}})

	got := info.GhostCoordFloats(extent.Right)
	want := []float64{4, 4.5}
	if len(got) != len(want) {
		t.Fatalf("GhostCoordFloats(Right) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GhostCoordFloats(Right) = %v, want %v", got, want)
		}
	}
	if info.Arena == nil {
		t.Fatal("expected Arena to be allocated by AppendGhostCoord")
	}
}

func TestBuild_GhostLevelsClampToNeighborDepth(t *testing.T) {
	info := &block.Information{GlobalID: 0, Peeled: extent.New(0, 4, 0, 4, 0, 4)}
	// Neighbor is only 1 cell deep along the shared axis.
	b := &block.Structure{GlobalID: 1, Extent: extent.New(4, 5, 0, 4, 0, 4)}

	Builder{OutputGhostLevels: 5}.Build(info, []Candidate{{Remote: b, Shifted: b.Extent}})

	if info.GhostThickness[extent.Right] != 1 {
		t.Fatalf("GhostThickness[Right] = %d, want 1 (clamped to neighbor depth)", info.GhostThickness[extent.Right])
	}
}
