package rectilinear

import (
	"testing"

	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/extent"
)

// TestTryMatch_S3 grounds scenario S3: local x=[0,1,2], remote x=[2,3,4],
// sharing the coordinate 2; y is fully shared [0,1,2,3] on both blocks.
func TestTryMatch_S3(t *testing.T) {
	localX := []float64{0, 1, 2}
	remoteX := []float64{2, 3, 4}
	sharedY := []float64{0, 1, 2, 3}

	local := &block.Information{
		Family: block.Rectilinear,
		Peeled: extent.New(0, 2, 0, 3, 0, 0),
		Rectilinear: &block.RectilinearGeometry{
			X: localX, Y: sharedY, Z: []float64{0},
		},
	}
	remote := &block.Structure{
		Family: block.Rectilinear,
		Extent: extent.New(0, 2, 0, 3, 0, 0),
		Rectilinear: &block.RectilinearGeometry{
			X: remoteX, Y: sharedY, Z: []float64{0},
		},
	}

	shifted, ok := Matcher{}.TryMatch(local, remote)
	if !ok {
		t.Fatal("expected a match")
	}
	// Remote's full x-extent [0,2] translates so its shared sample (array
	// index 0, value 2) lands on local's shared sample (array index 2,
	// value 2): shifted = [2,4], touching local's [0,2] at x=2.
	if shifted[0] != 2 || shifted[1] != 4 {
		t.Fatalf("x fit = [%d,%d], want [2,4] (remote's full extent, touching at the shared sample)", shifted[0], shifted[1])
	}
	if shifted[2] != 0 || shifted[3] != 3 {
		t.Fatalf("y fit = [%d,%d], want [0,3] (full overlap)", shifted[2], shifted[3])
	}
}

func TestTryMatch_NoSharedCoordinate(t *testing.T) {
	local := &block.Information{
		Family: block.Rectilinear,
		Rectilinear: &block.RectilinearGeometry{
			X: []float64{0, 1, 2}, Y: []float64{0, 1}, Z: []float64{0},
		},
	}
	remote := &block.Structure{
		Family: block.Rectilinear,
		Rectilinear: &block.RectilinearGeometry{
			X: []float64{5, 6, 7}, Y: []float64{0, 1}, Z: []float64{0},
		},
	}

	if _, ok := (Matcher{}).TryMatch(local, remote); ok {
		t.Fatal("expected no match when axes don't overlap")
	}
}

func TestTryMatch_MismatchedOverlapRegionRejected(t *testing.T) {
	local := &block.Information{
		Family: block.Rectilinear,
		Rectilinear: &block.RectilinearGeometry{
			X: []float64{0, 1, 2, 3}, Y: []float64{0, 1}, Z: []float64{0},
		},
	}
	remote := &block.Structure{
		Family: block.Rectilinear,
		Rectilinear: &block.RectilinearGeometry{
			// Starts at the shared value 2 but its next entry (3.5)
			// disagrees with local's next entry (3), so the fit must fail.
			X: []float64{2, 3.5, 4, 5}, Y: []float64{0, 1}, Z: []float64{0},
		},
	}

	if _, ok := (Matcher{}).TryMatch(local, remote); ok {
		t.Fatal("expected no match when overlap region disagrees entry-by-entry")
	}
}
