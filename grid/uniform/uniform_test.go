package uniform

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"

	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/extent"
)

func identityGeom(e extent.Extent, origin [3]float64) *block.UniformGeometry {
	return &block.UniformGeometry{
		Origin:      origin,
		Spacing:     [3]float64{1, 1, 1},
		Orientation: quat.Number{Real: 1},
		Dim:         3,
	}
}

// TestTryMatch_S1 grounds scenario S1: two touching 4x4x4 blocks with the
// same origin frame, spacing, and orientation match with a zero shift.
func TestTryMatch_S1(t *testing.T) {
	localExtent := extent.New(0, 4, 0, 4, 0, 4)
	remoteExtent := extent.New(4, 8, 0, 4, 0, 4)

	local := &block.Information{
		Family:  block.Uniform,
		Peeled:  localExtent,
		Uniform: identityGeom(localExtent, [3]float64{0, 0, 0}),
	}
	remote := &block.Structure{
		Family:  block.Uniform,
		Extent:  remoteExtent,
		Uniform: identityGeom(remoteExtent, [3]float64{0, 0, 0}),
	}

	shifted, ok := Matcher{}.TryMatch(local, remote)
	if !ok {
		t.Fatal("expected a match")
	}
	if shifted != remoteExtent {
		t.Fatalf("shifted = %v, want %v (zero shift, same frame)", shifted, remoteExtent)
	}
}

// TestTryMatch_S2 grounds scenario S2: same geometry as S1 but the remote
// block is rotated 90 degrees about Z, so the orientation inner product is
// not 1 and no match is found.
func TestTryMatch_S2(t *testing.T) {
	localExtent := extent.New(0, 4, 0, 4, 0, 4)
	remoteExtent := extent.New(4, 8, 0, 4, 0, 4)

	local := &block.Information{
		Family:  block.Uniform,
		Peeled:  localExtent,
		Uniform: identityGeom(localExtent, [3]float64{0, 0, 0}),
	}

	rotated := identityGeom(remoteExtent, [3]float64{0, 0, 0})
	half := math.Sqrt2 / 2
	rotated.Orientation = quat.Number{Real: half, Kmag: half} // 90deg about Z

	remote := &block.Structure{
		Family:  block.Uniform,
		Extent:  remoteExtent,
		Uniform: rotated,
	}

	if _, ok := (Matcher{}).TryMatch(local, remote); ok {
		t.Fatal("expected no match for rotated orientation")
	}
}

func TestTryMatch_NonIntegerShiftRejected(t *testing.T) {
	localExtent := extent.New(0, 4, 0, 4, 0, 4)
	remoteExtent := extent.New(4, 8, 0, 4, 0, 4)

	local := &block.Information{
		Family:  block.Uniform,
		Peeled:  localExtent,
		Uniform: identityGeom(localExtent, [3]float64{0, 0, 0}),
	}
	remote := &block.Structure{
		Family:  block.Uniform,
		Extent:  remoteExtent,
		Uniform: identityGeom(remoteExtent, [3]float64{4.5, 0, 0}),
	}

	if _, ok := (Matcher{}).TryMatch(local, remote); ok {
		t.Fatal("expected no match for non-integer shift")
	}
}

func TestTryMatch_DifferentSpacingMagnitudeRejected(t *testing.T) {
	localExtent := extent.New(0, 4, 0, 4, 0, 4)
	remoteExtent := extent.New(4, 8, 0, 4, 0, 4)

	local := &block.Information{
		Family:  block.Uniform,
		Peeled:  localExtent,
		Uniform: identityGeom(localExtent, [3]float64{0, 0, 0}),
	}
	rg := identityGeom(remoteExtent, [3]float64{4, 0, 0})
	rg.Spacing = [3]float64{2, 2, 2}
	remote := &block.Structure{
		Family:  block.Uniform,
		Extent:  remoteExtent,
		Uniform: rg,
	}

	if _, ok := (Matcher{}).TryMatch(local, remote); ok {
		t.Fatal("expected no match for mismatched spacing magnitude")
	}
}
