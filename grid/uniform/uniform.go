// Package uniform implements the grid geometry matcher (C3) for uniform
// grids: blocks described by origin, spacing, a unit orientation
// quaternion, and dimensionality, per spec section 4.3.
package uniform

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/extent"
)

// spacingEpsilon bounds the relative error tolerated when checking that two
// spacings are colinear with equal magnitude (spec invariant 3).
const spacingEpsilon = 1e-9

// quaternionEpsilon bounds how far the orientation inner product may drift
// from 1 and still count as "unit-quaternion equal" (spec invariant 3).
const quaternionEpsilon = 1e-12

// shiftEpsilon is the supplemental tolerance (SPEC_FULL section 4, grounded
// on vtkDIYGhostUtilities.cxx) for how close the raw index shift must be to
// an integer before rounding; it guards against spacings that pass the
// colinearity check but are not an integer number of cells apart.
const shiftEpsilon = 1e-6

// Matcher implements grid.Matcher for uniform grids.
type Matcher struct{}

// TryMatch implements spec section 4.3's uniform-grid algorithm.
func (Matcher) TryMatch(local *block.Information, remote *block.Structure) (extent.Extent, bool) {
	if local.Family != block.Uniform || remote.Family != block.Uniform {
		return extent.Extent{}, false
	}
	lg := local.Uniform
	rg := remote.Uniform
	if lg == nil || rg == nil || lg.Dim != rg.Dim {
		return extent.Extent{}, false
	}

	if !spacingsColinearAndEqual(lg.Spacing, rg.Spacing) {
		return extent.Extent{}, false
	}
	if !quaternionsEqual(lg.Orientation, rg.Orientation) {
		return extent.Extent{}, false
	}

	var shift [3]int
	for axis := 0; axis < 3; axis++ {
		sp := lg.Spacing[axis]
		if sp == 0 {
			continue
		}
		raw := (rg.Origin[axis] - lg.Origin[axis]) / sp
		rounded := math.Round(raw)
		if math.Abs(raw-rounded) > shiftEpsilon {
			return extent.Extent{}, false
		}
		shift[axis] = int(rounded)
	}

	shifted := remote.Extent
	for axis := 0; axis < 3; axis++ {
		shifted[2*axis] -= shift[axis]
		shifted[2*axis+1] -= shift[axis]
	}
	return shifted, true
}

// spacingsColinearAndEqual reports whether dot(local,remote) equals
// |local|^2 within a relative tolerance, which holds iff remote is
// colinear with local and of equal magnitude (spec invariant 3).
func spacingsColinearAndEqual(local, remote [3]float64) bool {
	var dot, normSq float64
	for i := 0; i < 3; i++ {
		dot += local[i] * remote[i]
		normSq += local[i] * local[i]
	}
	if normSq == 0 {
		return dot == 0
	}
	return math.Abs(dot-normSq) <= spacingEpsilon*normSq
}

// quaternionsEqual reports whether the inner product of two unit
// quaternions differs from 1 by no more than quaternionEpsilon.
func quaternionsEqual(a, b quat.Number) bool {
	ip := a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
	return math.Abs(ip-1) <= quaternionEpsilon
}
