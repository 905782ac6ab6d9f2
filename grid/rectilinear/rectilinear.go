// Package rectilinear implements the grid geometry matcher (C3) for
// rectilinear grids: blocks described by three independent per-axis
// coordinate arrays, per spec section 4.3.
package rectilinear

import (
	"math"

	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/extent"
)

// coordEpsilon bounds the absolute difference tolerated when comparing two
// coordinate samples for equality (spec invariant 3).
const coordEpsilon = 1e-9

// Matcher implements grid.Matcher for rectilinear grids.
type Matcher struct{}

// axisFit is the result of fitting one axis of the remote block's
// coordinate array against the local one: the inclusive [MinId,MaxId]
// overlap range on each side (spec section 4.3).
type axisFit struct {
	localMinID, localMaxID   int
	remoteMinID, remoteMaxID int
	overlaps                 bool
}

// fitAxis selects the array with the smaller last value as "lower", scans it
// for the index at which it first reaches the other array's first value,
// then verifies the overlapping region matches entry by entry (spec section
// 4.3's rectilinear axis-fitter).
func fitAxis(local, remote []float64) (axisFit, bool) {
	if len(local) == 0 || len(remote) == 0 {
		return axisFit{}, false
	}

	lower, upper := local, remote
	lowerIsLocal := true
	if remote[len(remote)-1] < local[len(local)-1] {
		lower, upper = remote, local
		lowerIsLocal = false
	}

	start := -1
	for i, v := range lower {
		if math.Abs(v-upper[0]) <= coordEpsilon {
			start = i
			break
		}
	}
	if start == -1 {
		return axisFit{}, false
	}

	n := len(lower) - start
	if n > len(upper) {
		n = len(upper)
	}
	for i := 0; i < n; i++ {
		if math.Abs(lower[start+i]-upper[i]) > coordEpsilon {
			return axisFit{}, false
		}
	}

	fit := axisFit{overlaps: n > 0}
	if lowerIsLocal {
		fit.localMinID, fit.localMaxID = start, start+n-1
		fit.remoteMinID, fit.remoteMaxID = 0, n-1
	} else {
		fit.remoteMinID, fit.remoteMaxID = start, start+n-1
		fit.localMinID, fit.localMaxID = 0, n-1
	}
	return fit, true
}

// TryMatch implements spec section 4.3's rectilinear-grid algorithm: fit
// each axis independently, then translate the remote's full extent into the
// local frame by the overlap's index offset per axis.
func (Matcher) TryMatch(local *block.Information, remote *block.Structure) (extent.Extent, bool) {
	if local.Family != block.Rectilinear || remote.Family != block.Rectilinear {
		return extent.Extent{}, false
	}
	lg := local.Rectilinear
	rg := remote.Rectilinear
	if lg == nil || rg == nil {
		return extent.Extent{}, false
	}

	var shifted extent.Extent
	for axis := 0; axis < 3; axis++ {
		fit, ok := fitAxis(lg.Coord(axis), rg.Coord(axis))
		if !ok || !fit.overlaps {
			return extent.Extent{}, false
		}
		// Ported from vtkDIYGhostUtilities.cxx's SynchronizeGridExtents:
		// originDiff = remoteExtent + remoteMinId - localExtent - localMinId,
		// shifted = remoteExtent - originDiff, which reduces to translating
		// by (localExtent + localMinId - remoteExtent - remoteMinId).
		a := 2 * axis
		delta := local.Peeled[a] + fit.localMinID - remote.Extent[a] - fit.remoteMinID
		shifted[a] = remote.Extent[a] + delta
		shifted[a+1] = remote.Extent[a+1] + delta
	}

	if !shifted.Valid() {
		return extent.Extent{}, false
	}
	return shifted, true
}
