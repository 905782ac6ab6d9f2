// Package curvilinear implements the grid geometry matcher (C3) for
// curvilinear grids: blocks whose geometry is an explicit point set, matched
// by finding a face pair whose points coincide over a maximal rectangle,
// per spec section 4.3 and vtkDIYGhostUtilities.cxx's
// StructuredGridFittingWorker.
package curvilinear

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/extent"
)

// pointEpsilon bounds the per-coordinate distance tolerated when two points
// from different blocks are considered coincident (spec invariant 3).
const pointEpsilon = 1e-9

// Matcher implements grid.Matcher for curvilinear grids.
type Matcher struct{}

// faceGrid is a 2-D view of one block face's point layer: nu*nv points in
// row-major order (u fastest), matching block.PointSet.OuterFace's layout.
type faceGrid struct {
	pts    []r3.Vec
	nu, nv int
}

func (g faceGrid) at(a, b int) r3.Vec { return g.pts[a+b*g.nu] }

// faceUV returns the two axes (other than f's own axis) that span face f,
// in the same order block.PointSet.OuterFace uses to build its flat array.
func faceUV(f extent.Face) (u, v int) {
	switch f.Axis() {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

func faceGridOf(e extent.Extent, f extent.Face, pts []r3.Vec) faceGrid {
	u, v := faceUV(f)
	return faceGrid{pts: pts, nu: e.Width(u) + 1, nv: e.Width(v) + 1}
}

// rect is a matched rectangle of the remote face, canonicalized so that
// local indices increase with both u and v; orientation records whether the
// remote grid's u/v walks the same (+1) or opposite (-1) direction.
type rect struct {
	localFace, remoteFace extent.Face
	localU0, localU1      int
	localV0, localV1      int
	remoteU0, remoteV0    int
	orientU, orientV      int
	size                  int
}

func pointsEqual(a, b r3.Vec) bool {
	return math.Abs(a.X-b.X) <= pointEpsilon &&
		math.Abs(a.Y-b.Y) <= pointEpsilon &&
		math.Abs(a.Z-b.Z) <= pointEpsilon
}

// sweep extends a matched corner pair (local corner (la,lb), remote corner
// (ra,rb)) in the four possible combinations of independent per-axis
// directions, keeping the largest rectangle that matches point-for-point —
// mirroring SweepGrids in vtkDIYGhostUtilities.cxx.
func sweep(local, remote faceGrid, la, lb, localDirU, localDirV, ra, rb int) (best rect, found bool) {
	for _, dirU := range [2]int{1, -1} {
		for _, dirV := range [2]int{1, -1} {
			// Grow along U first, holding V at the anchor row.
			lu, ru := la, ra
			for {
				nlu, nru := lu+localDirU, ru+dirU
				if nlu < 0 || nlu >= local.nu || nru < 0 || nru >= remote.nu {
					break
				}
				if !pointsEqual(local.at(nlu, lb), remote.at(nru, rb)) {
					break
				}
				lu, ru = nlu, nru
			}
			// Grow along V, requiring the whole committed U range to match
			// at every new row — mirrors SweepGrids' nested x/y scan.
			lv, rv := lb, rb
			for {
				nlv, nrv := lv+localDirV, rv+dirV
				if nlv < 0 || nlv >= local.nv || nrv < 0 || nrv >= remote.nv {
					break
				}
				rowMatches := true
				for a, b := la, ra; ; {
					if !pointsEqual(local.at(a, nlv), remote.at(b, nrv)) {
						rowMatches = false
						break
					}
					if a == lu {
						break
					}
					a += localDirU
					b += dirU
				}
				if !rowMatches {
					break
				}
				lv, rv = nlv, nrv
			}
			size := (absInt(lu-la) + 1) * (absInt(lv-lb) + 1)
			if size > best.size {
				best = rect{
					localU0: min2(la, lu), localU1: max2(la, lu),
					localV0: min2(lb, lv), localV1: max2(lb, lv),
					remoteU0: min2(ra, ru), remoteV0: min2(rb, rv),
					orientU: dirU * localDirU, orientV: dirV * localDirV,
					size: size,
				}
				found = true
			}
		}
	}
	return best, found
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// cornersOf returns the faceGrid's 4 corners as (u,v,dirU,dirV), where
// dirU/dirV point inward from that corner.
func cornersOf(g faceGrid) [4][4]int {
	return [4][4]int{
		{0, 0, 1, 1},
		{g.nu - 1, 0, -1, 1},
		{0, g.nv - 1, 1, -1},
		{g.nu - 1, g.nv - 1, -1, -1},
	}
}

// matchFacePair looks for the largest matching rectangle between localFace's
// points and remoteFace's points, trying each of the local face's 4 corners
// against every remote point as a candidate anchor — a brute-force stand-in
// for vtkStaticPointLocator's nearest-point query, acceptable at the face
// sizes a ghost exchange operates on.
func matchFacePair(localFace, remoteFace extent.Face, local, remote faceGrid) (rect, bool) {
	var best rect
	found := false
	for _, c := range cornersOf(local) {
		la, lb, dirU, dirV := c[0], c[1], c[2], c[3]
		p := local.at(la, lb)
		for rb := 0; rb < remote.nv; rb++ {
			for ra := 0; ra < remote.nu; ra++ {
				if !pointsEqual(remote.at(ra, rb), p) {
					continue
				}
				r, ok := sweep(local, remote, la, lb, dirU, dirV, ra, rb)
				if !ok {
					continue
				}
				r.localFace, r.remoteFace = localFace, remoteFace
				if r.size > best.size {
					best = r
					found = true
				}
			}
		}
	}
	return best, found
}

// TryMatch implements spec section 4.3's curvilinear-grid algorithm: search
// every local-face/remote-face pair for the largest matching rectangle,
// keep the first-encountered largest on ties (spec section 9's deliberately
// unspecified tie-break), and record the winning orientation mapping in
// remote.GridInterface.
func (Matcher) TryMatch(local *block.Information, remote *block.Structure) (extent.Extent, bool) {
	if local.Family != block.Curvilinear || remote.Family != block.Curvilinear {
		return extent.Extent{}, false
	}
	lg := local.Curvilinear
	rg := remote.Curvilinear
	if lg == nil || rg == nil || lg.Points == nil {
		return extent.Extent{}, false
	}

	var best rect
	found := false
	for lf := extent.Face(0); lf < 6; lf++ {
		localPts := lg.Face(lf)
		if localPts == nil {
			continue
		}
		localGrid := faceGridOf(local.Peeled, lf, localPts)
		for rf := extent.Face(0); rf < 6; rf++ {
			remotePts := rg.Face(rf)
			if remotePts == nil {
				continue
			}
			remoteGrid := faceGridOf(remote.Extent, rf, remotePts)
			if r, ok := matchFacePair(lf, rf, localGrid, remoteGrid); ok && r.size > best.size {
				best = r
				found = true
			}
		}
	}
	if !found {
		return extent.Extent{}, false
	}

	// Start/End are kept in canonical (Start <= End) form; XOrientation and
	// YOrientation separately record whether the remote's u/v walks the
	// same or the opposite direction as the local grid's, matching the
	// canonicalization vtkDIYGhostUtilities.cxx performs after sweeping.
	gi := &block.GridInterface{
		ExtentID:     int(best.remoteFace),
		StartX:       best.remoteU0,
		EndX:         best.remoteU0 + (best.localU1 - best.localU0),
		StartY:       best.remoteV0,
		EndY:         best.remoteV0 + (best.localV1 - best.localV0),
		XOrientation: best.orientU,
		YOrientation: best.orientV,
	}
	remote.GridInterface = gi

	u, v := faceUV(best.localFace)
	peeled := local.Peeled
	shifted := peeled
	shifted[2*u] = peeled[2*u] + best.localU0
	shifted[2*u+1] = peeled[2*u] + best.localU1
	shifted[2*v] = peeled[2*v] + best.localV0
	shifted[2*v+1] = peeled[2*v] + best.localV1
	// The out-of-face axis collapses to the touching boundary on one side;
	// the other side opens up by the neighbor's own depth along that axis,
	// so ghost depth is available for C4 to widen into (spec section 4.3:
	// "localExtent[faceId] +/- |remoteDepth|").
	axis := best.localFace.Axis()
	remoteDepth := absInt(remote.Extent.Width(axis))
	if int(best.localFace)%2 == 0 {
		shifted[2*axis] = peeled[best.localFace] - remoteDepth
		shifted[2*axis+1] = peeled[best.localFace]
	} else {
		shifted[2*axis] = peeled[best.localFace]
		shifted[2*axis+1] = peeled[best.localFace] + remoteDepth
	}

	return shifted, true
}
