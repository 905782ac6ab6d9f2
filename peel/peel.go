// Package peel implements the ghost peeler (component C2): given a grid's
// own extent, an optional cell-ghost marker array, and the number of ghost
// layers the grid is known to carry, it recovers the maximal sub-extent
// that contains no marked ghost cells.
package peel

import "github.com/notargets/ghostlayer/extent"

// cellWidth returns the number of cells on an axis, treating a degenerate
// axis as width 1 so row-major cell ids remain well defined (mirrors VTK's
// ComputeCellIdForExtent, which gives thickness to degenerate dimensions).
func cellWidth(e extent.Extent, axis int) int {
	w := e.Width(axis)
	if w <= 0 {
		return 1
	}
	return w
}

// CellID returns the row-major cell id of cell (i,j,k) within e's own
// frame. i, j, k are point-extent coordinates (as stored in e), not
// zero-based cell offsets.
func CellID(e extent.Extent, i, j, k int) int {
	nx := cellWidth(e, 0)
	ny := cellWidth(e, 1)
	return (i - e[0]) + (j-e[2])*nx + (k-e[4])*nx*ny
}

// Peel computes the inner, non-ghost extent of e. ghosts is a cell-ghost
// marker array indexed by CellID; a nonzero byte marks a ghost cell. When
// ghosts is nil, e is assumed to carry exactly ghostLevel uniform ghost
// layers on every non-degenerate axis and is peeled unconditionally. The
// returned extent is expressed in e's own frame.
func Peel(e extent.Extent, ghosts []byte, ghostLevel int) extent.Extent {
	if ghosts == nil {
		return peelUniform(e, ghostLevel)
	}

	imin, imax := e[0], max(e[1], e[0]+1)
	jmin, jmax := e[2], max(e[3], e[2]+1)
	kmin, kmax := e[4], max(e[5], e[4]+1)

	lo := walkLower(e, ghosts, ghostLevel, imin, imax, jmin, jmax, kmin, kmax)
	hi := walkUpper(e, ghosts, ghostLevel, imin, imax, jmin, jmax, kmin, kmax)

	out := extent.Extent{lo[0], hi[0], lo[1], hi[1], lo[2], hi[2]}
	for axis := 0; axis < 3; axis++ {
		if !e.Degenerate(axis) {
			out[2*axis+1]++
		}
	}
	return out
}

func peelUniform(e extent.Extent, ghostLevel int) extent.Extent {
	out := e
	for axis := 0; axis < 3; axis++ {
		if e.Degenerate(axis) {
			continue
		}
		width := e.Width(axis)
		depth := ghostLevel
		if depth > width {
			depth = width
		}
		out[2*axis] += depth
		out[2*axis+1] -= depth
	}
	return out
}

// walkLower starts a cursor ghostLevel cells in from the bottom-left-front
// corner (clamped to the axis) and steps it back toward that corner one
// axis at a time, locking an axis once the next step would enter a cell
// marked as ghost or once the axis reaches its lower bound.
func walkLower(e extent.Extent, ghosts []byte, ghostLevel int, imin, imax, jmin, jmax, kmin, kmax int) [3]int {
	ijk := [3]int{
		minInt(imin+ghostLevel, imax-1),
		minInt(jmin+ghostLevel, jmax-1),
		minInt(kmin+ghostLevel, kmax-1),
	}
	lock := [3]bool{e.Degenerate(0), e.Degenerate(1), e.Degenerate(2)}

	for (!lock[0] || !lock[1] || !lock[2]) &&
		(lock[0] || ijk[0] > imin) &&
		(lock[1] || ijk[1] > jmin) &&
		(lock[2] || ijk[2] > kmin) &&
		!isGhost(e, ghosts, ijk) {
		for dim := 0; dim < 3; dim++ {
			if lock[dim] {
				continue
			}
			ijk[dim]--
			if isGhost(e, ghosts, ijk) {
				ijk[dim]++
				lock[dim] = true
			}
		}
	}
	return ijk
}

// walkUpper mirrors walkLower from the top-right-back corner.
func walkUpper(e extent.Extent, ghosts []byte, ghostLevel int, imin, imax, jmin, jmax, kmin, kmax int) [3]int {
	ijk := [3]int{
		maxInt(imax-1-ghostLevel, imin),
		maxInt(jmax-1-ghostLevel, jmin),
		maxInt(kmax-1-ghostLevel, kmin),
	}
	lock := [3]bool{e.Degenerate(0), e.Degenerate(1), e.Degenerate(2)}

	for (!lock[0] || !lock[1] || !lock[2]) &&
		(lock[0] || ijk[0] < imax-1) &&
		(lock[1] || ijk[1] < jmax-1) &&
		(lock[2] || ijk[2] < kmax-1) &&
		!isGhost(e, ghosts, ijk) {
		for dim := 0; dim < 3; dim++ {
			if lock[dim] {
				continue
			}
			ijk[dim]++
			if isGhost(e, ghosts, ijk) {
				ijk[dim]--
				lock[dim] = true
			}
		}
	}
	// ijk is the last non-ghost cell; Peel adds +1 on each non-degenerate
	// axis to turn it into the extent's upper point bound, and leaves a
	// degenerate axis as-is.
	return ijk
}

func isGhost(e extent.Extent, ghosts []byte, ijk [3]int) bool {
	id := CellID(e, ijk[0], ijk[1], ijk[2])
	if id < 0 || id >= len(ghosts) {
		return false
	}
	return ghosts[id] != 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
