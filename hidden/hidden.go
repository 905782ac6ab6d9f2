// Package hidden implements the hidden-ghost marker (C6): it paints the
// allocated-but-never-filled halo slabs of an enlarged output grid with the
// HIDDEN marker bit, per spec section 4.6.
package hidden

import (
	"github.com/notargets/ghostlayer/extent"
)

// HiddenCell is the bit flag painted into a cell-ghost marker array for an
// allocated cell no neighbor will ever fill.
const HiddenCell byte = 1 << 0

// HiddenPoint is the bit flag painted into a point-ghost marker array for
// an allocated point no neighbor will ever fill.
const HiddenPoint byte = 1 << 0

// DuplicateCell marks a cell whose data was received from a neighbor rather
// than computed locally: a copy, not the canonical owner (spec section 6).
const DuplicateCell byte = 1 << 1

// DuplicatePoint marks a point whose data was received from a neighbor.
// Invariant 4 requires that of the two blocks sharing a boundary point,
// exactly one has this bit clear on its copy.
const DuplicatePoint byte = 1 << 1

// MarkDuplicates unions bit into marker at every id in ids, flagging those
// entries as copies rather than locally owned data. The root package's
// round B field exchange does not call it; it sets the DUPLICATE bit and
// clears the HIDDEN bit itself for each received id.
func MarkDuplicates(marker []byte, ids []int, bit byte) {
	for _, id := range ids {
		if id >= 0 && id < len(marker) {
			marker[id] |= bit
		}
	}
}

// PaintCells unions HiddenCell into every cell of outputExtent's end slabs
// that peeledExtent does not cover, for every non-degenerate axis. cells is
// indexed by row-major cell id within outputExtent (mirrors peel.CellID's
// layout). Unconditional and idempotent: running it twice yields the same
// bits.
func PaintCells(outputExtent, peeledExtent extent.Extent, cells []byte) {
	paintSlabs(outputExtent, peeledExtent, cells, HiddenCell, cellBounds)
}

// PaintPoints unions HiddenPoint into every point of outputExtent's end
// slabs not covered by peeledExtent. Points are one wider than cells per
// axis (spec section 4.6), so the slab boundaries are shifted by one
// relative to PaintCells.
func PaintPoints(outputExtent, peeledExtent extent.Extent, points []byte) {
	paintSlabs(outputExtent, peeledExtent, points, HiddenPoint, pointBounds)
}

// cellBounds returns [lo,hi] inclusive cell cursor bounds for axis, treating
// a degenerate axis as its single slot (mirrors peel.cellWidth).
func cellBounds(e extent.Extent, axis int) (lo, hi int) {
	lo = e[2*axis]
	if e.Degenerate(axis) {
		return lo, lo
	}
	return lo, e[2*axis+1] - 1
}

// pointBounds returns [lo,hi] inclusive point cursor bounds for axis.
func pointBounds(e extent.Extent, axis int) (lo, hi int) {
	return e[2*axis], e[2*axis+1]
}

// paintSlabs iterates every (i,j,k) within outputExtent's boundsFn-derived
// range and sets bit in marker (row-major, u fastest) whenever (i,j,k) lies
// outside peeledExtent's corresponding range on some non-degenerate axis —
// i.e. in a ghost slab.
func paintSlabs(
	outputExtent, peeledExtent extent.Extent,
	marker []byte,
	bit byte,
	boundsFn func(extent.Extent, int) (int, int),
) {
	var lo, hi, peeledLo, peeledHi [3]int
	for axis := 0; axis < 3; axis++ {
		lo[axis], hi[axis] = boundsFn(outputExtent, axis)
		peeledLo[axis], peeledHi[axis] = boundsFn(peeledExtent, axis)
	}
	nx := hi[0] - lo[0] + 1
	ny := hi[1] - lo[1] + 1

	for k := lo[2]; k <= hi[2]; k++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for i := lo[0]; i <= hi[0]; i++ {
				ijk := [3]int{i, j, k}
				isHidden := false
				for axis := 0; axis < 3; axis++ {
					if outputExtent.Degenerate(axis) {
						continue
					}
					if ijk[axis] < peeledLo[axis] || ijk[axis] > peeledHi[axis] {
						isHidden = true
						break
					}
				}
				if !isHidden {
					continue
				}
				id := (i - lo[0]) + (j-lo[1])*nx + (k-lo[2])*nx*ny
				if id >= 0 && id < len(marker) {
					marker[id] |= bit
				}
			}
		}
	}
}
