// Package interfaceid implements the interface-id computer (C5): given a
// matched neighbor, compute the row-major lists of input-side and
// output-side cell/point ids to send and receive, per spec section 4.5.
package interfaceid

import (
	"github.com/notargets/ghostlayer/extent"
	"github.com/notargets/ghostlayer/peel"
)

// CellIDs enumerates, in row-major order, the cell ids (within own's own
// extent) lying in the half-open box shared by own and other (spec section
// 4.5's cell formula).
func CellIDs(own, other extent.Extent) []int {
	var lo, hi [3]int
	for axis := 0; axis < 3; axis++ {
		lo[axis] = max(own[2*axis], other[2*axis])
		hi[axis] = min(own[2*axis+1], other[2*axis+1])
		if own.Degenerate(axis) {
			hi[axis]++
		}
	}
	if lo[0] >= hi[0] || lo[1] >= hi[1] || lo[2] >= hi[2] {
		return nil
	}

	var ids []int
	for k := lo[2]; k < hi[2]; k++ {
		for j := lo[1]; j < hi[1]; j++ {
			for i := lo[0]; i < hi[0]; i++ {
				ids = append(ids, peel.CellID(own, i, j, k))
			}
		}
	}
	return ids
}

// PointIDs enumerates, in row-major order, the point ids (within own's own
// extent) lying in the closed box shared by own and other. When adj
// indicates the neighbor lies on own's Right/Back/Top side, the
// corresponding upper bound is decremented by one so the upper block owns
// the shared boundary points (spec invariant 6).
func PointIDs(own, other extent.Extent, adj extent.AdjacencyMask) []int {
	var lo, hi [3]int
	for axis := 0; axis < 3; axis++ {
		lo[axis] = max(own[2*axis], other[2*axis])
		hi[axis] = min(own[2*axis+1], other[2*axis+1])
		if adj.Has(extent.Face(2*axis + 1)) {
			hi[axis]--
		}
	}
	if lo[0] > hi[0] || lo[1] > hi[1] || lo[2] > hi[2] {
		return nil
	}

	nx, ny := own.Width(0)+1, own.Width(1)+1
	var ids []int
	for k := lo[2]; k <= hi[2]; k++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for i := lo[0]; i <= hi[0]; i++ {
				ids = append(ids, (i-own[0])+(j-own[2])*nx+(k-own[4])*nx*ny)
			}
		}
	}
	return ids
}

// OutputPointIDs is PointIDs' output-side variant: every face bit of the
// adjacency mask is replaced by the bit of its opposite face on the same
// axis (mirroring the axis) before the ownership rule is applied, since an
// input-side "Left neighbor" is an output-side "Right neighbor" and vice
// versa (spec section 4.5).
func OutputPointIDs(own, other extent.Extent, inputAdj extent.AdjacencyMask) []int {
	return PointIDs(own, other, mirrorAdjacency(inputAdj))
}

func mirrorAdjacency(adj extent.AdjacencyMask) extent.AdjacencyMask {
	var m extent.AdjacencyMask
	for f := extent.Left; f <= extent.Top; f++ {
		if adj.Has(f) {
			m |= 1 << uint(f.Opposite())
		}
	}
	return m
}
