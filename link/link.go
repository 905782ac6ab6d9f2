// Package link implements the link builder and ghost allocator (C4): it
// classifies each matched neighbor's adjacency, accumulates per-side ghost
// thickness, widens the neighbor's extent toward the local block, and
// produces the enlarged output extent, per spec section 4.4.
package link

import (
	"go.uber.org/zap"

	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/extent"
	"github.com/notargets/ghostlayer/ghosterr"
)

// Candidate pairs a remote block structure with the extent the matcher (C3)
// shifted into the local frame.
type Candidate struct {
	Remote  *block.Structure
	Shifted extent.Extent
}

// Builder accumulates links for one local block across all its candidate
// neighbors.
type Builder struct {
	Logger            *zap.Logger
	OutputGhostLevels int
}

// Build classifies every candidate's adjacency against info.Peeled,
// accumulates ghost thickness and coordinate splices on info, widens each
// surviving neighbor's ExtentWithNewGhosts, and returns the global ids of
// the neighbors retained in the link set.
func (b Builder) Build(info *block.Information, candidates []Candidate) []int {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var linked []int
	for _, c := range candidates {
		adj := extent.ComputeAdjacencyMask(info.Peeled, c.Shifted)
		ovl := extent.ComputeOverlapMask(info.Peeled, c.Shifted)
		class := extent.Classify(info.Peeled, adj, ovl)
		if class == extent.NotAdjacent {
			continue
		}
		if !validForDimensionality(info.Peeled, class) {
			logger.Warn("dropping neighbor: adjacency mask inconsistent with block dimensionality",
				zap.Int("neighborGlobalID", c.Remote.GlobalID),
				zap.String("class", class.String()),
				zap.Error(ghosterr.ErrMaskViolation))
			continue
		}

		c.Remote.AdjacencyMask = adj
		c.Remote.ExtentWithNewGhosts = c.Remote.Extent

		for idx := extent.Face(0); idx < 6; idx++ {
			if !adj.Has(idx) {
				continue
			}
			axis := idx.Axis()
			depth := b.OutputGhostLevels
			if w := c.Remote.Extent.Width(axis); w < depth {
				depth = w
			}
			if depth <= 0 {
				continue
			}
			if depth > info.GhostThickness[idx] {
				info.GhostThickness[idx] = depth
			}
			c.Remote.ExtentWithNewGhosts = c.Remote.ExtentWithNewGhosts.WidenFace(idx.Opposite(), depth)

			if info.Family == block.Rectilinear && c.Remote.Rectilinear != nil {
				spliceGhostCoord(info, idx, axis, depth, c.Remote.Rectilinear.Coord(axis))
			}
		}

		linked = append(linked, c.Remote.GlobalID)
	}
	return linked
}

// spliceGhostCoord appends depth coordinate samples from the neighbor's
// array onto the end of info's ghost-coord accumulator for face f, taking
// samples from whichever end of remoteCoord borders the shared boundary
// (spec section 4.4 step 2).
func spliceGhostCoord(info *block.Information, f extent.Face, axis, depth int, remoteCoord []float64) {
	if len(remoteCoord) == 0 {
		return
	}
	var sample []float64
	if int(f)%2 == 0 {
		// Left/Front/Bottom: the neighbor lies below us, so its samples
		// closest to our boundary are at the high end of its array.
		n := len(remoteCoord)
		lo := n - depth
		if lo < 0 {
			lo = 0
		}
		sample = remoteCoord[lo:n]
	} else {
		hi := depth
		if hi > len(remoteCoord) {
			hi = len(remoteCoord)
		}
		sample = remoteCoord[:hi]
	}
	info.AppendGhostCoord(f, sample)
}

// validForDimensionality rejects adjacency classes that cannot occur for
// the block's number of non-degenerate axes (spec section 7 MaskViolation).
func validForDimensionality(e extent.Extent, class extent.AdjacencyClass) bool {
	switch e.Dimensionality() {
	case 1:
		return class == extent.FaceAdjacent
	case 2:
		return class == extent.FaceAdjacent || class == extent.EdgeAdjacent
	default:
		return class == extent.FaceAdjacent || class == extent.EdgeAdjacent || class == extent.CornerAdjacent
	}
}

// OutputExtent enlarges info.Peeled by the accumulated per-side ghost
// thickness (spec section 4.4's final paragraph).
func OutputExtent(info *block.Information) extent.Extent {
	out := info.Peeled
	for axis := 0; axis < 3; axis++ {
		out[2*axis] -= info.GhostThickness[2*axis]
		out[2*axis+1] += info.GhostThickness[2*axis+1]
	}
	return out
}
