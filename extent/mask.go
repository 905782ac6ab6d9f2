package extent

// AdjacencyMask is a 6-bit value over {Left,Right,Front,Back,Bottom,Top}
// naming which of the local block's faces a remote block touches.
type AdjacencyMask uint8

// OverlapMask is a 3-bit value over {X,Y,Z} naming which axes two extents
// have a non-empty (strictly overlapping) intersection on.
type OverlapMask uint8

func (m AdjacencyMask) Has(f Face) bool {
	return m&(1<<uint(f)) != 0
}

func (m OverlapMask) HasAxis(axis int) bool {
	return m&(1<<uint(axis)) != 0
}

// AxisBits reports, for each axis, whether either face bit on that axis is
// set in m.
func (m AdjacencyMask) AxisBits() [3]bool {
	var bits [3]bool
	for axis := 0; axis < 3; axis++ {
		bits[axis] = m.Has(Face(2*axis)) || m.Has(Face(2*axis+1))
	}
	return bits
}

// AxisCount returns the number of distinct axes carrying an adjacency bit.
func (m AdjacencyMask) AxisCount() int {
	bits := m.AxisBits()
	n := 0
	for _, b := range bits {
		if b {
			n++
		}
	}
	return n
}

// ComputeAdjacencyMask computes, for each face f of local, whether remote
// touches local on that face: local[f] == remote[f.Opposite()]. Bits on
// axes where local is degenerate are forced off, per spec invariant: a
// degenerate axis has no "side" to be adjacent on.
func ComputeAdjacencyMask(local, remote Extent) AdjacencyMask {
	var m AdjacencyMask
	for f := Left; f <= Top; f++ {
		if local[f] == remote[f.Opposite()] {
			m |= 1 << uint(f)
		}
	}
	for axis := 0; axis < 3; axis++ {
		if local.Degenerate(axis) {
			m &^= (1 << uint(2*axis)) | (1 << uint(2*axis+1))
		}
	}
	return m
}

// ComputeOverlapMask sets, per axis, whether the half-open intervals
// [min,max) of local and remote strictly overlap on that axis. Extent
// bounds follow the VTK convention of counting in points/cells directly
// (a width-4 block is [0,4), not [0,4]), so no +1 adjustment is needed:
// two blocks that merely abut at a shared face (A[1]==B[0]==4) do not
// overlap on that axis, while blocks with identical bounds on an axis do.
func ComputeOverlapMask(local, remote Extent) OverlapMask {
	var m OverlapMask
	for axis := 0; axis < 3; axis++ {
		lo, hi := local[2*axis], local[2*axis+1]
		rlo, rhi := remote[2*axis], remote[2*axis+1]
		start, end := lo, hi
		if rlo > start {
			start = rlo
		}
		if rhi < end {
			end = rhi
		}
		if start < end {
			m |= 1 << uint(axis)
		}
	}
	return m
}

// AdjacencyClass names the topological class of overlap between two
// adjacent blocks.
type AdjacencyClass int

const (
	NotAdjacent AdjacencyClass = iota
	FaceAdjacent
	EdgeAdjacent
	CornerAdjacent
)

func (c AdjacencyClass) String() string {
	switch c {
	case FaceAdjacent:
		return "face"
	case EdgeAdjacent:
		return "edge"
	case CornerAdjacent:
		return "corner"
	default:
		return "none"
	}
}

// Classify decides the adjacency class of a (dimensionality, adjacency
// mask, overlap mask) triple per spec section 4.1: a face adjacency has
// exactly one adjacency axis and overlap on every other non-degenerate
// axis; an edge adjacency has exactly two adjacency axes and overlap on
// the single remaining non-degenerate axis (if any); a corner adjacency
// has three adjacency axes and no overlap. Any other combination is not a
// valid adjacency for this dimensionality.
func Classify(local Extent, adj AdjacencyMask, overlap OverlapMask) AdjacencyClass {
	adjAxes := adj.AxisBits()
	adjCount := 0
	expectedOverlap := OverlapMask(0)
	for axis := 0; axis < 3; axis++ {
		if local.Degenerate(axis) {
			continue
		}
		if adjAxes[axis] {
			adjCount++
		} else {
			expectedOverlap |= 1 << uint(axis)
		}
	}
	if overlap != expectedOverlap {
		return NotAdjacent
	}
	switch adjCount {
	case 1:
		return FaceAdjacent
	case 2:
		return EdgeAdjacent
	case 3:
		return CornerAdjacent
	default:
		return NotAdjacent
	}
}
