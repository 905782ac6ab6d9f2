// Package extent implements the six-integer box algebra that underlies
// every grid family: validity, degeneracy, and the adjacency/overlap
// bitmasks used to classify how two blocks touch.
package extent

import "fmt"

// Face names the six sides of a block, in the same order the six-integer
// extent stores its bounds.
type Face int

const (
	Left Face = iota
	Right
	Front
	Back
	Bottom
	Top
)

func (f Face) String() string {
	switch f {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Front:
		return "Front"
	case Back:
		return "Back"
	case Bottom:
		return "Bottom"
	case Top:
		return "Top"
	default:
		return fmt.Sprintf("Face(%d)", int(f))
	}
}

// Opposite returns the face on the other end of the same axis.
func (f Face) Opposite() Face {
	return f ^ 1
}

// Axis returns the axis index (0=X, 1=Y, 2=Z) this face lies on.
func (f Face) Axis() int {
	return int(f) / 2
}

// Extent is an ordered six-tuple [x0,x1,y0,y1,z0,z1] of inclusive logical
// coordinates. Extent[f] for a Face f gives that face's bound.
type Extent [6]int

// New builds an Extent from explicit per-axis bounds.
func New(x0, x1, y0, y1, z0, z1 int) Extent {
	return Extent{x0, x1, y0, y1, z0, z1}
}

// Valid reports whether every axis has min <= max.
func (e Extent) Valid() bool {
	return e[0] <= e[1] && e[2] <= e[3] && e[4] <= e[5]
}

// Degenerate reports whether axis a (0=X,1=Y,2=Z) has min == max.
func (e Extent) Degenerate(axis int) bool {
	return e[2*axis] == e[2*axis+1]
}

// Dimensionality returns the number of non-degenerate axes, in {0,1,2,3}.
func (e Extent) Dimensionality() int {
	d := 0
	for axis := 0; axis < 3; axis++ {
		if !e.Degenerate(axis) {
			d++
		}
	}
	return d
}

// Width returns the number of cells along axis (0=X,1=Y,2=Z).
func (e Extent) Width(axis int) int {
	return e[2*axis+1] - e[2*axis]
}

// Shift translates the extent by delta on each axis.
func (e Extent) Shift(dx, dy, dz int) Extent {
	return Extent{e[0] + dx, e[1] + dx, e[2] + dy, e[3] + dy, e[4] + dz, e[5] + dz}
}

// WidenFace returns a copy of e with face f pushed outward by depth cells.
// Left/Front/Bottom move outward by decreasing their bound; Right/Back/Top
// by increasing it.
func (e Extent) WidenFace(f Face, depth int) Extent {
	out := e
	if depth <= 0 {
		return out
	}
	if int(f)%2 == 0 {
		out[f] -= depth
	} else {
		out[f] += depth
	}
	return out
}

// Intersect returns the intersection of two extents. The result may be
// invalid (min > max on some axis) if the extents do not overlap; callers
// that need a strict overlap test should use OverlapMask instead.
func (a Extent) Intersect(b Extent) Extent {
	return Extent{
		max(a[0], b[0]), min(a[1], b[1]),
		max(a[2], b[2]), min(a[3], b[3]),
		max(a[4], b[4]), min(a[5], b[5]),
	}
}
