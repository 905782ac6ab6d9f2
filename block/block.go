// Package block holds the per-block data model shared by every grid
// family: the locally owned BlockInformation, the remote BlockStructure
// mirror, and the Registry arena that owns the ghost coordinate segments
// link building accumulates.
package block

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/ghostlayer/extent"
)

// Family tags which grid geometry a block carries, replacing virtual
// dispatch with the tagged-variant descriptor spec section 9 calls for.
type Family int

const (
	Uniform Family = iota
	Rectilinear
	Curvilinear
)

func (f Family) String() string {
	switch f {
	case Uniform:
		return "uniform"
	case Rectilinear:
		return "rectilinear"
	case Curvilinear:
		return "curvilinear"
	default:
		return "unknown"
	}
}

// UniformGeometry is the {origin, spacing, orientation, dim} descriptor for
// a uniform grid, carried by both local BlockInformation and remote
// BlockStructure.
type UniformGeometry struct {
	Origin      [3]float64
	Spacing     [3]float64
	Orientation quat.Number
	Dim         int
}

// RectilinearGeometry holds the three per-axis coordinate arrays a
// rectilinear block carries, whether local (peeled, owned) or remote (as
// received over the wire).
type RectilinearGeometry struct {
	X, Y, Z []float64
}

// Coord returns the coordinate array for axis (0=X,1=Y,2=Z).
func (g *RectilinearGeometry) Coord(axis int) []float64 {
	switch axis {
	case 0:
		return g.X
	case 1:
		return g.Y
	default:
		return g.Z
	}
}

// SetCoord replaces the coordinate array for axis (0=X,1=Y,2=Z).
func (g *RectilinearGeometry) SetCoord(axis int, v []float64) {
	switch axis {
	case 0:
		g.X = v
	case 1:
		g.Y = v
	default:
		g.Z = v
	}
}

// PointSet is a flat, row-major array of point positions over a point
// extent, backing a curvilinear block's local geometry.
type PointSet struct {
	Extent extent.Extent
	Points []r3.Vec
}

// At returns the point at point-extent coordinate (i,j,k).
func (p *PointSet) At(i, j, k int) r3.Vec {
	nx := p.Extent.Width(0) + 1
	ny := p.Extent.Width(1) + 1
	idx := (i - p.Extent[0]) + (j-p.Extent[2])*nx + (k-p.Extent[4])*nx*ny
	return p.Points[idx]
}

// OuterFace materializes the 2-D layer of points lying on face f.
func (p *PointSet) OuterFace(f extent.Face) []r3.Vec {
	e := p.Extent
	axis := f.Axis()
	fixed := e[f]

	var u, v int
	switch axis {
	case 0:
		u, v = 1, 2
	case 1:
		u, v = 0, 2
	default:
		u, v = 0, 1
	}

	uLo, uHi := e[2*u], e[2*u+1]
	vLo, vHi := e[2*v], e[2*v+1]

	out := make([]r3.Vec, 0, (uHi-uLo+1)*(vHi-vLo+1))
	for b := vLo; b <= vHi; b++ {
		for a := uLo; a <= uHi; a++ {
			var i, j, k int
			coord := [3]int{}
			coord[axis] = fixed
			coord[u] = a
			coord[v] = b
			i, j, k = coord[0], coord[1], coord[2]
			out = append(out, p.At(i, j, k))
		}
	}
	return out
}

// CurvilinearGeometry is a curvilinear block's point-based geometry: a
// reference to the full local point set plus lazily materialized outer-face
// layers (local), or just the six received outer-face layers (remote).
type CurvilinearGeometry struct {
	Points     *PointSet
	OuterFaces [6][]r3.Vec
}

// Face returns the outer-face layer for f, materializing it from Points on
// first use if this geometry is local.
func (g *CurvilinearGeometry) Face(f extent.Face) []r3.Vec {
	if g.OuterFaces[f] == nil && g.Points != nil {
		g.OuterFaces[f] = g.Points.OuterFace(f)
	}
	return g.OuterFaces[f]
}

// GridInterface describes how a remote curvilinear face maps into a local
// face under a rotation/reflection of index axes, per spec section 3.
type GridInterface struct {
	ExtentID                   int
	StartX, EndX, StartY, EndY int
	XOrientation, YOrientation int
}

// Information is a locally owned block's state (spec section 3,
// BlockInformation). Peeled is the extent after ghost stripping (C2);
// GhostThickness accumulates per-face depth as C4 links neighbors.
type Information struct {
	GlobalID       int
	Peeled         extent.Extent
	GhostThickness [6]int
	Family         Family

	Uniform     *UniformGeometry
	Rectilinear *RectilinearGeometry
	Curvilinear *CurvilinearGeometry

	// Arena owns the coordinate buffers GhostCoord references. Allocated
	// lazily by AppendGhostCoord so a zero-value Information works for
	// families that never grow a coordinate buffer (spec section 9: "become
	// arena-owned buffers with index handles" instead of reference-counted
	// slices).
	Arena *Registry

	// GhostCoord holds, per face, a handle into Arena for the coordinate
	// samples appended to that side of the rectilinear axis during link
	// building (spec 4.4 step 2). A zero Handle with no prior Put is empty.
	// Indexed by extent.Face.
	GhostCoord    [6]Handle
	ghostCoordSet [6]bool
}

// AppendGhostCoord appends v to face f's ghost coordinate buffer, moving
// ownership into this Information's Arena and updating the handle. It
// allocates Arena on first use.
func (info *Information) AppendGhostCoord(f extent.Face, v []float64) {
	if info.Arena == nil {
		info.Arena = NewRegistry()
	}
	existing := info.GhostCoordFloats(f)
	info.GhostCoord[f] = info.Arena.PutFloats(append(append([]float64{}, existing...), v...))
	info.ghostCoordSet[f] = true
}

// GhostCoordFloats returns face f's accumulated ghost coordinates, or nil
// if AppendGhostCoord was never called for that face.
func (info *Information) GhostCoordFloats(f extent.Face) []float64 {
	if !info.ghostCoordSet[f] || info.Arena == nil {
		return nil
	}
	return info.Arena.Floats(info.GhostCoord[f])
}

// Structure is a remote neighbor's descriptor as seen locally (spec
// section 3, BlockStructure).
type Structure struct {
	GlobalID  int
	OwnerRank int

	Extent              extent.Extent
	ExtentWithNewGhosts extent.Extent
	AdjacencyMask       extent.AdjacencyMask
	Family              Family

	Uniform     *UniformGeometry
	Rectilinear *RectilinearGeometry
	Curvilinear *CurvilinearGeometry

	GridInterface *GridInterface
}
