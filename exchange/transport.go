// Package exchange holds the pieces of the exchange orchestration (C7):
// the Transport contract spec section 6 defers to an external collaborator
// and the wire types of its two rounds (descriptor broadcast, field
// payload). The rounds themselves are driven by the root ghostlayer
// package, per spec section 4.7.
package exchange

import (
	"context"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/extent"
)

// BlockDescriptor is the wire payload for round A (spec section 6's wire
// format table): a block's peeled extent plus family-specific geometry,
// enough for a remote process to build a block.Structure. Only the six
// materialized outer-face point layers travel for curvilinear blocks, never
// the full interior point set (spec section 6).
type BlockDescriptor struct {
	GlobalID  int
	OwnerRank int
	Extent    extent.Extent
	Family    block.Family

	Uniform          *block.UniformGeometry
	Rectilinear      *block.RectilinearGeometry
	CurvilinearFaces [6][]r3.Vec
}

// ToStructure builds the local Structure mirror a matcher consumes from a
// descriptor received over the wire.
func (d BlockDescriptor) ToStructure() *block.Structure {
	s := &block.Structure{
		GlobalID:            d.GlobalID,
		OwnerRank:           d.OwnerRank,
		Extent:              d.Extent,
		ExtentWithNewGhosts: d.Extent,
		Family:              d.Family,
		Uniform:             d.Uniform,
		Rectilinear:         d.Rectilinear,
	}
	if d.Family == block.Curvilinear {
		s.Curvilinear = &block.CurvilinearGeometry{OuterFaces: d.CurvilinearFaces}
	}
	return s
}

// NewDescriptor builds the round-A payload a local block advertises,
// materializing curvilinear outer faces eagerly since Points never travels.
func NewDescriptor(info *block.Information) BlockDescriptor {
	d := BlockDescriptor{
		GlobalID:    info.GlobalID,
		Extent:      info.Peeled,
		Family:      info.Family,
		Uniform:     info.Uniform,
		Rectilinear: info.Rectilinear,
	}
	if info.Family == block.Curvilinear && info.Curvilinear != nil {
		for f := extent.Face(0); f < 6; f++ {
			d.CurvilinearFaces[f] = info.Curvilinear.Face(f)
		}
	}
	return d
}

// FieldSend is one outgoing field payload for round B: the local field
// slice identified by the sender's input-side id list, destined for
// DestRank. NeighborGlobal is the sender's own global id, carried through
// unchanged to the recipient's FieldRecv so it can look up the link keyed
// by that sender.
type FieldSend struct {
	DestRank       int
	NeighborGlobal int
	Values         []float64
}

// FieldRecv is one incoming field payload for round B, tagged with the
// sender's identity so the caller can look up the matching output-side id
// list.
type FieldRecv struct {
	SourceRank     int
	NeighborGlobal int
	Values         []float64
}

// Transport is the black-box collaborator spec section 1 excludes from the
// core: block storage, an all-to-all primitive, and a neighborhood-exchange
// primitive. Modeled on btracey-mpi's Mpi interface, generalized to batch
// operations and with no package-global handle (spec section 9).
type Transport interface {
	Rank() int
	Size() int

	// AllToAllDescriptors implements round A: every process's descriptors
	// are broadcast to every other process. The returned slice is indexed
	// by sender rank; its entry for r == Rank() is nil.
	AllToAllDescriptors(ctx context.Context, out []BlockDescriptor) ([][]BlockDescriptor, error)

	// ExchangeFields implements round B: a neighborhood exchange restricted
	// to the discovered link set, not a full all-to-all.
	ExchangeFields(ctx context.Context, sends []FieldSend) ([]FieldRecv, error)
}
