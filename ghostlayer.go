// Package ghostlayer is the public entry point: three family-specific
// compute_ghosts operations (spec section 6) that wire C2 through C7 end to
// end. Selecting which of the three to call is the "thin public wrapper"
// spec section 1 places outside the core; each function itself is core.
package ghostlayer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/exchange"
	"github.com/notargets/ghostlayer/extent"
	"github.com/notargets/ghostlayer/ghosterr"
	"github.com/notargets/ghostlayer/grid"
	"github.com/notargets/ghostlayer/grid/curvilinear"
	"github.com/notargets/ghostlayer/grid/rectilinear"
	"github.com/notargets/ghostlayer/grid/uniform"
	"github.com/notargets/ghostlayer/hidden"
	"github.com/notargets/ghostlayer/interfaceid"
	"github.com/notargets/ghostlayer/link"
	"github.com/notargets/ghostlayer/peel"
)

// Input is one locally owned block as the core receives it: a raw extent
// that may already carry inputGhostLevels ghost layers, an optional
// cell-ghost marker array for C2 to peel against, and family-specific
// geometry.
type Input struct {
	GlobalID int
	Extent   extent.Extent
	// CellGhosts, when non-nil, marks existing ghost cells for peel.Peel.
	// Nil means the extent carries exactly inputGhostLevels uniform layers.
	CellGhosts []byte
	Family     block.Family

	Uniform           *block.UniformGeometry
	Rectilinear       *block.RectilinearGeometry
	CurvilinearPoints *block.PointSet
}

// NeighborLink is one surviving adjacency, with the four row-major id lists
// C5 computes for it.
type NeighborLink struct {
	NeighborGlobalID int
	NeighborRank     int

	InputCellIDs   []int
	InputPointIDs  []int
	OutputCellIDs  []int
	OutputPointIDs []int
}

// Output is the per-block result of a compute_ghosts call: the enlarged
// extent, its marker arrays (HIDDEN bits pre-painted by C6), and the link
// set C5's id lists are keyed against.
type Output struct {
	GlobalID     int
	PeeledExtent extent.Extent
	Extent       extent.Extent
	CellMarkers  []byte
	PointMarkers []byte
	Links        []NeighborLink
}

// ComputeUniformGhosts runs compute_ghosts for the uniform family.
func ComputeUniformGhosts(ctx context.Context, inputs []Input, inputGhostLevels, outputGhostLevels int, transport exchange.Transport, logger *zap.Logger) ([]*Output, error) {
	return computeGhosts(ctx, inputs, inputGhostLevels, outputGhostLevels, transport, logger, uniform.Matcher{})
}

// ComputeRectilinearGhosts runs compute_ghosts for the rectilinear family.
func ComputeRectilinearGhosts(ctx context.Context, inputs []Input, inputGhostLevels, outputGhostLevels int, transport exchange.Transport, logger *zap.Logger) ([]*Output, error) {
	return computeGhosts(ctx, inputs, inputGhostLevels, outputGhostLevels, transport, logger, rectilinear.Matcher{})
}

// ComputeCurvilinearGhosts runs compute_ghosts for the curvilinear family.
func ComputeCurvilinearGhosts(ctx context.Context, inputs []Input, inputGhostLevels, outputGhostLevels int, transport exchange.Transport, logger *zap.Logger) ([]*Output, error) {
	return computeGhosts(ctx, inputs, inputGhostLevels, outputGhostLevels, transport, logger, curvilinear.Matcher{})
}

func computeGhosts(
	ctx context.Context,
	inputs []Input,
	inputGhostLevels, outputGhostLevels int,
	transport exchange.Transport,
	logger *zap.Logger,
	matcher grid.Matcher,
) ([]*Output, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	infos := make([]*block.Information, len(inputs))
	outgoing := make([]exchange.BlockDescriptor, 0, len(inputs))
	for i, in := range inputs {
		info, err := peelInput(in, inputGhostLevels)
		if err != nil {
			logger.Warn("clearing block: invalid extent", zap.Int("blockGlobalID", in.GlobalID), zap.Error(err))
			infos[i] = info // Peeled left invalid; matching against it never succeeds.
			continue
		}
		infos[i] = info
		d := exchange.NewDescriptor(info)
		d.OwnerRank = transport.Rank()
		outgoing = append(outgoing, d)
	}

	byRank, err := transport.AllToAllDescriptors(ctx, outgoing)
	if err != nil {
		return nil, fmt.Errorf("round A descriptor exchange: %w", ghosterr.ErrTransportFailed)
	}

	builder := link.Builder{Logger: logger, OutputGhostLevels: outputGhostLevels}

	outputs := make([]*Output, len(infos))
	for i, info := range infos {
		if info == nil || !info.Peeled.Valid() {
			outputs[i] = &Output{GlobalID: inputs[i].GlobalID}
			continue
		}

		candidates := make([]link.Candidate, 0)
		remoteByGlobalID := make(map[int]*block.Structure)
		remoteRankByGlobalID := make(map[int]int)

		tryCandidate := func(d exchange.BlockDescriptor, rank int) {
			if d.GlobalID == info.GlobalID && rank == transport.Rank() {
				return
			}
			remote := d.ToStructure()
			if !remote.Extent.Valid() {
				return
			}
			shifted, ok := matcher.TryMatch(info, remote)
			if !ok {
				return
			}
			candidates = append(candidates, link.Candidate{Remote: remote, Shifted: shifted})
			remoteByGlobalID[remote.GlobalID] = remote
			remoteRankByGlobalID[remote.GlobalID] = rank
		}

		for rank, descs := range byRank {
			if rank == transport.Rank() {
				continue
			}
			for _, d := range descs {
				tryCandidate(d, rank)
			}
		}
		// Sibling blocks on this same process are never round-tripped
		// through the transport; match them directly against each other.
		for j, sibling := range infos {
			if j == i || sibling == nil || !sibling.Peeled.Valid() {
				continue
			}
			tryCandidate(exchange.NewDescriptor(sibling), transport.Rank())
		}

		linked := builder.Build(info, candidates)
		outputExtent := link.OutputExtent(info)

		out := &Output{
			GlobalID:     info.GlobalID,
			PeeledExtent: info.Peeled,
			Extent:       outputExtent,
		}
		out.CellMarkers = make([]byte, cellCount(outputExtent))
		out.PointMarkers = make([]byte, pointCount(outputExtent))
		hidden.PaintCells(outputExtent, info.Peeled, out.CellMarkers)
		hidden.PaintPoints(outputExtent, info.Peeled, out.PointMarkers)

		for _, gid := range linked {
			remote := remoteByGlobalID[gid]
			var shifted extent.Extent
			for _, c := range candidates {
				if c.Remote.GlobalID == gid {
					shifted = c.Shifted
					break
				}
			}
			adj := remote.AdjacencyMask

			// The neighbor's ExtentWithNewGhosts lives in the neighbor's own
			// frame; translate it into ours by porting the per-face
			// widening delta onto shifted (valid since C4 only ever widens
			// a single bound per matched face, a pure per-axis offset).
			remoteWidenedLocal := shifted
			for k := 0; k < 6; k++ {
				remoteWidenedLocal[k] += remote.ExtentWithNewGhosts[k] - remote.Extent[k]
			}

			nl := NeighborLink{
				NeighborGlobalID: gid,
				NeighborRank:     remoteRankByGlobalID[gid],
				InputCellIDs:     interfaceid.CellIDs(info.Peeled, remoteWidenedLocal),
				InputPointIDs:    interfaceid.PointIDs(info.Peeled, remoteWidenedLocal, adj),
				OutputCellIDs:    interfaceid.CellIDs(outputExtent, shifted),
				OutputPointIDs:   interfaceid.OutputPointIDs(outputExtent, shifted, adj),
			}
			out.Links = append(out.Links, nl)
		}
		outputs[i] = out
	}
	return outputs, nil
}

// peelInput runs C2 over a raw input, producing the BlockInformation that
// everything downstream operates on.
func peelInput(in Input, inputGhostLevels int) (*block.Information, error) {
	peeled := peel.Peel(in.Extent, in.CellGhosts, inputGhostLevels)
	info := &block.Information{
		GlobalID:    in.GlobalID,
		Peeled:      peeled,
		Family:      in.Family,
		Uniform:     in.Uniform,
		Rectilinear: in.Rectilinear,
	}
	if in.Family == block.Curvilinear && in.CurvilinearPoints != nil {
		info.Curvilinear = &block.CurvilinearGeometry{Points: in.CurvilinearPoints}
	}
	if !peeled.Valid() {
		return info, fmt.Errorf("block %d: %w", in.GlobalID, ghosterr.ErrInvalidExtent)
	}
	return info, nil
}

// FieldKind selects which marker vocabulary and id lists a field exchange
// uses: cell-centered or point-centered data.
type FieldKind int

const (
	CellField FieldKind = iota
	PointField
)

// ExchangeCellField runs C7 round B for one cell-centered field: it sends
// localField[link.InputCellIDs] to each linked neighbor's rank, and writes
// the values it receives back into output, indexed by link.OutputCellIDs.
// Cells that receive data are marked DUPLICATE and have their HIDDEN bit
// cleared, since they are now filled copies rather than dangling halo.
func ExchangeCellField(ctx context.Context, transport exchange.Transport, out *Output, localField []float64) ([]float64, error) {
	return exchangeField(ctx, transport, out, localField, CellField)
}

// ExchangePointField is ExchangeCellField's point-centered counterpart.
func ExchangePointField(ctx context.Context, transport exchange.Transport, out *Output, localField []float64) ([]float64, error) {
	return exchangeField(ctx, transport, out, localField, PointField)
}

func exchangeField(ctx context.Context, transport exchange.Transport, out *Output, localField []float64, kind FieldKind) ([]float64, error) {
	result := make([]float64, resultLen(out, kind))

	sends := make([]exchange.FieldSend, 0, len(out.Links))
	for _, nl := range out.Links {
		ids := nl.InputCellIDs
		if kind == PointField {
			ids = nl.InputPointIDs
		}
		values := make([]float64, len(ids))
		for i, id := range ids {
			if id >= 0 && id < len(localField) {
				values[i] = localField[id]
			}
		}
		sends = append(sends, exchange.FieldSend{
			DestRank:       nl.NeighborRank,
			NeighborGlobal: out.GlobalID,
			Values:         values,
		})
	}

	recvs, err := transport.ExchangeFields(ctx, sends)
	if err != nil {
		return nil, fmt.Errorf("round B field exchange: %w", ghosterr.ErrTransportFailed)
	}

	markers := out.CellMarkers
	duplicateBit := hidden.DuplicateCell
	hiddenBit := hidden.HiddenCell
	if kind == PointField {
		markers = out.PointMarkers
		duplicateBit = hidden.DuplicatePoint
		hiddenBit = hidden.HiddenPoint
	}

	for _, r := range recvs {
		nl := findLink(out.Links, r.NeighborGlobal)
		if nl == nil {
			continue
		}
		ids := nl.OutputCellIDs
		if kind == PointField {
			ids = nl.OutputPointIDs
		}
		for i, id := range ids {
			if i >= len(r.Values) || id < 0 || id >= len(result) {
				continue
			}
			result[id] = r.Values[i]
			if id < len(markers) {
				markers[id] |= duplicateBit
				markers[id] &^= hiddenBit
			}
		}
	}
	return result, nil
}

func findLink(links []NeighborLink, globalID int) *NeighborLink {
	for i := range links {
		if links[i].NeighborGlobalID == globalID {
			return &links[i]
		}
	}
	return nil
}

func resultLen(out *Output, kind FieldKind) int {
	if kind == PointField {
		return len(out.PointMarkers)
	}
	return len(out.CellMarkers)
}

func cellCount(e extent.Extent) int {
	n := 1
	for axis := 0; axis < 3; axis++ {
		w := e.Width(axis)
		if w <= 0 {
			w = 1
		}
		n *= w
	}
	return n
}

func pointCount(e extent.Extent) int {
	n := 1
	for axis := 0; axis < 3; axis++ {
		n *= e.Width(axis) + 1
	}
	return n
}
