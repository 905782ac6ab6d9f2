// Package grid defines the capability trait spec section 9 calls for: one
// Matcher per grid family, dispatched through a tagged-variant descriptor
// (block.Family) instead of virtual dispatch.
package grid

import (
	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/extent"
)

// Matcher decides whether a local block and a remote block descriptor
// describe spatially adjacent regions, returning the remote extent shifted
// into the local frame on success (spec section 4.3).
type Matcher interface {
	TryMatch(local *block.Information, remote *block.Structure) (shifted extent.Extent, ok bool)
}
