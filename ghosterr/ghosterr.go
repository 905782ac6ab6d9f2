// Package ghosterr defines the sentinel error kinds named by spec section
// 7: InvalidInput, MaskViolation, and TransportFailure. MatchAmbiguity is
// deliberately not an error (spec: "do not signal an error") and has no
// sentinel here.
package ghosterr

import "errors"

var (
	// ErrInvalidExtent marks a block whose extent has min > max on some
	// axis. The block's BlockStructures are cleared; it sends and
	// receives nothing, but peers are not aborted.
	ErrInvalidExtent = errors.New("ghostlayer: invalid extent")

	// ErrMaskViolation marks an adjacency mask inconsistent with the
	// block's dimensionality (e.g. an edge bit on a 1-D grid). The
	// offending neighbor is dropped.
	ErrMaskViolation = errors.New("ghostlayer: adjacency mask inconsistent with dimensionality")

	// ErrTransportFailed marks a fatal failure surfaced by the transport.
	// The operation aborts; there is no retry.
	ErrTransportFailed = errors.New("ghostlayer: transport failure")
)
