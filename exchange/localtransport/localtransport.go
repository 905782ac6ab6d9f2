// Package localtransport implements exchange.Transport as goroutines
// sharing one process, for tests and the demo CLI. Grounded on
// btracey-mpi's Mpi interface shape (Rank/Size/Send/Receive), but threaded
// through an explicit constructor rather than a package-global
// Register/mpier pair, per spec section 9's rule against global
// per-process state.
package localtransport

import (
	"context"
	"fmt"
	"sync"

	"github.com/notargets/ghostlayer/exchange"
)

// World is the shared state every simulated rank's Transport talks
// through: one goroutine per rank, one sync.WaitGroup-style barrier per
// round (spec section 5's "two blocking points").
type World struct {
	size int

	descMu  sync.Mutex
	descBox [][]exchange.BlockDescriptor
	descBar *barrier

	fieldMu  sync.Mutex
	fieldBox [][]exchange.FieldSend
	fieldBar *barrier
}

// NewWorld creates a World sized for size simulated ranks.
func NewWorld(size int) *World {
	return &World{
		size:    size,
		descBox: make([][]exchange.BlockDescriptor, size),
		descBar: newBarrier(size),
		fieldBox: make([][]exchange.FieldSend, size),
		fieldBar: newBarrier(size),
	}
}

// Rank returns the Transport handle for simulated rank r. Each goroutine
// playing a rank in a test or the demo CLI calls this once.
func (w *World) Rank(r int) exchange.Transport {
	return &Transport{world: w, rank: r}
}

// Transport is one simulated rank's view of a World.
type Transport struct {
	world *World
	rank  int
}

func (t *Transport) Rank() int { return t.rank }
func (t *Transport) Size() int { return t.world.size }

// AllToAllDescriptors posts out into the shared mailbox, waits for every
// rank to post, then returns every other rank's posted slice.
func (t *Transport) AllToAllDescriptors(ctx context.Context, out []exchange.BlockDescriptor) ([][]exchange.BlockDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("localtransport: %w", err)
	}
	w := t.world
	w.descMu.Lock()
	w.descBox[t.rank] = out
	w.descMu.Unlock()

	if err := w.descBar.wait(ctx); err != nil {
		return nil, err
	}

	result := make([][]exchange.BlockDescriptor, w.size)
	for r := 0; r < w.size; r++ {
		if r == t.rank {
			continue
		}
		result[r] = w.descBox[r]
	}

	// Second phase: block until every rank has read the round's mailbox
	// before the slots are reused by a later round.
	if err := w.descBar.wait(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// ExchangeFields posts sends into the shared mailbox, waits for every rank
// to post, then returns every send addressed to this rank.
func (t *Transport) ExchangeFields(ctx context.Context, sends []exchange.FieldSend) ([]exchange.FieldRecv, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("localtransport: %w", err)
	}
	w := t.world
	w.fieldMu.Lock()
	w.fieldBox[t.rank] = sends
	w.fieldMu.Unlock()

	if err := w.fieldBar.wait(ctx); err != nil {
		return nil, err
	}

	var recvs []exchange.FieldRecv
	for r := 0; r < w.size; r++ {
		if r == t.rank {
			continue
		}
		for _, s := range w.fieldBox[r] {
			if s.DestRank != t.rank {
				continue
			}
			recvs = append(recvs, exchange.FieldRecv{
				SourceRank:     r,
				NeighborGlobal: s.NeighborGlobal,
				Values:         s.Values,
			})
		}
	}

	if err := w.fieldBar.wait(ctx); err != nil {
		return nil, err
	}
	return recvs, nil
}

// barrier is a reusable cyclic turnstile: n goroutines call wait and none
// proceed until all n have arrived, and the barrier resets for its next use.
type barrier struct {
	n       int
	mu      sync.Mutex
	count   int
	turn    chan struct{}
}

func newBarrier(n int) *barrier {
	return &barrier{n: n, turn: make(chan struct{})}
}

func (b *barrier) wait(ctx context.Context) error {
	b.mu.Lock()
	b.count++
	if b.count == b.n {
		b.count = 0
		close(b.turn)
		b.turn = make(chan struct{})
		b.mu.Unlock()
		return nil
	}
	ch := b.turn
	b.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("localtransport: barrier wait: %w", ctx.Err())
	}
}
