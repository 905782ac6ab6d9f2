// Command ghostdemo runs the ghost-exchange core over a synthetic uniform
// grid layout described by a YAML scenario file, one goroutine per
// simulated process wired through exchange/localtransport. This is the
// thin public wrapper spec.md section 1 places outside the core: it only
// calls the three compute_ghosts entry points.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/num/quat"

	"github.com/notargets/ghostlayer"
	"github.com/notargets/ghostlayer/block"
	"github.com/notargets/ghostlayer/exchange/localtransport"
	"github.com/notargets/ghostlayer/extent"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ghostdemo <scenario.yaml>",
		Short: "Run the ghost-layer exchange core over a synthetic uniform grid layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	return cmd
}

func run(scenarioPath string) error {
	scenario, err := loadScenario(scenarioPath)
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	inputs := buildBlockLayout(scenario)
	world := localtransport.NewWorld(scenario.RankCount())

	var wg sync.WaitGroup
	outputs := make([][]*ghostlayer.Output, len(inputs))
	errs := make([]error, len(inputs))
	for rank, in := range inputs {
		wg.Add(1)
		go func(rank int, in ghostlayer.Input) {
			defer wg.Done()
			out, err := ghostlayer.ComputeUniformGhosts(
				context.Background(),
				[]ghostlayer.Input{in},
				scenario.InputGhostLevels,
				scenario.OutputGhostLevels,
				world.Rank(rank),
				logger.Named(fmt.Sprintf("rank%d", rank)),
			)
			outputs[rank] = out
			errs[rank] = err
		}(rank, in)
	}
	wg.Wait()

	for rank, err := range errs {
		if err != nil {
			return fmt.Errorf("rank %d: %w", rank, err)
		}
	}

	for rank, outs := range outputs {
		for _, out := range outs {
			neighborIDs := make([]int, len(out.Links))
			for i, nl := range out.Links {
				neighborIDs[i] = nl.NeighborGlobalID
			}
			logger.Info("block computed",
				zap.Int("rank", rank),
				zap.Int("blockGlobalID", out.GlobalID),
				zap.Any("peeledExtent", out.PeeledExtent),
				zap.Any("outputExtent", out.Extent),
				zap.Ints("linkedNeighbors", neighborIDs),
			)
		}
	}
	return nil
}

// buildBlockLayout tiles BlocksX x BlocksY x BlocksZ uniform blocks of the
// scenario's dimensions, each carrying scenario.InputGhostLevels of uniform
// ghost padding so the demo exercises C2 as well as matching.
func buildBlockLayout(s *Scenario) []ghostlayer.Input {
	inputs := make([]ghostlayer.Input, 0, s.RankCount())
	gid := 0
	for bz := 0; bz < s.BlocksZ; bz++ {
		for by := 0; by < s.BlocksY; by++ {
			for bx := 0; bx < s.BlocksX; bx++ {
				x0 := bx*s.BlockWidth - s.InputGhostLevels
				y0 := by*s.BlockHeight - s.InputGhostLevels
				z0 := bz*s.BlockDepth - s.InputGhostLevels
				e := extent.New(
					x0, x0+s.BlockWidth+2*s.InputGhostLevels,
					y0, y0+s.BlockHeight+2*s.InputGhostLevels,
					z0, z0+s.BlockDepth+2*s.InputGhostLevels,
				)
				inputs = append(inputs, ghostlayer.Input{
					GlobalID: gid,
					Extent:   e,
					Family:   block.Uniform,
					Uniform: &block.UniformGeometry{
						Origin:      [3]float64{0, 0, 0},
						Spacing:     [3]float64{1, 1, 1},
						Orientation: quat.Number{Real: 1},
						Dim:         3,
					},
				})
				gid++
			}
		}
	}
	return inputs
}
