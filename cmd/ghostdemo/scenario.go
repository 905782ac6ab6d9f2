package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes a uniform-grid demo run: a rectangular arrangement of
// equal-sized blocks along each axis, read from a YAML file.
type Scenario struct {
	BlocksX int `yaml:"blocksX"`
	BlocksY int `yaml:"blocksY"`
	BlocksZ int `yaml:"blocksZ"`

	BlockWidth  int `yaml:"blockWidth"`
	BlockHeight int `yaml:"blockHeight"`
	BlockDepth  int `yaml:"blockDepth"`

	InputGhostLevels  int `yaml:"inputGhostLevels"`
	OutputGhostLevels int `yaml:"outputGhostLevels"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if s.BlocksX <= 0 || s.BlocksY <= 0 || s.BlocksZ <= 0 {
		return nil, fmt.Errorf("scenario: blocksX/blocksY/blocksZ must each be >= 1")
	}
	if s.BlockWidth <= 0 || s.BlockHeight <= 0 || s.BlockDepth <= 0 {
		return nil, fmt.Errorf("scenario: blockWidth/blockHeight/blockDepth must each be >= 1")
	}
	return &s, nil
}

// RankCount is the number of simulated processes: one per block in the
// layout, matching the demo's "one goroutine per simulated process" model.
func (s *Scenario) RankCount() int {
	return s.BlocksX * s.BlocksY * s.BlocksZ
}
