package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvProfilerJudgeWorkers   = "OWNYOU_PROFILER_JUDGE_WORKERS"
	EnvProfilerBlockThreshold = "OWNYOU_PROFILER_BLOCK_THRESHOLD"
)

// ProfilerConfig tunes the profiling workflow: how many judge calls
// run concurrently per batch, and the evidence quality score below
// which a candidate is blocked from reconciliation.
type ProfilerConfig struct {
	JudgeWorkers   int     `toml:"judge_workers"`
	BlockThreshold float64 `toml:"block_threshold"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ProfilerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ProfilerConfig) Merge(overlay *ProfilerConfig) {
	if overlay.JudgeWorkers != 0 {
		c.JudgeWorkers = overlay.JudgeWorkers
	}
	if overlay.BlockThreshold != 0 {
		c.BlockThreshold = overlay.BlockThreshold
	}
}

func (c *ProfilerConfig) loadDefaults() {
	if c.JudgeWorkers == 0 {
		c.JudgeWorkers = 5
	}
	if c.BlockThreshold == 0 {
		c.BlockThreshold = 0.15
	}
}

func (c *ProfilerConfig) loadEnv() {
	if v := os.Getenv(EnvProfilerJudgeWorkers); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			c.JudgeWorkers = workers
		}
	}
	if v := os.Getenv(EnvProfilerBlockThreshold); v != "" {
		if threshold, err := strconv.ParseFloat(v, 64); err == nil {
			c.BlockThreshold = threshold
		}
	}
}

func (c *ProfilerConfig) validate() error {
	if c.JudgeWorkers < 1 {
		return fmt.Errorf("judge_workers must be at least 1, got %d", c.JudgeWorkers)
	}
	if c.BlockThreshold < 0 || c.BlockThreshold > 1 {
		return fmt.Errorf("block_threshold must be in [0.0, 1.0], got %v", c.BlockThreshold)
	}
	return nil
}
