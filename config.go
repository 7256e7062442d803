// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package leveler

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/poiesic/leveler/refine"
	"github.com/poiesic/leveler/retrieval"
)

// Config holds the settings used to assemble a Service.
type Config struct {
	// Dimensions is the width of the hashed feature space.
	// Default: 2048
	Dimensions int

	// Strategy selects the retrieval backend.
	// Default: retrieval.StrategyAuto
	Strategy retrieval.Strategy

	// InvertedThreshold is the corpus size at which StrategyAuto switches
	// to the inverted backend.
	// Default: retrieval.DefaultInvertedThreshold
	InvertedThreshold int

	// PoolSize bounds the workers featurizing the corpus at startup.
	// Default: NumCPU/2, minimum 1
	PoolSize int

	// RefinePolicy appends the LLM policy sentence to every summary. It is
	// derived from credential presence at the process boundary.
	RefinePolicy bool

	// LLM enables the model-backed refiner when set.
	LLM *refine.Config

	// InMemory opens the benchmark store without touching disk.
	InMemory bool
}

// Option configures a Config.
type Option func(*Config)

// WithDimensions sets the feature space width.
func WithDimensions(dims int) Option {
	return func(c *Config) {
		c.Dimensions = dims
	}
}

// WithStrategy sets the retrieval backend.
func WithStrategy(strategy retrieval.Strategy) Option {
	return func(c *Config) {
		c.Strategy = strategy
	}
}

// WithInvertedThreshold sets the auto strategy cutover.
func WithInvertedThreshold(records int) Option {
	return func(c *Config) {
		c.InvertedThreshold = records
	}
}

// WithPoolSize sets the featurization worker count.
func WithPoolSize(size int) Option {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithRefinePolicy toggles the policy suffix.
func WithRefinePolicy(enabled bool) Option {
	return func(c *Config) {
		c.RefinePolicy = enabled
	}
}

// WithLLM enables the model-backed refiner.
func WithLLM(cfg *refine.Config) Option {
	return func(c *Config) {
		c.LLM = cfg
	}
}

// WithInMemory keeps the benchmark store in memory.
func WithInMemory(inMemory bool) Option {
	return func(c *Config) {
		c.InMemory = inMemory
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dimensions:        2048,
		Strategy:          retrieval.StrategyAuto,
		InvertedThreshold: retrieval.DefaultInvertedThreshold,
		PoolSize:          max(1, runtime.NumCPU()/2),
	}
}

// NewConfig creates a Config from defaults and the given options.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Dimensions <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %d", ErrInvalidConfig, c.Dimensions)
	}
	if _, err := retrieval.ParseStrategy(string(c.Strategy)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.InvertedThreshold < 0 {
		return fmt.Errorf("%w: inverted threshold must not be negative, got %d", ErrInvalidConfig, c.InvertedThreshold)
	}
	if c.PoolSize <= 0 {
		return fmt.Errorf("%w: pool size must be positive, got %d", ErrInvalidConfig, c.PoolSize)
	}
	if c.LLM != nil {
		if err := c.LLM.Validate(); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}
	return nil
}
