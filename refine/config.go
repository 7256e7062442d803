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

package refine

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for an LLM-backed refiner.
type Config struct {
	// Host is the base URL for an OpenAI-compatible chat API.
	// Example: "https://api.openai.com/v1" or "http://localhost:11434/v1"
	Host string

	// Model is the chat model identifier.
	// Example: "gpt-4o-mini", "qwen2.5:3b"
	Model string

	// APIKey authenticates against Host. Local servers accept any value.
	APIKey string

	// Timeout bounds a refinement call, including retries.
	// Default: 10s
	Timeout time.Duration

	// MaxAttempts is how many times a failed model call is tried.
	// Default: 2
	MaxAttempts int

	// RetryDelay is the wait before the first retry; it doubles after
	// each failure.
	// Default: 250ms
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the API host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithRetry sets the attempt count and initial backoff for model calls.
func WithRetry(maxAttempts int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = maxAttempts
		c.RetryDelay = delay
	}
}

// DefaultConfig returns a Config for a local OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Host:        "http://localhost:11434/v1",
		Model:       "qwen2.5:3b",
		APIKey:      "none",
		Timeout:     10 * time.Second,
		MaxAttempts: 2,
		RetryDelay:  250 * time.Millisecond,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("https://api.openai.com/v1"),
//	    WithModel("gpt-4o-mini"),
//	    WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
	if c.APIKey == "" {
		c.APIKey = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("refine config: Host is required")
	}
	if c.Model == "" {
		return errors.New("refine config: Model is required")
	}
	if c.Timeout <= 0 {
		return errors.New("refine config: Timeout must be positive")
	}
	if c.MaxAttempts < 1 {
		return errors.New("refine config: MaxAttempts must be at least 1")
	}
	if c.RetryDelay < 0 {
		return errors.New("refine config: RetryDelay must not be negative")
	}
	return nil
}
