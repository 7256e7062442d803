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

// Package openai implements refine.Refiner with an OpenAI-compatible chat model.
//
// The model is asked for one sentence of guidance to follow a ladder's
// executive summary. The sentence is appended; the summary itself is never
// rewritten.
//
//	cfg := refine.NewConfig(
//	    refine.WithHost("https://api.openai.com/v1"),
//	    refine.WithModel("gpt-4o-mini"),
//	    refine.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	)
//	refiner, err := openai.NewRefiner(cfg)
package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poiesic/leveler/refine"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const systemPrompt = `You review job-leveling summaries produced from peer benchmark data.
Write exactly one additional sentence of practical guidance for the HR team that will adopt the ladder.
Do not repeat numbers from the summary and do not contradict it.
Respond with the sentence only: no preamble, no quotes, no markdown.`

// maxSentenceLength bounds the appended text.
const maxSentenceLength = 400

// ErrEmptyResponse is returned when the model produces no usable text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// contentGenerator is the subset of llms.Model the refiner uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Refiner implements refine.Refiner using an OpenAI-compatible chat API.
type Refiner struct {
	client      contentGenerator
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

var _ refine.Refiner = (*Refiner)(nil)

// NewRefiner creates a refiner from config.
func NewRefiner(config *refine.Config) (*Refiner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}
	r := newRefiner(client, config.Timeout)
	r.maxAttempts = config.MaxAttempts
	r.retryDelay = config.RetryDelay
	return r, nil
}

func newRefiner(client contentGenerator, timeout time.Duration) *Refiner {
	return &Refiner{
		client:      client,
		timeout:     timeout,
		maxAttempts: 1,
		logger:      slog.Default().With("component", "openai-refiner"),
	}
}

// Refine asks the model for one sentence to follow summary and returns it
// with a leading space.
func (r *Refiner) Refine(ctx context.Context, summary string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(summary)},
		},
	}

	var response *llms.ContentResponse
	err := refine.RetryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		response, err = r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
		return err
	}, r.maxAttempts, r.retryDelay)
	if err != nil {
		r.logger.Error("failed to generate content", "err", err)
		return "", err
	}
	if response == nil || len(response.Choices) < 1 {
		r.logger.Debug("no choices returned from model")
		return "", ErrEmptyResponse
	}

	sentence := cleanSentence(response.Choices[0].Content)
	if sentence == "" {
		return "", ErrEmptyResponse
	}
	r.logger.Debug("refined summary", "appended", len(sentence))
	return " " + sentence, nil
}

// cleanSentence strips code fences, quotes and line breaks from model output.
func cleanSentence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, "\"'`")
	s = strings.TrimSpace(s)
	if len(s) > maxSentenceLength {
		n := maxSentenceLength
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = strings.TrimSpace(s[:n])
	}
	return s
}
