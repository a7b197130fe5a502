// Package models provides inference engine adapters for third-party model
// libraries.
package models

import (
	"context"
	"fmt"

	"github.com/corralhq/corral"
	"github.com/tmc/langchaingo/llms"
)

// LCGInference wraps an llms.Model and implements corral's LocalInference
// interface, so any LangChainGo-supported provider can back a model-based
// validator.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	engine := models.NewLCGInference(llm).WithModelName("gpt-4o-mini")
//
//	v, err := corral.New(reg, "on-topic",
//	    corral.WithKwarg("topics", "billing,shipping"),
//	    corral.WithLocalInference(engine),
//	    corral.WithUseLocal(true),
//	)
type LCGInference struct {
	model     llms.Model
	modelName string // Optional model override passed as a call option
	options   []llms.CallOption
}

// NewLCGInference creates an LCGInference wrapping the given llms.Model.
func NewLCGInference(model llms.Model) *LCGInference {
	return &LCGInference{
		model: model,
	}
}

// WithModelName sets the model name passed on each call. Returns the engine
// for chaining.
func (m *LCGInference) WithModelName(name string) *LCGInference {
	m.modelName = name
	return m
}

// WithCallOptions appends LangChainGo call options (temperature, max tokens,
// stop words) applied to every inference call. Returns the engine for
// chaining.
func (m *LCGInference) WithCallOptions(options ...llms.CallOption) *LCGInference {
	m.options = append(m.options, options...)
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *LCGInference) Unwrap() llms.Model {
	return m.model
}

// Infer implements corral.LocalInference. The input must be the prompt
// string built by the validator; the model's completion text is returned
// as a string.
func (m *LCGInference) Infer(ctx context.Context, input any) (any, error) {
	prompt, ok := input.(string)
	if !ok {
		return nil, fmt.Errorf("models: expected string prompt, got %T", input)
	}

	options := m.options
	if m.modelName != "" {
		options = append(append([]llms.CallOption{}, m.options...), llms.WithModel(m.modelName))
	}

	completion, err := llms.GenerateFromSinglePrompt(ctx, m.model, prompt, options...)
	if err != nil {
		return nil, fmt.Errorf("models: inference call failed: %w", err)
	}
	return completion, nil
}

// Compile-time check that LCGInference implements LocalInference.
var _ corral.LocalInference = (*LCGInference)(nil)
