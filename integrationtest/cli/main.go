// Package main provides an interactive CLI for exercising validator
// pipelines against hand-typed text, streamed chunk by chunk.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/corralhq/corral"
	"github.com/corralhq/corral/hooks"
	"github.com/corralhq/corral/validators"
)

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
)

// streamChunkSize simulates token-sized fragments arriving from a model.
const streamChunkSize = 5

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n",
			colorRed, err, colorReset)
		os.Exit(1)
	}
}

type menuItem struct {
	name        string
	description string
	build       func(reg *corral.Registry, registry *hooks.Registry) ([]*corral.Validator, error)
}

func run() error {
	reg := corral.NewRegistry()
	validators.RegisterBuiltins(reg)

	registry := hooks.NewRegistry()
	registry.Register(&tracingHook{})

	menuItems := []menuItem{
		{
			name:        "Lower Case (fix)",
			description: "Lowers any upper-case text",
			build: func(reg *corral.Registry, h *hooks.Registry) ([]*corral.Validator, error) {
				v, err := corral.New(reg, "lower-case",
					corral.WithOnFail(corral.OnFailFix),
					corral.WithHooks(h))
				if err != nil {
					return nil, err
				}
				return []*corral.Validator{v}, nil
			},
		},
		{
			name:        "Length 10-80 (fix)",
			description: "Truncates or pads each sentence into bounds",
			build: func(reg *corral.Registry, h *hooks.Registry) ([]*corral.Validator, error) {
				v, err := corral.New(reg, "length",
					corral.WithKwarg("min", "10"),
					corral.WithKwarg("max", "80"),
					corral.WithOnFail(corral.OnFailFix),
					corral.WithHooks(h))
				if err != nil {
					return nil, err
				}
				return []*corral.Validator{v}, nil
			},
		},
		{
			name:        "Profanity Free (filter)",
			description: "Drops sentences containing blocked terms",
			build: func(reg *corral.Registry, h *hooks.Registry) ([]*corral.Validator, error) {
				v, err := corral.New(reg, "profanity-free",
					corral.WithOnFail(corral.OnFailFilter),
					corral.WithHooks(h))
				if err != nil {
					return nil, err
				}
				return []*corral.Validator{v}, nil
			},
		},
		{
			name:        "Date Format (exception)",
			description: "Requires each sentence to start with YYYY-MM-DD",
			build: func(reg *corral.Registry, h *hooks.Registry) ([]*corral.Validator, error) {
				v, err := corral.New(reg, "regex-match",
					corral.WithKwarg("regex", `^\d{4}-\d{2}-\d{2}`),
					corral.WithOnFail(corral.OnFailException),
					corral.WithHooks(h))
				if err != nil {
					return nil, err
				}
				return []*corral.Validator{v}, nil
			},
		},
		{
			name:        "Pipeline: lower + clean (fix, refrain)",
			description: "Lowers text, refrains on blocked terms",
			build: func(reg *corral.Registry, h *hooks.Registry) ([]*corral.Validator, error) {
				lower, err := corral.New(reg, "lower-case",
					corral.WithOnFail(corral.OnFailFix),
					corral.WithHooks(h))
				if err != nil {
					return nil, err
				}
				clean, err := corral.New(reg, "profanity-free",
					corral.WithOnFail(corral.OnFailRefrain),
					corral.WithHooks(h))
				if err != nil {
					return nil, err
				}
				return []*corral.Validator{lower, clean}, nil
			},
		},
	}

	fmt.Printf("%s%sAvailable Pipelines:%s\n",
		colorBold, colorYellow, colorReset)
	fmt.Printf("%s%s%s\n",
		colorYellow,
		strings.Repeat("=", 20),
		colorReset)
	for i, item := range menuItems {
		fmt.Printf("  %s%d.%s %s%s%s - %s\n",
			colorCyan, i+1, colorReset,
			colorWhite, item.name, colorReset,
			item.description)
	}
	fmt.Println()

	rl, err := readline.New(
		colorCyan +
			"Enter selection (or 'q' to quit): " +
			colorReset)
	if err != nil {
		return fmt.Errorf(
			"failed to create readline: %w", err)
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Printf(
					"\n%sGoodbye!%s\n",
					colorGreen, colorReset)
				return nil
			}
			return fmt.Errorf(
				"failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "q" || input == "Q" {
			fmt.Printf(
				"%sGoodbye!%s\n",
				colorGreen, colorReset)
			return nil
		}

		num, err := strconv.Atoi(input)
		if err != nil || num < 1 || num > len(menuItems) {
			fmt.Printf(
				"%sInvalid selection. "+
					"Please enter 1-%d.%s\n\n",
				colorRed, len(menuItems), colorReset)
			continue
		}

		item := menuItems[num-1]
		pipeline, err := item.build(reg, registry)
		if err != nil {
			fmt.Fprintf(os.Stderr,
				"%sError building pipeline: %v%s\n",
				colorRed, err, colorReset)
			continue
		}

		if err := runSession(rl, item.name, pipeline); err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return err
		}

		fmt.Printf("\n%s%s%s\n\n",
			colorDim,
			strings.Repeat("-", 60),
			colorReset)
	}
}

// runSession streams each typed line through the pipeline in token-sized
// chunks and prints the resolved output per sentence.
func runSession(
	rl *readline.Instance,
	name string,
	pipeline []*corral.Validator,
) error {
	fmt.Println()
	fmt.Printf("%s%sPipeline: %s%s\n",
		colorBold, colorYellow, name, colorReset)
	fmt.Printf(
		"%sType text to validate and press Enter. "+
			"Type 'exit' to pick another pipeline.%s\n",
		colorDim, colorReset)
	fmt.Println()

	oldPrompt := rl.Config.Prompt
	rl.SetPrompt(colorCyan + colorBold + "Text: " + colorReset)
	defer rl.SetPrompt(oldPrompt)

	ctx := context.Background()
	log := corral.NewFailureLog()

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Printf(
					"\n%sSession cancelled.%s\n",
					colorYellow, colorReset)
				return nil
			}
			return fmt.Errorf(
				"failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Printf(
				"%sFailures recorded this session: %d%s\n",
				colorDim, log.Len(), colorReset)
			return nil
		}

		units, err := streamThrough(ctx, log, pipeline, input)
		if err != nil {
			fmt.Fprintf(os.Stderr,
				"%sValidation error: %v%s\n",
				colorRed, err, colorReset)
			continue
		}

		if corral.ContainsRefrain(units) {
			fmt.Printf("%s[refrained: output withheld]%s\n",
				colorRed, colorReset)
			continue
		}
		cleaned, _ := corral.RemoveFiltered(units).([]any)
		fmt.Printf("%sOutput:%s", colorGreen, colorReset)
		for _, u := range cleaned {
			fmt.Printf(" %s%v%s", colorGreen, u, colorReset)
		}
		fmt.Println()
	}
}

// streamThrough feeds the line through every validator in chunks, resolving
// each completed unit through the chain. Returns the resolved units.
func streamThrough(
	ctx context.Context,
	log *corral.FailureLog,
	pipeline []*corral.Validator,
	line string,
) ([]any, error) {
	for _, v := range pipeline {
		v.ResetStream()
	}

	var units []any
	head := pipeline[0]

	feed := func(chunk string, remainder bool) error {
		result := head.ValidateStream(ctx, chunk, nil, remainder)
		if result == nil {
			return nil
		}

		unit := validatedChunk(result)
		resolved, err := head.Resolve(log, result, unit)
		if err != nil {
			return err
		}

		// Chain the resolved unit through the rest of the pipeline
		// as a complete value.
		for _, v := range pipeline[1:] {
			s, ok := resolved.(string)
			if !ok {
				break
			}
			r := v.Validate(ctx, s, nil)
			resolved, err = v.Resolve(log, r, s)
			if err != nil {
				return err
			}
		}
		units = append(units, resolved)
		return nil
	}

	for i := 0; i < len(line); i += streamChunkSize {
		end := i + streamChunkSize
		if end > len(line) {
			end = len(line)
		}
		if err := feed(line[i:end], false); err != nil {
			return nil, err
		}
	}
	if head.PendingStream() != "" {
		if err := feed("", true); err != nil {
			return nil, err
		}
	}
	return units, nil
}

// validatedChunk extracts the unit a stream result was computed over.
func validatedChunk(result corral.ValidationResult) string {
	switch r := result.(type) {
	case *corral.PassResult:
		return r.ValidatedChunk
	case *corral.FailResult:
		return r.ValidatedChunk
	default:
		return ""
	}
}

// tracingHook prints validation traffic in dim text so the resolved output
// stands out.
type tracingHook struct{}

func (h *tracingHook) OnValidatorResult(
	_ context.Context,
	e corral.ValidatorResultEvent,
) {
	switch r := e.Result.(type) {
	case *corral.FailResult:
		fmt.Printf("%s  [%s] FAIL: %s%s\n",
			colorDim, e.Validator, r.ErrorMessage, colorReset)
	case *corral.PassResult:
		fmt.Printf("%s  [%s] pass%s\n",
			colorDim, e.Validator, colorReset)
	}
}

func (h *tracingHook) OnRemoteError(
	_ context.Context,
	e corral.RemoteErrorEvent,
) {
	fmt.Printf("%s  [%s] remote degraded (status %d): %v%s\n",
		colorDim, e.Validator, e.StatusCode, e.Err, colorReset)
}
