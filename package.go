// Package corral provides a validation engine for LLM output in Go.
//
// The library validates model output - complete values or live token
// streams - against named, parameterized rules, and resolves failures
// through configurable policies: repair the value, filter it out of the
// result tree, refuse to answer, raise, or ask the model to try again.
//
// # Quick Start: Guarding a Chat Response
//
// Here's a complete example of validating a streamed model response:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/corralhq/corral"
//	    "github.com/corralhq/corral/validators"
//	)
//
//	func main() {
//	    // 1. Build a registry with the builtin validators
//	    reg := corral.NewRegistry()
//	    validators.RegisterBuiltins(reg)
//
//	    // 2. Construct validators with their on-fail policies
//	    length, err := corral.New(reg, "length",
//	        corral.WithKwarg("min", "1"),
//	        corral.WithKwarg("max", "200"),
//	        corral.WithOnFail(corral.OnFailFix),
//	    )
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    // 3. Feed the stream; nil means "need more input"
//	    ctx := context.Background()
//	    log := corral.NewFailureLog()
//	    for chunk := range tokenStream {
//	        result := length.ValidateStream(ctx, chunk, nil, false)
//	        if result == nil {
//	            continue
//	        }
//	        value, err := length.Resolve(log, result, chunkText(result))
//	        if err != nil {
//	            panic(err) // only OnFailException produces errors
//	        }
//	        fmt.Print(value)
//	    }
//
//	    // 4. Flush whatever is still buffered
//	    if result := length.ValidateStream(ctx, "", nil, true); result != nil {
//	        // resolve the final unit the same way
//	    }
//	}
//
// # Validation and Results
//
// A rule implements [Validation]: it receives one value plus caller metadata
// and returns a [PassResult] or a [FailResult]. Pass results can override the
// value (normalization); fail results carry the error message, an optional
// programmatic fix, and optional [ErrorSpan] ranges locating the failure
// inside the validated text.
//
//	corral.ValidationFunc(func(_ context.Context, value any, _ map[string]any) corral.ValidationResult {
//	    s, _ := value.(string)
//	    if strings.Contains(s, "corrida") {
//	        return &corral.FailResult{
//	            ErrorMessage: "mentions a forbidden topic",
//	            FixValue:     strings.ReplaceAll(s, "corrida", "[redacted]"),
//	            HasFix:       true,
//	        }
//	    }
//	    return &corral.PassResult{}
//	})
//
// See [Validation], [ValidationFunc], and the validators package for the
// builtin rules.
//
// # On-Fail Policies
//
// Every validator carries one [OnFailAction] deciding what a failure becomes:
//
//   - [OnFailNoop] (default): keep the original value, record the failure
//   - [OnFailFix]: substitute the validator's FixValue
//   - [OnFailFilter]: replace the value with the [Filtered] sentinel, pruned
//     from result trees by [RemoveFiltered]
//   - [OnFailRefrain]: replace with the [Refrained] sentinel; [ContainsRefrain]
//     lets callers blank the whole response
//   - [OnFailException]: surface a *[ValidationError]
//   - [OnFailReask], [OnFailFixReask]: produce a *[Reask] for re-prompting
//   - [OnFailCustom]: delegate to a caller-supplied [OnFailFunc]
//
// [Resolve] applies the policy and records every failure in a [FailureLog].
//
// # Streaming
//
// ValidateStream accumulates fragments until a boundary function says a
// validatable unit is complete. The default boundary, [SplitSentence], cuts
// at the first period; supply your own [ChunkBoundaryFunc] for markdown
// fences, JSON objects, or fixed-size windows:
//
//	v, _ := corral.New(reg, "one-line",
//	    corral.WithBoundaryFunc(func(accumulated string) []string {
//	        idx := strings.Index(accumulated, "\n")
//	        if idx < 0 {
//	            return nil
//	        }
//	        return []string{accumulated[:idx+1], accumulated[idx+1:]}
//	    }),
//	)
//
// See [ChunkAccumulator] for the buffering contract and
// [Validator.ResetStream] for session reuse.
//
// # Inference
//
// Validators backed by a machine-learning model implement [InferenceBinder]
// and receive a dispatch function at construction. Dispatch runs either
// locally (a [LocalInference] engine, e.g. models.LCGInference wrapping a
// langchaingo model) or remotely against a hub endpoint with a bearer token
// from [Credentials]. Remote failures degrade: the partial response is
// returned, a [RemoteErrorEvent] fires, and no error reaches the validator.
//
//	judge, err := corral.New(reg, "on-topic",
//	    corral.WithKwarg("topics", "billing,shipping"),
//	    corral.WithLocalInference(models.NewLCGInference(llm)),
//	    corral.WithUseLocal(true),
//	)
//
// # Hooks & Events
//
// Hooks observe validation traffic. Implement the appropriate interface and
// register with a hooks.Registry:
//
//	type LoggingHook struct{}
//
//	func (h *LoggingHook) OnValidatorResult(ctx context.Context, e corral.ValidatorResultEvent) {
//	    if fail, ok := e.Result.(*corral.FailResult); ok {
//	        log.Printf("%s failed: %s", e.Validator, fail.ErrorMessage)
//	    }
//	}
//
//	registry := hooks.NewRegistry()
//	registry.Register(&LoggingHook{})
//	v, _ := corral.New(reg, "length", corral.WithHooks(registry))
//
// Available hook interfaces:
//   - [ValidatorCalledHook], [ValidatorResultHook]: validation lifecycle
//   - [RemoteErrorHook]: remote inference degradation
//
// See hooks.go for hook interfaces and events.go for event types.
//
// # Result Trees
//
// Structured output is validated field by field; the resolved values form a
// tree of maps, lists, and scalars. Two helpers post-process it:
//
//	if corral.ContainsRefrain(tree) {
//	    tree = nil // blank the whole response
//	}
//	tree = corral.RemoveFiltered(tree)
//
// # Rail Files
//
// The rail package loads validator pipelines from YAML declarations, keeping
// argument order intact:
//
//	validators:
//	  - alias: length
//	    args: {min: "1", max: "200"}
//	    on_fail: fix
//
// See rail.Load for details.
package corral
