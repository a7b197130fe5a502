package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/corralhq/corral"
)

// onTopicPrompt asks the judge model to classify a text into exactly one
// topic. The "other" escape hatch keeps the judge from forcing a fit.
const onTopicPrompt = `Classify the following text into exactly one of these topics: %s, other.
Respond with only the topic name, nothing else.

Text:
%s`

// OnTopic validates that a value stays on a set of allowed topics, using a
// judge model through the validator's inference dispatch. It runs locally
// against a configured engine or remotely against the hub, whichever the
// owning validator selected at construction.
//
// Degraded or malformed judge responses pass the value through: an
// unavailable judge must not turn every output into a failure.
//
// Arguments:
//   - topics (required): comma-separated allowed topics
type OnTopic struct {
	topics []string
	infer  corral.InferenceFn
}

// NewOnTopic is the constructor registered under "on-topic".
func NewOnTopic(kwargs corral.Kwargs) (corral.Validation, error) {
	topics := listKwarg(kwargs, "topics")
	if len(topics) == 0 {
		return nil, fmt.Errorf("missing required argument %q", "topics")
	}
	return &OnTopic{topics: topics}, nil
}

// BindInference implements corral.InferenceBinder.
func (v *OnTopic) BindInference(fn corral.InferenceFn) {
	v.infer = fn
}

// Validate implements corral.Validation.
func (v *OnTopic) Validate(ctx context.Context, value any, _ map[string]any) corral.ValidationResult {
	s := asString(value)
	prompt := fmt.Sprintf(onTopicPrompt, strings.Join(v.topics, ", "), s)

	response, err := v.infer(ctx, prompt)
	if err != nil {
		return &corral.FailResult{
			ErrorMessage: fmt.Sprintf("Topic classification failed: %v.", err),
		}
	}

	topic, ok := extractTopic(response)
	if !ok {
		// Degraded judge response; see type doc.
		return &corral.PassResult{}
	}

	for _, allowed := range v.topics {
		if strings.EqualFold(topic, allowed) {
			return &corral.PassResult{}
		}
	}
	return &corral.FailResult{
		ErrorMessage: fmt.Sprintf(
			"Value is about %q, which is not an allowed topic (%s).",
			topic, strings.Join(v.topics, ", ")),
	}
}

// extractTopic pulls the judge's answer out of the inference response. Local
// engines return a plain string; hub responses wrap it in a JSON object
// under "topic" or "output".
func extractTopic(response any) (string, bool) {
	switch r := response.(type) {
	case string:
		topic := strings.TrimSpace(strings.ToLower(r))
		return topic, topic != ""
	case map[string]any:
		for _, key := range []string{"topic", "output"} {
			if s, ok := r[key].(string); ok && s != "" {
				return strings.TrimSpace(strings.ToLower(s)), true
			}
		}
	}
	return "", false
}

// Compile-time check that OnTopic binds inference.
var _ corral.InferenceBinder = (*OnTopic)(nil)
