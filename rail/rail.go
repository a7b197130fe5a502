// Package rail loads validator pipelines from YAML declarations.
//
// A rail file names validators by alias and binds their arguments and
// on-fail policies:
//
//	validators:
//	  - alias: length
//	    args:
//	      min: "1"
//	      max: "200"
//	    on_fail: fix
//	  - alias: regex-match
//	    args:
//	      regex: ^[A-Z]
//	    on_fail: exception
//
// Argument order in the file is preserved: it is part of each validator's
// identity (see corral.Validator.ToPrompt).
package rail

import (
	"fmt"
	"io"
	"os"

	"github.com/corralhq/corral"
	"gopkg.in/yaml.v3"
)

// railFile is the top-level rail document.
type railFile struct {
	Validators []validatorDecl `yaml:"validators"`
}

// validatorDecl is one validator declaration in a rail file.
type validatorDecl struct {
	Alias  string      `yaml:"alias"`
	Args   orderedArgs `yaml:"args"`
	OnFail string      `yaml:"on_fail"`
}

// orderedArgs decodes a YAML mapping into kwargs, preserving the key order
// the document declares. Values must be scalars; their raw text is kept so
// "1", 1, and 1.0 round-trip exactly as written.
type orderedArgs corral.Kwargs

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *orderedArgs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("args must be a mapping, got %s", kindName(node.Kind))
	}

	kwargs := make(corral.Kwargs, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if valueNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("argument %q must be a scalar, got %s",
				keyNode.Value, kindName(valueNode.Kind))
		}
		kwargs = append(kwargs, corral.Kwarg{Key: keyNode.Value, Value: valueNode.Value})
	}
	*a = orderedArgs(kwargs)
	return nil
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// Load reads a rail document and constructs its validators against reg, in
// declaration order. The extra options are applied to every validator after
// the declaration's own arguments and on-fail policy, so they can attach
// shared hooks or inference engines:
//
//	vs, err := rail.Load(f, reg, corral.WithHooks(registry))
func Load(r io.Reader, reg *corral.Registry, opts ...corral.Option) ([]*corral.Validator, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rail: failed to read document: %w", err)
	}

	var file railFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("rail: failed to parse document: %w", err)
	}

	validators := make([]*corral.Validator, 0, len(file.Validators))
	for i, decl := range file.Validators {
		if decl.Alias == "" {
			return nil, fmt.Errorf("rail: validator %d has no alias", i)
		}

		onFail, err := corral.ParseOnFailAction(decl.OnFail)
		if err != nil {
			return nil, fmt.Errorf("rail: validator %q: %w", decl.Alias, err)
		}

		declOpts := []corral.Option{
			corral.WithKwargs(corral.Kwargs(decl.Args)),
			corral.WithOnFail(onFail),
		}
		v, err := corral.New(reg, decl.Alias, append(declOpts, opts...)...)
		if err != nil {
			return nil, fmt.Errorf("rail: validator %q: %w", decl.Alias, err)
		}
		validators = append(validators, v)
	}
	return validators, nil
}

// LoadFile is Load reading from a file path.
func LoadFile(path string, reg *corral.Registry, opts ...corral.Option) ([]*corral.Validator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rail: failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, reg, opts...)
}
