// Package yamlutil is the single entry point to goccy/go-yaml. Settings
// files and note front matter both decode through here.
package yamlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// MaxInputSize caps the bytes accepted by the decoders. Front matter and
// settings files are small; anything larger is rejected before parsing.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping     = errors.New("yamlutil: document is not a mapping")
)

func checkSize(data []byte) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

// decode guards the input then hands it to the YAML decoder with opts.
func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	if err := checkSize(data); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Unmarshal decodes data into v. Fields absent from data keep the value
// already present in v, so callers can decode over a populated default.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict is Unmarshal but fails on keys v does not declare.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

// Scalar is a top-level mapping value as it appears in the source. Text is
// the token text with no type resolution applied: "3.10", "0x1F" and "~"
// stay as written. Quoted and block scalars carry their unquoted content.
type Scalar struct {
	Text   string
	Quoted bool // single or double quoted
	Block  bool // literal "|" or folded ">"
	Null   bool // "~", "null" or an empty value
}

// ScalarMapping parses a document whose root is a mapping and returns its
// scalar values keyed by key text. Sequence and mapping values are omitted.
// An empty or null document yields an empty map, any other root returns
// ErrNotMapping.
func ScalarMapping(data []byte) (map[string]Scalar, error) {
	if err := checkSize(data); err != nil {
		return nil, err
	}
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}

	out := map[string]Scalar{}
	if len(file.Docs) == 0 {
		return out, nil
	}
	if len(file.Docs) > 1 {
		return nil, fmt.Errorf("%w: %d documents", ErrNotMapping, len(file.Docs))
	}

	var values []*ast.MappingValueNode
	switch root := file.Docs[0].Body.(type) {
	case nil, *ast.NullNode, *ast.CommentGroupNode, *ast.CommentNode:
		return out, nil
	case *ast.MappingNode:
		values = root.Values
	case *ast.MappingValueNode:
		values = []*ast.MappingValueNode{root}
	default:
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, root.Type())
	}

	for _, mv := range values {
		if mv.Key == nil || mv.Key.GetToken() == nil {
			continue
		}
		key := strings.TrimSpace(mv.Key.GetToken().Value)
		if key == "" {
			continue
		}
		if s, ok := scalarOf(mv.Value); ok {
			out[key] = s
		}
	}
	return out, nil
}

func scalarOf(n ast.Node) (Scalar, bool) {
	switch v := n.(type) {
	case nil, *ast.MappingNode, *ast.MappingValueNode, *ast.SequenceNode:
		return Scalar{}, false
	case *ast.NullNode:
		return Scalar{Null: true}, true
	case *ast.LiteralNode:
		if v.Value == nil {
			return Scalar{Block: true}, true
		}
		return Scalar{Text: v.Value.Value, Block: true}, true
	case *ast.StringNode:
		if t := v.GetToken(); t != nil && (t.Type == token.SingleQuoteType || t.Type == token.DoubleQuoteType) {
			return Scalar{Text: v.Value, Quoted: true}, true
		}
	}
	tok := n.GetToken()
	if tok == nil {
		return Scalar{}, false
	}
	return Scalar{Text: tok.Value}, true
}

// Marshal encodes v as block-style YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
