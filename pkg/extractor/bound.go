package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type boundKind uint8

const (
	boundUnset boundKind = iota
	boundReference
	boundLiteral
)

// BoundValue is a style property that is either driven by a variable
// (referenced by its slash-delimited name) or authored as a literal value.
// Exactly one of the two is present; the zero value means "absent".
type BoundValue[T any] struct {
	kind      boundKind
	reference string
	value     T
}

// Ref returns a BoundValue bound to the named variable.
func Ref[T any](variableName string) BoundValue[T] {
	return BoundValue[T]{kind: boundReference, reference: variableName}
}

// Literal returns a BoundValue holding v.
func Literal[T any](v T) BoundValue[T] {
	return BoundValue[T]{kind: boundLiteral, value: v}
}

// IsSet reports whether the property is present at all.
func (b BoundValue[T]) IsSet() bool {
	return b.kind != boundUnset
}

// Reference returns the bound variable name when the property is a reference.
func (b BoundValue[T]) Reference() (string, bool) {
	return b.reference, b.kind == boundReference
}

// Value returns the literal when the property is not bound to a variable.
// For an absent property it returns the zero value and false.
func (b BoundValue[T]) Value() (T, bool) {
	return b.value, b.kind == boundLiteral
}

var errBoundShape = errors.New("bound value must carry exactly one of a variable reference or a value")

// UnmarshalJSON accepts both {"type":"reference","variableName":"a/b"} /
// {"type":"value","value":…} and the short {"reference":"a/b"} / {"value":…}.
func (b *BoundValue[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*b = BoundValue[T]{}
		return nil
	}

	var raw struct {
		Type         string          `json:"type"`
		VariableName *string         `json:"variableName"`
		Reference    *string         `json:"reference"`
		Value        json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("bound value: %w", err)
	}

	name := raw.VariableName
	if name == nil {
		name = raw.Reference
	}
	hasRef := name != nil
	hasValue := raw.Value != nil

	switch strings.ToLower(raw.Type) {
	case "reference":
		if !hasRef {
			return fmt.Errorf("bound value: reference without variableName")
		}
		hasValue = false
	case "value":
		if !hasValue {
			return fmt.Errorf("bound value: value type without value")
		}
		hasRef = false
	case "":
		if hasRef == hasValue {
			return errBoundShape
		}
	default:
		return fmt.Errorf("bound value: unknown type %q", raw.Type)
	}

	if hasRef {
		*b = Ref[T](*name)
		return nil
	}

	var v T
	if err := json.Unmarshal(raw.Value, &v); err != nil {
		return fmt.Errorf("bound value: %w", err)
	}
	*b = Literal(v)
	return nil
}

// MarshalJSON writes the long, type-tagged form.
func (b BoundValue[T]) MarshalJSON() ([]byte, error) {
	switch b.kind {
	case boundReference:
		return json.Marshal(struct {
			Type         string `json:"type"`
			VariableName string `json:"variableName"`
		}{"reference", b.reference})
	case boundLiteral:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Value T      `json:"value"`
		}{"value", b.value})
	}
	return []byte("null"), nil
}

// LineHeight is either a fixed number or Figma's AUTO sentinel.
type LineHeight struct {
	Auto  bool
	Value float64
}

// AutoLineHeight returns the AUTO line height.
func AutoLineHeight() LineHeight {
	return LineHeight{Auto: true}
}

// FixedLineHeight returns a numeric line height.
func FixedLineHeight(v float64) LineHeight {
	return LineHeight{Value: v}
}

// UnmarshalJSON accepts a number or the string "AUTO".
func (l *LineHeight) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if !strings.EqualFold(s, "AUTO") {
			return fmt.Errorf("line height: unexpected string %q", s)
		}
		*l = AutoLineHeight()
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("line height: %w", err)
	}
	*l = FixedLineHeight(v)
	return nil
}

// MarshalJSON writes "AUTO" or the number.
func (l LineHeight) MarshalJSON() ([]byte, error) {
	if l.Auto {
		return []byte(`"AUTO"`), nil
	}
	return json.Marshal(l.Value)
}
