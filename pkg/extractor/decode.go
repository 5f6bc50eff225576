package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ModeValues maps mode ids to variable values and remembers insertion order,
// which decides the fallback mode of a variable.
//
// The zero value is empty and ready to use.
type ModeValues struct {
	values *orderedmap.OrderedMap[string, VariableValue]
}

// NewModeValues returns ModeValues holding the given pairs in order.
// Pairs are given as alternating mode id and value.
func NewModeValues(pairs ...any) ModeValues {
	var mv ModeValues
	for i := 0; i+1 < len(pairs); i += 2 {
		mv.Set(pairs[i].(string), pairs[i+1].(VariableValue))
	}
	return mv
}

// Set stores the value for modeID. Updating an existing mode keeps its
// position.
func (mv *ModeValues) Set(modeID string, v VariableValue) {
	if mv.values == nil {
		mv.values = orderedmap.New[string, VariableValue]()
	}
	mv.values.Set(modeID, v)
}

// Get returns the value recorded for modeID.
func (mv *ModeValues) Get(modeID string) (VariableValue, bool) {
	if mv.values == nil {
		return nil, false
	}
	return mv.values.Get(modeID)
}

// First returns the earliest inserted mode and its value.
func (mv *ModeValues) First() (string, VariableValue, bool) {
	if mv.values == nil {
		return "", nil, false
	}
	pair := mv.values.Oldest()
	if pair == nil {
		return "", nil, false
	}
	return pair.Key, pair.Value, true
}

// Len returns the number of modes with a value.
func (mv *ModeValues) Len() int {
	if mv.values == nil {
		return 0
	}
	return mv.values.Len()
}

// ModeIDs returns the mode ids in insertion order.
func (mv *ModeValues) ModeIDs() []string {
	if mv.values == nil {
		return nil
	}
	ids := make([]string, 0, mv.values.Len())
	for pair := mv.values.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

// UnmarshalJSON decodes {"<modeId>": {"type":"DIRECT"|"ALIAS", ...}} keeping
// the document's key order.
func (mv *ModeValues) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, json.RawMessage]()
	if err := raw.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("valuesByMode: %w", err)
	}

	*mv = ModeValues{}
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		v, err := ParseVariableValue(pair.Value)
		if err != nil {
			return fmt.Errorf("valuesByMode[%s]: %w", pair.Key, err)
		}
		mv.Set(pair.Key, v)
	}
	return nil
}

// MarshalJSON writes the tagged DIRECT/ALIAS form in insertion order.
func (mv ModeValues) MarshalJSON() ([]byte, error) {
	out := orderedmap.New[string, any]()
	if mv.values != nil {
		for pair := mv.values.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, taggedValue(pair.Value))
		}
	}
	return out.MarshalJSON()
}

func taggedValue(v VariableValue) any {
	type tagged struct {
		Type       string `json:"type"`
		Value      any    `json:"value,omitempty"`
		VariableID string `json:"variableId,omitempty"`
	}
	switch val := v.(type) {
	case Alias:
		return tagged{Type: "ALIAS", VariableID: val.VariableID}
	case ColorValue:
		return tagged{Type: "DIRECT", Value: RGBA(val)}
	case FloatValue:
		return tagged{Type: "DIRECT", Value: float64(val)}
	case StringValue:
		return tagged{Type: "DIRECT", Value: string(val)}
	case BoolValue:
		return tagged{Type: "DIRECT", Value: bool(val)}
	}
	return nil
}

// ParseVariableValue decodes a tagged variable value. Besides the
// {"type":"DIRECT","value":…} / {"type":"ALIAS","variableId":…} form it also
// accepts Figma's own {"type":"VARIABLE_ALIAS","id":…} alias object.
func ParseVariableValue(data []byte) (VariableValue, error) {
	var env struct {
		Type       string          `json:"type"`
		Value      json.RawMessage `json:"value"`
		VariableID string          `json:"variableId"`
		ID         string          `json:"id"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	switch strings.ToUpper(env.Type) {
	case "ALIAS", "VARIABLE_ALIAS":
		id := env.VariableID
		if id == "" {
			id = env.ID
		}
		if id == "" {
			return nil, fmt.Errorf("alias without variable id")
		}
		return Alias{VariableID: id}, nil
	case "DIRECT":
		if env.Value == nil {
			return nil, fmt.Errorf("direct value without value")
		}
		return ParseLiteral(env.Value)
	}
	return nil, fmt.Errorf("unknown value type %q", env.Type)
}

// ParseLiteral decodes a direct literal, picking the variant from the JSON
// kind: objects are colors, then numbers, strings and booleans.
func ParseLiteral(data []byte) (VariableValue, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty literal")
	}

	switch data[0] {
	case '{':
		var c RGBA
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("color literal: %w", err)
		}
		return ColorValue(c), nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return StringValue(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return BoolValue(b), nil
	case 'n':
		return nil, fmt.Errorf("null literal")
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("literal: %w", err)
	}
	return FloatValue(f), nil
}

// Load decodes an extraction document.
func Load(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc.fillCollectionIDs()
	return &doc, nil
}

// LoadFile reads and decodes the extraction document at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// fillCollectionIDs sets the owning collection of variables that omit it.
func (d *Document) fillCollectionIDs() {
	for i := range d.Collections {
		c := &d.Collections[i]
		for j := range c.Variables {
			if c.Variables[j].CollectionID == "" {
				c.Variables[j].CollectionID = c.ID
			}
		}
	}
}
