// Package dtcg models W3C Design Tokens Community Group documents: tokens,
// composite values, references and the nested, insertion-ordered token tree.
package dtcg

import "strings"

// Type is a DTCG "$type" value.
type Type string

// Token types emitted by the converter.
const (
	TypeNone       Type = ""
	TypeColor      Type = "color"
	TypeDimension  Type = "dimension"
	TypeNumber     Type = "number"
	TypeFontFamily Type = "fontFamily"
	TypeFontWeight Type = "fontWeight"
	TypeTypography Type = "typography"
	TypeShadow     Type = "shadow"
)

// Unit is a DTCG dimension unit.
type Unit string

// Units accepted as the default dimension unit.
const (
	UnitPx  Unit = "px"
	UnitRem Unit = "rem"
)

// Sentinel values substituted for references that cannot be resolved.
const (
	SentinelCircular = "{circular}"
	SentinelUnknown  = "{unknown}"
	SentinelNoValue  = "{no-value}"
)

// Token is a single DTCG design token.
type Token struct {
	Value       any    `json:"$value"`
	Type        Type   `json:"$type,omitempty"`
	Description string `json:"$description,omitempty"`
}

// Dimension is a DTCG dimension value.
type Dimension struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Typography is the composite DTCG typography value. Each field holds either
// a reference string or a converted literal.
type Typography struct {
	FontFamily       any    `json:"fontFamily"`
	FontSize         any    `json:"fontSize"`
	FontWeight       any    `json:"fontWeight"`
	LineHeight       any    `json:"lineHeight"`
	LetterSpacing    any    `json:"letterSpacing,omitempty"`
	ParagraphSpacing any    `json:"paragraphSpacing,omitempty"`
	TextCase         string `json:"textCase,omitempty"`
	TextDecoration   string `json:"textDecoration,omitempty"`
}

// Shadow is a single layer of a composite DTCG shadow value.
type Shadow struct {
	OffsetX any  `json:"offsetX"`
	OffsetY any  `json:"offsetY"`
	Blur    any  `json:"blur"`
	Spread  any  `json:"spread"`
	Color   any  `json:"color"`
	Inset   bool `json:"inset,omitempty"`
}

// Reference converts a slash-delimited variable name into DTCG reference
// syntax: "colors/brand/primary" becomes "{colors.brand.primary}".
func Reference(name string) string {
	return "{" + strings.ReplaceAll(name, "/", ".") + "}"
}

// IsReference reports whether v is a DTCG reference string, sentinels
// included.
func IsReference(v any) bool {
	s, ok := v.(string)
	return ok && len(s) > 2 && strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

// IsSentinel reports whether v is one of the unresolved-reference sentinels.
func IsSentinel(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	switch s {
	case SentinelCircular, SentinelUnknown, SentinelNoValue:
		return true
	}
	return false
}
