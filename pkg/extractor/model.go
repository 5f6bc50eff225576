package extractor

import (
	"encoding/json"
	"slices"

	"github.com/kataras/figma-dtcg/pkg/color"
)

// RGBA is a Figma color with channels in the 0-1 range.
type RGBA = color.RGBA

// ResolvedType is the primitive type of a Figma variable.
type ResolvedType string

// Variable types known to Figma.
const (
	ResolvedColor   ResolvedType = "COLOR"
	ResolvedFloat   ResolvedType = "FLOAT"
	ResolvedString  ResolvedType = "STRING"
	ResolvedBoolean ResolvedType = "BOOLEAN"
)

// Variable scopes that influence token classification.
const (
	ScopeOpacity    = "OPACITY"
	ScopeFontWeight = "FONT_WEIGHT"
	ScopeFontFamily = "FONT_FAMILY"
)

// Document is everything the extraction layer delivers for one conversion.
type Document struct {
	Collections  []Collection  `json:"collections"`
	TextStyles   []TextStyle   `json:"textStyles,omitempty"`
	EffectStyles []EffectStyle `json:"effectStyles,omitempty"`
}

// Collection is a Figma variable collection.
type Collection struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Modes     []Mode     `json:"modes"`
	Variables []Variable `json:"variables"`
}

// Mode is one named variant of a collection, e.g. "Light" or "Dark".
type Mode struct {
	ModeID string `json:"modeId"`
	Name   string `json:"name"`
}

// Variable is a single Figma variable with one value per mode.
type Variable struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"` // e.g. "colors/brand/primary"
	Description  string       `json:"description,omitempty"`
	ResolvedType ResolvedType `json:"resolvedType"`
	Scopes       []string     `json:"scopes,omitempty"`
	CollectionID string       `json:"collectionId"`
	ValuesByMode ModeValues   `json:"valuesByMode"`
}

// HasScope reports whether the variable declares the given scope.
func (v *Variable) HasScope(scope string) bool {
	return slices.Contains(v.Scopes, scope)
}

// VariableValue is the value of a variable in one mode. It is either a direct
// literal (ColorValue, FloatValue, StringValue, BoolValue) or an Alias.
type VariableValue interface {
	variableValue()
}

// Alias points at another variable, resolved in the same mode.
type Alias struct {
	VariableID string
}

// ColorValue is a direct COLOR literal.
type ColorValue RGBA

// FloatValue is a direct FLOAT literal.
type FloatValue float64

// StringValue is a direct STRING literal.
type StringValue string

// BoolValue is a direct BOOLEAN literal.
type BoolValue bool

func (Alias) variableValue()       {}
func (ColorValue) variableValue()  {}
func (FloatValue) variableValue()  {}
func (StringValue) variableValue() {}
func (BoolValue) variableValue()   {}

// TextCase is the literal text-case setting of a text style.
type TextCase string

// Text cases reported by Figma.
const (
	TextCaseOriginal        TextCase = "ORIGINAL"
	TextCaseUpper           TextCase = "UPPER"
	TextCaseLower           TextCase = "LOWER"
	TextCaseTitle           TextCase = "TITLE"
	TextCaseSmallCaps       TextCase = "SMALL_CAPS"
	TextCaseSmallCapsForced TextCase = "SMALL_CAPS_FORCED"
)

// TextDecoration is the literal decoration setting of a text style.
type TextDecoration string

// Text decorations reported by Figma.
const (
	TextDecorationNone          TextDecoration = "NONE"
	TextDecorationUnderline     TextDecoration = "UNDERLINE"
	TextDecorationStrikethrough TextDecoration = "STRIKETHROUGH"
)

// TextStyle is a Figma text style. Bound fields may be driven by variables.
type TextStyle struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"` // e.g. "Heading/Large"
	Description      string                 `json:"description,omitempty"`
	FontFamily       BoundValue[string]     `json:"fontFamily"`
	FontSize         BoundValue[float64]    `json:"fontSize"`
	FontWeight       BoundValue[float64]    `json:"fontWeight"`
	LineHeight       BoundValue[LineHeight] `json:"lineHeight"`
	LetterSpacing    BoundValue[float64]    `json:"letterSpacing"`
	ParagraphSpacing float64                `json:"paragraphSpacing,omitempty"`
	TextCase         TextCase               `json:"textCase,omitempty"`
	TextDecoration   TextDecoration         `json:"textDecoration,omitempty"`
}

// EffectType is the kind of a Figma effect.
type EffectType string

// Effect types. Only the two shadow kinds become tokens.
const (
	EffectDropShadow     EffectType = "DROP_SHADOW"
	EffectInnerShadow    EffectType = "INNER_SHADOW"
	EffectLayerBlur      EffectType = "LAYER_BLUR"
	EffectBackgroundBlur EffectType = "BACKGROUND_BLUR"
)

// IsShadow reports whether the effect type is a drop or inner shadow.
func (t EffectType) IsShadow() bool {
	return t == EffectDropShadow || t == EffectInnerShadow
}

// EffectStyle is a Figma effect style with its ordered effect layers.
type EffectStyle struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"` // e.g. "Shadow/Large"
	Description string         `json:"description,omitempty"`
	Effects     []ShadowEffect `json:"effects"`
}

// ShadowEffect is one effect layer of an effect style.
type ShadowEffect struct {
	Type    EffectType          `json:"type"`
	Visible bool                `json:"visible"`
	Color   BoundValue[RGBA]    `json:"color"`
	OffsetX BoundValue[float64] `json:"offsetX"`
	OffsetY BoundValue[float64] `json:"offsetY"`
	Blur    BoundValue[float64] `json:"blur"`
	Spread  BoundValue[float64] `json:"spread"`
}

// UnmarshalJSON decodes an effect layer. Layers without a "visible" field
// are visible.
func (e *ShadowEffect) UnmarshalJSON(data []byte) error {
	type plain ShadowEffect
	raw := struct {
		*plain
		Visible *bool `json:"visible"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Visible = raw.Visible == nil || *raw.Visible
	return nil
}
