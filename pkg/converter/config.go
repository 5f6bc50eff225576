package converter

import (
	"fmt"

	"github.com/kataras/figma-dtcg/pkg/color"
	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/extractor"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config selects what gets exported and how values are rendered.
type Config struct {
	// Collections lists the selected collection ids.
	Collections []string `yaml:"collections" json:"collections"`
	// Modes maps a collection id to its selected mode ids. A collection
	// without an entry exports all of its modes; an entry with no ids
	// exports none.
	Modes               map[string][]string `yaml:"modes" json:"modes"`
	IncludeDescriptions bool                `yaml:"include_descriptions" json:"includeDescriptions"`
	DefaultUnit         dtcg.Unit           `yaml:"default_unit" json:"defaultUnit"`
	ColorFormat         color.Format        `yaml:"color_format" json:"colorFormat"`
	// ResolveReferences flattens aliases into literal values instead of
	// emitting {path} references.
	ResolveReferences bool     `yaml:"resolve_references" json:"resolveReferences"`
	TextStyles        []string `yaml:"text_styles" json:"textStyles"`
	EffectStyles      []string `yaml:"effect_styles" json:"effectStyles"`
}

// NewDefaultConfig returns a Config that selects nothing, with px dimensions,
// hex colors, references kept and descriptions included.
func NewDefaultConfig() *Config {
	return &Config{
		IncludeDescriptions: true,
		DefaultUnit:         dtcg.UnitPx,
		ColorFormat:         color.FormatHex,
	}
}

// Validate validates the configuration. An empty unit or color format is
// normalized to px and hex.
func (c *Config) Validate() error {
	if c.DefaultUnit == "" {
		c.DefaultUnit = dtcg.UnitPx
	}
	if c.ColorFormat == "" {
		c.ColorFormat = color.FormatHex
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.DefaultUnit, validation.Required, validation.In(dtcg.UnitPx, dtcg.UnitRem)),
		validation.Field(&c.ColorFormat, validation.Required, validation.In(color.FormatHex, color.FormatOKLCH)),
	); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SelectAll selects every collection, text style and effect style of doc,
// keeping any mode selection already present.
func (c *Config) SelectAll(doc *extractor.Document) {
	c.Collections = make([]string, 0, len(doc.Collections))
	for _, coll := range doc.Collections {
		c.Collections = append(c.Collections, coll.ID)
	}
	c.TextStyles = make([]string, 0, len(doc.TextStyles))
	for _, s := range doc.TextStyles {
		c.TextStyles = append(c.TextStyles, s.ID)
	}
	c.EffectStyles = make([]string, 0, len(doc.EffectStyles))
	for _, s := range doc.EffectStyles {
		c.EffectStyles = append(c.EffectStyles, s.ID)
	}
}

// modeSelected reports whether modeID of collectionID is exported.
func (c *Config) modeSelected(collectionID, modeID string) bool {
	ids, ok := c.Modes[collectionID]
	if !ok {
		return true
	}
	for _, id := range ids {
		if id == modeID {
			return true
		}
	}
	return false
}
