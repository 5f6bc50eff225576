// Package converter turns Figma variables, text styles and effect styles
// into DTCG token files.
//
// Conversion is synchronous and has no side effects other than warnings sent
// to the Logger. Unresolvable aliases never fail a conversion: they are
// emitted as the {circular}, {unknown} or {no-value} sentinels.
package converter

import (
	"errors"

	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/extractor"
)

// ErrEmptySelection is returned when a conversion would produce no files.
var ErrEmptySelection = errors.New("no collections or styles selected")

// Convert converts the selected collections, modes and styles of doc.
// cfg is not modified.
//
// All collections of doc take part in alias resolution, selected or not.
// Files are ordered by collection and mode in document order, followed by
// typography.json and shadow.json when they hold any token.
func Convert(doc *extractor.Document, cfg *Config, logger Logger) ([]dtcg.TokenFile, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	validated := *cfg
	cfg = &validated
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := NewResolver(BuildVariableMap(doc.Collections), cfg, logger)
	files := ConvertCollections(doc.Collections, cfg, r)

	if tree := ConvertTextStyles(doc.TextStyles, cfg); tree.Len() > 0 {
		files = append(files, dtcg.TokenFile{
			Filename:       dtcg.TypographyFilename,
			CollectionName: "Text Styles",
			Content:        tree,
		})
	}
	if tree := ConvertEffectStyles(doc.EffectStyles, cfg); tree.Len() > 0 {
		files = append(files, dtcg.TokenFile{
			Filename:       dtcg.ShadowFilename,
			CollectionName: "Effect Styles",
			Content:        tree,
		})
	}

	if len(files) == 0 {
		return nil, ErrEmptySelection
	}
	return files, nil
}
