package converter

import (
	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/extractor"
)

var textCases = map[extractor.TextCase]string{
	extractor.TextCaseUpper: "uppercase",
	extractor.TextCaseLower: "lowercase",
	extractor.TextCaseTitle: "capitalize",
}

var textDecorations = map[extractor.TextDecoration]string{
	extractor.TextDecorationUnderline:     "underline",
	extractor.TextDecorationStrikethrough: "line-through",
}

// ConvertTextStyles builds the typography tree of the selected text styles.
// It returns an empty tree when none is selected.
func ConvertTextStyles(styles []extractor.TextStyle, cfg *Config) *dtcg.Tree {
	selected := idSet(cfg.TextStyles)
	tree := dtcg.NewTree()

	for i := range styles {
		style := &styles[i]
		if !selected[style.ID] {
			continue
		}

		tok := &dtcg.Token{Value: typography(style, cfg), Type: dtcg.TypeTypography}
		if cfg.IncludeDescriptions {
			tok.Description = style.Description
		}
		tree.Insert(style.Name, tok)
	}
	return tree
}

func typography(style *extractor.TextStyle, cfg *Config) dtcg.Typography {
	toDimension := func(v float64) any { return dimension(v, cfg.DefaultUnit) }

	value := dtcg.Typography{
		FontFamily: convertBound(style.FontFamily, func(v string) any { return v }),
		FontSize:   convertBound(style.FontSize, toDimension),
		FontWeight: convertBound(style.FontWeight, func(v float64) any { return v }),
		LineHeight: convertBound(style.LineHeight, func(v extractor.LineHeight) any {
			if v.Auto {
				return "auto"
			}
			return v.Value
		}),
		TextCase:       textCases[style.TextCase],
		TextDecoration: textDecorations[style.TextDecoration],
	}
	if style.LetterSpacing.IsSet() {
		value.LetterSpacing = convertBound(style.LetterSpacing, toDimension)
	}
	if style.ParagraphSpacing > 0 {
		value.ParagraphSpacing = dimension(style.ParagraphSpacing, cfg.DefaultUnit)
	}
	return value
}

// ConvertEffectStyles builds the shadow tree of the selected effect styles.
// Only visible drop and inner shadows count; a style without any is left
// out. A single layer is emitted as an object, several as an array.
func ConvertEffectStyles(styles []extractor.EffectStyle, cfg *Config) *dtcg.Tree {
	selected := idSet(cfg.EffectStyles)
	tree := dtcg.NewTree()

	for i := range styles {
		style := &styles[i]
		if !selected[style.ID] {
			continue
		}

		layers := shadows(style, cfg)
		if len(layers) == 0 {
			continue
		}

		tok := &dtcg.Token{Type: dtcg.TypeShadow}
		if len(layers) == 1 {
			tok.Value = layers[0]
		} else {
			tok.Value = layers
		}
		if cfg.IncludeDescriptions {
			tok.Description = style.Description
		}
		tree.Insert(style.Name, tok)
	}
	return tree
}

func shadows(style *extractor.EffectStyle, cfg *Config) []dtcg.Shadow {
	toDimension := func(v float64) any { return dimension(v, cfg.DefaultUnit) }
	toColor := func(c extractor.RGBA) any { return convertColor(c, cfg.ColorFormat) }

	var layers []dtcg.Shadow
	for _, effect := range style.Effects {
		if !effect.Visible || !effect.Type.IsShadow() {
			continue
		}
		layers = append(layers, dtcg.Shadow{
			OffsetX: convertBound(effect.OffsetX, toDimension),
			OffsetY: convertBound(effect.OffsetY, toDimension),
			Blur:    convertBound(effect.Blur, toDimension),
			Spread:  convertBound(effect.Spread, toDimension),
			Color:   convertBound(effect.Color, toColor),
			Inset:   effect.Type == extractor.EffectInnerShadow,
		})
	}
	return layers
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
