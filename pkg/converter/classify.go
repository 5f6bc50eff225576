package converter

import (
	"regexp"

	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/extractor"
)

var (
	plainNumberName = regexp.MustCompile(`(?i)opacity|alpha|weight`)
	weightName      = regexp.MustCompile(`(?i)weight`)
	opacityName     = regexp.MustCompile(`(?i)opacity`)
	fontFamilyName  = regexp.MustCompile(`(?i)font-?family`)
)

// IsPlainNumber reports whether a FLOAT variable is unitless (opacity, alpha,
// font weight) rather than a dimension.
func IsPlainNumber(v *extractor.Variable) bool {
	if v.HasScope(extractor.ScopeOpacity) || v.HasScope(extractor.ScopeFontWeight) {
		return true
	}
	return plainNumberName.MatchString(v.Name)
}

// InferType returns the DTCG $type of a variable, or dtcg.TypeNone when the
// variable has no matching DTCG type.
func InferType(v *extractor.Variable) dtcg.Type {
	switch v.ResolvedType {
	case extractor.ResolvedColor:
		return dtcg.TypeColor
	case extractor.ResolvedFloat:
		switch {
		case v.HasScope(extractor.ScopeFontWeight) || weightName.MatchString(v.Name):
			return dtcg.TypeFontWeight
		case v.HasScope(extractor.ScopeOpacity) || opacityName.MatchString(v.Name):
			return dtcg.TypeNumber
		default:
			return dtcg.TypeDimension
		}
	case extractor.ResolvedString:
		if v.HasScope(extractor.ScopeFontFamily) || fontFamilyName.MatchString(v.Name) {
			return dtcg.TypeFontFamily
		}
	}
	return dtcg.TypeNone
}
