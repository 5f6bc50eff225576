package converter

import (
	"github.com/kataras/figma-dtcg/pkg/color"
	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/extractor"
)

func convertColor(c extractor.RGBA, format color.Format) any {
	return color.Convert(c, format)
}

func dimension(v float64, unit dtcg.Unit) dtcg.Dimension {
	return dtcg.Dimension{Value: v, Unit: unit}
}

// convertBound renders a style property: a variable binding becomes a
// reference to that variable, a literal goes through convert. An absent
// property converts the zero value.
func convertBound[T any](b extractor.BoundValue[T], convert func(T) any) any {
	if name, ok := b.Reference(); ok {
		return dtcg.Reference(name)
	}
	v, _ := b.Value()
	return convert(v)
}
