// Package color converts normalized Figma RGBA colors into the two color
// representations emitted in DTCG tokens: hex strings and OKLCH objects.
package color

import (
	"encoding/json"
	"fmt"
	"math"
)

// Format selects the DTCG color representation.
type Format string

const (
	// FormatHex renders "#rrggbb" or "#rrggbbaa".
	FormatHex Format = "hex"
	// FormatOKLCH renders {"colorSpace":"oklch","components":[L,C,H]}.
	FormatOKLCH Format = "oklch"
)

// RGBA represents a color with float channels ranging from 0 to 1, as
// delivered by Figma for both variables and style effects.
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// UnmarshalJSON decodes a Figma color object. A missing "a" means opaque.
func (c *RGBA) UnmarshalJSON(data []byte) error {
	var raw struct {
		R, G, B float64
		A       *float64
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = RGBA{R: raw.R, G: raw.G, B: raw.B, A: 1}
	if raw.A != nil {
		c.A = *raw.A
	}
	return nil
}

// Opaque reports whether the color carries no transparency.
func (c RGBA) Opaque() bool {
	return c.A >= 1
}

// OKLCH is the structured DTCG color value for the oklch color space.
// Alpha is nil for fully opaque colors so that it is omitted from JSON.
type OKLCH struct {
	ColorSpace string     `json:"colorSpace"`
	Components [3]float64 `json:"components"`
	Alpha      *float64   `json:"alpha,omitempty"`
}

// Convert renders c in the requested format. Any format other than
// FormatOKLCH falls back to hex.
func Convert(c RGBA, format Format) any {
	if format == FormatOKLCH {
		return ToOKLCH(c)
	}
	return ToHex(c)
}

// ToHex converts c to a lowercase hex string. The alpha byte is appended only
// when the color is not fully opaque.
func ToHex(c RGBA) string {
	hex := fmt.Sprintf("#%02x%02x%02x", toByte(c.R), toByte(c.G), toByte(c.B))
	if !c.Opaque() {
		hex += fmt.Sprintf("%02x", toByte(c.A))
	}
	return hex
}

// ToOKLCH converts c through sRGB → linear RGB → XYZ (D65) → OKLab → OKLCH.
// L and C are rounded to 3 decimals, H to 1 decimal in [0, 360).
func ToOKLCH(c RGBA) OKLCH {
	l, a, b := ToOKLab(c)

	chroma := math.Sqrt(a*a + b*b)
	hue := math.Atan2(b, a) * (180 / math.Pi)
	if hue < 0 {
		hue += 360
	}

	out := OKLCH{
		ColorSpace: string(FormatOKLCH),
		Components: [3]float64{
			roundTo(l, 3),
			roundTo(chroma, 3),
			roundTo(hue, 1),
		},
	}
	if !c.Opaque() {
		alpha := roundTo(c.A, 3)
		out.Alpha = &alpha
	}
	// A hue that rounds up to 360 is the same angle as 0.
	if out.Components[2] >= 360 {
		out.Components[2] = 0
	}
	return out
}

// ToOKLab returns the unrounded OKLab coordinates of c.
func ToOKLab(c RGBA) (l, a, b float64) {
	lr := SRGBToLinear(c.R)
	lg := SRGBToLinear(c.G)
	lb := SRGBToLinear(c.B)

	x := 0.4124564*lr + 0.3575761*lg + 0.1804375*lb
	y := 0.2126729*lr + 0.7151522*lg + 0.0721750*lb
	z := 0.0193339*lr + 0.1191920*lg + 0.9503041*lb

	lms1 := math.Cbrt(0.8189330101*x + 0.3618667424*y - 0.1288597137*z)
	lms2 := math.Cbrt(0.0329845436*x + 0.9293118715*y + 0.0361456387*z)
	lms3 := math.Cbrt(0.0482003018*x + 0.2643662691*y + 0.6338517070*z)

	l = 0.2104542553*lms1 + 0.7936177850*lms2 - 0.0040720468*lms3
	a = 1.9779984951*lms1 - 2.4285922050*lms2 + 0.4505937099*lms3
	b = 0.0259040371*lms1 + 0.7827717662*lms2 - 0.8086757660*lms3
	return l, a, b
}

// SRGBToLinear decodes a gamma-encoded sRGB channel.
func SRGBToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// toByte maps a 0-1 channel onto 0-255, rounding half up.
func toByte(v float64) int {
	n := int(jsRound(v * 255))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return jsRound(v*p) / p
}

// jsRound rounds half toward positive infinity, matching the rounding used by
// the Figma plugin ecosystem that consumes these values.
func jsRound(v float64) float64 {
	return math.Floor(v + 0.5)
}
