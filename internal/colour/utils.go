// Package colour provides colour-space conversion and contrast utilities.
package colour

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as an upper-case hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// MarshalJSON encodes the colour as a [r, g, b] triple.
func (rgb RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{int(rgb.R), int(rgb.G), int(rgb.B)})
}

// UnmarshalJSON decodes a [r, g, b] triple.
func (rgb *RGB) UnmarshalJSON(data []byte) error {
	var v [3]int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	for i, c := range v {
		if c < 0 || c > 255 {
			return fmt.Errorf("rgb channel %d out of range: %d", i, c)
		}
	}
	*rgb = RGB{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2])}
	return nil
}

// HSL is a colour in integer HSL form: hue in degrees [0, 360),
// saturation and lightness in percent [0, 100].
type HSL struct {
	H int
	S int
	L int
}

// MarshalJSON encodes the colour as a [h, s, l] triple.
func (hsl HSL) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{hsl.H, hsl.S, hsl.L})
}

// UnmarshalJSON decodes a [h, s, l] triple.
func (hsl *HSL) UnmarshalJSON(data []byte) error {
	var v [3]int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*hsl = HSL{H: v[0], S: v[1], L: v[2]}
	return nil
}

// String returns the HSL colour as "hsl(h, s%, l%)".
func (hsl HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hsl.H, hsl.S, hsl.L)
}

// RGBToHSL converts an RGB colour to integer HSL.
// Hue is rounded to the nearest degree and wrapped into [0, 360);
// saturation and lightness are rounded to the nearest percent.
func RGBToHSL(rgb RGB) HSL {
	h, s, l := rgbToHSL(rgb)
	return HSL{
		H: int(math.Round(h*360)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// rgbToHSL converts RGB to HSL colour space.
// Returns hue, saturation and lightness, each in [0, 1].
func rgbToHSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255
	g := float64(rgb.G) / 255
	b := float64(rgb.B) / 255

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))

	l = (maxVal + minVal) / 2

	// Achromatic.
	if maxVal == minVal {
		return 0, 0, l
	}

	d := maxVal - minVal
	if l > 0.5 {
		s = d / (2 - maxVal - minVal)
	} else {
		s = d / (maxVal + minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h /= 6

	return h, s, l
}

// ParseHex parses a hex colour string like "#0AF" or "#00AAFF".
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(rgb RGB) float64 {
	r := gammaCorrect(float64(rgb.R) / 255)
	g := gammaCorrect(float64(rgb.G) / 255)
	b := gammaCorrect(float64(rgb.B) / 255)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}
