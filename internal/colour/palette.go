package colour

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// DefaultTopK is the maximum number of palette entries reported.
const DefaultTopK = 5

// ColorData describes one palette entry.
type ColorData struct {
	Hex        string `json:"hex"`
	RGB        RGB    `json:"rgb"`
	HSL        HSL    `json:"hsl"`
	Percentage int    `json:"percentage"`
}

// NewColorData builds a palette entry for a colour and its share of opaque pixels.
func NewColorData(rgb RGB, percentage int) ColorData {
	return ColorData{
		Hex:        rgb.Hex(),
		RGB:        rgb,
		HSL:        RGBToHSL(rgb),
		Percentage: percentage,
	}
}

// SortBuckets orders buckets by descending count. The sort is stable, so
// equal counts keep their first-seen order.
func SortBuckets(buckets []ColorBucket) {
	slices.SortStableFunc(buckets, func(a, b ColorBucket) int {
		return cmp.Compare(b.Count, a.Count)
	})
}

// Rank returns up to k palette entries, most frequent first.
// Percentages are relative to every opaque pixel in the histogram, so the
// entries of a truncated palette may sum to less than 100.
// An empty histogram yields an empty, non-nil palette.
func Rank(h *Histogram, k int) []ColorData {
	total := h.Total()
	if total == 0 || k <= 0 {
		return []ColorData{}
	}

	buckets := h.Buckets()
	SortBuckets(buckets)

	n := min(k, len(buckets))
	palette := make([]ColorData, n)
	for i, b := range buckets[:n] {
		percentage := int(math.Round(float64(b.Count) / float64(total) * 100))
		palette[i] = NewColorData(b.Key.RGB(), percentage)
	}
	return palette
}

// PaletteHues returns the hue of every palette entry, in palette order.
func PaletteHues(palette []ColorData) []int {
	hues := make([]int, len(palette))
	for i, c := range palette {
		hues[i] = c.HSL.H
	}
	return hues
}

// PaletteHex returns the hex code of every palette entry.
func PaletteHex(palette []ColorData) []string {
	out := make([]string, len(palette))
	for i, c := range palette {
		out[i] = c.Hex
	}
	return out
}

// FormatPalette returns a human-readable listing of the palette.
func FormatPalette(palette []ColorData) string {
	if len(palette) == 0 {
		return "Empty palette\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(palette))
	for i, c := range palette {
		fmt.Fprintf(&sb, "  %d: %s %s %s %3d%%\n", i+1, c.Hex, c.RGB, c.HSL, c.Percentage)
	}
	return sb.String()
}
