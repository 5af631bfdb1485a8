package colour

import (
	"fmt"
	"slices"
)

// Harmony is a coarse classification of how the palette's hues relate.
type Harmony string

const (
	// HarmonyMonochromatic is reported for palettes with fewer than two colours.
	HarmonyMonochromatic Harmony = "Monochromatic"
	// HarmonyComplementary is reported when the hue span is 150-210 degrees.
	HarmonyComplementary Harmony = "Complementary"
	// HarmonyAnalogous is reported when the hue span is at most 60 degrees.
	HarmonyAnalogous Harmony = "Analogous"
	// HarmonyTriadic is reported when the hue span is 100-140 degrees.
	HarmonyTriadic Harmony = "Triadic"
	// HarmonyMixed is reported when no other rule matches.
	HarmonyMixed Harmony = "Mixed Harmony"
)

// HueMetric selects how the span of a set of hues is measured.
type HueMetric string

const (
	// HueLinear measures max-min over the sorted hues. 5 and 355 degrees are
	// 350 degrees apart under this metric.
	HueLinear HueMetric = "linear"

	// HueCircular measures the smallest arc of the colour wheel covering
	// every hue, so 5 and 355 degrees are 10 degrees apart.
	HueCircular HueMetric = "circular"
)

// ValidHueMetrics returns the supported hue metrics.
func ValidHueMetrics() []HueMetric {
	return []HueMetric{HueLinear, HueCircular}
}

// ParseHueMetric parses a hue metric name. An empty name selects HueLinear.
func ParseHueMetric(s string) (HueMetric, error) {
	if s == "" {
		return HueLinear, nil
	}
	m := HueMetric(s)
	if !slices.Contains(ValidHueMetrics(), m) {
		return "", fmt.Errorf("unknown hue metric: %s (valid: %v)", s, ValidHueMetrics())
	}
	return m, nil
}

// ClassifyHarmony assigns a harmony label to a set of hues (degrees).
// The first matching rule wins: complementary, analogous, triadic, mixed.
func ClassifyHarmony(hues []int, metric HueMetric) Harmony {
	if len(hues) < 2 {
		return HarmonyMonochromatic
	}

	sorted := slices.Clone(hues)
	slices.Sort(sorted)
	span := HueSpan(sorted, metric)

	switch {
	case span >= 150 && span <= 210:
		return HarmonyComplementary
	case span <= 60:
		return HarmonyAnalogous
	case span >= 100 && span <= 140:
		return HarmonyTriadic
	default:
		return HarmonyMixed
	}
}

// HueSpan returns the spread of ascending-sorted hues under the given metric.
func HueSpan(sorted []int, metric HueMetric) int {
	if len(sorted) < 2 {
		return 0
	}

	linear := sorted[len(sorted)-1] - sorted[0]
	if metric != HueCircular {
		return linear
	}

	// The covering arc is the wheel minus its largest empty gap.
	largestGap := 360 - linear
	for i := 1; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap > largestGap {
			largestGap = gap
		}
	}
	return 360 - largestGap
}
