package colour

const (
	// White is the contrast suggestion for dark dominant colours.
	White = "#FFFFFF"
	// Black is the contrast suggestion for light dominant colours and the
	// dominant colour reported for an empty palette.
	Black = "#000000"

	contrastLightnessThreshold = 50
)

// SuggestContrast returns white when the dominant (first) palette entry has
// lightness below 50%, black otherwise. An empty palette yields white.
func SuggestContrast(palette []ColorData) string {
	if len(palette) == 0 {
		return White
	}
	if palette[0].HSL.L < contrastLightnessThreshold {
		return White
	}
	return Black
}
