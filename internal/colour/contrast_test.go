package colour

import "testing"

func TestSuggestContrast(t *testing.T) {
	if got := SuggestContrast(nil); got != White {
		t.Errorf("SuggestContrast(empty) = %s, want %s", got, White)
	}

	for l := 0; l <= 100; l++ {
		palette := []ColorData{{HSL: HSL{L: l}}}
		got := SuggestContrast(palette)
		want := Black
		if l < 50 {
			want = White
		}
		if got != want {
			t.Errorf("lightness %d: SuggestContrast = %s, want %s", l, got, want)
		}
	}
}

func TestSuggestContrastUsesDominantOnly(t *testing.T) {
	palette := []ColorData{
		NewColorData(RGB{R: 255, G: 255, B: 255}, 60),
		NewColorData(RGB{}, 40),
	}
	if got := SuggestContrast(palette); got != Black {
		t.Errorf("SuggestContrast = %s, want %s", got, Black)
	}
}
