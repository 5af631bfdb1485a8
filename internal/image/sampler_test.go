package image

import (
	"image"
	"image/color"
	"testing"
)

// fillRect paints a rectangle of an RGBA image with a single colour.
func fillRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{name: "landscape downscale", width: 400, height: 200, wantW: 200, wantH: 100},
		{name: "portrait downscale", width: 100, height: 1000, wantW: 20, wantH: 200},
		{name: "square upscale", width: 10, height: 10, wantW: 200, wantH: 200},
		{name: "truncates fraction", width: 1000, height: 333, wantW: 200, wantH: 66},
		{name: "thin strip keeps one pixel", width: 10000, height: 1, wantW: 200, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ScaledSize(tt.width, tt.height, DefaultMaxSize)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("ScaledSize(%d, %d) = %dx%d, want %dx%d", tt.width, tt.height, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSample(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	fillRect(src, image.Rect(0, 0, 200, 100), color.RGBA{R: 255, A: 255})
	fillRect(src, image.Rect(200, 0, 400, 100), color.RGBA{B: 255, A: 255})

	for _, interp := range ValidInterpolations() {
		t.Run(string(interp), func(t *testing.T) {
			dst, err := Sample(src, DefaultMaxSize, interp)
			if err != nil {
				t.Fatalf("Sample failed: %v", err)
			}

			if dst.Bounds().Dx() != 200 || dst.Bounds().Dy() != 50 {
				t.Fatalf("sample size = %v, want 200x50", dst.Bounds())
			}
			if len(dst.Pix) != 200*50*4 {
				t.Errorf("len(Pix) = %d, want %d", len(dst.Pix), 200*50*4)
			}

			// Far from the boundary the colours are unaffected by interpolation.
			if got := dst.NRGBAAt(10, 25); got != (color.NRGBA{R: 255, A: 255}) {
				t.Errorf("left pixel = %v, want opaque red", got)
			}
			if got := dst.NRGBAAt(190, 25); got != (color.NRGBA{B: 255, A: 255}) {
				t.Errorf("right pixel = %v, want opaque blue", got)
			}
		})
	}
}

func TestSampleKeepsTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))

	dst, err := Sample(src, 10, InterpolationNearest)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 {
			t.Fatalf("alpha at byte %d = %d, want 0", i, dst.Pix[i])
		}
	}
}

func TestSampleErrors(t *testing.T) {
	tests := []struct {
		name    string
		img     image.Image
		maxSize int
	}{
		{name: "nil image", img: nil, maxSize: DefaultMaxSize},
		{name: "empty image", img: image.NewRGBA(image.Rect(0, 0, 0, 0)), maxSize: DefaultMaxSize},
		{name: "bad max size", img: image.NewRGBA(image.Rect(0, 0, 4, 4)), maxSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(tt.img, tt.maxSize, InterpolationBilinear)
			if !IsSamplingError(err) {
				t.Errorf("expected SamplingError, got %v", err)
			}
		})
	}
}

func TestParseInterpolation(t *testing.T) {
	tests := []struct {
		input   string
		want    Interpolation
		wantErr bool
	}{
		{input: "", want: InterpolationBilinear},
		{input: "nearest", want: InterpolationNearest},
		{input: "catmullrom", want: InterpolationCatmullRom},
		{input: "lanczos", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseInterpolation(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseInterpolation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseInterpolation(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
