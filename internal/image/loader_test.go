package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	httputil "github.com/chromavant/chroma/internal/util/http"
)

// encodePNG returns a PNG-encoded solid image.
func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), c)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	path := writeFile(t, "red.png", encodePNG(t, 4, 3, color.RGBA{R: 255, A: 255}))

	img, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", img.Bounds())
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := writeFile(t, "garbage.png", []byte("not an image"))

	tests := []struct {
		name string
		path string
		op   string
	}{
		{name: "empty path", path: "", op: "open"},
		{name: "missing file", path: filepath.Join(dir, "missing.png"), op: "open"},
		{name: "directory", path: dir, op: "open"},
		{name: "undecodable", path: garbage, op: "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileLoader().Load(tt.path)
			var se *SamplingError
			if !errors.As(err, &se) {
				t.Fatalf("expected SamplingError, got %v", err)
			}
			if se.Op != tt.op {
				t.Errorf("Op = %q, want %q", se.Op, tt.op)
			}
		})
	}
}

func TestSmartLoaderURL(t *testing.T) {
	data := encodePNG(t, 8, 8, color.RGBA{G: 255, A: 255})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(data)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	img, err := NewSmartLoader().Load(server.URL + "/ok.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("width = %d, want 8", img.Bounds().Dx())
	}

	_, err = NewSmartLoader().Load(server.URL + "/missing.png")
	var se *SamplingError
	if !errors.As(err, &se) || se.Op != "fetch" {
		t.Errorf("expected fetch SamplingError, got %v", err)
	}
}

func TestReadSourceAndMIME(t *testing.T) {
	data := encodePNG(t, 2, 2, color.RGBA{B: 255, A: 255})
	path := writeFile(t, "blue.png", data)

	got, err := ReadSource(t.Context(), path, httputil.FetchOptions{})
	if err != nil {
		t.Fatalf("ReadSource failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("ReadSource returned different bytes")
	}
	if mime := DetectMIMEType(got); mime != "image/png" {
		t.Errorf("DetectMIMEType() = %q, want image/png", mime)
	}
}

func TestDecode(t *testing.T) {
	img, err := Decode(encodePNG(t, 3, 2, color.RGBA{G: 255, A: 255}), "green.png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", img.Bounds())
	}

	_, err = Decode([]byte("not an image"), "notes.png")
	var se *SamplingError
	if !errors.As(err, &se) || se.Op != "decode" || se.Path != "notes.png" {
		t.Errorf("expected decode SamplingError for notes.png, got %v", err)
	}
}

func TestValidateImagePath(t *testing.T) {
	valid := writeFile(t, "ok.png", encodePNG(t, 1, 1, color.RGBA{A: 255}))
	invalid := writeFile(t, "bad.png", []byte("nope"))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "valid file", path: valid},
		{name: "url", path: "https://example.com/a.png"},
		{name: "empty", path: "", wantErr: "cannot be empty"},
		{name: "missing", path: filepath.Join(t.TempDir(), "nope.png"), wantErr: "not found"},
		{name: "directory", path: t.TempDir(), wantErr: "directory"},
		{name: "invalid content", path: invalid, wantErr: "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsImageFile(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.gif", "e.webp"} {
		if !isImageFile(name) {
			t.Errorf("isImageFile(%q) = false", name)
		}
	}
	if isImageFile("notes.txt") {
		t.Error("isImageFile(notes.txt) = true")
	}
}
