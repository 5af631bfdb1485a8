package colour

import "testing"

func TestQuantize(t *testing.T) {
	tests := []struct {
		value uint8
		step  int
		want  uint8
	}{
		{value: 0, step: 20, want: 0},
		{value: 9, step: 20, want: 0},
		{value: 10, step: 20, want: 20},
		{value: 29, step: 20, want: 20},
		{value: 30, step: 20, want: 40},
		{value: 240, step: 20, want: 240},
		{value: 245, step: 20, want: 240},
		{value: 250, step: 20, want: 255},
		{value: 255, step: 20, want: 255},
		{value: 123, step: 1, want: 123},
		{value: 123, step: 0, want: 123},
	}

	for _, tt := range tests {
		if got := Quantize(tt.value, tt.step); got != tt.want {
			t.Errorf("Quantize(%d, %d) = %d, want %d", tt.value, tt.step, got, tt.want)
		}
	}
}

func TestQuantizeNeverExceedsChannelRange(t *testing.T) {
	for step := 1; step <= 255; step++ {
		for v := 0; v <= 255; v++ {
			q := int(Quantize(uint8(v), step))
			if q > 255 {
				t.Fatalf("Quantize(%d, %d) = %d", v, step, q)
			}
			if q != 255 && q%step != 0 {
				t.Fatalf("Quantize(%d, %d) = %d is not on the step grid", v, step, q)
			}
		}
	}
}

func TestHistogramSkipsTransparentPixels(t *testing.T) {
	h := NewHistogram(DefaultStep, DefaultAlphaThreshold)

	if h.Add(PixelSample{R: 255, A: 127}) {
		t.Error("pixel with alpha 127 should be skipped")
	}
	if !h.Add(PixelSample{R: 255, A: 128}) {
		t.Error("pixel with alpha 128 should be counted")
	}
	if h.Total() != 1 {
		t.Errorf("Total() = %d, want 1", h.Total())
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistogramPreservesFirstSeenOrder(t *testing.T) {
	h := NewHistogram(DefaultStep, DefaultAlphaThreshold)
	blue := PixelSample{B: 250, A: 255}
	red := PixelSample{R: 250, A: 255}

	h.Add(blue)
	h.Add(red)
	h.Add(PixelSample{B: 249, A: 255})

	buckets := h.Buckets()
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != (QuantizedKey{B: 255}) || buckets[0].Count != 2 {
		t.Errorf("first bucket = %+v, want blue with count 2", buckets[0])
	}
	if buckets[1].Key != (QuantizedKey{R: 255}) || buckets[1].Count != 1 {
		t.Errorf("second bucket = %+v, want red with count 1", buckets[1])
	}
}

func TestHistogramBucketsIsCopy(t *testing.T) {
	h := NewHistogram(DefaultStep, DefaultAlphaThreshold)
	h.Add(PixelSample{A: 255})

	buckets := h.Buckets()
	buckets[0].Count = 99

	if h.Buckets()[0].Count != 1 {
		t.Error("mutating Buckets() result changed the histogram")
	}
}

func TestHistogramAddPixels(t *testing.T) {
	h := NewHistogram(DefaultStep, DefaultAlphaThreshold)
	pix := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
		0, 255, 0, 0,
		255, 0, 0, 255,
		1, 2, // trailing partial pixel
	}
	h.AddPixels(pix)

	if h.Total() != 3 {
		t.Errorf("Total() = %d, want 3", h.Total())
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}
