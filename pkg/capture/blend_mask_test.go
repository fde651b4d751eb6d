package capture

import "testing"

func flatRGBBuffer(width, height int, r, g, b float32) []float32 {
	rgb := make([]float32, width*height*4)
	for i := 0; i < width*height; i++ {
		rgb[i*4+0] = r
		rgb[i*4+1] = g
		rgb[i*4+2] = b
		rgb[i*4+3] = 1.0
	}
	return rgb
}

func TestPrepareBlendBorderIsZero(t *testing.T) {
	const w, h = 16, 16
	roi := Roi{Width: w, Height: h}
	sensor := NewBayerPattern(0x94949494)
	whites := [3]float32{CaptureCFAClip, CaptureCFAClip, CaptureCFAClip}
	cfa := make([]float32, w*h)
	rgb := flatRGBBuffer(w, h, 0.5, 0.5, 0.5)

	mask, yold := prepareBlend(cfa, rgb, sensor, whites, roi)
	for col := 0; col < w; col++ {
		if mask[col] != 0 {
			t.Errorf("top row mask[%d] = %v, want 0", col, mask[col])
		}
	}
	if yold[w*h/2] <= 0 {
		t.Errorf("interior luminance should be positive for mid-grey input, got %v", yold[w*h/2])
	}
}

func TestPrepareBlendClipsHighlights(t *testing.T) {
	const w, h = 16, 16
	roi := Roi{Width: w, Height: h}
	sensor := NewBayerPattern(0x94949494)
	whites := [3]float32{CaptureCFAClip, CaptureCFAClip, CaptureCFAClip}
	cfa := make([]float32, w*h)
	rgb := flatRGBBuffer(w, h, 0.5, 0.5, 0.5)

	// Force a single interior pixel's CFA sample above the clip
	// threshold; its rhombus neighbourhood should be zeroed.
	center := (h/2)*w + w/2
	cfa[center] = 1.0

	mask, _ := prepareBlend(cfa, rgb, sensor, whites, roi)
	if mask[center] != 0 {
		t.Fatalf("clipped pixel mask = %v, want 0", mask[center])
	}
}

func TestGaussianBlurPlaneIdentityAtZeroSigma(t *testing.T) {
	const w, h = 8, 8
	src := make([]float32, w*h)
	for i := range src {
		src[i] = float32(i)
	}
	dst := gaussianBlurPlane(src, w, h, 0)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("gaussianBlurPlane(sigma=0)[%d] = %v, want %v", i, dst[i], src[i])
		}
	}
}

func TestGaussianBlurPlaneSmoothsImpulse(t *testing.T) {
	const w, h = 16, 16
	src := make([]float32, w*h)
	src[(h/2)*w+w/2] = 1.0
	dst := gaussianBlurPlane(src, w, h, 2.0)
	center := (h/2)*w + w/2
	if dst[center] >= src[center] {
		t.Fatalf("blurred impulse centre = %v, want less than the unblurred value %v", dst[center], src[center])
	}
	if dst[center-1] <= 0 {
		t.Fatalf("blur should spread energy to neighbours, got %v at (center-1)", dst[center-1])
	}
}

func TestReinforceBlendMaskClampsToUnitRange(t *testing.T) {
	const w, h = 4, 4
	raw := make([]float32, w*h)
	blurred := make([]float32, w*h)
	for i := range raw {
		raw[i] = 2.0
		blurred[i] = -1.0
	}
	out := reinforceBlendMask(raw, blurred, w, h)
	for i, v := range out {
		if v < 0 || v > 1 {
			t.Fatalf("reinforceBlendMask[%d] = %v, out of [0,1]", i, v)
		}
	}
}

func TestBuildBlendMaskUniformImage(t *testing.T) {
	const w, h = 24, 24
	roi := Roi{Width: w, Height: h}
	sensor := NewBayerPattern(0x94949494)
	whites := [3]float32{CaptureCFAClip, CaptureCFAClip, CaptureCFAClip}
	cfa := make([]float32, w*h)
	for i := range cfa {
		cfa[i] = 0.4
	}
	rgb := flatRGBBuffer(w, h, 0.4, 0.4, 0.4)

	blend, luminance := buildBlendMask(cfa, rgb, sensor, whites, roi, 0.05)
	if len(blend) != w*h || len(luminance) != w*h {
		t.Fatalf("buildBlendMask returned wrong-sized buffers: blend=%d luminance=%d, want %d", len(blend), len(luminance), w*h)
	}
	for i, v := range blend {
		if v < 0 || v > 1 {
			t.Fatalf("blend[%d] = %v, out of [0,1]", i, v)
		}
	}
}
