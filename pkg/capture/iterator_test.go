package capture

import "testing"

func TestConvolve9x9IdentityKernel(t *testing.T) {
	const w, h = 20, 20
	buf := make([]float32, w*h)
	for i := range buf {
		buf[i] = float32(i % 7)
	}
	kt := BuildKernelTable()
	identity := kt.At(0)

	for _, pt := range [][2]int{{10, 10}, {2, 2}, {0, 0}, {h - 1, w - 1}} {
		row, col := pt[0], pt[1]
		got := convolve9x9(buf, row*w+col, w, h, row, col, identity)
		want := buf[row*w+col]
		if !floatsNear(got, want, 1e-5) {
			t.Errorf("convolve9x9 identity at (%d,%d) = %v, want %v", row, col, got, want)
		}
	}
}

func TestBlurDivMulRoundTripOnFlatSignal(t *testing.T) {
	const w, h = 24, 24
	kt := BuildKernelTable()
	roi := Roi{Width: w, Height: h, PWidth: w, PHeight: h}
	idx := BuildSigmaIndexTable(roi, 0, 0.0, 0.0)

	luminance := make([]float32, w*h)
	blend := make([]float32, w*h)
	for i := range luminance {
		luminance[i] = 0.5
		blend[i] = 1.0
	}

	div := make([]float32, w*h)
	blurDiv(luminance, div, luminance, blend, kt, idx, w, h)
	// A flat signal convolved with any normalised kernel is itself, so
	// luminance/conv(luminance) should come back to ~1 everywhere the
	// blend mask is active.
	for i, v := range div {
		if !floatsNear(v, 1.0, 1e-3) {
			t.Fatalf("blurDiv on flat signal [%d] = %v, want ~1.0", i, v)
		}
	}

	mul := make([]float32, w*h)
	copy(mul, luminance)
	blurMul(div, mul, blend, kt, idx, w, h)
	for i, v := range mul {
		if !floatsNear(v, 0.5, 1e-3) {
			t.Fatalf("blurMul round trip [%d] = %v, want ~0.5", i, v)
		}
	}
}

func TestRichardsonLucyZeroIterationsIsIdentity(t *testing.T) {
	const w, h = 16, 16
	kt := BuildKernelTable()
	roi := Roi{Width: w, Height: h, PWidth: w, PHeight: h}
	idx := BuildSigmaIndexTable(roi, 0.5, 0.0, 0.0)

	luminance := make([]float32, w*h)
	blend := make([]float32, w*h)
	for i := range luminance {
		luminance[i] = float32(i) / float32(w*h)
		blend[i] = 1.0
	}

	out, cancelled := richardsonLucy(luminance, blend, kt, idx, w, h, 0, nil)
	if cancelled {
		t.Fatal("richardsonLucy with 0 iterations should never report cancellation")
	}
	for i := range luminance {
		if out[i] != luminance[i] {
			t.Fatalf("richardsonLucy(iterations=0)[%d] = %v, want %v", i, out[i], luminance[i])
		}
	}
}

func TestRichardsonLucyRespectsCancellation(t *testing.T) {
	const w, h = 16, 16
	kt := BuildKernelTable()
	roi := Roi{Width: w, Height: h, PWidth: w, PHeight: h}
	idx := BuildSigmaIndexTable(roi, 0.5, 0.0, 0.0)

	luminance := make([]float32, w*h)
	blend := make([]float32, w*h)
	for i := range luminance {
		luminance[i] = 0.3
		blend[i] = 1.0
	}

	calls := 0
	cancelled := func() bool {
		calls++
		return true
	}

	_, wasCancelled := richardsonLucy(luminance, blend, kt, idx, w, h, 5, cancelled)
	if !wasCancelled {
		t.Fatal("expected richardsonLucy to report cancellation")
	}
	if calls != 1 {
		t.Fatalf("cancelled() called %d times, want exactly 1 (checked once per iteration, stopped on first true)", calls)
	}
}
