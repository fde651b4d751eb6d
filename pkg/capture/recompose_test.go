package capture

import "testing"

func TestRecomposeBlendZeroKeepsOriginal(t *testing.T) {
	const w, h = 4, 4
	n := w * h
	rgb := make([]float32, n*4)
	out := make([]float32, n*4)
	sharpened := make([]float32, n)
	luminance := make([]float32, n)
	blend := make([]float32, n) // all zero: keep original everywhere

	for i := 0; i < n; i++ {
		rgb[i*4+0] = 0.2
		rgb[i*4+1] = 0.3
		rgb[i*4+2] = 0.4
		rgb[i*4+3] = 0.9
		luminance[i] = 0.25
		sharpened[i] = 0.9 // would be a big change if blend weren't 0
	}

	recompose(rgb, out, sharpened, luminance, blend, w, h)
	for i := 0; i < n; i++ {
		if out[i*4+0] != rgb[i*4+0] || out[i*4+1] != rgb[i*4+1] || out[i*4+2] != rgb[i*4+2] {
			t.Fatalf("pixel %d: blend=0 should preserve the original colour, got %v want %v", i, out[i*4:i*4+3], rgb[i*4:i*4+3])
		}
		if out[i*4+3] != rgb[i*4+3] {
			t.Fatalf("pixel %d: alpha should be carried through unchanged", i)
		}
	}
}

func TestRecomposeBlendOneAppliesRatio(t *testing.T) {
	const w, h = 2, 2
	n := w * h
	rgb := make([]float32, n*4)
	out := make([]float32, n*4)
	sharpened := make([]float32, n)
	luminance := make([]float32, n)
	blend := make([]float32, n)

	for i := 0; i < n; i++ {
		rgb[i*4+0] = 0.4
		rgb[i*4+1] = 0.4
		rgb[i*4+2] = 0.4
		luminance[i] = 0.5
		sharpened[i] = 1.0 // ratio = 2.0
		blend[i] = 1.0
	}

	recompose(rgb, out, sharpened, luminance, blend, w, h)
	for i := 0; i < n; i++ {
		if !floatsNear(out[i*4+0], 0.8, 1e-5) {
			t.Fatalf("pixel %d: out = %v, want ~0.8 (ratio 2.0 applied)", i, out[i*4+0])
		}
	}
}

func TestWriteAlphaChannelCopiesMask(t *testing.T) {
	const w, h = 4, 4
	n := w * h
	rgb := make([]float32, n*4)
	mask := make([]float32, n)
	for i := range mask {
		mask[i] = float32(i) / float32(n)
	}
	writeAlphaChannel(rgb, mask, w, h)
	for i := 0; i < n; i++ {
		if rgb[i*4+3] != mask[i] {
			t.Fatalf("alpha[%d] = %v, want %v", i, rgb[i*4+3], mask[i])
		}
	}
}

func TestWriteSigmaAlphaChannelScalesToUnitRange(t *testing.T) {
	const w, h = 4, 4
	n := w * h
	rgb := make([]float32, n*4)
	roi := Roi{Width: w, Height: h, PWidth: w, PHeight: h}
	idx := BuildSigmaIndexTable(roi, 0.8, 0.3, 0.1)

	writeSigmaAlphaChannel(rgb, idx, w, h)
	for i := 0; i < n; i++ {
		want := float32(idx.idx[i]) / 255.0
		if rgb[i*4+3] != want {
			t.Fatalf("sigma alpha[%d] = %v, want %v", i, rgb[i*4+3], want)
		}
		if rgb[i*4+3] < 0 || rgb[i*4+3] > 1 {
			t.Fatalf("sigma alpha[%d] = %v, out of [0,1]", i, rgb[i*4+3])
		}
	}
}
