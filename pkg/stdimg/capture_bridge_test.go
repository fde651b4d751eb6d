package stdimg

import (
	"image"
	"testing"
)

func gradientNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			v := uint8(64 + (x*128)/w)
			img.Pix[i+0] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestCaptureSharpenPreservesBounds(t *testing.T) {
	src := gradientNRGBA(32, 32)
	out, err := CaptureSharpen(src, "bayer", 0.5, 3, 0, 0, 0.05, false, false)
	if err != nil {
		t.Fatalf("CaptureSharpen returned error: %v", err)
	}
	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds changed: %v vs %v", out.Bounds(), src.Bounds())
	}
}

func TestCaptureSharpenXTransPattern(t *testing.T) {
	src := gradientNRGBA(32, 32)
	out, err := CaptureSharpen(src, "xtrans", 0.4, 2, 0, 0, 0.05, false, false)
	if err != nil {
		t.Fatalf("CaptureSharpen returned error: %v", err)
	}
	if out == nil {
		t.Fatal("output is nil")
	}
}

func TestCaptureSharpenShowVarianceMask(t *testing.T) {
	src := gradientNRGBA(32, 32)
	out, err := CaptureSharpen(src, "bayer", 0.5, 5, 0, 0, 0.05, true, false)
	if err != nil {
		t.Fatalf("CaptureSharpen returned error: %v", err)
	}
	if out.Bounds() != src.Bounds() {
		t.Fatal("variance-mask output should keep the same bounds")
	}
}

func TestCaptureSharpenNilSource(t *testing.T) {
	if _, err := CaptureSharpen(nil, "bayer", 0.5, 1, 0, 0, 0.05, false, false); err == nil {
		t.Fatal("expected an error for a nil source image")
	}
}

func TestApplyCommandStdlibCaptureSharpen(t *testing.T) {
	src := gradientNRGBA(24, 24)
	out, err := ApplyCommandStdlib(src, "captureSharpen", []string{"bayer", "0.5", "2"})
	if err != nil {
		t.Fatalf("ApplyCommandStdlib(captureSharpen) returned error: %v", err)
	}
	if out == nil {
		t.Fatal("output is nil")
	}
}
