package capture

import (
	"testing"

	"github.com/pkg/errors"
)

func syntheticSharpenInputs(w, h int) ([]float32, []float32, Roi, SensorPattern) {
	roi := Roi{Width: w, Height: h, PWidth: w, PHeight: h}
	sensor := NewBayerPattern(0x94949494)
	cfa := make([]float32, w*h)
	rgb := make([]float32, w*h*4)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			k := row*w + col
			v := float32(0.3)
			if col > w/2 {
				v = 0.6
			}
			color := sensor.ColorAt(row, col, roi)
			rgb[k*4+0] = 0.3
			rgb[k*4+1] = 0.35
			rgb[k*4+2] = 0.4
			rgb[k*4+3] = 1.0
			cfa[k] = v
			_ = color
		}
	}
	return cfa, rgb, roi, sensor
}

func TestSharpenZeroIterationsIsNoOp(t *testing.T) {
	const w, h = 24, 24
	cfa, rgb, roi, sensor := syntheticSharpenInputs(w, h)
	before := append([]float32(nil), rgb...)

	params := Params{Radius: 0.5, Iterations: 0}
	result, err := Sharpen(cfa, rgb, roi, sensor, params, Flags{}, nil, nil)
	if err != nil {
		t.Fatalf("Sharpen returned error: %v", err)
	}
	for i := range rgb {
		if rgb[i] != before[i] {
			t.Fatalf("Sharpen(iterations=0) mutated rgb[%d]: %v -> %v", i, before[i], rgb[i])
		}
	}
	if result.RadiusUsed != 0.5 {
		t.Fatalf("RadiusUsed = %v, want 0.5 (no auto-estimation should run)", result.RadiusUsed)
	}
}

func TestSharpenLowQualityThumbnailShortCircuits(t *testing.T) {
	const w, h = 24, 24
	cfa, rgb, roi, sensor := syntheticSharpenInputs(w, h)
	before := append([]float32(nil), rgb...)

	params := Params{Radius: 0.5, Iterations: 10}
	flags := Flags{IsLowQualityThumbnail: func() bool { return true }}
	_, err := Sharpen(cfa, rgb, roi, sensor, params, flags, nil, nil)
	if err != nil {
		t.Fatalf("Sharpen returned error: %v", err)
	}
	for i := range rgb {
		if rgb[i] != before[i] {
			t.Fatalf("Sharpen should not mutate rgb on the low-quality-thumbnail fast path")
		}
	}
}

func TestSharpenShowVarianceMaskWritesAlphaOnly(t *testing.T) {
	const w, h = 24, 24
	cfa, rgb, roi, sensor := syntheticSharpenInputs(w, h)
	beforeRGB := make([]float32, len(rgb))
	for i := 0; i < len(rgb); i += 4 {
		beforeRGB[i], beforeRGB[i+1], beforeRGB[i+2] = rgb[i], rgb[i+1], rgb[i+2]
	}

	params := Params{Radius: 0.5, Iterations: 10}
	flags := Flags{ShowVarianceMask: true}
	_, err := Sharpen(cfa, rgb, roi, sensor, params, flags, nil, nil)
	if err != nil {
		t.Fatalf("Sharpen returned error: %v", err)
	}
	for i := 0; i < len(rgb); i += 4 {
		if rgb[i] != beforeRGB[i] || rgb[i+1] != beforeRGB[i+1] || rgb[i+2] != beforeRGB[i+2] {
			t.Fatalf("ShowVarianceMask must not touch colour channels, pixel %d changed", i/4)
		}
	}
}

func TestSharpenOversizedRoiReturnsOutOfMemory(t *testing.T) {
	cfa := make([]float32, 1)
	rgb := make([]float32, 4)
	roi := Roi{Width: 1 << 15, Height: 1 << 15, PWidth: 1 << 15, PHeight: 1 << 15}
	sensor := NewBayerPattern(0x94949494)
	params := Params{Radius: 0.5, Iterations: 10}

	_, err := Sharpen(cfa, rgb, roi, sensor, params, Flags{}, nil, nil)
	if errors.Cause(err) != ErrOutOfMemory {
		t.Fatalf("expected ErrOutOfMemory for an oversized ROI, got %v", err)
	}
}

func TestSharpenRunsToCompletionAndStaysInRange(t *testing.T) {
	const w, h = 24, 24
	cfa, rgb, roi, sensor := syntheticSharpenInputs(w, h)

	params := Params{Radius: 0.5, Iterations: 3, Threshold: 0.05}
	result, err := Sharpen(cfa, rgb, roi, sensor, params, Flags{}, nil, nil)
	if err != nil {
		t.Fatalf("Sharpen returned error: %v", err)
	}
	if result.RadiusUsed != 0.5 {
		t.Fatalf("RadiusUsed = %v, want 0.5", result.RadiusUsed)
	}
	for i, v := range rgb {
		if v < 0 {
			t.Fatalf("rgb[%d] = %v went negative after sharpening", i, v)
		}
	}
}

func TestSharpenAutoRadiusWritesBackOnlyInFullPipeline(t *testing.T) {
	const w, h = 48, 48
	cfa, rgb, roi, sensor := syntheticSharpenInputs(w, h)

	params := Params{Radius: 0, Iterations: 1, Pipeline: PipelineExport}
	result, err := Sharpen(cfa, rgb, roi, sensor, params, Flags{}, nil, nil)
	if err != nil {
		t.Fatalf("Sharpen returned error: %v", err)
	}
	if result.AutoRadiusWriteBack != nil {
		t.Fatal("PipelineExport must never populate AutoRadiusWriteBack")
	}
}

func TestSharpenCancellationReturnsErrCancelled(t *testing.T) {
	const w, h = 24, 24
	cfa, rgb, roi, sensor := syntheticSharpenInputs(w, h)

	params := Params{Radius: 0.5, Iterations: 10}
	cancelled := func() bool { return true }
	_, err := Sharpen(cfa, rgb, roi, sensor, params, Flags{}, cancelled, nil)
	if errors.Cause(err) != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}
