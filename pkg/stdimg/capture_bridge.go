package stdimg

import (
	"fmt"
	"image"

	"github.com/brightlinephoto/capturesharp/pkg/capture"
	"github.com/brightlinephoto/capturesharp/pkg/capturelog"
)

// bayerRGGB is the packed dcraw-style filter word for an RGGB Bayer
// mosaic (row 0: R G R G..., row 1: G B G B...).
const bayerRGGB uint32 = 0x94949494

// xtransFuji is a plausible 6x6 X-Trans colour matrix (0=red, 1=green,
// 2=blue), used only to exercise the X-Trans code path against
// re-mosaiced RGB input; it is not read from any actual sensor.
var xtransFuji = [6][6]uint8{
	{1, 1, 0, 1, 1, 2},
	{1, 1, 2, 1, 1, 0},
	{0, 2, 1, 2, 0, 1},
	{1, 1, 2, 1, 1, 0},
	{1, 1, 0, 1, 1, 2},
	{2, 0, 1, 0, 2, 1},
}

// CaptureSharpen runs the Richardson-Lucy capture-sharpening pipeline
// over an already-demosaiced NRGBA image. Since the stdlib engine only
// ever has demosaiced RGB to work with (never raw sensor data), it
// first re-mosaics src through a synthetic CFA (pattern selects
// "bayer" or "xtrans") so the sharpener has the clipping information
// it needs, then recomposes the result back into RGB.
func CaptureSharpen(src *image.NRGBA, pattern string, radius float64, iterations int, boost, center, threshold float64, showVariance, showSigma bool) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return image.NewNRGBA(b), nil
	}

	sensor := sensorForPattern(pattern)
	roi := capture.Roi{Width: w, Height: h, X: 0, Y: 0, PWidth: w, PHeight: h}

	cfa := make([]float32, w*h)
	rgb := make([]float32, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := src.PixOffset(x+b.Min.X, y+b.Min.Y)
			r := float32(src.Pix[idx+0]) / 255.0
			g := float32(src.Pix[idx+1]) / 255.0
			bl := float32(src.Pix[idx+2]) / 255.0
			a := float32(src.Pix[idx+3]) / 255.0

			k := y*w + x
			rgb[k*4+0] = r
			rgb[k*4+1] = g
			rgb[k*4+2] = bl
			rgb[k*4+3] = a

			switch sensor.ColorAt(y, x, roi) {
			case 0:
				cfa[k] = r
			case 1:
				cfa[k] = g
			default:
				cfa[k] = bl
			}
		}
	}

	params := capture.Params{
		Radius:     float32(radius),
		Iterations: uint32(iterations),
		Boost:      float32(boost),
		Center:     float32(center),
		Threshold:  float32(threshold),
		Pipeline:   capture.PipelineExport,
	}
	flags := capture.Flags{ShowVarianceMask: showVariance, ShowSigmaMask: showSigma}

	if _, err := capture.Sharpen(cfa, rgb, roi, sensor, params, flags, nil, capturelog.NopLogger{}); err != nil {
		return nil, fmt.Errorf("captureSharpen: %w", err)
	}

	out := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			k := y*w + x
			idx := out.PixOffset(x+b.Min.X, y+b.Min.Y)
			out.Pix[idx+0] = clampUnit(rgb[k*4+0])
			out.Pix[idx+1] = clampUnit(rgb[k*4+1])
			out.Pix[idx+2] = clampUnit(rgb[k*4+2])
			out.Pix[idx+3] = clampUnit(rgb[k*4+3])
		}
	}
	return out, nil
}

func sensorForPattern(pattern string) capture.SensorPattern {
	if pattern == "xtrans" {
		return capture.NewXTransPattern(xtransFuji)
	}
	return capture.NewBayerPattern(bayerRGGB)
}

func clampUnit(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
