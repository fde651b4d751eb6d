package capture

import "math"

// prepareBlend computes the BT.709 luminance plane (yold) and the
// initial blend mask: 1.0 everywhere except a 21-cell rhombus around
// every clipped-or-near-black pixel, and the outermost two rings of
// the ROI, which are forced to 0 unconditionally. Grounded on
// _prepare_blend.
//
// The dilation pass runs single-threaded rather than row-parallel: the
// original relies on every writer storing the same constant (0.0) to
// make concurrent overlapping writes benign under C's memory model,
// but that's not a guarantee Go's memory model extends to unsynchronized
// writes from different goroutines. Classifying which pixels are
// clipped is embarrassingly parallel (pass one, below); stamping the
// rhombi from that classification is cheap enough to do sequentially.
func prepareBlend(cfa, rgb []float32, sensor SensorPattern, whites [3]float32, roi Roi) (mask, yold []float32) {
	w, h := roi.Width, roi.Height
	n := w * h
	mask = make([]float32, n)
	yold = make([]float32, n)
	clipped := make([]bool, n)

	parallelRange(h, func(row int) {
		for col := 0; col < w; col++ {
			k := row*w + col
			r := rgb[k*4+0]
			g := rgb[k*4+1]
			b := rgb[k*4+2]
			y := bt709Luminance(r, g, b)
			if y < 0 {
				y = 0
			}
			yold[k] = y

			if row > 1 && col > 1 && row < h-2 && col < w-2 {
				mask[k] = 1.0
				color := sensor.ColorAt(row, col, roi)
				if cfa[k] > whites[color] || y < CaptureYMin {
					clipped[k] = true
				}
			}
			// Border pixels keep mask[k] == 0 (the zero value).
		}
	})

	w1, w2 := w, 2*w
	for row := 2; row < h-2; row++ {
		for col := 2; col < w-2; col++ {
			k := row*w + col
			if clipped[k] {
				stampRhombus(mask, k, w1, w2)
			}
		}
	}
	return mask, yold
}

func bt709Luminance(r, g, b float32) float32 {
	return 0.212671*r + 0.715160*g + 0.072169*b
}

// stampRhombus zeroes the 21-cell rhombus neighbourhood of k, matching
// _prepare_blend's explicit list of assignments exactly.
func stampRhombus(mask []float32, k, w1, w2 int) {
	mask[k-w2-1] = 0
	mask[k-w2] = 0
	mask[k-w2+1] = 0
	mask[k-w1-2] = 0
	mask[k-w1-1] = 0
	mask[k-w1] = 0
	mask[k-w1+1] = 0
	mask[k-w1+2] = 0
	mask[k-2] = 0
	mask[k-1] = 0
	mask[k] = 0
	mask[k+1] = 0
	mask[k+2] = 0
	mask[k+w1-2] = 0
	mask[k+w1-1] = 0
	mask[k+w1] = 0
	mask[k+w1+1] = 0
	mask[k+w1+2] = 0
	mask[k+w2-1] = 0
	mask[k+w2] = 0
	mask[k+w2+1] = 0
}

// modifyBlend refines the blend mask in place using a 21-cell
// neighbourhood's coefficient of variation, and fills luminance with
// yold. Grounded on _modify_blend.
func modifyBlend(blend, yold, luminance []float32, width, height int, dthresh float32) {
	const tscale = 200.0
	thresholdSq := 0.6 * dthresh * dthresh
	offset := float32(-2.5) + tscale*thresholdSq/2.0

	parallelRange(height, func(irow int) {
		row := clampInt(irow, 2, height-3)
		for icol := 0; icol < width; icol++ {
			col := clampInt(icol, 2, width-3)
			k := irow*width + icol

			var sum, sumSq float32
			for y := row - 1; y < row+2; y++ {
				base := y * width
				for x := col - 2; x < col+3; x++ {
					v := yold[base+x]
					sum += v
					sumSq += v * v
				}
			}
			topBase := (row - 2) * width
			botBase := (row + 2) * width
			for _, dx := range [3]int{-1, 0, 1} {
				x := col + dx
				vt := yold[topBase+x]
				sum += vt
				sumSq += vt * vt
				vb := yold[botBase+x]
				sum += vb
				sumSq += vb * vb
			}

			sumOfSquares := sumSq - sum*sum/21.0
			if sumOfSquares < 0 {
				sumOfSquares = 0
			}
			stdDev := float32(math.Sqrt(float64(sumOfSquares / 21.0)))
			mean := sum / 21.0
			if mean < normMin {
				mean = normMin
			}
			cv := stdDev / float32(math.Sqrt(float64(mean)))
			t := float32(math.Log(1 + float64(cv)))
			weight := 1.0 / (1.0 + float32(math.Exp(float64(offset-tscale*t))))

			blend[k] = clip01(blend[k] * 1.01011 * (weight - 0.01))
			luminance[k] = yold[k]
		}
	})
}

// gaussianBlurPlane is a separable, edge-clamped, renormalized Gaussian
// blur over a bare float32 plane, the same approach pkg/stdimg's own
// convolution.go takes for *image.NRGBA, generalized to a scalar plane
// so it can smooth the blend mask (sigma=2).
func gaussianBlurPlane(src []float32, width, height int, sigma float32) []float32 {
	kernel, radius := gaussianKernel1D(sigma)
	tmp := make([]float32, width*height)
	dst := make([]float32, width*height)

	parallelRange(height, func(row int) {
		base := row * width
		for col := 0; col < width; col++ {
			var sum, wsum float32
			for k := -radius; k <= radius; k++ {
				ix := clampInt(col+k, 0, width-1)
				wt := kernel[k+radius]
				sum += src[base+ix] * wt
				wsum += wt
			}
			tmp[base+col] = sum / wsum
		}
	})

	parallelRange(width, func(col int) {
		for row := 0; row < height; row++ {
			var sum, wsum float32
			for k := -radius; k <= radius; k++ {
				iy := clampInt(row+k, 0, height-1)
				wt := kernel[k+radius]
				sum += tmp[iy*width+col] * wt
				wsum += wt
			}
			dst[row*width+col] = sum / wsum
		}
	})
	return dst
}

func gaussianKernel1D(sigma float32) ([]float32, int) {
	if sigma <= 0 {
		return []float32{1.0}, 0
	}
	radius := int(math.Ceil(float64(3 * sigma)))
	kernel := make([]float32, radius*2+1)
	var sum float32
	for i := -radius; i <= radius; i++ {
		v := float32(math.Exp(-0.5 * float64(i*i) / float64(sigma*sigma)))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel, radius
}

// reinforceBlendMask blends the raw mask with its Gaussian-smoothed
// version, weighted by a sigmoid of how much the smoothing changed
// each pixel — pixels where the blur pulled the value well below the
// raw mask (a sharp mask edge) keep their raw value, pixels the blur
// left mostly alone take the smoothed value.
func reinforceBlendMask(raw, blurred []float32, width, height int) []float32 {
	out := make([]float32, width*height)
	parallelRange(height, func(row int) {
		base := row * width
		for col := 0; col < width; col++ {
			i := base + col
			diff := raw[i] - blurred[i]
			w := 1.0 / (1.0 + float32(math.Exp(float64(5.0-10.0*diff))))
			out[i] = clip01(w*raw[i] + (1-w)*blurred[i])
		}
	})
	return out
}

// buildBlendMask runs the full blend-mask pipeline: prepare, modify,
// smooth, reinforce. luminance is filled as a side effect (by
// modifyBlend) for the caller to feed into the Richardson-Lucy
// iterator.
func buildBlendMask(cfa, rgb []float32, sensor SensorPattern, whites [3]float32, roi Roi, threshold float32) (blend, luminance []float32) {
	w, h := roi.Width, roi.Height
	mask, yold := prepareBlend(cfa, rgb, sensor, whites, roi)
	luminance = make([]float32, w*h)
	modifyBlend(mask, yold, luminance, w, h, threshold)
	blurred := gaussianBlurPlane(mask, w, h, 2.0)
	blend = reinforceBlendMask(mask, blurred, w, h)
	return blend, luminance
}
