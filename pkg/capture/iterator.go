package capture

// convolve9x9 evaluates the 9x9 symmetric Gaussian kernel at (row,col)
// against buf. Away from the border it uses the fast path: each of the
// kernel's (at most) 13 distinct nonzero coefficients is multiplied by
// the sum of the (up to 8) buffer samples at that offset, mirroring the
// original's precomputed-offset-sum convolution. Within 4 pixels of any
// edge it falls back to a slow path that walks the full 9x9 footprint
// with implicit zero-padding and no renormalization, exactly as the
// original does at the border.
func convolve9x9(buf []float32, idx, w1, height, row, col int, kern []float32) float32 {
	if col >= 4 && row >= 4 && col < w1-4 && row < height-4 {
		w2, w3, w4 := 2*w1, 3*w1, 4*w1
		return kern[10+4]*(buf[idx-w4-2]+buf[idx-w4+2]+buf[idx-w2-4]+buf[idx-w2+4]+buf[idx+w2-4]+buf[idx+w2+4]+buf[idx+w4-2]+buf[idx+w4+2]) +
			kern[5+4]*(buf[idx-w4-1]+buf[idx-w4+1]+buf[idx-w1-4]+buf[idx-w1+4]+buf[idx+w1-4]+buf[idx+w1+4]+buf[idx+w4-1]+buf[idx+w4+1]) +
			kern[4]*(buf[idx-w4]+buf[idx-4]+buf[idx+4]+buf[idx+w4]) +
			kern[15+3]*(buf[idx-w3-3]+buf[idx-w3+3]+buf[idx+w3-3]+buf[idx+w3+3]) +
			kern[10+3]*(buf[idx-w3-2]+buf[idx-w3+2]+buf[idx-w2-3]+buf[idx-w2+3]+buf[idx+w2-3]+buf[idx+w2+3]+buf[idx+w3-2]+buf[idx+w3+2]) +
			kern[5+3]*(buf[idx-w3-1]+buf[idx-w3+1]+buf[idx-w1-3]+buf[idx-w1+3]+buf[idx+w1-3]+buf[idx+w1+3]+buf[idx+w3-1]+buf[idx+w3+1]) +
			kern[3]*(buf[idx-w3]+buf[idx-3]+buf[idx+3]+buf[idx+w3]) +
			kern[10+2]*(buf[idx-w2-2]+buf[idx-w2+2]+buf[idx+w2-2]+buf[idx+w2+2]) +
			kern[5+2]*(buf[idx-w2-1]+buf[idx-w2+1]+buf[idx-w1-2]+buf[idx-w1+2]+buf[idx+w1-2]+buf[idx+w1+2]+buf[idx+w2-1]+buf[idx+w2+1]) +
			kern[2]*(buf[idx-w2]+buf[idx-2]+buf[idx+2]+buf[idx+w2]) +
			kern[5+1]*(buf[idx-w1-1]+buf[idx-w1+1]+buf[idx+w1-1]+buf[idx+w1+1]) +
			kern[1]*(buf[idx-w1]+buf[idx-1]+buf[idx+1]+buf[idx+w1]) +
			kern[0]*buf[idx]
	}

	var val float32
	for ir := -4; ir <= 4; ir++ {
		irow := row + ir
		if irow < 0 || irow >= height {
			continue
		}
		rowBase := irow * w1
		for ic := -4; ic <= 4; ic++ {
			icol := col + ic
			if icol < 0 || icol >= w1 {
				continue
			}
			val += kern[5*absInt(ir)+absInt(ic)] * buf[rowBase+icol]
		}
	}
	return val
}

// blurDiv computes out[i] = luminance[i] / max(conv(in)[i], CaptureYMin)
// for every pixel with blend[i] > 0, leaving out untouched elsewhere.
// Grounded on _blur_div.
func blurDiv(in, out, luminance, blend []float32, kernels *KernelTable, idx *SigmaIndexTable, w1, height int) {
	parallelRange(height, func(row int) {
		base := row * w1
		for col := 0; col < w1; col++ {
			i := base + col
			if blend[i] <= 0 {
				continue
			}
			kern := kernels.At(idx.idx[i])
			conv := convolve9x9(in, i, w1, height, row, col, kern)
			out[i] = luminance[i] / fmax32(conv, CaptureYMin)
		}
	})
}

// blurMul computes out[i] *= conv(in)[i] for every pixel with
// blend[i] > 0. Grounded on _blur_mul.
func blurMul(in, out, blend []float32, kernels *KernelTable, idx *SigmaIndexTable, w1, height int) {
	parallelRange(height, func(row int) {
		base := row * w1
		for col := 0; col < w1; col++ {
			i := base + col
			if blend[i] <= 0 {
				continue
			}
			kern := kernels.At(idx.idx[i])
			out[i] *= convolve9x9(in, i, w1, height, row, col, kern)
		}
	})
}

// richardsonLucy runs the deconvolution loop: a starts as a copy of
// luminance and is repeatedly refined by alternating blurDiv/blurMul,
// the single cancellation point at the top of each iteration. On
// cancellation it returns the partially-updated buffer and true; the
// caller must discard that buffer rather than recompose with it.
func richardsonLucy(luminance, blend []float32, kernels *KernelTable, idx *SigmaIndexTable, w1, height int, iterations uint32, cancelled func() bool) (a []float32, wasCancelled bool) {
	a = make([]float32, w1*height)
	copy(a, luminance)
	b := make([]float32, w1*height)

	for iter := uint32(0); iter < iterations; iter++ {
		if cancelled != nil && cancelled() {
			return a, true
		}
		blurDiv(a, b, luminance, blend, kernels, idx, w1, height)
		blurMul(b, a, blend, kernels, idx, w1, height)
	}
	return a, false
}
