package capture

// recompose writes the final RGB output: for every pixel it derives a
// luminance ratio between the deconvolved plane and the original
// luminance, applies that ratio to each of the raw RGB channels, and
// blends the result against the untouched original using blend[k] as
// the interpolation weight (1 keeps the sharpened colour, 0 discards
// it). rgb is consumed as the original (pre-sharpen) plane and out is
// filled with the recomposed result; they may not alias.
func recompose(rgb, out, sharpened, luminance, blend []float32, width, height int) {
	parallelRange(height, func(row int) {
		base := row * width
		for col := 0; col < width; col++ {
			k := base + col
			o := k * 4
			ratio := sharpened[k] / fmax32(luminance[k], CaptureYMin)

			r := rgb[o+0] * ratio
			g := rgb[o+1] * ratio
			b := rgb[o+2] * ratio

			t := blend[k]
			out[o+0] = interpolatef(t, r, rgb[o+0])
			out[o+1] = interpolatef(t, g, rgb[o+1])
			out[o+2] = interpolatef(t, b, rgb[o+2])
			out[o+3] = rgb[o+3]
		}
	})
}

// writeAlphaChannel overwrites rgb's alpha channel with mask, leaving
// the colour channels untouched. Used for the ShowVarianceMask debug
// path, where the caller wants to see the blend mask itself rather
// than a sharpened image.
func writeAlphaChannel(rgb, mask []float32, width, height int) {
	parallelRange(height, func(row int) {
		base := row * width
		for col := 0; col < width; col++ {
			k := base + col
			rgb[k*4+3] = mask[k]
		}
	})
}

// writeSigmaAlphaChannel overwrites rgb's alpha channel with the
// per-pixel quantised sigma index, normalised to [0,1] by its
// uint8 range. Used for the ShowSigmaMask debug path.
func writeSigmaAlphaChannel(rgb []float32, idx *SigmaIndexTable, width, height int) {
	parallelRange(height, func(row int) {
		base := row * width
		for col := 0; col < width; col++ {
			k := base + col
			rgb[k*4+3] = float32(idx.idx[k]) / 255.0
		}
	})
}
