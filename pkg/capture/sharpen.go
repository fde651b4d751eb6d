package capture

import "github.com/pkg/errors"

// estimatorLowerLimit/estimatorUpperLimit are the fixed raw-value
// bounds EstimateRadius scans within; they are independent of the
// white-balance-derived clip threshold buildBlendMask uses, matching
// _calcRadiusBayer/_calcRadiusXtrans's call site, which always passes
// the literal pair (0.01f, 1.0f) regardless of the sensor's white
// level.
const (
	estimatorLowerLimit float32 = 0.01
	estimatorUpperLimit float32 = 1.0
)

// Sharpen runs the full capture-sharpening pipeline over one ROI: it
// estimates (or accepts) a blur radius, builds the blend mask, and
// (unless a debug flag short-circuits it) runs the Richardson-Lucy
// iterator and recomposes the result back into rgb in place.
//
// cfa is the single-plane raw CFA data for the ROI (length
// roi.Width*roi.Height); rgb is the interleaved RGBA demosaiced buffer
// for the same ROI (length roi.Width*roi.Height*4), mutated in place
// except on the error paths. cancelled may be nil; if non-nil it is
// polled once per Richardson-Lucy iteration. log may be nil to
// disable logging.
func Sharpen(cfa, rgb []float32, roi Roi, sensor SensorPattern, params Params, flags Flags, cancelled func() bool, log Logger) (Result, error) {
	if flags.IsLowQualityThumbnail != nil && flags.IsLowQualityThumbnail() {
		return Result{RadiusUsed: params.Radius}, nil
	}

	if roi.Width <= 0 || roi.Height <= 0 || roi.Width*roi.Height > maxScratchPixels {
		return Result{}, errors.Wrapf(ErrOutOfMemory, "capture: roi %dx%d exceeds scratch limit", roi.Width, roi.Height)
	}

	if params.Iterations == 0 && !flags.ShowVarianceMask && !flags.ShowSigmaMask {
		return Result{RadiusUsed: params.Radius}, nil
	}

	whites := computeWhites(params.WhiteBalance)

	radius := params.Radius
	needsEstimate := radius < 0.01 || params.AutoRadius
	result := Result{}
	if needsEstimate {
		estimated := EstimateRadius(cfa, roi, sensor, estimatorLowerLimit, estimatorUpperLimit)
		if log != nil {
			log.Debug("capture", "estimated radius", map[string]any{"radius": estimated})
		}
		if params.Pipeline == PipelineFull {
			diff := estimated - params.Radius
			if diff < 0 {
				diff = -diff
			}
			if diff > 0.005 && estimated > 0.1 && estimated < 1.0 {
				wb := estimated
				result.AutoRadiusWriteBack = &wb
			}
		}
		radius = estimated
	}
	result.RadiusUsed = radius

	blend, luminance := buildBlendMask(cfa, rgb, sensor, whites, roi, params.Threshold)

	if flags.ShowVarianceMask {
		writeAlphaChannel(rgb, blend, roi.Width, roi.Height)
		return result, nil
	}

	idx := BuildSigmaIndexTable(roi, radius, params.Boost, params.Center)

	if flags.ShowSigmaMask {
		writeSigmaAlphaChannel(rgb, idx, roi.Width, roi.Height)
		return result, nil
	}

	if params.Iterations == 0 {
		return result, nil
	}

	kernels := GlobalKernelTable()
	sharpened, wasCancelled := richardsonLucy(luminance, blend, kernels, idx, roi.Width, roi.Height, params.Iterations, cancelled)
	if wasCancelled {
		if log != nil {
			log.Warn("capture", "sharpen cancelled mid-iteration", nil)
		}
		return Result{}, ErrCancelled
	}

	out := make([]float32, len(rgb))
	recompose(rgb, out, sharpened, luminance, blend, roi.Width, roi.Height)
	copy(rgb, out)

	return result, nil
}

func computeWhites(wb *[3]float32) [3]float32 {
	if wb == nil {
		return [3]float32{CaptureCFAClip, CaptureCFAClip, CaptureCFAClip}
	}
	return [3]float32{
		CaptureCFAClip * wb[0],
		CaptureCFAClip * wb[1],
		CaptureCFAClip * wb[2],
	}
}

