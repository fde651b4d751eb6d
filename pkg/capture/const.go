package capture

const (
	// CaptureGaussFraction is the sigma step between adjacent entries of
	// the kernel table: kernel index i corresponds to sigma = i *
	// CaptureGaussFraction.
	CaptureGaussFraction float32 = 0.01

	// CaptureYMin floors luminance (and luminance-derived divisors) to
	// avoid division blow-up in near-black pixels.
	CaptureYMin float32 = 0.001

	// CaptureCFAClip is the fraction of the white level above which a
	// raw sample is treated as clipped.
	CaptureCFAClip float32 = 0.9

	// KernelAlign is the per-kernel float stride in the flattened kernel
	// table, matching the original's 32-float-aligned kernel rows.
	KernelAlign = 32

	// kernelCount is the number of precomputed kernels, one per
	// quantised sigma index (sigma = index * CaptureGaussFraction, index
	// in [0,255]).
	kernelCount = 256

	// kernelSupport is the squared-radius cutoff of the 9x9 kernel
	// footprint (4.5^2): any (dr,dc) pair with dr^2+dc^2 above this is
	// outside the kernel regardless of sigma.
	kernelSupport float32 = 20.25

	// rawEps is the minimum raw sample value treated as non-zero signal
	// by the radius estimators.
	rawEps float32 = 0.005

	// normMin floors the local mean luminance used by modifyBlend's
	// coefficient-of-variation computation.
	normMin float32 = 1e-12

	// maxScratchPixels bounds roi.Width*roi.Height for the scratch
	// buffers Sharpen allocates; beyond this Sharpen reports
	// ErrOutOfMemory rather than attempting the allocation.
	maxScratchPixels = 1 << 28
)
