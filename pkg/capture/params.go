package capture

// Roi describes the sub-rectangle of the full sensor image currently
// being processed: Width/Height is the size of the CFA/RGB buffers
// passed to Sharpen, X/Y is the top-left offset of that rectangle
// within the full image, and PWidth/PHeight is the full image's size
// (needed by the sigma index map's radial falloff, which is centred on
// the full image, not the ROI).
type Roi struct {
	Width, Height   int
	X, Y            int
	PWidth, PHeight int
}

// PipelineKind tells Sharpen which pipeline context it is running in.
// Only PipelineFull ever writes an auto-computed radius back to the
// caller; thumbnail and export pipelines compute the estimate for
// their own use but never mutate caller state.
type PipelineKind int

const (
	PipelineFull PipelineKind = iota
	PipelineThumbnail
	PipelineExport
)

// Params holds the tunable knobs of one Sharpen call.
type Params struct {
	// Radius is the base blur radius. A value below 0.01, or
	// AutoRadius set, triggers CFA-based auto-estimation.
	Radius float32
	// Iterations is the number of Richardson-Lucy iterations; 0
	// disables sharpening (but debug mask flags still run).
	Iterations uint32
	// Boost scales how strongly the sigma grows away from Center.
	Boost float32
	// Center biases the radial falloff's midpoint, in [-1,1]-ish units
	// of the normalised radial distance.
	Center float32
	// Threshold feeds modifyBlend's coefficient-of-variation gate.
	Threshold float32
	// WhiteBalance, if non-nil, per-channel-scales the clip threshold
	// (whites[c] = CaptureCFAClip * WhiteBalance[c]); nil means an
	// unity white balance.
	WhiteBalance *[3]float32
	// AutoRadius forces radius re-estimation even when Radius is
	// already a plausible value.
	AutoRadius bool
	// Pipeline selects which pipeline context this call runs in; only
	// PipelineFull ever produces a non-nil Result.AutoRadiusWriteBack.
	Pipeline PipelineKind
}

// Flags carries the debug/fast-path switches that are independent of
// the numeric Params.
type Flags struct {
	// ShowVarianceMask, if true, writes the blend mask into the RGB
	// buffer's alpha channel and returns before building the sigma
	// index table or running the iterator.
	ShowVarianceMask bool
	// ShowSigmaMask, if true, writes the sigma index (normalised to
	// [0,1]) into the alpha channel and returns before running the
	// iterator. Checked after ShowVarianceMask.
	ShowSigmaMask bool
	// IsLowQualityThumbnail, if non-nil and returns true, makes Sharpen
	// return immediately with no mutation at all, before any
	// allocation or radius estimation.
	IsLowQualityThumbnail func() bool
}

// Result reports what Sharpen actually did.
type Result struct {
	// RadiusUsed is the blur radius this call settled on (whether
	// passed in or auto-estimated).
	RadiusUsed float32
	// AutoRadiusWriteBack is non-nil only when Params.Pipeline ==
	// PipelineFull and a newly estimated radius both lies in (0.1,1.0)
	// and differs from the caller's previous radius by more than 0.005.
	// The caller should persist this value into its own parameter
	// store, mirroring how a GUI's radius slider latches onto an
	// auto-estimated value once it settles.
	AutoRadiusWriteBack *float32
}
