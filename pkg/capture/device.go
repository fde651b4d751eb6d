package capture

import "github.com/pkg/errors"

// DeviceBackend mirrors the GPU-offload contract: one method per named
// kernel a real OpenCL/CUDA backend would implement to run this
// pipeline on-device. No implementation ships with this package — the
// contract exists so a future backend has a concrete interface to
// satisfy. Sharpen itself never calls a DeviceBackend; it is exposed
// for callers that want to attempt device offload ahead of (or instead
// of) the CPU path implemented here.
type DeviceBackend interface {
	PrefillClipMask(width, height int) error
	PrepareBlend(cfa, rgb []float32, sensor SensorPattern, whites [3]float32, roi Roi) error
	ModifyBlend(threshold float32) error
	GaussianFastBlur(sigma float32) error
	FinalBlend() error
	Gaussian9x9Div(kernels *KernelTable, idx *SigmaIndexTable) error
	Gaussian9x9Mul(kernels *KernelTable, idx *SigmaIndexTable) error
	CaptureResult(rgbOut []float32) error
}

// NopDevice implements DeviceBackend by failing every call with
// ErrDeviceFailure. It lets a caller wire a DeviceBackend-shaped field
// through its configuration without a real backend yet, and get a
// clean, typed error back instead of a nil-interface panic.
type NopDevice struct{}

func (NopDevice) PrefillClipMask(int, int) error {
	return errors.Wrap(ErrDeviceFailure, "no device backend configured")
}

func (NopDevice) PrepareBlend([]float32, []float32, SensorPattern, [3]float32, Roi) error {
	return errors.Wrap(ErrDeviceFailure, "no device backend configured")
}

func (NopDevice) ModifyBlend(float32) error {
	return errors.Wrap(ErrDeviceFailure, "no device backend configured")
}

func (NopDevice) GaussianFastBlur(float32) error {
	return errors.Wrap(ErrDeviceFailure, "no device backend configured")
}

func (NopDevice) FinalBlend() error {
	return errors.Wrap(ErrDeviceFailure, "no device backend configured")
}

func (NopDevice) Gaussian9x9Div(*KernelTable, *SigmaIndexTable) error {
	return errors.Wrap(ErrDeviceFailure, "no device backend configured")
}

func (NopDevice) Gaussian9x9Mul(*KernelTable, *SigmaIndexTable) error {
	return errors.Wrap(ErrDeviceFailure, "no device backend configured")
}

func (NopDevice) CaptureResult([]float32) error {
	return errors.Wrap(ErrDeviceFailure, "no device backend configured")
}
