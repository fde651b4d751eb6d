// Package capture implements the capture-sharpening stage of a raw
// photo demosaicing pipeline: an iterative Richardson-Lucy
// deconvolution that runs on the demosaiced luminance channel, guided
// by a per-pixel blend mask and a CFA-derived blur radius, so that
// sharpening strength tapers off near clipped highlights and noisy
// shadows instead of being applied uniformly.
//
// The entry point is Sharpen. Everything else in this package is an
// internal stage it composes, in dependency order: the kernel table,
// the radius estimator, the sigma index map, the blend-mask builder,
// the Richardson-Lucy iterator, and the final recomposer.
package capture
