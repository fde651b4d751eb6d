package capture

import "math"

// SigmaIndexTable maps every pixel of an ROI to a kernel-table index
// (0..255), selected from its radial distance to the full image
// centre, the Boost/Center bias, and a border taper that zeroes blur
// at the outermost ring and ramps to full strength nine pixels in.
type SigmaIndexTable struct {
	Width, Height int
	idx           []uint8
}

// At returns the kernel index at ROI-local coordinates (row, col).
func (t *SigmaIndexTable) At(row, col int) uint8 {
	return t.idx[row*t.Width+col]
}

// BuildSigmaIndexTable computes the per-pixel sigma index for the
// given ROI. radius/boost/center come straight from Params.
func BuildSigmaIndexTable(roi Roi, radius, boost, center float32) *SigmaIndexTable {
	w, h := roi.Width, roi.Height
	table := &SigmaIndexTable{Width: w, Height: h, idx: make([]uint8, w*h)}

	rw := float32(roi.PWidth) / 2
	rh := float32(roi.PHeight) / 2
	mdim := fmin32(rw, rh)
	if mdim <= 0 {
		mdim = 1
	}
	cboost := 1 + 8*center*center

	parallelRange(h, func(row int) {
		frow := float32(row+roi.Y) - rh
		for col := 0; col < w; col++ {
			fcol := float32(col+roi.X) - rw
			d := float32(math.Sqrt(float64(frow*frow+fcol*fcol))) / mdim

			off := d - 0.5 - center
			if off < 0 {
				off = 0
			}
			corr := cboost * boost * off * off

			taper := minInt(8, minInt(minInt(h-row-1, row), minInt(w-col-1, col)))
			sigma := (radius + corr) * 0.125 * float32(taper)

			table.idx[row*w+col] = sigmaToIndex(sigma)
		}
	})
	return table
}

func sigmaToIndex(sigma float32) uint8 {
	v := int(math.Round(float64(sigma / CaptureGaussFraction)))
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
