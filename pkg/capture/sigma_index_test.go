package capture

import "testing"

func TestSigmaIndexBorderIsZero(t *testing.T) {
	roi := Roi{Width: 20, Height: 20, PWidth: 20, PHeight: 20}
	table := BuildSigmaIndexTable(roi, 0.5, 0.2, 0.1)
	for col := 0; col < roi.Width; col++ {
		if v := table.At(0, col); v != 0 {
			t.Errorf("top border At(0,%d) = %d, want 0 (taper zeroes the outermost ring)", col, v)
		}
		if v := table.At(roi.Height-1, col); v != 0 {
			t.Errorf("bottom border At(%d,%d) = %d, want 0", roi.Height-1, col, v)
		}
	}
}

func TestSigmaIndexWithinBounds(t *testing.T) {
	roi := Roi{Width: 32, Height: 24, PWidth: 32, PHeight: 24}
	table := BuildSigmaIndexTable(roi, 1.0, 0.5, 0.3)
	for row := 0; row < roi.Height; row++ {
		for col := 0; col < roi.Width; col++ {
			v := table.At(row, col)
			if v < 0 || v > 255 {
				t.Fatalf("At(%d,%d) = %d out of [0,255]", row, col, v)
			}
		}
	}
}

func TestSigmaIndexZeroRadiusIsZeroInterior(t *testing.T) {
	roi := Roi{Width: 20, Height: 20, PWidth: 20, PHeight: 20}
	table := BuildSigmaIndexTable(roi, 0, 0, 0)
	if v := table.At(10, 10); v != 0 {
		t.Fatalf("At(10,10) with radius=0,boost=0,center=0 = %d, want 0", v)
	}
}

func TestSigmaIndexUsesFullImageCentreNotRoiCentre(t *testing.T) {
	full := Roi{Width: 10, Height: 10, PWidth: 100, PHeight: 100}
	offsetROI := Roi{Width: 10, Height: 10, X: 45, Y: 45, PWidth: 100, PHeight: 100}

	tFull := BuildSigmaIndexTable(full, 1.0, 0.5, 0.2)
	tOffset := BuildSigmaIndexTable(offsetROI, 1.0, 0.5, 0.2)

	if tFull.At(5, 5) == tOffset.At(5, 5) {
		t.Fatalf("At(5,5) = %d for both ROIs, want different indices (radial distance is measured from the full-image centre)", tFull.At(5, 5))
	}
}
