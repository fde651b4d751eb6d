package capture

import "testing"

func TestKernelIdentityAtZeroSigma(t *testing.T) {
	kt := BuildKernelTable()
	kern := kt.At(0)
	if kern[0] != 1.0 {
		t.Fatalf("identity kernel centre tap = %v, want 1.0", kern[0])
	}
	for i := 1; i < KernelAlign; i++ {
		if kern[i] != 0 {
			t.Fatalf("identity kernel tap %d = %v, want 0", i, kern[i])
		}
	}
}

func TestKernelSumsToOne(t *testing.T) {
	kt := BuildKernelTable()
	for _, s := range []uint8{1, 10, 50, 128, 255} {
		kern := kt.At(s)
		// Reconstruct the full 9x9 sum from the stored 5x5 quadrant,
		// accounting for the symmetric reflection across both axes.
		var sum float32
		for k := 0; k < 5; k++ {
			for j := 0; j < 5; j++ {
				v := kern[5*k+j]
				mult := 4
				if k == 0 {
					mult /= 2
				}
				if j == 0 {
					mult /= 2
				}
				sum += v * float32(mult)
			}
		}
		if !floatsNear(sum, 1.0, 1e-3) {
			t.Fatalf("kernel %d sums to %v, want ~1.0", s, sum)
		}
	}
}

func TestGlobalKernelTableIsSingleton(t *testing.T) {
	a := GlobalKernelTable()
	b := GlobalKernelTable()
	if a != b {
		t.Fatal("GlobalKernelTable returned distinct instances")
	}
}
