package capture

import (
	"math"
	"sync"
)

// KernelTable holds kernelCount precomputed 9x9 Gaussian kernels, one
// per quantised sigma index. Each kernel occupies a KernelAlign-float
// slot; within a slot the 5x5 upper-left quadrant of the (symmetric)
// 9x9 kernel is stored flattened as coeffs[5*k+j] for k,j in [0,4], the
// same layout _calc_9x9_gauss_coeffs uses so the convolution in
// iterator.go can index it directly. Only 15 of those 25 slots are
// distinct (kernel[k][j] == kernel[j][k]), and at most 13 are ever
// nonzero — (3,4) and (4,4) always fall outside the 9x9 support
// (kernelSupport = 4.5^2) regardless of sigma.
type KernelTable struct {
	coeffs []float32
}

// BuildKernelTable precomputes every kernel. Most callers should use
// the package-level GlobalKernelTable instead of building their own.
func BuildKernelTable() *KernelTable {
	kt := &KernelTable{coeffs: make([]float32, kernelCount*KernelAlign)}
	for s := 0; s < kernelCount; s++ {
		kt.fill(s, float32(s)*CaptureGaussFraction)
	}
	return kt
}

func (kt *KernelTable) fill(index int, sigma float32) {
	base := index * KernelAlign
	if sigma <= 0 {
		// Identity kernel: all weight on the centre tap.
		kt.coeffs[base] = 1.0
		return
	}
	var kernel [9][9]float32
	temp := -2 * sigma * sigma
	var sum float32
	for k := -4; k <= 4; k++ {
		for j := -4; j <= 4; j++ {
			rad := float32(k*k + j*j)
			if rad > kernelSupport {
				continue
			}
			v := float32(math.Exp(float64(rad / temp)))
			kernel[k+4][j+4] = v
			sum += v
		}
	}
	for k := 0; k < 5; k++ {
		for j := 0; j < 5; j++ {
			kt.coeffs[base+5*k+j] = kernel[k+4][j+4] / sum
		}
	}
}

// At returns the KernelAlign-float slot for sigma index s.
func (kt *KernelTable) At(s uint8) []float32 {
	base := int(s) * KernelAlign
	return kt.coeffs[base : base+KernelAlign]
}

var (
	globalKernelOnce sync.Once
	globalKernelTbl  *KernelTable
)

// GlobalKernelTable returns the process-lifetime kernel table, building
// it on first use. It is read-only after construction, so sharing it
// across concurrent Sharpen calls is safe.
func GlobalKernelTable() *KernelTable {
	globalKernelOnce.Do(func() {
		globalKernelTbl = BuildKernelTable()
	})
	return globalKernelTbl
}
