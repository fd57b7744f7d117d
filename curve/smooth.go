package curve

import (
	"fmt"
	"math"

	"github.com/patrickmn/go-cache"
)

var kernels = cache.New(cache.NoExpiration, 0)

// gaussianKernel returns the unnormalized weights exp(-(k*dx)^2 / 2sigma^2) for k in [0, radius].
// Weights are symmetric, so only one side is kept.
func gaussianKernel(sigma, dx, cutoff float64) []float64 {
	key := fmt.Sprintf("%g:%g:%g", sigma, dx, cutoff)

	if v, ok := kernels.Get(key); ok {
		if ws, ok := v.([]float64); ok {
			return ws
		}
	}

	radius := int(math.Ceil(cutoff*sigma/dx - 1e-9))
	ws := make([]float64, radius+1)

	for k := range ws {
		d := float64(k) * dx
		ws[k] = math.Exp(-d * d / (2 * sigma * sigma))
	}

	kernels.Set(key, ws, cache.NoExpiration)

	return ws
}

// smoothValues writes the kernel-weighted average of src into dst. Weights are renormalized over
// the in-domain, defined neighbours, so edges use a truncated kernel instead of zero padding.
func smoothValues(src, dst, kernel []float64) {
	n := len(src)
	radius := len(kernel) - 1

	for i := 0; i < n; i++ {
		if IsUndefined(src[i]) {
			dst[i] = src[i]

			continue
		}

		lo, hi := i-radius, i+radius
		if lo < 0 {
			lo = 0
		}

		if hi > n-1 {
			hi = n - 1
		}

		var sum, weight float64

		for j := lo; j <= hi; j++ {
			if IsUndefined(src[j]) {
				continue
			}

			k := j - i
			if k < 0 {
				k = -k
			}

			sum += kernel[k] * src[j]
			weight += kernel[k]
		}

		dst[i] = sum / weight
	}
}
