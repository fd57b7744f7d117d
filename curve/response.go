package curve

import (
	"fmt"
	"math"
)

// dragAnchor remembers the previous freeform sample within one gesture.
type dragAnchor struct {
	index int
	y     float64
	valid bool
}

func (a *dragAnchor) reset() {
	a.valid = false
}

func finiteOr0(y float64) float64 {
	if IsUndefined(y) {
		return 0
	}

	return y
}

// respond deforms ys, which holds the current values on entry, for a drag landing on sample
// center. It returns the inclusive range of samples it touched.
// nolint: cyclop
func respond(mode Mode, xs, ys []float64, center int, dragY, width float64, cfg *Config,
	anchor *dragAnchor) (lo, hi int, err error) {
	switch m := mode.(type) {
	case Hill:
		lo, hi = respondLocal(xs, ys, center, dragY, width, func(d float64) float64 {
			return hillShape(d, width)
		})
	case Triangle:
		half := width / 2
		lo, hi = respondLocal(xs, ys, center, dragY, half, func(d float64) float64 {
			return triangleShape(d, half)
		})
	case Pedestal:
		factor := m.SlopeFactor
		if factor < 1 {
			factor = cfg.PedestalSlopeFactor
		}

		half := width / 2
		lo, hi = respondLocal(xs, ys, center, dragY, half+half/factor, func(d float64) float64 {
			return pedestalShape(d, half, factor)
		})
	case Parabola:
		lo, hi = respondLocal(xs, ys, center, dragY, width, func(d float64) float64 {
			return parabolaShape(d, width)
		})
	case Sinusoid:
		cycles := m.Cycles
		if cycles <= 0 {
			cycles = cfg.SinusoidCycles
		}

		lo, hi = respondLocal(xs, ys, center, dragY, width, func(d float64) float64 {
			return sinusoidShape(d, width, cycles)
		})
	case Freeform:
		lo, hi = respondFreeform(xs, ys, center, dragY, anchor)
	case Tilt:
		lo, hi = respondTilt(xs, ys, center, dragY, (cfg.XMin+cfg.XMax)/2, cfg.Dx())
	case Shift:
		lo, hi = respondShift(ys, center, dragY)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownMode, mode)
	}

	return
}

// respondLocal raises the samples within reach of center by amplitude*shape(d), where the
// amplitude brings the center sample exactly onto dragY.
func respondLocal(xs, ys []float64, center int, dragY, reach float64, shape func(d float64) float64) (lo, hi int) {
	lo, hi = center, center

	for lo > 0 && xs[center]-xs[lo-1] <= reach {
		lo--
	}

	for hi < len(xs)-1 && xs[hi+1]-xs[center] <= reach {
		hi++
	}

	amplitude := dragY - finiteOr0(ys[center])

	for i := lo; i <= hi; i++ {
		ys[i] = finiteOr0(ys[i]) + amplitude*shape(xs[i]-xs[center])
	}

	ys[center] = dragY

	return
}

// hillShape is a gaussian (sigma = width/2) under a (1-u^2)^2 window, so both the value and the
// slope reach zero at |d| = width.
func hillShape(d, width float64) float64 {
	u := d / width
	if math.Abs(u) >= 1 {
		return 0
	}

	sigma := width / 2
	w := 1 - u*u

	return math.Exp(-d*d/(2*sigma*sigma)) * w * w
}

func triangleShape(d, half float64) float64 {
	return math.Max(0, 1-math.Abs(d)/half)
}

func pedestalShape(d, half, slopeFactor float64) float64 {
	ad := math.Abs(d)
	edge := half / slopeFactor

	switch {
	case ad <= half:
		return 1
	case ad >= half+edge:
		return 0
	}

	t := (ad - half) / edge

	return 1 - t*t*(3-2*t)
}

// parabolaShape joins two quadratics at |d| = width/2 so the slope is continuous everywhere and
// zero at |d| = width.
func parabolaShape(d, width float64) float64 {
	u := math.Abs(d) / width

	switch {
	case u <= 0.5:
		return 1 - 2*u*u
	case u < 1:
		return 2 * (1 - u) * (1 - u)
	}

	return 0
}

// sinusoidShape is 1 at the center and 0 at |d| = width.
func sinusoidShape(d, width float64, cycles int) float64 {
	if math.Abs(d) >= width {
		return 0
	}

	return math.Cos(math.Pi * (float64(cycles) + 0.5) * d / width)
}

func respondFreeform(xs, ys []float64, center int, dragY float64, anchor *dragAnchor) (lo, hi int) {
	lo, hi = center, center

	if anchor.valid && anchor.index != center {
		a, ya := anchor.index, anchor.y

		step := 1
		if center < a {
			step = -1
		}

		for i := a + step; i != center; i += step {
			t := (xs[i] - xs[a]) / (xs[center] - xs[a])
			ys[i] = ya + (dragY-ya)*t
		}

		if a < lo {
			lo = a
		} else {
			hi = a
		}
	}

	ys[center] = dragY

	anchor.index = center
	anchor.y = dragY
	anchor.valid = true

	return
}

// respondTilt rotates the curve about x = pivot so the sample at center lands on dragY. A drag on
// the pivot itself does not define a rotation and leaves the curve unchanged.
func respondTilt(xs, ys []float64, center int, dragY, pivot, dx float64) (lo, hi int) {
	run := xs[center] - pivot
	if math.Abs(run) < dx/2 {
		return center, center
	}

	slope := (dragY - finiteOr0(ys[center])) / run

	for i := range ys {
		ys[i] = finiteOr0(ys[i]) + slope*(xs[i]-pivot)
	}

	ys[center] = dragY

	return 0, len(ys) - 1
}

func respondShift(ys []float64, center int, dragY float64) (lo, hi int) {
	delta := dragY - finiteOr0(ys[center])

	for i := range ys {
		ys[i] = finiteOr0(ys[i]) + delta
	}

	ys[center] = dragY

	return 0, len(ys) - 1
}
