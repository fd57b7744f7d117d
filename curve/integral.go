package curve

import (
	"fmt"

	"github.com/sgostarter/i/l"
)

// NewIntegral returns the running trapezoidal integral of upstream, anchored to 0 at the sample
// closest to x = 0 (the nearest domain end when 0 lies outside the domain).
func NewIntegral(upstream Source, logger l.Wrapper) (*DerivedCurve, error) {
	dc, err := newDerivedCurve(upstream, "integralCurve", integrate, logger)
	if err != nil {
		return nil, err
	}

	dc.reclassify = classifyIntegral

	dc.recomputeQuietly()

	return dc, nil
}

// ReferenceIndex is the sample an integral is anchored to.
func (dc *DerivedCurve) ReferenceIndex() int {
	return dc.closestIndex(0)
}

func integrate(dc *DerivedCurve) {
	ref := dc.closestIndex(0)
	n := dc.Len()

	dc.ys[ref] = 0

	dc.integrateTowards(ref, n-1, 1)
	dc.integrateTowards(ref, 0, -1)
}

// integrateTowards accumulates from ref to end, one step at a time. An undefined integrand sample
// takes the last defined value on the reference side. Runs of undefined samples longer than
// IntegralGapTolerance leave the integral undefined inside the run and contribute nothing.
func (dc *DerivedCurve) integrateTowards(ref, end, step int) {
	if ref == end {
		return
	}

	up := dc.upstream
	tolerance := dc.cfg.IntegralGapTolerance

	// integrand at ref; when undefined fall back to the first defined sample ahead
	held := up.Y(ref)
	if IsUndefined(held) {
		held = 0

		for j := ref; j != end+step; j += step {
			if !IsUndefined(up.Y(j)) {
				held = up.Y(j)

				break
			}
		}
	}

	acc := 0.0
	prevF := held

	for i := ref + step; i != end+step; {
		if !IsUndefined(up.Y(i)) {
			f := up.Y(i)
			acc += (prevF + f) / 2 * (up.X(i) - up.X(i-step))
			dc.setIntegral(i, acc)

			prevF = f
			i += step

			continue
		}

		runEnd := i
		for runEnd != end && IsUndefined(up.Y(runEnd+step)) {
			runEnd += step
		}

		runLen := (runEnd-i)*step + 1

		if runLen <= tolerance {
			for j := i; j != runEnd+step; j += step {
				acc += prevF * (up.X(j) - up.X(j-step))
				dc.setIntegral(j, acc)
			}
		} else {
			for j := i; j != runEnd+step; j += step {
				dc.ys[j] = Undefined
			}

			// resume from the first defined sample after the run with no contribution across it
			next := runEnd + step
			if next != end+step {
				prevF = up.Y(next)
				dc.setIntegral(next, acc)
				runEnd = next
			}
		}

		i = runEnd + step
	}
}

func (dc *DerivedCurve) setIntegral(i int, v float64) {
	if IsUndefined(v) {
		dc.invariantViolated(fmt.Errorf("%w: integral", ErrNonFinite), i)
	}

	dc.ys[i] = v
}

// classifyIntegral marks only the unbridged gaps Discontinuous. A steep but bounded integrand gives
// a steep integral, not a broken one, so the slope threshold does not apply; a jump in the
// integrand still shows up as a Cusp.
func classifyIntegral(dc *DerivedCurve) {
	classifyAngles(dc.xs, dc.ys, dc.classes, dc.cfg.CuspAngleThreshold)
}
