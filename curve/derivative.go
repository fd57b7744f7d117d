package curve

import (
	"fmt"

	"github.com/sgostarter/i/l"
)

// NewDerivative returns the finite-difference derivative of upstream, already computed.
func NewDerivative(upstream Source, logger l.Wrapper) (*DerivedCurve, error) {
	dc, err := newDerivedCurve(upstream, "derivativeCurve", differentiate, logger)
	if err != nil {
		return nil, err
	}

	dc.recomputeQuietly()

	return dc, nil
}

// NewSecondDerivative differentiates upstream twice through a private intermediate derivative.
func NewSecondDerivative(upstream Source, logger l.Wrapper) (*DerivedCurve, error) {
	inner, err := newDerivedCurve(upstream, "derivativeCurve", differentiate, logger)
	if err != nil {
		return nil, err
	}

	dc, err := newDerivedCurve(inner, "secondDerivativeCurve", differentiate, logger)
	if err != nil {
		return nil, err
	}

	dc.inner = inner
	dc.recomputeQuietly()

	return dc, nil
}

func breaksDerivative(c Classification) bool {
	return c == ClassificationDiscontinuous
}

// differentiate uses centered differences inside the domain and second-order one-sided
// differences at the two ends. A sample is undefined when any upstream sample it uses is
// Discontinuous or the upstream sample itself is a Cusp.
func differentiate(dc *DerivedCurve) {
	up := dc.upstream
	n := up.Len()

	for i := 0; i < n; i++ {
		var (
			used [3]int
			d    float64
		)

		switch {
		case i == 0:
			used = [3]int{0, 1, 2}
			d = (-3*up.Y(0) + 4*up.Y(1) - up.Y(2)) / (up.X(2) - up.X(0))
		case i == n-1:
			used = [3]int{n - 3, n - 2, n - 1}
			d = (3*up.Y(n-1) - 4*up.Y(n-2) + up.Y(n-3)) / (up.X(n-1) - up.X(n-3))
		default:
			used = [3]int{i - 1, i, i + 1}
			d = (up.Y(i+1) - up.Y(i-1)) / (up.X(i+1) - up.X(i-1))
		}

		undefined := up.ClassificationAt(i) == ClassificationCusp

		for _, j := range used {
			if breaksDerivative(up.ClassificationAt(j)) || IsUndefined(up.Y(j)) {
				undefined = true

				break
			}
		}

		if undefined {
			dc.ys[i] = Undefined

			continue
		}

		if IsUndefined(d) {
			dc.invariantViolated(fmt.Errorf("%w: derivative", ErrNonFinite), i)
			dc.ys[i] = Undefined

			continue
		}

		dc.ys[i] = d
	}
}
