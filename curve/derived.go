package curve

import (
	"fmt"

	"github.com/sgostarter/i/l"
)

type computeFn func(dc *DerivedCurve)

// DerivedCurve holds values that are a pure function of an upstream curve. Recompute pulls the
// upstream values; it never writes to the upstream curve.
type DerivedCurve struct {
	*Curve

	upstream Source
	compute  computeFn
	// reclassify defaults to the slope and angle rules of Curve.classify.
	reclassify func(dc *DerivedCurve)

	// inner is the intermediate derivative owned by a second derivative.
	inner *DerivedCurve
}

func newDerivedCurve(upstream Source, cls string, compute computeFn, logger l.Wrapper) (*DerivedCurve, error) {
	if upstream == nil {
		return nil, fmt.Errorf("%w: no upstream", ErrMismatchedCurves)
	}

	cfg := upstream.Config()

	c, err := newCurve(&cfg, nil, cls, logger)
	if err != nil {
		return nil, err
	}

	if c.Len() != upstream.Len() {
		return nil, fmt.Errorf("%w: %d points, upstream has %d", ErrMismatchedCurves, c.Len(), upstream.Len())
	}

	for i := range c.xs {
		c.xs[i] = upstream.X(i)
	}

	return &DerivedCurve{
		Curve:    c,
		upstream: upstream,
		compute:  compute,
	}, nil
}

func (dc *DerivedCurve) Upstream() Source {
	return dc.upstream
}

// Recompute rebuilds every sample from the current upstream values and fires one notification.
func (dc *DerivedCurve) Recompute() error {
	if dc.upstream.Len() != dc.Len() {
		err := fmt.Errorf("%w: %d points, upstream has %d", ErrMismatchedCurves, dc.Len(), dc.upstream.Len())
		dc.logger.WithFields(l.ErrorField(err)).Error("recompute")

		return err
	}

	if dc.inner != nil {
		if err := dc.inner.Recompute(); err != nil {
			return err
		}
	}

	dc.compute(dc)
	dc.reclassifyAll()
	dc.notify()

	return nil
}

func (dc *DerivedCurve) recomputeQuietly() {
	if dc.inner != nil {
		dc.inner.recomputeQuietly()
	}

	dc.compute(dc)
	dc.reclassifyAll()

	copy(dc.initialYs, dc.ys)
	copy(dc.initialClasses, dc.classes)
}

func (dc *DerivedCurve) reclassifyAll() {
	if dc.reclassify != nil {
		dc.reclassify(dc)

		return
	}

	dc.classify()
}
