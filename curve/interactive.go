package curve

import (
	"fmt"
	"math"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

// InteractiveCurve is a curve the user deforms with pointer drags.
type InteractiveCurve struct {
	*Curve

	history        *history
	wasManipulated bool
	anchor         dragAnchor

	scratch []float64
}

// NewInteractiveCurve builds a curve with y = fn(x); a nil fn gives the flat curve y = 0.
func NewInteractiveCurve(cfg *Config, fn func(x float64) float64, logger l.Wrapper) (*InteractiveCurve, error) {
	c, err := newCurve(cfg, fn, "interactiveCurve", logger)
	if err != nil {
		return nil, err
	}

	return &InteractiveCurve{
		Curve:   c,
		history: newHistory(c.Len(), c.cfg.MaxUndo),
		scratch: make([]float64, c.Len()),
	}, nil
}

func (c *InteractiveCurve) WasManipulated() bool {
	return c.wasManipulated
}

func (c *InteractiveCurve) HistoryDepth() int {
	return c.history.depth
}

// ClampWidth maps a requested manipulation width into [MinWidth, MaxWidth].
func (c *InteractiveCurve) ClampWidth(width float64) float64 {
	if math.IsNaN(width) || width < c.cfg.MinWidth {
		return c.cfg.MinWidth
	}

	if width > c.cfg.MaxWidth {
		return c.cfg.MaxWidth
	}

	return width
}

// Manipulate applies one drag step. Values are computed on a scratch copy and committed only when
// every touched sample is finite, so a failed step leaves the curve unchanged.
func (c *InteractiveCurve) Manipulate(mode Mode, dragX, dragY, width float64) error {
	if mode == nil {
		return fmt.Errorf("%w: nil", ErrUnknownMode)
	}

	if IsUndefined(dragX) || IsUndefined(dragY) {
		return fmt.Errorf("%w: drag (%v, %v)", ErrNonFinite, dragX, dragY)
	}

	width = c.ClampWidth(width)
	center := c.closestIndex(dragX)

	c.logger.WithFields(l.StringField("mode", ModeName(mode)), l.StringField("dragX", cast.ToString(dragX)),
		l.StringField("dragY", cast.ToString(dragY)), l.StringField("width", cast.ToString(width))).Debug("manipulate")

	copy(c.scratch, c.ys)

	// freeform fills only between consecutive freeform drags
	anchor := c.anchor
	if _, ok := mode.(Freeform); !ok {
		anchor.reset()
	}

	lo, hi, err := respond(mode, c.xs, c.scratch, center, dragY, width, c.cfg, &anchor)
	if err != nil {
		return err
	}

	for i := lo; i <= hi; i++ {
		if IsUndefined(c.scratch[i]) {
			c.logger.WithFields(l.IntField("index", i)).Error("manipulate: non-finite result")

			return fmt.Errorf("%w: sample %d", ErrNonFinite, i)
		}
	}

	copy(c.ys[lo:hi+1], c.scratch[lo:hi+1])

	c.anchor = anchor
	c.wasManipulated = true

	c.classify()
	c.notify()

	return nil
}

func (c *InteractiveCurve) Smooth() {
	c.logger.Debug("smooth")

	kernel := gaussianKernel(c.cfg.SmoothingSigma, c.dx, c.cfg.SmoothingCutoff)

	smoothValues(c.ys, c.scratch, kernel)
	copy(c.ys, c.scratch)

	c.classify()
	c.notify()
}

// Save pushes the current state of every sample; call it once per completed gesture.
func (c *InteractiveCurve) Save() {
	c.history.push(c.ys, c.classes)
	c.anchor.reset()
}

// Undo restores the last saved state, or the initial state when nothing is saved.
func (c *InteractiveCurve) Undo() {
	if !c.history.pop(c.ys, c.classes) {
		copy(c.ys, c.initialYs)
		copy(c.classes, c.initialClasses)
	}

	c.anchor.reset()
	c.notify()
}

func (c *InteractiveCurve) Reset() {
	copy(c.ys, c.initialYs)
	copy(c.classes, c.initialClasses)

	c.history.clear()
	c.anchor.reset()
	c.wasManipulated = false

	c.notify()
}

// Erase flattens the curve to y = 0. History is kept so the erase can be undone.
func (c *InteractiveCurve) Erase() {
	for i := range c.ys {
		c.ys[i] = 0
		c.classes[i] = ClassificationSmooth
	}

	c.anchor.reset()
	c.notify()
}

// ApplyFunction loads y = fn(x) into every sample.
func (c *InteractiveCurve) ApplyFunction(fn func(x float64) float64) {
	for i, x := range c.xs {
		c.ys[i] = fn(x)
	}

	c.anchor.reset()
	c.classify()
	c.notify()
}

// Restore applies persisted sample states. The states must describe the same x grid.
func (c *InteractiveCurve) Restore(ps []*PointState) error {
	if len(ps) != len(c.xs) {
		return fmt.Errorf("%w: %d points, want %d", ErrMismatchedCurves, len(ps), len(c.xs))
	}

	tolerance := c.dx * 1e-6

	for i, p := range ps {
		if p == nil || math.Abs(p.X-c.xs[i]) > tolerance {
			return fmt.Errorf("%w: x mismatch at %d", ErrMismatchedCurves, i)
		}
	}

	for i, p := range ps {
		c.ys[i] = p.Y
		c.classes[i] = p.Classification
		c.initialYs[i] = p.InitialY
		c.initialClasses[i] = p.InitialClassification
	}

	c.history.clear()
	c.anchor.reset()
	c.wasManipulated = false

	for i := range ps {
		if c.ys[i] != c.initialYs[i] && !(IsUndefined(c.ys[i]) && IsUndefined(c.initialYs[i])) {
			c.wasManipulated = true

			break
		}
	}

	c.notify()

	return nil
}
