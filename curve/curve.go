package curve

import (
	"math"

	"github.com/godruoyi/go-snowflake"
	"github.com/sgostarter/i/l"
)

type listener struct {
	id uint64
	fn func()
}

// Curve is a fixed-length sequence of samples over [XMin, XMax]. All samples live in parallel
// slices indexed by position; x values never change after construction.
type Curve struct {
	id     uint64
	cfg    *Config
	logger l.Wrapper

	dx float64

	xs      []float64
	ys      []float64
	classes []Classification

	initialYs      []float64
	initialClasses []Classification

	listeners      []listener
	nextListenerID uint64
}

func newCurve(cfg *Config, fn func(x float64) float64, cls string, logger l.Wrapper) (*Curve, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	id := snowflake.ID()

	n := cfg.SampleCount

	c := &Curve{
		id:             id,
		cfg:            cfg.clone(),
		logger:         logger.WithFields(l.StringField(l.ClsKey, cls), l.UInt64Field("curveID", id)),
		dx:             cfg.Dx(),
		xs:             make([]float64, n),
		ys:             make([]float64, n),
		classes:        make([]Classification, n),
		initialYs:      make([]float64, n),
		initialClasses: make([]Classification, n),
	}

	for i := 0; i < n; i++ {
		c.xs[i] = cfg.XMin + float64(i)*c.dx
	}

	c.xs[n-1] = cfg.XMax

	if fn != nil {
		for i, x := range c.xs {
			c.ys[i] = fn(x)
		}
	}

	c.classify()

	copy(c.initialYs, c.ys)
	copy(c.initialClasses, c.classes)

	return c, nil
}

func (c *Curve) ID() uint64 {
	return c.id
}

func (c *Curve) Config() Config {
	return *c.cfg
}

func (c *Curve) Len() int {
	return len(c.xs)
}

func (c *Curve) Domain() (xMin, xMax float64) {
	return c.cfg.XMin, c.cfg.XMax
}

func (c *Curve) X(i int) float64 {
	return c.xs[i]
}

func (c *Curve) Y(i int) float64 {
	return c.ys[i]
}

func (c *Curve) ClassificationAt(i int) Classification {
	return c.classes[i]
}

func (c *Curve) Point(i int) SamplePoint {
	return SamplePoint{
		Index:                 i,
		X:                     c.xs[i],
		Y:                     c.ys[i],
		Classification:        c.classes[i],
		InitialY:              c.initialYs[i],
		InitialClassification: c.initialClasses[i],
	}
}

func (c *Curve) Points() []SamplePoint {
	ps := make([]SamplePoint, len(c.xs))
	for i := range c.xs {
		ps[i] = c.Point(i)
	}

	return ps
}

// Range calls fn for each sample in ascending x until fn returns false.
func (c *Curve) Range(fn func(p SamplePoint) bool) {
	for i := range c.xs {
		if !fn(c.Point(i)) {
			return
		}
	}
}

func (c *Curve) inDomain(x float64) bool {
	return !math.IsNaN(x) && x >= c.cfg.XMin && x <= c.cfg.XMax
}

// closestIndex clamps x into the domain; ties go to the lower index.
func (c *Curve) closestIndex(x float64) int {
	if math.IsNaN(x) || x <= c.cfg.XMin {
		return 0
	}

	if x >= c.cfg.XMax {
		return len(c.xs) - 1
	}

	t := (x - c.cfg.XMin) / c.dx
	i := int(math.Floor(t))

	if i >= len(c.xs)-1 {
		return len(c.xs) - 1
	}

	if x-c.xs[i] > c.xs[i+1]-x {
		i++
	}

	return i
}

func (c *Curve) ClosestPointAt(x float64) (p SamplePoint, ok bool) {
	if !c.inDomain(x) {
		return
	}

	return c.Point(c.closestIndex(x)), true
}

// ValueAt linearly interpolates between the bracketing samples.
func (c *Curve) ValueAt(x float64) (y float64, ok bool) {
	if !c.inDomain(x) {
		return Undefined, false
	}

	i := int(math.Floor((x - c.cfg.XMin) / c.dx))
	if i >= len(c.xs)-1 {
		i = len(c.xs) - 2
	}

	if i < 0 {
		i = 0
	}

	// floor can land one sample off near a boundary
	if x < c.xs[i] && i > 0 {
		i--
	} else if x > c.xs[i+1] && i+2 < len(c.xs) {
		i++
	}

	switch x {
	case c.xs[i]:
		y = c.ys[i]
	case c.xs[i+1]:
		y = c.ys[i+1]
	default:
		y0, y1 := c.ys[i], c.ys[i+1]
		if IsUndefined(y0) || IsUndefined(y1) {
			return Undefined, false
		}

		y = y0 + (y1-y0)*(x-c.xs[i])/(c.xs[i+1]-c.xs[i])
	}

	if IsUndefined(y) {
		return Undefined, false
	}

	return y, true
}

// Subscribe registers fn to be called once after every logical update of the curve.
func (c *Curve) Subscribe(fn func()) uint64 {
	c.nextListenerID++
	c.listeners = append(c.listeners, listener{
		id: c.nextListenerID,
		fn: fn,
	})

	return c.nextListenerID
}

func (c *Curve) Unsubscribe(id uint64) bool {
	for idx, lis := range c.listeners {
		if lis.id == id {
			c.listeners = append(c.listeners[:idx:idx], c.listeners[idx+1:]...)

			return true
		}
	}

	return false
}

func (c *Curve) notify() {
	if len(c.listeners) == 0 {
		return
	}

	ls := make([]listener, len(c.listeners))
	copy(ls, c.listeners)

	for _, lis := range ls {
		lis.fn()
	}
}

func (c *Curve) classify() {
	classifyAll(c.xs, c.ys, c.classes, c.cfg.DiscontinuitySlopeThreshold, c.cfg.CuspAngleThreshold)
}

// Snapshot returns the persisted form of every sample.
func (c *Curve) Snapshot() []*PointState {
	ps := make([]*PointState, len(c.xs))
	for i := range c.xs {
		ps[i] = &PointState{
			X:                     c.xs[i],
			Y:                     c.ys[i],
			Classification:        c.classes[i],
			InitialY:              c.initialYs[i],
			InitialClassification: c.initialClasses[i],
		}
	}

	return ps
}

func (c *Curve) invariantViolated(err error, index int) {
	c.logger.WithFields(l.ErrorField(err), l.IntField("index", index)).Error("invariant violated")

	if c.cfg.StrictAssertions {
		panicFn(err)
	}
}
