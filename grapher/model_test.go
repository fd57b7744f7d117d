package grapher

import (
	"math"
	"testing"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libcalculusgrapher/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUTModel(t *testing.T, options ...Option) *Model {
	m, err := NewModel(nil, l.NewConsoleLoggerWrapper(), options...)
	require.Nil(t, err)

	return m
}

func classifiedNear(c *curve.Curve, x float64, want curve.Classification) bool {
	p, ok := c.ClosestPointAt(x)
	if !ok {
		return false
	}

	for i := p.Index - 1; i <= p.Index+1; i++ {
		if i >= 0 && i < c.Len() && c.ClassificationAt(i) == want {
			return true
		}
	}

	return false
}

func maxSecondDifference(c *curve.Curve) float64 {
	cfg := c.Config()
	dx := cfg.Dx()

	var r float64

	for i := 1; i < c.Len()-1; i++ {
		r = math.Max(r, math.Abs(c.Y(i+1)-2*c.Y(i)+c.Y(i-1))/(dx*dx))
	}

	return r
}

func TestModelHill(t *testing.T) {
	m := newUTModel(t)

	require.Nil(t, m.Manipulate(curve.Hill{}, 15, 5, 2))

	y, ok := m.Original().ValueAt(15)
	assert.True(t, ok)
	assert.InDelta(t, 5, y, 1e-6)

	for _, x := range []float64{13, 17} {
		y, ok = m.Original().ValueAt(x)
		assert.True(t, ok)
		assert.InDelta(t, 0, y, 1e-3)
	}

	y, ok = m.Derivative().ValueAt(15)
	assert.True(t, ok)
	assert.InDelta(t, 0, y, 1e-6)

	assert.True(t, m.Original().WasManipulated())
}

func TestModelTriangle(t *testing.T) {
	m := newUTModel(t)

	require.Nil(t, m.Manipulate(curve.Triangle{}, 10, 3, 4))

	for _, x := range []float64{8, 10, 12} {
		assert.True(t, classifiedNear(m.Original().Curve, x, curve.ClassificationCusp), "x=%v", x)
	}

	apex, _ := m.Original().ClosestPointAt(10)
	assert.True(t, curve.IsUndefined(m.Derivative().Y(apex.Index)))
	assert.True(t, curve.IsUndefined(m.SecondDerivative().Y(apex.Index)))

	// the integral does not break at isolated cusps of its integrand
	for i := 0; i < m.Integral().Len(); i++ {
		assert.False(t, curve.IsUndefined(m.Integral().Y(i)))
	}

	y, ok := m.Integral().ValueAt(20)
	assert.True(t, ok)
	assert.InDelta(t, 6, y, 0.01)
}

func TestModelSmoothRoughness(t *testing.T) {
	m := newUTModel(t)

	require.Nil(t, m.Manipulate(curve.Triangle{}, 15, 4, 3))
	require.Nil(t, m.Smooth())

	r1 := maxSecondDifference(m.Original().Curve)

	require.Nil(t, m.Smooth())

	r2 := maxSecondDifference(m.Original().Curve)

	assert.True(t, r2 <= r1, "%v > %v", r2, r1)

	for i := 0; i < m.Original().Len(); i++ {
		assert.Equal(t, curve.ClassificationSmooth, m.Original().ClassificationAt(i))
	}
}

func TestModelIntegralReference(t *testing.T) {
	m := newUTModel(t, InitialFunctionOption(math.Cos))

	fnCheck := func() {
		y, ok := m.Integral().ValueAt(0)
		assert.True(t, ok)
		assert.EqualValues(t, 0, y)
	}

	fnCheck()

	y, ok := m.Integral().ValueAt(math.Pi / 2)
	assert.True(t, ok)
	assert.InDelta(t, 1, y, 1e-3)

	require.Nil(t, m.Manipulate(curve.Shift{}, 3, 2, 1))
	fnCheck()
	require.Nil(t, m.Manipulate(curve.Sinusoid{}, 5, -3, 4))
	fnCheck()
	require.Nil(t, m.Smooth())
	fnCheck()
	require.Nil(t, m.Erase())
	fnCheck()
	require.Nil(t, m.ApplyFunction(func(x float64) float64 { return 1 / (x - 7) }))
	fnCheck()
}

func TestModelNotificationOrder(t *testing.T) {
	m := newUTModel(t)

	var order []string

	m.Original().Subscribe(func() { order = append(order, "original") })
	m.Derivative().Subscribe(func() { order = append(order, "derivative") })
	m.SecondDerivative().Subscribe(func() { order = append(order, "secondDerivative") })
	m.Integral().Subscribe(func() { order = append(order, "integral") })

	want := []string{"original", "derivative", "secondDerivative", "integral"}

	require.Nil(t, m.Manipulate(curve.Parabola{}, 12, 2, 3))
	assert.Equal(t, want, order)

	order = order[:0]

	m.Save()
	assert.Empty(t, order)

	require.Nil(t, m.Undo())
	assert.Equal(t, want, order)

	order = order[:0]

	// a failed manipulation changes nothing and notifies nobody
	assert.ErrorIs(t, m.Manipulate(nil, 12, 2, 3), curve.ErrUnknownMode)
	assert.Empty(t, order)
}

func TestModelUndoReset(t *testing.T) {
	m := newUTModel(t, NoSecondDerivativeOption())
	assert.Nil(t, m.SecondDerivative())

	require.Nil(t, m.Manipulate(curve.Hill{}, 10, 2, 3))
	m.Save()

	require.Nil(t, m.Manipulate(curve.Hill{}, 20, -2, 3))

	y, _ := m.Derivative().ValueAt(19)
	assert.True(t, y < 0)

	require.Nil(t, m.Undo())

	y, _ = m.Original().ValueAt(20)
	assert.InDelta(t, 0, y, 1e-9)

	y, _ = m.Derivative().ValueAt(19)
	assert.InDelta(t, 0, y, 1e-9)

	y, _ = m.Original().ValueAt(10)
	assert.InDelta(t, 2, y, 0.01)

	require.Nil(t, m.Reset())
	assert.False(t, m.Original().WasManipulated())
	assert.EqualValues(t, 0, m.Original().HistoryDepth())

	for i := 0; i < m.Derivative().Len(); i++ {
		assert.EqualValues(t, 0, m.Original().Y(i))
		assert.EqualValues(t, 0, m.Derivative().Y(i))
		assert.EqualValues(t, 0, m.Integral().Y(i))
	}
}

func TestModelState(t *testing.T) {
	m := newUTModel(t)

	assert.ErrorIs(t, m.SaveState("k"), curve.ErrNoStorage)
	assert.ErrorIs(t, m.LoadState("k"), curve.ErrNoStorage)

	stg := curve.NewYAMLStorage(t.TempDir())

	m = newUTModel(t, StorageOption(stg))
	require.Nil(t, m.Manipulate(curve.Pedestal{}, 15, 2, 4))
	require.Nil(t, m.SaveState("pedestal"))

	m2 := newUTModel(t, StorageOption(stg))
	require.Nil(t, m2.LoadState("pedestal"))
	assert.True(t, m2.Original().WasManipulated())

	for i := 0; i < m.Original().Len(); i++ {
		assert.EqualValues(t, m.Original().Y(i), m2.Original().Y(i))
		assert.EqualValues(t, m.Derivative().Y(i), m2.Derivative().Y(i))
		assert.EqualValues(t, m.Integral().Y(i), m2.Integral().Y(i))
	}

	assert.NotNil(t, m2.LoadState("none"))

	cfg := curve.DefaultConfig()
	cfg.SampleCount = 301

	m3, err := NewModel(cfg, nil, StorageOption(stg))
	require.Nil(t, err)
	assert.ErrorIs(t, m3.LoadState("pedestal"), curve.ErrMismatchedCurves)
}

func TestModelLoggers(t *testing.T) {
	logger := l.NewConsoleLoggerWrapper()

	m, err := NewModel(nil, logger)
	require.Nil(t, err)

	// curves get the caller's logger and scope it themselves
	assert.Equal(t, logger, m.curveLogger)
	assert.NotNil(t, m.logger)

	m, err = NewModel(nil, nil)
	require.Nil(t, err)
	assert.NotNil(t, m.curveLogger)
}
