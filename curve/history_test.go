package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUndoRoundTrip(t *testing.T) {
	c := newFlatCurve(t)

	assert.Nil(t, c.Manipulate(Hill{}, 10, 3, 2))
	c.Save()

	ys := append([]float64(nil), c.ys...)
	classes := append([]Classification(nil), c.classes...)

	assert.Nil(t, c.Manipulate(Triangle{}, 12, -4, 5))
	c.Smooth()
	assert.NotEqual(t, ys, c.ys)

	var notified int

	c.Subscribe(func() { notified++ })

	c.Undo()
	assert.EqualValues(t, 1, notified)
	assert.Equal(t, ys, c.ys)
	assert.Equal(t, classes, c.classes)
	assert.EqualValues(t, 0, c.HistoryDepth())

	// nothing saved: fall back to the initial state
	c.Undo()

	for i := 0; i < c.Len(); i++ {
		assert.EqualValues(t, 0, c.Y(i))
		assert.Equal(t, ClassificationSmooth, c.ClassificationAt(i))
	}
}

func TestHistoryBound(t *testing.T) {
	c := newFlatCurve(t)
	maxUndo := c.Config().MaxUndo

	for i := 0; i < maxUndo+5; i++ {
		assert.Nil(t, c.Manipulate(Shift{}, 15, float64(i), 1))
		c.Save()
		assert.True(t, c.HistoryDepth() <= maxUndo)
	}

	assert.EqualValues(t, maxUndo, c.HistoryDepth())

	// the oldest five saves were evicted; the newest is popped first
	for i := maxUndo + 4; i >= 5; i-- {
		c.Undo()
		assert.EqualValues(t, float64(i), c.Y(0))
	}

	assert.EqualValues(t, 0, c.HistoryDepth())
}

func TestReset(t *testing.T) {
	c, err := NewInteractiveCurve(nil, func(x float64) float64 {
		return x / 10
	}, nil)
	assert.Nil(t, err)

	initial := c.Points()

	assert.Nil(t, c.Manipulate(Pedestal{}, 20, 8, 6))
	c.Save()
	c.Erase()
	c.Save()

	for k := 0; k < 2; k++ {
		c.Reset()

		assert.False(t, c.WasManipulated())
		assert.EqualValues(t, 0, c.HistoryDepth())
		assert.Equal(t, initial, c.Points())
	}
}

func TestHistoryRing(t *testing.T) {
	h := newHistory(2, 3)

	for i := 0; i < 5; i++ {
		h.push([]float64{float64(i), float64(-i)}, []Classification{ClassificationSmooth, ClassificationCusp})
	}

	assert.EqualValues(t, 3, h.depth)

	ys := make([]float64, 2)
	classes := make([]Classification, 2)

	for _, want := range []float64{4, 3, 2} {
		assert.True(t, h.pop(ys, classes))
		assert.EqualValues(t, []float64{want, -want}, ys)
		assert.Equal(t, ClassificationCusp, classes[1])
	}

	assert.False(t, h.pop(ys, classes))
}
