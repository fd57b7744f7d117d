package grapher

import (
	"fmt"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libcalculusgrapher/curve"
)

// Model owns the original curve and the curves derived from it. Every mutating call on the
// original curve is followed by a recompute of the derived curves in a fixed order, so when a call
// returns the whole chain is consistent.
type Model struct {
	logger l.Wrapper
	opts   *Options

	// curveLogger is handed to the curves unscoped; each curve adds its own ClsKey.
	curveLogger l.Wrapper

	original         *curve.InteractiveCurve
	derivative       *curve.DerivedCurve
	secondDerivative *curve.DerivedCurve
	integral         *curve.DerivedCurve
}

func NewModel(cfg *curve.Config, logger l.Wrapper, options ...Option) (*Model, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	m := &Model{
		logger:      logger.WithFields(l.StringField(l.ClsKey, "grapherModel")),
		curveLogger: logger,
		opts:        optionNew(options...),
	}

	original, err := curve.NewInteractiveCurve(cfg, m.opts.initialFunction, m.curveLogger)
	if err != nil {
		m.logger.WithFields(l.ErrorField(err)).Error("new original curve")

		return nil, err
	}

	m.original = original

	if m.derivative, err = curve.NewDerivative(original, m.curveLogger); err != nil {
		return nil, err
	}

	if m.opts.secondDerivative {
		if m.secondDerivative, err = curve.NewDerivative(m.derivative, m.curveLogger); err != nil {
			return nil, err
		}
	}

	if m.integral, err = curve.NewIntegral(original, m.curveLogger); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Model) Original() *curve.InteractiveCurve {
	return m.original
}

func (m *Model) Derivative() *curve.DerivedCurve {
	return m.derivative
}

// SecondDerivative is nil when the model was built with NoSecondDerivativeOption.
func (m *Model) SecondDerivative() *curve.DerivedCurve {
	return m.secondDerivative
}

func (m *Model) Integral() *curve.DerivedCurve {
	return m.integral
}

func (m *Model) recompute() error {
	chain := []*curve.DerivedCurve{m.derivative, m.secondDerivative, m.integral}

	for _, dc := range chain {
		if dc == nil {
			continue
		}

		if err := dc.Recompute(); err != nil {
			m.logger.WithFields(l.ErrorField(err), l.UInt64Field("curveID", dc.ID())).Error("recompute failed")

			return err
		}
	}

	return nil
}

func (m *Model) Manipulate(mode curve.Mode, dragX, dragY, width float64) error {
	if err := m.original.Manipulate(mode, dragX, dragY, width); err != nil {
		return err
	}

	return m.recompute()
}

func (m *Model) Smooth() error {
	m.original.Smooth()

	return m.recompute()
}

// Save records the current original curve; call it when a gesture ends.
func (m *Model) Save() {
	m.original.Save()
}

func (m *Model) Undo() error {
	m.original.Undo()

	return m.recompute()
}

func (m *Model) Reset() error {
	m.original.Reset()

	return m.recompute()
}

func (m *Model) Erase() error {
	m.original.Erase()

	return m.recompute()
}

func (m *Model) ApplyFunction(fn func(x float64) float64) error {
	m.original.ApplyFunction(fn)

	return m.recompute()
}

func (m *Model) SaveState(key string) error {
	if m.opts.storage == nil {
		return curve.ErrNoStorage
	}

	if err := m.opts.storage.Save(key, m.original.Snapshot()); err != nil {
		m.logger.WithFields(l.ErrorField(err), l.StringField("key", key)).Error("save state")

		return err
	}

	return nil
}

func (m *Model) LoadState(key string) error {
	if m.opts.storage == nil {
		return curve.ErrNoStorage
	}

	ps, err := m.opts.storage.Load(key)
	if err != nil {
		return err
	}

	if err = m.original.Restore(ps); err != nil {
		return fmt.Errorf("load state %q: %w", key, err)
	}

	return m.recompute()
}
