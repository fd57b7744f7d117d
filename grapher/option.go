package grapher

import "github.com/sgostarter/libcalculusgrapher/curve"

type Options struct {
	storage          curve.Storage
	initialFunction  func(x float64) float64
	secondDerivative bool
}

type Option func(o *Options)

func optionNew(option ...Option) *Options {
	opts := &Options{
		secondDerivative: true,
	}

	for _, o := range option {
		o(opts)
	}

	return opts
}

// StorageOption enables SaveState/LoadState.
func StorageOption(storage curve.Storage) Option {
	return func(o *Options) {
		o.storage = storage
	}
}

// InitialFunctionOption builds the original curve as y = fn(x) instead of y = 0.
func InitialFunctionOption(fn func(x float64) float64) Option {
	return func(o *Options) {
		o.initialFunction = fn
	}
}

func NoSecondDerivativeOption() Option {
	return func(o *Options) {
		o.secondDerivative = false
	}
}
