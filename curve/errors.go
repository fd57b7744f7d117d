package curve

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid config")
	ErrMismatchedCurves = errors.New("mismatched curves")
	ErrUnknownMode      = errors.New("unknown manipulation mode")
	ErrNonFinite        = errors.New("non-finite value")
	ErrNoStorage        = errors.New("no storage")
)

var panicFn = func(err error) {
	panic(err)
}

// SetPanicFn replaces the hook used for invariant violations under strict assertions.
func SetPanicFn(fn func(err error)) {
	panicFn = fn
}

func ResetPanicFn() {
	panicFn = func(err error) {
		panic(err)
	}
}
