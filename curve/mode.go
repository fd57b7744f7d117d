package curve

import (
	"fmt"
	"strings"
)

// Mode selects a response algorithm. The set is closed: Hill, Triangle, Pedestal, Parabola,
// Sinusoid, Freeform, Tilt and Shift.
type Mode interface {
	modeName() string
}

type Hill struct{}

type Triangle struct{}

// Pedestal is a flat plateau with smoothstep edges. SlopeFactor 0 uses Config.PedestalSlopeFactor.
type Pedestal struct {
	SlopeFactor float64
}

type Parabola struct{}

// Sinusoid is a cosine ripple; Cycles 0 uses Config.SinusoidCycles.
type Sinusoid struct {
	Cycles int
}

type Freeform struct{}

type Tilt struct{}

type Shift struct{}

func (Hill) modeName() string     { return "hill" }
func (Triangle) modeName() string { return "triangle" }
func (Pedestal) modeName() string { return "pedestal" }
func (Parabola) modeName() string { return "parabola" }
func (Sinusoid) modeName() string { return "sinusoid" }
func (Freeform) modeName() string { return "freeform" }
func (Tilt) modeName() string     { return "tilt" }
func (Shift) modeName() string    { return "shift" }

func ModeName(m Mode) string {
	if m == nil {
		return ""
	}

	return m.modeName()
}

func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hill":
		return Hill{}, nil
	case "triangle":
		return Triangle{}, nil
	case "pedestal":
		return Pedestal{}, nil
	case "parabola":
		return Parabola{}, nil
	case "sinusoid":
		return Sinusoid{}, nil
	case "freeform":
		return Freeform{}, nil
	case "tilt":
		return Tilt{}, nil
	case "shift":
		return Shift{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Modes lists one value of every mode, in display order.
func Modes() []Mode {
	return []Mode{Hill{}, Triangle{}, Pedestal{}, Parabola{}, Sinusoid{}, Freeform{}, Tilt{}, Shift{}}
}
