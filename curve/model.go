package curve

import (
	"fmt"
	"math"
	"strings"
)

type Classification int

const (
	ClassificationSmooth Classification = iota
	ClassificationCusp
	ClassificationDiscontinuous
)

func (c Classification) String() string {
	switch c {
	case ClassificationSmooth:
		return "smooth"
	case ClassificationCusp:
		return "cusp"
	case ClassificationDiscontinuous:
		return "discontinuous"
	}

	return fmt.Sprintf("classification(%d)", int(c))
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Classification) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "smooth":
		*c = ClassificationSmooth
	case "cusp":
		*c = ClassificationCusp
	case "discontinuous":
		*c = ClassificationDiscontinuous
	default:
		return fmt.Errorf("%w: classification %q", ErrInvalidConfig, string(text))
	}

	return nil
}

// Undefined is the y value of a sample that has no defined value (an asymptote or a break).
var Undefined = math.NaN()

func IsUndefined(y float64) bool {
	return math.IsNaN(y) || math.IsInf(y, 0)
}

// SamplePoint is a read-only view of one sample of a curve.
type SamplePoint struct {
	Index                 int
	X                     float64
	Y                     float64
	Classification        Classification
	InitialY              float64
	InitialClassification Classification
}

func (p SamplePoint) IsDefined() bool {
	return !IsUndefined(p.Y)
}

// PointState is the persisted form of a sample. History is never persisted.
type PointState struct {
	X                     float64        `yaml:"x" json:"x"`
	Y                     float64        `yaml:"y" json:"y"`
	Classification        Classification `yaml:"classification" json:"classification"`
	InitialY              float64        `yaml:"initialY" json:"initialY"`
	InitialClassification Classification `yaml:"initialClassification" json:"initialClassification"`
}
