package curve

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type Config struct {
	XMin        float64 `yaml:"xMin"`
	XMax        float64 `yaml:"xMax"`
	SampleCount int     `yaml:"sampleCount"`

	// SmoothingSigma is the standard deviation of the smoothing kernel, in x units.
	SmoothingSigma float64 `yaml:"smoothingSigma"`
	// SmoothingCutoff is the kernel radius in multiples of SmoothingSigma.
	SmoothingCutoff float64 `yaml:"smoothingCutoff"`

	MinWidth float64 `yaml:"minWidth"`
	MaxWidth float64 `yaml:"maxWidth"`

	// CuspAngleThreshold is in degrees.
	CuspAngleThreshold          float64 `yaml:"cuspAngleThreshold"`
	DiscontinuitySlopeThreshold float64 `yaml:"discontinuitySlopeThreshold"`

	MaxUndo int `yaml:"maxUndo"`

	PedestalSlopeFactor float64 `yaml:"pedestalSlopeFactor"`
	SinusoidCycles      int     `yaml:"sinusoidCycles"`

	// IntegralGapTolerance is the longest run of undefined integrand samples that is bridged.
	IntegralGapTolerance int `yaml:"integralGapTolerance"`

	StrictAssertions bool `yaml:"strictAssertions"`
}

func DefaultConfig() *Config {
	return &Config{
		XMin:                        0,
		XMax:                        30,
		SampleCount:                 1251,
		SmoothingSigma:              0.3,
		SmoothingCutoff:             4,
		MinWidth:                    0.5,
		MaxWidth:                    10,
		CuspAngleThreshold:          25,
		DiscontinuitySlopeThreshold: 200,
		MaxUndo:                     20,
		PedestalSlopeFactor:         1,
		SinusoidCycles:              2,
		IntegralGapTolerance:        4,
	}
}

func (cfg *Config) Validate() error {
	fnInvalid := func(field string, v interface{}) error {
		return fmt.Errorf("%w: %s=%v", ErrInvalidConfig, field, v)
	}

	fnFinite := func(vs ...float64) bool {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}

		return true
	}

	if !fnFinite(cfg.XMin, cfg.XMax, cfg.SmoothingSigma, cfg.SmoothingCutoff, cfg.MinWidth, cfg.MaxWidth,
		cfg.CuspAngleThreshold, cfg.DiscontinuitySlopeThreshold, cfg.PedestalSlopeFactor) {
		return fmt.Errorf("%w: non-finite value", ErrInvalidConfig)
	}

	switch {
	case cfg.XMax <= cfg.XMin:
		return fnInvalid("xMax", cfg.XMax)
	case cfg.SampleCount < 3:
		return fnInvalid("sampleCount", cfg.SampleCount)
	case cfg.SmoothingSigma <= 0:
		return fnInvalid("smoothingSigma", cfg.SmoothingSigma)
	case cfg.SmoothingCutoff <= 0:
		return fnInvalid("smoothingCutoff", cfg.SmoothingCutoff)
	case cfg.MinWidth <= 0:
		return fnInvalid("minWidth", cfg.MinWidth)
	case cfg.MaxWidth < cfg.MinWidth:
		return fnInvalid("maxWidth", cfg.MaxWidth)
	case cfg.CuspAngleThreshold <= 0 || cfg.CuspAngleThreshold >= 180:
		return fnInvalid("cuspAngleThreshold", cfg.CuspAngleThreshold)
	case cfg.DiscontinuitySlopeThreshold <= 0:
		return fnInvalid("discontinuitySlopeThreshold", cfg.DiscontinuitySlopeThreshold)
	case cfg.MaxUndo < 1:
		return fnInvalid("maxUndo", cfg.MaxUndo)
	case cfg.PedestalSlopeFactor < 1:
		return fnInvalid("pedestalSlopeFactor", cfg.PedestalSlopeFactor)
	case cfg.SinusoidCycles < 0:
		return fnInvalid("sinusoidCycles", cfg.SinusoidCycles)
	case cfg.IntegralGapTolerance < 0:
		return fnInvalid("integralGapTolerance", cfg.IntegralGapTolerance)
	}

	return nil
}

// Dx is the spacing between adjacent samples.
func (cfg *Config) Dx() float64 {
	return (cfg.XMax - cfg.XMin) / float64(cfg.SampleCount-1)
}

func (cfg *Config) clone() *Config {
	c := *cfg

	return &c
}

// LoadConfig reads a YAML document over DefaultConfig.
func LoadConfig(file string) (*Config, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	if err = yaml.Unmarshal(d, cfg); err != nil {
		return nil, err
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFromMap applies loosely typed preference values over DefaultConfig. Keys match the yaml names.
// nolint: funlen, cyclop
func ConfigFromMap(m map[string]interface{}) (*Config, error) {
	cfg := DefaultConfig()

	fnFloat := func(key string, dst *float64) error {
		v, ok := m[key]
		if !ok {
			return nil
		}

		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}

		*dst = f

		return nil
	}

	fnInt := func(key string, dst *int) error {
		v, ok := m[key]
		if !ok {
			return nil
		}

		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}

		*dst = n

		return nil
	}

	floats := map[string]*float64{
		"xMin":                        &cfg.XMin,
		"xMax":                        &cfg.XMax,
		"smoothingSigma":              &cfg.SmoothingSigma,
		"smoothingCutoff":             &cfg.SmoothingCutoff,
		"minWidth":                    &cfg.MinWidth,
		"maxWidth":                    &cfg.MaxWidth,
		"cuspAngleThreshold":          &cfg.CuspAngleThreshold,
		"discontinuitySlopeThreshold": &cfg.DiscontinuitySlopeThreshold,
		"pedestalSlopeFactor":         &cfg.PedestalSlopeFactor,
	}

	for key, dst := range floats {
		if err := fnFloat(key, dst); err != nil {
			return nil, err
		}
	}

	ints := map[string]*int{
		"sampleCount":          &cfg.SampleCount,
		"maxUndo":              &cfg.MaxUndo,
		"sinusoidCycles":       &cfg.SinusoidCycles,
		"integralGapTolerance": &cfg.IntegralGapTolerance,
	}

	for key, dst := range ints {
		if err := fnInt(key, dst); err != nil {
			return nil, err
		}
	}

	if v, ok := m["strictAssertions"]; ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, fmt.Errorf("%w: strictAssertions: %v", ErrInvalidConfig, err)
		}

		cfg.StrictAssertions = b
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
