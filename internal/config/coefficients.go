// Package config loads the application configuration: server settings from
// environment variables and the Gibbs coefficients from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"calphad-sn/internal/domain/gibbs"
)

// CoefficientsFile is the YAML layout of a coefficient file:
//
//	phase: BCT Sn
//	coefficients:
//	  constant: -5855.135
//	  linear: 65.443315
//	  t_ln_t: -15.961
//	  quadratic: -0.0188702
//	  cubic: 3.121167e-6
//	  inverse_t: -61960
type CoefficientsFile struct {
	Phase        string           `yaml:"phase"`
	Coefficients coefficientsYAML `yaml:"coefficients"`
}

// Every key is required; pointers tell a missing key from an explicit zero.
type coefficientsYAML struct {
	Constant  *float64 `yaml:"constant"`
	Linear    *float64 `yaml:"linear"`
	TLnT      *float64 `yaml:"t_ln_t"`
	Quadratic *float64 `yaml:"quadratic"`
	Cubic     *float64 `yaml:"cubic"`
	InverseT  *float64 `yaml:"inverse_t"`
}

// LoadCoefficients returns the coefficients stored at path, or gibbs.BCTSn
// when path is empty.
// The path parameter is expected to come from a trusted source (environment or command-line flag).
func LoadCoefficients(path string) (gibbs.Coefficients, error) {
	if path == "" {
		return gibbs.BCTSn, nil
	}

	// #nosec G304 -- path is provided by the operator, not by request input
	data, err := os.ReadFile(path)
	if err != nil {
		return gibbs.Coefficients{}, fmt.Errorf("failed to read coefficients file: %w", err)
	}
	return ParseCoefficients(data)
}

// ParseCoefficients decodes and validates a coefficient file.
func ParseCoefficients(data []byte) (gibbs.Coefficients, error) {
	var file CoefficientsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return gibbs.Coefficients{}, fmt.Errorf("failed to parse coefficients: %w", err)
	}

	raw := file.Coefficients
	fields := []struct {
		key string
		v   *float64
	}{
		{"constant", raw.Constant},
		{"linear", raw.Linear},
		{"t_ln_t", raw.TLnT},
		{"quadratic", raw.Quadratic},
		{"cubic", raw.Cubic},
		{"inverse_t", raw.InverseT},
	}
	var missing []error
	for _, f := range fields {
		if f.v == nil {
			missing = append(missing, fmt.Errorf("coefficients.%s is required", f.key))
		}
	}
	if len(missing) > 0 {
		return gibbs.Coefficients{}, fmt.Errorf("config validation failed: %w", errors.Join(missing...))
	}

	c := gibbs.Coefficients{
		Constant:  *raw.Constant,
		Linear:    *raw.Linear,
		TLnT:      *raw.TLnT,
		Quadratic: *raw.Quadratic,
		Cubic:     *raw.Cubic,
		InverseT:  *raw.InverseT,
	}
	if err := c.Validate(); err != nil {
		return gibbs.Coefficients{}, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}
