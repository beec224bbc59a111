// Package config holds the command-line configuration and resolves it into
// a parameter set.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/spha/pkg/spha"
)

// Config holds the application configuration, populated from flags and
// SPHA_* environment variables.
type Config struct {
	// Show prints the resolved configuration and exits.
	Show bool

	// Parallel is the number of files processed concurrently.
	Parallel int `label:"--parallel" validate:"gte=1"`

	// Quiet suppresses non-error output.
	Quiet bool

	// Delete removes each input after it was processed successfully.
	Delete bool

	// Dry lists what would be processed without writing anything.
	Dry bool

	// Stats prints a summary after processing.
	Stats bool

	// PreserveTimestamps copies the input's modification time to the output.
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Base64 encodes sealed output (or decodes sealed input) when streaming through stdio.
	Base64 bool

	Parameters Parameters `mapstructure:",squash"`
	Cipher     Cipher     `mapstructure:",squash"`
	Suffixes   Suffixes   `mapstructure:",squash"`

	// Save is a params file that derive writes the resolved parameter set to.
	Save string

	// Expect is a hex-encoded key that derive compares against.
	Expect string `label:"--expect" validate:"omitempty,hexadecimal,len=64"`

	// Decrypt is set by the open command.
	Decrypt bool `mapstructure:"-"`

	// Files holds the positional arguments.
	Files []string `mapstructure:"-"`
}

// Parameters describes where the parameter set comes from: a file, or the
// inline point/axis/iterations/strength flags.
type Parameters struct {
	File string `label:"--params" mapstructure:"params" validate:"exclusive=--point,exclusive=--axis,exclusive=--iterations,exclusive=--strength"` //nolint:lll

	Point      string `label:"--point"      mask:"fixed" validate:"required_without=File,vector"`
	Axis       string `label:"--axis"       mask:"fixed" validate:"required_without=File,vector"`
	Iterations uint32 `label:"--iterations"`
	Strength   string `label:"--strength"   mask:"fixed" validate:"float64"`
}

// Cipher selects the variant used when sealing. Opening reads it from the file.
type Cipher struct {
	Stream bool
	Suite  string `label:"--suite" validate:"omitempty,oneof=chacha20-poly1305 aes-256-gcm"`
}

// Suffixes configures output file naming.
type Suffixes struct {
	Seal string `label:"--seal-ext" mapstructure:"seal-ext" validate:"required"`
	Open string `mapstructure:"open-ext"`
}

// Validate checks config against its struct tags.
func (c *Config) Validate(config any) error {
	v := validator.NewValidator()

	if err := register(v); err != nil {
		return err
	}

	if errs := v.Validate(config); len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Display reports whether the configuration should be printed instead of run.
func (c *Config) Display() bool {
	return c.Show
}

// Mode returns the cipher variant to seal with.
func (c *Config) Mode() spha.Mode {
	if c.Cipher.Stream {
		return spha.ModeStream
	}

	return spha.ModeAuthenticated
}

// Suite returns the AEAD suite to seal with.
func (c *Config) Suite() (spha.Suite, error) {
	return spha.ParseSuite(c.Cipher.Suite)
}

// Resolve builds the parameter set from the params file or the inline flags.
func (c *Config) Resolve() (spha.Params, error) {
	if c.Parameters.File != "" {
		return LoadParams(c.Parameters.File)
	}

	point, err := parseVector(c.Parameters.Point)
	if err != nil {
		return spha.Params{}, fmt.Errorf("parsing --point: %w", err)
	}

	axis, err := parseVector(c.Parameters.Axis)
	if err != nil {
		return spha.Params{}, fmt.Errorf("parsing --axis: %w", err)
	}

	var strength float64

	if c.Parameters.Strength != "" {
		strength, err = spha.ParseFloat(c.Parameters.Strength)
		if err != nil {
			return spha.Params{}, fmt.Errorf("parsing --strength: %w", err)
		}
	}

	return spha.NewParams(
		spha.Point{X: point[0], Y: point[1], Z: point[2]},
		spha.Axis{X: axis[0], Y: axis[1], Z: axis[2]},
		c.Parameters.Iterations,
		strength,
	), nil
}

// parseVector parses "x,y,z". Each component accepts the forms of spha.ParseFloat.
func parseVector(s string) ([3]float64, error) {
	var out [3]float64

	parts := strings.Split(s, ",")
	if len(parts) != len(out) {
		return out, fmt.Errorf("want 3 comma-separated components, got %d", len(parts))
	}

	for i, part := range parts {
		v, err := spha.ParseFloat(part)
		if err != nil {
			return out, err
		}

		out[i] = v
	}

	return out, nil
}
