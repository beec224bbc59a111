package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"

	"github.com/idelchi/spha/pkg/spha"
)

// LoadParams reads a parameter set from a YAML (.yml, .yaml) or
// JSON-with-comments (.json, .jsonc) file.
//
// Floats may be written as numbers or as "0x" followed by the 16 hex digits
// of their IEEE-754 bit pattern.
func LoadParams(path string) (spha.Params, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return spha.Params{}, fmt.Errorf("reading params file %q: %w", path, err)
	}

	var params spha.Params

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &params)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSONInPlace(data), &params)
	default:
		return spha.Params{}, fmt.Errorf("params file %q: unsupported extension %q", path, ext)
	}

	if err != nil {
		return spha.Params{}, fmt.Errorf("parsing params file %q: %w", path, err)
	}

	return params, nil
}

// SaveParams writes params to path in the format implied by its extension.
func SaveParams(path string, params spha.Params) error {
	var (
		data []byte
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		data, err = yaml.Marshal(params)
	case ".json", ".jsonc":
		data, err = json.MarshalIndent(params, "", "  ")
	default:
		return fmt.Errorf("params file %q: unsupported extension %q", path, ext)
	}

	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}

	const ownerReadWrite = 0o600

	if err := os.WriteFile(path, data, ownerReadWrite); err != nil {
		return fmt.Errorf("writing params file %q: %w", path, err)
	}

	return nil
}
