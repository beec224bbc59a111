package logic

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/idelchi/gogen/pkg/key"

	"github.com/idelchi/spha/internal/config"
)

// ErrKeyMismatch is returned when the derived key differs from the expected one.
var ErrKeyMismatch = errors.New("derived key does not match the expected key")

// RunDerive prints the key derived from the configured parameters to w,
// optionally saving the parameters and comparing against an expected key.
func RunDerive(cfg *config.Config, w io.Writer) error {
	params, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("resolving parameters: %w", err)
	}

	derived := params.Key()

	if !cfg.Quiet {
		fmt.Fprintf(w, "%s\n", params)
	}

	fmt.Fprintf(w, "%s\n", derived)

	if cfg.Save != "" {
		if err := config.SaveParams(cfg.Save, params); err != nil {
			return err
		}

		if !cfg.Quiet {
			fmt.Fprintf(os.Stderr, "Saved parameters to %q\n", cfg.Save)
		}
	}

	if cfg.Expect == "" {
		return nil
	}

	expected, err := key.FromHex(cfg.Expect)
	if err != nil {
		return fmt.Errorf("decoding expected key: %w", err)
	}

	if subtle.ConstantTimeCompare(expected, derived[:]) != 1 {
		return ErrKeyMismatch
	}

	return nil
}
