// Package commands provides the command-line interface for the spha tool.
//
// It implements commands for:
//   - sealing files or standard input
//   - opening sealed files or standard input
//   - deriving and checking keys
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper. Flags can also
// be set through SPHA_* environment variables, with dashes replaced by
// underscores.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/spha/internal/config"
)

// preRun returns a PreRunE handler that resolves positional args into cfg.Files
// and validates the configuration.
func preRun(cfg *config.Config, defaults ...string) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			cfg.Files = defaults
		} else {
			cfg.Files = args
		}

		return cobraext.Validate(cfg, cfg)
	}
}
