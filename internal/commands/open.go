package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/spha/internal/config"
	"github.com/idelchi/spha/internal/logic"
)

// NewOpenCommand creates a new cobra command for the open subcommand.
func NewOpenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [flags] [paths...]",
		Aliases: []string{"dec"},
		Short:   "Open sealed files, or standard input when given -",
		Args:    cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Decrypt = true

			return preRun(cfg, ".")(cmd, args)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}

	cmd.Flags().BoolP("base64", "b", false, "Read base64 text when opening standard input")

	return cmd
}
