package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/spha/internal/config"
	"github.com/idelchi/spha/internal/logic"
)

// NewDeriveCommand creates a new cobra command for the derive subcommand.
func NewDeriveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "derive [flags]",
		Aliases: []string{"key"},
		Short:   "Print the key derived from the parameter set",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.RunDerive(cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("save", "", "Write the parameter set to this YAML or JSON file")
	cmd.Flags().String("expect", "", "Fail unless the derived key equals this hex-encoded key")

	return cmd
}
