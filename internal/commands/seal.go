package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/spha/internal/config"
	"github.com/idelchi/spha/internal/logic"
)

// NewSealCommand creates a new cobra command for the seal subcommand.
func NewSealCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "seal [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Seal files, or standard input when given -",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}

	cmd.Flags().Bool("stream", false, "Use the unauthenticated stream variant")
	cmd.Flags().String("suite", "chacha20-poly1305", "AEAD suite: chacha20-poly1305 or aes-256-gcm")
	cmd.Flags().BoolP("base64", "b", false, "Write base64 text when sealing standard input")

	return cmd
}
