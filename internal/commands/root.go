package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/spha/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "spha [flags] command [flags]"
	root.Short = "Seal files with keys derived from geometric parameters"
	root.Long = `A file sealing utility whose keys are derived from a parameter set:
a point, a rotation axis, an iteration count and a strength.
Provides commands for sealing, opening and key derivation.`

	flags := root.PersistentFlags()

	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("delete", "d", false, "Delete the original file after successful sealing/opening")
	flags.Bool("dry", false, "Show what would be processed without writing anything")
	flags.Bool("stats", false, "Print a summary after processing")
	flags.Bool("preserve-timestamps", false, "Copy the input's modification time to the output")

	flags.StringP("params", "p", "", "Path to a YAML or JSON file with the parameter set")
	flags.String("point", "", "Point as x,y,z")
	flags.String("axis", "", "Rotation axis as x,y,z")
	flags.Uint32("iterations", 0, "Number of iterations")
	flags.String("strength", "", "Strength, defaults to 0")

	flags.String("seal-ext", ".sealed", "Suffix to append to sealed files")
	flags.String("open-ext", "", "Suffix to append to opened files, after stripping the sealed suffix")

	root.AddCommand(NewSealCommand(cfg), NewOpenCommand(cfg), NewDeriveCommand(cfg))

	return root
}
