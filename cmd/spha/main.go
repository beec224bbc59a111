// Command spha seals and opens files with keys derived from a geometric
// parameter set.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/spha/internal/commands"
	"github.com/idelchi/spha/internal/config"
)

// version is set at build time.
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		if errors.Is(err, cobraext.ErrExitGracefully) {
			return
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}
