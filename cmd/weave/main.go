package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weave/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	errors.SetColors(errors.IsTerminal(os.Stderr))
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "weave",
		Short: "Render and serve live documents",
		Long: `weave renders a document whose nodes are bound to application state.

"weave render" runs one update pass and writes the HTML snapshot, optionally
publishing it to S3. "weave serve" keeps the document live and streams every
change to connected browsers.

Configuration is read from weave.yaml or weave.json in the working directory
or a parent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default: nearest weave.yaml or weave.json)")

	root.AddCommand(
		renderCmd(&configPath),
		serveCmd(&configPath),
		versionCmd(),
	)
	return root
}

// success prints a confirmation line to the command's output.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ %s\n", fmt.Sprintf(format, args...))
}
