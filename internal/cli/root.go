package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Called by
// the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the decklog CLI and returns an error if any command fails.
// The context carries cancellation from signal handling in main; commands
// stop cleanly when it is cancelled.
//
// The root command wires the logger into the context based on --verbose;
// subcommands retrieve it with loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "decklog",
		Short:        "Decklog lays out and explores decision graphs",
		Long:         `Decklog computes visual layouts for knowledge-management decision graphs (decisions and the entities they touch) and serves or explores them interactively.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("decklog %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to decklog.toml (default: ./decklog.toml if present)")

	root.AddCommand(newLayoutCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newExploreCmd(&configPath))
	root.AddCommand(newAlgorithmsCmd())
	root.AddCommand(newCacheCmd(&configPath))
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
