package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mlorenzen/decklog/pkg/config"
	"github.com/mlorenzen/decklog/pkg/layout"
	"github.com/mlorenzen/decklog/pkg/source"
	"github.com/mlorenzen/decklog/pkg/view"
)

// newExploreCmd creates the explore command: an interactive terminal
// explorer for a decision graph.
func newExploreCmd(configPath *string) *cobra.Command {
	var (
		algorithm string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "explore [snapshot.json|url]",
		Short: "Explore a decision graph interactively",
		Long: `Explore a decision graph interactively in the terminal.

Keys:
  arrows      move focus to the nearest node in that direction
  tab/shift+tab  cycle focus through all nodes
  home/end    jump to the first/last node
  enter/space select the focused node
  esc         clear selection, then focus
  p           toggle pathfinding mode (click two nodes to trace a path)
  /           search labels; enter commits, n jumps to the next match
  1-4         switch layout algorithm (force, cluster, hierarchy, radial)
  q           quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd.Context(), args[0], *configPath, algorithm, noCache)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "initial layout algorithm")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable snapshot caching")

	return cmd
}

func runExplore(ctx context.Context, input, configPath, algorithm string, noCache bool) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if algorithm == "" {
		algorithm = cfg.Layout.Algorithm
	}

	store := newStore(ctx, logger, cfg.Cache, noCache)
	defer store.Close()

	snap, err := source.NewLoader(store, cfg.Cache.TTL.Duration, logger).Load(ctx, input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}
	if len(snap.Nodes) == 0 {
		printInfo("Snapshot is empty, nothing to explore")
		return nil
	}

	opts := layoutOptions(cfg, 0, 0, logger)
	result := layout.Compute(snap, algorithm, opts)
	st := view.New(snap, result, logger)

	model := newExploreModel(st, opts)
	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
