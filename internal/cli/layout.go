package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlorenzen/decklog/internal/server"
	"github.com/mlorenzen/decklog/pkg/config"
	"github.com/mlorenzen/decklog/pkg/layout"
	"github.com/mlorenzen/decklog/pkg/source"
)

// newLayoutCmd creates the layout command for computing graph layouts.
func newLayoutCmd(configPath *string) *cobra.Command {
	var (
		algorithm  string
		output     string
		noCache    bool
		seed       uint64
		iterations int
	)

	cmd := &cobra.Command{
		Use:   "layout [snapshot.json|url]",
		Short: "Compute a layout for a decision graph snapshot",
		Long: `Compute a layout for a decision graph snapshot.

The layout command takes a snapshot, either a local JSON file or the
dashboard API URL, and computes node positions with the selected algorithm.
The output is
a render-contract JSON file with positions, bounding boxes, and edge styles,
ready for the dashboard to draw.

Algorithms: force (default), cluster, hierarchy, radial.

HTTP snapshots are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.Context(), args[0], *configPath, algorithm, output, noCache, seed, iterations)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "layout algorithm: force, cluster, hierarchy, radial")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, \"-\" for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable snapshot caching")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "force layout seed (0: default)")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "force simulation iterations (0: default)")

	return cmd
}

// runLayout loads the snapshot, computes the layout, and writes the render
// contract.
func runLayout(ctx context.Context, input, configPath, algorithm, output string, noCache bool, seed uint64, iterations int) error {
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

	prog := newProgress(logger)
	spinner := newSpinner(ctx, "Loading snapshot...")
	spinner.Start()
	snap, err := source.NewLoader(store, cfg.Cache.TTL.Duration, logger).Load(ctx, input)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Failed to load snapshot %s", input))
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}
	spinner.Stop()

	spinner = newSpinner(ctx, fmt.Sprintf("Computing %s layout...", algorithm))
	spinner.Start()
	result := layout.Compute(snap, algorithm, layoutOptions(cfg, seed, iterations, logger))
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Laid out %d nodes", len(result.Positions)))

	contract := server.Render(snap, result)
	data, err := json.MarshalIndent(contract, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	if output == "-" {
		fmt.Println(string(data))
		return nil
	}
	outputPath := output
	if outputPath == "" {
		if strings.Contains(input, "://") {
			outputPath = "layout.json"
		} else {
			base := strings.TrimSuffix(input, filepath.Ext(input))
			outputPath = base + ".layout.json"
		}
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(snap.Nodes), len(snap.Edges), result.Algorithm)
	printNewline()
	printNextStep("Explore", "decklog explore "+input)

	return nil
}
