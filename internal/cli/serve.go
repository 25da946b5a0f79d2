package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mlorenzen/decklog/internal/server"
	"github.com/mlorenzen/decklog/pkg/config"
	"github.com/mlorenzen/decklog/pkg/graph"
	"github.com/mlorenzen/decklog/pkg/source"
)

// newServeCmd creates the serve command exposing the layout engine over
// HTTP.
func newServeCmd(configPath *string) *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [snapshot.json|url]",
		Short: "Serve layouts over HTTP for the dashboard",
		Long: `Serve layouts over HTTP for the dashboard.

Endpoints:
  GET /healthz                      liveness probe
  GET /api/graph                    current snapshot
  GET /api/algorithms               selectable layout algorithms
  GET /api/layout?algorithm=force   computed render contract

The snapshot source is re-read per request through the cache, so updates on
the source side show up after the cache TTL without a restart.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), args[0], *configPath, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8135)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable snapshot caching")

	return cmd
}

func runServe(ctx context.Context, input, configPath, addr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	store := newStore(ctx, logger, cfg.Cache, noCache)
	defer store.Close()

	loader := source.NewLoader(store, cfg.Cache.TTL.Duration, logger)
	snapshot := func(ctx context.Context) (*graph.Snapshot, error) {
		return loader.Load(ctx, input)
	}

	srv := server.New(snapshot, layoutOptions(cfg, 0, 0, logger), logger)
	return srv.ListenAndServe(ctx, addr)
}
