package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pulsecheck/internal/app"
	"pulsecheck/internal/cache"
	"pulsecheck/internal/catalog"
	"pulsecheck/internal/config"
	"pulsecheck/internal/repository"
	"pulsecheck/internal/service"
)

func newSeedCmd() *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "seed FILE",
		Short: "Upsert a YAML catalog into MongoDB",
		Long:  "Validate FILE and upsert its items into the items collection. Connection settings come from the server's environment (MONGO_URI, MONGO_DB, REDIS_URI).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			if !includeInactive {
				items = catalog.Active(items)
			}
			if len(items) == 0 {
				return fmt.Errorf("%s: no items to seed", args[0])
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := commandLogger(cfg)
			defer logger.Sync()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			mongoClient, err := app.ConnectMongo(ctx, cfg.Mongo)
			if err != nil {
				return err
			}
			defer mongoClient.Disconnect(context.Background())

			// A missing Redis only means the cached catalog lives out its TTL.
			var catalogCache cache.CatalogCache
			if rdb, err := app.ConnectRedis(ctx, cfg.Redis); err != nil {
				logger.Warn("redis unavailable, catalog cache not invalidated", zap.Error(err))
			} else {
				defer rdb.Close()
				catalogCache = cache.NewCatalogCache(rdb, cfg.Selection.CatalogCacheTTL)
			}

			svc := service.NewCatalogService(
				repository.NewItemRepo(mongoClient.Database(cfg.Mongo.Database)),
				catalogCache,
				logger,
			)
			n, err := svc.Import(ctx, items)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"ok":       true,
				"imported": n,
				"database": cfg.Mongo.Database,
			})
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "include-inactive", true, "Also write items marked inactive (stored with active=false)")
	return cmd
}
