// Command migrate performs the one-time transfer of a legacy JSON
// snapshot into the relational backend. It is idempotent: records already
// present are left untouched and a rerun produces no duplicates.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/adapters/database"
	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/application/services"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	"github.com/servineo/backend/internal/infrastructure/observability"
	"github.com/servineo/backend/pkg/config"
)

func main() {
	var snapshotPath string
	flag.StringVar(&snapshotPath, "snapshot", "", "Path to the legacy JSON snapshot (defaults to STORE_JSON_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.InitLogger("marketplace-migrate", cfg.Server.Env)

	if snapshotPath == "" {
		snapshotPath = cfg.Store.JSONPath
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	snap, err := jsonstore.LoadSnapshot(snapshotPath)
	if err != nil {
		log.Fatal().Err(err).Str("snapshot", snapshotPath).Msg("failed to load snapshot")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	if err := database.EnsureSchema(ctx, pgClient); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	importer := services.NewImportService(
		database.NewUserAdapter(pgClient),
		database.NewServiceAdapter(pgClient),
		database.NewContractAdapter(pgClient),
		database.NewNotificationAdapter(pgClient),
		database.NewReviewAdapter(pgClient),
		database.NewQuestionAdapter(pgClient),
		*observability.GetLogger(),
	)

	start := time.Now()
	summary, err := importer.Run(ctx, snap)
	if err != nil {
		log.Fatal().Err(err).Msg("import aborted")
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Interface("users", summary.Users).
		Interface("services", summary.Services).
		Interface("contracts", summary.Contracts).
		Interface("notifications", summary.Notifications).
		Interface("reviews", summary.Reviews).
		Interface("questions", summary.Questions).
		Msg("import complete")
}
