package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/servineo/backend/internal/adapters/cache"
	"github.com/servineo/backend/internal/adapters/database"
	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/api/handlers"
	"github.com/servineo/backend/internal/api/routes"
	"github.com/servineo/backend/internal/application/services"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	"github.com/servineo/backend/internal/infrastructure/clients/redis"
	"github.com/servineo/backend/internal/infrastructure/observability"
	"github.com/servineo/backend/pkg/config"
)

// repos bundles one repository per collection, regardless of backend.
type repos struct {
	users         repositories.UserRepository
	services      repositories.ServiceRepository
	contracts     repositories.ContractRepository
	notifications repositories.NotificationRepository
	reviews       repositories.ReviewRepository
	questions     repositories.QuestionRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry is optional; the server runs fine without it.
	var metrics *observability.Metrics
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shCancel()
				if err := shutdown(shCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			metrics, err = observability.InitMetrics()
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize metrics")
			}
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	r, cleanup, err := buildRepos(ctx, cfg, metrics)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store backend")
	}
	defer cleanup()
	log.Info().Str("backend", cfg.Store.Backend).Msg("store backend initialized")

	userService := services.NewUserService(r.users, r.services)
	catalogService := services.NewCatalogService(r.services)
	contractService := services.NewContractService(r.contracts, r.services, r.users, r.notifications)
	notificationService := services.NewNotificationService(r.notifications)
	reviewService := services.NewReviewService(r.reviews, r.services, r.contracts)
	questionService := services.NewQuestionService(r.questions, r.services, r.users, r.notifications)

	router := routes.NewRouter(
		handlers.NewAuthHandler(userService),
		handlers.NewUserHandler(userService),
		handlers.NewServiceHandler(catalogService),
		handlers.NewContractHandler(contractService),
		handlers.NewNotificationHandler(notificationService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewQuestionHandler(questionService),
		metrics,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	if err := server.Shutdown(shCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildRepos selects the store backend and returns the repository set
// plus a cleanup function for whatever clients were opened.
func buildRepos(ctx context.Context, cfg *config.Config, metrics *observability.Metrics) (*repos, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendJSON:
		store, err := jsonstore.Open(cfg.Store.JSONPath)
		if err != nil {
			return nil, nil, err
		}
		return &repos{
			users:         jsonstore.NewUserStore(store),
			services:      jsonstore.NewServiceStore(store),
			contracts:     jsonstore.NewContractStore(store),
			notifications: jsonstore.NewNotificationStore(store),
			reviews:       jsonstore.NewReviewStore(store),
			questions:     jsonstore.NewQuestionStore(store),
		}, func() {}, nil

	case config.BackendPostgres:
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx, pgClient); err != nil {
			pgClient.Close()
			return nil, nil, err
		}

		serviceRepo := database.NewServiceAdapter(pgClient)
		cleanup := func() { pgClient.Close() }

		// Redis is optional; without it the catalog reads go straight
		// to Postgres.
		if redisClient, err := redis.NewClient(&cfg.Redis); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		} else {
			serviceRepo = database.NewCachedServiceAdapter(serviceRepo, cache.NewRedisAdapter(redisClient), metrics)
			cleanup = func() {
				redisClient.Close()
				pgClient.Close()
			}
			log.Info().Msg("catalog reads cached via redis")
		}

		return &repos{
			users:         database.NewUserAdapter(pgClient),
			services:      serviceRepo,
			contracts:     database.NewContractAdapter(pgClient),
			notifications: database.NewNotificationAdapter(pgClient),
			reviews:       database.NewReviewAdapter(pgClient),
			questions:     database.NewQuestionAdapter(pgClient),
		}, cleanup, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
