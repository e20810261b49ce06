package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"studentregistry/internal/auth"
	"studentregistry/internal/jwtauth"
	"studentregistry/internal/platform/config"
	"studentregistry/internal/platform/httpserver"
	"studentregistry/internal/platform/logger"
	platformredis "studentregistry/internal/platform/redis"
	"studentregistry/internal/registry"
	"studentregistry/internal/registry/events"
	registrymetrics "studentregistry/internal/registry/metrics"
	"studentregistry/internal/registry/service"
	ownerstore "studentregistry/internal/registry/store/owner"
	studentstore "studentregistry/internal/registry/store/student"
	"studentregistry/pkg/domain"
	authmw "studentregistry/pkg/platform/middleware/auth"
	"studentregistry/pkg/platform/middleware/metadata"
	"studentregistry/pkg/platform/middleware/requestid"
	"studentregistry/pkg/platform/middleware/requesttime"
	"studentregistry/pkg/secrets"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal/registry packages.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Durable stores when Postgres is configured, memory stores otherwise.
	var (
		students service.StudentStore
		owners   service.OwnerStore
		eventLog events.Store
	)
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}

		studentPG := studentstore.NewPostgres(db)
		ownerPG := ownerstore.NewPostgres(db)
		eventPG := events.NewPostgresStore(db)
		for _, ensure := range []func(context.Context) error{
			studentPG.EnsureSchema, ownerPG.EnsureSchema, eventPG.EnsureSchema,
		} {
			if err := ensure(ctx); err != nil {
				return err
			}
		}
		students, owners, eventLog = studentPG, ownerPG, eventPG
		log.Info("using postgres stores")
	} else {
		students, owners, eventLog = studentstore.NewInMemory(), ownerstore.NewInMemory(), events.NewInMemoryStore()
		log.Warn("no postgres configured, registry state is not durable")
	}

	// Optional Redis read-through cache for name lookups.
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		students = studentstore.NewCached(students, redisClient.Client, cfg.CacheTTL, log)
		log.Info("name lookup cache enabled")
	}

	// Event pipeline: always append to the local event log through the
	// worker; additionally produce to the broker when configured.
	inbox := make(chan events.Event, 256)
	worker := events.NewWorker(eventLog, inbox, log)
	sinks := []events.Publisher{events.NewChannelPublisher(inbox, log)}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.EventsTopic)
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer kafka.Close()
		sinks = append(sinks, kafka)
		log.Info("broker event publisher enabled", "brokers", cfg.KafkaBrokers)
	} else {
		sinks = append(sinks, events.NewLogPublisher(log))
	}

	svc, err := registry.NewService(students, owners,
		service.WithLogger(log),
		service.WithMetrics(registrymetrics.New()),
		service.WithPublisher(events.NewMultiPublisher(sinks...)),
	)
	if err != nil {
		return err
	}

	deployer, err := domain.ParsePrincipal(cfg.DeployerPrincipal)
	if err != nil {
		return fmt.Errorf("invalid deployer principal: %w", err)
	}
	if err := svc.Initialize(ctx, deployer); err != nil {
		return fmt.Errorf("initialize registry: %w", err)
	}

	secretHash := cfg.ProvisioningSecretHash
	if secretHash == "" {
		// Dev convenience: mint a one-boot secret and announce it.
		secret, err := secrets.Generate()
		if err != nil {
			return err
		}
		if secretHash, err = secrets.Hash(secret); err != nil {
			return err
		}
		log.Warn("no provisioning secret configured, generated one for this boot", "secret", secret)
	}

	jwtService := jwtauth.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	router := chi.NewRouter()
	router.Use(chimw.Recoverer)
	router.Use(requestid.Middleware)
	router.Use(requesttime.Middleware)
	router.Use(metadata.ClientMetadata)
	router.Use(authmw.ResolveCaller(jwtService, log))

	registry.NewHandler(svc, log).Register(router)
	auth.New(jwtService, secretHash, cfg.TokenTTL, log).Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting student registry", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		if err := worker.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
