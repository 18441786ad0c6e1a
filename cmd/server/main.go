package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	admissionshandler "careerhub/internal/admissions/handler"
	admissionsmetrics "careerhub/internal/admissions/metrics"
	admissionsservice "careerhub/internal/admissions/service"
	admissionsstore "careerhub/internal/admissions/store"
	"careerhub/internal/admissions/store/admission"
	"careerhub/internal/admissions/store/application"
	directoryhandler "careerhub/internal/directory/handler"
	directorymetrics "careerhub/internal/directory/metrics"
	directoryservice "careerhub/internal/directory/service"
	directorystore "careerhub/internal/directory/store"
	"careerhub/internal/identity/account"
	identityhandler "careerhub/internal/identity/handler"
	identitymetrics "careerhub/internal/identity/metrics"
	identityservice "careerhub/internal/identity/service"
	identitystore "careerhub/internal/identity/store"
	"careerhub/internal/identity/tokens"
	"careerhub/internal/notify"
	"careerhub/internal/platform/config"
	"careerhub/internal/platform/httpserver"
	"careerhub/internal/platform/logger"
	platformmetrics "careerhub/internal/platform/metrics"
	"careerhub/internal/platform/middleware"
	"careerhub/internal/platform/postgres"
	platformredis "careerhub/internal/platform/redis"
	recruitinghandler "careerhub/internal/recruiting/handler"
	recruitingmetrics "careerhub/internal/recruiting/metrics"
	recruitingservice "careerhub/internal/recruiting/service"
	recruitingstore "careerhub/internal/recruiting/store"
	"careerhub/internal/recruiting/store/applicant"
	"careerhub/internal/recruiting/store/feed"
	"careerhub/internal/recruiting/store/job"
	"careerhub/internal/recruiting/store/jobapp"
)

// main wires stores, services, and transport together. Business logic lives
// in the internal service packages; everything here is composition.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(cfg.PostgresURL)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		log.Info("postgres connected")
	} else {
		log.Info("postgres not configured, using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("redis connected")
	}

	group, ctx := errgroup.WithContext(ctx)

	publisher, cleanup := buildPublisher(ctx, cfg, log, group)
	if cleanup != nil {
		defer cleanup()
	}

	// Directory first: it backs both the recruiting student lookups and the
	// identity registry.
	directorySvc, err := directoryservice.New(newDirectoryStore(db),
		directoryservice.WithLogger(log),
		directoryservice.WithMetrics(directorymetrics.New()),
	)
	if err != nil {
		return err
	}

	admissionsSvc, err := admissionsservice.New(
		newApplicationStore(db),
		newAdmissionStore(db),
		admissionsservice.WithLogger(log),
		admissionsservice.WithPublisher(publisher),
		admissionsservice.WithMetrics(admissionsmetrics.New()),
	)
	if err != nil {
		return err
	}

	recruitingSvc, err := recruitingservice.New(
		newJobStore(db),
		newApplicantStore(db),
		newJobApplicationStore(db),
		newFeedStore(redisClient),
		directorySvc,
		recruitingservice.WithLogger(log),
		recruitingservice.WithPublisher(publisher),
		recruitingservice.WithMetrics(recruitingmetrics.New()),
	)
	if err != nil {
		return err
	}

	tokenIssuer, err := tokens.NewIssuer([]byte(cfg.JWTSigningKey), 24*time.Hour)
	if err != nil {
		return err
	}

	identitySvc, err := identityservice.New(
		account.NewInMemory(),
		newUserStore(db),
		directorySvc,
		tokenIssuer,
		identityservice.WithLogger(log),
		identityservice.WithPublisher(publisher),
		identityservice.WithMetrics(identitymetrics.New()),
	)
	if err != nil {
		return err
	}

	router := newRouter(cfg, log,
		admissionshandler.New(admissionsSvc, log),
		recruitinghandler.New(recruitingSvc, log),
		directoryhandler.New(directorySvc, log),
		identityhandler.New(identitySvc, log),
		tokenIssuer,
	)

	srv := httpserver.New(cfg.Addr, router)

	group.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		return httpserver.Shutdown(srv)
	})

	err = group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newRouter(cfg config.Server, log *slog.Logger,
	admissionsH *admissionshandler.Handler,
	recruitingH *recruitinghandler.Handler,
	directoryH *directoryhandler.Handler,
	identityH *identityhandler.Handler,
	validator middleware.TokenValidator,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.Latency(platformmetrics.New()))

	r.Route("/api", func(api chi.Router) {
		admissionsH.Register(api)
		recruitingH.Register(api)
		directoryH.Register(api)
		identityH.RegisterAuth(api)

		api.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdminToken(cfg.AdminToken, log))
			identityH.RegisterAdmin(admin)
		})

		api.Group(func(session chi.Router) {
			session.Use(middleware.RequireAuth(validator, log))
			identityH.RegisterSession(session)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

// buildPublisher picks the notification transport: Kafka when brokers are
// configured, otherwise an in-process worker delivering over SMTP. With
// neither configured notifications are disabled and services skip emitting.
func buildPublisher(ctx context.Context, cfg config.Server, log *slog.Logger, group *errgroup.Group) (notify.Publisher, func()) {
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.NotificationTopic, log)
		if err != nil {
			log.Warn("kafka publisher unavailable, notifications disabled", "error", err)
			return nil, nil
		}
		log.Info("notifications via kafka", "topic", cfg.NotificationTopic)
		cleanup := func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := kafka.Close(flushCtx); err != nil {
				log.Warn("kafka publisher close failed", "error", err)
			}
		}
		return kafka, cleanup
	}

	if cfg.SMTP.Host == "" {
		log.Info("notifications disabled, no kafka brokers or smtp host configured")
		return nil, nil
	}

	channel := notify.NewChannelPublisher(cfg.NotificationBufferSize)
	worker := notify.NewWorker(notify.NewSMTP(cfg.SMTP), channel.Inbox(), log, cfg.NotificationRetries)
	group.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	log.Info("notifications via smtp worker", "host", cfg.SMTP.Host)
	return channel, nil
}

func newDirectoryStore(db *sql.DB) directorystore.Store {
	if db != nil {
		return directorystore.NewPostgres(db)
	}
	return directorystore.NewInMemory()
}

func newApplicationStore(db *sql.DB) admissionsstore.ApplicationStore {
	if db != nil {
		return application.NewPostgres(db)
	}
	return application.NewInMemory()
}

func newAdmissionStore(db *sql.DB) admissionsstore.AdmissionStore {
	if db != nil {
		return admission.NewPostgres(db)
	}
	return admission.NewInMemory()
}

func newJobStore(db *sql.DB) recruitingstore.JobStore {
	if db != nil {
		return job.NewPostgres(db)
	}
	return job.NewInMemory()
}

func newApplicantStore(db *sql.DB) recruitingstore.ApplicantStore {
	if db != nil {
		return applicant.NewPostgres(db)
	}
	return applicant.NewInMemory()
}

func newJobApplicationStore(db *sql.DB) recruitingstore.JobApplicationStore {
	if db != nil {
		return jobapp.NewPostgres(db)
	}
	return jobapp.NewInMemory()
}

func newFeedStore(redisClient *platformredis.Client) recruitingstore.FeedStore {
	if redisClient != nil {
		return feed.NewRedis(redisClient)
	}
	return feed.NewInMemory()
}

func newUserStore(db *sql.DB) identitystore.UserStore {
	if db != nil {
		return identitystore.NewPostgres(db)
	}
	return identitystore.NewInMemory()
}
