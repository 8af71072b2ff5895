// @title CourseHub Backend API
// @version 1.0
// @description Course marketplace API: accounts, catalogue, enrollment and contact form
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "COURSEHUB_BACK-END/docs" // This is required for swagger
	"COURSEHUB_BACK-END/internal/cache"
	"COURSEHUB_BACK-END/internal/config"
	"COURSEHUB_BACK-END/internal/events"
	"COURSEHUB_BACK-END/internal/handlers"
	"COURSEHUB_BACK-END/internal/metrics"
	"COURSEHUB_BACK-END/internal/middleware"
	"COURSEHUB_BACK-END/internal/routes"
	"COURSEHUB_BACK-END/internal/service"
	"COURSEHUB_BACK-END/internal/storage"
	"COURSEHUB_BACK-END/internal/storage/cached"
	"COURSEHUB_BACK-END/internal/storage/memory"
	"COURSEHUB_BACK-END/internal/storage/seed"
	"COURSEHUB_BACK-END/internal/storage/sqlstore"
	"COURSEHUB_BACK-END/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open storage")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("close storage")
		}
	}()

	if cfg.Storage.Seed {
		if err := seedCatalogue(ctx, store, cfg.Storage.SeedFile); err != nil {
			log.Fatal().Err(err).Msg("seed courses")
		}
	}

	checks := map[string]handlers.Pinger{"storage": store}
	if cfg.IsCacheConfigured() {
		rc, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			Namespace: "coursehub",
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
		}
		store = cached.New(store, rc, cfg.Redis.TTL)
		checks["cache"] = rc
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("course cache enabled")
	} else if cfg.Storage.Driver != config.DriverMemory {
		store = cached.New(store, cache.NewMemory(), cfg.Redis.TTL)
	}

	var publisher events.Publisher
	if cfg.IsKafkaConfigured() {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publishing events to kafka")
	} else {
		publisher = events.NewLogPublisher(log.Logger)
	}
	defer publisher.Close()

	var notifier service.Notifier
	if cfg.IsEmailConfigured() {
		notifier = utils.NewEmailService(&cfg.Email)
	}

	m := metrics.New("coursehub")

	// --- HTTP Handlers ---
	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(service.NewAuthService(store), &cfg.JWT, m),
		Courses:      handlers.NewCourseHandler(service.NewCourseService(store)),
		Registration: handlers.NewRegistrationHandler(service.NewRegistrationService(store, publisher, notifier), &cfg.JWT, m),
		Contact:      handlers.NewContactHandler(service.NewContactService(store, notifier), m),
		Health:       handlers.NewHealthHandler(checks),
	}

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, h, &cfg.JWT, middleware.NewRateLimiter(cfg.RateLimit), m)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(routes.Wrap(mux, m)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage.Driver).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "coursehub").Logger()
	}
	zerolog.DefaultContextLogger = &log.Logger
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		return memory.New(), nil
	}
	s, err := sqlstore.Open(ctx, cfg.Storage.Driver, cfg.Database)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func seedCatalogue(ctx context.Context, store storage.Storage, file string) error {
	courses, err := seed.DefaultCourses()
	if file != "" {
		courses, err = seed.LoadFile(file)
	}
	if err != nil {
		return err
	}
	_, err = seed.Courses(ctx, store, courses)
	return err
}
