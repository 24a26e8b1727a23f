package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/scirota/selection-api/internal/config"
	"github.com/scirota/selection-api/internal/infra/database"
	"github.com/scirota/selection-api/internal/infra/repository"
	"github.com/scirota/selection-api/internal/present/rest"
	authmiddleware "github.com/scirota/selection-api/internal/present/rest/middleware"
	"github.com/scirota/selection-api/internal/service"
	"github.com/scirota/selection-api/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()
	if env := os.Getenv("CONFIG"); env != "" {
		*configPath = env
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Server.EnableTrace {
		cleanup, err := setupTraceProvider(cfg.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to setup trace provider", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cleanup()
	}

	db, err := database.NewPostgres(cfg.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = database.MigratePostgres(db)
	if err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(cfg.Server.RedisAddr, "", cfg.Server.RedisDB)
	mc := database.NewMemcached(cfg.Server.MemcachedAddr)

	memberRepo := repository.NewMemberRepository(db, mc)
	directionRepo := repository.NewDirectionRepository(db)
	affiliationRepo := repository.NewAffiliationRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	educationRepo := repository.NewEducationRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	competenceRepo := repository.NewCompetenceRepository(db)
	workGroupRepo := repository.NewWorkGroupRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	fileRepo := repository.NewFileRepository(db)

	scorer := usecase.NewScorer(cfg.Scoring)
	scores := usecase.NewScoreUpdater(applicationRepo, educationRepo, scorer)

	applicationUC := usecase.NewApplicationUsecase(
		applicationRepo,
		educationRepo,
		directionRepo,
		bookingRepo,
		workGroupRepo,
		noteRepo,
		scores,
		cfg.Selection.MaxDirections,
	)
	listUC := usecase.NewListUsecase(applicationRepo, memberRepo, educationRepo, bookingRepo, noteRepo)
	educationUC := usecase.NewEducationUsecase(applicationRepo, educationRepo, bookingRepo, scores)
	competenceUC := usecase.NewCompetenceUsecase(competenceRepo, directionRepo, applicationRepo)
	workGroupUC := usecase.NewWorkGroupUsecase(workGroupRepo, affiliationRepo)
	noteUC := usecase.NewNoteUsecase(applicationRepo, noteRepo)
	fileUC := usecase.NewFileUsecase(fileRepo, applicationRepo)
	directionUC := usecase.NewDirectionUsecase(directionRepo)

	signal := service.NewSignalService(rdb)
	bookingUC := usecase.NewBookingUsecase(applicationRepo, affiliationRepo, bookingRepo, signal)

	resolver := usecase.NewRoleResolver(memberRepo, applicationRepo, affiliationRepo)
	auth := service.NewAuthService(
		memberRepo,
		resolver,
		cfg.Auth.Secret,
		time.Duration(cfg.Auth.TokenTTLMins)*time.Minute,
	)

	handler := rest.NewHandler(
		auth,
		signal,
		applicationUC,
		listUC,
		bookingUC,
		educationUC,
		competenceUC,
		workGroupUC,
		noteUC,
		fileUC,
		directionUC,
	)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if cfg.Server.EnableTrace {
		e.Use(otelecho.Middleware("selection-api"))
	}
	e.Use(authmiddleware.NewAuthMiddleware(auth).IdentifyIdentity)

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(cfg.Server.ListenAddr))
}

func setupTraceProvider(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName("selection-api"),
		),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown tracer provider", slog.String("error", err.Error()))
		}
	}
	return cleanup, nil
}
