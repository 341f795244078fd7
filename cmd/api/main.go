package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"cmsapi/internal/backup"
	"cmsapi/internal/config"
	"cmsapi/internal/database"
	"cmsapi/internal/files"
	handlers "cmsapi/internal/http/handler"
	"cmsapi/internal/http/middleware"
	"cmsapi/internal/model"
	"cmsapi/internal/otel"
	"cmsapi/internal/repository"
	"cmsapi/internal/service"
	"cmsapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer client.Disconnect(context.Background())

	store, err := newStorage(cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize storage")
	}

	fileSvc := files.NewService(store, log)
	resolver := &files.Resolver{BaseURL: cfg.Storage.BaseURL}

	users := db.Collection("users")
	svc := service.Registry{
		Files: fileSvc,
		Auth:  service.NewAuthService(client, users, cfg.Auth, log),
		Users: service.NewUserService(
			repository.NewRecords[model.User](users, "user"), fileSvc, resolver, cfg.Auth, log),
		Blogs: service.NewBlogService(
			repository.NewRecords[model.Blog](db.Collection("blogs"), "blog"), fileSvc, resolver, log),
		Galleries: service.NewGalleryService(
			repository.NewRecords[model.Gallery](db.Collection("galleries"), "gallery"), fileSvc, resolver, log),
		Interviews: service.NewInterviewService(
			repository.NewRecords[model.Interview](db.Collection("interviews"), "interview"), fileSvc, resolver, log),
		Media: service.NewMediaService(
			repository.NewRecords[model.Media](db.Collection("media"), "media"), fileSvc, resolver, log),
		Magazines: service.NewMagazineService(
			repository.NewRecords[model.Magazine](db.Collection("magazines"), "magazine"), fileSvc, resolver, log),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    32 * 1024 * 1024,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.WithError(err).Fatal("failed to register metrics")
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if cfg.Storage.Driver == "local" {
		app.Static("/"+files.RefPrefix, cfg.Storage.Root+"/"+files.RefPrefix)
	}

	handlers.RegisterRoutes(app, handlers.NewDeps(db, cfg.Auth.JWTSecret, store, svc))

	backupRunner := backup.NewRunner([]*mongo.Collection{
		users,
		db.Collection("blogs"),
		db.Collection("galleries"),
		db.Collection("interviews"),
		db.Collection("media"),
		db.Collection("magazines"),
	}, cfg.Backup, log)
	if err := backupRunner.Start(); err != nil {
		log.WithError(err).Fatal("failed to schedule backups")
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		backupRunner.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.WithError(err).Warn("tracing shutdown failed")
		}
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

func newStorage(cfg config.StorageConfig) (storage.Storage, error) {
	if cfg.Driver == "minio" {
		return storage.NewMinIO(cfg.MinIO)
	}
	return storage.NewLocal(cfg.Root)
}
