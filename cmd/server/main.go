package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agrigo/equipment-rental/internal/config"
	"github.com/agrigo/equipment-rental/internal/database"
	"github.com/agrigo/equipment-rental/internal/handler"
	"github.com/agrigo/equipment-rental/internal/metrics"
	"github.com/agrigo/equipment-rental/internal/middleware"
	"github.com/agrigo/equipment-rental/internal/queue"
	"github.com/agrigo/equipment-rental/internal/repository"
	"github.com/agrigo/equipment-rental/internal/router"
	"github.com/agrigo/equipment-rental/internal/service"
)

func main() {
	// .env is a local convenience; absence is fine in containers.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer db.Close()

	migrateURL := database.MigrateURL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err := database.RunMigrations(migrateURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	users := repository.NewUserRepo(db)
	resources := repository.NewResourceRepo(db)
	bookings := repository.NewBookingRepo(db)
	chat := repository.NewChatRepo(db)

	var events handler.EventPublisher
	if cfg.AMQPURL != "" {
		events = service.NewPublisher(cfg.AMQPURL, collector)
		go func() {
			if err := queue.StartEventConsumer(cfg.AMQPURL); err != nil {
				log.Printf("event consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(collector.Middleware())
	e.Use(middleware.Identity(cfg.JWTSecret, cfg.AuthRequired))

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting falls back to in-process, caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e, router.Handlers{
		Users:     handler.NewUserHandler(users),
		Resources: handler.NewResourceHandler(resources, users, bookings, events),
		Bookings:  handler.NewBookingHandler(bookings, resources, events),
		Chat:      handler.NewChatHandler(chat, bookings),
		Recommend: &handler.RecommendHandler{},
	}, cfg.AuthRequired)
	router.RegisterMetrics(e, registry)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
