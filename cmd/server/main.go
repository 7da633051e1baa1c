// Entry point: loads configuration, connects the backing services, wires
// the layers together and starts the HTTP server.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/oceanview/hotel-reservation/internal/config"
	"github.com/oceanview/hotel-reservation/internal/database"
	"github.com/oceanview/hotel-reservation/internal/handler"
	"github.com/oceanview/hotel-reservation/internal/middleware"
	"github.com/oceanview/hotel-reservation/internal/queue"
	"github.com/oceanview/hotel-reservation/internal/repository"
	"github.com/oceanview/hotel-reservation/internal/router"
	"github.com/oceanview/hotel-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	if err := database.SeedDefaultUsers(context.Background(), userRepo, cfg.BcryptCost); err != nil {
		log.Fatalf("seed users: %v", err)
	}

	resRepo := repository.NewReservationRepo(db)
	resSvc := service.NewReservationService(resRepo)

	authHandler := handler.NewAuthHandler(cfg, userRepo)
	resHandler := handler.NewReservationHandler(resSvc)

	// Redis is optional: without it, rate limiting and caching disable
	// themselves and every request goes straight through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response caching disabled")
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, resHandler, config.LoadCacheConfig(), rdb)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterReservations(e, resHandler, cfg.JWTSecret)

	// Consume confirmation events in the background; reconnects forever.
	go queue.StartReservationConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
