package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"socialfeed/bootstrap"
	"socialfeed/cache"
	"socialfeed/configs"
	"socialfeed/database"
	"socialfeed/internal/middleware"
	"socialfeed/internal/routes"
)

func init() {
	if err := godotenv.Overload(".env"); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}

func main() {
	cfg := configs.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	defer database.DisconnectMongo(client)
	db := client.Database(cfg.DBName)

	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	redisStore, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connect failed: %v", err)
	}
	defer redisStore.Close()

	app := fiber.New()
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Use("/api", middleware.JWTAuth(cfg.JWTSecret))

	routes.Register(app, routes.Deps{
		Client:   client,
		DB:       db,
		Cache:    redisStore,
		CacheTTL: cfg.CacheTTL,
	})

	log.Printf("listening at http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
