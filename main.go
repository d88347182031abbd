package main

import (
	"context"
	"log"
	"time"

	"cinema_retail/backend"
	"cinema_retail/cart"
	"cinema_retail/config"
	"cinema_retail/handler"
	"cinema_retail/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func newRedisClient() *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Không kết nối được Redis (%v), tắt rate limit", err)
		return nil
	}
	return rdb
}

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	cartStore := cart.NewStore()
	handler.Init(backend.New(), cartStore)

	if err := cartStore.StartSweeper(cart.DefaultIdleTTL); err != nil {
		log.Fatal(err)
	}
	defer cartStore.StopSweeper()

	router.SetupRoutes(app, newRedisClient())

	log.Fatal(app.Listen(":" + config.ConfigOr("PORT", "8003")))
}
