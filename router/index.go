package router

import (
	"time"

	"cinema_retail/handler"
	"cinema_retail/middleware"
	"cinema_retail/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
)

func SetupRoutes(app *fiber.App, rdb *redis.Client) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	v1.Post("/session", middleware.RateLimit(rdb, 30, time.Minute), handler.StartSession)

	schedule := v1.Group("/schedules", logger.New())
	schedule.Get("/", handler.GetSchedules)
	schedule.Post("/select", middleware.SessionProtected(), validate.SelectSchedule(), handler.SelectSchedule)

	seats := v1.Group("/seats", logger.New(), middleware.SessionProtected())
	seats.Get("/", handler.GetSeatMap)
	seats.Post("/toggle", middleware.RateLimit(rdb, 120, time.Minute), validate.ToggleSeat(), handler.ToggleSeat)

	cart := v1.Group("/cart", logger.New(), middleware.SessionProtected())
	cart.Get("/", handler.GetCart)
	cart.Post("/discount", validate.ApplyDiscount(), handler.ApplyDiscount)
	cart.Delete("/discount", handler.RemoveDiscount)
	cart.Delete("/", handler.ClearCart)

	checkoutGroup := v1.Group("/checkout", logger.New(), middleware.SessionProtected())
	checkoutGroup.Post("/", middleware.RateLimit(rdb, 10, time.Minute), validate.Checkout(), handler.Checkout)
	checkoutGroup.Post("/outcome", validate.PaymentOutcome(), handler.PaymentOutcome)

	orders := v1.Group("/orders", logger.New(), middleware.SessionProtected())
	orders.Get("/:orderId", handler.GetInvoice)
	orders.Post("/:orderId/pay", handler.ResumePayment)
	orders.Post("/:orderId/cancel", handler.CancelOrder)

	staff := v1.Group("/staff", logger.New(), middleware.SessionProtected())
	staff.Post("/orders", validate.CounterOrder(), handler.CreateCounterOrder)
}
