package handlers

import (
	"fyyur/internal/app"
	"fyyur/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	router.Use(app.Middleware.TraceID())

	HealthHandler(router, app.Config)
	router.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	NewVenueHandler(*app, router).Register()
	NewArtistHandler(*app, router).Register()
	NewShowHandler(*app, router).Register()

	return nil
}
