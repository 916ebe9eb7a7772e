package server

import (
	"log-journal-system/internal/handler"
	"log-journal-system/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// formOverhead is the room left in the request body for the text fields
// and multipart framing around a maximum-size upload.
const formOverhead = 1 << 20

type Options struct {
	PublicDir      string
	UploadDir      string
	MaxUploadBytes int64
	AccessLog      bool
}

// New builds the fiber app serving the log API, uploaded media and the
// static front end.
func New(opts Options, logs *handler.LogHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    int(opts.MaxUploadBytes + formOverhead),
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api", middleware.NoStore())
	api.Get("/logs", logs.HandleListLogs)
	api.Post("/logs", logs.HandleCreateLog)
	api.Delete("/logs/:id", logs.HandleDeleteLog)

	if opts.UploadDir != "" {
		app.Static("/uploads", opts.UploadDir)
	}
	if opts.PublicDir != "" {
		app.Static("/", opts.PublicDir)
	}

	return app
}
