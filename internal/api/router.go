package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"validocs/internal/api/handlers"
	"validocs/pkg/config"
)

func SetupRouter(validationHandler *handlers.ValidationHandler, serverCfg *config.ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		// Multi-document Base64 payloads get large
		BodyLimit:    100 * 1024 * 1024,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	app.Get("/health", validationHandler.Health)

	api := app.Group("/api/v1")
	api.Post("/validaciones", validationHandler.ValidateApplication)

	return app
}
