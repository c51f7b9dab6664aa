package api

import (
	"pocket-balance/docs"
	"pocket-balance/internal/api/handlers"
	"pocket-balance/pkg/config"
	"pocket-balance/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	serverCfg *config.ServerConfig,
	txHandler *handlers.TransactionHandler,
	adviceHandler *handlers.AdviceHandler,
	healthHandler *handlers.HealthHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
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
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	// Swagger; importing docs registers the spec through init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")
	api.Get("/health", healthHandler.Health)
	api.Get("/financial-data", txHandler.GetFinancialData)

	transactions := api.Group("/transactions")
	transactions.Post("", txHandler.CreateTransaction)
	transactions.Get("/:id", txHandler.GetTransaction)
	transactions.Delete("/:id", txHandler.DeleteTransaction)

	api.Post("/advice", adviceHandler.RequestAdvice)

	return app
}
