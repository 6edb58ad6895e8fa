package routes

import (
	"github.com/kananfatullayev/ms-loan/internal/adapters/clients/users"
	"github.com/kananfatullayev/ms-loan/internal/adapters/http/handlers"
	"github.com/kananfatullayev/ms-loan/internal/adapters/persistence/repositories"
	"github.com/kananfatullayev/ms-loan/internal/config"
	"github.com/kananfatullayev/ms-loan/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	loanRepo := repositories.NewLoanRepository(db)

	// Outbound collaborators
	userClient := users.NewClient(cfg.UserService.BaseURL, cfg.UserService.Timeout)
	notifyService := services.NewNotificationService(cfg.Notify.WebhookURL)

	// Services
	loanService := services.NewLoanService(
		loanRepo,
		userClient,
		notifyService,
		cfg.Loan.AnnualInterestRate,
		cfg.Loan.RecomputeOnUpdate,
	)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	loanHandler := handlers.NewLoanHandler(loanService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupLoanRoutes(apiV1.Group("/loans"), loanHandler)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/user/:userId", handler.ListByUserID)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}
