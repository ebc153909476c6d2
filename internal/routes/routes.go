// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/handlers"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/middleware"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/models"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/repositories/cache"
	"github.com/Rizan-Swivel/prod-qpon-auth-service/internal/services/merchant"

	"github.com/gofiber/fiber/v2"
)

// Deps are the services the routes are built from.
type Deps struct {
	Merchant     *merchant.Service
	JWTSecret    string
	HealthChecks map[string]handlers.HealthCheck
	Cache        *cache.CacheService
}

// SetupRoutes configures all application routes under /api/v1.
// Fiber matches in registration order, so literal segments such as
// "contact" are registered before the parameter routes they would shadow.
func SetupRoutes(app *fiber.App, deps Deps) {
	auth := middleware.NewAuthMiddleware(deps.JWTSecret)
	merchantHandler := handlers.NewMerchantHandler(deps.Merchant)
	adminHandler := handlers.NewAdminHandler(deps.Merchant)
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks, deps.Cache)

	api := app.Group("/api/v1")

	// Public routes
	api.Get("/health", healthHandler.Check)
	api.Post("/users/:roleType/register", merchantHandler.Register)

	// Owner routes
	users := api.Group("/users", auth.Handler)
	users.Get("/contact/merchant/:ownerId", middleware.HasPermission(models.PermissionProfileRead), merchantHandler.GetLatestContact)
	users.Get("/contact/:contactId", middleware.HasPermission(models.PermissionProfileRead), merchantHandler.GetContact)
	users.Put("/:roleType/business", middleware.HasPermission(models.PermissionProfileWrite), merchantHandler.SubmitBusiness)
	users.Put("/:roleType/contact", middleware.HasPermission(models.PermissionProfileWrite), merchantHandler.SubmitContact)
	users.Get("/:roleType/business/merchant/:ownerId/approved", merchantHandler.GetApprovedBusiness)
	users.Get("/:roleType/business/merchant/:ownerId", merchantHandler.GetLatestBusiness)
	users.Get("/:roleType/business/:businessId", merchantHandler.GetBusiness)
	users.Get("/:roleType/login-profile/:ownerId", merchantHandler.LoginProfile)
	users.Get("/:roleType/validate/:ownerId", merchantHandler.ValidateOwner)
	users.Post("/:roleType/bulk", merchantHandler.BulkApproved)
	users.Get("/:roleType/search/:page/:size/:searchTerm", merchantHandler.Search)
	users.Get("/:ownerId/active", merchantHandler.IsActive)
	users.Get("/:roleType/:ownerId", merchantHandler.OwnerSummary)

	// Admin routes
	admin := api.Group("/admin", auth.Handler, middleware.AdminAuthMiddleware)
	admin.Get("/cache/stats", healthHandler.CacheStats)
	admin.Get("/summary", adminHandler.TodaySummary)
	admin.Get("/users/merchants/active-count", adminHandler.ActiveMerchantCount)
	admin.Get("/users/banks/active-count", adminHandler.ActiveBankCount)
	admin.Put("/users/contact/decision", middleware.HasPermission(models.PermissionApprovalDecide), adminHandler.DecideContact)
	admin.Put("/users/:roleType/business/decision", middleware.HasPermission(models.PermissionApprovalDecide), adminHandler.DecideBusiness)
	admin.Put("/users/:accountId/decision", middleware.HasPermission(models.PermissionApprovalDecide), adminHandler.DecideAccount)
	admin.Get("/users/:roleType/business/pending/:page/:size/:searchTerm", adminHandler.PendingBusinesses)
	admin.Get("/users/:roleType/contact/pending/:page/:size/:searchTerm", adminHandler.PendingContacts)
	admin.Get("/users/:roleType/pending/:page/:size/:searchTerm", adminHandler.PendingAccounts)
}
