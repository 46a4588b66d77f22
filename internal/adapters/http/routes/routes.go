package routes

import (
	"hmc-messhub/internal/adapters/http/handlers"
	"hmc-messhub/internal/adapters/http/middleware"
	"hmc-messhub/internal/adapters/persistence/repositories"
	"hmc-messhub/internal/config"
	"hmc-messhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	allowedEmailRepo := repositories.NewAllowedEmailRepository(db)
	hostelRepo := repositories.NewHostelRepository(db)
	rebateRepo := repositories.NewRebateRepository(db)
	extrasRepo := repositories.NewExtrasRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	pollRepo := repositories.NewPollRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, allowedEmailRepo, cfg)
	userService := services.NewUserService(userRepo)
	hostelService := services.NewHostelService(hostelRepo)
	allowedEmailService := services.NewAllowedEmailService(allowedEmailRepo, hostelRepo)
	rebateService := services.NewRebateService(rebateRepo, userRepo, cfg.Mess.RebateAutoApprove)
	extrasService := services.NewExtrasService(extrasRepo, userRepo)
	billingService := services.NewBillingService(userRepo, hostelRepo, rebateService, extrasService)
	menuService := services.NewMenuService(menuRepo)
	pollService := services.NewPollService(pollRepo, menuRepo)
	forumService := services.NewForumService(db)
	notificationService := services.NewNotificationService(db)
	dashboardService := services.NewDashboardService(db, billingService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	hostelHandler := handlers.NewHostelHandler(hostelService)
	allowedEmailHandler := handlers.NewAllowedEmailHandler(allowedEmailService)
	rebateHandler := handlers.NewRebateHandler(rebateService)
	extrasHandler := handlers.NewExtrasHandler(extrasService)
	billingHandler := handlers.NewBillingHandler(billingService)
	menuHandler := handlers.NewMenuHandler(menuService)
	pollHandler := handlers.NewPollHandler(pollService)
	forumHandler := handlers.NewForumHandler(forumService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public + protected)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// Hostel routes
	hostelRoutes := apiV1.Group("/hostels")
	hostelRoutes.Use(middleware.AuthMiddleware(cfg))
	setupHostelRoutes(hostelRoutes, hostelHandler)

	// Allowlist routes (Admin only)
	allowlistRoutes := apiV1.Group("/allowed-emails")
	allowlistRoutes.Use(middleware.AuthMiddleware(cfg))
	allowlistRoutes.Use(middleware.AdminOnly())
	setupAllowlistRoutes(allowlistRoutes, allowedEmailHandler)

	// Rebate routes
	rebateRoutes := apiV1.Group("/rebates")
	rebateRoutes.Use(middleware.AuthMiddleware(cfg))
	setupRebateRoutes(rebateRoutes, rebateHandler)

	// Extras billing routes
	extrasRoutes := apiV1.Group("/extras")
	extrasRoutes.Use(middleware.AuthMiddleware(cfg))
	setupExtrasRoutes(extrasRoutes, extrasHandler)

	// Billing routes
	billingRoutes := apiV1.Group("/billing")
	billingRoutes.Use(middleware.AuthMiddleware(cfg))
	setupBillingRoutes(billingRoutes, billingHandler)

	// Menu routes
	menuRoutes := apiV1.Group("/menu")
	menuRoutes.Use(middleware.AuthMiddleware(cfg))
	setupMenuRoutes(menuRoutes, menuHandler)

	// Poll routes
	pollRoutes := apiV1.Group("/polls")
	pollRoutes.Use(middleware.AuthMiddleware(cfg))
	setupPollRoutes(pollRoutes, pollHandler)

	// Forum routes
	forumRoutes := apiV1.Group("/forum")
	forumRoutes.Use(middleware.AuthMiddleware(cfg))
	setupForumRoutes(forumRoutes, forumHandler)

	// Notification routes
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupNotificationRoutes(notificationRoutes, notificationHandler)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", dashboardHandler.Get)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate-limited against brute force)
	router.Post("/signup", middleware.AuthRateLimiter(), handler.Signup)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	// Self-service
	router.Get("/profile", handler.GetProfile)
	router.Put("/profile", handler.UpdateProfile)

	// Staff
	router.Get("/", middleware.StaffOnly(), handler.ListUsers)
	router.Patch("/:id/block", middleware.MHMCOrAdmin(), handler.SetBlocked)

	// Admin
	router.Patch("/:id/role", middleware.AdminOnly(), handler.SetRole)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteUser)
}

// setupHostelRoutes configures hostel routes
func setupHostelRoutes(router fiber.Router, handler *handlers.HostelHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)

	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Put("/:id", middleware.AdminOnly(), handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupAllowlistRoutes configures signup allowlist routes (Admin only)
func setupAllowlistRoutes(router fiber.Router, handler *handlers.AllowedEmailHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Add)
	router.Post("/import", handler.Import)
	router.Delete("/:id", handler.Delete)
}

// setupRebateRoutes configures rebate routes
func setupRebateRoutes(router fiber.Router, handler *handlers.RebateHandler) {
	router.Post("/", handler.File)
	router.Get("/my", handler.ListMine)

	router.Get("/", middleware.StaffOnly(), handler.List)
	router.Patch("/:id/status", middleware.MHMCOrAdmin(), handler.UpdateStatus)
	router.Delete("/:id", middleware.StaffOnly(), handler.Remove)
}

// setupExtrasRoutes configures extras billing routes
func setupExtrasRoutes(router fiber.Router, handler *handlers.ExtrasHandler) {
	router.Get("/my", handler.ListMine)

	router.Post("/bill", middleware.StaffOnly(), handler.Bill)
	router.Get("/recent", middleware.StaffOnly(), handler.Recent)
}

// setupBillingRoutes configures billing routes
func setupBillingRoutes(router fiber.Router, handler *handlers.BillingHandler) {
	router.Use(middleware.NoCacheHeaders())
	router.Get("/my", handler.MyBill)
	router.Post("/pay", handler.Pay)

	router.Get("/users/:id", middleware.StaffOnly(), handler.UserBill)
}

// setupMenuRoutes configures menu routes
func setupMenuRoutes(router fiber.Router, handler *handlers.MenuHandler) {
	router.Get("/:hostel_id", middleware.MenuCache(), handler.Week)
	router.Get("/:hostel_id/slot", middleware.MenuCache(), handler.Slot)

	router.Put("/", middleware.MHMCOrAdmin(), handler.SetSlot)
}

// setupPollRoutes configures poll routes
func setupPollRoutes(router fiber.Router, handler *handlers.PollHandler) {
	router.Get("/hostel/:hostel_id", handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/:id/vote", handler.Vote)

	router.Post("/", middleware.MHMCOrAdmin(), handler.Create)
	router.Post("/:id/close", middleware.MHMCOrAdmin(), handler.Close)
}

// setupForumRoutes configures forum routes
func setupForumRoutes(router fiber.Router, handler *handlers.ForumHandler) {
	router.Post("/posts", handler.CreatePost)
	router.Get("/posts/:id", handler.GetPost)
	router.Delete("/posts/:id", handler.DeletePost)
	router.Post("/posts/:id/comments", handler.AddComment)
	router.Delete("/comments/:id", handler.DeleteComment)
	router.Get("/hostel/:hostel_id", handler.ListPosts)
}

// setupNotificationRoutes configures notification routes
func setupNotificationRoutes(router fiber.Router, handler *handlers.NotificationHandler) {
	router.Get("/", handler.List)

	router.Post("/", middleware.MHMCOrAdmin(), handler.Create)
	router.Delete("/:id", middleware.MHMCOrAdmin(), handler.Delete)
}
