package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/joaaoazul/siganext/internal/api/handler"
	"github.com/joaaoazul/siganext/internal/api/middleware"
	"github.com/joaaoazul/siganext/internal/core/domain"
	"github.com/joaaoazul/siganext/internal/core/ports"
	"github.com/joaaoazul/siganext/internal/core/service"
	"github.com/joaaoazul/siganext/internal/core/token"
	"github.com/joaaoazul/siganext/internal/infrastructure/config"
	mongorepo "github.com/joaaoazul/siganext/internal/infrastructure/db/mongo"
	redisrepo "github.com/joaaoazul/siganext/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with every repository, service and route
// registered. ctx bounds the background goroutines the router spawns (rate
// limiter sweeps).
func NewRouter(ctx context.Context, client *mongodriver.Client, db *mongodriver.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger, audit ports.AuditSink) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("siganext"))

	issuer := token.NewIssuer(cfg.JWTSecret, token.DefaultTTL, token.DefaultRenewWithin)

	// Repositories.
	users := mongorepo.NewUserRepository(db)
	clients := mongorepo.NewClientRepository(db)
	bodyMetrics := mongorepo.NewBodyMetricRepository(db)
	invites := mongorepo.NewInviteRepository(db)
	onboardingRepo := mongorepo.NewOnboardingRepository(client, db)
	trainingPlans := mongorepo.NewTrainingPlanRepository(db)
	nutritionPlans := mongorepo.NewNutritionPlanRepository(db)
	exercises := mongorepo.NewExerciseRepository(db)
	foods := mongorepo.NewFoodRepository(db)
	bookings := mongorepo.NewBookingRepository(db)
	content := mongorepo.NewContentRepository(db)
	messages := mongorepo.NewMessageRepository(db)
	notifications := mongorepo.NewNotificationRepository(db)
	checkins := mongorepo.NewCheckInRepository(db)
	feedback := mongorepo.NewFeedbackRepository(db)
	incidents := mongorepo.NewIncidentRepository(db)
	auditLog := mongorepo.NewAuditRepository(db)
	stats := mongorepo.NewStatsRepository(db)
	unread := redisrepo.NewUnreadCounter(rdb)

	// Services.
	authService := service.NewAuthService(users, clients, issuer, audit, log)
	inviteService := service.NewInviteService(invites, log)
	onboardingService := service.NewOnboardingService(inviteService, onboardingRepo, audit, log)
	clientService := service.NewClientService(clients, users, bodyMetrics, audit, log)
	trainingService := service.NewTrainingPlanService(trainingPlans, clients, log)
	nutritionService := service.NewNutritionPlanService(nutritionPlans, clients, log)
	catalogService := service.NewCatalogService(exercises, foods, log)
	bookingService := service.NewBookingService(bookings, clients, audit, log)
	notificationService := service.NewNotificationService(notifications, unread, log)
	messageService := service.NewMessageService(messages, unread, log)
	checkinService := service.NewCheckInService(checkins, clients, notificationService, log)
	contentService := service.NewContentService(content, clients, log)
	feedbackService := service.NewFeedbackService(feedback, clients, log)
	employeeService := service.NewEmployeeService(users, audit, log)
	adminService := service.NewAdminService(stats, incidents, auditLog, audit, log)

	// Edge gate: the single authentication and role-partition choke point.
	e.Use(middleware.Gate(middleware.GateConfig{
		Issuer:        issuer,
		Log:           log,
		SecureCookies: cfg.Production(),
		ResolveTenant: tenantResolver(users),
	}))

	// Handlers.
	authHandler := handler.NewAuthHandler(authService, issuer, cfg.Production())
	inviteHandler := handler.NewInviteHandler(inviteService)
	onboardingHandler := handler.NewOnboardingHandler(onboardingService)
	clientHandler := handler.NewClientHandler(clientService, checkinService)
	athleteHandler := handler.NewAthleteHandler(clientService, trainingService, nutritionService, contentService)
	trainingHandler := handler.NewTrainingPlanHandler(trainingService)
	nutritionHandler := handler.NewNutritionPlanHandler(nutritionService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	contentHandler := handler.NewContentHandler(contentService)
	messageHandler := handler.NewMessageHandler(messageService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	checkinHandler := handler.NewCheckInHandler(checkinService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Credential endpoints carry per-IP fixed windows.
	loginLimiter := middleware.NewLimiter(cfg.RateLimit.LoginMax, time.Duration(cfg.RateLimit.LoginWindowMin)*time.Minute)
	registerLimiter := middleware.NewLimiter(cfg.RateLimit.RegisterMax, time.Duration(cfg.RateLimit.RegisterWindowMin)*time.Minute)
	loginLimiter.StartSweep(ctx, time.Minute)
	registerLimiter.StartSweep(ctx, time.Minute)

	// Public surface.
	e.POST("/api/auth/login", authHandler.Login, middleware.RateLimit(loginLimiter, "login"))
	e.POST("/api/auth/register", authHandler.Register, middleware.RateLimit(registerLimiter, "register"))
	e.POST("/api/invites/validate", inviteHandler.Validate)
	e.POST("/api/onboarding", onboardingHandler.Complete)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// Session management (any authenticated role).
	e.POST("/api/auth/refresh", authHandler.Refresh)
	e.PUT("/api/auth/password", authHandler.ChangePassword)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/me", authHandler.Me)

	// Trainer-side groups.
	clientsGroup := e.Group("/api/clients", middleware.TrainerOnly())
	clientsGroup.GET("", clientHandler.List)
	clientsGroup.POST("", clientHandler.Create)
	clientsGroup.GET("/:id", clientHandler.Get)
	clientsGroup.PUT("/:id", clientHandler.Update)
	clientsGroup.DELETE("/:id", clientHandler.Delete)
	clientsGroup.GET("/:id/metrics", clientHandler.Metrics)
	clientsGroup.GET("/:id/checkins", clientHandler.CheckIns)

	invitesGroup := e.Group("/api/invites", middleware.TrainerOnly())
	invitesGroup.POST("", inviteHandler.Create)
	invitesGroup.GET("", inviteHandler.List)
	invitesGroup.DELETE("/:id", inviteHandler.Revoke)

	employeesGroup := e.Group("/api/employees", middleware.RBAC(domain.RoleAdmin))
	employeesGroup.POST("", employeeHandler.Create)
	employeesGroup.GET("", employeeHandler.List)
	employeesGroup.DELETE("/:id", employeeHandler.Deactivate)

	trainingGroup := e.Group("/api/training-plans", middleware.TrainerOnly())
	trainingGroup.POST("", trainingHandler.Create)
	trainingGroup.GET("", trainingHandler.List)
	trainingGroup.GET("/:id", trainingHandler.Get)
	trainingGroup.PUT("/:id", trainingHandler.Update)
	trainingGroup.DELETE("/:id", trainingHandler.Delete)

	nutritionGroup := e.Group("/api/nutrition-plans", middleware.TrainerOnly())
	nutritionGroup.POST("", nutritionHandler.Create)
	nutritionGroup.GET("", nutritionHandler.List)
	nutritionGroup.GET("/:id", nutritionHandler.Get)
	nutritionGroup.PUT("/:id", nutritionHandler.Update)
	nutritionGroup.DELETE("/:id", nutritionHandler.Delete)

	// Catalogs: reads for everyone, writes for trainer-side roles.
	e.GET("/api/exercises", catalogHandler.ListExercises)
	e.POST("/api/exercises", catalogHandler.CreateExercise, middleware.TrainerOnly())
	e.PUT("/api/exercises/:id", catalogHandler.UpdateExercise, middleware.TrainerOnly())
	e.DELETE("/api/exercises/:id", catalogHandler.DeleteExercise, middleware.TrainerOnly())
	e.GET("/api/foods", catalogHandler.ListFoods)
	e.POST("/api/foods", catalogHandler.CreateFood, middleware.TrainerOnly())
	e.PUT("/api/foods/:id", catalogHandler.UpdateFood, middleware.TrainerOnly())
	e.DELETE("/api/foods/:id", catalogHandler.DeleteFood, middleware.TrainerOnly())

	// Bookings: shared surface, handler and service branch on role.
	e.GET("/api/bookings", bookingHandler.List)
	e.POST("/api/bookings", bookingHandler.Create, middleware.TrainerOnly())
	e.PUT("/api/bookings/:id/book", bookingHandler.Book, middleware.AthleteOnly())
	e.PUT("/api/bookings/:id/cancel", bookingHandler.Cancel)
	e.PUT("/api/bookings/:id/complete", bookingHandler.Complete, middleware.TrainerOnly())
	e.DELETE("/api/bookings/:id", bookingHandler.Delete, middleware.TrainerOnly())

	// Content: trainer CRUD, athlete listing respects audience.
	e.GET("/api/content", contentHandler.List)
	e.POST("/api/content", contentHandler.Create, middleware.TrainerOnly())
	e.PUT("/api/content/:id", contentHandler.Update, middleware.TrainerOnly())
	e.DELETE("/api/content/:id", contentHandler.Delete, middleware.TrainerOnly())

	// Feedback: athletes write, trainers read.
	e.POST("/api/feedback", feedbackHandler.Submit, middleware.AthleteOnly())
	e.GET("/api/feedback", feedbackHandler.List, middleware.TrainerOnly())

	// Messaging and notifications: any authenticated principal.
	e.POST("/api/messages", messageHandler.Send)
	e.GET("/api/messages/unread", messageHandler.Unread)
	e.GET("/api/messages/:peer", messageHandler.Conversation)
	e.PUT("/api/messages/:peer/read", messageHandler.MarkRead)
	e.GET("/api/notifications", notificationHandler.List)
	e.GET("/api/notifications/unread", notificationHandler.Unread)
	e.PUT("/api/notifications/:id/read", notificationHandler.MarkRead)

	// Athlete-side surface.
	e.POST("/api/checkins", checkinHandler.Submit, middleware.AthleteOnly())
	e.GET("/api/checkins", checkinHandler.List, middleware.AthleteOnly())

	athleteGroup := e.Group("/api/athlete", middleware.AthleteOnly())
	athleteGroup.GET("/profile", athleteHandler.Profile)
	athleteGroup.GET("/metrics", athleteHandler.Metrics)
	athleteGroup.GET("/training-plans", athleteHandler.TrainingPlans)
	athleteGroup.GET("/nutrition-plans", athleteHandler.NutritionPlans)
	athleteGroup.GET("/content", athleteHandler.Content)

	// Superadmin area.
	adminGroup := e.Group("/api/admin", middleware.SuperadminOnly())
	adminGroup.GET("/stats", adminHandler.Stats)
	adminGroup.POST("/incidents", adminHandler.OpenIncident)
	adminGroup.GET("/incidents", adminHandler.ListIncidents)
	adminGroup.PUT("/incidents/:id/resolve", adminHandler.ResolveIncident)
	adminGroup.GET("/logs", adminHandler.Logs)

	return e
}

// tenantResolver maps claims to the owning trainer id: employees act inside
// their employer's tenancy, everyone else inside their own.
func tenantResolver(users ports.UserRepository) func(ctx context.Context, claims token.Claims) string {
	return func(ctx context.Context, claims token.Claims) string {
		if claims.Role != domain.RoleEmployee {
			return claims.ID
		}
		user, err := users.FindByEmail(ctx, claims.Email)
		if err != nil || user.TrainerID == "" {
			return claims.ID
		}
		return user.TrainerID
	}
}
