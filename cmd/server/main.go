package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/nshimizu0918/taskboard/internal/config"
	"github.com/nshimizu0918/taskboard/internal/constants"
	"github.com/nshimizu0918/taskboard/internal/database"
	"github.com/nshimizu0918/taskboard/internal/handlers"
	"github.com/nshimizu0918/taskboard/internal/middleware"
	"github.com/nshimizu0918/taskboard/internal/repository"
	"github.com/nshimizu0918/taskboard/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The index migration reads pg_indexes, so it only runs on postgres
	if cfg.DBDriver == "postgres" {
		if err := database.MigrateDatabase(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, labelRepo, commentRepo, userRepo, aiService)
	labelService := services.NewLabelService(labelRepo)
	dashboardService := services.NewDashboardService(taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	labelHandler := handlers.NewLabelHandler(labelService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Taskboard API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Dashboard (protected)
		api.GET("/dashboard", middleware.RequireAuth(), dashboardHandler.GetDashboard)

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/search", taskHandler.SearchTasks)
			tasks.POST("/import", taskHandler.ImportTasks)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.GET("/:id", middleware.RequireTaskVisibility(), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireTaskVisibility(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskVisibility(), taskHandler.DeleteTask)
			tasks.POST("/:id/toggle", middleware.RequireTaskVisibility(), taskHandler.ToggleCompleted)
			tasks.GET("/:id/comments", middleware.RequireTaskVisibility(), taskHandler.ListComments)
			tasks.POST("/:id/comments", middleware.RequireTaskVisibility(), taskHandler.AddComment)
		}

		// Label configuration routes (protected)
		labels := api.Group("/labels")
		labels.Use(middleware.RequireAuth())
		{
			labels.GET("", labelHandler.ListLabels)
			labels.POST("/statuses", labelHandler.CreateStatus)
			labels.DELETE("/statuses/:id", labelHandler.DeleteStatus)
			labels.POST("/priorities", labelHandler.CreatePriority)
			labels.DELETE("/priorities/:id", labelHandler.DeletePriority)
			labels.POST("/tags", labelHandler.CreateTag)
			labels.DELETE("/tags/:id", labelHandler.DeleteTag)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
