package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Nardoto/nardotos-finance/internal/config"
	"github.com/Nardoto/nardotos-finance/internal/database"
	"github.com/Nardoto/nardotos-finance/internal/gemini"
	"github.com/Nardoto/nardotos-finance/internal/handlers"
	"github.com/Nardoto/nardotos-finance/internal/logger"
	"github.com/Nardoto/nardotos-finance/internal/middleware"
	"github.com/Nardoto/nardotos-finance/internal/services"
	"github.com/Nardoto/nardotos-finance/internal/validator"

	_ "github.com/Nardoto/nardotos-finance/internal/docs" // Import swagger docs
)

// @title           Nardoto's Finance API
// @version         1.0
// @description     Household finance tracker: entries, scheduled bills, budgets, goals and AI-assisted entry extraction.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	entryService := services.NewEntryService(db)
	planService := services.NewPlanService(db)
	budgetService := services.NewBudgetService(db)
	goalService := services.NewGoalService(db)
	categoryService := services.NewCategoryService(db)
	summaryService := services.NewSummaryService(db)
	insightService := services.NewInsightService(db)

	geminiClient := gemini.NewClient(
		gemini.DefaultBaseURL,
		appConfig.GoogleAPIKey,
		appConfig.GeminiModel,
		&http.Client{Timeout: 60 * time.Second},
	)
	extractionService := services.NewExtractionService(geminiClient, categoryService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(appConfig, auditService)
	configHandler := handlers.NewConfigHandler(appConfig)
	entryHandler := handlers.NewEntryHandler(entryService, auditService)
	planHandler := handlers.NewPlanHandler(planService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	insightHandler := handlers.NewInsightHandler(insightService)
	extractHandler := handlers.NewExtractHandler(extractionService, appConfig)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	v1.POST("/login", authHandler.Login)
	v1.GET("/config", configHandler.GetConfig)

	// Entry routes
	v1.POST("/lancamentos", entryHandler.CreateEntries)
	v1.GET("/lancamentos", entryHandler.GetEntries)
	v1.PUT("/lancamentos/:id", entryHandler.UpdateEntry)
	v1.DELETE("/lancamentos/:id", entryHandler.DeleteEntry)
	v1.POST("/lancamentos/importar", entryHandler.ImportStatement)
	v1.POST("/inverter-contas", entryHandler.InvertAccounts)

	// Aggregation routes
	v1.GET("/resumo", summaryHandler.GetSummary)
	v1.GET("/categorias-resumo", summaryHandler.GetCategoryBreakdown)
	v1.GET("/dashboard", summaryHandler.GetDashboard)
	v1.GET("/insights", insightHandler.GetInsights)

	// Plan routes
	v1.POST("/planejamento", planHandler.CreatePlan)
	v1.GET("/planejamento", planHandler.GetPlans)
	v1.PUT("/planejamento/:id", planHandler.UpdatePlan)
	v1.DELETE("/planejamento/:id", planHandler.DeletePlan)

	// Budget routes
	v1.GET("/orcamento", budgetHandler.GetBudget)
	v1.POST("/orcamento", budgetHandler.UpsertBudget)

	// Goal routes
	v1.POST("/metas", goalHandler.CreateGoal)
	v1.GET("/metas", goalHandler.GetGoals)
	v1.DELETE("/metas/:id", goalHandler.DeleteGoal)

	// Category routes
	v1.GET("/categorias", categoryHandler.GetCategories)
	v1.PUT("/categorias/:nome", categoryHandler.RenameCategory)
	v1.DELETE("/categorias/:nome", categoryHandler.MergeCategory)

	// Extraction routes
	v1.POST("/processar", extractHandler.ExtractEntries)
	v1.POST("/processar-planejamento", extractHandler.ExtractPlans)

	log.Infof("Starting finance backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
