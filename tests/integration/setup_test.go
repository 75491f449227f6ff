package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Nardoto/nardotos-finance/internal/config"
	"github.com/Nardoto/nardotos-finance/internal/gemini"
	"github.com/Nardoto/nardotos-finance/internal/handlers"
	"github.com/Nardoto/nardotos-finance/internal/logger"
	"github.com/Nardoto/nardotos-finance/internal/middleware"
	"github.com/Nardoto/nardotos-finance/internal/models"
	"github.com/Nardoto/nardotos-finance/internal/services"
	"github.com/Nardoto/nardotos-finance/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Extractor *stubExtractor
}

// stubExtractor stands in for the Gemini client so extraction routes can be
// exercised without network access.
type stubExtractor struct {
	TextFn  func(ctx context.Context, text string, categories []string) ([]gemini.ExtractedEntry, error)
	ImageFn func(ctx context.Context, imageBase64 string, categories []string) ([]gemini.ExtractedEntry, error)
	PlansFn func(ctx context.Context, text string, categories []string) ([]gemini.ExtractedPlan, error)
}

func (s *stubExtractor) ExtractText(ctx context.Context, text string, categories []string) ([]gemini.ExtractedEntry, error) {
	if s.TextFn == nil {
		return nil, nil
	}
	return s.TextFn(ctx, text, categories)
}

func (s *stubExtractor) ExtractImage(ctx context.Context, imageBase64 string, categories []string) ([]gemini.ExtractedEntry, error) {
	if s.ImageFn == nil {
		return nil, nil
	}
	return s.ImageFn(ctx, imageBase64, categories)
}

func (s *stubExtractor) ExtractPlans(ctx context.Context, text string, categories []string) ([]gemini.ExtractedPlan, error) {
	if s.PlansFn == nil {
		return nil, nil
	}
	return s.PlansFn(ctx, text, categories)
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Entry{},
		&models.Plan{},
		&models.Budget{},
		&models.Goal{},
		&models.Category{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// testConfig returns a fixed configuration for the test stack.
func testConfig() *config.Config {
	return &config.Config{
		Port:        "8080",
		GeminiModel: "gemini-2.0-flash",
		EconomyMode: false,
		AllowImages: true,
		Users: map[string]string{
			"NARDOTO": "segredo123",
			"MARINA":  "outrosegredo",
		},
	}
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	cfg := testConfig()
	extractor := &stubExtractor{}

	// Services
	auditService := services.NewAuditService(db)
	entryService := services.NewEntryService(db)
	planService := services.NewPlanService(db)
	budgetService := services.NewBudgetService(db)
	goalService := services.NewGoalService(db)
	categoryService := services.NewCategoryService(db)
	summaryService := services.NewSummaryService(db)
	insightService := services.NewInsightService(db)
	extractionService := services.NewExtractionService(extractor, categoryService)

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, auditService)
	configHandler := handlers.NewConfigHandler(cfg)
	entryHandler := handlers.NewEntryHandler(entryService, auditService)
	planHandler := handlers.NewPlanHandler(planService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	insightHandler := handlers.NewInsightHandler(insightService)
	extractHandler := handlers.NewExtractHandler(extractionService, cfg)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	v1.POST("/login", authHandler.Login)
	v1.GET("/config", configHandler.GetConfig)

	v1.POST("/lancamentos", entryHandler.CreateEntries)
	v1.GET("/lancamentos", entryHandler.GetEntries)
	v1.PUT("/lancamentos/:id", entryHandler.UpdateEntry)
	v1.DELETE("/lancamentos/:id", entryHandler.DeleteEntry)
	v1.POST("/lancamentos/importar", entryHandler.ImportStatement)
	v1.POST("/inverter-contas", entryHandler.InvertAccounts)

	v1.GET("/resumo", summaryHandler.GetSummary)
	v1.GET("/categorias-resumo", summaryHandler.GetCategoryBreakdown)
	v1.GET("/dashboard", summaryHandler.GetDashboard)
	v1.GET("/insights", insightHandler.GetInsights)

	v1.POST("/planejamento", planHandler.CreatePlan)
	v1.GET("/planejamento", planHandler.GetPlans)
	v1.PUT("/planejamento/:id", planHandler.UpdatePlan)
	v1.DELETE("/planejamento/:id", planHandler.DeletePlan)

	v1.GET("/orcamento", budgetHandler.GetBudget)
	v1.POST("/orcamento", budgetHandler.UpsertBudget)

	v1.POST("/metas", goalHandler.CreateGoal)
	v1.GET("/metas", goalHandler.GetGoals)
	v1.DELETE("/metas/:id", goalHandler.DeleteGoal)

	v1.GET("/categorias", categoryHandler.GetCategories)
	v1.PUT("/categorias/:nome", categoryHandler.RenameCategory)
	v1.DELETE("/categorias/:nome", categoryHandler.MergeCategory)

	v1.POST("/processar", extractHandler.ExtractEntries)
	v1.POST("/processar-planejamento", extractHandler.ExtractPlans)

	return &testApp{DB: db, Router: router, Extractor: extractor}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// login authenticates one of the fixed users and fails the test on rejection.
func (app *testApp) login(t *testing.T, username, password string) {
	t.Helper()
	body := fmt.Sprintf(`{"usuario":%q,"senha":%q}`, username, password)
	rec := app.request("POST", "/api/v1/login", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
}
