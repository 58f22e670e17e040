package ui

import (
	"ilmakase/adapters/excel"
	"ilmakase/app"
	"ilmakase/ports"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Server is the HTTP surface of the service
type Server struct {
	router   *gin.Engine
	resolver *SessionResolver
	db       *sqlx.DB

	analysisService   *app.AnalysisService
	dailyService      *app.DailyAnalysisService
	previewService    *app.PreviewService
	suggestionService *app.SuggestionService
	portfolioService  *app.PortfolioService
	worklogService    *app.WorklogService
	exporter          *excel.PortfolioExporter
	authProvider      ports.AuthProvider
	users             ports.UserRepository
}

// Dependencies collects everything the server needs
type Dependencies struct {
	Resolver          *SessionResolver
	DB                *sqlx.DB
	AnalysisService   *app.AnalysisService
	DailyService      *app.DailyAnalysisService
	PreviewService    *app.PreviewService
	SuggestionService *app.SuggestionService
	PortfolioService  *app.PortfolioService
	WorklogService    *app.WorklogService
	Exporter          *excel.PortfolioExporter
	AuthProvider      ports.AuthProvider
	Users             ports.UserRepository
}

// NewServer creates the HTTP server and wires its routes
func NewServer(deps Dependencies) *Server {
	s := &Server{
		router:            gin.Default(),
		resolver:          deps.Resolver,
		db:                deps.DB,
		analysisService:   deps.AnalysisService,
		dailyService:      deps.DailyService,
		previewService:    deps.PreviewService,
		suggestionService: deps.SuggestionService,
		portfolioService:  deps.PortfolioService,
		worklogService:    deps.WorklogService,
		exporter:          deps.Exporter,
		authProvider:      deps.AuthProvider,
		users:             deps.Users,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(PageGuard(s.resolver))

	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/auth/callback", s.handleAuthCallback)

	// Guest path: no session required, nothing persisted.
	s.router.POST("/api/analysis/preview", s.handlePreview)

	api := s.router.Group("/api", RequireUser(s.resolver))
	{
		api.POST("/analysis/pattern", s.handlePatternAnalysis)
		api.POST("/analysis/daily", s.handleDailyAnalysis)
		api.POST("/suggestions", s.handleSuggestions)

		api.GET("/records", s.handleListRecords)
		api.POST("/records", s.handleCreateRecord)
		api.GET("/stats", s.handleStats)

		api.POST("/portfolio/generate", s.handleGeneratePortfolio)
		api.GET("/portfolio", s.handleListPortfolio)
		api.GET("/portfolio/:id/export", s.handleExportPortfolio)
	}
}

// Router exposes the gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
