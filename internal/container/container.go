package container

import (
	"fmt"

	"ilmakase/adapters/excel"
	"ilmakase/adapters/postgres"
	"ilmakase/ai"
	"ilmakase/app"
	"ilmakase/internal/auth"
	"ilmakase/internal/cache"
	"ilmakase/internal/config"
	"ilmakase/ports"
	"ilmakase/ui"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Container holds all application dependencies and manages their
// lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB    *sqlx.DB
	Cache *cache.Tiered

	// Repositories (data access layer)
	UserRepo     ports.UserRepository
	RecordRepo   ports.RecordRepository
	AnalysisRepo ports.AnalysisRepository
	ProjectRepo  ports.ProjectRepository

	// External collaborators
	Analyzer     ports.Analyzer
	AuthProvider ports.AuthProvider

	// Services
	AnalysisService   *app.AnalysisService
	DailyService      *app.DailyAnalysisService
	PreviewService    *app.PreviewService
	SuggestionService *app.SuggestionService
	PortfolioService  *app.PortfolioService
	WorklogService    *app.WorklogService

	// HTTP surface
	Server *ui.Server

	memoryTier *cache.Memory
	redisTier  *cache.Redis
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{Config: cfg}, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	c.DB = db

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.initCache()
	c.initRepositories()
	c.initCollaborators()
	c.initServices()
	c.initServer()

	log.Info().Msg("Container initialized")
	return nil
}

func (c *Container) initCache() {
	c.memoryTier = cache.NewMemory()
	if c.Config.Cache.RedisURL != "" {
		c.redisTier = cache.NewRedis(c.Config.Cache.RedisURL)
	}
	c.Cache = cache.NewTiered(c.memoryTier, c.redisTier)
}

func (c *Container) initRepositories() {
	c.UserRepo = postgres.NewUserRepository(c.DB)
	c.RecordRepo = postgres.NewRecordRepository(c.DB)
	c.AnalysisRepo = postgres.NewAnalysisRepository(c.DB)
	c.ProjectRepo = postgres.NewProjectRepository(c.DB)
}

func (c *Container) initCollaborators() {
	c.Analyzer = ai.NewAnalyzer(ai.NewClient(c.Config.AI))
	c.AuthProvider = auth.NewProviderClient(c.Config.Auth)
}

func (c *Container) initServices() {
	c.AnalysisService = app.NewAnalysisService(c.RecordRepo, c.AnalysisRepo, c.Analyzer)
	c.DailyService = app.NewDailyAnalysisService(c.UserRepo, c.Analyzer)
	c.PreviewService = app.NewPreviewService(c.Analyzer)
	c.SuggestionService = app.NewSuggestionService(c.Analyzer)
	c.PortfolioService = app.NewPortfolioService(c.AnalysisRepo, c.ProjectRepo, c.RecordRepo, c.Analyzer)
	c.WorklogService = app.NewWorklogService(c.RecordRepo, c.Cache, c.Config.Cache.StatsTTL)
}

func (c *Container) initServer() {
	resolver := ui.NewSessionResolver(c.AuthProvider, c.UserRepo, c.Cache, c.Config.Cache.SessionTTL)
	c.Server = ui.NewServer(ui.Dependencies{
		Resolver:          resolver,
		DB:                c.DB,
		AnalysisService:   c.AnalysisService,
		DailyService:      c.DailyService,
		PreviewService:    c.PreviewService,
		SuggestionService: c.SuggestionService,
		PortfolioService:  c.PortfolioService,
		WorklogService:    c.WorklogService,
		Exporter:          excel.NewPortfolioExporter(),
		AuthProvider:      c.AuthProvider,
		Users:             c.UserRepo,
	})
}

// Close releases held resources
func (c *Container) Close() error {
	if c.memoryTier != nil {
		c.memoryTier.Close()
	}
	if c.redisTier != nil {
		if err := c.redisTier.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis pool")
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
