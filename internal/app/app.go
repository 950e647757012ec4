package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"manualdesk/internal/config"
	"manualdesk/internal/db"
	"manualdesk/internal/fixtures"
	"manualdesk/internal/handlers"
	"manualdesk/internal/logger"
	"manualdesk/internal/mcp"
	"manualdesk/internal/repository"
	"manualdesk/internal/routes"
	"manualdesk/internal/services"
)

// App — собранное приложение: роутер и фоновые воркеры.
type App struct {
	Router    *mux.Router
	Analytics *services.AnalyticsService
	Viewer    *services.ViewerService

	pool *pgxpool.Pool
}

// InitApp загружает данные, подключает (необязательную) БД и AI и собирает роутер.
func InitApp(ctx context.Context, cfg *config.Config) (*App, error) {
	ds, err := fixtures.Load(cfg.FixturesPath)
	if err != nil {
		return nil, err
	}
	if dangling := ds.DanglingPages(); len(dangling) > 0 {
		logger.Log.Warn("fixtures: страницы из оглавления без содержимого, будут заглушки", zap.Strings("page_ids", dangling))
	}

	var (
		pool   *pgxpool.Pool
		events repository.EventRepo = repository.NewLogEventRepository(logger.Log)
	)
	if cfg.HasDB() {
		pool, err = db.NewPostgresConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		pg := repository.NewPgEventRepository(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("db: схема аналитики: %w", err)
		}
		events = pg
		logger.Log.Info("db: события аналитики пишутся в Postgres", zap.String("dsn", cfg.GetDSNSafe()))
	}

	var ai services.AIClient
	if cfg.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Log.Warn("assistant: Gemini недоступен, ассистент отключён", zap.Error(err))
		} else {
			ai = gemini
		}
	}

	a, err := Build(cfg, ds, events, ai)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}
	a.pool = pool
	return a, nil
}

// Build собирает репозитории, сервисы и маршруты поверх готовых зависимостей.
func Build(cfg *config.Config, ds *fixtures.Dataset, events repository.EventRepo, ai services.AIClient) (*App, error) {
	users, err := services.SeedPasswords(ds.Users, cfg.SeedPassword)
	if err != nil {
		return nil, fmt.Errorf("auth: пароли демо-пользователей: %w", err)
	}

	// Репозитории
	catalogRepo := repository.NewCatalogRepo(ds.Models, ds.Manuals, ds.Pages)
	settingsRepo := repository.NewSettingsRepo(repository.SettingsSeed{
		Users:    users,
		Plans:    ds.Plans,
		Invoices: ds.Invoices,
		Audit:    ds.AuditLog,
		Branding: ds.Branding,
	})

	// Сервисы
	analytics := services.NewAnalyticsService(events, services.AnalyticsConfig{
		BatchSize:     cfg.AnalyticsBatchSize,
		FlushInterval: cfg.AnalyticsFlushInterval,
	})
	settings := services.NewSettingsService(settingsRepo)
	auth := services.NewAuthService(settingsRepo, settings, cfg.JWTSecret, cfg.AccessTTL())
	catalog := services.NewCatalogService(catalogRepo, analytics, settings)
	search := services.NewSearchService(catalogRepo)
	viewer := services.NewViewerService(catalogRepo, analytics, cfg.SessionTTL)
	assistant := services.NewAssistantService(viewer, ai, cfg.AIContextLimit)

	mcpServer := mcp.NewServer(catalog, search)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg.JWTSecret, routes.Handlers{
		Auth:        handlers.NewAuthHandler(auth),
		Catalog:     handlers.NewCatalogHandler(catalog, search),
		Viewer:      handlers.NewViewerHandler(viewer, assistant),
		Settings:    handlers.NewSettingsHandler(settings),
		Analytics:   handlers.NewAnalyticsHandler(analytics),
		Logs:        handlers.NewAdminLogsHandler(logger.NewReader(logger.Dir)),
		MCP:         mcp.NewHTTPServer(mcpServer, cfg.MCPEndpoint),
		MCPEndpoint: cfg.MCPEndpoint,
	})

	return &App{Router: router, Analytics: analytics, Viewer: viewer}, nil
}

// StartWorkers запускает отправку аналитики и чистку сессий просмотрщика.
// Оба воркера завершаются при отмене ctx группы.
func (a *App) StartWorkers(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error { return a.Analytics.Run(ctx) })
	g.Go(func() error { return a.Viewer.RunCleaner(ctx, time.Minute) })
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
