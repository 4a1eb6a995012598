package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tabloide-mp/app/controller"
	"tabloide-mp/app/middleware"
	"tabloide-mp/app/router"
	"tabloide-mp/config"
	"tabloide-mp/db"
	"tabloide-mp/render"
	"tabloide-mp/repository"
	"tabloide-mp/service"
)

// Render endpoints allow this many requests per client IP and window
const (
	renderLimit  = 30
	renderWindow = time.Minute
)

// App holds the wired services, shared by the HTTP server and the command line tools
type App struct {
	Config *config.Config
	DB     *sql.DB
	Redis  *redis.Client
	Auth   *middleware.Authenticator

	Catalog    *service.CatalogService
	Export     *service.ExportService
	Imports    *service.ImportService
	Templates  *service.TemplateService
	Placements *service.PlacementService
	Flyers     *service.FlyerService
	Companies  *service.CompanyService
	Sync       *service.SyncService
}

// Initialize opens the database and builds every service
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	layout, err := render.LoadLayout(cfg.LayoutFile)
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Drive is optional: without credentials only local assets are served
	var drive service.DriveServiceInterface
	if cfg.GoogleCredentials != "" {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentials)
		if err != nil {
			conn.Close()
			return nil, err
		}
		drive = driveService
	} else {
		log.Info().Msg("GOOGLE_APPLICATION_CREDENTIALS not set, Drive assets disabled")
	}

	if cfg.JWTSecret == "" {
		log.Warn().Msg("⚠️  JWT_SECRET not set, every token will be rejected")
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(conn)
	templateRepo := repository.NewTemplateRepository(conn)
	placementRepo := repository.NewPlacementRepository(conn)
	importRepo := repository.NewImportRepository(conn)
	companyRepo := repository.NewCompanyRepository(conn)
	customerRepo := repository.NewCustomerRepository(conn)

	assets := service.NewAssetStore(cfg.MediaRoot, drive)
	placements := service.NewPlacementService(templateRepo, placementRepo, catalogRepo)

	a := &App{
		Config:     cfg,
		DB:         conn,
		Redis:      config.NewRedisClient(ctx, cfg.RedisURL),
		Auth:       middleware.NewAuthenticator(cfg.JWTSecret),
		Catalog:    service.NewCatalogService(catalogRepo, assets),
		Export:     service.NewExportService(catalogRepo),
		Imports:    service.NewImportService(catalogRepo, importRepo, assets),
		Templates:  service.NewTemplateService(templateRepo, placements, assets),
		Placements: placements,
		Flyers:     service.NewFlyerService(templateRepo, placements, assets, service.NewChromePrinter(cfg.ChromePath), layout),
		Companies:  service.NewCompanyService(companyRepo, customerRepo, catalogRepo, templateRepo, importRepo),
		Sync:       service.NewSyncService(drive, catalogRepo, assets, cfg.DriveFolderID),
	}
	return a, nil
}

// Handler builds the HTTP router
func (a *App) Handler() http.Handler {
	controllers := &router.Controllers{
		Catalog:   controller.NewCatalogController(a.Catalog, a.Export),
		ImageSync: controller.NewImageSyncController(a.Sync),
		Import:    controller.NewImportController(a.Imports),
		Template:  controller.NewTemplateController(a.Templates),
		Placement: controller.NewPlacementController(a.Placements),
		Flyer:     controller.NewFlyerController(a.Flyers),
		Company:   controller.NewCompanyController(a.Companies),
	}
	limiter := middleware.NewRateLimiter(a.Redis, "render", renderLimit, renderWindow)
	return router.NewRouter(controllers, a.Auth, limiter)
}

// Close releases the database and Redis connections
func (a *App) Close() {
	if a.Redis != nil {
		a.Redis.Close()
	}
	if err := a.DB.Close(); err != nil {
		log.Error().Err(err).Msg("❌ Error closing database")
	}
}
