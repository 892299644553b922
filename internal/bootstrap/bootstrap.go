package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/refbase/internal/app/controllers"
	appRepos "github.com/yigit/refbase/internal/app/repositories"
	appRoutes "github.com/yigit/refbase/internal/app/routes"
	appServices "github.com/yigit/refbase/internal/app/services"
	"github.com/yigit/refbase/internal/config"
	appMiddleware "github.com/yigit/refbase/internal/middleware"
	pkgAuth "github.com/yigit/refbase/internal/pkg/auth"
	"github.com/yigit/refbase/internal/pkg/filestore"
	"github.com/yigit/refbase/internal/pkg/helpers"
	"github.com/yigit/refbase/internal/pkg/logger"
	"github.com/yigit/refbase/internal/pkg/metrics"
	"github.com/yigit/refbase/internal/pkg/remote"
	"github.com/yigit/refbase/internal/pkg/tabular"
	"github.com/yigit/refbase/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	OfficialService     appServices.OfficialService // Interface type
	EventService        appServices.EventService    // Interface type
	AvailabilityService appServices.AvailabilityService
	AssignmentService   appServices.AssignmentService
	RosterService       appServices.RosterService
	IntegrityService    appServices.IntegrityService

	AuthController         *appControllers.AuthController
	OfficialController     *appControllers.OfficialController
	EventController        *appControllers.EventController
	AvailabilityController *appControllers.AvailabilityController
	AssignmentController   *appControllers.AssignmentController
	RosterController       *appControllers.RosterController

	AuthMiddleware *appMiddleware.AuthMiddleware // Pointer to middleware struct
	Repos          *appRepos.Repositories        // Include the main repo container
	JWTService     *pkgAuth.JWTService
	Mirror         remote.Mirror
	Store          *tabular.Store
	Files          *filestore.Store
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err // Return zero logger and the error
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage connects the mirror, roots the table store in the data
// directory and hydrates the local copies. A missing or misconfigured
// mirror is not fatal; the app falls back to pure local mode.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (*tabular.Store, *filestore.Store, remote.Mirror, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mirror := remote.Open(ctx, cfg)
	lgr.Info().Str("driver", string(mirror.Driver())).Bool("enabled", mirror.Enabled()).Msg("Mirror configured")

	store, err := tabular.NewStore(cfg.Storage.DataDir, mirror)
	if err != nil {
		lgr.Error().Err(err).Str("dataDir", cfg.Storage.DataDir).Msg("Failed to initialize table store")
		return nil, nil, nil, fmt.Errorf("failed to initialize table store: %w", err)
	}

	files, err := filestore.NewStore(cfg.Storage.DataDir, mirror)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize attachment store")
		return nil, nil, nil, fmt.Errorf("failed to initialize attachment store: %w", err)
	}

	// Hydrate local table copies (after the mirror is up)
	if err := seed.CreateDefaultData(ctx, store, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to materialize local data files, proceeding anyway...")
	}

	return store, files, mirror, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, store *tabular.Store, files *filestore.Store, mirror remote.Mirror, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: lgr,
		Mirror: mirror,
		Store:  store,
		Files:  files,
	}

	deps.Repos = appRepos.NewRepositories(store, files)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	// Initialize services
	deps.AuthService = appServices.NewAuthService(cfg.Admin.Secret, deps.JWTService, lgr)
	deps.OfficialService = appServices.NewOfficialService(deps.Repos.OfficialRepository, deps.Files)
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository)
	deps.AvailabilityService = appServices.NewAvailabilityService(
		deps.Repos.OfficialRepository,
		deps.Repos.EventRepository,
		deps.Repos.AvailabilityRepository,
	)
	deps.AssignmentService = appServices.NewAssignmentService(
		deps.Repos.AssignmentRepository,
		deps.Repos.OfficialRepository,
		deps.Repos.EventRepository,
	)
	deps.RosterService = appServices.NewRosterService(
		deps.Repos.OfficialRepository,
		deps.Repos.EventRepository,
		deps.Repos.AvailabilityRepository,
		deps.Repos.AssignmentRepository,
	)
	deps.IntegrityService = appServices.NewIntegrityService(
		deps.Repos.OfficialRepository,
		deps.Repos.EventRepository,
		deps.Repos.AvailabilityRepository,
		deps.Repos.AssignmentRepository,
		deps.Files,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.OfficialController = appControllers.NewOfficialController(deps.OfficialService, deps.IntegrityService, deps.Logger)
	deps.EventController = appControllers.NewEventController(deps.EventService, deps.IntegrityService, deps.Logger)
	deps.AvailabilityController = appControllers.NewAvailabilityController(deps.AvailabilityService, deps.Logger)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService, deps.Logger)
	deps.RosterController = appControllers.NewRosterController(deps.RosterService, deps.Logger)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.OfficialController,
		deps.EventController,
		deps.AvailabilityController,
		deps.AssignmentController,
		deps.RosterController,
		deps.AuthMiddleware, // Pass the middleware struct itself
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
