package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/yigit/campusportal/internal/app/auth"
	appControllers "github.com/yigit/campusportal/internal/app/controllers"
	appMigrations "github.com/yigit/campusportal/internal/app/migrations"
	appRepos "github.com/yigit/campusportal/internal/app/repositories"
	"github.com/yigit/campusportal/internal/app/repositories/memory"
	"github.com/yigit/campusportal/internal/app/repositories/postgres"
	appRoutes "github.com/yigit/campusportal/internal/app/routes"
	appServices "github.com/yigit/campusportal/internal/app/services"
	"github.com/yigit/campusportal/internal/config"
	"github.com/yigit/campusportal/internal/db"
	appMiddleware "github.com/yigit/campusportal/internal/middleware"
	pkgAuth "github.com/yigit/campusportal/internal/pkg/auth"
	"github.com/yigit/campusportal/internal/pkg/filestorage"
	"github.com/yigit/campusportal/internal/pkg/helpers"
	"github.com/yigit/campusportal/internal/pkg/logger"
	"github.com/yigit/campusportal/internal/pkg/media"
	"github.com/yigit/campusportal/internal/pkg/revalidate"
	"github.com/yigit/campusportal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store *appRepos.Store

	AuthService           appServices.AuthService
	CourseService         appServices.CourseService
	EnrollmentService     appServices.EnrollmentService
	WithdrawalService     appServices.WithdrawalService
	BulkWithdrawalService appServices.BulkWithdrawalService
	ScholarshipService    appServices.ScholarshipService
	AllowanceService      appServices.AllowanceService
	NewsService           appServices.NewsService
	GalleryService        appServices.GalleryService
	ReportService         appServices.ReportService
	UserService           appServices.UserService
	UploadService         appServices.UploadService

	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Authorizer     *appAuth.AuthorizationService
	Notifier       revalidate.Notifier
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := RunMigrations(context.Background(), cfg, database, lgr); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// RunMigrations applies the pending files of the configured migrations directory.
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Str("dir", cfg.Database.MigrationsDir).Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(database.Pool, lgr).MigrateFromDirectory(ctx, cfg.Database.MigrationsDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// OpenStore returns the repositories of the configured driver and a function
// releasing them.
func OpenStore(cfg *config.Config, lgr zerolog.Logger) (*appRepos.Store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		return memory.NewStore(), func() {}, nil
	case config.DriverPostgres:
		database, err := SetupDatabase(cfg, lgr)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(database), database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// NewNotifier selects the cache invalidation backend
func NewNotifier(cfg *config.Config, lgr zerolog.Logger) revalidate.Notifier {
	if cfg.Revalidate.WebhookURL == "" {
		return revalidate.NewLogNotifier(lgr)
	}
	timeout := helpers.ParseDuration(cfg.Revalidate.Timeout, 5*time.Second)
	lgr.Info().Str("url", cfg.Revalidate.WebhookURL).Msg("Revalidation webhook configured")
	return revalidate.NewWebhookNotifier(cfg.Revalidate.WebhookURL, cfg.Revalidate.Secret, timeout, lgr)
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(cfg *config.Config, store *appRepos.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: store, Logger: lgr}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.PublicURL()+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Notifier = NewNotifier(cfg, lgr)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.Authorizer = appAuth.NewAuthorizationService(store.Profiles, lgr)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Authorizer, lgr)

	deps.AuthService = appServices.NewAuthService(store.Identity, store.Profiles, deps.JWTService, lgr)
	deps.CourseService = appServices.NewCourseService(store.Courses, store.Enrollments, deps.Notifier, lgr)
	deps.EnrollmentService = appServices.NewEnrollmentService(store.Enrollments, deps.Notifier, lgr)
	deps.WithdrawalService = appServices.NewWithdrawalService(store.Withdrawals, store.Enrollments, deps.Notifier, lgr)
	deps.BulkWithdrawalService = appServices.NewBulkWithdrawalService(store, deps.Notifier, lgr)
	deps.ScholarshipService = appServices.NewScholarshipService(store.Scholarships, deps.Notifier, lgr)
	deps.AllowanceService = appServices.NewAllowanceService(store.Allowances, deps.Notifier, lgr)
	deps.NewsService = appServices.NewNewsService(store.News, deps.Notifier, lgr)
	deps.GalleryService = appServices.NewGalleryService(store.Gallery, deps.Notifier, lgr)
	deps.ReportService = appServices.NewReportService(store.Reports, deps.Notifier, lgr)
	deps.UserService = appServices.NewUserService(store, lgr)
	deps.UploadService = appServices.NewUploadService(
		deps.FileStorage,
		int64(cfg.Server.MaxUploadMB)<<20,
		media.Options{
			MaxWidth:    cfg.Uploads.MaxImageWidth,
			MaxHeight:   cfg.Uploads.MaxImageHeight,
			JPEGQuality: cfg.Uploads.JPEGQuality,
		},
		lgr,
	)

	deps.Controllers = &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, lgr),
		Course:     appControllers.NewCourseController(deps.CourseService, deps.EnrollmentService, deps.BulkWithdrawalService),
		Enrollment: appControllers.NewEnrollmentController(deps.EnrollmentService),
		Withdrawal: appControllers.NewWithdrawalController(deps.WithdrawalService),
		Finance:    appControllers.NewFinanceController(deps.ScholarshipService, deps.AllowanceService),
		News:       appControllers.NewNewsController(deps.NewsService),
		Gallery:    appControllers.NewGalleryController(deps.GalleryService),
		Report:     appControllers.NewReportController(deps.ReportService),
		User:       appControllers.NewUserController(deps.UserService),
		Upload:     appControllers.NewUploadController(deps.UploadService),
	}

	return deps, nil
}

// SeedDefaults creates the configured admin and sample courses. Failures are
// logged and do not stop the startup.
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	opts := seed.Options{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminName:     cfg.Seed.AdminName,
		AdminPassword: cfg.Seed.AdminPassword,
		SampleCourses: cfg.Seed.SampleCourses,
	}
	if err := seed.CreateDefaultData(ctx, deps.Store, deps.AuthService, opts, deps.Logger); err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadMB) << 20
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Recovery(lgr),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.Static("/uploads", cfg.Server.StoragePath)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.NoRoute(appMiddleware.NotFoundHandler)

	return router
}
