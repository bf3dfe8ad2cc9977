package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/hr_records/internal/config"
	"github.com/locvowork/hr_records/internal/database"
	"github.com/locvowork/hr_records/internal/handler"
	"github.com/locvowork/hr_records/internal/logger"
	"github.com/locvowork/hr_records/internal/metrics"
	"github.com/locvowork/hr_records/internal/repository"
	"github.com/locvowork/hr_records/internal/service"
)

type App struct {
	Echo *echo.Echo
	DB   *sql.DB
}

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Employee *handler.EmployeeHandler
	Record   *handler.RecordHandler
	Leave    *handler.LeaveHandler
	Review   *handler.ReviewHandler
	Auth     *handler.AuthHandler
	Health   *handler.HealthHandler
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{
		Echo: e,
	}
}

// DatabaseConfig maps the loaded environment onto the connection pool settings.
func DatabaseConfig() database.Config {
	return database.Config{
		Host:            config.DefaultEnvConfig.DB_HOST,
		Port:            config.DefaultEnvConfig.DB_PORT,
		User:            config.DefaultEnvConfig.DB_USER,
		Password:        config.DefaultEnvConfig.DB_PASSWORD,
		DBName:          config.DefaultEnvConfig.DB_NAME,
		SSLMode:         config.DefaultEnvConfig.DB_SSL_MODE,
		MaxOpenConns:    config.DefaultEnvConfig.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    config.DefaultEnvConfig.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: config.DefaultEnvConfig.DB_CONN_MAX_LIFETIME,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Initialize database connection
	db, err := database.NewPostgresDB(ctx, DatabaseConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db

	if config.DefaultEnvConfig.DB_AUTO_MIGRATE {
		status, err := database.Migrate(db, database.MigrateUp)
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.InfoLog(ctx, "Database schema at version %d (applied=%t)", status.Version, status.Applied)
	}

	// Search index is optional
	var index service.EmployeeIndex
	if url := config.DefaultEnvConfig.ELASTIC_URL; url != "" {
		es, err := database.NewElasticSearchClient(url)
		if err != nil {
			logger.WarnLog(ctx, "Elasticsearch unavailable at %s, search falls back to SQL: %v", url, err)
		} else {
			index = es
		}
	}

	// Initialize dependencies
	empSvc := service.NewEmployeeService(repository.NewEmployeeRepository(db), index)
	recordSvc := service.NewRecordService(repository.NewPayrollRepository(db), repository.NewAttendanceRepository(db))
	leaveSvc := service.NewLeaveService(repository.NewLeaveRepository(db))
	reviewSvc := service.NewReviewService(repository.NewReviewRepository(db))
	authSvc := service.NewAuthService(repository.NewUserRepository(db))

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(Handlers{
		Employee: handler.NewEmployeeHandler(empSvc),
		Record:   handler.NewRecordHandler(recordSvc),
		Leave:    handler.NewLeaveHandler(leaveSvc),
		Review:   handler.NewReviewHandler(reviewSvc),
		Auth:     handler.NewAuthHandler(authSvc),
		Health:   handler.NewHealthHandler(db),
	})

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
	a.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	a.Echo.Use(requestContext)
	a.Echo.Use(metrics.Middleware())
}

// requestContext attaches a request-scoped logger carrying the request id.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		ctx := logger.WithLogger(c.Request().Context(), map[string]interface{}{"request_id": id})
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func (a *App) RegisterRoutes(h Handlers) {
	a.Echo.GET("/employees", h.Employee.ListHandler)
	a.Echo.POST("/employees", h.Employee.CreateHandler)
	a.Echo.GET("/employees/search", h.Employee.SearchHandler)
	a.Echo.DELETE("/employees/:id", h.Employee.DeleteHandler)

	a.Echo.GET("/payroll", h.Record.PayrollHandler)
	a.Echo.GET("/payroll/export", h.Record.ExportPayrollHandler)
	a.Echo.GET("/attendance", h.Record.AttendanceHandler)
	a.Echo.GET("/attendance/export", h.Record.ExportAttendanceHandler)

	a.Echo.GET("/leave-requests", h.Leave.ListHandler)
	a.Echo.POST("/leave-requests", h.Leave.CreateHandler)
	a.Echo.PATCH("/leave-requests/:id", h.Leave.UpdateStatusHandler)

	a.Echo.GET("/performance-reviews", h.Review.ListHandler)
	a.Echo.POST("/performance-reviews", h.Review.CreateHandler)

	a.Echo.POST("/login", h.Auth.LoginHandler)

	a.Echo.GET("/health", h.Health.HealthHandler)
	a.Echo.GET("/metrics", metrics.Handler())
}

func (a *App) Run() error {
	defer a.DB.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

// Shutdown drains in-flight requests.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}
