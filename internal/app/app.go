package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/alimikegami/product-catalog-service/config"
	"github.com/alimikegami/product-catalog-service/internal/controller"
	"github.com/alimikegami/product-catalog-service/internal/infrastructure/database/postgres"
	"github.com/alimikegami/product-catalog-service/internal/infrastructure/filestore"
	"github.com/alimikegami/product-catalog-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/product-catalog-service/internal/infrastructure/scheduler"
	"github.com/alimikegami/product-catalog-service/internal/infrastructure/tracing"
	"github.com/alimikegami/product-catalog-service/internal/middleware"
	"github.com/alimikegami/product-catalog-service/internal/repository"
	"github.com/alimikegami/product-catalog-service/internal/service"
	"github.com/alimikegami/product-catalog-service/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	DB     *sqlx.DB
	Config *config.Config
	Server *echo.Echo

	metrics       *echo.Echo
	traceProvider *sdktrace.TracerProvider
	publisher     kafka.EventPublisher
	scheduler     gocron.Scheduler
}

// the collectors behind the middleware register once per process
var prometheusMiddleware = sync.OnceValue(func() echo.MiddlewareFunc {
	// no namespace, so series aggregate with the other services
	return echoprometheus.NewMiddleware("")
})

func InitLogger() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Setup builds the HTTP server and its collaborators without serving.
func (app *App) Setup(ctx context.Context) error {
	if app.Config.PostgreSQLConfig.RunMigrations {
		pg := app.Config.PostgreSQLConfig
		if err := postgres.MigrateUp(postgres.URL(pg.DBUsername, pg.DBPassword, pg.DBHost, pg.DBPort, pg.DBName)); err != nil {
			return err
		}
	}

	if app.Config.TracingConfig.CollectorHost != "" {
		traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize tracing")
		} else {
			app.traceProvider = traceProvider
		}
	}

	fileStore, err := filestore.CreateDiskFileStore(app.Config.FileStoreConfig.UploadDir)
	if err != nil {
		return err
	}

	app.publisher = kafka.CreateEventPublisher(app.Config)

	productRepo := repository.CreateProductRepository(app.DB)
	productSvc := service.CreateProductService(productRepo, fileStore, app.publisher)
	presentationSvc := service.CreatePresentationService(repository.CreatePresentationRepository(app.DB))
	userSvc := service.CreateUserService(repository.CreateUserRepository(app.DB), *app.Config)

	if app.Config.SeedSampleData {
		if _, err := productSvc.SeedSampleData(log.Logger.WithContext(ctx)); err != nil {
			return err
		}
	}

	app.scheduler, err = scheduler.StartOrphanSweeper(productSvc, app.Config.FileStoreConfig.OrphanSweepInterval)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(traceRequests)
	e.Use(prometheusMiddleware())
	e.Use(middleware.Logger)

	g := e.Group("")
	isLoggedIn := middleware.IsLoggedIn(app.Config.JWTConfig.JWTSecret)
	controller.CreateProductController(g, productSvc, isLoggedIn, app.Config.FileStoreConfig.MaxUploadSize)
	controller.CreatePresentationController(g, presentationSvc)
	controller.CreateUserController(g, userSvc)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	app.metrics = echo.New()
	app.metrics.HideBanner = true
	app.metrics.GET("/metrics", echoprometheus.NewHandler())

	app.Server = e

	return nil
}

// Start serves HTTP and metrics until StopServer is called.
func (app *App) Start() error {
	go func() {
		if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to start metrics server")
		}
	}()

	if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errList []error
	if app.Server != nil {
		errList = append(errList, app.Server.Shutdown(ctx))
	}
	if app.metrics != nil {
		errList = append(errList, app.metrics.Shutdown(ctx))
	}
	if app.scheduler != nil {
		errList = append(errList, app.scheduler.Shutdown())
	}
	if app.publisher != nil {
		errList = append(errList, app.publisher.Close())
	}
	if app.traceProvider != nil {
		errList = append(errList, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(errList...)
}

func traceRequests(next echo.HandlerFunc) echo.HandlerFunc {
	tracer := otel.Tracer(tracing.ServiceName)

	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
		defer span.End()

		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
