package main

import (
	"context"
	"errors"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/skillsnap/internal/cache"
	"github.com/fadilmartias/skillsnap/internal/config"
	"github.com/fadilmartias/skillsnap/internal/domain/fiber/handler"
	"github.com/fadilmartias/skillsnap/internal/logger"
	"github.com/fadilmartias/skillsnap/internal/middleware"
	"github.com/fadilmartias/skillsnap/internal/repository"
	"github.com/fadilmartias/skillsnap/internal/service"
	"github.com/fadilmartias/skillsnap/internal/storage"
	"github.com/fadilmartias/skillsnap/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newServeCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run migrations before serving")
	return cmd
}

func serve(ctx context.Context, autoMigrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appConfig := config.LoadAppConfig()
	log, err := logger.New(appConfig.Env)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := ConnectDB(config.LoadDBConfig(), appConfig)
	if err != nil {
		return err
	}
	if autoMigrate {
		if err := repository.Migrate(db); err != nil {
			return err
		}
	}

	llm, embedder, err := newLLM(ctx, config.LoadLLMConfig(), log)
	if err != nil {
		return err
	}

	storageConfig := config.LoadStorageConfig()
	store, err := storage.New(ctx, storageConfig, appConfig.BaseURL, log)
	if err != nil {
		return err
	}

	jwtSvc, err := service.NewJWTService(config.LoadJWTConfig(), appConfig.Name)
	if err != nil {
		return err
	}

	var limiterStorage fiber.Storage
	if redisConfig := config.LoadRedisConfig(); redisConfig.Enabled() {
		rs, err := cache.NewRedisStorage(ctx, redisConfig, "skillsnap:limiter:")
		if err != nil {
			return err
		}
		defer rs.Close()
		limiterStorage = rs
	}

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: handler.ErrorHandler,
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: appConfig.AllowOrigins,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute, middleware.WithStorage(limiterStorage)))

	users := repository.NewUserRepository(db)
	analyses := repository.NewAnalysisRepository(db)
	progress := repository.NewProgressRepository(db)

	analyzeLimiter := middleware.RateLimiter(5, 1*time.Minute, middleware.WithStorage(limiterStorage), middleware.WithUserKey())
	routes := []handler.RouteRegistrar{
		handler.NewAuthHandler(usecase.NewAuthUsecase(users, jwtSvc, service.NewPasswordService(bcrypt.DefaultCost), log)),
		handler.NewAnalysisHandler(usecase.NewAnalysisUsecase(analyses, llm, embedder, store, log), analyzeLimiter),
		handler.NewRoadmapHandler(usecase.NewRoadmapUsecase(analyses, log)),
		handler.NewProgressHandler(usecase.NewProgressUsecase(progress, analyses, log)),
	}
	// GCS documents are fetched from the bucket, local ones only through the API
	if local, ok := store.(*storage.LocalStore); ok {
		routes = append(routes, handler.NewDocumentHandler(local))
	}
	handler.RegisterRoutes(app, middleware.Auth(jwtSvc, users), routes...)

	go monitorGoroutines(ctx, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "port", appConfig.Port, "env", appConfig.Env)
		errCh <- app.Listen(appConfig.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// newLLM picks the analysis provider. Embeddings always come from Gemini and
// are skipped when no Gemini key is configured.
func newLLM(ctx context.Context, cfg *config.LLMConfig, log *logger.Logger) (service.LLMServiceInterface, service.EmbeddingServiceInterface, error) {
	var embedder service.EmbeddingServiceInterface
	var gemini *service.GeminiService
	if cfg.GeminiAPIKey != "" {
		g, err := service.NewGeminiService(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		gemini = g
		embedder = g
	} else {
		log.Warn("GEMINI_API_KEY not set, job description embeddings disabled")
	}

	if cfg.Provider == config.ProviderOpenRouter {
		openRouter, err := service.NewOpenRouterService(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return openRouter, embedder, nil
	}
	if gemini == nil {
		return nil, nil, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER is gemini")
	}
	return gemini, embedder, nil
}

func monitorGoroutines(ctx context.Context, log *logger.Logger) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Debug("active goroutines", "count", runtime.NumGoroutine())
		}
	}
}
