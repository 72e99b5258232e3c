package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/kendall-kelly/lightwork-auth-api/config"
	"github.com/kendall-kelly/lightwork-auth-api/controllers"
	"github.com/kendall-kelly/lightwork-auth-api/events"
	"github.com/kendall-kelly/lightwork-auth-api/metrics"
	"github.com/kendall-kelly/lightwork-auth-api/middleware"
	"github.com/kendall-kelly/lightwork-auth-api/repository"
	"github.com/kendall-kelly/lightwork-auth-api/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config.SetConfig(cfg)

	logger, err := config.InitLogger(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// run serves HTTP and, when Redis is configured, consumes events until ctx
// is cancelled.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting LightWork auth API", zap.String("env", cfg.GoEnv), zap.String("port", cfg.Port))

	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		return err
	}
	store := repository.New(config.GetDB())
	if err := store.Migrate(); err != nil {
		return err
	}
	logger.Info("Database migration completed successfully")

	var (
		bus       *events.Bus
		publisher events.Publisher = events.NopPublisher{Logger: logger}
	)
	if cfg.EventsEnabled() {
		client, err := events.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer closeRedis(client, logger)
		bus = events.NewBus(client, events.BusConfig{
			Group:    cfg.EventGroup,
			Consumer: cfg.EventConsumer,
			Block:    cfg.EventBlock,
		}, logger)
		publisher = bus
	} else {
		logger.Warn("REDIS_URL not set, events are disabled")
	}

	a := newApp(cfg, store, publisher, newClients(cfg, logger), logger)

	g, ctx := errgroup.WithContext(ctx)
	if bus != nil {
		consumer, err := a.eventRouter(ctx, cfg)
		if err != nil {
			return err
		}
		g.Go(func() error { return bus.Run(ctx, consumer) })
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		logger.Info("Server is listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func closeRedis(client *redis.Client, logger *zap.Logger) {
	if err := client.Close(); err != nil {
		logger.Warn("Failed to close redis client", zap.Error(err))
	}
}

// clients are the outbound integrations. Tests swap in the mocks.
type clients struct {
	mailer  services.EmailSender
	phones  services.Telephony
	llm     services.LLM
	fetcher services.Fetcher
}

func newClients(cfg *config.Config, logger *zap.Logger) clients {
	return clients{
		mailer:  services.NewSendGridClient(cfg.SendGridBaseURL, cfg.SendGridAPIKey, cfg.SendGridFromEmail, logger),
		phones:  services.NewTwilioClient(cfg.TwilioBaseURL, cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger),
		llm:     services.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel),
		fetcher: services.NewHTTPFetcher(),
	}
}

// app holds the wired services behind the HTTP and event surfaces.
type app struct {
	logger    *zap.Logger
	tokens    *services.TokenIssuer
	accounts  *services.AccountService
	prompts   *services.PromptService
	mailer    services.EmailSender
	publisher events.Publisher
	handlers  controllers.Controllers
}

func newApp(cfg *config.Config, store *repository.Store, publisher events.Publisher, c clients, logger *zap.Logger) *app {
	tokens := services.NewTokenIssuer(cfg.SigningKeys, cfg.TokenTTL)
	roles := services.NewRoleService(store, logger)
	views := services.NewViewBuilder(store, roles)

	accounts := services.NewAccountService(services.AccountDeps{
		Store:       store,
		Views:       views,
		Tokens:      tokens,
		Mailer:      c.mailer,
		Phones:      c.phones,
		LLM:         c.llm,
		Fetcher:     c.fetcher,
		Publisher:   publisher,
		FrontendURL: cfg.FrontendURL,
		Logger:      logger,
	})
	prompts := services.NewPromptService(store, views, c.llm, c.fetcher, publisher, cfg.PromptTemplateURL, logger)

	return &app{
		logger:    logger,
		tokens:    tokens,
		accounts:  accounts,
		prompts:   prompts,
		mailer:    c.mailer,
		publisher: publisher,
		handlers: controllers.Controllers{
			Auth:      controllers.NewAuthController(accounts, services.NewProfileService(store, logger)),
			Roles:     controllers.NewRoleController(roles),
			Companies: controllers.NewCompanyController(services.NewCompanyService(store, logger)),
			Records: controllers.NewRecordsController(
				services.NewAddressService(store),
				services.NewTaxService(store),
				services.NewTenantService(store),
				services.NewActivityService(store),
			),
			Prompts: controllers.NewPromptController(prompts),
		},
	}
}

// eventRouter returns the consumed topics. The prompt upload worker joins
// them when FILE_UPLOAD_WORKER is set.
func (a *app) eventRouter(ctx context.Context, cfg *config.Config) (*events.Router, error) {
	router := events.Handlers(a.accounts, a.prompts, a.mailer, a.logger)
	if !cfg.FileUploadWorker {
		return router, nil
	}
	s3, err := services.NewS3Service(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.logger.Info("File upload worker enabled", zap.String("bucket", cfg.AWSS3Bucket))
	return events.Merge(router, events.UploadWorker(services.NewPromptFileService(s3), a.publisher)), nil
}

// setupRouter builds the gin engine with the middleware stack, the
// operational endpoints and the API routes.
func setupRouter(a *app) *gin.Engine {
	cfg := config.GetConfig()
	if cfg != nil && cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(a.logger), gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))

	router.GET("/", rootHandler)
	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	controllers.RegisterRoutes(router, a.handlers, a.tokens)
	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	c.ExposeHeaders = []string{middleware.RequestIDHeader}
	origins := []string{"*"}
	if cfg != nil && len(cfg.CORSOrigins) > 0 {
		origins = cfg.CORSOrigins
	}
	if len(origins) == 1 && origins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}

func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "LightWork auth API is running",
	})
}

// healthCheck reports whether the database answers a ping.
func healthCheck(c *gin.Context) {
	if err := config.PingDatabase(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":        "DATABASE_CONNECTION_ERROR",
				"message":     "Database connection failed",
				"status_code": http.StatusServiceUnavailable,
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "healthy",
	})
}
