package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/profibuy/storefront/internal/cfg"
	v1Grpc "github.com/profibuy/storefront/internal/delivery/v1/grpc"
	v1Http "github.com/profibuy/storefront/internal/delivery/v1/http"
	"github.com/profibuy/storefront/internal/delivery/v1/http/views"
	"github.com/profibuy/storefront/internal/infrastructure/backend"
	"github.com/profibuy/storefront/internal/infrastructure/kafka"
	minioInfra "github.com/profibuy/storefront/internal/infrastructure/minio"
	"github.com/profibuy/storefront/internal/infrastructure/proxy"
	s3Repo "github.com/profibuy/storefront/internal/repository/minio"
	"github.com/profibuy/storefront/internal/repository/pgdb"
	pgdbConv "github.com/profibuy/storefront/internal/repository/pgdb/converter"
	"github.com/profibuy/storefront/internal/repository/redis"
	redisConv "github.com/profibuy/storefront/internal/repository/redis/converter"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/clients"
	"github.com/profibuy/storefront/pkg/closer"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
	"github.com/profibuy/storefront/pkg/postgres"
	"github.com/profibuy/storefront/pkg/tr"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 15 * time.Second
	topicTimeout    = 10 * time.Second
)

// App собирает зависимости витрины и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	// ctx живёт до начала остановки: от него зависят фоновые задачи.
	ctx    context.Context
	cancel context.CancelFunc

	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	worker  *kafka.OutboxWorker
	backend *backend.Client
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(logger, 0),
		ctx:    ctx,
		cancel: cancel,
	}

	if err := a.init(); err != nil {
		cancel()
		closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer closeCancel()
		_ = a.closer.Close(closeCtx)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

// init поднимает зависимости. Функции закрытия регистрируются в обратном порядке
// остановки: то, что добавлено последним, закроется первым.
func (a *App) init() error {
	initCtx, cancel := context.WithTimeout(a.ctx, initTimeout)
	defer cancel()

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	if err := redisClient.Ping(initCtx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return err
	}
	a.closer.Add("redis", redisClient.Close)

	db, err := initPGDB(initCtx, a.logger, a.cfg)
	if err != nil {
		return err
	}
	a.closer.Add("postgres", db.Close)

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return err
	}
	if err := clients.EnsureBucket(initCtx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return err
	}

	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize kafka producer")
		return err
	}
	if err := producer.EnsureTopic(topicTimeout); err != nil {
		// брокер может подняться позже: события копятся в outbox
		a.logger.Warnf("kafka topic %s not ensured: %v", a.cfg.Kafka.Topic, err)
	}
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })

	// Repositories
	sessionRepo := redis.NewSessionRepo(redisClient, redisConv.SessionConverter{}, a.cfg.Session.TTL, a.logger)
	cacheRepo := redis.NewCacheRepo(redisClient, a.cfg.Redis, a.logger)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.EventConverter{})
	objectRepo := s3Repo.NewObjectRepo(minioClient, a.cfg.Minio.BucketName)

	// Infrastructure
	a.backend = backend.NewClient(a.cfg.Backend, a.logger)
	media := minioInfra.NewMinioInfrastructure(objectRepo, a.cfg.Minio, a.logger, context.WithoutCancel(a.ctx))
	a.closer.Add("media cleanup", media.WaitForCleanup)

	a.worker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, db)
	a.closer.Add("outbox worker", func(context.Context) error {
		a.worker.Stop()
		return nil
	})

	// Use cases
	events := usecase.NewEventsUC(outboxRepo, tr.NewManager(db.Pool), a.logger)
	sessions := usecase.NewSessionUC(sessionRepo, a.logger)
	catalog := usecase.NewCatalogUC(a.backend, cacheRepo, a.logger)
	cart := usecase.NewCartUC(a.backend, sessions, events, a.logger)
	checkout := usecase.NewCheckoutUC(a.backend, sessions, events, a.logger)
	auth := usecase.NewAuthUC(a.backend, sessions, a.cfg.Auth, a.logger)
	admin := usecase.NewAdminUC(a.backend, a.backend, cacheRepo, a.logger)
	jobs := usecase.NewJobTracker(a.ctx, a.backend, events, a.cfg.Jobs, a.logger)
	a.closer.Add("supplier jobs", jobs.Shutdown)
	mediaUC := usecase.NewMediaUC(media, a.cfg.Minio.PublicURL, a.logger)

	// Delivery
	apiProxy, err := proxy.New(a.cfg.Backend.URL, v1Http.SessionToken, a.logger)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize api proxy")
		return err
	}

	renderer, err := views.NewRenderer(a.logger)
	if err != nil {
		a.logger.Errorf(err, "failed to parse templates")
		return err
	}

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, a.logger)
	router.Init(v1Http.Handlers{
		Pages:     v1Http.NewPageHandler(catalog, cart, checkout, auth, admin, renderer, a.logger),
		Store:     v1Http.NewStoreHandler(cart, auth, checkout, catalog, a.logger),
		Admin:     v1Http.NewAdminHandler(admin, catalog, a.logger),
		Suppliers: v1Http.NewSupplierHandler(admin, jobs, a.logger),
		Media:     v1Http.NewMediaHandler(mediaUC, a.logger),
		Sessions:  v1Http.NewSessionMiddleware(sessions, a.cfg.Session, a.logger),
		AdminGate: func(redirect bool) func(http.Handler) http.Handler {
			return v1Http.AdminOnly(auth, redirect)
		},
		APIProxy:   apiProxy,
		SwaggerURL: a.cfg.Http.SwaggerURL,
	})

	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)
	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.closer.Add("servers", a.stopServers)

	return nil
}

// Run запускает серверы и фоновые задачи и блокируется до сигнала или падения сервера.
func (a *App) Run() error {
	a.worker.Start(a.ctx)
	go a.grpcSrv.WatchBackend(a.ctx, a.backend, a.cfg.Backend.HealthInterval)

	errCh := make(chan error, 2)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- e.Wrap("grpc", err)
		}
	}()
	go func() {
		a.logger.Infof("HTTP server started on port %s, backend %s", a.cfg.Http.Port, a.cfg.Backend.URL)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- e.Wrap("http", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case sig := <-shutdown:
		a.logger.Infof("Received %s, stopping gracefully...", sig)
	}

	a.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.closer.Close(ctx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func (a *App) stopServers(ctx context.Context) error {
	var errs []error

	if err := a.httpSrv.Stop(ctx); err != nil {
		errs = append(errs, e.Wrap("http", err))
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		errs = append(errs, e.Wrap("grpc", err))
	}

	return errors.Join(errs...)
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Pool.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(ctx); err != nil {
		logger.Errorf(err, "failed to ping database")
		db.Pool.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
