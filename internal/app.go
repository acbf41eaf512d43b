package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"filestore-api/config"
	"filestore-api/internal/application/bus"
	"filestore-api/internal/application/handlers"
	"filestore-api/internal/application/ports"
	"filestore-api/internal/application/uow"
	"filestore-api/internal/application/workers"
	"filestore-api/internal/domain/command"
	"filestore-api/internal/domain/event"
	"filestore-api/internal/infrastructure/db/postgres"
	"filestore-api/internal/infrastructure/metrics"
	"filestore-api/internal/infrastructure/mq"
	"filestore-api/internal/infrastructure/peers"
	"filestore-api/internal/infrastructure/storage"
	"filestore-api/internal/interface/api/rest"
	"filestore-api/internal/interface/api/rest/middleware"
	"filestore-api/pkg/rmqconsumer"
)

// Cron intervals.
const (
	expiredLinksInterval   = time.Minute
	purgeExecutedInterval  = time.Hour
	purgeExecutedRetention = 24 * time.Hour
	eraseSweepInterval     = 10 * time.Minute
	reconcileSizesInterval = 5 * time.Minute
	republishInterval      = 24 * time.Hour
	republishPageSize      = 500
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         *mq.RabbitMQ
	mqConsumer *rmqconsumer.Consumer
	bus        ports.Bus
	workers    []func(ctx context.Context) error
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file loaded", zap.Error(err))
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// byte storage
	var store ports.ByteStorage
	switch cfg.Storage.Kind {
	case "s3":
		store, err = storage.NewS3(ctx, logger, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to connect to S3", zap.Error(err))
		}
	default:
		store = storage.NewLocal(logger, cfg.Storage.Path)
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}

	// application core
	peerClient := peers.New(logger)
	cmdHandlers := handlers.NewCommandHandlers(logger, cfg, peerClient, rbMQ, mCounter)
	uowFactory := uow.NewFactory(dbPool, store, cfg.App.Name, cfg.Broker.PublishRetryCount)

	msgBus := bus.New(logger, uowFactory, cmdHandlers)
	msgBus.Subscribe(event.KindFileStored, cmdHandlers.OnFileStored)
	msgBus.Subscribe(event.KindFileDeleted, cmdHandlers.OnFileDeleted)

	// rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, mq.NewDeliveryHandler(logger, msgBus))
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(rbMQ.BindKeys()); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	a := &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
		bus:        msgBus,
	}
	a.initWorkers()

	return a, nil
}

func (a *App) initWorkers() {
	outbox := workers.NewOutbox(a.logger, a.bus, a.cfg.Broker.ChunkSize)
	inbox := workers.NewInbox(a.logger, a.bus, a.cfg.Broker.ChunkSize)

	crons := []*workers.Cron{
		workers.NewCron(a.logger, a.bus, "delete-expired-links", expiredLinksInterval,
			func() command.Command { return command.DeleteExpiredLinks{} }),
		workers.NewCron(a.logger, a.bus, "purge-executed-broker-messages", purgeExecutedInterval,
			func() command.Command {
				return command.DeleteExecutedBrokerMessages{OlderThan: purgeExecutedRetention}
			}),
		workers.NewCron(a.logger, a.bus, "erase-deleted-files", eraseSweepInterval,
			func() command.Command {
				return command.EraseDeletedFiles{Retention: a.cfg.Storage.FileRetention}
			}),
		workers.NewCron(a.logger, a.bus, "reconcile-account-sizes", reconcileSizesInterval,
			func() command.Command { return command.UpdateAccountsActualSizes{} }),
		workers.NewCron(a.logger, a.bus, "republish-stored-files", republishInterval,
			func() command.Command { return command.RepublishStoredFiles{Limit: republishPageSize} }),
	}

	a.workers = append(a.workers, outbox.Run, inbox.Run)
	for _, c := range crons {
		a.workers = append(a.workers, c.Run)
	}
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run launches the HTTP server, the broker consumer and every
// background worker under one errgroup, and stops them together.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	for _, w := range a.workers {
		w := w
		g.Go(func() error { return w(ctx) })
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	baseURL := "http://" + a.cfg.App.Host + ":" + a.cfg.App.Port

	rest.NewFileController(a.router, a.bus, a.logger, baseURL)
	rest.NewLinkController(a.router, a.bus, a.logger)
	rest.NewAccountController(a.router, a.bus, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
