package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/catalog-backend/internal/cfg"
	v1Grpc "github.com/DRSN-tech/catalog-backend/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/catalog-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/catalog-backend/internal/repository/memory"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/catalog-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/closer"
	"github.com/DRSN-tech/catalog-backend/pkg/clients"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/DRSN-tech/catalog-backend/pkg/postgres"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	dependencyTimeout  = 10 * time.Second
	kafkaTopicTimeout  = 10 * time.Second
	closerForceTimeout = 2 * time.Second
)

// App собирает зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	handler http.Handler
	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
}

// NewApp подключается к хранилищу, кэшу и брокеру согласно конфигурации.
// Ресурсы, открытые до ошибки, закрываются.
func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(closerForceTimeout),
	}

	productUC, err := a.initProductUC()
	if err != nil {
		if cerr := a.closer.Close(context.Background()); cerr != nil {
			logger.Warnf("cleanup after failed start: %v", cerr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r := chi.NewRouter()
	v1Http.NewRouter(r, cfg.Http, logger).Init(productUC)
	a.handler = r
	a.httpSrv = v1Http.NewServer(r, cfg.Http, logger)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, logger)
	a.grpcSrv.RegisterServices()

	return a, nil
}

// Handler возвращает HTTP-обработчик API.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run запускает HTTP и gRPC серверы и блокируется до сигнала завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		if err := a.httpSrv.Run(); err != nil {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	a.grpcSrv.SetServing(true)

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.shutdown()

	return appErr
}

// Migrate применяет миграции PostgreSQL и завершается.
func Migrate(cfg *config.Config, logger logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), dependencyTimeout)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Db, logger)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer db.Close()

	if err := db.RunMigrations(logger); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// === Graceful shutdown ===
func (a *App) shutdown() {
	a.grpcSrv.SetServing(false)

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
	defer cancel()

	if err := a.httpSrv.Stop(ctx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	}

	if err := a.grpcSrv.Stop(ctx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			a.logger.Errorf(err, "gRPC server shutdown error")
		} else {
			a.logger.Warnf("gRPC server shutdown timeout")
		}
	}

	if err := a.closer.Close(ctx); err != nil {
		a.logger.Warnf("%v", err)
	}

	a.logger.Infof("Application shutdown complete")
}

func (a *App) initProductUC() (*usecase.ProductUseCase, error) {
	productRepo, txManager, err := a.initStore()
	if err != nil {
		return nil, err
	}

	cacheRepo, err := a.initCache()
	if err != nil {
		return nil, err
	}

	return usecase.NewProductUC(productRepo, txManager, cacheRepo, a.initProducer(), a.logger), nil
}

func (a *App) initStore() (usecase.ProductRepository, usecase.TxManager, error) {
	switch a.cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := a.initPGDB()
		if err != nil {
			return nil, nil, err
		}

		txManager, err := manager.New(trmpgx.NewDefaultFactory(db.Pool))
		if err != nil {
			return nil, nil, e.Wrap(whereami.WhereAmI(), err)
		}

		repo := pgdb.NewProductRepo(db.Pool, trmpgx.DefaultCtxGetter, pgdbConv.NewProductConverterImpl())
		a.logger.Infof("Using PostgreSQL product store")
		return repo, txManager, nil

	case config.StoreDriverMemory:
		a.logger.Warnf("Using in-memory product store, data is lost on restart")
		return memory.NewProductRepo(), memory.NewTxManager(), nil

	default:
		return nil, nil, e.Wrap(a.cfg.Store.Driver, e.ErrUnknownStoreDriver)
	}
}

func (a *App) initPGDB() (*postgres.PgDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dependencyTimeout)
	defer cancel()

	db, err := postgres.Connect(ctx, a.cfg.Db, a.logger)
	if err != nil {
		a.logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add("postgres", func(context.Context) error {
		db.Close()
		return nil
	})

	if err := db.RunMigrations(a.logger); err != nil {
		a.logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

func (a *App) initCache() (usecase.CacheRepository, error) {
	if !a.cfg.Redis.Enabled() {
		a.logger.Infof("REDIS_ADDR is empty, product cache disabled")
		return redis.NewNopCache(), nil
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.AddErr("redis", redisClient.Close)

	ctx, cancel := context.WithTimeout(context.Background(), dependencyTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return redis.NewCacheRepo(redisClient, redisConv.NewProductConverterImpl(), a.cfg.Redis, a.logger), nil
}

// initProducer не останавливает запуск: без брокера сервис работает, события теряются с предупреждением в логе.
func (a *App) initProducer() usecase.MessageProducer {
	if !a.cfg.Kafka.Enabled() {
		a.logger.Infof("KAFKA_BROKERS is empty, product events disabled")
		return kafka.NewNopProducer()
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.AddErr("kafka", producer.Close)

	if err := producer.EnsureTopic(kafkaTopicTimeout); err != nil {
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	return producer
}
