package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/dogumharitan777/astro-api/internal/adapters/primary/http"
	healthcheckController "github.com/dogumharitan777/astro-api/internal/adapters/primary/http/controllers/healthcheck"
	metricsController "github.com/dogumharitan777/astro-api/internal/adapters/primary/http/controllers/metrics"
	natalController "github.com/dogumharitan777/astro-api/internal/adapters/primary/http/controllers/natal"
	kafkaAdapter "github.com/dogumharitan777/astro-api/internal/adapters/secondary/kafka"
	"github.com/dogumharitan777/astro-api/internal/adapters/secondary/storage/inmemory"
	"github.com/dogumharitan777/astro-api/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/dogumharitan777/astro-api/internal/adapters/secondary/storage/redis"
	"github.com/dogumharitan777/astro-api/internal/adapters/secondary/storage/s3"
	"github.com/dogumharitan777/astro-api/internal/pkg/metrics"
	"github.com/dogumharitan777/astro-api/internal/ports/cache"
	"github.com/dogumharitan777/astro-api/internal/ports/kafka"
	"github.com/dogumharitan777/astro-api/internal/ports/repository"
	chartRepo "github.com/dogumharitan777/astro-api/internal/repository/chart"
	"github.com/dogumharitan777/astro-api/internal/services/ephemeris"
	jobScheduler "github.com/dogumharitan777/astro-api/internal/services/jobs"
	"github.com/dogumharitan777/astro-api/internal/usecases/natal"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB           *sqlx.DB
	HTTPServer   *http.Server
	Cache        cache.Cache
	Publisher    kafka.IChartPublisher
	JobScheduler *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения.
// При ошибке возвращает то, что успело открыться, для закрытия.
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	deps := &Dependencies{}
	checkers := map[string]healthcheckController.Checker{}

	deps.JobScheduler = jobScheduler.NewScheduler(a.Log, jobScheduler.DefaultRetries)

	engine, err := a.initEphemeris(ctx, deps.JobScheduler)
	if err != nil {
		return deps, err
	}

	var archive repository.IChartRepo
	if a.Cfg.Postgres.Enabled {
		db, err := a.initPostgres(ctx)
		if err != nil {
			return deps, fmt.Errorf("failed to init postgres: %w", err)
		}
		deps.DB = db
		persistenceLayer := pg.NewDB(db)
		archive = chartRepo.New(persistenceLayer, a.Log)
		checkers["postgres"] = persistenceLayer.Ping
	}

	if a.Cfg.Redis.Enabled {
		deps.Cache = a.initCache()
		if deps.Cache != nil {
			checkers["redis"] = deps.Cache.Ping
		}
	}
	if deps.Cache == nil && a.Cfg.Chart.MemoryCacheSize > 0 {
		deps.Cache = inmemory.NewCache(a.Cfg.Chart.MemoryCacheSize)
		a.Log.Info("using in-memory chart cache", "max_entries", a.Cfg.Chart.MemoryCacheSize)
	}

	if a.Cfg.Kafka.Enabled {
		producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
		if err != nil {
			return deps, fmt.Errorf("failed to init kafka: %w", err)
		}
		deps.Publisher = producer
	}

	m := metrics.New()

	natalUseCase, err := natal.New(engine, deps.Cache, archive, deps.Publisher, m, a.Cfg.Chart, a.Log)
	if err != nil {
		return deps, fmt.Errorf("failed to init natal use case: %w", err)
	}

	if a.Cfg.Auth.Secret == defaultSecret {
		a.Log.Warn("using default API secret, set SECRET or NATAL_API_AUTH_SECRET")
	}

	deps.HTTPServer = server.NewHTTPServer(a.Cfg.Server, a.Log, m,
		healthcheckController.New(checkers, a.Log),
		metricsController.New(m),
		natalController.New(natalUseCase, a.Cfg.Auth.Secret, a.Log),
	)

	return deps, nil
}

// initEphemeris готовит каталог эфемерид и, если включено, докачивает файлы из S3.
// Любая ошибка здесь останавливает старт.
func (a *App) initEphemeris(ctx context.Context, scheduler *jobScheduler.Scheduler) (*ephemeris.Engine, error) {
	dir, err := a.Cfg.Ephemeris.EnsureDir()
	if err != nil {
		return nil, err
	}

	if a.Cfg.S3.Enabled {
		client, err := a.Cfg.S3.NewClient()
		if err != nil {
			return nil, fmt.Errorf("failed to init s3: %w", err)
		}

		provisioner := ephemeris.NewProvisioner(
			s3.NewClient(client, a.Cfg.S3.Bucket, a.Log),
			a.Cfg.S3.Prefix,
			dir,
			a.Log,
		)
		if _, err := provisioner.Sync(ctx); err != nil {
			return nil, fmt.Errorf("failed to provision ephemeris files: %w", err)
		}

		if a.Cfg.S3.SyncInterval > 0 {
			scheduler.Register(jobScheduler.NewEphemerisSync(provisioner, a.Cfg.S3.SyncInterval, a.Log))
		}
	}

	a.Log.Info("ephemeris ready", "dir", dir)
	return ephemeris.New(dir, a.Log), nil
}

func (a *App) initPostgres(ctx context.Context) (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// initCache кэш опционален: без Redis сервис просто считает каждый запрос
func (a *App) initCache() cache.Cache {
	redisClient, err := a.Cfg.Redis.NewConnection()
	if err != nil {
		a.Log.Warn("failed to init redis cache, continuing without cache", "error", err)
		return nil
	}

	a.Log.Info("redis cache connected successfully")
	return redisAdapter.NewClient(redisClient)
}
