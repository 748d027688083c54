package app

import (
	server "github.com/dogumharitan777/astro-api/internal/adapters/primary/http"
	"github.com/dogumharitan777/astro-api/internal/adapters/primary/http/middlewares"
	kafkaAdapter "github.com/dogumharitan777/astro-api/internal/adapters/secondary/kafka"
	"github.com/dogumharitan777/astro-api/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/dogumharitan777/astro-api/internal/adapters/secondary/storage/redis"
	"github.com/dogumharitan777/astro-api/internal/adapters/secondary/storage/s3"
	"github.com/dogumharitan777/astro-api/internal/pkg/logger"
	"github.com/dogumharitan777/astro-api/internal/services/ephemeris"
	"github.com/dogumharitan777/astro-api/internal/usecases/natal"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultSecret = "CHANGE_ME"

type Config struct {
	Log       *logger.Config          `envconfig:"LOG"`
	Server    *server.Config          `envconfig:"APISERVER"`
	Auth      *middlewares.AuthConfig `envconfig:"AUTH"`
	Ephemeris *ephemeris.Config       `envconfig:"EPHEMERIS"`
	Chart     *natal.Config           `envconfig:"CHART"`
	Redis     *redisAdapter.Config    `envconfig:"REDIS"`
	Postgres  *pg.Config              `envconfig:"POSTGRES"`
	Kafka     *kafkaAdapter.Config    `envconfig:"KAFKA"`
	S3        *s3.Config              `envconfig:"S3"`
}

// NewEnvConfig читает deployments/local/.env (если есть) и переменные окружения.
// SECRET, SE_EPHE_PATH и PORT без префикса тоже подхватываются.
func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
