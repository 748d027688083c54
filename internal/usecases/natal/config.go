package natal

import (
	"fmt"
	"time"

	"github.com/dogumharitan777/astro-api/internal/domain"
)

// Config параметры расчёта карт. MemoryCacheSize: размер in-memory кэша без Redis, 0 выключает.
type Config struct {
	HouseSystem     string        `split_words:"true" default:"placidus"`
	IncludeHouses   bool          `split_words:"true" default:"false"`
	DefaultTZ       string        `envconfig:"DEFAULT_TZ" default:"+03:00"`
	CacheTTL        time.Duration `split_words:"true" default:"24h"`
	MemoryCacheSize int           `split_words:"true" default:"0"`
}

// Options параметры расчёта из конфигурации
func (c *Config) Options() (domain.ChartOptions, error) {
	system := domain.HouseSystem(c.HouseSystem)
	if system == "" {
		system = domain.HousesPlacidus
	}
	if !system.IsValid() {
		return domain.ChartOptions{}, fmt.Errorf("unsupported house system %q", c.HouseSystem)
	}

	if _, err := ParseTZOffset(c.DefaultTZ); err != nil {
		return domain.ChartOptions{}, fmt.Errorf("invalid default tz: %w", err)
	}

	return domain.ChartOptions{
		HouseSystem:   system,
		IncludeHouses: c.IncludeHouses,
	}, nil
}
