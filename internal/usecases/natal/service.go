package natal

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/dogumharitan777/astro-api/internal/pkg/metrics"
	"github.com/dogumharitan777/astro-api/internal/ports/cache"
	"github.com/dogumharitan777/astro-api/internal/ports/kafka"
	"github.com/dogumharitan777/astro-api/internal/ports/repository"
	"github.com/dogumharitan777/astro-api/internal/ports/service"
	"github.com/google/uuid"
)

const cacheKeyPrefix = "natal:chart:v1:"

// Service расчёт натальной карты: нормализация, кэш, движок эфемерид, архив и события.
// Cache, ChartRepo, Publisher и Metrics необязательны.
type Service struct {
	Engine    service.IChartEngine
	Cache     cache.Cache
	ChartRepo repository.IChartRepo
	Publisher kafka.IChartPublisher
	Metrics   *metrics.Metrics

	Options   domain.ChartOptions
	DefaultTZ string
	CacheTTL  time.Duration
	Log       *slog.Logger
}

// New создаёт сервис расчёта карт
func New(
	engine service.IChartEngine,
	chartCache cache.Cache,
	chartRepo repository.IChartRepo,
	publisher kafka.IChartPublisher,
	m *metrics.Metrics,
	cfg *Config,
	log *slog.Logger,
) (*Service, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	return &Service{
		Engine:    engine,
		Cache:     chartCache,
		ChartRepo: chartRepo,
		Publisher: publisher,
		Metrics:   m,
		Options:   opts,
		DefaultTZ: cfg.DefaultTZ,
		CacheTTL:  cfg.CacheTTL,
		Log:       log,
	}, nil
}

// Calculate строит карту по сырым полям запроса.
// Ошибки кэша, архива и Kafka логируются и не влияют на ответ.
func (s *Service) Calculate(ctx context.Context, requestID uuid.UUID, raw domain.RawBirthInput) (*domain.NatalChart, error) {
	in, err := Normalize(raw, s.DefaultTZ)
	if err != nil {
		s.Metrics.InputError()
		return nil, err
	}

	key := s.cacheKey(in)
	if chart, ok := s.cached(ctx, key); ok {
		return chart, nil
	}

	chart, err := s.Engine.Chart(ctx, in, s.Options)
	if err != nil {
		if domain.IsInputError(err) {
			s.Metrics.InputError()
		}
		return nil, err
	}
	s.Metrics.ChartComputed(chart.Missing)

	payload, err := json.Marshal(chart)
	if err != nil {
		s.Log.ErrorContext(ctx, "failed to marshal chart", "error", err, "request_id", requestID)
		return chart, nil
	}

	if chart.IsComplete() {
		s.store(ctx, key, payload)
	}
	s.archive(ctx, requestID, in, chart, payload)
	s.publish(ctx, requestID, payload)

	return chart, nil
}

// cacheKey ключ кэша: канонические данные рождения плюс параметры расчёта
func (s *Service) cacheKey(in domain.BirthInput) string {
	canonical := fmt.Sprintf("%s|%s|%g|%g|%g|%s|%t",
		in.DateString(),
		in.TimeString(),
		in.TZOffset,
		in.Latitude,
		in.Longitude,
		s.Options.HouseSystem,
		s.Options.IncludeHouses,
	)
	sum := sha256.Sum256([]byte(canonical))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (s *Service) cached(ctx context.Context, key string) (*domain.NatalChart, bool) {
	if s.Cache == nil {
		return nil, false
	}

	value, err := s.Cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			s.Metrics.CacheResult(metrics.CacheMiss)
		} else {
			s.Metrics.CacheResult(metrics.CacheError)
			s.Log.WarnContext(ctx, "chart cache get failed", "error", err, "key", key)
		}
		return nil, false
	}

	var chart domain.NatalChart
	if err := json.Unmarshal([]byte(value), &chart); err != nil {
		s.Metrics.CacheResult(metrics.CacheError)
		s.Log.WarnContext(ctx, "broken chart in cache", "error", err, "key", key)
		return nil, false
	}

	s.Metrics.CacheResult(metrics.CacheHit)
	return &chart, true
}

func (s *Service) store(ctx context.Context, key string, payload []byte) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, key, string(payload), s.CacheTTL); err != nil {
		s.Log.WarnContext(ctx, "chart cache set failed", "error", err, "key", key)
	}
}

func (s *Service) archive(ctx context.Context, requestID uuid.UUID, in domain.BirthInput, chart *domain.NatalChart, payload []byte) {
	if s.ChartRepo == nil {
		return
	}

	missing, err := json.Marshal(chart.Missing)
	if err != nil {
		s.Log.ErrorContext(ctx, "failed to marshal missing bodies", "error", err)
		return
	}

	record := &domain.ChartRecord{
		ID:        uuid.New(),
		RequestID: requestID.String(),
		BirthDate: in.DateString(),
		BirthTime: in.TimeString(),
		TZOffset:  in.TZOffset,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Chart:     payload,
		Missing:   missing,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.ChartRepo.Create(ctx, record); err != nil {
		s.Log.WarnContext(ctx, "failed to archive chart (non-critical)",
			"error", err,
			"request_id", requestID,
		)
	}
}

func (s *Service) publish(ctx context.Context, requestID uuid.UUID, payload []byte) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishChart(ctx, requestID, payload); err != nil {
		s.Log.WarnContext(ctx, "failed to publish chart (non-critical)",
			"error", err,
			"request_id", requestID,
		)
	}
}
