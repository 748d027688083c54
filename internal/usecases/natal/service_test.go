package natal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/dogumharitan777/astro-api/internal/pkg/metrics"
	"github.com/dogumharitan777/astro-api/internal/ports/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	calls   int
	last    domain.BirthInput
	missing []domain.Body
	err     error
}

func (f *fakeEngine) Chart(_ context.Context, in domain.BirthInput, opts domain.ChartOptions) (*domain.NatalChart, error) {
	f.calls++
	f.last = in
	if f.err != nil {
		return nil, f.err
	}

	chart := &domain.NatalChart{
		Ascendant: domain.NewBodyPosition(domain.Ascendant, 24),
		Planets:   map[domain.Body]domain.BodyPosition{},
		Missing:   []domain.Body{},
	}
	skip := map[domain.Body]bool{}
	for _, b := range f.missing {
		skip[b] = true
	}
	for i, body := range domain.Planets {
		if skip[body] {
			chart.Missing = append(chart.Missing, body)
			continue
		}
		chart.Planets[body] = domain.NewBodyPosition(body, float64(i*30+1))
	}
	return chart, nil
}

type memCache struct {
	mu     sync.Mutex
	data   map[string]string
	ttl    time.Duration
	getErr error
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}}
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttl = ttl
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close() error               { return nil }

type fakeRepo struct {
	records []*domain.ChartRecord
	err     error
}

func (r *fakeRepo) Create(_ context.Context, record *domain.ChartRecord) error {
	r.records = append(r.records, record)
	return r.err
}

type fakePublisher struct {
	keys []uuid.UUID
	err  error
}

func (p *fakePublisher) PublishChart(_ context.Context, requestID uuid.UUID, _ []byte) error {
	p.keys = append(p.keys, requestID)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *Config {
	return &Config{
		HouseSystem: "placidus",
		DefaultTZ:   "+03:00",
		CacheTTL:    24 * time.Hour,
	}
}

func validRaw() domain.RawBirthInput {
	return domain.RawBirthInput{Date: "2000-01-01", Time: "12:00", TZ: "+00:00", Lat: "51.5", Lon: "-0.12"}
}

func TestCalculateFullFlow(t *testing.T) {
	engine := &fakeEngine{}
	c := newMemCache()
	repo := &fakeRepo{}
	pub := &fakePublisher{}

	svc, err := New(engine, c, repo, pub, metrics.New(), testConfig(), testLogger())
	require.NoError(t, err)

	requestID := uuid.New()
	chart, err := svc.Calculate(context.Background(), requestID, validRaw())
	require.NoError(t, err)
	assert.True(t, chart.IsComplete())
	assert.Len(t, chart.Planets, 10)

	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, 0.0, engine.last.TZOffset)
	assert.Len(t, c.data, 1)
	assert.Equal(t, 24*time.Hour, c.ttl)

	require.Len(t, repo.records, 1)
	record := repo.records[0]
	assert.Equal(t, requestID.String(), record.RequestID)
	assert.Equal(t, "2000/01/01", record.BirthDate)
	assert.Equal(t, "12:00:00", record.BirthTime)
	assert.JSONEq(t, `[]`, string(record.Missing))

	var archived domain.NatalChart
	require.NoError(t, json.Unmarshal(record.Chart, &archived))
	assert.Equal(t, chart.Ascendant, archived.Ascendant)

	assert.Equal(t, []uuid.UUID{requestID}, pub.keys)
}

func TestCalculateServesFromCache(t *testing.T) {
	engine := &fakeEngine{}
	c := newMemCache()
	pub := &fakePublisher{}

	svc, err := New(engine, c, nil, pub, nil, testConfig(), testLogger())
	require.NoError(t, err)

	first, err := svc.Calculate(context.Background(), uuid.New(), validRaw())
	require.NoError(t, err)

	raw := validRaw()
	raw.Date = "2000/01/01"
	second, err := svc.Calculate(context.Background(), uuid.New(), raw)
	require.NoError(t, err)

	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, first, second)
	assert.Len(t, pub.keys, 1)
}

func TestCalculatePartialChartIsNotCached(t *testing.T) {
	engine := &fakeEngine{missing: []domain.Body{domain.Pluto}}
	c := newMemCache()
	m := metrics.New()

	svc, err := New(engine, c, nil, nil, m, testConfig(), testLogger())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		chart, err := svc.Calculate(context.Background(), uuid.New(), validRaw())
		require.NoError(t, err)
		assert.Equal(t, []domain.Body{domain.Pluto}, chart.Missing)
		assert.NotContains(t, chart.Planets, domain.Pluto)
	}

	assert.Equal(t, 2, engine.calls)
	assert.Empty(t, c.data)
}

func TestCalculateInputError(t *testing.T) {
	engine := &fakeEngine{}
	svc, err := New(engine, nil, nil, nil, nil, testConfig(), testLogger())
	require.NoError(t, err)

	raw := validRaw()
	raw.Date = "not-a-date"
	_, err = svc.Calculate(context.Background(), uuid.New(), raw)
	require.Error(t, err)
	assert.True(t, domain.IsInputError(err))
	assert.Zero(t, engine.calls)
}

func TestCalculateEngineInputError(t *testing.T) {
	engine := &fakeEngine{err: domain.NewInputError("hour %d out of range [0, 23]", 25)}
	svc, err := New(engine, nil, nil, nil, nil, testConfig(), testLogger())
	require.NoError(t, err)

	_, err = svc.Calculate(context.Background(), uuid.New(), validRaw())
	require.Error(t, err)
	assert.True(t, domain.IsInputError(err))
}

func TestCalculateIgnoresSideEffectFailures(t *testing.T) {
	engine := &fakeEngine{}
	c := newMemCache()
	c.getErr = errors.New("redis down")
	repo := &fakeRepo{err: errors.New("pg down")}
	pub := &fakePublisher{err: errors.New("kafka down")}

	svc, err := New(engine, c, repo, pub, nil, testConfig(), testLogger())
	require.NoError(t, err)

	chart, err := svc.Calculate(context.Background(), uuid.New(), validRaw())
	require.NoError(t, err)
	assert.NotNil(t, chart)
	assert.Len(t, repo.records, 1)
	assert.Len(t, pub.keys, 1)
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	in := domain.BirthInput{Year: 2000, Month: 1, Day: 1, Hour: 12, Latitude: 51.5, Longitude: -0.12}

	plain := &Service{Options: domain.ChartOptions{HouseSystem: domain.HousesPlacidus}}
	houses := &Service{Options: domain.ChartOptions{HouseSystem: domain.HousesPlacidus, IncludeHouses: true}}

	assert.Equal(t, plain.cacheKey(in), plain.cacheKey(in))
	assert.NotEqual(t, plain.cacheKey(in), houses.cacheKey(in))
	assert.Contains(t, plain.cacheKey(in), cacheKeyPrefix)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(&fakeEngine{}, nil, nil, nil, nil, &Config{HouseSystem: "koch", DefaultTZ: "+03:00"}, testLogger())
	assert.Error(t, err)
}
