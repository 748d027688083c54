package ephemeris

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func londonJ2000() domain.BirthInput {
	return domain.BirthInput{
		Year: 2000, Month: 1, Day: 1,
		Hour: 12,
		Latitude:  51.5,
		Longitude: -0.12,
	}
}

func assertCoversAllBodies(t *testing.T, chart *domain.NatalChart) {
	t.Helper()

	seen := make(map[domain.Body]int)
	for body := range chart.Planets {
		seen[body]++
	}
	for _, body := range chart.Missing {
		seen[body]++
	}

	assert.Len(t, seen, len(domain.Planets))
	for _, body := range domain.Planets {
		assert.Equal(t, 1, seen[body], "body %s must be either computed or missing", body)
	}
}

// Видимые геоцентрические долготы на 2000-01-01 12:00 UT и допуск
// расчёта по средним элементам орбиты, без таблиц.
var j2000Longitudes = []struct {
	body      domain.Body
	lon       float64
	sign      domain.Sign
	tolerance float64
}{
	{domain.Sun, 280.37, domain.Capricorn, 0.02},
	{domain.Moon, 223.32, domain.Scorpio, 0.02},
	{domain.Mercury, 271.89, domain.Capricorn, 0.1},
	{domain.Venus, 241.57, domain.Sagittarius, 0.1},
	{domain.Mars, 327.96, domain.Aquarius, 0.1},
	{domain.Jupiter, 25.25, domain.Aries, 0.3},
	{domain.Saturn, 40.40, domain.Taurus, 0.5},
	{domain.Uranus, 314.81, domain.Aquarius, 1.5},
	{domain.Neptune, 303.19, domain.Aquarius, 1.5},
	{domain.Pluto, 251.45, domain.Sagittarius, 0.05},
}

func TestChartWithoutTables(t *testing.T) {
	engine := New(t.TempDir(), discardLogger())

	chart, err := engine.Chart(context.Background(), londonJ2000(), domain.ChartOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.Ascendant, chart.Ascendant.Body)
	assert.Equal(t, domain.Aries, chart.Ascendant.Sign)
	assert.InDelta(t, 24.02, chart.Ascendant.Longitude, 0.05)

	assert.Empty(t, chart.Missing)
	assert.True(t, chart.IsComplete())
	assertCoversAllBodies(t, chart)

	for _, want := range j2000Longitudes {
		pos, ok := chart.Planets[want.body]
		require.True(t, ok, want.body)
		assert.InDelta(t, want.lon, pos.Longitude, want.tolerance, want.body)
		assert.Equal(t, want.sign, pos.Sign, want.body)
		assert.Zero(t, pos.House, want.body)
	}

	assert.Nil(t, chart.Cusps)
	assert.Zero(t, engine.LoadedTables())
}

func TestChartWithTables(t *testing.T) {
	// testdata: усечённые VSOP87B.ear и VSOP87B.mar, остальные планеты по средним элементам
	engine := New("testdata", discardLogger())

	chart, err := engine.Chart(context.Background(), londonJ2000(), domain.ChartOptions{})
	require.NoError(t, err)

	assert.Empty(t, chart.Missing)
	assertCoversAllBodies(t, chart)
	assert.Equal(t, 2, engine.LoadedTables())

	sun := chart.Planets[domain.Sun]
	assert.Equal(t, domain.Capricorn, sun.Sign)
	assert.InDelta(t, 280.369, sun.Longitude, 0.01)

	mars := chart.Planets[domain.Mars]
	assert.Equal(t, domain.Aquarius, mars.Sign)
	assert.InDelta(t, 327.96, mars.Longitude, 0.03)

	moon := chart.Planets[domain.Moon]
	assert.InDelta(t, 223.32, moon.Longitude, 0.02)

	pluto := chart.Planets[domain.Pluto]
	assert.Equal(t, domain.Sagittarius, pluto.Sign)
	assert.InDelta(t, 251.45, pluto.Longitude, 0.05)
}

func TestChartPlutoOutsideSeriesRange(t *testing.T) {
	engine := New("testdata", discardLogger())
	in := londonJ2000()
	in.Year, in.Month, in.Day = 1850, 6, 15

	chart, err := engine.Chart(context.Background(), in, domain.ChartOptions{})
	require.NoError(t, err)

	assert.Equal(t, []domain.Body{domain.Pluto}, chart.Missing)
	assert.Len(t, chart.Planets, len(domain.Planets)-1)
	assert.False(t, chart.IsComplete())
	assertCoversAllBodies(t, chart)
}

func TestChartBrokenTables(t *testing.T) {
	earth, err := os.ReadFile(filepath.Join("testdata", "VSOP87B.ear"))
	require.NoError(t, err)

	t.Run("planet table of another body", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "VSOP87B.mar"), earth, 0o644))

		chart, err := New(dir, discardLogger()).Chart(context.Background(), londonJ2000(), domain.ChartOptions{})
		require.NoError(t, err)

		assert.Equal(t, []domain.Body{domain.Mars}, chart.Missing)
		assertCoversAllBodies(t, chart)
	})

	t.Run("empty earth table", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "VSOP87B.ear"), []byte("not a table\n"), 0o644))

		chart, err := New(dir, discardLogger()).Chart(context.Background(), londonJ2000(), domain.ChartOptions{})
		require.NoError(t, err)

		assert.Len(t, chart.Missing, len(domain.Planets)-1)
		assert.Equal(t, domain.Sun, chart.Missing[0])
		assert.NotContains(t, chart.Missing, domain.Moon)
		assertCoversAllBodies(t, chart)
	})
}

func TestChartIsDeterministic(t *testing.T) {
	engine := New(t.TempDir(), discardLogger())
	in := domain.BirthInput{Year: 1999, Month: 7, Day: 21, Hour: 14, Minute: 30, TZOffset: 3, Latitude: 55.75, Longitude: 37.62}

	first, err := engine.Chart(context.Background(), in, domain.ChartOptions{})
	require.NoError(t, err)
	second, err := engine.Chart(context.Background(), in, domain.ChartOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestChartWithHouses(t *testing.T) {
	engine := New(t.TempDir(), discardLogger())

	chart, err := engine.Chart(context.Background(), londonJ2000(), domain.ChartOptions{
		HouseSystem:   domain.HousesPlacidus,
		IncludeHouses: true,
	})
	require.NoError(t, err)

	require.Len(t, chart.Cusps, 12)
	assert.Equal(t, domain.HousesPlacidus, chart.HouseSystem)
	assert.InDelta(t, chart.Ascendant.Longitude, chart.Cusps[0], 1e-9)

	for body, pos := range chart.Planets {
		assert.GreaterOrEqual(t, pos.House, 1, body)
		assert.LessOrEqual(t, pos.House, 12, body)
	}
}

func TestChartPolarPlacidusFallsBack(t *testing.T) {
	engine := New(t.TempDir(), discardLogger())
	in := londonJ2000()
	in.Latitude = 78.2

	chart, err := engine.Chart(context.Background(), in, domain.ChartOptions{
		HouseSystem:   domain.HousesPlacidus,
		IncludeHouses: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.HousesPorphyry, chart.HouseSystem)
	assert.Len(t, chart.Cusps, 12)
}

func TestChartValidation(t *testing.T) {
	engine := New(t.TempDir(), discardLogger())

	tests := []struct {
		name   string
		mutate func(*domain.BirthInput)
	}{
		{"latitude", func(in *domain.BirthInput) { in.Latitude = 91 }},
		{"longitude", func(in *domain.BirthInput) { in.Longitude = -180.5 }},
		{"hour", func(in *domain.BirthInput) { in.Hour = 25 }},
		{"minute", func(in *domain.BirthInput) { in.Minute = 60 }},
		{"second", func(in *domain.BirthInput) { in.Second = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := londonJ2000()
			tt.mutate(&in)

			chart, err := engine.Chart(context.Background(), in, domain.ChartOptions{})
			require.Error(t, err)
			assert.Nil(t, chart)
			assert.True(t, domain.IsInputError(err))
		})
	}
}
