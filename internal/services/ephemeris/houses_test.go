package ephemeris

import (
	"testing"

	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAscendantMC(t *testing.T) {
	// Лондон, 2000-01-01 12:00 UT
	asc, mc := ascendantMC(280.34, 23.44, 51.5)

	assert.InDelta(t, 24.0, asc, 0.5)
	assert.InDelta(t, 279.5, mc, 0.5)
	assert.Equal(t, domain.Aries, domain.SignFromLongitude(asc))
	assert.Equal(t, domain.Capricorn, domain.SignFromLongitude(mc))
}

func TestEqualCusps(t *testing.T) {
	cusps := equalCusps(350)
	require.Len(t, cusps, 12)
	assert.InDelta(t, 350, cusps[0], 1e-9)
	assert.InDelta(t, 20, cusps[1], 1e-9)
	assert.InDelta(t, 170, cusps[6], 1e-9)
}

func TestWholeSignCusps(t *testing.T) {
	cusps, system := houseCusps(domain.HousesWholeSign, 0, 23.44, 0, 47.3, 0)
	assert.Equal(t, domain.HousesWholeSign, system)
	assert.InDelta(t, 30, cusps[0], 1e-9)
	assert.InDelta(t, 0, cusps[11], 1e-9)
}

func TestPorphyryCusps(t *testing.T) {
	cusps := porphyryCusps(90, 0)
	expected := []float64{90, 120, 150, 180, 210, 240, 270, 300, 330, 0, 30, 60}
	for i := range expected {
		assert.InDelta(t, expected[i], cusps[i], 1e-9, "cusp %d", i+1)
	}
}

func TestPlacidusCusps(t *testing.T) {
	ramc, eps, lat := 280.34, 23.44, 51.5
	asc, mc := ascendantMC(ramc, eps, lat)

	cusps, system := houseCusps(domain.HousesPlacidus, ramc, eps, lat, asc, mc)
	require.Len(t, cusps, 12)
	assert.Equal(t, domain.HousesPlacidus, system)
	assert.InDelta(t, asc, cusps[0], 1e-9)
	assert.InDelta(t, mc, cusps[9], 1e-9)

	// куспиды идут по возрастанию долготы по кругу
	for i := 0; i < 12; i++ {
		span := domain.NormalizeDegrees(cusps[(i+1)%12] - cusps[i])
		assert.Greater(t, span, 0.0, "house %d", i+1)
		assert.Less(t, span, 90.0, "house %d", i+1)
	}
}

func TestPlacidusOnEquator(t *testing.T) {
	// на экваторе при RAMC=0 куспиды совпадают с делением по прямому восхождению
	asc, mc := ascendantMC(0, 23.44, 0)
	cusps, ok := placidusCusps(0, 23.44, 0, asc, mc)
	require.True(t, ok)
	assert.InDelta(t, 90, cusps[0], 1e-6)
	assert.InDelta(t, 0, cusps[9], 1e-6)
}

func TestPlacidusPolarFallback(t *testing.T) {
	asc, mc := ascendantMC(100, 23.44, 80)
	_, ok := placidusCusps(100, 23.44, 80, asc, mc)
	assert.False(t, ok)

	_, system := houseCusps(domain.HousesPlacidus, 100, 23.44, 80, asc, mc)
	assert.Equal(t, domain.HousesPorphyry, system)
}

func TestHouseOf(t *testing.T) {
	cusps := equalCusps(350)

	assert.Equal(t, 1, houseOf(355, cusps))
	assert.Equal(t, 1, houseOf(5, cusps))
	assert.Equal(t, 2, houseOf(20, cusps))
	assert.Equal(t, 12, houseOf(349.9, cusps))
	assert.Equal(t, 0, houseOf(10, nil))
}
