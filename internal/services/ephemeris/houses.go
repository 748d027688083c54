package ephemeris

import (
	"math"

	"github.com/dogumharitan777/astro-api/internal/domain"
)

const (
	deg = math.Pi / 180
	rad = 180 / math.Pi

	placidusMaxIter = 100
	placidusEpsilon = 1e-10
)

// ascendantMC считает Асцендент и MC по RAMC, истинному наклону эклиптики и широте (всё в градусах)
func ascendantMC(ramc, eps, lat float64) (asc, mc float64) {
	sinR, cosR := math.Sincos(ramc * deg)
	sinE, cosE := math.Sincos(eps * deg)
	tanLat := math.Tan(lat * deg)

	asc = math.Atan2(cosR, -(sinR*cosE + tanLat*sinE)) * rad
	mc = math.Atan2(sinR, cosR*cosE) * rad

	return domain.NormalizeDegrees(asc), domain.NormalizeDegrees(mc)
}

// houseCusps возвращает 12 куспидов. Плацидус там, где он не определён
// (за полярным кругом), заменяется на Порфирия; фактическая система возвращается вторым значением.
func houseCusps(system domain.HouseSystem, ramc, eps, lat, asc, mc float64) ([]float64, domain.HouseSystem) {
	switch system {
	case domain.HousesEqual:
		return equalCusps(asc), domain.HousesEqual
	case domain.HousesWholeSign:
		return equalCusps(math.Floor(asc/30) * 30), domain.HousesWholeSign
	case domain.HousesPorphyry:
		return porphyryCusps(asc, mc), domain.HousesPorphyry
	default:
		if cusps, ok := placidusCusps(ramc, eps, lat, asc, mc); ok {
			return cusps, domain.HousesPlacidus
		}
		return porphyryCusps(asc, mc), domain.HousesPorphyry
	}
}

func equalCusps(first float64) []float64 {
	cusps := make([]float64, 12)
	for i := range cusps {
		cusps[i] = domain.NormalizeDegrees(first + float64(i)*30)
	}
	return cusps
}

func porphyryCusps(asc, mc float64) []float64 {
	ic := domain.NormalizeDegrees(mc + 180)
	q := domain.NormalizeDegrees(asc - mc)
	r := domain.NormalizeDegrees(ic - asc)

	cusps := make([]float64, 12)
	cusps[0] = asc
	cusps[1] = asc + r/3
	cusps[2] = asc + 2*r/3
	cusps[3] = ic
	cusps[9] = mc
	cusps[10] = mc + q/3
	cusps[11] = mc + 2*q/3
	return withOpposites(cusps)
}

func placidusCusps(ramc, eps, lat, asc, mc float64) ([]float64, bool) {
	if math.Abs(lat) >= 90-eps {
		return nil, false
	}

	c11, ok11 := placidusCusp(ramc, eps, lat, 1.0/3, true)
	c12, ok12 := placidusCusp(ramc, eps, lat, 2.0/3, true)
	c2, ok2 := placidusCusp(ramc, eps, lat, 2.0/3, false)
	c3, ok3 := placidusCusp(ramc, eps, lat, 1.0/3, false)
	if !ok11 || !ok12 || !ok2 || !ok3 {
		return nil, false
	}

	cusps := make([]float64, 12)
	cusps[0] = asc
	cusps[1] = c2
	cusps[2] = c3
	cusps[3] = mc + 180
	cusps[9] = mc
	cusps[10] = c11
	cusps[11] = c12
	return withOpposites(cusps), true
}

// placidusCusp итеративно ищет точку эклиптики, делящую полудугу в заданной доле.
// above: дома 11-12 (дневная полудуга от MC), иначе 2-3 (ночная полудуга до IC).
func placidusCusp(ramc, eps, lat, frac float64, above bool) (float64, bool) {
	tanE := math.Tan(eps * deg)
	tanLat := math.Tan(lat * deg)

	ra := ramc + frac*90
	if !above {
		ra = ramc + 180 - frac*90
	}

	for i := 0; i < placidusMaxIter; i++ {
		decl := math.Atan(math.Sin(ra*deg) * tanE)
		x := tanLat * math.Tan(decl)
		if math.Abs(x) > 1 {
			return 0, false
		}
		ad := math.Asin(x) * rad

		next := ramc + frac*(90+ad)
		if !above {
			next = ramc + 180 - frac*(90-ad)
		}

		if math.Abs(next-ra) < placidusEpsilon {
			ra = next
			break
		}
		ra = next
	}

	lon := math.Atan2(math.Sin(ra*deg), math.Cos(ra*deg)*math.Cos(eps*deg)) * rad
	if math.IsNaN(lon) {
		return 0, false
	}
	return domain.NormalizeDegrees(lon), true
}

// withOpposites заполняет куспиды 5-9 противоположными к 11-3
func withOpposites(cusps []float64) []float64 {
	for _, i := range []int{0, 1, 2, 3, 9, 10, 11} {
		cusps[i] = domain.NormalizeDegrees(cusps[i])
	}
	cusps[4] = domain.NormalizeDegrees(cusps[10] + 180)
	cusps[5] = domain.NormalizeDegrees(cusps[11] + 180)
	cusps[6] = domain.NormalizeDegrees(cusps[0] + 180)
	cusps[7] = domain.NormalizeDegrees(cusps[1] + 180)
	cusps[8] = domain.NormalizeDegrees(cusps[2] + 180)
	return cusps
}

// houseOf номер дома (1-12), в который попадает долгота
func houseOf(lon float64, cusps []float64) int {
	if len(cusps) != 12 {
		return 0
	}
	for i := 0; i < 12; i++ {
		start := cusps[i]
		span := domain.NormalizeDegrees(cusps[(i+1)%12] - start)
		if domain.NormalizeDegrees(lon-start) < span {
			return i + 1
		}
	}
	return 1
}
