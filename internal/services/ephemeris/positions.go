package ephemeris

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/soniakeys/meeus/v3/apparent"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/meeus/v3/moonposition"
	pe "github.com/soniakeys/meeus/v3/planetelements"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/precess"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

const (
	plutoFirstYear = 1885
	plutoLastYear  = 2099

	lightTimeIterations = 3
)

// planetSeries номер планеты в VSOP87 и в таблице средних элементов
type planetSeries struct {
	vsop int
	mean int
}

var planets = map[domain.Body]planetSeries{
	domain.Mercury: {vsop: pp.Mercury, mean: pe.Mercury},
	domain.Venus:   {vsop: pp.Venus, mean: pe.Venus},
	domain.Mars:    {vsop: pp.Mars, mean: pe.Mars},
	domain.Jupiter: {vsop: pp.Jupiter, mean: pe.Jupiter},
	domain.Saturn:  {vsop: pp.Saturn, mean: pe.Saturn},
	domain.Uranus:  {vsop: pp.Uranus, mean: pe.Uranus},
	domain.Neptune: {vsop: pp.Neptune, mean: pe.Neptune},
}

type vector struct {
	x, y, z float64
}

func spherical(l, b unit.Angle, r float64) vector {
	sl, cl := l.Sincos()
	sb, cb := b.Sincos()
	return vector{x: r * cb * cl, y: r * cb * sl, z: r * sb}
}

func (v vector) sub(o vector) vector {
	return vector{x: v.x - o.x, y: v.y - o.y, z: v.z - o.z}
}

func (v vector) norm() float64 {
	return math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)
}

func (v vector) lonLat() (lon, lat unit.Angle) {
	return unit.Angle(math.Atan2(v.y, v.x)).Mod1(), unit.Angle(math.Atan2(v.z, math.Hypot(v.x, v.y)))
}

// meanOrbit гелиоцентрическое положение по средним элементам орбиты,
// эклиптика и равноденствие даты. Точность от сотых градуса (Меркурий-Марс)
// до градуса (Уран, Нептун): возмущения не учитываются.
func meanOrbit(planet int, jde float64) vector {
	var el pe.Elements
	pe.Mean(planet, jde, &el)

	ea := kepler.Kepler3(el.Ecc, el.Lon-el.Peri)
	r := kepler.Radius(ea, el.Ecc, el.Axis)
	u := el.Peri - el.Node + kepler.True(ea, el.Ecc)

	su, cu := u.Sincos()
	si, ci := el.Inc.Sincos()
	sn, cn := el.Node.Sincos()
	return vector{
		x: r * (cn*cu - sn*su*ci),
		y: r * (sn*cu + cn*su*ci),
		z: r * su * si,
	}
}

// epoch общие для всех тел величины одного момента.
// Все гелиоцентрические векторы на эклиптике и равноденствии даты.
type epoch struct {
	jde  float64
	dPsi unit.Angle

	// earthTable nil без VSOP87B.ear: Земля и Солнце по аналитической теории
	earthTable *pp.V87Planet
	earthErr   error
	earth      vector

	toDate *precess.EclipticPrecessor
}

func (e *Engine) newEpoch(jde float64, dPsi unit.Angle) *epoch {
	ep := &epoch{
		jde:    jde,
		dPsi:   dPsi,
		toDate: newDatePrecessor(jde),
	}

	table, err := e.tables.planet(pp.Earth)
	switch {
	case err == nil:
		ep.earthTable = table
		ep.earth = spherical(table.Position(jde))
	case errors.Is(err, fs.ErrNotExist):
		t := base.J2000Century(jde)
		sun, _ := solar.True(t)
		ep.earth = spherical(sun+math.Pi, 0, solar.Radius(t))
	default:
		ep.earthErr = err
	}

	return ep
}

// longitude видимая геоцентрическая долгота тела на истинное равноденствие даты, в градусах
func (e *Engine) longitude(body domain.Body, ep *epoch) (float64, error) {
	if body == domain.Moon {
		lon, _, _ := moonposition.Position(ep.jde)
		return (lon + ep.dPsi).Deg(), nil
	}

	if ep.earthErr != nil {
		return 0, ep.earthErr
	}

	switch body {
	case domain.Sun:
		if ep.earthTable != nil {
			lon, _, _ := solar.ApparentVSOP87(ep.earthTable, ep.jde)
			return lon.Deg(), nil
		}
		return solar.ApparentLongitude(base.J2000Century(ep.jde)).Deg(), nil
	case domain.Pluto:
		year := base.JDEToJulianYear(ep.jde)
		if year < plutoFirstYear || year > plutoLastYear {
			return 0, fmt.Errorf("pluto series is valid for %d-%d only, got %.1f",
				plutoFirstYear, plutoLastYear, year)
		}
		return ep.apparentLongitude(func(jde float64) vector {
			l, b, r := pluto.Heliocentric(jde)
			ecl := ep.toDate.Precess(&coord.Ecliptic{Lon: l, Lat: b}, &coord.Ecliptic{})
			return spherical(ecl.Lon, ecl.Lat, r)
		}), nil
	}

	series, ok := planets[body]
	if !ok {
		return 0, fmt.Errorf("unknown body %s", body)
	}

	table, err := e.tables.planet(series.vsop)
	switch {
	case err == nil:
		return ep.apparentLongitude(func(jde float64) vector {
			return spherical(table.Position(jde))
		}), nil
	case errors.Is(err, fs.ErrNotExist):
		return ep.apparentLongitude(func(jde float64) vector {
			return meanOrbit(series.mean, jde)
		}), nil
	default:
		return 0, err
	}
}

// apparentLongitude переводит гелиоцентрическое положение в видимое геоцентрическое:
// время распространения света, годичная аберрация, нутация
func (ep *epoch) apparentLongitude(helio func(jde float64) vector) float64 {
	tau := 0.0
	var geo vector
	for i := 0; i < lightTimeIterations; i++ {
		geo = helio(ep.jde - tau).sub(ep.earth)
		tau = base.LightTime(geo.norm())
	}

	lon, lat := geo.lonLat()
	dLon, _ := apparent.EclipticAberration(lon, lat, ep.jde)

	return (lon + dLon + ep.dPsi).Deg()
}
