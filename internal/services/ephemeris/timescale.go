package ephemeris

import (
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/deltat"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/precess"
	"github.com/soniakeys/unit"
)

const (
	// годы таблицы 10.A Мееуса
	deltaTTableFirst = 1620
	deltaTTableLast  = 2010

	deltaTPolyEarly = 948
)

// decimalYear год с дробной частью по середине месяца
func decimalYear(t time.Time) float64 {
	return float64(t.Year()) + (float64(t.Month())-0.5)/12
}

// deltaT разница TT-UT: таблица внутри 1620-2009, полиномы Мееуса вне её
func deltaT(t time.Time) unit.Time {
	y := decimalYear(t)
	switch {
	case y < deltaTPolyEarly:
		return deltat.PolyBefore948(y)
	case t.Year() < deltaTTableFirst:
		return deltat.Poly948to1600(y)
	case t.Year() < deltaTTableLast:
		return deltat.Interp10A(julian.TimeToJD(t))
	default:
		return deltat.PolyAfter2000(y)
	}
}

// ephemerisDay юлианский эфемеридный день для момента UT
func ephemerisDay(utc time.Time) (jd, jde float64) {
	jd = julian.TimeToJD(utc)
	return jd, jd + deltaT(utc).Day()
}

// newDatePrecessor переводит эклиптические координаты J2000 на среднее равноденствие даты
func newDatePrecessor(jde float64) *precess.EclipticPrecessor {
	return precess.NewEclipticPrecessor(2000, base.JDEToJulianYear(jde))
}
