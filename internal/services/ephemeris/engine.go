package ephemeris

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/dogumharitan777/astro-api/internal/ports/service"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// Engine считает натальную карту по таблицам VSOP87 из каталога эфемерид.
// Для планет без таблицы используются средние элементы орбиты.
// Каталог читается, но никогда не изменяется запросами.
type Engine struct {
	tables *tableCache
	log    *slog.Logger
}

var _ service.IChartEngine = (*Engine)(nil)

// New создаёт движок эфемерид над каталогом dir
func New(dir string, log *slog.Logger) *Engine {
	return &Engine{
		tables: newTableCache(dir),
		log:    log,
	}
}

// LoadedTables число уже загруженных таблиц VSOP87
func (e *Engine) LoadedTables() int {
	return e.tables.count()
}

// Chart рассчитывает положения 10 тел, Асцендент и (по опции) дома.
// Ошибка по отдельному телу не валит расчёт: тело попадает в Missing.
func (e *Engine) Chart(ctx context.Context, in domain.BirthInput, opts domain.ChartOptions) (*domain.NatalChart, error) {
	if err := validate(in); err != nil {
		return nil, domain.WrapInputError(err)
	}

	jd, jde := ephemerisDay(in.UTC())

	dPsi, dEps := nutation.Nutation(jde)
	eps := (nutation.MeanObliquity(jde) + dEps).Deg()

	gast := sidereal.Apparent(jd).Rad() * rad
	ramc := domain.NormalizeDegrees(gast + in.Longitude)

	asc, mc := ascendantMC(ramc, eps, in.Latitude)
	if math.IsNaN(asc) || math.IsNaN(mc) {
		return nil, domain.NewInputError("cannot compute ascendant for lat=%v lon=%v", in.Latitude, in.Longitude)
	}

	chart := &domain.NatalChart{
		Ascendant: domain.NewBodyPosition(domain.Ascendant, asc),
		Planets:   make(map[domain.Body]domain.BodyPosition, len(domain.Planets)),
		Missing:   []domain.Body{},
	}

	if opts.IncludeHouses {
		chart.Cusps, chart.HouseSystem = houseCusps(opts.HouseSystem, ramc, eps, in.Latitude, asc, mc)
	}

	ep := e.newEpoch(jde, dPsi)
	for _, body := range domain.Planets {
		lon, err := e.longitude(body, ep)
		if err == nil && (math.IsNaN(lon) || math.IsInf(lon, 0)) {
			err = fmt.Errorf("non-finite longitude")
		}
		if err != nil {
			e.log.DebugContext(ctx, "body position unavailable",
				"body", body,
				"error", err,
			)
			chart.Missing = append(chart.Missing, body)
			continue
		}

		pos := domain.NewBodyPosition(body, lon)
		if opts.IncludeHouses {
			pos.House = houseOf(pos.Longitude, chart.Cusps)
		}
		chart.Planets[body] = pos
	}

	return chart, nil
}

func validate(in domain.BirthInput) error {
	switch {
	case in.Latitude < -90 || in.Latitude > 90:
		return fmt.Errorf("latitude %v out of range [-90, 90]", in.Latitude)
	case in.Longitude < -180 || in.Longitude > 180:
		return fmt.Errorf("longitude %v out of range [-180, 180]", in.Longitude)
	case in.Hour < 0 || in.Hour > 23:
		return fmt.Errorf("hour %d out of range [0, 23]", in.Hour)
	case in.Minute < 0 || in.Minute > 59:
		return fmt.Errorf("minute %d out of range [0, 59]", in.Minute)
	case in.Second < 0 || in.Second > 59:
		return fmt.Errorf("second %d out of range [0, 59]", in.Second)
	}
	return nil
}
