package service

import (
	"context"

	"github.com/dogumharitan777/astro-api/internal/domain"
)

// IChartEngine расчёт натальной карты по нормализованным данным рождения
type IChartEngine interface {
	Chart(ctx context.Context, in domain.BirthInput, opts domain.ChartOptions) (*domain.NatalChart, error)
}
