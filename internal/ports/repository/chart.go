package repository

import (
	"context"

	"github.com/dogumharitan777/astro-api/internal/domain"
)

// IChartRepo архив рассчитанных карт
type IChartRepo interface {
	Create(ctx context.Context, record *domain.ChartRecord) error
}
