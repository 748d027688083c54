package kafka

import (
	"context"

	"github.com/google/uuid"
)

// IChartPublisher публикует рассчитанные карты для внешних потребителей
type IChartPublisher interface {
	// PublishChart отправляет карту (JSON) с ключом requestID
	PublishChart(ctx context.Context, requestID uuid.UUID, chart []byte) error
	Close() error
}
