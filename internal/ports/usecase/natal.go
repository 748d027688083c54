package usecase

import (
	"context"

	"github.com/dogumharitan777/astro-api/internal/domain"
	"github.com/google/uuid"
)

// INatalUseCase расчёт натальной карты по сырым полям запроса
type INatalUseCase interface {
	Calculate(ctx context.Context, requestID uuid.UUID, raw domain.RawBirthInput) (*domain.NatalChart, error)
}
