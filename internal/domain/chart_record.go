package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChartRecord запись архива рассчитанных карт
type ChartRecord struct {
	ID        uuid.UUID `json:"id" db:"id"`
	RequestID string    `json:"request_id" db:"request_id"`
	BirthDate string    `json:"birth_date" db:"birth_date"`
	BirthTime string    `json:"birth_time" db:"birth_time"`
	TZOffset  float64   `json:"tz_offset" db:"tz_offset"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Chart     []byte    `json:"chart" db:"chart"`
	Missing   []byte    `json:"missing" db:"missing"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
