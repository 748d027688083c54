package domain

// HouseSystem система домов
type HouseSystem string

const (
	HousesPlacidus  HouseSystem = "placidus"
	HousesPorphyry  HouseSystem = "porphyry"
	HousesEqual     HouseSystem = "equal"
	HousesWholeSign HouseSystem = "whole_sign"
)

func (h HouseSystem) IsValid() bool {
	switch h {
	case HousesPlacidus, HousesPorphyry, HousesEqual, HousesWholeSign:
		return true
	}
	return false
}

// ChartOptions параметры расчёта карты
type ChartOptions struct {
	HouseSystem   HouseSystem
	IncludeHouses bool
}

// BodyPosition положение тела на эклиптике
type BodyPosition struct {
	Body      Body    `json:"body"`
	Longitude float64 `json:"lon"`
	Sign      Sign    `json:"sign"`

	// House номер дома 1-12, 0 если дома не считались
	House int `json:"house,omitempty"`
}

// NewBodyPosition создаёт позицию с нормализованной долготой и знаком
func NewBodyPosition(body Body, lon float64) BodyPosition {
	lon = NormalizeDegrees(lon)
	return BodyPosition{
		Body:      body,
		Longitude: lon,
		Sign:      SignFromLongitude(lon),
	}
}

// NatalChart результат расчёта натальной карты.
// Ключи Planets и Missing вместе дают ровно набор Planets без пересечений.
type NatalChart struct {
	Ascendant BodyPosition          `json:"asc"`
	Planets   map[Body]BodyPosition `json:"planets"`
	Missing   []Body                `json:"missing"`

	// Cusps куспиды домов 1-12 (только если IncludeHouses)
	Cusps       []float64   `json:"cusps,omitempty"`
	HouseSystem HouseSystem `json:"house_system,omitempty"`
}

// IsComplete true, если все тела рассчитаны
func (c *NatalChart) IsComplete() bool {
	return len(c.Missing) == 0
}
