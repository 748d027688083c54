package natalController

import (
	"encoding/json"

	"github.com/dogumharitan777/astro-api/internal/domain"
)

// natalRequest lat/lon принимаются и числом, и строкой с числом
type natalRequest struct {
	Date string      `json:"date"`
	Time string      `json:"time"`
	TZ   string      `json:"tz"`
	Lat  json.Number `json:"lat"`
	Lon  json.Number `json:"lon"`
}

func (r *natalRequest) toDomain() domain.RawBirthInput {
	return domain.RawBirthInput{
		Date: r.Date,
		Time: r.Time,
		TZ:   r.TZ,
		Lat:  r.Lat.String(),
		Lon:  r.Lon.String(),
	}
}

type positionResponse struct {
	Sign  domain.Sign `json:"sign"`
	Lon   float64     `json:"lon"`
	House int         `json:"house,omitempty"`
}

type natalResponse struct {
	OK          bool                             `json:"ok"`
	Asc         positionResponse                 `json:"asc"`
	Planets     map[domain.Body]positionResponse `json:"planets"`
	Missing     []domain.Body                    `json:"missing"`
	HouseSystem domain.HouseSystem               `json:"house_system,omitempty"`
	Cusps       []float64                        `json:"cusps,omitempty"`
}

func newNatalResponse(chart *domain.NatalChart) natalResponse {
	resp := natalResponse{
		OK: true,
		Asc: positionResponse{
			Sign: chart.Ascendant.Sign,
			Lon:  chart.Ascendant.Longitude,
		},
		Planets:     make(map[domain.Body]positionResponse, len(chart.Planets)),
		Missing:     make([]domain.Body, 0, len(chart.Missing)),
		HouseSystem: chart.HouseSystem,
		Cusps:       chart.Cusps,
	}

	for _, body := range domain.Planets {
		if pos, ok := chart.Planets[body]; ok {
			resp.Planets[body] = positionResponse{
				Sign:  pos.Sign,
				Lon:   pos.Longitude,
				House: pos.House,
			}
		}
	}

	// порядок missing канонический, независимо от источника карты
	missing := make(map[domain.Body]bool, len(chart.Missing))
	for _, body := range chart.Missing {
		missing[body] = true
	}
	for _, body := range domain.Planets {
		if missing[body] {
			resp.Missing = append(resp.Missing, body)
		}
	}

	return resp
}
