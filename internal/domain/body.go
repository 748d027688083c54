package domain

import "math"

// Body идентификатор небесного тела или точки карты
type Body string

const (
	Sun       Body = "Sun"
	Moon      Body = "Moon"
	Mercury   Body = "Mercury"
	Venus     Body = "Venus"
	Mars      Body = "Mars"
	Jupiter   Body = "Jupiter"
	Saturn    Body = "Saturn"
	Uranus    Body = "Uranus"
	Neptune   Body = "Neptune"
	Pluto     Body = "Pluto"
	Ascendant Body = "Asc"
)

// Planets фиксированный набор тел натальной карты в каноническом порядке
var Planets = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

func (b Body) IsPlanet() bool {
	for _, p := range Planets {
		if p == b {
			return true
		}
	}
	return false
}

// Sign знак зодиака
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// Signs знаки по порядку, каждый занимает 30° эклиптики начиная с 0° Овна
var Signs = [12]Sign{Aries, Taurus, Gemini, Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces}

// NormalizeDegrees приводит угол к диапазону [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -1e-15 + 360 округляется до 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// SignFromLongitude возвращает знак по эклиптической долготе: floor(lon/30) mod 12
func SignFromLongitude(lon float64) Sign {
	band := int(math.Floor(NormalizeDegrees(lon)/30)) % 12
	return Signs[band]
}
