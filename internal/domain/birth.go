package domain

import (
	"fmt"
	"math"
	"time"
)

// RawBirthInput сырые поля запроса до нормализации
type RawBirthInput struct {
	Date string
	Time string
	TZ   string
	Lat  string
	Lon  string
}

// BirthInput нормализованные данные рождения.
// Живёт только в пределах одного запроса.
type BirthInput struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int

	// TZOffset смещение от UTC в часах (например +3, -5.5)
	TZOffset  float64
	Latitude  float64
	Longitude float64
}

// DateString дата в каноническом виде YYYY/MM/DD
func (b BirthInput) DateString() string {
	return fmt.Sprintf("%04d/%02d/%02d", b.Year, b.Month, b.Day)
}

// TimeString время в виде HH:MM:SS
func (b BirthInput) TimeString() string {
	return fmt.Sprintf("%02d:%02d:%02d", b.Hour, b.Minute, b.Second)
}

// OffsetSeconds смещение часового пояса в секундах
func (b BirthInput) OffsetSeconds() int {
	return int(math.Round(b.TZOffset * 3600))
}

// UTC переводит локальное время рождения во всемирное
func (b BirthInput) UTC() time.Time {
	zone := time.FixedZone("", b.OffsetSeconds())
	return time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Minute, b.Second, 0, zone).UTC()
}
