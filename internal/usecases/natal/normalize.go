package natal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dogumharitan777/astro-api/internal/domain"
)

// Normalize приводит сырые поля запроса к BirthInput.
// Диапазоны времени и координат здесь не проверяются, это делает движок эфемерид.
func Normalize(raw domain.RawBirthInput, defaultTZ string) (domain.BirthInput, error) {
	var in domain.BirthInput

	year, month, day, err := ParseDate(raw.Date)
	if err != nil {
		return in, domain.WrapInputError(err)
	}

	hour, minute, second, err := ParseClock(raw.Time)
	if err != nil {
		return in, domain.WrapInputError(err)
	}

	tz := raw.TZ
	if strings.TrimSpace(tz) == "" {
		tz = defaultTZ
	}
	offset, err := ParseTZOffset(tz)
	if err != nil {
		return in, domain.WrapInputError(err)
	}

	lat, err := parseCoordinate("lat", raw.Lat)
	if err != nil {
		return in, domain.WrapInputError(err)
	}
	lon, err := parseCoordinate("lon", raw.Lon)
	if err != nil {
		return in, domain.WrapInputError(err)
	}

	return domain.BirthInput{
		Year:      year,
		Month:     month,
		Day:       day,
		Hour:      hour,
		Minute:    minute,
		Second:    second,
		TZOffset:  offset,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

// ParseDate принимает YYYY-MM-DD или YYYY/MM/DD
func ParseDate(s string) (year, month, day int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, 0, fmt.Errorf("date is required")
	}

	parts := strings.Split(strings.ReplaceAll(s, "-", "/"), "/")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or YYYY/MM/DD", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or YYYY/MM/DD", s)
		}
		nums[i] = n
	}
	year, month, day = nums[0], nums[1], nums[2]

	// time.Date нормализует 30 февраля в 1 марта, такие даты отбрасываем
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return 0, 0, 0, fmt.Errorf("invalid date %q: no such calendar day", s)
	}

	return year, month, day, nil
}

// ParseClock принимает HH:MM или HH:MM:SS
func ParseClock(s string) (hour, minute, second int, err error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
		}
		nums[i] = n
	}

	return nums[0], nums[1], nums[2], nil
}

// ParseTZOffset разбирает смещение вида ±HH:MM в часы: sign * (hours + minutes/60)
func ParseTZOffset(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("tz is required")
	}

	orig := s
	sign := 1.0
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid tz %q: expected ±HH:MM", orig)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid tz %q: expected ±HH:MM", orig)
	}

	minutes := 0
	if len(parts) == 2 {
		minutes, err = strconv.Atoi(parts[1])
		if err != nil || minutes < 0 || minutes > 59 {
			return 0, fmt.Errorf("invalid tz %q: expected ±HH:MM", orig)
		}
	}

	return sign * (float64(hours) + float64(minutes)/60), nil
}

func parseCoordinate(name, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s is required", name)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %q is not a finite number", name, s)
	}

	return v, nil
}
