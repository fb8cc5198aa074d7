// Package expiry вычисляет срок жизни ссылок.
//
// Месяц считается равным 4 неделям, год - 52 неделям. Это сознательное
// упрощение без учета календаря: "1 months" всегда 28 дней.
package expiry

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Unit единица длительности срока жизни
type Unit string

const (
	Days   Unit = "days"
	Weeks  Unit = "weeks"
	Months Unit = "months"
	Years  Unit = "years"
)

const (
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = 4 * Week
	Year  = 52 * Week

	// MaxLifetime ограничивает срок жизни и защищает от переполнения time.Duration
	MaxLifetime = 100 * Year
)

var (
	ErrInvalidUnit     = errors.New("unknown duration type")
	ErrInvalidDuration = errors.New("duration value must be a positive integer")
)

// ParseUnit разбирает единицу без учета регистра; допускается единственное число.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "days":
		return Days, nil
	case "week", "weeks":
		return Weeks, nil
	case "month", "months":
		return Months, nil
	case "year", "years":
		return Years, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
}

// Duration возвращает длительность одной единицы
func (u Unit) Duration() (time.Duration, error) {
	switch u {
	case Days:
		return Day, nil
	case Weeks:
		return Week, nil
	case Months:
		return Month, nil
	case Years:
		return Year, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, string(u))
}

// ComputeExpiry возвращает абсолютный момент истечения: now + value единиц.
// Результат всегда строго позже now.
func ComputeExpiry(now time.Time, unit Unit, value int) (time.Time, error) {
	step, err := unit.Duration()
	if err != nil {
		return time.Time{}, err
	}
	if value <= 0 {
		return time.Time{}, ErrInvalidDuration
	}
	if int64(value) > int64(MaxLifetime/step) {
		return time.Time{}, fmt.Errorf("%w: lifetime exceeds %d years", ErrInvalidDuration, int64(MaxLifetime/Year))
	}

	return now.Add(time.Duration(value) * step), nil
}

// IsExpired сообщает, наступил ли момент expiresAt (now >= expiresAt).
func IsExpired(expiresAt, now time.Time) bool {
	return !now.Before(expiresAt)
}
