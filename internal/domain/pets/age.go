package pets

import (
	"strconv"
	"strings"
	"time"

	"pet-vaccination-tracker/internal/platform/dates"
)

const (
	AgeUnknownLabel  = "unknown age"
	AgeNotGivenLabel = "not given"
)

// Age es la edad derivada de una mascota a una fecha dada.
// TotalWeeks es aproximado cuando Approximate es true.
type Age struct {
	Years       int
	Months      int
	Days        int
	TotalWeeks  int
	Known       bool
	Approximate bool
	Display     string
}

// BirthDateEstimator convierte una edad en años enteros en una fecha de nacimiento estimada.
type BirthDateEstimator interface {
	EstimateBirthDate(years int, now time.Time) time.Time
}

// JanuaryFirstEstimator asume que la mascota nació el 1 de enero de (año actual - edad).
type JanuaryFirstEstimator struct{}

func (JanuaryFirstEstimator) EstimateBirthDate(years int, now time.Time) time.Time {
	return time.Date(now.Year()-years, time.January, 1, 0, 0, 0, 0, time.UTC)
}

type AgeCalculator struct {
	estimator BirthDateEstimator
}

// NewAgeCalculator usa JanuaryFirstEstimator si estimator es nil.
func NewAgeCalculator(estimator BirthDateEstimator) AgeCalculator {
	if estimator == nil {
		estimator = JanuaryFirstEstimator{}
	}
	return AgeCalculator{estimator: estimator}
}

// AgeOf calcula la edad de la mascota con el estimador por defecto.
func AgeOf(p Pet, now time.Time) Age {
	return NewAgeCalculator(nil).Calculate(p.BirthDate, p.ApproxAgeYears, now)
}

// Calculate nunca falla: sin datos devuelve una edad en cero con etiqueta "unknown age".
func (c AgeCalculator) Calculate(birthDate *time.Time, approxYears *int, now time.Time) Age {
	today := dates.Only(now)

	if birthDate != nil && !birthDate.IsZero() {
		return ageBetween(dates.Only(*birthDate), today, false)
	}
	if approxYears != nil && *approxYears >= 0 {
		est := c.estimator
		if est == nil {
			est = JanuaryFirstEstimator{}
		}
		return ageBetween(dates.Only(est.EstimateBirthDate(*approxYears, today)), today, true)
	}
	return Age{Display: AgeUnknownLabel}
}

// ParseAge es la variante para entradas de texto: vacío o inválido => "not given".
func ParseAge(raw string, now time.Time) Age {
	born, ok := dates.Parse(raw)
	if !ok {
		return Age{Display: AgeNotGivenLabel}
	}
	return ageBetween(born, dates.Only(now), false)
}

func ageBetween(born, today time.Time, approx bool) Age {
	a := Age{Known: true, Approximate: approx}

	// fecha futura => edad cero
	if today.Before(born) {
		a.Display = formatAge(a)
		return a
	}

	months := (today.Year()-born.Year())*12 + int(today.Month()) - int(born.Month())
	anchor := dates.AddMonths(born, months)
	if anchor.After(today) {
		months--
		anchor = dates.AddMonths(born, months)
	}

	a.Years = months / 12
	a.Months = months % 12
	a.Days = dates.DaysBetween(anchor, today)
	a.TotalWeeks = dates.DaysBetween(born, today) / 7
	a.Display = formatAge(a)
	return a
}

func formatAge(a Age) string {
	if !a.Known {
		return AgeUnknownLabel
	}
	parts := make([]string, 0, 2)
	if a.Years > 0 {
		parts = append(parts, plural(a.Years, "year", "years"))
	}
	if a.Months > 0 {
		parts = append(parts, plural(a.Months, "month", "months"))
	}
	if len(parts) == 0 {
		return plural(a.Days, "day", "days")
	}
	return strings.Join(parts, " and ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
