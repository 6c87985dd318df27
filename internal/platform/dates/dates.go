// Package dates agrupa la aritmética de fechas calendario (sin hora) usada por
// el cálculo de edad y el scheduler de refuerzos.
package dates

import (
	"strings"
	"time"
)

const Layout = "2006-01-02"

// Only trunca a medianoche UTC conservando el día calendario de t.
func Only(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse acepta "YYYY-MM-DD" o RFC3339 (se descarta la hora).
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(Layout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return Only(t), true
	}
	return time.Time{}, false
}

// AddMonths suma n meses calendario. Si el día no existe en el mes destino
// se usa el último día de ese mes (31 ene + 1 mes = 28/29 feb, 29 feb + 12 meses = 28 feb).
func AddMonths(t time.Time, n int) time.Time {
	t = Only(t)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := DaysIn(first.Year(), first.Month())
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// DaysIn devuelve la cantidad de días del mes.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween cuenta días calendario completos de a hasta b (negativo si b < a).
func DaysBetween(a, b time.Time) int {
	return int(Only(b).Sub(Only(a)).Hours() / 24)
}

func Format(t time.Time) string {
	return t.Format(Layout)
}
