package vaccination

import (
	"strings"
	"time"

	"pet-vaccination-tracker/internal/platform/dates"
)

// BoosterFrequency es la regla que define cuándo vence la próxima dosis.
type BoosterFrequency string

const (
	FrequencyWeekly      BoosterFrequency = "weekly"
	FrequencyMonthly     BoosterFrequency = "monthly"
	FrequencyYearly      BoosterFrequency = "yearly"
	FrequencyEvery3Years BoosterFrequency = "every-3-years"
	FrequencySingleDose  BoosterFrequency = "single-dose-no-booster"
	FrequencyNoBooster   BoosterFrequency = "no-booster"
	FrequencyManual      BoosterFrequency = "manual"
)

// WeeklyInterval es fijo en 7 días, no una fracción de mes.
const WeeklyInterval = 7 * 24 * time.Hour

var frequencies = []BoosterFrequency{
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyYearly,
	FrequencyEvery3Years,
	FrequencySingleDose,
	FrequencyNoBooster,
	FrequencyManual,
}

func Frequencies() []BoosterFrequency {
	out := make([]BoosterFrequency, len(frequencies))
	copy(out, frequencies)
	return out
}

// ParseFrequency acepta "" como "sin selección".
func ParseFrequency(raw string) (BoosterFrequency, bool) {
	f := BoosterFrequency(strings.ToLower(strings.TrimSpace(raw)))
	if f == "" {
		return "", true
	}
	for _, known := range frequencies {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// NextDueDate calcula el vencimiento para las frecuencias fijas.
// Devuelve false para manual, sin refuerzo, valores desconocidos o fecha cero.
func NextDueDate(administered time.Time, freq BoosterFrequency) (time.Time, bool) {
	if administered.IsZero() {
		return time.Time{}, false
	}
	d := dates.Only(administered)

	switch freq {
	case FrequencyWeekly:
		return d.Add(WeeklyInterval), true
	case FrequencyMonthly:
		return dates.AddMonths(d, 1), true
	case FrequencyYearly:
		return dates.AddMonths(d, 12), true
	case FrequencyEvery3Years:
		return dates.AddMonths(d, 36), true
	default:
		return time.Time{}, false
	}
}

// Schedule resuelve el NextDueAt que se guarda en el registro.
// En modo manual se respeta la fecha que trae el usuario; en el resto se recalcula
// (y se limpia para single-dose/no-booster).
func Schedule(administered time.Time, freq BoosterFrequency, manual *time.Time) *time.Time {
	if freq == FrequencyManual {
		if manual == nil || manual.IsZero() {
			return nil
		}
		d := dates.Only(*manual)
		return &d
	}
	next, ok := NextDueDate(administered, freq)
	if !ok {
		return nil
	}
	return &next
}
