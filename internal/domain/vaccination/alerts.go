package vaccination

import (
	"time"

	"pet-vaccination-tracker/internal/domain/pets"
	"pet-vaccination-tracker/internal/platform/dates"
)

const (
	// StartMarginWeeks: semanas de tolerancia sobre la edad mínima antes de avisar "not started".
	StartMarginWeeks = 4
	// UnhintedStartWeeks aplica a protocolos esenciales sin edad mínima en el label.
	UnhintedStartWeeks = 16
)

// Engine cruza el catálogo con los registros de una mascota. No guarda estado:
// es seguro usarlo desde varias goroutines.
type Engine struct {
	catalog *Catalog
	ages    pets.AgeCalculator
}

func NewEngine(catalog *Catalog, ages pets.AgeCalculator) *Engine {
	return &Engine{catalog: catalog, ages: ages}
}

// ComputeAlerts devuelve las alertas de la mascota a la fecha now, en orden de catálogo.
// Mascotas que no están activas no generan alertas.
func (e *Engine) ComputeAlerts(pet pets.Pet, records []Record, now time.Time) []Alert {
	if !pet.IsActive() {
		return []Alert{}
	}

	today := dates.Only(now)
	age := e.ages.Calculate(pet.BirthDate, pet.ApproxAgeYears, today)

	out := make([]Alert, 0)
	for _, p := range e.catalog.ProtocolsFor(pet.Species) {
		if p.IsOther() || !p.IsEssential() {
			continue
		}

		latest, found := latestMatching(p, pet.ID, records)
		if !found {
			if kind, ok := notStartedKind(p, age); ok {
				out = append(out, notStartedAlert(p, kind))
			}
			continue
		}

		if latest.NextDueAt != nil && dates.Only(*latest.NextDueAt).Before(today) {
			out = append(out, overdueAlert(p, latest, *latest.NextDueAt))
		}
	}
	return out
}

func notStartedKind(p Protocol, age pets.Age) (AlertKind, bool) {
	if !age.Known {
		return "", false
	}
	if p.MinimumAgeWeeks != nil {
		if age.TotalWeeks > *p.MinimumAgeWeeks+StartMarginWeeks {
			return AlertNotStartedSuggested, true
		}
		return "", false
	}
	if age.TotalWeeks > UnhintedStartWeeks {
		return AlertNotStartedVerify, true
	}
	return "", false
}

// latestMatching busca por ProtocolID o por nombre exacto (registros viejos sin id).
// Empates de fecha: gana el creado más tarde y luego el ID mayor.
func latestMatching(p Protocol, petID string, records []Record) (Record, bool) {
	var best Record
	found := false

	for _, r := range records {
		if petID != "" && r.PetID != "" && r.PetID != petID {
			continue
		}
		if r.ProtocolID != p.ID && r.VaccineName != p.Name {
			continue
		}
		if !found || newer(r, best) {
			best = r
			found = true
		}
	}
	return best, found
}

func newer(a, b Record) bool {
	ad, bd := dates.Only(a.AdministeredAt), dates.Only(b.AdministeredAt)
	if !ad.Equal(bd) {
		return ad.After(bd)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
