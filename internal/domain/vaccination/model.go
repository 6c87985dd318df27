package vaccination

import (
	"time"

	"pet-vaccination-tracker/internal/platform/dates"
)

// Record es una vacuna aplicada. Solo cambia por edición/borrado explícito del dueño.
type Record struct {
	ID          string
	PetID       string
	OwnerUserID string

	// ProtocolID puede ser OtherProtocolID; en ese caso VaccineName es el nombre libre.
	ProtocolID  string
	VaccineName string
	DoseLabel   string

	AdministeredAt   time.Time
	BoosterFrequency BoosterFrequency
	NextDueAt        *time.Time

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName es el nombre que ve el usuario en listados y alertas.
func (r Record) DisplayName() string {
	if r.VaccineName != "" {
		return r.VaccineName
	}
	return r.ProtocolID
}

type AlertKind string

const (
	AlertNotStartedSuggested AlertKind = "not_started_suggested"
	AlertNotStartedVerify    AlertKind = "not_started_verify"
	AlertOverdue             AlertKind = "overdue"
)

// Alert es derivada: no se persiste y se recalcula en cada consulta.
type Alert struct {
	ProtocolID  string
	VaccineName string
	Kind        AlertKind
	Message     string
	// DueDate solo para AlertOverdue.
	DueDate *time.Time
}

func (a Alert) String() string {
	return a.VaccineName + ": " + a.Message
}

func notStartedAlert(p Protocol, kind AlertKind) Alert {
	msg := "not started (suggested)"
	if kind == AlertNotStartedVerify {
		msg = "not started (verify)"
	}
	return Alert{
		ProtocolID:  p.ID,
		VaccineName: p.Name,
		Kind:        kind,
		Message:     msg,
	}
}

func overdueAlert(p Protocol, r Record, due time.Time) Alert {
	name := r.VaccineName
	if name == "" {
		name = p.Name
	}
	d := dates.Only(due)
	return Alert{
		ProtocolID:  p.ID,
		VaccineName: name,
		Kind:        AlertOverdue,
		Message:     "booster overdue since " + dates.Format(d),
		DueDate:     &d,
	}
}
