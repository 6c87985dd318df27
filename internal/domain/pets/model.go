package pets

import "time"

// Species define las especies soportadas por el catálogo de protocolos.
// @Enum dog, cat, rabbit
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesRabbit Species = "rabbit"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesRabbit:
		return true
	}
	return false
}

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Status es el estado de vida de la mascota.
// Solo las mascotas "active" entran en el cálculo de alertas de vacunación.
// @Enum active, deceased, lost, rehomed
type Status string

const (
	StatusActive   Status = "active"
	StatusDeceased Status = "deceased"
	StatusLost     Status = "lost"
	StatusRehomed  Status = "rehomed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDeceased, StatusLost, StatusRehomed:
		return true
	}
	return false
}

// Pet representa el perfil básico de una mascota registrada en el sistema.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex
	Status  Status

	// BirthDate tiene prioridad. ApproxAgeYears solo se usa si no hay fecha.
	BirthDate      *time.Time
	ApproxAgeYears *int
	Microchip      string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pet) IsActive() bool {
	return p.Status == StatusActive
}
