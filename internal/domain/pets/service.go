package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-vaccination-tracker/internal/platform/dates"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name           string
	Species        string
	Breed          string
	Sex            string
	BirthDate      *time.Time
	ApproxAgeYears *int
	Notes          string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	species := Species(strings.ToLower(strings.TrimSpace(in.Species)))
	if !species.Valid() {
		return Pet{}, fmt.Errorf("%w: unsupported species %q", ErrInvalidInput, in.Species)
	}
	sex, err := parseSex(in.Sex)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	bd, err := normalizeBirthDate(in.BirthDate, now)
	if err != nil {
		return Pet{}, err
	}
	if in.ApproxAgeYears != nil && *in.ApproxAgeYears < 0 {
		return Pet{}, fmt.Errorf("%w: approx_age_years must be >= 0", ErrInvalidInput)
	}

	p := Pet{
		ID:             uuid.NewString(),
		OwnerUserID:    ownerUserID,
		Name:           strings.TrimSpace(in.Name),
		Species:        species,
		Breed:          strings.TrimSpace(in.Breed),
		Sex:            sex,
		Status:         StatusActive,
		BirthDate:      bd,
		ApproxAgeYears: in.ApproxAgeYears,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, fmt.Errorf("pets: create: %w", err)
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Pet{}, ErrNotFound
	}
	if err != nil {
		return Pet{}, fmt.Errorf("pets: get: %w", err)
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// PatchBirthDate distingue "no enviado" de "enviado como null" (limpiar).
type PatchBirthDate struct {
	Present bool
	Value   *time.Time
}

// UpdateProfileInput usa punteros: nil = no tocar.
type UpdateProfileInput struct {
	Name           *string
	Species        *string
	Breed          *string
	Sex            *string
	Status         *string
	BirthDate      PatchBirthDate
	ApproxAgeYears *int
	Microchip      *string
	Notes          *string
}

func (s *Service) UpdateProfile(ctx context.Context, petID, actorUserID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.GetOwned(ctx, petID, actorUserID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Species != nil {
		sp := Species(strings.ToLower(strings.TrimSpace(*in.Species)))
		if !sp.Valid() {
			return Pet{}, fmt.Errorf("%w: unsupported species %q", ErrInvalidInput, *in.Species)
		}
		p.Species = sp
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		sex, err := parseSex(*in.Sex)
		if err != nil {
			return Pet{}, err
		}
		p.Sex = sex
	}
	if in.Status != nil {
		st := Status(strings.ToLower(strings.TrimSpace(*in.Status)))
		if !st.Valid() {
			return Pet{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *in.Status)
		}
		p.Status = st
	}

	now := s.now()
	if in.BirthDate.Present {
		bd, err := normalizeBirthDate(in.BirthDate.Value, now)
		if err != nil {
			return Pet{}, err
		}
		p.BirthDate = bd
	}
	if in.ApproxAgeYears != nil {
		if *in.ApproxAgeYears < 0 {
			return Pet{}, fmt.Errorf("%w: approx_age_years must be >= 0", ErrInvalidInput)
		}
		years := *in.ApproxAgeYears
		p.ApproxAgeYears = &years
	}
	if in.Microchip != nil {
		p.Microchip = strings.TrimSpace(*in.Microchip)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	p.UpdatedAt = now
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, fmt.Errorf("pets: update: %w", err)
	}
	return p, nil
}

func parseSex(raw string) (Sex, error) {
	sex := Sex(strings.ToLower(strings.TrimSpace(raw)))
	switch sex {
	case "":
		return SexUnknown, nil
	case SexMale, SexFemale, SexUnknown:
		return sex, nil
	}
	return "", fmt.Errorf("%w: unknown sex %q", ErrInvalidInput, raw)
}

// birth_date se guarda como fecha calendario y no puede estar en el futuro.
func normalizeBirthDate(bd *time.Time, now time.Time) (*time.Time, error) {
	if bd == nil || bd.IsZero() {
		return nil, nil
	}
	d := dates.Only(*bd)
	if d.After(dates.Only(now)) {
		return nil, fmt.Errorf("%w: birth_date is in the future", ErrInvalidInput)
	}
	return &d, nil
}
