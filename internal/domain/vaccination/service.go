package vaccination

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pet-vaccination-tracker/internal/domain/pets"
	"pet-vaccination-tracker/internal/platform/dates"
	"pet-vaccination-tracker/internal/platform/logger"
	"pet-vaccination-tracker/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vaccination record not found")
)

type Service struct {
	repo    Repository
	catalog *Catalog
	engine  *Engine
	log     logger.Logger
	now     func() time.Time

	// concurrency limita AlertsForPets.
	concurrency int
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, catalog *Catalog, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		catalog:     catalog,
		engine:      NewEngine(catalog, pets.NewAgeCalculator(nil)),
		log:         logger.NewNop(),
		now:         time.Now,
		concurrency: 4,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Catalog() *Catalog { return s.catalog }

type CreateInput struct {
	ProtocolID       string
	VaccineName      string // obligatorio solo para "other"
	DoseLabel        string
	AdministeredAt   time.Time
	BoosterFrequency string
	ManualNextDueAt  *time.Time // solo se usa con frecuencia manual
	Notes            string
}

func (s *Service) Create(ctx context.Context, pet pets.Pet, in CreateInput) (Record, error) {
	if strings.TrimSpace(pet.ID) == "" {
		return Record{}, ErrInvalidInput
	}

	protocol, name, err := s.resolveProtocol(pet, in.ProtocolID, in.VaccineName)
	if err != nil {
		return Record{}, err
	}
	administered, err := s.validateAdministered(in.AdministeredAt)
	if err != nil {
		return Record{}, err
	}
	freq, ok := ParseFrequency(in.BoosterFrequency)
	if !ok {
		return Record{}, fmt.Errorf("%w: unknown booster_frequency %q", ErrInvalidInput, in.BoosterFrequency)
	}

	now := s.now()
	rec := Record{
		ID:               uuid.NewString(),
		PetID:            pet.ID,
		OwnerUserID:      pet.OwnerUserID,
		ProtocolID:       protocol.ID,
		VaccineName:      name,
		DoseLabel:        strings.TrimSpace(in.DoseLabel),
		AdministeredAt:   administered,
		BoosterFrequency: freq,
		NextDueAt:        Schedule(administered, freq, in.ManualNextDueAt),
		Notes:            strings.TrimSpace(in.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("vaccination: create: %w", err)
	}

	metrics.VaccinationRecordsCreated.Inc()
	s.log.Info("vaccination record created", map[string]any{
		"pet_id":    pet.ID,
		"record_id": rec.ID,
		"protocol":  rec.ProtocolID,
	})
	return rec, nil
}

// PatchDate distingue "no enviado" de "enviado vacío" (limpiar).
type PatchDate struct {
	Present bool
	Value   *time.Time
}

// UpdateInput: nil = no tocar. NextDueAt se considera solo si la frecuencia final es manual.
type UpdateInput struct {
	ProtocolID       *string
	VaccineName      *string
	DoseLabel        *string
	AdministeredAt   *time.Time
	BoosterFrequency *string
	NextDueAt        PatchDate
	Notes            *string
}

func (s *Service) Update(ctx context.Context, pet pets.Pet, recordID string, in UpdateInput) (Record, error) {
	rec, err := s.GetByID(ctx, pet, recordID)
	if err != nil {
		return Record{}, err
	}

	// la especie se valida solo al cambiar de protocolo
	switch {
	case in.ProtocolID != nil:
		vaccineName := ""
		if in.VaccineName != nil {
			vaccineName = *in.VaccineName
		}
		protocol, name, err := s.resolveProtocol(pet, *in.ProtocolID, vaccineName)
		if err != nil {
			return Record{}, err
		}
		rec.ProtocolID, rec.VaccineName = protocol.ID, name
	case in.VaccineName != nil && rec.ProtocolID == OtherProtocolID:
		name := strings.TrimSpace(*in.VaccineName)
		if name == "" {
			return Record{}, fmt.Errorf("%w: vaccine_name is required for protocol %q", ErrInvalidInput, OtherProtocolID)
		}
		rec.VaccineName = name
	}

	if in.DoseLabel != nil {
		rec.DoseLabel = strings.TrimSpace(*in.DoseLabel)
	}
	if in.AdministeredAt != nil {
		administered, err := s.validateAdministered(*in.AdministeredAt)
		if err != nil {
			return Record{}, err
		}
		rec.AdministeredAt = administered
	}
	if in.BoosterFrequency != nil {
		freq, ok := ParseFrequency(*in.BoosterFrequency)
		if !ok {
			return Record{}, fmt.Errorf("%w: unknown booster_frequency %q", ErrInvalidInput, *in.BoosterFrequency)
		}
		rec.BoosterFrequency = freq
	}
	if in.Notes != nil {
		rec.Notes = strings.TrimSpace(*in.Notes)
	}

	manual := in.NextDueAt.Value
	if !in.NextDueAt.Present && rec.BoosterFrequency == FrequencyManual {
		manual = rec.NextDueAt
	}
	rec.NextDueAt = Schedule(rec.AdministeredAt, rec.BoosterFrequency, manual)
	rec.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("vaccination: update: %w", err)
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, pet pets.Pet, recordID string) error {
	if _, err := s.GetByID(ctx, pet, recordID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("vaccination: delete: %w", err)
	}
	return nil
}

// GetByID devuelve ErrNotFound también si el registro es de otra mascota.
func (s *Service) GetByID(ctx context.Context, pet pets.Pet, recordID string) (Record, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return Record{}, ErrNotFound
	}
	rec, err := s.repo.GetByID(ctx, recordID)
	if errors.Is(err, ErrNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("vaccination: get: %w", err)
	}
	if rec.PetID != pet.ID {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *Service) ListByPet(ctx context.Context, pet pets.Pet) ([]Record, error) {
	items, err := s.repo.ListByPet(ctx, pet.ID)
	if err != nil {
		return nil, fmt.Errorf("vaccination: list: %w", err)
	}
	if items == nil {
		return []Record{}, nil
	}
	return items, nil
}

// Alerts calcula las alertas de una mascota con los registros del repositorio.
func (s *Service) Alerts(ctx context.Context, pet pets.Pet) ([]Alert, error) {
	start := time.Now()
	defer func() { metrics.AlertComputeDuration.Observe(time.Since(start).Seconds()) }()

	if !pet.IsActive() {
		return []Alert{}, nil
	}

	records, err := s.ListByPet(ctx, pet)
	if err != nil {
		return nil, err
	}

	alerts := s.engine.ComputeAlerts(pet, records, s.now())
	for _, a := range alerts {
		metrics.VaccinationAlerts.WithLabelValues(string(a.Kind)).Inc()
	}
	if len(alerts) > 0 {
		s.log.Debug("vaccination alerts computed", map[string]any{
			"pet_id": pet.ID,
			"count":  len(alerts),
		})
	}
	return alerts, nil
}

// PetAlerts agrupa las alertas de una mascota para las vistas multi-mascota.
type PetAlerts struct {
	Pet    pets.Pet
	Alerts []Alert
}

// AlertsForPets calcula en paralelo y conserva el orden de entrada.
// Las mascotas no activas se omiten del resultado.
func (s *Service) AlertsForPets(ctx context.Context, items []pets.Pet) ([]PetAlerts, error) {
	results := make([]PetAlerts, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range items {
		if !p.IsActive() {
			continue
		}
		i, p := i, p
		g.Go(func() error {
			alerts, err := s.Alerts(gctx, p)
			if err != nil {
				return fmt.Errorf("pet %s: %w", p.ID, err)
			}
			results[i] = PetAlerts{Pet: p, Alerts: alerts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]PetAlerts, 0, len(items))
	for i, p := range items {
		if p.IsActive() {
			out = append(out, results[i])
		}
	}
	return out, nil
}

// PreviewNextDue permite al formulario mostrar el vencimiento antes de guardar.
func (s *Service) PreviewNextDue(administered time.Time, rawFreq string, manual *time.Time) (*time.Time, error) {
	if administered.IsZero() {
		return nil, fmt.Errorf("%w: administered_at is required", ErrInvalidInput)
	}
	freq, ok := ParseFrequency(rawFreq)
	if !ok {
		return nil, fmt.Errorf("%w: unknown booster_frequency %q", ErrInvalidInput, rawFreq)
	}
	return Schedule(administered, freq, manual), nil
}

// resolveProtocol valida el protocolo contra la especie y decide el nombre a mostrar.
func (s *Service) resolveProtocol(pet pets.Pet, protocolID, vaccineName string) (Protocol, string, error) {
	protocolID = strings.TrimSpace(protocolID)
	vaccineName = strings.TrimSpace(vaccineName)
	if protocolID == "" {
		protocolID = OtherProtocolID
	}

	p, ok := s.catalog.Get(protocolID)
	if !ok {
		return Protocol{}, "", fmt.Errorf("%w: unknown protocol %q", ErrInvalidInput, protocolID)
	}
	if !p.AppliesTo(pet.Species) {
		return Protocol{}, "", fmt.Errorf("%w: protocol %q does not apply to %s", ErrInvalidInput, p.ID, pet.Species)
	}
	if p.IsOther() {
		if vaccineName == "" {
			return Protocol{}, "", fmt.Errorf("%w: vaccine_name is required for protocol %q", ErrInvalidInput, OtherProtocolID)
		}
		return p, vaccineName, nil
	}
	return p, p.Name, nil
}

func (s *Service) validateAdministered(t time.Time) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: administered_at is required", ErrInvalidInput)
	}
	d := dates.Only(t)
	if d.After(dates.Only(s.now())) {
		return time.Time{}, fmt.Errorf("%w: administered_at is in the future", ErrInvalidInput)
	}
	return d, nil
}
