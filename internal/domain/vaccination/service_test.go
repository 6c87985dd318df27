package vaccination_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-vaccination-tracker/internal/domain/pets"
	"pet-vaccination-tracker/internal/domain/vaccination"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = fmt.Errorf("repo: %w", vaccination.ErrNotFound)

type testRepo struct {
	mu      sync.Mutex
	byID    map[string]vaccination.Record
	failPet string // ListByPet falla para esta mascota
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]vaccination.Record{}}
}

func (r *testRepo) Create(ctx context.Context, rec vaccination.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Update(ctx context.Context, rec vaccination.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (vaccination.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return vaccination.Record{}, errRepoNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]vaccination.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if petID == r.failPet {
		return nil, errors.New("repo: boom")
	}
	out := make([]vaccination.Record, 0)
	for _, rec := range r.byID {
		if rec.PetID == petID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AdministeredAt.After(out[j].AdministeredAt) })
	return out, nil
}

// downRepo simula una base caída en las lecturas por ID.
type downRepo struct {
	*testRepo
}

func (downRepo) GetByID(ctx context.Context, id string) (vaccination.Record, error) {
	return vaccination.Record{}, errors.New("connection refused")
}

var serviceNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

func newTestService(repo vaccination.Repository, opts ...vaccination.Option) *vaccination.Service {
	opts = append([]vaccination.Option{vaccination.WithClock(func() time.Time { return serviceNow })}, opts...)
	return vaccination.NewService(repo, vaccination.MustDefaultCatalog(), opts...)
}

func testPet(id string, species pets.Species, bornWeeksAgo int) pets.Pet {
	bd := day(2024, 6, 15).AddDate(0, 0, -7*bornWeeksAgo)
	return pets.Pet{
		ID:          id,
		OwnerUserID: "owner-1",
		Name:        "pet " + id,
		Species:     species,
		Status:      pets.StatusActive,
		BirthDate:   &bd,
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_ComputesNextDueAndName(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	pet := testPet("p1", pets.SpeciesDog, 30)

	rec, err := svc.Create(context.Background(), pet, vaccination.CreateInput{
		ProtocolID:       "rabies",
		VaccineName:      "ignored for catalog protocols",
		DoseLabel:        " Single dose ",
		AdministeredAt:   time.Date(2024, 2, 29, 16, 0, 0, 0, time.UTC),
		BoosterFrequency: "yearly",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "p1", rec.PetID)
	assert.Equal(t, "owner-1", rec.OwnerUserID)
	assert.Equal(t, "Rabies", rec.VaccineName)
	assert.Equal(t, "Single dose", rec.DoseLabel)
	assert.Equal(t, day(2024, 2, 29), rec.AdministeredAt)
	require.NotNil(t, rec.NextDueAt)
	assert.Equal(t, day(2025, 2, 28), *rec.NextDueAt)
	assert.Equal(t, serviceNow, rec.CreatedAt)

	stored, err := repo.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, stored)
}

func TestService_Create_OtherProtocol(t *testing.T) {
	svc := newTestService(newTestRepo())
	pet := testPet("p1", pets.SpeciesRabbit, 30)

	_, err := svc.Create(context.Background(), pet, vaccination.CreateInput{
		ProtocolID:     vaccination.OtherProtocolID,
		AdministeredAt: day(2024, 5, 1),
	})
	assert.ErrorIs(t, err, vaccination.ErrInvalidInput)

	manual := day(2024, 11, 1)
	rec, err := svc.Create(context.Background(), pet, vaccination.CreateInput{
		VaccineName:      "Pasteurella",
		AdministeredAt:   day(2024, 5, 1),
		BoosterFrequency: "manual",
		ManualNextDueAt:  &manual,
	})
	require.NoError(t, err)
	assert.Equal(t, vaccination.OtherProtocolID, rec.ProtocolID)
	assert.Equal(t, "Pasteurella", rec.VaccineName)
	require.NotNil(t, rec.NextDueAt)
	assert.Equal(t, manual, *rec.NextDueAt)
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService(newTestRepo())
	cat := testPet("p1", pets.SpeciesCat, 30)

	cases := map[string]vaccination.CreateInput{
		"unknown protocol":  {ProtocolID: "nope", AdministeredAt: day(2024, 5, 1)},
		"wrong species":     {ProtocolID: "canine-polyvalent", AdministeredAt: day(2024, 5, 1)},
		"missing date":      {ProtocolID: "rabies"},
		"future date":       {ProtocolID: "rabies", AdministeredAt: day(2024, 6, 16)},
		"unknown frequency": {ProtocolID: "rabies", AdministeredAt: day(2024, 5, 1), BoosterFrequency: "daily"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), cat, in)
			assert.ErrorIs(t, err, vaccination.ErrInvalidInput)
		})
	}

	// el mismo día es válido aunque la hora sea posterior
	_, err := svc.Create(context.Background(), cat, vaccination.CreateInput{
		ProtocolID:     "rabies",
		AdministeredAt: time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestService_Update(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	pet := testPet("p1", pets.SpeciesDog, 60)

	rec, err := svc.Create(ctx, pet, vaccination.CreateInput{
		ProtocolID:       "canine-leptospirosis",
		AdministeredAt:   day(2024, 1, 31),
		BoosterFrequency: "monthly",
	})
	require.NoError(t, err)
	require.Equal(t, day(2024, 2, 29), *rec.NextDueAt)

	freq := "every-3-years"
	adm := day(2024, 3, 1)
	notes := " lote 42 "
	updated, err := svc.Update(ctx, pet, rec.ID, vaccination.UpdateInput{
		BoosterFrequency: &freq,
		AdministeredAt:   &adm,
		Notes:            &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, day(2027, 3, 1), *updated.NextDueAt)
	assert.Equal(t, "lote 42", updated.Notes)
	assert.Equal(t, "Leptospirosis", updated.VaccineName)

	// cambiar de protocolo resuelve el nombre del catálogo
	protocol := "rabies"
	updated, err = svc.Update(ctx, pet, rec.ID, vaccination.UpdateInput{ProtocolID: &protocol})
	require.NoError(t, err)
	assert.Equal(t, "Rabies", updated.VaccineName)

	// manual conserva la fecha existente si no se envía otra
	manualFreq := "manual"
	manual := day(2024, 12, 24)
	updated, err = svc.Update(ctx, pet, rec.ID, vaccination.UpdateInput{BoosterFrequency: &manualFreq, NextDueAt: vaccination.PatchDate{Present: true, Value: &manual}})
	require.NoError(t, err)
	assert.Equal(t, manual, *updated.NextDueAt)

	dose := "Booster"
	updated, err = svc.Update(ctx, pet, rec.ID, vaccination.UpdateInput{DoseLabel: &dose})
	require.NoError(t, err)
	assert.Equal(t, manual, *updated.NextDueAt)

	// enviado vacío limpia la fecha manual
	updated, err = svc.Update(ctx, pet, rec.ID, vaccination.UpdateInput{NextDueAt: vaccination.PatchDate{Present: true}})
	require.NoError(t, err)
	assert.Equal(t, vaccination.FrequencyManual, updated.BoosterFrequency)
	assert.Nil(t, updated.NextDueAt)

	noBooster := "no-booster"
	updated, err = svc.Update(ctx, pet, rec.ID, vaccination.UpdateInput{BoosterFrequency: &noBooster})
	require.NoError(t, err)
	assert.Nil(t, updated.NextDueAt)
}

func TestService_RecordsAreScopedToPet(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()
	mine := testPet("p1", pets.SpeciesDog, 60)
	other := testPet("p2", pets.SpeciesDog, 60)

	rec, err := svc.Create(ctx, mine, vaccination.CreateInput{ProtocolID: "rabies", AdministeredAt: day(2024, 1, 1)})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, other, rec.ID)
	assert.ErrorIs(t, err, vaccination.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, other, rec.ID), vaccination.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, mine, rec.ID))
	_, err = svc.GetByID(ctx, mine, rec.ID)
	assert.ErrorIs(t, err, vaccination.ErrNotFound)

	list, err := svc.ListByPet(ctx, mine)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestService_Update_AfterSpeciesChange(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()
	dog := testPet("p1", pets.SpeciesDog, 60)

	rec, err := svc.Create(ctx, dog, vaccination.CreateInput{ProtocolID: "canine-polyvalent", AdministeredAt: day(2024, 1, 1)})
	require.NoError(t, err)
	other, err := svc.Create(ctx, dog, vaccination.CreateInput{ProtocolID: "other", VaccineName: "Giardia", AdministeredAt: day(2024, 1, 1)})
	require.NoError(t, err)

	// el perfil se corrigió a gato: los registros viejos se pueden seguir editando
	cat := dog
	cat.Species = pets.SpeciesCat

	notes := "mal cargado"
	updated, err := svc.Update(ctx, cat, rec.ID, vaccination.UpdateInput{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "canine-polyvalent", updated.ProtocolID)
	assert.Equal(t, "mal cargado", updated.Notes)

	// pero no se puede mover a un protocolo de otra especie
	protocol := "canine-leptospirosis"
	_, err = svc.Update(ctx, cat, rec.ID, vaccination.UpdateInput{ProtocolID: &protocol})
	assert.ErrorIs(t, err, vaccination.ErrInvalidInput)

	// el nombre solo se edita en "other"
	name := "Giardia lamblia"
	updated, err = svc.Update(ctx, cat, other.ID, vaccination.UpdateInput{VaccineName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Giardia lamblia", updated.VaccineName)

	empty := " "
	_, err = svc.Update(ctx, cat, other.ID, vaccination.UpdateInput{VaccineName: &empty})
	assert.ErrorIs(t, err, vaccination.ErrInvalidInput)

	updated, err = svc.Update(ctx, cat, rec.ID, vaccination.UpdateInput{VaccineName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Canine polyvalent (DHPPi)", updated.VaccineName)
}

func TestService_RepoFailureIsNotNotFound(t *testing.T) {
	svc := newTestService(downRepo{testRepo: newTestRepo()})
	ctx := context.Background()
	pet := testPet("p1", pets.SpeciesDog, 60)

	_, err := svc.GetByID(ctx, pet, "r1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, vaccination.ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")

	notes := "x"
	_, err = svc.Update(ctx, pet, "r1", vaccination.UpdateInput{Notes: &notes})
	assert.NotErrorIs(t, err, vaccination.ErrNotFound)
	assert.NotErrorIs(t, svc.Delete(ctx, pet, "r1"), vaccination.ErrNotFound)
}

func TestService_Alerts(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	pet := testPet("p1", pets.SpeciesDog, 100)

	_, err := svc.Create(ctx, pet, vaccination.CreateInput{
		ProtocolID:       "rabies",
		AdministeredAt:   day(2023, 1, 10),
		BoosterFrequency: "yearly",
	})
	require.NoError(t, err)

	alerts, err := svc.Alerts(ctx, pet)
	require.NoError(t, err)

	got := kinds(alerts)
	assert.Equal(t, vaccination.AlertNotStartedSuggested, got["canine-polyvalent"])
	assert.Equal(t, vaccination.AlertOverdue, got["rabies"])

	pet.Status = pets.StatusRehomed
	alerts, err = svc.Alerts(ctx, pet)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestService_AlertsForPets_KeepsOrderAndSkipsInactive(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo, vaccination.WithConcurrency(2))

	items := make([]pets.Pet, 0, 6)
	for i := 0; i < 6; i++ {
		p := testPet(fmt.Sprintf("p%d", i), pets.SpeciesCat, 40)
		if i == 3 {
			p.Status = pets.StatusDeceased
		}
		items = append(items, p)
	}

	got, err := svc.AlertsForPets(context.Background(), items)
	require.NoError(t, err)

	require.Len(t, got, 5)
	order := make([]string, 0, len(got))
	for _, g := range got {
		order = append(order, g.Pet.ID)
		assert.Len(t, g.Alerts, 3, g.Pet.ID)
	}
	assert.Equal(t, []string{"p0", "p1", "p2", "p4", "p5"}, order)
}

func TestService_AlertsForPets_PropagatesErrors(t *testing.T) {
	repo := newTestRepo()
	repo.failPet = "p1"
	svc := newTestService(repo)

	_, err := svc.AlertsForPets(context.Background(), []pets.Pet{
		testPet("p0", pets.SpeciesDog, 40),
		testPet("p1", pets.SpeciesDog, 40),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p1")
}

func TestService_PreviewNextDue(t *testing.T) {
	svc := newTestService(newTestRepo())

	next, err := svc.PreviewNextDue(day(2024, 1, 31), "monthly", nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, day(2024, 2, 29), *next)

	next, err = svc.PreviewNextDue(day(2024, 1, 31), "single-dose-no-booster", nil)
	require.NoError(t, err)
	assert.Nil(t, next)

	_, err = svc.PreviewNextDue(day(2024, 1, 31), "hourly", nil)
	assert.ErrorIs(t, err, vaccination.ErrInvalidInput)

	_, err = svc.PreviewNextDue(time.Time{}, "yearly", nil)
	assert.ErrorIs(t, err, vaccination.ErrInvalidInput)
}
