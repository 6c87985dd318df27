package pets

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = fmt.Errorf("repo: %w", ErrNotFound)

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

// downRepo simula una base caída: todas las lecturas fallan.
type downRepo struct {
	*testRepo
}

func (downRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	return Pet{}, errors.New("connection refused")
}

func newTestService(now time.Time) *Service {
	svc := NewService(newTestRepo())
	svc.now = func() time.Time { return now }
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsAndNormalization(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	svc := newTestService(now)

	bd := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	p, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:      "  Milo ",
		Species:   "DOG",
		BirthDate: &bd,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Milo", p.Name)
	assert.Equal(t, SpeciesDog, p.Species)
	assert.Equal(t, SexUnknown, p.Sex)
	assert.Equal(t, StatusActive, p.Status)
	require.NotNil(t, p.BirthDate)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *p.BirthDate)
	assert.Equal(t, now, p.CreatedAt)
}

func TestService_Create_Validation(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 1)
	negative := -1

	cases := map[string]CreateInput{
		"missing name":    {Species: "cat"},
		"unknown species": {Name: "Polly", Species: "parrot"},
		"unknown sex":     {Name: "Tom", Species: "cat", Sex: "other"},
		"future birth":    {Name: "Tom", Species: "cat", BirthDate: &future},
		"negative age":    {Name: "Tom", Species: "cat", ApproxAgeYears: &negative},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newTestService(now).Create(context.Background(), "owner-1", in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := newTestService(now).Create(context.Background(), " ", CreateInput{Name: "Tom", Species: "cat"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetOwned(t *testing.T) {
	svc := newTestService(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Nube", Species: "rabbit"})
	require.NoError(t, err)

	got, err := svc.GetOwned(ctx, p.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.GetOwned(ctx, p.ID, "someone-else")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetOwned(ctx, "missing", "owner-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestService(now)
	ctx := context.Background()

	bd := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Milo", Species: "dog", BirthDate: &bd})
	require.NoError(t, err)

	later := now.Add(time.Hour)
	svc.now = func() time.Time { return later }

	status := "deceased"
	years := 2
	chip := " 985112 "
	updated, err := svc.UpdateProfile(ctx, p.ID, "owner-1", UpdateProfileInput{
		Status:         &status,
		BirthDate:      PatchBirthDate{Present: true, Value: nil},
		ApproxAgeYears: &years,
		Microchip:      &chip,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusDeceased, updated.Status)
	assert.False(t, updated.IsActive())
	assert.Nil(t, updated.BirthDate)
	require.NotNil(t, updated.ApproxAgeYears)
	assert.Equal(t, 2, *updated.ApproxAgeYears)
	assert.Equal(t, "985112", updated.Microchip)
	assert.Equal(t, "Milo", updated.Name)
	assert.Equal(t, later, updated.UpdatedAt)
}

func TestService_UpdateProfile_RejectsBadInputAndStrangers(t *testing.T) {
	svc := newTestService(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Milo", Species: "dog"})
	require.NoError(t, err)

	bad := "missing"
	_, err = svc.UpdateProfile(ctx, p.ID, "owner-1", UpdateProfileInput{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	empty := " "
	_, err = svc.UpdateProfile(ctx, p.ID, "owner-1", UpdateProfileInput{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	name := "Hacked"
	_, err = svc.UpdateProfile(ctx, p.ID, "owner-2", UpdateProfileInput{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_GetByID_RepoFailureIsNotNotFound(t *testing.T) {
	svc := NewService(downRepo{testRepo: newTestRepo()})

	_, err := svc.GetByID(context.Background(), "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")

	_, err = svc.GetOwned(context.Background(), "p1", "owner-1")
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)
}
