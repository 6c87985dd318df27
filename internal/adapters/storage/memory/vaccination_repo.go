package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pet-vaccination-tracker/internal/domain/vaccination"
)

var errRecordNotFound = fmt.Errorf("%w: %w", ErrNotFound, vaccination.ErrNotFound)

type vaccinationRepo struct {
	mu    sync.RWMutex
	byID  map[string]vaccination.Record
	byPet map[string][]string
}

func NewVaccinationRepo() vaccination.Repository {
	return &vaccinationRepo{
		byID:  make(map[string]vaccination.Record),
		byPet: make(map[string][]string),
	}
}

func (r *vaccinationRepo) Create(ctx context.Context, rec vaccination.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return ErrConflict
	}
	r.byID[rec.ID] = cloneRecord(rec)
	r.byPet[rec.PetID] = append(r.byPet[rec.PetID], rec.ID)
	return nil
}

// Update no permite mover un registro a otra mascota.
func (r *vaccinationRepo) Update(ctx context.Context, rec vaccination.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[rec.ID]
	if !exists {
		return errRecordNotFound
	}
	rec.PetID = cur.PetID
	r.byID[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *vaccinationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.byID[id]
	if !exists {
		return errRecordNotFound
	}
	delete(r.byID, id)

	ids := r.byPet[rec.PetID]
	for i, v := range ids {
		if v == id {
			r.byPet[rec.PetID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (r *vaccinationRepo) GetByID(ctx context.Context, id string) (vaccination.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return vaccination.Record{}, errRecordNotFound
	}
	return cloneRecord(rec), nil
}

func (r *vaccinationRepo) ListByPet(ctx context.Context, petID string) ([]vaccination.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byPet[petID]
	out := make([]vaccination.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneRecord(r.byID[id]))
	}

	// administered_at desc, created_at desc, id desc (mismo orden que postgres)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.AdministeredAt.Equal(b.AdministeredAt) {
			return a.AdministeredAt.After(b.AdministeredAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return out, nil
}

func cloneRecord(rec vaccination.Record) vaccination.Record {
	if rec.NextDueAt != nil {
		d := *rec.NextDueAt
		rec.NextDueAt = &d
	}
	return rec
}
