package vaccination

import "context"

// Repository es el almacén de registros de vacunación (memory o postgres).
type Repository interface {
	Create(ctx context.Context, r Record) error
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Record, error)
	// ListByPet ordena por administered_at desc, created_at desc.
	ListByPet(ctx context.Context, petID string) ([]Record, error)
}
