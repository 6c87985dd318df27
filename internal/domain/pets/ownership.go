package pets

import (
	"context"
	"strings"
)

// GetOwned devuelve la mascota solo si userID es el dueño.
// Los módulos que cuelgan de /pets/{petID} (vacunas) lo usan para autorizar.
func (s *Service) GetOwned(ctx context.Context, petID, userID string) (Pet, error) {
	if strings.TrimSpace(userID) == "" {
		return Pet{}, ErrForbidden
	}
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != userID {
		return Pet{}, ErrForbidden
	}
	return p, nil
}
