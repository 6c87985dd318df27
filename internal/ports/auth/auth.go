package auth

import "context"

// Claims es lo que los handlers necesitan saber del usuario autenticado.
type Claims struct {
	UserID string
}

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
