// Package static implementa auth.AuthVerifier con una tabla fija token => usuario.
// Pensado para despliegues single-tenant y pruebas; la gestión de cuentas queda fuera del servicio.
package static

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-vaccination-tracker/internal/ports/auth"
)

var ErrUnknownToken = errors.New("unknown token")

type Verifier struct {
	byToken map[string]auth.Claims
}

// Parse lee "token1=user1,token2=user2".
func Parse(raw string) (*Verifier, error) {
	v := &Verifier{byToken: map[string]auth.Claims{}}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, user, ok := strings.Cut(pair, "=")
		token, user = strings.TrimSpace(token), strings.TrimSpace(user)
		if !ok || token == "" || user == "" {
			return nil, fmt.Errorf("static auth: malformed entry %q", pair)
		}
		v.byToken[token] = auth.Claims{UserID: user}
	}
	if len(v.byToken) == 0 {
		return nil, errors.New("static auth: no tokens configured")
	}
	return v, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	c, ok := v.byToken[strings.TrimSpace(token)]
	if !ok {
		return auth.Claims{}, ErrUnknownToken
	}
	return c, nil
}
