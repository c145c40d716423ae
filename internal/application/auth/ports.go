package auth

import (
	"context"
	"time"

	"github.com/jhoicas/identity-api/pkg/jwt"
)

// PasswordHasher hashea y verifica contraseñas. Verify nunca devuelve error:
// un hash mal formado es simplemente "no coincide".
type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	Verify(ctx context.Context, plain, hashed string) bool
}

// TokenIssuer emite y valida tokens de sesión firmados. Lo implementa *jwt.Issuer.
type TokenIssuer interface {
	Issue(claims jwt.SessionClaims) (string, error)
	Verify(token string) (*jwt.SessionClaims, error)
	TTL() time.Duration
}
