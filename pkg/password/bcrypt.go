package password

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Hasher hashea y verifica contraseñas con bcrypt (sal aleatoria embebida en el hash).
// El hashing es costoso en CPU: se limita el número de operaciones simultáneas para no
// bloquear al resto de peticiones.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// Option configura el Hasher.
type Option func(*Hasher)

// WithCost fija el costo bcrypt. Valores fuera de rango usan bcrypt.DefaultCost.
func WithCost(cost int) Option {
	return func(h *Hasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// WithConcurrency fija cuántos hashes pueden calcularse a la vez.
func WithConcurrency(n int) Option {
	return func(h *Hasher) {
		if n > 0 {
			h.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// NewHasher construye el hasher. Por defecto usa bcrypt.DefaultCost y GOMAXPROCS slots.
func NewHasher(opts ...Option) *Hasher {
	h := &Hasher{
		cost: bcrypt.DefaultCost,
		sem:  semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash genera el hash de plain. Dos llamadas con el mismo texto producen hashes distintos.
func (h *Hasher) Hash(ctx context.Context, plain string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", fmt.Errorf("password: esperar turno de hashing: %w", err)
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

// Verify compara plain con hashed en tiempo constante.
// Un hash mal formado, vacío o un contexto cancelado devuelven false: el llamante
// solo ve "autenticación denegada".
func (h *Hasher) Verify(ctx context.Context, plain, hashed string) bool {
	if hashed == "" {
		return false
	}
	if err := h.acquire(ctx); err != nil {
		return false
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// acquire toma un slot de hashing; Acquire puede tener éxito con un ctx ya cancelado,
// por eso se revisa antes.
func (h *Hasher) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return h.sem.Acquire(ctx, 1)
}
