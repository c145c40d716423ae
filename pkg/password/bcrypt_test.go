package password_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/identity-api/pkg/password"
)

func newTestHasher() *password.Hasher {
	return password.NewHasher(password.WithCost(bcrypt.MinCost))
}

func TestHasher_HashYVerify(t *testing.T) {
	tests := []struct {
		name  string
		plain string
	}{
		{name: "simple", plain: "secret1"},
		{name: "vacío", plain: ""},
		{name: "unicode", plain: "contraseña-ñandú-🔐"},
		{name: "caracteres especiales", plain: "p@ssw0rd!#$%"},
		{name: "largo", plain: strings.Repeat("a", 60)},
	}
	h := newTestHasher()
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(ctx, tt.plain)
			require.NoError(t, err)
			assert.NotEqual(t, tt.plain, hash)
			assert.True(t, h.Verify(ctx, tt.plain, hash), "el mismo texto debe verificar")
			assert.False(t, h.Verify(ctx, tt.plain+"x", hash), "un texto distinto no debe verificar")
		})
	}
}

func TestHasher_SalUnica(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	h1, err := h.Hash(ctx, "mismaClave")
	require.NoError(t, err)
	h2, err := h.Hash(ctx, "mismaClave")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "dos hashes del mismo texto deben diferir")
	assert.True(t, h.Verify(ctx, "mismaClave", h1))
	assert.True(t, h.Verify(ctx, "mismaClave", h2))
}

func TestHasher_HashMalFormadoEsFalso(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	for _, bad := range []string{"", "hashed_secret", "$2a$10$corto", "$argon2id$v=19$m=1,t=1,p=1$xx$yy"} {
		assert.False(t, h.Verify(ctx, "secret", bad), "hash %q debe resultar en false", bad)
	}
}

func TestHasher_ContextoCanceladoNoVerifica(t *testing.T) {
	h := password.NewHasher(password.WithCost(bcrypt.MinCost), password.WithConcurrency(1))
	hash, err := h.Hash(context.Background(), "secret")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, h.Verify(ctx, "secret", hash))
	_, err = h.Hash(ctx, "secret")
	assert.Error(t, err)
}

func TestHasher_Concurrente(t *testing.T) {
	h := password.NewHasher(password.WithCost(bcrypt.MinCost), password.WithConcurrency(2))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := h.Hash(ctx, "paralelo")
			if err != nil {
				errs <- err
				return
			}
			if !h.Verify(ctx, "paralelo", hash) {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("hash concurrente: %v", err)
	}
}
