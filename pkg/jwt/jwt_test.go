package jwt_test

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/identity-api/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testIssuer   = "identity-api-test"
	testUserID   = "00000000-0000-0000-0000-000000000001"
	testTenantID = "00000000-0000-0000-0000-000000000002"
)

// fixedClock reloj manual para controlar el vencimiento.
type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time          { return c.t }
func (c *fixedClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newIssuer(t *testing.T, clock *fixedClock) *pkgjwt.Issuer {
	t.Helper()
	iss, err := pkgjwt.NewIssuer(pkgjwt.Config{Secret: testSecret, Issuer: testIssuer}, pkgjwt.WithClock(clock.Now))
	require.NoError(t, err)
	return iss
}

func tenantClaims() pkgjwt.SessionClaims {
	return pkgjwt.SessionClaims{
		Subject:  testUserID,
		Email:    "ana@co.com",
		Kind:     "tenant",
		TenantID: testTenantID,
	}
}

func TestIssuer_IssueYVerify(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	iss := newIssuer(t, clock)

	tok, err := iss.Issue(tenantClaims())
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.NotContains(t, tok, "+", "el token debe ser URL-safe")
	assert.NotContains(t, tok, "/", "el token debe ser URL-safe")

	got, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, got.Subject)
	assert.Equal(t, "ana@co.com", got.Email)
	assert.Equal(t, "tenant", got.Kind)
	assert.Equal(t, testTenantID, got.TenantID)
	assert.True(t, got.IssuedAt.Equal(clock.t))
	assert.True(t, got.ExpiresAt.Equal(clock.t.Add(pkgjwt.DefaultTTL)), "TTL por defecto de 7 días")
}

func TestIssuer_IndividualSinTenant(t *testing.T) {
	clock := &fixedClock{t: time.Now()}
	iss := newIssuer(t, clock)

	tok, err := iss.Issue(pkgjwt.SessionClaims{Subject: testUserID, Email: "jean@x.com", Kind: "individual"})
	require.NoError(t, err)

	got, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Empty(t, got.TenantID)
	assert.Equal(t, "individual", got.Kind)
}

func TestIssuer_TokenExpirado(t *testing.T) {
	clock := &fixedClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	iss := newIssuer(t, clock)

	tok, err := iss.IssueWithTTL(tenantClaims(), time.Hour)
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = iss.Verify(tok)
	require.NoError(t, err, "aún vigente")

	clock.Advance(2 * time.Minute)
	_, err = iss.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenExpired)
	assert.NotErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestIssuer_SecretIncorrecto(t *testing.T) {
	clock := &fixedClock{t: time.Now()}
	tok, err := newIssuer(t, clock).Issue(tenantClaims())
	require.NoError(t, err)

	other, err := pkgjwt.NewIssuer(pkgjwt.Config{Secret: "otro-secret-completamente-distinto", Issuer: testIssuer})
	require.NoError(t, err)

	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestIssuer_TokenManipulado(t *testing.T) {
	clock := &fixedClock{t: time.Now()}
	iss := newIssuer(t, clock)
	tok, err := iss.Issue(tenantClaims())
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	forged, err := newIssuerWithSecret(t, "secreto-del-atacante-1234", clock).Issue(pkgjwt.SessionClaims{
		Subject: "otro", Kind: "tenant", TenantID: testTenantID,
	})
	require.NoError(t, err)
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = iss.Verify(tampered)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestIssuer_Malformado(t *testing.T) {
	iss := newIssuer(t, &fixedClock{t: time.Now()})
	for _, tok := range []string{"", "token.invalido.aqui", "abc"} {
		_, err := iss.Verify(tok)
		assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid, "token %q", tok)
	}
}

func TestIssuer_AlgoritmoNone(t *testing.T) {
	iss := newIssuer(t, &fixedClock{t: time.Now()})
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUserID,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Kind: "tenant",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = iss.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestIssuer_SinKind(t *testing.T) {
	iss := newIssuer(t, &fixedClock{t: time.Now()})
	claims := pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   testUserID,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = iss.Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestIssuer_OtroIssuer(t *testing.T) {
	clock := &fixedClock{t: time.Now()}
	other, err := pkgjwt.NewIssuer(pkgjwt.Config{Secret: testSecret, Issuer: "otro-servicio"}, pkgjwt.WithClock(clock.Now))
	require.NoError(t, err)
	tok, err := other.Issue(tenantClaims())
	require.NoError(t, err)

	_, err = newIssuer(t, clock).Verify(tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestNewIssuer_SecretRequerido(t *testing.T) {
	_, err := pkgjwt.NewIssuer(pkgjwt.Config{Secret: ""})
	assert.ErrorIs(t, err, pkgjwt.ErrSecretRequired)

	_, err = pkgjwt.NewIssuer(pkgjwt.Config{Secret: "corto"})
	assert.ErrorIs(t, err, pkgjwt.ErrSecretRequired)
}

func TestIssuer_IssueSinSubject(t *testing.T) {
	iss := newIssuer(t, &fixedClock{t: time.Now()})
	_, err := iss.Issue(pkgjwt.SessionClaims{Kind: "individual"})
	assert.Error(t, err)
}

func newIssuerWithSecret(t *testing.T, secret string, clock *fixedClock) *pkgjwt.Issuer {
	t.Helper()
	iss, err := pkgjwt.NewIssuer(pkgjwt.Config{Secret: secret, Issuer: testIssuer}, pkgjwt.WithClock(clock.Now))
	require.NoError(t, err)
	return iss
}
