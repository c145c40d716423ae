package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL vigencia por defecto de un token de sesión (7 días).
const DefaultTTL = 7 * 24 * time.Hour

// minSecretLen longitud mínima del secreto HMAC.
const minSecretLen = 16

var (
	// ErrTokenInvalid firma incorrecta, algoritmo inesperado, estructura mal formada o claims incompletos.
	ErrTokenInvalid = errors.New("jwt: token inválido")
	// ErrTokenExpired el token venció respecto al reloj del verificador.
	ErrTokenExpired = errors.New("jwt: token expirado")
	// ErrSecretRequired secreto vacío o demasiado corto.
	ErrSecretRequired = errors.New("jwt: secret vacío o demasiado corto")
)

// Config configuración explícita del emisor. No hay estado global: cada Issuer tiene la suya.
type Config struct {
	Secret string
	TTL    time.Duration // <= 0 usa DefaultTTL
	Issuer string
}

// Claims payload firmado: claims estándar más identidad y tipo de cuenta.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Kind     string `json:"kind"` // "individual" | "tenant"
	TenantID string `json:"tenant_id,omitempty"`
}

// SessionClaims vista de los claims para el resto de la aplicación.
type SessionClaims struct {
	Subject   string
	Email     string
	Kind      string
	TenantID  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer emite y valida tokens HS256.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option configura el Issuer.
type Option func(*Issuer)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer construye el emisor. Devuelve ErrSecretRequired si el secreto no alcanza el mínimo.
func NewIssuer(cfg Config, opts ...Option) (*Issuer, error) {
	if len(cfg.Secret) < minSecretLen {
		return nil, ErrSecretRequired
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	i := &Issuer{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// TTL vigencia configurada.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue firma los claims con la vigencia configurada.
func (i *Issuer) Issue(sc SessionClaims) (string, error) {
	return i.IssueWithTTL(sc, i.ttl)
}

// IssueWithTTL firma los claims con una vigencia explícita. IssuedAt y ExpiresAt de sc se ignoran.
func (i *Issuer) IssueWithTTL(sc SessionClaims, ttl time.Duration) (string, error) {
	if sc.Subject == "" || sc.Kind == "" {
		return "", fmt.Errorf("jwt: subject y kind son requeridos")
	}
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   sc.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:    sc.Email,
		Kind:     sc.Kind,
		TenantID: sc.TenantID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Verify valida firma y vencimiento y devuelve los claims.
// Retorna ErrTokenExpired si venció y ErrTokenInvalid en cualquier otro fallo.
func (i *Issuer) Verify(tokenString string) (*SessionClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: claims inválidos", ErrTokenInvalid)
	}
	if claims.Subject == "" || claims.Kind == "" {
		return nil, fmt.Errorf("%w: faltan subject o kind", ErrTokenInvalid)
	}
	sc := &SessionClaims{
		Subject:  claims.Subject,
		Email:    claims.Email,
		Kind:     claims.Kind,
		TenantID: claims.TenantID,
	}
	if claims.IssuedAt != nil {
		sc.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sc.ExpiresAt = claims.ExpiresAt.Time
	}
	return sc, nil
}
