package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSubject    = errors.New("token has no subject")
)

// Codec signs and verifies the compact tokens carried by clients. The payload
// is deliberately small: subject (user email) and absolute expiry.
type Codec struct {
	secret []byte
	method jwtlib.SigningMethod
}

type Claims struct {
	jwtlib.RegisteredClaims
}

// New builds a codec for the given process-wide secret and algorithm name
// (e.g. "HS256"). The key is never rotated at runtime.
func New(secret, algorithm string) *Codec {
	method := jwtlib.GetSigningMethod(algorithm)
	if method == nil {
		method = jwtlib.SigningMethodHS256
	}
	return &Codec{
		secret: []byte(secret),
		method: method,
	}
}

// Sign encodes {sub: subject, exp: now+ttl} and returns the token string
// together with the expiry embedded in it. Each token carries a random jti:
// timestamps have second resolution, so without it two tokens signed for the
// same subject within one second would serialize to the same string and
// collide on the tokens.value unique index.
func (c *Codec) Sign(subject string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwtlib.NewWithClaims(c.method, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the claims. Any failure,
// including a missing subject, is reported as ErrInvalidToken so callers
// cannot distinguish forged from merely expired credentials.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return c.secret, nil
	}, jwtlib.WithValidMethods([]string{c.method.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrNoSubject
	}

	return claims, nil
}
