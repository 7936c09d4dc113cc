package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptyClaims  = errors.New("claims must not be empty")
	ErrMissingEmail = errors.New("claims must include email")
	ErrInvalidToken = errors.New("invalid token")
)

// Sign mints a bearer token embedding the given claims plus an absolute
// expiry. The claim set must carry the caller's email; everything else is
// passed through opaquely.
func Sign(claims map[string]any, secret []byte, ttl time.Duration) (string, error) {
	if len(claims) == 0 {
		return "", ErrEmptyClaims
	}
	if email, _ := claims["email"].(string); email == "" {
		return "", ErrMissingEmail
	}

	mapped := jwt.MapClaims{}
	for k, v := range claims {
		mapped[k] = v
	}
	mapped["exp"] = jwt.NewNumericDate(time.Now().Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapped)
	return token.SignedString(secret)
}

// Verify parses and validates a token, returning its claims. Expired,
// malformed, and badly-signed tokens all fail with ErrInvalidToken.
func Verify(tokenString string, secret []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Email extracts the email claim from a verified claim set.
func Email(claims jwt.MapClaims) string {
	email, _ := claims["email"].(string)
	return email
}
