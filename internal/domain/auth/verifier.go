package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates bearer tokens against externally supplied signing
// material. The key source is a plain jwt.Keyfunc so production can plug in
// the JWKS provider while tests use a shared secret.
type Verifier struct {
	keyfunc  jwt.Keyfunc
	issuer   string
	audience string
}

func NewVerifier(keyfunc jwt.Keyfunc, issuer, audience string) *Verifier {
	return &Verifier{
		keyfunc:  keyfunc,
		issuer:   issuer,
		audience: audience,
	}
}

// BearerToken extracts the raw token from an Authorization header value.
// Anything other than exactly "Bearer <token>" is malformed.
func BearerToken(header string) (string, *Error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrHeaderMalformed
	}
	return parts[1], nil
}

// Verify decodes and validates a token, returning its claims on success.
func (v *Verifier) Verify(tokenString string) (*Claims, *Error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, v.keyfunc, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenInvalidIssuer),
			errors.Is(err, jwt.ErrTokenInvalidAudience),
			errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return nil, ErrInvalidClaims
		default:
			return nil, ErrInvalidSignature
		}
	}
	if !token.Valid {
		return nil, ErrInvalidSignature
	}

	return claims, nil
}
