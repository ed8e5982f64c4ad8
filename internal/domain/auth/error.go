package auth

import "net/http"

// Error is an authentication failure. Its JSON form is exactly the body a
// client receives, so fields stay machine-readable and free of internals.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Status      int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}

func newError(code, description string) *Error {
	return &Error{Code: code, Description: description, Status: http.StatusUnauthorized}
}

var (
	// ErrHeaderMalformed covers a missing Authorization header, a scheme
	// other than Bearer, or a value not made of exactly two parts.
	ErrHeaderMalformed = newError("auth_header_malformed",
		"Authorization header must be of form: Bearer <token>.")

	ErrInvalidSignature = newError("invalid_signature",
		"Token signature could not be verified.")

	ErrTokenExpired = newError("token_expired",
		"Token is expired.")

	ErrInvalidClaims = newError("invalid_claims",
		"Token claims are invalid, check the audience and issuer.")

	// ErrPermissionsClaimMissing signals a token minted without a
	// permissions claim at all, i.e. not scoped for this API.
	ErrPermissionsClaimMissing = newError("permissions_claim_missing",
		"Permissions not included in token.")

	ErrUnauthorized = newError("unauthorized",
		"Permission not found.")
)
