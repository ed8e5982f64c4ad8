package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the verified payload of a bearer token. Permissions stays nil
// when the claim is absent from the token, which is distinct from a token
// carrying an empty permission list.
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// HasPermission reports whether the token grants the given permission
// string.
func (c *Claims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
