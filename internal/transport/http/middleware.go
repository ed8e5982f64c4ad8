package httptransport

import (
	"github.com/gin-gonic/gin"

	"coffeebar-server-go/internal/domain/auth"
)

// ClaimsKey is the gin context key the verified claims are stored under.
const ClaimsKey = "claims"

// RequirePermission guards a route with a single permission string. The
// token is verified first; a token whose claims carry no permissions set at
// all is treated as incorrectly scoped, which is distinct from a scoped
// token that merely lacks this permission. Errors raised by the wrapped
// handler are untouched.
func RequirePermission(verifier *auth.Verifier, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, aerr := auth.BearerToken(c.GetHeader("Authorization"))
		if aerr != nil {
			abortAuth(c, aerr)
			return
		}

		claims, aerr := verifier.Verify(token)
		if aerr != nil {
			abortAuth(c, aerr)
			return
		}

		if claims.Permissions == nil {
			abortAuth(c, auth.ErrPermissionsClaimMissing)
			return
		}
		if !claims.HasPermission(permission) {
			abortAuth(c, auth.ErrUnauthorized)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims a guard stored on the context.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// abortAuth renders the auth error's own payload with its status code.
func abortAuth(c *gin.Context, aerr *auth.Error) {
	c.AbortWithStatusJSON(aerr.Status, aerr)
}
