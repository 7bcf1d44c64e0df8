package middleware

import (
	"github.com/gin-gonic/gin"

	"inventaris/internal/core/apperror"
	appctx "inventaris/internal/core/context"
	"inventaris/internal/domain/scope"
)

// scopeKey is the gin context key for the resolved division scope.
const scopeKey = "division_scope"

// DivisionScope resolves the caller's division visibility once per
// request. Owners get the unrestricted scope; restricted admins get
// their stored allow-list, which may legitimately be empty.
// Runs after Auth.
func DivisionScope(resolver *scope.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		sc, err := resolver.Resolve(c.Request.Context(), user.CompanyID, user.UserID, user.Role)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(scopeKey, sc)
		c.Next()
	}
}

// GetScope returns the resolved scope for the request.
// Defaults to None so a missing middleware fails closed, not open.
func GetScope(c *gin.Context) scope.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(scope.Scope); ok {
			return sc
		}
	}
	return scope.None()
}
