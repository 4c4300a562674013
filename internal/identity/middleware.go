package identity

import (
	"context"
	"net/http"
	"strings"
	"time"

	"jobboard-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// PrincipalSource resolves a verified token subject to a live principal.
// Implementations must return ErrAccountDisabled for deactivated accounts
// and project out credential material before building the principal.
type PrincipalSource interface {
	PrincipalByID(ctx context.Context, id string) (Principal, error)
}

// RequireAuth verifies a bearer token and attaches the resolved principal to
// the request context. It does not perform permission checks; those belong
// to internal/rbac.
//
// All authentication failures past the missing-header case return the same
// generic 401 body so token format cannot be probed. The actual cause is
// logged at debug level.
func RequireAuth(m *Manager, src PrincipalSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Access denied. No token provided.",
			})
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		claims, err := m.Verify(tok, time.Now())
		if err != nil {
			logger.FromGin(c).Debug("token verification failed", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token.",
			})
			return
		}

		p, err := src.PrincipalByID(c.Request.Context(), claims.Subject)
		if err != nil {
			// Unknown subjects and disabled accounts share the generic body.
			logger.FromGin(c).Debug("principal resolution failed", "subject", claims.Subject, "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token.",
			})
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}
