package rbac

import (
	"fmt"
	"net/http"

	"jobboard-platform/internal/identity"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the {resource, action} pair declared at
// registration time. It must run after identity.RequireAuth and before the
// domain handler.
//
// 401 here means the chain was mis-wired (no principal attached); 403 names
// the missing permission explicitly, which is acceptable once the caller is
// authenticated.
func RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := identity.PrincipalFrom(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Access denied. No token provided.",
			})
			return
		}

		if !Allowed(p, resource, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": fmt.Sprintf("Access denied. Role %q does not have %q permission on %q.", p.Role, action, resource),
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates routes that are never delegated through the permission
// matrix, such as audit log access and permission override management.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := identity.PrincipalFrom(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Access denied. No token provided.",
			})
			return
		}
		if !IsAdmin(p.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied. Administrator role required.",
			})
			return
		}
		c.Next()
	}
}
